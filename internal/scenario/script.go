// Package scenario drives a registry from YAML scripts. A script plays the
// part of a loader: it inserts records, wires associations, changes
// selections and orders, and asserts on the result. Records are referred to
// by the names bound with "as", never by UID.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/atlas/pkg/types"
)

// Operation names.
const (
	OpInsertImage              = "insert_image"
	OpInsertParcellation       = "insert_parcellation"
	OpInsertSlide              = "insert_slide"
	OpInsertIsoMesh            = "insert_iso_mesh"
	OpInsertLabelMesh          = "insert_label_mesh"
	OpInsertColorMap           = "insert_color_map"
	OpInsertLabelTable         = "insert_label_table"
	OpInsertImageLandmarkGroup = "insert_image_landmark_group"
	OpInsertSlideLandmarkGroup = "insert_slide_landmark_group"
	OpInsertAnnotation         = "insert_annotation"
	OpUnload                   = "unload"
	OpUpdate                   = "update"
	OpAssociate                = "associate"
	OpSetActive                = "set_active"
	OpSetOrder                 = "set_order"
	OpMove                     = "move"
	OpExpect                   = "expect"
)

// Move directions.
const (
	MoveBackward = "backward"
	MoveForward  = "forward"
	MoveToBack   = "to_back"
	MoveToFront  = "to_front"
)

// Script is a named list of steps.
type Script struct {
	Name  string `yaml:"name" json:"name"`
	Steps []Step `yaml:"steps" json:"steps"`
}

// Step is one operation. Which fields apply depends on Op.
type Step struct {
	Op string `yaml:"op" json:"op"`

	// As binds the inserted record to a name.
	As string `yaml:"as,omitempty" json:"as,omitempty"`
	// Name is the display name given to an inserted or updated payload.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	// Ref names the record an unload, update, move or set_active acts on.
	Ref string `yaml:"ref,omitempty" json:"ref,omitempty"`
	// Owner and Child name the endpoints of an association. Owner also
	// selects the parent of an insert and of a child-list set_order.
	Owner string `yaml:"owner,omitempty" json:"owner,omitempty"`
	Child string `yaml:"child,omitempty" json:"child,omitempty"`
	// Kind selects the order or selection slot of set_order and set_active.
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`

	// Label is the label index of a label mesh insert, or the entry a label
	// table update renames.
	Label     int      `yaml:"label,omitempty" json:"label,omitempty"`
	Labels    int      `yaml:"labels,omitempty" json:"labels,omitempty"`
	IsoValue  float64  `yaml:"iso_value,omitempty" json:"iso_value,omitempty"`
	Order     []string `yaml:"order,omitempty" json:"order,omitempty"`
	Direction string   `yaml:"direction,omitempty" json:"direction,omitempty"`

	// OK is the result the operation must report. Defaults to true.
	OK *bool `yaml:"ok,omitempty" json:"ok,omitempty"`

	Expect *Expect `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// wantOK returns the expected operation result.
func (s Step) wantOK() bool {
	return s.OK == nil || *s.OK
}

// Expect lists assertions checked by an expect step. Every field is
// optional.
type Expect struct {
	// Active maps a slot (image, parcellation, slide) to the expected
	// name; an empty name means no selection.
	Active map[string]string `yaml:"active,omitempty" json:"active,omitempty"`
	// Order maps an ordered kind to the expected names in order.
	Order map[string][]string `yaml:"order,omitempty" json:"order,omitempty"`
	// Count maps a kind to the expected number of loaded records.
	Count map[string]int `yaml:"count,omitempty" json:"count,omitempty"`

	Loaded   []string        `yaml:"loaded,omitempty" json:"loaded,omitempty"`
	Unloaded []string        `yaml:"unloaded,omitempty" json:"unloaded,omitempty"`
	Children []ChildrenCheck `yaml:"children,omitempty" json:"children,omitempty"`
	Owners   []OwnerCheck    `yaml:"owners,omitempty" json:"owners,omitempty"`
}

// ChildrenCheck asserts the records associated with Owner under Kind.
// Ordered lists compare in order; label meshes compare by ascending label
// index.
type ChildrenCheck struct {
	Owner string   `yaml:"owner" json:"owner"`
	Kind  string   `yaml:"kind" json:"kind"`
	Names []string `yaml:"names" json:"names"`
}

// OwnerCheck asserts the inverse lookup of Child. An empty Owner means the
// child has no owner.
type OwnerCheck struct {
	Child string `yaml:"child" json:"child"`
	Owner string `yaml:"owner" json:"owner"`
}

// Parse decodes a YAML script. Unknown fields are rejected.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, types.ErrEmptyScript
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, types.ErrEmptyScript
	}
	return &s, nil
}

// Load reads and parses the script at path. A script without a name takes
// the file path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}
