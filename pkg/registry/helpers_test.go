package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// recorder subscribes to every channel and keeps "channel:type" entries in
// delivery order.
type recorder struct {
	entries []string
	events  []Event
}

func record(r *Registry) *recorder {
	rec := &recorder{}
	for _, ch := range r.Signals().All() {
		name := ch.Name()
		ch.Subscribe(func(e Event) {
			rec.entries = append(rec.entries, fmt.Sprintf("%s:%s", name, e.Type))
			rec.events = append(rec.events, e)
		})
	}
	return rec
}

func (rec *recorder) reset() {
	rec.entries = nil
	rec.events = nil
}

func mustImage(t *testing.T, r *Registry, name string) uid.UID {
	t.Helper()
	id, ok := r.InsertImage(&types.Image{Path: name, Settings: types.ImageSettings{DisplayName: name}}, nil)
	require.True(t, ok)
	return id
}

func mustParcellation(t *testing.T, r *Registry, name string) uid.UID {
	t.Helper()
	id, ok := r.InsertParcellation(&types.Parcellation{
		Image:       types.Image{Path: name},
		LabelValues: []int64{0, 1, 2, 3},
	}, nil)
	require.True(t, ok)
	return id
}

func mustSlide(t *testing.T, r *Registry, name string) uid.UID {
	t.Helper()
	id, ok := r.InsertSlide(&types.Slide{Name: name}, nil)
	require.True(t, ok)
	return id
}

func mustColorMap(t *testing.T, r *Registry, name string) uid.UID {
	t.Helper()
	id, ok := r.InsertColorMap(types.DefaultColorMap(name), nil)
	require.True(t, ok)
	return id
}

func mustLabelTable(t *testing.T, r *Registry, n int) uid.UID {
	t.Helper()
	id, ok := r.InsertLabelTable(types.NewLabelTable(n), nil)
	require.True(t, ok)
	return id
}

func mustLabelMesh(t *testing.T, r *Registry, label int) uid.UID {
	t.Helper()
	id, ok := r.InsertLabelMesh(&types.LabelMesh{LabelIndex: label}, nil)
	require.True(t, ok)
	return id
}

func mustAnnotation(t *testing.T, r *Registry, name string) uid.UID {
	t.Helper()
	id, ok := r.InsertAnnotation(&types.Annotation{Name: name}, nil)
	require.True(t, ok)
	return id
}

// sequence returns a UID source that yields ids in order, then uid.Nil.
func sequence(ids ...uid.UID) func() uid.UID {
	i := 0
	return func() uid.UID {
		if i >= len(ids) {
			return uid.Nil
		}
		id := ids[i]
		i++
		return id
	}
}
