package scenario

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// expect checks every assertion of the step and records each miss.
func (r *Runner) expect(st Step) (StepResult, error) {
	if st.Expect == nil {
		return StepResult{}, fmt.Errorf("%w: expect", types.ErrMissingArg)
	}
	e := st.Expect
	before := len(r.report.Failures)

	for _, slot := range sortedKeys(e.Active) {
		if err := r.expectActive(slot, e.Active[slot]); err != nil {
			return StepResult{}, err
		}
	}
	for _, kind := range sortedKeys(e.Order) {
		if err := r.expectOrder(kind, e.Order[kind]); err != nil {
			return StepResult{}, err
		}
	}
	for _, kind := range sortedKeys(e.Count) {
		if err := r.expectCount(kind, e.Count[kind]); err != nil {
			return StepResult{}, err
		}
	}
	for _, n := range e.Loaded {
		b, err := r.lookup("loaded", n)
		if err != nil {
			return StepResult{}, err
		}
		if !r.reg.Contains(b.id) {
			r.report.fail(r.step, "%s is not loaded", n)
		}
	}
	for _, n := range e.Unloaded {
		b, err := r.lookup("unloaded", n)
		if err != nil {
			return StepResult{}, err
		}
		if r.reg.Contains(b.id) {
			r.report.fail(r.step, "%s is still loaded", n)
		}
	}
	for _, c := range e.Children {
		if err := r.expectChildren(c); err != nil {
			return StepResult{}, err
		}
	}
	for _, c := range e.Owners {
		if err := r.expectOwner(c); err != nil {
			return StepResult{}, err
		}
	}
	return StepResult{OK: len(r.report.Failures) == before}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// label renders a UID as its bound name for failure messages.
func (r *Runner) label(id uid.UID, ok bool) string {
	if !ok || id.IsNil() {
		return "<none>"
	}
	return r.nameOf(id)
}

func (r *Runner) labels(ids []uid.UID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = r.nameOf(id)
	}
	return "[" + strings.Join(names, " ") + "]"
}

// resolveNames maps names to UIDs.
func (r *Runner) resolveNames(field string, names []string) ([]uid.UID, error) {
	ids := make([]uid.UID, len(names))
	for i, n := range names {
		b, err := r.lookup(field, n)
		if err != nil {
			return nil, err
		}
		ids[i] = b.id
	}
	return ids, nil
}

func (r *Runner) expectActive(slot, want string) error {
	var got uid.UID
	var ok bool
	switch types.Kind(slot) {
	case types.KindImage:
		got, ok = r.reg.ActiveImage()
	case types.KindParcellation:
		got, ok = r.reg.ActiveParcellation()
	case types.KindSlide:
		got, ok = r.reg.ActiveSlide()
	default:
		return fmt.Errorf("%w: active %q", types.ErrInvalidArg, slot)
	}

	if want == "" {
		if ok {
			r.report.fail(r.step, "active %s is %s, want <none>", slot, r.label(got, ok))
		}
		return nil
	}
	b, err := r.lookup("active", want)
	if err != nil {
		return err
	}
	if !ok || got != b.id {
		r.report.fail(r.step, "active %s is %s, want %s", slot, r.label(got, ok), want)
	}
	return nil
}

func (r *Runner) expectOrder(kind string, names []string) error {
	want, err := r.resolveNames("order", names)
	if err != nil {
		return err
	}
	var got []uid.UID
	switch types.Kind(kind) {
	case types.KindImage:
		got = r.reg.OrderedImageUIDs()
	case types.KindParcellation:
		got = r.reg.OrderedParcellationUIDs()
	case types.KindSlide:
		got = r.reg.OrderedSlideUIDs()
	case types.KindColorMap:
		got = r.reg.OrderedColorMapUIDs()
	default:
		return fmt.Errorf("%w: order %q", types.ErrInvalidArg, kind)
	}
	if !slices.Equal(got, want) {
		r.report.fail(r.step, "%s order is %s, want %s", kind, r.labels(got), r.labels(want))
	}
	return nil
}

func (r *Runner) expectCount(kind string, want int) error {
	k, err := parseKind(kind)
	if err != nil {
		return err
	}
	if got := r.reg.Stats().Counts[k]; got != want {
		r.report.fail(r.step, "%s count is %d, want %d", kind, got, want)
	}
	return nil
}

func (r *Runner) expectChildren(c ChildrenCheck) error {
	owner, err := r.lookup("owner", c.Owner)
	if err != nil {
		return err
	}
	want, err := r.resolveNames("names", c.Names)
	if err != nil {
		return err
	}
	kind, err := parseKind(c.Kind)
	if err != nil {
		return err
	}

	var got []uid.UID
	single := func(id uid.UID, ok bool) []uid.UID {
		if !ok {
			return nil
		}
		return []uid.UID{id}
	}
	switch {
	case owner.kind == types.KindImage && kind == types.KindParcellation:
		got = single(r.reg.DefaultParcellationOfImage(owner.id))
	case owner.kind == types.KindImage && kind == types.KindColorMap:
		got = single(r.reg.ColorMapOfImage(owner.id))
	case owner.kind == types.KindImage && kind == types.KindIsoMesh:
		got = r.reg.IsoMeshesOfImage(owner.id)
	case owner.kind == types.KindImage && kind == types.KindImageLandmarkGroup:
		got = r.reg.LandmarkGroupsOfImage(owner.id)
	case owner.kind == types.KindParcellation && kind == types.KindLabelTable:
		got = single(r.reg.LabelTableOfParcellation(owner.id))
	case owner.kind == types.KindParcellation && kind == types.KindLabelMesh:
		entries := r.reg.LabelMeshesOfParcellation(owner.id)
		for _, label := range slices.Sorted(maps.Keys(entries)) {
			got = append(got, entries[label])
		}
	case owner.kind == types.KindParcellation && kind == types.KindImage:
		got = r.reg.ImagesUsingParcellation(owner.id)
	case owner.kind == types.KindColorMap && kind == types.KindImage:
		got = r.reg.ImagesUsingColorMap(owner.id)
	case owner.kind == types.KindSlide && kind == types.KindSlideLandmarkGroup:
		got = r.reg.LandmarkGroupsOfSlide(owner.id)
	case owner.kind == types.KindSlide && kind == types.KindAnnotation:
		got = r.reg.AnnotationsOfSlide(owner.id)
	default:
		return fmt.Errorf("%w: children %s of %s", types.ErrUnsupportedOp, kind, owner.kind)
	}
	if !slices.Equal(got, want) {
		r.report.fail(r.step, "%s of %s are %s, want %s", kind, c.Owner, r.labels(got), r.labels(want))
	}
	return nil
}

func (r *Runner) expectOwner(c OwnerCheck) error {
	child, err := r.lookup("child", c.Child)
	if err != nil {
		return err
	}
	var got uid.UID
	var ok bool
	switch child.kind {
	case types.KindIsoMesh:
		got, ok = r.reg.ImageOfIsoMesh(child.id)
	case types.KindLabelMesh:
		got, ok = r.reg.ParcellationOfLabelMesh(child.id)
	case types.KindImageLandmarkGroup:
		got, ok = r.reg.ImageOfLandmarkGroup(child.id)
	case types.KindSlideLandmarkGroup:
		got, ok = r.reg.SlideOfLandmarkGroup(child.id)
	case types.KindAnnotation:
		got, ok = r.reg.SlideOfAnnotation(child.id)
	default:
		return fmt.Errorf("%w: owner of %s", types.ErrUnsupportedOp, child.kind)
	}

	if c.Owner == "" {
		if ok {
			r.report.fail(r.step, "owner of %s is %s, want <none>", c.Child, r.label(got, ok))
		}
		return nil
	}
	want, err := r.lookup("owner", c.Owner)
	if err != nil {
		return err
	}
	if !ok || got != want.id {
		r.report.fail(r.step, "owner of %s is %s, want %s", c.Child, r.label(got, ok), c.Owner)
	}
	return nil
}
