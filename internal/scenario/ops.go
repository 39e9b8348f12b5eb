package scenario

import (
	"fmt"

	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// bind records the result of an insert under st.As.
func (r *Runner) bind(st Step, kind types.Kind, id uid.UID, ok bool) (StepResult, error) {
	res := r.checkResult(st, ok)
	if !ok || st.As == "" {
		return res, nil
	}
	r.names[st.As] = binding{id: id, kind: kind}
	r.byUID[id] = st.As
	r.nameTrace(id, st.As)
	res.Bound = st.As
	res.UID = id.String()
	return res, nil
}

// checkAs rejects a name that is already bound.
func (r *Runner) checkAs(st Step) error {
	if st.As == "" {
		return nil
	}
	if _, taken := r.names[st.As]; taken {
		return fmt.Errorf("%w: %q", types.ErrDuplicateName, st.As)
	}
	return nil
}

// owner resolves the optional parent of an insert and checks its kind.
func (r *Runner) owner(st Step, want types.Kind) (uid.UID, bool, error) {
	if st.Owner == "" {
		return uid.Nil, false, nil
	}
	b, err := r.lookup("owner", st.Owner)
	if err != nil {
		return uid.Nil, false, err
	}
	if b.kind != want {
		return uid.Nil, false, fmt.Errorf("%w: owner %q is a %s, want %s", types.ErrInvalidArg, st.Owner, b.kind, want)
	}
	return b.id, true, nil
}

func (r *Runner) insertImage(st Step) (StepResult, error) {
	if err := r.checkAs(st); err != nil {
		return StepResult{}, err
	}
	id, ok := r.reg.InsertImage(&types.Image{
		Path:     st.Name,
		Settings: types.ImageSettings{DisplayName: st.Name, Visible: true, Opacity: 1},
	}, nil)
	return r.bind(st, types.KindImage, id, ok)
}

func (r *Runner) insertParcellation(st Step) (StepResult, error) {
	if err := r.checkAs(st); err != nil {
		return StepResult{}, err
	}
	if st.Labels < 0 {
		return StepResult{}, fmt.Errorf("%w: labels %d", types.ErrInvalidArg, st.Labels)
	}
	values := make([]int64, st.Labels)
	for i := range values {
		values[i] = int64(i)
	}
	id, ok := r.reg.InsertParcellation(&types.Parcellation{
		Image:       types.Image{Path: st.Name, Settings: types.ImageSettings{DisplayName: st.Name, Visible: true, Opacity: 1}},
		LabelValues: values,
	}, nil)
	return r.bind(st, types.KindParcellation, id, ok)
}

func (r *Runner) insertSlide(st Step) (StepResult, error) {
	if err := r.checkAs(st); err != nil {
		return StepResult{}, err
	}
	id, ok := r.reg.InsertSlide(&types.Slide{Name: st.Name, Visible: true, Opacity: 1}, nil)
	return r.bind(st, types.KindSlide, id, ok)
}

func (r *Runner) insertIsoMesh(st Step) (StepResult, error) {
	if err := r.checkAs(st); err != nil {
		return StepResult{}, err
	}
	img, has, err := r.owner(st, types.KindImage)
	if err != nil {
		return StepResult{}, err
	}
	mesh := &types.Mesh{Name: st.Name, IsoValue: st.IsoValue, Visible: true, Opacity: 1}
	var id uid.UID
	var ok bool
	if has {
		id, ok = r.reg.InsertIsoMeshForImage(img, mesh, nil)
	} else {
		id, ok = r.reg.InsertIsoMesh(mesh, nil)
	}
	return r.bind(st, types.KindIsoMesh, id, ok)
}

func (r *Runner) insertLabelMesh(st Step) (StepResult, error) {
	if err := r.checkAs(st); err != nil {
		return StepResult{}, err
	}
	parc, has, err := r.owner(st, types.KindParcellation)
	if err != nil {
		return StepResult{}, err
	}
	mesh := &types.LabelMesh{Mesh: types.Mesh{Name: st.Name, Visible: true, Opacity: 1}, LabelIndex: st.Label}
	var id uid.UID
	var ok bool
	if has {
		id, ok = r.reg.InsertLabelMeshForParcellation(parc, mesh, nil)
	} else {
		id, ok = r.reg.InsertLabelMesh(mesh, nil)
	}
	return r.bind(st, types.KindLabelMesh, id, ok)
}

func (r *Runner) insertColorMap(st Step) (StepResult, error) {
	if err := r.checkAs(st); err != nil {
		return StepResult{}, err
	}
	id, ok := r.reg.InsertColorMap(types.DefaultColorMap(st.Name), nil)
	return r.bind(st, types.KindColorMap, id, ok)
}

func (r *Runner) insertLabelTable(st Step) (StepResult, error) {
	if err := r.checkAs(st); err != nil {
		return StepResult{}, err
	}
	if st.Labels < 0 {
		return StepResult{}, fmt.Errorf("%w: labels %d", types.ErrInvalidArg, st.Labels)
	}
	id, ok := r.reg.InsertLabelTable(types.NewLabelTable(st.Labels), nil)
	return r.bind(st, types.KindLabelTable, id, ok)
}

func (r *Runner) insertImageLandmarkGroup(st Step) (StepResult, error) {
	if err := r.checkAs(st); err != nil {
		return StepResult{}, err
	}
	img, has, err := r.owner(st, types.KindImage)
	if err != nil {
		return StepResult{}, err
	}
	grp := &types.LandmarkGroup{Name: st.Name, Visible: true, Opacity: 1}
	var id uid.UID
	var ok bool
	if has {
		id, ok = r.reg.InsertLandmarkGroupForImage(img, grp)
	} else {
		id, ok = r.reg.InsertImageLandmarkGroup(grp)
	}
	return r.bind(st, types.KindImageLandmarkGroup, id, ok)
}

func (r *Runner) insertSlideLandmarkGroup(st Step) (StepResult, error) {
	if err := r.checkAs(st); err != nil {
		return StepResult{}, err
	}
	slide, has, err := r.owner(st, types.KindSlide)
	if err != nil {
		return StepResult{}, err
	}
	grp := &types.LandmarkGroup{Name: st.Name, Visible: true, Opacity: 1}
	var id uid.UID
	var ok bool
	if has {
		id, ok = r.reg.InsertLandmarkGroupForSlide(slide, grp)
	} else {
		id, ok = r.reg.InsertSlideLandmarkGroup(grp)
	}
	return r.bind(st, types.KindSlideLandmarkGroup, id, ok)
}

func (r *Runner) insertAnnotation(st Step) (StepResult, error) {
	if err := r.checkAs(st); err != nil {
		return StepResult{}, err
	}
	slide, has, err := r.owner(st, types.KindSlide)
	if err != nil {
		return StepResult{}, err
	}
	ann := &types.Annotation{Name: st.Name, Visible: true, Color: types.Opaque(1, 1, 0)}
	var id uid.UID
	var ok bool
	if has {
		id, ok = r.reg.InsertAnnotationForSlide(slide, ann, nil)
	} else {
		id, ok = r.reg.InsertAnnotation(ann, nil)
	}
	return r.bind(st, types.KindAnnotation, id, ok)
}

func (r *Runner) unload(st Step) (StepResult, error) {
	b, err := r.lookup("ref", st.Ref)
	if err != nil {
		return StepResult{}, err
	}
	return r.checkResult(st, r.reg.Unload(b.id)), nil
}

// update renames a record. For a label table it renames the entry at
// label.
func (r *Runner) update(st Step) (StepResult, error) {
	b, err := r.lookup("ref", st.Ref)
	if err != nil {
		return StepResult{}, err
	}
	name := st.Name
	var ok bool
	switch b.kind {
	case types.KindImage:
		ok = r.reg.UpdateImage(b.id, func(im *types.Image) { im.Settings.DisplayName = name })
	case types.KindParcellation:
		ok = r.reg.UpdateParcellation(b.id, func(p *types.Parcellation) { p.Image.Settings.DisplayName = name })
	case types.KindSlide:
		ok = r.reg.UpdateSlide(b.id, func(s *types.Slide) { s.Name = name })
	case types.KindIsoMesh:
		ok = r.reg.UpdateIsoMesh(b.id, func(m *types.Mesh) { m.Name = name })
	case types.KindLabelMesh:
		ok = r.reg.UpdateLabelMesh(b.id, func(m *types.LabelMesh) { m.Mesh.Name = name })
	case types.KindColorMap:
		ok = r.reg.UpdateColorMap(b.id, func(c *types.ColorMap) { c.Name = name })
	case types.KindImageLandmarkGroup:
		ok = r.reg.UpdateImageLandmarkGroup(b.id, func(g *types.LandmarkGroup) { g.Name = name })
	case types.KindSlideLandmarkGroup:
		ok = r.reg.UpdateSlideLandmarkGroup(b.id, func(g *types.LandmarkGroup) { g.Name = name })
	case types.KindAnnotation:
		ok = r.reg.UpdateAnnotation(b.id, func(a *types.Annotation) { a.Name = name })
	case types.KindLabelTable:
		if h, loaded := r.reg.LabelTable(b.id); loaded {
			if rec, live := h.Resolve(); live && (st.Label < 0 || st.Label >= rec.CPU().NumLabels()) {
				return StepResult{}, fmt.Errorf("%w: label %d outside table of %d", types.ErrInvalidArg, st.Label, rec.CPU().NumLabels())
			}
		}
		ok = r.reg.UpdateLabelTable(b.id, func(t *types.LabelTable) { t.Labels[st.Label].Name = name })
	default:
		return StepResult{}, fmt.Errorf("%w: update %s", types.ErrUnsupportedOp, b.kind)
	}
	return r.checkResult(st, ok), nil
}

// associate picks the association from the kinds of the two endpoints.
func (r *Runner) associate(st Step) (StepResult, error) {
	owner, err := r.lookup("owner", st.Owner)
	if err != nil {
		return StepResult{}, err
	}
	child, err := r.lookup("child", st.Child)
	if err != nil {
		return StepResult{}, err
	}

	var ok bool
	switch {
	case owner.kind == types.KindImage && child.kind == types.KindParcellation:
		ok = r.reg.AssociateDefaultParcellationWithImage(owner.id, child.id)
	case owner.kind == types.KindImage && child.kind == types.KindColorMap:
		ok = r.reg.AssociateColorMapWithImage(owner.id, child.id)
	case owner.kind == types.KindImage && child.kind == types.KindIsoMesh:
		ok = r.reg.AssociateIsoMeshWithImage(owner.id, child.id)
	case owner.kind == types.KindImage && child.kind == types.KindImageLandmarkGroup:
		ok = r.reg.AssociateLandmarkGroupWithImage(owner.id, child.id)
	case owner.kind == types.KindParcellation && child.kind == types.KindLabelTable:
		ok = r.reg.AssociateLabelTableWithParcellation(owner.id, child.id)
	case owner.kind == types.KindParcellation && child.kind == types.KindLabelMesh:
		ok = r.reg.AssociateLabelMeshWithParcellation(owner.id, child.id)
	case owner.kind == types.KindSlide && child.kind == types.KindSlideLandmarkGroup:
		ok = r.reg.AssociateLandmarkGroupWithSlide(owner.id, child.id)
	case owner.kind == types.KindSlide && child.kind == types.KindAnnotation:
		ok = r.reg.AssociateAnnotationWithSlide(owner.id, child.id)
	default:
		return StepResult{}, fmt.Errorf("%w: associate %s with %s", types.ErrUnsupportedOp, child.kind, owner.kind)
	}
	return r.checkResult(st, ok), nil
}

// setActive selects Ref, or clears the slot named by Kind when Ref is empty.
func (r *Runner) setActive(st Step) (StepResult, error) {
	id := uid.Nil
	var kind types.Kind
	if st.Ref != "" {
		b, err := r.lookup("ref", st.Ref)
		if err != nil {
			return StepResult{}, err
		}
		id, kind = b.id, b.kind
	} else {
		k, err := parseKind(st.Kind)
		if err != nil {
			return StepResult{}, err
		}
		kind = k
	}

	var ok bool
	switch kind {
	case types.KindImage:
		ok = r.reg.SetActiveImage(id)
	case types.KindParcellation:
		ok = r.reg.SetActiveParcellation(id)
	case types.KindSlide:
		ok = r.reg.SetActiveSlide(id)
	default:
		return StepResult{}, fmt.Errorf("%w: set_active %s", types.ErrUnsupportedOp, kind)
	}
	return r.checkResult(st, ok), nil
}

// setOrder replaces a top-level order, or a child list when Owner is set.
func (r *Runner) setOrder(st Step) (StepResult, error) {
	kind, err := parseKind(st.Kind)
	if err != nil {
		return StepResult{}, err
	}
	ids := make([]uid.UID, len(st.Order))
	for i, n := range st.Order {
		b, err := r.lookup("order", n)
		if err != nil {
			return StepResult{}, err
		}
		ids[i] = b.id
	}

	var ok bool
	if st.Owner != "" {
		owner, err := r.lookup("owner", st.Owner)
		if err != nil {
			return StepResult{}, err
		}
		switch {
		case owner.kind == types.KindImage && kind == types.KindImageLandmarkGroup:
			ok = r.reg.SetImageLandmarkGroupOrder(owner.id, ids)
		case owner.kind == types.KindSlide && kind == types.KindSlideLandmarkGroup:
			ok = r.reg.SetSlideLandmarkGroupOrder(owner.id, ids)
		case owner.kind == types.KindSlide && kind == types.KindAnnotation:
			ok = r.reg.SetAnnotationOrder(owner.id, ids)
		default:
			return StepResult{}, fmt.Errorf("%w: set_order %s of %s", types.ErrUnsupportedOp, kind, owner.kind)
		}
		return r.checkResult(st, ok), nil
	}

	switch kind {
	case types.KindImage:
		ok = r.reg.SetImageOrder(ids)
	case types.KindParcellation:
		ok = r.reg.SetParcellationOrder(ids)
	case types.KindSlide:
		ok = r.reg.SetSlideOrder(ids)
	case types.KindColorMap:
		ok = r.reg.SetColorMapOrder(ids)
	default:
		return StepResult{}, fmt.Errorf("%w: set_order %s", types.ErrUnsupportedOp, kind)
	}
	return r.checkResult(st, ok), nil
}

// move shifts a slide or annotation within its stack. An image can only be
// moved to the back, which makes it the reference image.
func (r *Runner) move(st Step) (StepResult, error) {
	b, err := r.lookup("ref", st.Ref)
	if err != nil {
		return StepResult{}, err
	}

	var moves map[string]func(uid.UID) bool
	switch b.kind {
	case types.KindSlide:
		moves = map[string]func(uid.UID) bool{
			MoveBackward: r.reg.MoveSlideBackward,
			MoveForward:  r.reg.MoveSlideForward,
			MoveToBack:   r.reg.MoveSlideToBack,
			MoveToFront:  r.reg.MoveSlideToFront,
		}
	case types.KindAnnotation:
		moves = map[string]func(uid.UID) bool{
			MoveBackward: r.reg.MoveAnnotationBackward,
			MoveForward:  r.reg.MoveAnnotationForward,
			MoveToBack:   r.reg.MoveAnnotationToBack,
			MoveToFront:  r.reg.MoveAnnotationToFront,
		}
	case types.KindImage:
		moves = map[string]func(uid.UID) bool{
			MoveToBack: r.reg.SetReferenceImage,
		}
	default:
		return StepResult{}, fmt.Errorf("%w: move %s", types.ErrUnsupportedOp, b.kind)
	}

	if st.Direction == "" {
		return StepResult{}, fmt.Errorf("%w: direction", types.ErrMissingArg)
	}
	fn, ok := moves[st.Direction]
	if !ok {
		return StepResult{}, fmt.Errorf("%w: direction %q for %s", types.ErrInvalidArg, st.Direction, b.kind)
	}
	return r.checkResult(st, fn(b.id)), nil
}
