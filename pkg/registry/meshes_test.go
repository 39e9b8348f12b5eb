package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

func TestLabelMeshReplacedAtSameIndex(t *testing.T) {
	r := New()
	parc := mustParcellation(t, r, "p")
	m1 := mustLabelMesh(t, r, 2)
	m2 := mustLabelMesh(t, r, 2)

	require.True(t, r.AssociateLabelMeshWithParcellation(parc, m1))
	got, ok := r.LabelMeshOfParcellation(parc, 2)
	require.True(t, ok)
	assert.Equal(t, m1, got)

	require.True(t, r.AssociateLabelMeshWithParcellation(parc, m2))

	got, ok = r.LabelMeshOfParcellation(parc, 2)
	require.True(t, ok)
	assert.Equal(t, m2, got)
	assert.Equal(t, map[int]uid.UID{2: m2}, r.LabelMeshesOfParcellation(parc))

	_, ok = r.LabelMesh(m1)
	assert.True(t, ok, "the displaced mesh stays loaded")
	_, ok = r.ParcellationOfLabelMesh(m1)
	assert.False(t, ok)
	owner, ok := r.ParcellationOfLabelMesh(m2)
	require.True(t, ok)
	assert.Equal(t, parc, owner)
}

func TestLabelMeshUnloadDetaches(t *testing.T) {
	r := New()
	parc := mustParcellation(t, r, "p")
	id, ok := r.InsertLabelMeshForParcellation(parc, &types.LabelMesh{LabelIndex: 1}, nil)
	require.True(t, ok)
	other := mustLabelMesh(t, r, 3)
	require.True(t, r.AssociateLabelMeshWithParcellation(parc, other))

	require.True(t, r.UnloadLabelMesh(id))

	_, ok = r.LabelMeshOfParcellation(parc, 1)
	assert.False(t, ok)
	assert.Equal(t, map[int]uid.UID{3: other}, r.LabelMeshesOfParcellation(parc))
	assert.Equal(t, 1, r.NumLabelMeshes())
}

func TestLabelMeshesOfParcellationIsACopy(t *testing.T) {
	r := New()
	parc := mustParcellation(t, r, "p")
	m := mustLabelMesh(t, r, 1)
	require.True(t, r.AssociateLabelMeshWithParcellation(parc, m))

	got := r.LabelMeshesOfParcellation(parc)
	delete(got, 1)

	_, ok := r.LabelMeshOfParcellation(parc, 1)
	assert.True(t, ok)
	assert.Empty(t, r.LabelMeshesOfParcellation(uid.New()))
}

func TestInsertForOwnerRequiresOwner(t *testing.T) {
	r := New()
	rec := record(r)
	missing := uid.New()

	_, ok := r.InsertIsoMeshForImage(missing, &types.Mesh{}, nil)
	assert.False(t, ok)
	_, ok = r.InsertLabelMeshForParcellation(missing, &types.LabelMesh{}, nil)
	assert.False(t, ok)
	_, ok = r.InsertLandmarkGroupForImage(missing, &types.LandmarkGroup{})
	assert.False(t, ok)
	_, ok = r.InsertLandmarkGroupForSlide(missing, &types.LandmarkGroup{})
	assert.False(t, ok)
	_, ok = r.InsertAnnotationForSlide(missing, &types.Annotation{}, nil)
	assert.False(t, ok)

	assert.Equal(t, 0, r.NumIsoMeshes())
	assert.Equal(t, 0, r.NumLabelMeshes())
	assert.Equal(t, 0, r.NumImageLandmarkGroups())
	assert.Equal(t, 0, r.NumSlideLandmarkGroups())
	assert.Equal(t, 0, r.NumAnnotations())
	assert.Empty(t, rec.entries)
}

func TestIsoMeshes(t *testing.T) {
	r := New()
	rec := record(r)
	a := mustImage(t, r, "a")
	b := mustImage(t, r, "b")
	rec.reset()

	m1, ok := r.InsertIsoMeshForImage(a, &types.Mesh{Name: "skin", IsoValue: 40}, nil)
	require.True(t, ok)
	assert.Equal(t, []string{"iso_mesh_data:created", "iso_mesh_data:associated"}, rec.entries)

	m2, ok := r.InsertIsoMeshForImage(a, &types.Mesh{Name: "bone", IsoValue: 300}, nil)
	require.True(t, ok)
	assert.Equal(t, []uid.UID{m1, m2}, r.IsoMeshesOfImage(a))

	require.True(t, r.AssociateIsoMeshWithImage(b, m1))
	assert.Equal(t, []uid.UID{m2}, r.IsoMeshesOfImage(a), "a mesh belongs to one image")
	assert.Equal(t, []uid.UID{m1}, r.IsoMeshesOfImage(b))
	owner, _ := r.ImageOfIsoMesh(m1)
	assert.Equal(t, b, owner)

	require.True(t, r.UnloadIsoMesh(m1))
	assert.Empty(t, r.IsoMeshesOfImage(b))
	_, ok = r.ImageOfIsoMesh(m1)
	assert.False(t, ok)
}

func TestImageUnloadLeavesMeshOwnerDangling(t *testing.T) {
	r := New()
	img := mustImage(t, r, "a")
	mesh, ok := r.InsertIsoMeshForImage(img, &types.Mesh{}, nil)
	require.True(t, ok)

	require.True(t, r.UnloadImage(img))

	assert.Empty(t, r.IsoMeshesOfImage(img))
	_, ok = r.IsoMesh(mesh)
	assert.True(t, ok)
	owner, ok := r.ImageOfIsoMesh(mesh)
	require.True(t, ok)
	assert.Equal(t, img, owner)
	assert.False(t, r.Contains(owner))
}

func TestParcellationUnloadKeepsLabelTable(t *testing.T) {
	r := New()
	parc := mustParcellation(t, r, "p")
	table := mustLabelTable(t, r, 4)
	require.True(t, r.AssociateLabelTableWithParcellation(parc, table))

	require.True(t, r.UnloadParcellation(parc))

	_, ok := r.LabelTableOfParcellation(parc)
	assert.False(t, ok)
	_, ok = r.LabelTable(table)
	assert.True(t, ok)
	assert.Equal(t, []uid.UID{table}, r.LabelTableUIDs())
}
