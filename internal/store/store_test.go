package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

func newSlideStore() *Store[types.Slide, types.SlideGPU] {
	return New[types.Slide, types.SlideGPU](types.KindSlide, nil)
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name   string
		record *types.Record[types.Slide, types.SlideGPU]
		wantOK bool
	}{
		{
			name:   "record with cpu and gpu payloads",
			record: types.NewRecord(&types.Slide{Name: "a"}, &types.SlideGPU{Texture: 1}),
			wantOK: true,
		},
		{
			name:   "record with empty gpu payload",
			record: types.NewRecord[types.Slide, types.SlideGPU](&types.Slide{Name: "b"}, nil),
			wantOK: true,
		},
		{
			name:   "nil cpu payload is rejected",
			record: types.NewRecord[types.Slide, types.SlideGPU](nil, &types.SlideGPU{}),
			wantOK: false,
		},
		{
			name:   "nil record is rejected",
			record: nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSlideStore()
			id, ok := s.Insert(tt.record)

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.True(t, id.IsNil())
				assert.Equal(t, 0, s.Len(), "failed insert must not store anything")
				return
			}
			assert.False(t, id.IsNil())
			assert.Equal(t, id, tt.record.UID())

			got, ok := s.Get(id)
			require.True(t, ok)
			assert.Same(t, tt.record, got)
		})
	}
}

func TestInsertRejectsRecordWithUID(t *testing.T) {
	s := newSlideStore()
	rec := types.NewRecord[types.Slide, types.SlideGPU](&types.Slide{Name: "a"}, nil)
	_, ok := s.Insert(rec)
	require.True(t, ok)

	other := newSlideStore()
	_, ok = other.Insert(rec)
	assert.False(t, ok, "a record belongs to exactly one store")
	assert.Equal(t, 0, other.Len())
}

func TestInsertMintsFreshUIDs(t *testing.T) {
	s := newSlideStore()
	seen := make(map[uid.UID]bool)
	for i := 0; i < 500; i++ {
		id, ok := s.Insert(types.NewRecord[types.Slide, types.SlideGPU](&types.Slide{}, nil))
		require.True(t, ok)
		require.False(t, seen[id], "uid %s issued twice", id)
		seen[id] = true
	}
	assert.Equal(t, 500, s.Len())
}

func TestInsertUsesMinter(t *testing.T) {
	fixed := uid.MustParse("01890000-0000-7000-8000-000000000001")
	s := New[types.Slide, types.SlideGPU](types.KindSlide, func() uid.UID { return fixed })

	id, ok := s.Insert(types.NewRecord[types.Slide, types.SlideGPU](&types.Slide{}, nil))
	require.True(t, ok)
	assert.Equal(t, fixed, id)

	nilMint := New[types.Slide, types.SlideGPU](types.KindSlide, func() uid.UID { return uid.Nil })
	_, ok = nilMint.Insert(types.NewRecord[types.Slide, types.SlideGPU](&types.Slide{}, nil))
	assert.False(t, ok, "a nil uid from the minter fails the insert")
}

func TestRemove(t *testing.T) {
	s := newSlideStore()
	id, ok := s.Insert(types.NewRecord[types.Slide, types.SlideGPU](&types.Slide{Name: "a"}, nil))
	require.True(t, ok)

	assert.True(t, s.Remove(id), "first remove succeeds")
	assert.False(t, s.Remove(id), "second remove reports absence")
	assert.False(t, s.Contains(id))
	assert.Equal(t, 0, s.Len())
}

func TestHandleGoesEmptyAfterRemove(t *testing.T) {
	s := newSlideStore()
	id, ok := s.Insert(types.NewRecord(&types.Slide{Name: "a"}, &types.SlideGPU{Texture: 9}))
	require.True(t, ok)

	h, ok := s.Handle(id)
	require.True(t, ok)
	rec, ok := h.Resolve()
	require.True(t, ok)
	assert.Equal(t, "a", rec.CPU().Name)

	require.True(t, s.Remove(id))
	_, ok = h.Resolve()
	assert.False(t, ok)

	_, ok = s.Handle(id)
	assert.False(t, ok, "no handle for a removed uid")
}

func TestUIDsAndAny(t *testing.T) {
	s := newSlideStore()
	_, ok := s.Any()
	assert.False(t, ok)

	want := make([]uid.UID, 0, 3)
	for i := 0; i < 3; i++ {
		id, ok := s.Insert(types.NewRecord[types.Slide, types.SlideGPU](&types.Slide{}, nil))
		require.True(t, ok)
		want = append(want, id)
	}

	assert.ElementsMatch(t, want, s.UIDs())
	got, ok := s.Any()
	assert.True(t, ok)
	assert.Contains(t, want, got)
	assert.Equal(t, types.KindSlide, s.Kind())
}
