package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// mapResolver is a minimal Resolver backed by a map.
type mapResolver map[uid.UID]*Record[Slide, SlideGPU]

func (m mapResolver) Get(id uid.UID) (*Record[Slide, SlideGPU], bool) {
	r, ok := m[id]
	return r, ok
}

func TestRecordAssign(t *testing.T) {
	tests := []struct {
		name   string
		record *Record[Slide, SlideGPU]
		first  uid.UID
		want   bool
	}{
		{
			name:   "fresh record accepts a uid",
			record: NewRecord[Slide, SlideGPU](&Slide{Name: "s"}, nil),
			first:  uid.New(),
			want:   true,
		},
		{
			name:   "nil uid is rejected",
			record: NewRecord[Slide, SlideGPU](&Slide{Name: "s"}, nil),
			first:  uid.Nil,
			want:   false,
		},
		{
			name:   "nil record is rejected",
			record: nil,
			first:  uid.New(),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.Assign(tt.first))
			if tt.want {
				assert.Equal(t, tt.first, tt.record.UID())
			}
		})
	}
}

func TestRecordAssignIsWriteOnce(t *testing.T) {
	r := NewRecord(&Slide{Name: "s"}, &SlideGPU{Texture: 3})
	first := uid.New()
	require.True(t, r.Assign(first))

	assert.False(t, r.Assign(uid.New()), "second assignment must fail")
	assert.Equal(t, first, r.UID())
}

func TestRecordEmpty(t *testing.T) {
	var nilRecord *Record[Slide, SlideGPU]
	assert.True(t, nilRecord.Empty())
	assert.True(t, NewRecord[Slide, SlideGPU](nil, &SlideGPU{}).Empty())

	r := NewRecord[Slide, SlideGPU](&Slide{}, nil)
	assert.False(t, r.Empty())
	assert.False(t, r.HasGPU(), "nil gpu is the empty gpu payload")
}

func TestHandleResolve(t *testing.T) {
	r := NewRecord(&Slide{Name: "section 12"}, &SlideGPU{Texture: 7})
	id := uid.New()
	require.True(t, r.Assign(id))

	store := mapResolver{id: r}
	h := NewHandle[Slide, SlideGPU](store, id)

	got, ok := h.Resolve()
	require.True(t, ok)
	assert.Equal(t, "section 12", got.CPU().Name)
	assert.Equal(t, uint32(7), got.GPU().Texture)
	assert.True(t, h.Valid())

	delete(store, id)

	got, ok = h.Resolve()
	assert.False(t, ok, "handle must go empty once the store drops the record")
	assert.Nil(t, got)
	assert.Equal(t, id, h.UID())
}

func TestZeroHandleIsEmpty(t *testing.T) {
	var h Handle[Slide, SlideGPU]
	_, ok := h.Resolve()
	assert.False(t, ok)
	assert.False(t, h.Valid())
}
