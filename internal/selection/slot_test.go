package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/atlas/pkg/uid"
)

func TestSlotSet(t *testing.T) {
	present := uid.New()
	missing := uid.New()
	exists := func(id uid.UID) bool { return id == present }

	var s Slot
	_, ok := s.Get()
	assert.False(t, ok, "zero slot is empty")

	assert.False(t, s.Set(missing, exists))
	_, ok = s.Get()
	assert.False(t, ok, "rejected set leaves the slot unchanged")

	assert.True(t, s.Set(present, exists))
	got, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, present, got)
	assert.True(t, s.Is(present))

	assert.False(t, s.Set(missing, exists))
	got, _ = s.Get()
	assert.Equal(t, present, got)

	assert.True(t, s.Set(uid.Nil, nil), "none always succeeds")
	_, ok = s.Get()
	assert.False(t, ok)
	assert.False(t, s.Is(uid.Nil))
}

func TestSlotClear(t *testing.T) {
	id := uid.New()
	var s Slot
	s.Set(id, func(uid.UID) bool { return true })
	s.Clear()
	_, ok := s.Get()
	assert.False(t, ok)
}

func TestSlideAfterRemoval(t *testing.T) {
	a, b, c := uid.New(), uid.New(), uid.New()

	tests := []struct {
		name      string
		prevIndex int
		remaining []uid.UID
		want      uid.UID
		wantOK    bool
	}{
		{name: "middle removed activates predecessor", prevIndex: 1, remaining: []uid.UID{a, c}, want: a, wantOK: true},
		{name: "last removed activates new last", prevIndex: 2, remaining: []uid.UID{a, b}, want: b, wantOK: true},
		{name: "first removed clamps to zero", prevIndex: 0, remaining: []uid.UID{b, c}, want: b, wantOK: true},
		{name: "only slide removed clears", prevIndex: 0, remaining: nil, want: uid.Nil, wantOK: false},
		{name: "stale index is clamped into range", prevIndex: 9, remaining: []uid.UID{a}, want: a, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SlideAfterRemoval(tt.prevIndex, tt.remaining)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImageAndParcellationAfterRemoval(t *testing.T) {
	id := uid.New()
	got, ok := ImageAfterRemoval(func() (uid.UID, bool) { return id, true })
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = ImageAfterRemoval(func() (uid.UID, bool) { return uid.Nil, false })
	assert.False(t, ok)
	_, ok = ImageAfterRemoval(nil)
	assert.False(t, ok)

	_, ok = ParcellationAfterRemoval()
	assert.False(t, ok)
}
