package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

func TestSubscribersCalledInOrder(t *testing.T) {
	r := New()
	var calls []string
	r.Signals().ImageData.Subscribe(func(Event) { calls = append(calls, "first") })
	r.Signals().ImageData.Subscribe(func(Event) { calls = append(calls, "second") })

	mustImage(t, r, "a")

	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestHandlersSeeCommittedState(t *testing.T) {
	r := New()
	var seen int
	r.Signals().ImageData.Subscribe(func(e Event) {
		if e.Type == DeletedEvent {
			seen = r.NumImages()
		}
	})
	img := mustImage(t, r, "a")
	mustImage(t, r, "b")

	require.True(t, r.UnloadImage(img))
	assert.Equal(t, 1, seen)
}

func TestSignalsAllNamesAreUnique(t *testing.T) {
	r := New()
	names := make(map[string]bool)
	for _, ch := range r.Signals().All() {
		assert.False(t, names[ch.Name()], "duplicate channel %s", ch.Name())
		names[ch.Name()] = true
	}
	assert.Len(t, names, 12)
}

func TestChannelPerMutation(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T, r *Registry)
		want []string
	}{
		{
			name: "insert parcellation",
			run:  func(t *testing.T, r *Registry) { mustParcellation(t, r, "p") },
			want: []string{"parcellation_data:created"},
		},
		{
			name: "insert color map",
			run:  func(t *testing.T, r *Registry) { mustColorMap(t, r, "c") },
			want: []string{"color_map_data:created"},
		},
		{
			name: "insert label table",
			run:  func(t *testing.T, r *Registry) { mustLabelTable(t, r, 2) },
			want: []string{"label_table_data:created"},
		},
		{
			name: "associate label table",
			run: func(t *testing.T, r *Registry) {
				p := mustParcellation(t, r, "p")
				lt := mustLabelTable(t, r, 2)
				require.True(t, r.AssociateLabelTableWithParcellation(p, lt))
			},
			want: []string{"parcellation_data:created", "label_table_data:created", "label_table_data:associated"},
		},
		{
			name: "associate color map",
			run: func(t *testing.T, r *Registry) {
				img := mustImage(t, r, "a")
				c := mustColorMap(t, r, "c")
				require.True(t, r.AssociateColorMapWithImage(img, c))
			},
			want: []string{"image_data:created", "color_map_data:created", "image_data:associated"},
		},
		{
			name: "slide landmark group for slide",
			run: func(t *testing.T, r *Registry) {
				s := mustSlide(t, r, "s")
				_, ok := r.InsertLandmarkGroupForSlide(s, &types.LandmarkGroup{Name: "g"})
				require.True(t, ok)
			},
			want: []string{
				"slide_data:created", "slide_stack:created",
				"slide_landmark_group:created", "slide_landmark_group:associated",
			},
		},
		{
			name: "set slide order",
			run: func(t *testing.T, r *Registry) {
				a := mustSlide(t, r, "a")
				b := mustSlide(t, r, "b")
				require.True(t, r.SetSlideOrder([]uid.UID{b, a}))
			},
			want: []string{
				"slide_data:created", "slide_stack:created",
				"slide_data:created", "slide_stack:created",
				"slide_stack:reordered",
			},
		},
		{
			name: "unload color map",
			run: func(t *testing.T, r *Registry) {
				c := mustColorMap(t, r, "c")
				require.True(t, r.UnloadColorMap(c))
			},
			want: []string{"color_map_data:created", "color_map_data:deleted"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			rec := record(r)
			tt.run(t, r)
			assert.Equal(t, tt.want, rec.entries)
		})
	}
}

func TestHandlerPanicPropagatesAfterMutation(t *testing.T) {
	r := New()
	r.Signals().SlideData.Subscribe(func(Event) { panic("boom") })

	assert.Panics(t, func() {
		_, _ = r.InsertSlide(&types.Slide{Name: "s"}, nil)
	})
	assert.Equal(t, 1, r.NumSlides(), "the mutation is applied before handlers run")
}
