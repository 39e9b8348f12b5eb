package registry

import (
	"github.com/mesh-intelligence/atlas/internal/notify"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// Event is delivered on every channel. It names the record a mutation
// touched; handlers re-query the registry for the full state.
type Event = notify.Event

// EventType says what kind of mutation fired an Event.
type EventType = notify.EventType

// Event types.
const (
	CreatedEvent    = notify.CreatedEvent
	UpdatedEvent    = notify.UpdatedEvent
	DeletedEvent    = notify.DeletedEvent
	AssociatedEvent = notify.AssociatedEvent
	ReorderedEvent  = notify.ReorderedEvent
	ActivatedEvent  = notify.ActivatedEvent
)

// Channel is a synchronous broadcast of Events.
type Channel = notify.Channel[notify.Event]

// Channel names, used as metric labels and in traces.
const (
	ChannelImageData          = "image_data"
	ChannelParcellationData   = "parcellation_data"
	ChannelLabelTableData     = "label_table_data"
	ChannelSlideData          = "slide_data"
	ChannelSlideStack         = "slide_stack"
	ChannelActiveSlide        = "active_slide"
	ChannelColorMapData       = "color_map_data"
	ChannelIsoMeshData        = "iso_mesh_data"
	ChannelLabelMeshData      = "label_mesh_data"
	ChannelImageLandmarkGroup = "image_landmark_group"
	ChannelSlideLandmarkGroup = "slide_landmark_group"
	ChannelSlideAnnotation    = "slide_annotation"
)

// Signals holds one channel per mutation category. A single call may fire
// several channels, in the order documented on the call.
type Signals struct {
	ImageData          *Channel
	ParcellationData   *Channel
	LabelTableData     *Channel
	SlideData          *Channel
	SlideStack         *Channel
	ActiveSlide        *Channel
	ColorMapData       *Channel
	IsoMeshData        *Channel
	LabelMeshData      *Channel
	ImageLandmarkGroup *Channel
	SlideLandmarkGroup *Channel
	SlideAnnotation    *Channel
}

func newSignals() *Signals {
	return &Signals{
		ImageData:          notify.NewChannel[notify.Event](ChannelImageData),
		ParcellationData:   notify.NewChannel[notify.Event](ChannelParcellationData),
		LabelTableData:     notify.NewChannel[notify.Event](ChannelLabelTableData),
		SlideData:          notify.NewChannel[notify.Event](ChannelSlideData),
		SlideStack:         notify.NewChannel[notify.Event](ChannelSlideStack),
		ActiveSlide:        notify.NewChannel[notify.Event](ChannelActiveSlide),
		ColorMapData:       notify.NewChannel[notify.Event](ChannelColorMapData),
		IsoMeshData:        notify.NewChannel[notify.Event](ChannelIsoMeshData),
		LabelMeshData:      notify.NewChannel[notify.Event](ChannelLabelMeshData),
		ImageLandmarkGroup: notify.NewChannel[notify.Event](ChannelImageLandmarkGroup),
		SlideLandmarkGroup: notify.NewChannel[notify.Event](ChannelSlideLandmarkGroup),
		SlideAnnotation:    notify.NewChannel[notify.Event](ChannelSlideAnnotation),
	}
}

// All returns every channel in a stable order.
func (s *Signals) All() []*Channel {
	return []*Channel{
		s.ImageData,
		s.ParcellationData,
		s.LabelTableData,
		s.SlideData,
		s.SlideStack,
		s.ActiveSlide,
		s.ColorMapData,
		s.IsoMeshData,
		s.LabelMeshData,
		s.ImageLandmarkGroup,
		s.SlideLandmarkGroup,
		s.SlideAnnotation,
	}
}

// emit is shorthand for firing one event on ch.
func emit(ch *Channel, t EventType, id uid.UID) {
	ch.Emit(Event{Type: t, UID: id})
}
