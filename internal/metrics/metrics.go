// Package metrics exposes registry activity as Prometheus metrics. A
// Collector subscribes to every registry channel; it only reads registry
// state from its handlers.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/mesh-intelligence/atlas/pkg/registry"
	"github.com/mesh-intelligence/atlas/pkg/types"
)

// Active slot label values.
const (
	SlotImage        = "image"
	SlotParcellation = "parcellation"
	SlotSlide        = "slide"
)

// Collector holds the registry metrics.
type Collector struct {
	events  *prometheus.CounterVec
	records *prometheus.GaugeVec
	active  *prometheus.GaugeVec
}

// New registers the registry metrics with reg.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		events: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_registry_events_total",
				Help: "Change notifications emitted by the registry, by channel and event type.",
			},
			[]string{"channel", "type"},
		),
		records: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "atlas_registry_records",
				Help: "Records currently loaded, by entity kind.",
			},
			[]string{"kind"},
		),
		active: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "atlas_registry_active",
				Help: "1 when the selection slot holds a record, 0 when it is empty.",
			},
			[]string{"slot"},
		),
	}
}

// Attach subscribes c to every channel of r and records the current
// contents.
func (c *Collector) Attach(r *registry.Registry) {
	for _, ch := range r.Signals().All() {
		name := ch.Name()
		ch.Subscribe(func(e registry.Event) {
			c.events.WithLabelValues(name, string(e.Type)).Inc()
			c.Observe(r.Stats())
		})
	}
	c.Observe(r.Stats())
}

// Observe sets the gauges from a stats snapshot.
func (c *Collector) Observe(s registry.Stats) {
	for _, k := range types.AllKinds {
		c.records.WithLabelValues(string(k)).Set(float64(s.Counts[k]))
	}
	c.active.WithLabelValues(SlotImage).Set(flag(!s.ActiveImage.IsNil()))
	c.active.WithLabelValues(SlotParcellation).Set(flag(!s.ActiveParcellation.IsNil()))
	c.active.WithLabelValues(SlotSlide).Set(flag(!s.ActiveSlide.IsNil()))
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Dump writes every gathered family in the Prometheus text exposition
// format, families sorted by name.
func Dump(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
