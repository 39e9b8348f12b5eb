package scenario

import (
	"context"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mesh-intelligence/atlas/internal/log"
	"github.com/mesh-intelligence/atlas/pkg/registry"
	"github.com/mesh-intelligence/atlas/pkg/types"
	"github.com/mesh-intelligence/atlas/pkg/uid"
)

// binding is a named record and the kind it was inserted as. The kind
// outlives the record so that scripts can still talk about it after an
// unload.
type binding struct {
	id   uid.UID
	kind types.Kind
}

// Runner executes scripts against one registry. Names bound by one script
// stay bound for the next, so a sequence of scripts can build on each
// other.
type Runner struct {
	reg    *registry.Registry
	names  map[string]binding
	byUID  map[uid.UID]string
	tracer trace.Tracer
	report *Report
	step   int
	span   trace.Span // current step, nil between steps

	// traceIDs holds the record UID of each report.Trace entry, so that
	// names bound after the event fired can be filled in.
	traceIDs []uid.UID
}

// Option configures a Runner.
type Option func(*Runner)

// WithTracer makes the runner open a span per script and per step.
// Registry notifications become events on the step span.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) {
		if t != nil {
			r.tracer = t
		}
	}
}

// NewRunner returns a runner for reg and subscribes it to every channel.
// Subscriptions cannot be removed, so create one runner per registry.
func NewRunner(reg *registry.Registry, opts ...Option) *Runner {
	r := &Runner{
		reg:    reg,
		names:  make(map[string]binding),
		byUID:  make(map[uid.UID]string),
		tracer: noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, ch := range reg.Signals().All() {
		name := ch.Name()
		ch.Subscribe(func(e registry.Event) {
			r.observe(name, e)
		})
	}
	return r
}

// Run executes script against reg with a fresh runner.
func Run(ctx context.Context, reg *registry.Registry, script *Script) (*Report, error) {
	return NewRunner(reg).Run(ctx, script)
}

// UID returns the record bound to name.
func (r *Runner) UID(name string) (uid.UID, bool) {
	b, ok := r.names[name]
	return b.id, ok
}

// Run executes the steps of script in order. Unmet expectations are
// collected in the report; malformed steps stop the run with an error and
// the partial report.
func (r *Runner) Run(ctx context.Context, script *Script) (*Report, error) {
	if script == nil || len(script.Steps) == 0 {
		return nil, types.ErrEmptyScript
	}
	rep := &Report{Script: script.Name}
	r.report = rep
	r.traceIDs = nil
	defer func() {
		r.report = nil
		r.traceIDs = nil
	}()

	ctx, span := r.tracer.Start(ctx, "scenario "+script.Name, trace.WithAttributes(
		attribute.String("scenario.script", script.Name),
		attribute.Int("scenario.steps", len(script.Steps)),
	))
	defer span.End()

	log.Info(log.CatScenario, "run", "script", script.Name, "steps", len(script.Steps))
	for i, st := range script.Steps {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return rep, err
		}
		r.step = i + 1
		res, err := r.runStep(ctx, st)
		if err != nil {
			log.ErrorErr(log.CatScenario, "step failed", err, "step", r.step, "op", st.Op)
			err = fmt.Errorf("step %d (%s): %w", r.step, st.Op, err)
			span.SetStatus(codes.Error, err.Error())
			return rep, err
		}
		rep.Steps = append(rep.Steps, res)
		log.Debug(log.CatScenario, "step", "step", r.step, "op", st.Op, "ok", res.OK)
	}
	if !rep.Passed() {
		span.SetStatus(codes.Error, fmt.Sprintf("%d expectations failed", len(rep.Failures)))
	}
	return rep, nil
}

// runStep executes one step inside its own span.
func (r *Runner) runStep(ctx context.Context, st Step) (StepResult, error) {
	_, span := r.tracer.Start(ctx, "step "+st.Op, trace.WithAttributes(
		attribute.Int("scenario.step", r.step),
		attribute.String("scenario.op", st.Op),
	))
	r.span = span
	defer func() {
		r.span = nil
		span.End()
	}()

	failed := len(r.report.Failures)
	res, err := r.exec(st)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	res.Index = r.step
	res.Op = st.Op
	span.SetAttributes(attribute.Bool("scenario.ok", res.OK))
	if res.Bound != "" {
		span.SetAttributes(attribute.String("scenario.bound", res.Bound))
	}
	if fs := r.report.Failures[failed:]; len(fs) > 0 {
		span.SetStatus(codes.Error, fs[len(fs)-1].Message)
	}
	return res, nil
}

func (r *Runner) observe(channel string, e registry.Event) {
	if r.report == nil {
		return
	}
	entry := TraceEntry{Step: r.step, Channel: channel, Type: string(e.Type)}
	if !e.UID.IsNil() {
		entry.Name = r.nameOf(e.UID)
	}
	r.report.Trace = append(r.report.Trace, entry)
	r.traceIDs = append(r.traceIDs, e.UID)
	if r.span != nil {
		r.span.AddEvent(channel, trace.WithAttributes(
			attribute.String("event.type", entry.Type),
			attribute.String("event.record", entry.Name),
		))
	}
	log.Debug(log.CatRegistry, "event", "channel", channel, "type", e.Type, "record", entry.Name)
}

func (r *Runner) nameOf(id uid.UID) string {
	if n, ok := r.byUID[id]; ok {
		return n
	}
	return id.Short()
}

type opFunc func(r *Runner, st Step) (StepResult, error)

var ops = map[string]opFunc{
	OpInsertImage:              (*Runner).insertImage,
	OpInsertParcellation:       (*Runner).insertParcellation,
	OpInsertSlide:              (*Runner).insertSlide,
	OpInsertIsoMesh:            (*Runner).insertIsoMesh,
	OpInsertLabelMesh:          (*Runner).insertLabelMesh,
	OpInsertColorMap:           (*Runner).insertColorMap,
	OpInsertLabelTable:         (*Runner).insertLabelTable,
	OpInsertImageLandmarkGroup: (*Runner).insertImageLandmarkGroup,
	OpInsertSlideLandmarkGroup: (*Runner).insertSlideLandmarkGroup,
	OpInsertAnnotation:         (*Runner).insertAnnotation,
	OpUnload:                   (*Runner).unload,
	OpUpdate:                   (*Runner).update,
	OpAssociate:                (*Runner).associate,
	OpSetActive:                (*Runner).setActive,
	OpSetOrder:                 (*Runner).setOrder,
	OpMove:                     (*Runner).move,
	OpExpect:                   (*Runner).expect,
}

// Ops returns the supported operation names, sorted.
func Ops() []string {
	names := make([]string, 0, len(ops))
	for n := range ops {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (r *Runner) exec(st Step) (StepResult, error) {
	fn, ok := ops[st.Op]
	if !ok {
		return StepResult{}, fmt.Errorf("%w %q", types.ErrUnknownOp, st.Op)
	}
	return fn(r, st)
}

// checkResult compares an operation result with the step's expectation.
func (r *Runner) checkResult(st Step, ok bool) StepResult {
	if ok != st.wantOK() {
		r.report.fail(r.step, "%s returned %t, want %t", st.Op, ok, st.wantOK())
	}
	return StepResult{OK: ok}
}

// lookup resolves a name bound by an earlier insert.
func (r *Runner) lookup(field, name string) (binding, error) {
	if name == "" {
		return binding{}, fmt.Errorf("%w: %s", types.ErrMissingArg, field)
	}
	b, ok := r.names[name]
	if !ok {
		return binding{}, fmt.Errorf("%w: %q", types.ErrUnknownName, name)
	}
	return b, nil
}

// parseKind validates a kind name.
func parseKind(s string) (types.Kind, error) {
	k := types.Kind(s)
	if s == "" {
		return "", fmt.Errorf("%w: kind", types.ErrMissingArg)
	}
	if !k.Valid() {
		return "", fmt.Errorf("%w %q", types.ErrUnknownKind, s)
	}
	return k, nil
}

// nameTrace labels this step's trace entries for id with name. Insert
// events fire before the runner learns the new UID.
func (r *Runner) nameTrace(id uid.UID, name string) {
	for i := len(r.traceIDs) - 1; i >= 0; i-- {
		if r.report.Trace[i].Step != r.step {
			return
		}
		if r.traceIDs[i] == id {
			r.report.Trace[i].Name = name
		}
	}
}
