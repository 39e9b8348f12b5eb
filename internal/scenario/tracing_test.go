package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/mesh-intelligence/atlas/pkg/registry"
)

func TestRunnerSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	s, err := Parse([]byte(`
name: traced
steps:
  - {op: insert_slide, as: a}
  - op: expect
    expect: {count: {slide: 2}}
`))
	require.NoError(t, err)

	rep, err := NewRunner(registry.New(), WithTracer(tp.Tracer("test"))).Run(context.Background(), s)
	require.NoError(t, err)
	require.False(t, rep.Passed())

	spans := sr.Ended()
	require.Len(t, spans, 3)
	byName := map[string]sdktrace.ReadOnlySpan{}
	for _, sp := range spans {
		byName[sp.Name()] = sp
	}

	run := byName["scenario traced"]
	require.NotNil(t, run)
	assert.Equal(t, codes.Error, run.Status().Code)

	insert := byName["step insert_slide"]
	require.NotNil(t, insert)
	assert.Equal(t, run.SpanContext().SpanID(), insert.Parent().SpanID())
	var channels []string
	for _, ev := range insert.Events() {
		channels = append(channels, ev.Name)
	}
	assert.Equal(t, []string{registry.ChannelSlideData, registry.ChannelSlideStack}, channels)
	assert.NotEqual(t, codes.Error, insert.Status().Code)

	expect := byName["step expect"]
	require.NotNil(t, expect)
	assert.Equal(t, codes.Error, expect.Status().Code)
	assert.Equal(t, rep.Failures[0].Message, expect.Status().Description)
}

func TestRunnerSpanRecordsStepError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	s, err := Parse([]byte("steps:\n  - {op: unload, ref: ghost}\n"))
	require.NoError(t, err)

	_, err = NewRunner(registry.New(), WithTracer(tp.Tracer("test"))).Run(context.Background(), s)
	require.Error(t, err)

	for _, sp := range sr.Ended() {
		assert.Equal(t, codes.Error, sp.Status().Code, sp.Name())
	}
	assert.Len(t, sr.Ended(), 2)
}
