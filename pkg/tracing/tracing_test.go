package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitTracer_Disabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), Config{ServiceName: "catalog"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracer_RejectsBadSampleRate(t *testing.T) {
	_, err := InitTracer(context.Background(), Config{Enabled: true, SampleRate: 1.5})
	assert.Error(t, err)
}

func TestInitTracer_Enabled(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := InitTracer(context.Background(), Config{
		Enabled:      true,
		OTLPEndpoint: "127.0.0.1:0",
		SampleRate:   1,
		ServiceName:  "catalog",
		Environment:  "test",
	})
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)

	_, span := Tracer("catalog-test").Start(context.Background(), "load")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	_ = shutdown(context.Background())
}
