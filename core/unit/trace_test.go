package unit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestLoader_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	fetcher := newFakeFetcher(map[string][]byte{"app1.bundle.lua": []byte("x = 1")})
	l := newTestLoader(fetcher, &fakeExecutor{})

	require.NoError(t, l.Load(context.Background(), "app1"))
	require.Error(t, l.Load(context.Background(), "missing"))
	// Settled units are answered without a new span.
	require.NoError(t, l.Load(context.Background(), "app1"))

	byName := make(map[string][]sdktrace.ReadOnlySpan)
	for _, s := range recorder.Ended() {
		byName[s.Name()] = append(byName[s.Name()], s)
	}

	require.Len(t, byName["unit.load"], 2)
	assert.Len(t, byName["unit.fetch"], 2)
	assert.Len(t, byName["unit.execute"], 1)

	var failed sdktrace.ReadOnlySpan
	for _, s := range byName["unit.load"] {
		if s.Status().Code == codes.Error {
			failed = s
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, KindNotFound.String(), failed.Status().Description)
}
