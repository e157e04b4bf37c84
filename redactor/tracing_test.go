package redactor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/iw2rmb/blockedit/caret"
	"github.com/iw2rmb/blockedit/document"
	"github.com/iw2rmb/blockedit/internal/tracing"
)

func spanByName(exporter *tracetest.InMemoryExporter, name string) (tracetest.SpanStub, bool) {
	for _, s := range exporter.GetSpans() {
		if s.Name == name {
			return s, true
		}
	}
	return tracetest.SpanStub{}, false
}

func attrValue(s tracetest.SpanStub, key string) (string, bool) {
	for _, a := range s.Attributes {
		if string(a.Key) == key {
			return a.Value.Emit(), true
		}
	}
	return "", false
}

func TestHandler_RecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = provider.Shutdown(testContext(t)) })

	d := helloWorld()
	ctl := caret.NewController(d)
	cfg := DefaultConfig()
	cfg.Tracer = provider.Tracer("test")
	h := New(d, document.NewRepository(d), ctl, cfg)
	hs := &harness{doc: d, caret: ctl, h: h}

	handle := h.HandleKeydown(NewKeyEvent(KeyBackspace), document.Range{Start: hs.at(t, "a", 3), End: hs.at(t, "b", 2)})
	require.NoError(t, resolve(t, handle))

	keydown, ok := spanByName(exporter, tracing.SpanKeydown)
	require.True(t, ok, "keydown span")
	branch, _ := attrValue(keydown, tracing.AttrBranch)
	require.Equal(t, "cross-block", branch)
	key, _ := attrValue(keydown, tracing.AttrKey)
	require.Equal(t, "backspace", key)

	merge, ok := spanByName(exporter, tracing.SpanMerge)
	require.True(t, ok, "merge span")
	require.Equal(t, codes.Ok, merge.Status.Code)
	require.Equal(t, keydown.SpanContext.TraceID(), merge.SpanContext.TraceID(), "merge span is a child of the keydown")

	h.HandleSelectionMaybeChanged(document.Collapse(hs.at(t, "a", 1)))
	_, ok = spanByName(exporter, tracing.SpanSelectionChanged)
	require.True(t, ok, "selection span")
}
