package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracingExporter(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	assert.NoError(t, InitWithExporter("fairsched", "0.0.1", exporter))

	ctx, span := StartSpan(context.Background(), "kernel.fork", "INTERNAL")
	span.WithInt("pid", 2).WithAttributes(map[string]string{"op": "fork"})
	_, child := StartSpan(ctx, "table.allocate", "")
	EndSpan(child, errors.New("table: no free process slot"))
	EndSpan(span, nil)

	spans := exporter.GetSpans()
	if assert.Len(t, spans, 2) {
		assert.Equal(t, "table.allocate", spans[0].Name)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
		assert.Equal(t, "kernel.fork", spans[1].Name)
		assert.Equal(t, codes.Ok, spans[1].Status.Code)
	}

	var nilSpan *Span
	nilSpan.WithInt("pid", 1).SetStatus(nil)
	EndSpan(nilSpan, nil)
}
