package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestOpMeta_SpanName(t *testing.T) {
	tests := []struct {
		meta OpMeta
		want string
	}{
		{OpMeta{Name: "detect", Kind: KindScan}, "simcache.scan.detect"},
		{OpMeta{Name: "Beauty"}, "simcache.Beauty"},
	}
	for _, tt := range tests {
		if got := tt.meta.SpanName(); got != tt.want {
			t.Errorf("SpanName() = %q, want %q", got, tt.want)
		}
	}
}

func TestOpMeta_Validate(t *testing.T) {
	if err := (OpMeta{}).Validate(); !errors.Is(err, ErrMissingOpName) {
		t.Errorf("Validate() = %v, want ErrMissingOpName", err)
	}
	if err := (OpMeta{Name: "x"}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func newRecordingTracer() (*tracetest.SpanRecorder, Tracer) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return recorder, NewTracer(tp.Tracer("test"))
}

func TestTracer_SpanAttributes(t *testing.T) {
	recorder, tr := newRecordingTracer()
	meta := OpMeta{Name: "detect", Kind: KindScan, Axis: "tick"}

	_, span := tr.StartSpan(context.Background(), meta)
	tr.EndSpan(span, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	s := spans[0]
	if s.Name() != "simcache.scan.detect" {
		t.Errorf("span name = %q", s.Name())
	}
	if s.Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", s.Status().Code)
	}

	want := map[attribute.Key]string{
		"op.name": "detect",
		"op.kind": "scan",
		"op.axis": "tick",
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range s.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	for k, v := range want {
		if attrs[k].AsString() != v {
			t.Errorf("%s = %q, want %q", k, attrs[k].AsString(), v)
		}
	}
	if attrs["op.error"].AsBool() {
		t.Error("op.error = true on success")
	}
}

func TestTracer_EndSpanWithError(t *testing.T) {
	recorder, tr := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), OpMeta{Name: "detect"})
	tr.EndSpan(span, errors.New("hierarchy missing"))

	s := recorder.Ended()[0]
	if s.Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", s.Status().Code)
	}
	if s.Status().Description != "hierarchy missing" {
		t.Errorf("description = %q", s.Status().Description)
	}
	if len(s.Events()) == 0 {
		t.Error("expected a recorded error event")
	}
}
