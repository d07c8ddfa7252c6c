package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/tansoy/restkit/observability"
)

func withSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return recorder
}

func spanAttr(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestWithTracing_RecordsSpan(t *testing.T) {
	recorder := withSpanRecorder(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, err := New(Config{Name: "api", BaseURL: srv.URL, Timeout: 5 * time.Second}, WithTracing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/ping"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != "api.request" {
		t.Errorf("span name = %q", span.Name())
	}

	if v, ok := spanAttr(span.Attributes(), "http.method"); !ok || v.AsString() != http.MethodGet {
		t.Errorf("expected http.method=GET, got %v", span.Attributes())
	}
	if v, ok := spanAttr(span.Attributes(), "http.path"); !ok || v.AsString() != "/ping" {
		t.Errorf("expected http.path=/ping, got %v", span.Attributes())
	}
	if v, ok := spanAttr(span.Attributes(), "http.status_code"); !ok || v.AsInt64() != 200 {
		t.Errorf("expected http.status_code=200, got %v", span.Attributes())
	}
}

func TestWithTracing_MarksFailedRequest(t *testing.T) {
	recorder := withSpanRecorder(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New(Config{Name: "api", BaseURL: url, Timeout: 5 * time.Second}, WithTracing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/ping"}); err == nil {
		t.Fatal("expected error")
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if len(spans[0].Events()) == 0 {
		t.Error("expected the failure recorded as a span event")
	}
}

func findMetric(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	t.Fatalf("metric %q not found", name)
	return metricdata.Metrics{}
}

func TestWithMetrics_RecordsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := New(Config{Name: "api", BaseURL: srv.URL, Timeout: 5 * time.Second}, WithMetrics(metrics))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/ping"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	total := findMetric(t, rm, "client.request.total")
	sum, ok := total.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("unexpected data type %T", total.Data)
	}
	if len(sum.DataPoints) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(sum.DataPoints))
	}
	dp := sum.DataPoints[0]
	if dp.Value != 1 {
		t.Errorf("expected 1 request counted, got %d", dp.Value)
	}
	if v, ok := dp.Attributes.Value("status"); !ok || v.AsString() != "ok" {
		t.Errorf("expected status=ok attribute, got %v", dp.Attributes)
	}
	if v, ok := dp.Attributes.Value("method"); !ok || v.AsString() != http.MethodGet {
		t.Errorf("expected method=GET attribute, got %v", dp.Attributes)
	}

	active := findMetric(t, rm, "client.request.active")
	activeSum, ok := active.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("unexpected data type %T", active.Data)
	}
	if activeSum.DataPoints[0].Value != 0 {
		t.Errorf("expected in-flight count back at 0, got %d", activeSum.DataPoints[0].Value)
	}
}
