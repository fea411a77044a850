package core

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mcasademont9/nomad-forematics/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

type metricsCall struct {
	op      string
	success bool
}

type captureMetricsRecorder struct {
	calls []metricsCall
}

func (c *captureMetricsRecorder) Observe(_ context.Context, op string, success bool, _ time.Duration) {
	c.calls = append(c.calls, metricsCall{op: op, success: success})
}

func (c *captureMetricsRecorder) has(op string, success bool) bool {
	for _, call := range c.calls {
		if call.op == op && call.success == success {
			return true
		}
	}
	return false
}

type spanRecord struct {
	op  string
	err error
}

type captureTracer struct {
	started []string
	ended   []spanRecord
}

func (c *captureTracer) Start(ctx context.Context, op string) (context.Context, TraceSpan) {
	c.started = append(c.started, op)
	return ctx, &captureSpan{tracer: c, op: op}
}

type captureSpan struct {
	tracer *captureTracer
	op     string
}

func (s *captureSpan) End(err error) {
	s.tracer.ended = append(s.tracer.ended, spanRecord{op: s.op, err: err})
}

func TestServiceEmitsObservabilitySignals(t *testing.T) {
	ctx := context.Background()
	audit := NewMemoryAuditRecorder()
	metrics := &captureMetricsRecorder{}
	tracer := &captureTracer{}

	svc := newTestService(
		WithAuditRecorder(audit),
		WithMetricsRecorder(metrics),
		WithTracer(tracer),
	)

	saved, _, err := svc.SaveCleaning(ctx, domain.Cleaning{Name: "std"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.DeleteCleaning(ctx, "missing"); err == nil {
		t.Fatalf("expected delete failure")
	}

	if !metrics.has("save_cleaning", true) || !metrics.has("delete_cleaning", false) {
		t.Fatalf("metrics incomplete: %+v", metrics.calls)
	}
	if len(tracer.started) != 2 || len(tracer.ended) != 2 {
		t.Fatalf("trace spans incomplete: %v / %v", tracer.started, tracer.ended)
	}

	foundSuccess := false
	foundError := false
	for _, entry := range audit.Entries() {
		if entry.Operation == "save_cleaning" && entry.Status == AuditStatusSuccess && entry.EntityID == saved.ID {
			foundSuccess = true
		}
		if entry.Operation == "delete_cleaning" && entry.Status == AuditStatusError && entry.Error != "" {
			foundError = true
		}
	}
	if !foundSuccess || !foundError {
		t.Fatalf("audit entries incomplete: %+v", audit.Entries())
	}
}

func TestExpvarMetricsRecorderAggregates(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	rec.Observe(context.Background(), "save_solution", true, 20*time.Millisecond)
	rec.Observe(context.Background(), "save_solution", false, 5*time.Millisecond)
	rec.Observe(context.Background(), "", true, time.Millisecond)

	snap := rec.Snapshot()
	if snap.DurationsMS["save_solution"] < 24 {
		t.Fatalf("durations not aggregated: %v", snap.DurationsMS)
	}
	if snap.Results["save_solution"]["success"] != 1 || snap.Results["save_solution"]["error"] != 1 {
		t.Fatalf("result counters wrong: %v", snap.Results)
	}
	if strings.TrimSpace(rec.Name()) == "" {
		t.Fatalf("generated name missing")
	}
}

func TestPrometheusMetricsRecorderRegisters(t *testing.T) {
	registry := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(registry)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	rec.Observe(context.Background(), "save_substrate_batch", true, 10*time.Millisecond)
	rec.Observe(context.Background(), "save_substrate_batch", false, time.Millisecond)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	if !names["forematics_service_operations_total"] || !names["forematics_service_operation_duration_seconds"] {
		t.Fatalf("expected metric families, got %v", names)
	}

	if _, err := NewPrometheusMetricsRecorder(registry); err == nil {
		t.Fatalf("double registration should fail")
	}
}

func TestJSONTracerRecordsSpans(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewJSONTracer(&buf)

	_, span := tracer.Start(context.Background(), "save_experiment")
	span.End(nil)
	_, span = tracer.Start(context.Background(), "delete_experiment")
	span.End(context.DeadlineExceeded)

	entries := tracer.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(entries))
	}
	if entries[0].Status != "success" || entries[1].Status != "error" {
		t.Fatalf("statuses wrong: %+v", entries)
	}
	if !strings.Contains(buf.String(), "delete_experiment") {
		t.Fatalf("spans not encoded to writer: %s", buf.String())
	}
}
