package metrics

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsUnknownLabels(t *testing.T) {
	filtered := FilterAttributes(
		attribute.String("status", "confirmed"),
		attribute.String("outcome", "processed"),
		attribute.String("transaction_id", "tx_123"),
	)

	if len(filtered) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(filtered))
	}
	for _, attr := range filtered {
		if attr.Key == "transaction_id" {
			t.Fatalf("high-cardinality label must be dropped")
		}
	}
}

func TestMetricsRecordOnNoopProvider(t *testing.T) {
	m, err := New(Config{ServiceName: "feexgate"}, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}

	// Must not panic, including on the nil receiver.
	m.RecordWebhookEvent(context.Background(), "confirmed", "processed")
	m.RecordStoreUpsert(context.Background(), "order_number", "ok", 25*time.Millisecond)

	var nilMetrics *Metrics
	nilMetrics.RecordWebhookEvent(context.Background(), "failed", "rejected")
	nilMetrics.RecordStoreUpsert(context.Background(), "transaction_id", "error", 0)
}

func TestNewHTTPMetricsIdempotent(t *testing.T) {
	if _, err := NewHTTPMetrics(); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewHTTPMetrics(); err != nil {
		t.Fatalf("second registration must reuse collectors: %v", err)
	}
}
