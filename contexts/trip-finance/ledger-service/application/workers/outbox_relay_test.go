package workers

import (
	"context"
	"errors"
	"testing"

	"caravan/contexts/trip-finance/ledger-service/adapters/memory"
	"caravan/contexts/trip-finance/ledger-service/ports"
)

type capturePublisher struct {
	published []ports.EventEnvelope
	topics    []string
	failAfter int
}

func (p *capturePublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	if p.failAfter > 0 && len(p.published) >= p.failAfter {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, event)
	p.topics = append(p.topics, topic)
	return nil
}

func appendEnvelope(t *testing.T, store *memory.Store, eventID string, eventType string) {
	t.Helper()
	err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
		EventID:      eventID,
		EventType:    eventType,
		PartitionKey: "trip-1",
	})
	if err != nil {
		t.Fatalf("append outbox failed: %v", err)
	}
}

func TestOutboxRelayPublishesAndMarksBatch(t *testing.T) {
	store := memory.NewStore()
	appendEnvelope(t, store, "evt-1", "expense.created")
	appendEnvelope(t, store, "evt-2", "settlement.confirmed")

	publisher := &capturePublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.published))
	}
	seen := map[string]bool{}
	for _, topic := range publisher.topics {
		seen[topic] = true
	}
	if !seen["expense.created"] || !seen["settlement.confirmed"] {
		t.Fatalf("topics must follow the event types, got %v", publisher.topics)
	}
	if store.PendingOutboxCount() != 0 {
		t.Fatalf("published rows must be marked, %d still pending", store.PendingOutboxCount())
	}
}

func TestOutboxRelayStopsOnFirstPublishFailure(t *testing.T) {
	store := memory.NewStore()
	appendEnvelope(t, store, "evt-1", "expense.created")
	appendEnvelope(t, store, "evt-2", "expense.created")
	appendEnvelope(t, store, "evt-3", "expense.created")

	publisher := &capturePublisher{failAfter: 1}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected publish failure to surface")
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected relay to stop after first failure, published %d", len(publisher.published))
	}
	if store.PendingOutboxCount() != 2 {
		t.Fatalf("unpublished rows must stay pending for retry, got %d", store.PendingOutboxCount())
	}
}

func TestOutboxRelayEmptyQueueIsNoop(t *testing.T) {
	store := memory.NewStore()
	publisher := &capturePublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("empty relay run failed: %v", err)
	}
	if len(publisher.published) != 0 {
		t.Fatalf("expected no publishes, got %d", len(publisher.published))
	}
}
