package commands

import (
	"context"
	"encoding/json"
	"time"

	"caravan/contexts/trip-finance/ledger-service/domain/entities"
	"caravan/contexts/trip-finance/ledger-service/ports"
)

func newLedgerEnvelope(
	eventID string,
	eventType string,
	tripID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Ledger events are partitioned by trip so trip-scoped consumers see a
	// stable ordering.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "ledger-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "trip_id",
		PartitionKey:     tripID,
		Data:             payload,
	}, nil
}

func (uc ExpenseUseCase) appendExpenseEvent(
	ctx context.Context,
	eventType string,
	expense entities.Expense,
	occurredAt time.Time,
	metadata map[string]any,
) error {
	// Outbox is optional for pure read/test wiring, so nil is treated as no-op.
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	data := map[string]any{
		"expense_id":  expense.ExpenseID,
		"trip_id":     expense.TripID,
		"payer_id":    expense.PayerID,
		"amount":      expense.Amount,
		"currency":    expense.Currency,
		"policy":      string(expense.Policy),
		"status":      string(expense.Status),
		"split_count": len(expense.Splits),
		"occurred_at": occurredAt.Format(time.RFC3339),
	}
	for key, value := range metadata {
		data[key] = value
	}
	envelope, err := newLedgerEnvelope(eventID, eventType, expense.TripID, occurredAt, data)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}
