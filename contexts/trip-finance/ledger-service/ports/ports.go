package ports

import (
	"context"
	"time"

	"caravan/contexts/trip-finance/ledger-service/domain/entities"
	contractsv1 "caravan/contracts/gen/events/v1"
)

type ExpenseRepository interface {
	CreateExpense(ctx context.Context, expense entities.Expense) error
	GetExpense(ctx context.Context, expenseID string) (entities.Expense, error)
	UpdateExpenseStatus(ctx context.Context, expenseID string, status entities.ExpenseStatus, updatedAt time.Time) error
	// ListExpensesByTrip returns the trip's expenses in creation order,
	// excluding rejected ones unless includeRejected is set.
	ListExpensesByTrip(ctx context.Context, tripID string, includeRejected bool) ([]entities.Expense, error)
}

type SettlementRepository interface {
	CreateSettlement(ctx context.Context, settlement entities.Settlement) error
	ListSettlementsByTrip(ctx context.Context, tripID string) ([]entities.Settlement, error)
}

// TripMember is the membership projection owned by the (external) trip
// service. DefaultSharePercent backs percentage splits with no override.
type TripMember struct {
	ParticipantID       string
	DefaultSharePercent float64
}

type MemberProvider interface {
	ListTripMembers(ctx context.Context, tripID string) ([]TripMember, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
