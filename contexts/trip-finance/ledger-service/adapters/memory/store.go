package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"caravan/contexts/trip-finance/ledger-service/domain/entities"
	domainerrors "caravan/contexts/trip-finance/ledger-service/domain/errors"
	"caravan/contexts/trip-finance/ledger-service/ports"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory adapter used for tests and local wiring. It
// implements every ledger port behind one mutex.
type Store struct {
	mu sync.RWMutex

	expenses    map[string]entities.Expense
	settlements map[string]entities.Settlement
	members     map[string][]ports.TripMember
	outbox      map[string]outboxRecord
}

func NewStore() *Store {
	return &Store{
		expenses:    make(map[string]entities.Expense),
		settlements: make(map[string]entities.Settlement),
		members:     make(map[string][]ports.TripMember),
		outbox:      make(map[string]outboxRecord),
	}
}

// SetTripMembers seeds the membership projection for a trip.
func (s *Store) SetTripMembers(tripID string, members []ports.TripMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[strings.TrimSpace(tripID)] = append([]ports.TripMember(nil), members...)
}

func (s *Store) CreateExpense(_ context.Context, expense entities.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(expense.ExpenseID)
	if id == "" {
		return domainerrors.ErrInvalidExpenseInput
	}
	if _, exists := s.expenses[id]; exists {
		return domainerrors.ErrConflict
	}
	s.expenses[id] = expense
	return nil
}

func (s *Store) GetExpense(_ context.Context, expenseID string) (entities.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expense, ok := s.expenses[strings.TrimSpace(expenseID)]
	if !ok {
		return entities.Expense{}, domainerrors.ErrExpenseNotFound
	}
	return expense, nil
}

func (s *Store) UpdateExpenseStatus(
	_ context.Context,
	expenseID string,
	status entities.ExpenseStatus,
	updatedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expense, ok := s.expenses[strings.TrimSpace(expenseID)]
	if !ok {
		return domainerrors.ErrExpenseNotFound
	}
	expense.Status = status
	expense.UpdatedAt = updatedAt.UTC()
	s.expenses[expense.ExpenseID] = expense
	return nil
}

func (s *Store) ListExpensesByTrip(
	_ context.Context,
	tripID string,
	includeRejected bool,
) ([]entities.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Expense, 0, len(s.expenses))
	for _, expense := range s.expenses {
		if expense.TripID != strings.TrimSpace(tripID) {
			continue
		}
		if !includeRejected && expense.Status == entities.ExpenseStatusRejected {
			continue
		}
		items = append(items, expense)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ExpenseID < items[j].ExpenseID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) CreateSettlement(_ context.Context, settlement entities.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(settlement.SettlementID)
	if id == "" {
		return domainerrors.ErrInvalidSettlementInput
	}
	if _, exists := s.settlements[id]; exists {
		return domainerrors.ErrConflict
	}
	s.settlements[id] = settlement
	return nil
}

func (s *Store) ListSettlementsByTrip(_ context.Context, tripID string) ([]entities.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Settlement, 0, len(s.settlements))
	for _, settlement := range s.settlements {
		if settlement.TripID == strings.TrimSpace(tripID) {
			items = append(items, settlement)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].SettlementID < items[j].SettlementID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListTripMembers(_ context.Context, tripID string) ([]ports.TripMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members, ok := s.members[strings.TrimSpace(tripID)]
	if !ok {
		return nil, domainerrors.ErrTripNotFound
	}
	return append([]ports.TripMember(nil), members...), nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	outboxID := uuid.NewString()
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    time.Now().UTC(),
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, record := range s.outbox {
		if !record.published {
			items = append(items, record.message)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].OutboxID < items[j].OutboxID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return nil
	}
	record.published = true
	s.outbox[strings.TrimSpace(outboxID)] = record
	return nil
}

// PendingOutboxCount reports unpublished rows, for test assertions.
func (s *Store) PendingOutboxCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, record := range s.outbox {
		if !record.published {
			count++
		}
	}
	return count
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.ExpenseRepository = (*Store)(nil)
var _ ports.SettlementRepository = (*Store)(nil)
var _ ports.MemberProvider = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
