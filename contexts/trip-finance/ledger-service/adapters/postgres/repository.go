package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"caravan/contexts/trip-finance/ledger-service/domain/entities"
	domainerrors "caravan/contexts/trip-finance/ledger-service/domain/errors"
	"caravan/contexts/trip-finance/ledger-service/ports"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// CreateExpense persists the expense and its splits in one transaction so the
// pair is atomic, matching the expense lifecycle contract.
func (r *Repository) CreateExpense(ctx context.Context, expense entities.Expense) error {
	row := expenseModelFromEntity(expense)
	splitRows := splitModelsFromEntity(expense)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if len(splitRows) > 0 {
			if err := tx.Create(&splitRows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("ledger_repo_create_expense_failed", err,
			"expense_id", strings.TrimSpace(expense.ExpenseID),
			"trip_id", strings.TrimSpace(expense.TripID),
		)
	}
	return nil
}

func (r *Repository) GetExpense(ctx context.Context, expenseID string) (entities.Expense, error) {
	var row expenseModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(expenseID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Expense{}, domainerrors.ErrExpenseNotFound
		}
		return entities.Expense{}, r.logError("ledger_repo_get_expense_failed", err,
			"expense_id", strings.TrimSpace(expenseID),
		)
	}
	splits, err := r.listSplits(ctx, []string{row.ID})
	if err != nil {
		return entities.Expense{}, err
	}
	return row.toEntity(splits[row.ID]), nil
}

func (r *Repository) UpdateExpenseStatus(
	ctx context.Context,
	expenseID string,
	status entities.ExpenseStatus,
	updatedAt time.Time,
) error {
	result := r.db.WithContext(ctx).Model(&expenseModel{}).
		Where("id = ?", strings.TrimSpace(expenseID)).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("ledger_repo_update_expense_status_failed", result.Error,
			"expense_id", strings.TrimSpace(expenseID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrExpenseNotFound
	}
	return nil
}

func (r *Repository) ListExpensesByTrip(
	ctx context.Context,
	tripID string,
	includeRejected bool,
) ([]entities.Expense, error) {
	tx := r.db.WithContext(ctx).Model(&expenseModel{}).
		Where("trip_id = ?", strings.TrimSpace(tripID))
	if !includeRejected {
		tx = tx.Where("status <> ?", string(entities.ExpenseStatusRejected))
	}
	var rows []expenseModel
	if err := tx.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("ledger_repo_list_expenses_failed", err,
			"trip_id", strings.TrimSpace(tripID),
		)
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	splits, err := r.listSplits(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]entities.Expense, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity(splits[row.ID]))
	}
	return items, nil
}

func (r *Repository) listSplits(ctx context.Context, expenseIDs []string) (map[string][]entities.Split, error) {
	grouped := make(map[string][]entities.Split, len(expenseIDs))
	if len(expenseIDs) == 0 {
		return grouped, nil
	}
	var rows []splitModel
	if err := r.db.WithContext(ctx).
		Where("expense_id IN ?", expenseIDs).
		Order("expense_id ASC, position ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("ledger_repo_list_splits_failed", err)
	}
	for _, row := range rows {
		grouped[row.ExpenseID] = append(grouped[row.ExpenseID], row.toEntity())
	}
	return grouped, nil
}

func (r *Repository) CreateSettlement(ctx context.Context, settlement entities.Settlement) error {
	row := settlementModelFromEntity(settlement)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("ledger_repo_create_settlement_failed", err,
			"settlement_id", strings.TrimSpace(settlement.SettlementID),
			"trip_id", strings.TrimSpace(settlement.TripID),
		)
	}
	return nil
}

func (r *Repository) ListSettlementsByTrip(ctx context.Context, tripID string) ([]entities.Settlement, error) {
	var rows []settlementModel
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", strings.TrimSpace(tripID)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("ledger_repo_list_settlements_failed", err,
			"trip_id", strings.TrimSpace(tripID),
		)
	}
	items := make([]entities.Settlement, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListTripMembers(ctx context.Context, tripID string) ([]ports.TripMember, error) {
	var rows []memberModel
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", strings.TrimSpace(tripID)).
		Order("joined_at ASC, participant_id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("ledger_repo_list_members_failed", err,
			"trip_id", strings.TrimSpace(tripID),
		)
	}
	if len(rows) == 0 {
		return nil, domainerrors.ErrTripNotFound
	}
	members := make([]ports.TripMember, 0, len(rows))
	for _, row := range rows {
		members = append(members, ports.TripMember{
			ParticipantID:       row.ParticipantID,
			DefaultSharePercent: row.DefaultSharePercent,
		})
	}
	return members, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     uuid.NewString(),
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("ledger_repo_append_outbox_failed", err,
			"event_type", envelope.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("ledger_repo_list_outbox_failed", err)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	published := publishedAt.UTC()
	result := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &published,
		})
	if result.Error != nil {
		return r.logError("ledger_repo_mark_outbox_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "trip-finance/ledger-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("ledger repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ExpenseRepository = (*Repository)(nil)
var _ ports.SettlementRepository = (*Repository)(nil)
var _ ports.MemberProvider = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
