package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Rhymond/go-money"

	application "caravan/contexts/trip-finance/ledger-service/application"
	"caravan/contexts/trip-finance/ledger-service/domain/entities"
	domainerrors "caravan/contexts/trip-finance/ledger-service/domain/errors"
	"caravan/contexts/trip-finance/ledger-service/domain/services"
	"caravan/contexts/trip-finance/ledger-service/ports"
)

// CreateExpenseCommand is the write-model input for expense creation. When
// Participants is empty the full trip membership shares the expense.
type CreateExpenseCommand struct {
	TripID       string
	PayerID      string
	Description  string
	Amount       float64
	Currency     string
	Policy       entities.SplitPolicy
	Participants []string
	Percentages  map[string]float64
	ExactAmounts map[string]float64
	OptIns       []string
}

// ExpenseUseCase orchestrates expense writes: split computation, atomic
// expense+split persistence, and outbox event emission.
type ExpenseUseCase struct {
	Expenses        ports.ExpenseRepository
	Members         ports.MemberProvider
	Outbox          ports.OutboxWriter
	Clock           ports.Clock
	IDGen           ports.IDGenerator
	DefaultCurrency string
	Logger          *slog.Logger
}

// CreateExpense computes the splits for the command's policy and persists the
// expense with them atomically. The expense starts in pending status.
func (uc ExpenseUseCase) CreateExpense(ctx context.Context, cmd CreateExpenseCommand) (entities.Expense, error) {
	logger := application.ResolveLogger(uc.Logger)
	tripID := strings.TrimSpace(cmd.TripID)
	payerID := strings.TrimSpace(cmd.PayerID)
	if tripID == "" || payerID == "" || cmd.Amount <= 0 {
		logger.Warn("expense create validation failed",
			"event", "ledger_expense_create_validation_failed",
			"module", "trip-finance/ledger-service",
			"layer", "application",
			"trip_id", tripID,
			"payer_id", payerID,
		)
		return entities.Expense{}, domainerrors.ErrInvalidExpenseInput
	}

	currency, err := uc.resolveCurrency(cmd.Currency)
	if err != nil {
		return entities.Expense{}, err
	}

	participants, err := uc.resolveParticipants(ctx, tripID, cmd)
	if err != nil {
		return entities.Expense{}, err
	}
	splits, err := services.ComputeSplits(cmd.Amount, cmd.Policy, participants, &services.SplitOverride{
		Percentages: cmd.Percentages,
		Amounts:     cmd.ExactAmounts,
	})
	if err != nil {
		return entities.Expense{}, err
	}

	expenseID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Expense{}, err
	}
	now := uc.now()
	expense := entities.Expense{
		ExpenseID:   expenseID,
		TripID:      tripID,
		PayerID:     payerID,
		Description: strings.TrimSpace(cmd.Description),
		Amount:      cmd.Amount,
		Currency:    currency,
		Policy:      cmd.Policy,
		Status:      entities.ExpenseStatusPending,
		Splits:      splits,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.Expenses.CreateExpense(ctx, expense); err != nil {
		return entities.Expense{}, err
	}
	if err := uc.appendExpenseEvent(ctx, "expense.created", expense, now, nil); err != nil {
		return entities.Expense{}, err
	}

	logger.Info("expense created",
		"event", "ledger_expense_created",
		"module", "trip-finance/ledger-service",
		"layer", "application",
		"expense_id", expense.ExpenseID,
		"trip_id", expense.TripID,
		"payer_id", expense.PayerID,
		"amount", expense.Amount,
		"currency", expense.Currency,
		"policy", string(expense.Policy),
		"split_count", len(expense.Splits),
	)
	return expense, nil
}

// ChangeExpenseStatus moves a pending expense to approved or rejected.
// Expenses are otherwise immutable.
func (uc ExpenseUseCase) ChangeExpenseStatus(
	ctx context.Context,
	expenseID string,
	status entities.ExpenseStatus,
) (entities.Expense, error) {
	logger := application.ResolveLogger(uc.Logger)
	expenseID = strings.TrimSpace(expenseID)
	if expenseID == "" {
		return entities.Expense{}, domainerrors.ErrInvalidExpenseInput
	}
	if status != entities.ExpenseStatusApproved && status != entities.ExpenseStatusRejected {
		return entities.Expense{}, domainerrors.ErrInvalidStatusTransition
	}

	expense, err := uc.Expenses.GetExpense(ctx, expenseID)
	if err != nil {
		return entities.Expense{}, err
	}
	if expense.Status != entities.ExpenseStatusPending {
		return entities.Expense{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.now()
	if err := uc.Expenses.UpdateExpenseStatus(ctx, expenseID, status, now); err != nil {
		return entities.Expense{}, err
	}
	expense.Status = status
	expense.UpdatedAt = now
	if err := uc.appendExpenseEvent(ctx, "expense.status_changed", expense, now, map[string]any{
		"status": string(status),
	}); err != nil {
		return entities.Expense{}, err
	}

	logger.Info("expense status changed",
		"event", "ledger_expense_status_changed",
		"module", "trip-finance/ledger-service",
		"layer", "application",
		"expense_id", expense.ExpenseID,
		"trip_id", expense.TripID,
		"status", string(status),
	)
	return expense, nil
}

func (uc ExpenseUseCase) resolveCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = strings.ToUpper(strings.TrimSpace(uc.DefaultCurrency))
	}
	if code == "" {
		code = money.USD
	}
	if money.GetCurrency(code) == nil {
		return "", domainerrors.ErrInvalidCurrency
	}
	return code, nil
}

func (uc ExpenseUseCase) resolveParticipants(
	ctx context.Context,
	tripID string,
	cmd CreateExpenseCommand,
) ([]services.SplitParticipant, error) {
	members, err := uc.Members.ListTripMembers(ctx, tripID)
	if err != nil {
		return nil, err
	}
	defaults := make(map[string]float64, len(members))
	for _, member := range members {
		defaults[member.ParticipantID] = member.DefaultSharePercent
	}
	optedIn := make(map[string]bool, len(cmd.OptIns))
	for _, participantID := range cmd.OptIns {
		optedIn[strings.TrimSpace(participantID)] = true
	}

	// Explicit participant lists keep their request order; the remainder
	// absorption contract depends on it.
	if len(cmd.Participants) > 0 {
		participants := make([]services.SplitParticipant, 0, len(cmd.Participants))
		for _, raw := range cmd.Participants {
			participantID := strings.TrimSpace(raw)
			if participantID == "" {
				return nil, domainerrors.ErrInvalidExpenseInput
			}
			participants = append(participants, services.SplitParticipant{
				ParticipantID:  participantID,
				DefaultPercent: defaults[participantID],
				OptedIn:        optedIn[participantID],
			})
		}
		return participants, nil
	}

	participants := make([]services.SplitParticipant, 0, len(members))
	for _, member := range members {
		participants = append(participants, services.SplitParticipant{
			ParticipantID:  member.ParticipantID,
			DefaultPercent: member.DefaultSharePercent,
			OptedIn:        optedIn[member.ParticipantID],
		})
	}
	return participants, nil
}

func (uc ExpenseUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
