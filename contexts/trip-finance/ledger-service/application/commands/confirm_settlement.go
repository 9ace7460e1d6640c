package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "caravan/contexts/trip-finance/ledger-service/application"
	"caravan/contexts/trip-finance/ledger-service/domain/entities"
	domainerrors "caravan/contexts/trip-finance/ledger-service/domain/errors"
	"caravan/contexts/trip-finance/ledger-service/domain/services"
	"caravan/contexts/trip-finance/ledger-service/ports"
)

// ConfirmSettlementCommand records that a debtor claims to have paid a
// creditor. A settlement records payment intent only; no money moves.
type ConfirmSettlementCommand struct {
	TripID            string
	FromParticipantID string
	ToParticipantID   string
	Amount            float64
	ActorID           string
	Note              string
}

// ConfirmSettlementResult carries the recorded settlement plus the advisory
// outcome of checking the claim against a freshly recomputed plan.
type ConfirmSettlementResult struct {
	Settlement     entities.Settlement
	ClaimMatched   bool
	ComputedAmount float64
	Advisory       string
}

// SettlementUseCase handles the settlement write path. Claims are validated
// against a balance snapshot taken at request time; a concurrent new expense
// can make the check stale, which is accepted eventual consistency.
type SettlementUseCase struct {
	Expenses    ports.ExpenseRepository
	Settlements ports.SettlementRepository
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

// ConfirmSettlement recomputes the suggested settlement plan, checks the claim
// against it, and records the settlement either way. A mismatch is surfaced in
// the result, never used to block the write: legitimate payments may be
// partial or differently rounded.
func (uc SettlementUseCase) ConfirmSettlement(
	ctx context.Context,
	cmd ConfirmSettlementCommand,
) (ConfirmSettlementResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	tripID := strings.TrimSpace(cmd.TripID)
	fromID := strings.TrimSpace(cmd.FromParticipantID)
	toID := strings.TrimSpace(cmd.ToParticipantID)
	if tripID == "" || fromID == "" || toID == "" || fromID == toID || cmd.Amount <= 0 {
		logger.Warn("settlement confirm validation failed",
			"event", "ledger_settlement_confirm_validation_failed",
			"module", "trip-finance/ledger-service",
			"layer", "application",
			"trip_id", tripID,
			"from_participant_id", fromID,
			"to_participant_id", toID,
		)
		return ConfirmSettlementResult{}, domainerrors.ErrInvalidSettlementInput
	}

	expenses, err := uc.Expenses.ListExpensesByTrip(ctx, tripID, false)
	if err != nil {
		return ConfirmSettlementResult{}, err
	}
	balances := services.AggregateBalances(expenses)
	suggested := services.OptimizeSettlements(balances)

	result := ConfirmSettlementResult{}
	check, claimErr := services.ValidateClaim(fromID, toID, cmd.Amount, suggested)
	switch {
	case claimErr == nil:
		result.ClaimMatched = true
		result.ComputedAmount = check.ComputedAmount
	case errors.Is(claimErr, domainerrors.ErrAmountMismatch):
		result.ClaimMatched = true
		result.ComputedAmount = check.ComputedAmount
		result.Advisory = claimErr.Error()
	case errors.Is(claimErr, domainerrors.ErrNoMatchingSettlement):
		result.Advisory = claimErr.Error()
	default:
		return ConfirmSettlementResult{}, claimErr
	}
	if result.Advisory != "" {
		logger.Warn("settlement claim mismatch recorded as advisory",
			"event", "ledger_settlement_claim_mismatch",
			"module", "trip-finance/ledger-service",
			"layer", "application",
			"trip_id", tripID,
			"from_participant_id", fromID,
			"to_participant_id", toID,
			"claimed_amount", cmd.Amount,
			"computed_amount", check.ComputedAmount,
			"advisory", result.Advisory,
		)
	}

	settlementID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return ConfirmSettlementResult{}, err
	}
	now := uc.now()
	settlement := entities.Settlement{
		SettlementID:      settlementID,
		TripID:            tripID,
		FromParticipantID: fromID,
		ToParticipantID:   toID,
		Amount:            cmd.Amount,
		Status:            entities.SettlementStatusConfirmed,
		Note:              strings.TrimSpace(cmd.Note),
		CreatedBy:         strings.TrimSpace(cmd.ActorID),
		CreatedAt:         now,
	}
	if err := uc.Settlements.CreateSettlement(ctx, settlement); err != nil {
		return ConfirmSettlementResult{}, err
	}
	if err := uc.appendSettlementEvent(ctx, settlement, result, now); err != nil {
		return ConfirmSettlementResult{}, err
	}

	logger.Info("settlement confirmed",
		"event", "ledger_settlement_confirmed",
		"module", "trip-finance/ledger-service",
		"layer", "application",
		"settlement_id", settlement.SettlementID,
		"trip_id", settlement.TripID,
		"from_participant_id", settlement.FromParticipantID,
		"to_participant_id", settlement.ToParticipantID,
		"amount", settlement.Amount,
		"claim_matched", result.ClaimMatched,
	)
	result.Settlement = settlement
	return result, nil
}

func (uc SettlementUseCase) appendSettlementEvent(
	ctx context.Context,
	settlement entities.Settlement,
	result ConfirmSettlementResult,
	occurredAt time.Time,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newLedgerEnvelope(eventID, "settlement.confirmed", settlement.TripID, occurredAt, map[string]any{
		"settlement_id":       settlement.SettlementID,
		"trip_id":             settlement.TripID,
		"from_participant_id": settlement.FromParticipantID,
		"to_participant_id":   settlement.ToParticipantID,
		"amount":              settlement.Amount,
		"claim_matched":       result.ClaimMatched,
		"advisory":            result.Advisory,
		"occurred_at":         occurredAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}

func (uc SettlementUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
