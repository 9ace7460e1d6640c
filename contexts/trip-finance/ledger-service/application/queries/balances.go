package queries

import (
	"context"
	"strings"

	"caravan/contexts/trip-finance/ledger-service/domain/entities"
	domainerrors "caravan/contexts/trip-finance/ledger-service/domain/errors"
	"caravan/contexts/trip-finance/ledger-service/domain/services"
	"caravan/contexts/trip-finance/ledger-service/ports"
)

// SettlementPlan is the read model for "who pays whom": current balances, the
// suggested transfers, and diagnostics about the plan.
type SettlementPlan struct {
	Balances       []entities.Balance
	Settlements    []entities.Settlement
	SavingsPercent float64
	Verified       bool
}

type BalanceUseCase struct {
	Expenses    ports.ExpenseRepository
	Settlements ports.SettlementRepository
}

// TripBalances recomputes net balances from the trip's live, non-rejected
// expense set. Balances are never read from storage.
func (uc BalanceUseCase) TripBalances(ctx context.Context, tripID string) ([]entities.Balance, error) {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return nil, domainerrors.ErrInvalidExpenseInput
	}
	expenses, err := uc.Expenses.ListExpensesByTrip(ctx, tripID, false)
	if err != nil {
		return nil, err
	}
	return services.AggregateBalances(expenses), nil
}

// SuggestedSettlements computes the greedy settlement plan for the trip's
// current balances, self-verifies it, and reports the transaction savings
// against the naive pairwise bound.
func (uc BalanceUseCase) SuggestedSettlements(ctx context.Context, tripID string) (SettlementPlan, error) {
	balances, err := uc.TripBalances(ctx, tripID)
	if err != nil {
		return SettlementPlan{}, err
	}
	settlements := services.OptimizeSettlements(balances)
	for i := range settlements {
		settlements[i].TripID = strings.TrimSpace(tripID)
	}
	return SettlementPlan{
		Balances:       balances,
		Settlements:    settlements,
		SavingsPercent: services.TransactionSavings(balances, settlements),
		Verified:       services.VerifySettlements(balances, settlements),
	}, nil
}

// ConfirmedSettlements lists the trip's recorded settlements in creation order.
func (uc BalanceUseCase) ConfirmedSettlements(ctx context.Context, tripID string) ([]entities.Settlement, error) {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return nil, domainerrors.ErrInvalidSettlementInput
	}
	return uc.Settlements.ListSettlementsByTrip(ctx, tripID)
}
