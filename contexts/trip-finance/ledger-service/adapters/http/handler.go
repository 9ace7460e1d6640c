package httpadapter

import (
	"context"
	"log/slog"

	"caravan/contexts/trip-finance/ledger-service/application/commands"
	"caravan/contexts/trip-finance/ledger-service/application/queries"
	"caravan/contexts/trip-finance/ledger-service/domain/entities"
	httptransport "caravan/contexts/trip-finance/ledger-service/transport/http"
)

type Handler struct {
	Expenses    commands.ExpenseUseCase
	Settlements commands.SettlementUseCase
	Balances    queries.BalanceUseCase
	Logger      *slog.Logger
}

func (h Handler) CreateExpenseHandler(
	ctx context.Context,
	tripID string,
	userID string,
	req httptransport.CreateExpenseRequest,
) (httptransport.ExpenseResponse, error) {
	payerID := req.PayerID
	if payerID == "" {
		payerID = userID
	}
	expense, err := h.Expenses.CreateExpense(ctx, commands.CreateExpenseCommand{
		TripID:       tripID,
		PayerID:      payerID,
		Description:  req.Description,
		Amount:       req.Amount,
		Currency:     req.Currency,
		Policy:       entities.SplitPolicy(req.SplitPolicy),
		Participants: req.Participants,
		Percentages:  req.Percentages,
		ExactAmounts: req.ExactAmounts,
		OptIns:       req.OptIns,
	})
	if err != nil {
		return httptransport.ExpenseResponse{}, err
	}
	return mapExpense(expense), nil
}

func (h Handler) ChangeExpenseStatusHandler(
	ctx context.Context,
	expenseID string,
	req httptransport.ChangeExpenseStatusRequest,
) (httptransport.ExpenseResponse, error) {
	expense, err := h.Expenses.ChangeExpenseStatus(ctx, expenseID, entities.ExpenseStatus(req.Status))
	if err != nil {
		return httptransport.ExpenseResponse{}, err
	}
	return mapExpense(expense), nil
}

func (h Handler) TripBalancesHandler(ctx context.Context, tripID string) (httptransport.BalancesResponse, error) {
	balances, err := h.Balances.TripBalances(ctx, tripID)
	if err != nil {
		return httptransport.BalancesResponse{}, err
	}
	return httptransport.BalancesResponse{
		TripID:   tripID,
		Balances: mapBalances(balances),
	}, nil
}

func (h Handler) SuggestedSettlementsHandler(
	ctx context.Context,
	tripID string,
) (httptransport.SettlementPlanResponse, error) {
	plan, err := h.Balances.SuggestedSettlements(ctx, tripID)
	if err != nil {
		return httptransport.SettlementPlanResponse{}, err
	}
	return httptransport.SettlementPlanResponse{
		TripID:         tripID,
		Balances:       mapBalances(plan.Balances),
		Settlements:    mapSettlements(plan.Settlements),
		SavingsPercent: plan.SavingsPercent,
		Verified:       plan.Verified,
	}, nil
}

func (h Handler) ConfirmSettlementHandler(
	ctx context.Context,
	tripID string,
	userID string,
	req httptransport.ConfirmSettlementRequest,
) (httptransport.ConfirmSettlementResponse, error) {
	result, err := h.Settlements.ConfirmSettlement(ctx, commands.ConfirmSettlementCommand{
		TripID:            tripID,
		FromParticipantID: req.FromParticipantID,
		ToParticipantID:   req.ToParticipantID,
		Amount:            req.Amount,
		ActorID:           userID,
		Note:              req.Note,
	})
	if err != nil {
		return httptransport.ConfirmSettlementResponse{}, err
	}
	return httptransport.ConfirmSettlementResponse{
		Settlement:     mapSettlement(result.Settlement),
		ClaimMatched:   result.ClaimMatched,
		ComputedAmount: result.ComputedAmount,
		Advisory:       result.Advisory,
	}, nil
}

func (h Handler) ListSettlementsHandler(
	ctx context.Context,
	tripID string,
) (httptransport.SettlementListResponse, error) {
	settlements, err := h.Balances.ConfirmedSettlements(ctx, tripID)
	if err != nil {
		return httptransport.SettlementListResponse{}, err
	}
	return httptransport.SettlementListResponse{
		TripID:      tripID,
		Settlements: mapSettlements(settlements),
	}, nil
}

func mapExpense(expense entities.Expense) httptransport.ExpenseResponse {
	splits := make([]httptransport.SplitItem, 0, len(expense.Splits))
	for _, split := range expense.Splits {
		splits = append(splits, httptransport.SplitItem{
			ParticipantID: split.ParticipantID,
			Amount:        split.Amount,
			Percent:       split.Percent,
		})
	}
	return httptransport.ExpenseResponse{
		ExpenseID:   expense.ExpenseID,
		TripID:      expense.TripID,
		PayerID:     expense.PayerID,
		Description: expense.Description,
		Amount:      expense.Amount,
		Currency:    expense.Currency,
		SplitPolicy: string(expense.Policy),
		Status:      string(expense.Status),
		Splits:      splits,
	}
}

func mapBalances(balances []entities.Balance) []httptransport.BalanceItem {
	items := make([]httptransport.BalanceItem, 0, len(balances))
	for _, balance := range balances {
		items = append(items, httptransport.BalanceItem{
			ParticipantID: balance.ParticipantID,
			Paid:          balance.Paid,
			Owed:          balance.Owed,
			Net:           balance.Net,
		})
	}
	return items
}

func mapSettlement(settlement entities.Settlement) httptransport.SettlementItem {
	return httptransport.SettlementItem{
		SettlementID:      settlement.SettlementID,
		FromParticipantID: settlement.FromParticipantID,
		ToParticipantID:   settlement.ToParticipantID,
		Amount:            settlement.Amount,
		Status:            string(settlement.Status),
		Note:              settlement.Note,
	}
}

func mapSettlements(settlements []entities.Settlement) []httptransport.SettlementItem {
	items := make([]httptransport.SettlementItem, 0, len(settlements))
	for _, settlement := range settlements {
		items = append(items, mapSettlement(settlement))
	}
	return items
}
