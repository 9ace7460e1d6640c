package services

import (
	"errors"
	"testing"

	"caravan/contexts/trip-finance/ledger-service/domain/entities"
	domainerrors "caravan/contexts/trip-finance/ledger-service/domain/errors"
)

func balance(participantID string, net float64) entities.Balance {
	return entities.Balance{ParticipantID: participantID, Net: net}
}

func TestOptimizeSettlementsTwoDebtorsOneCreditor(t *testing.T) {
	balances := []entities.Balance{
		balance("alice", 60.00),
		balance("bob", -30.00),
		balance("carol", -30.00),
	}
	settlements := OptimizeSettlements(balances)
	if len(settlements) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(settlements))
	}
	if settlements[0].FromParticipantID != "bob" || settlements[0].ToParticipantID != "alice" || settlements[0].Amount != 30.00 {
		t.Fatalf("unexpected first transfer: %+v", settlements[0])
	}
	if settlements[1].FromParticipantID != "carol" || settlements[1].ToParticipantID != "alice" || settlements[1].Amount != 30.00 {
		t.Fatalf("unexpected second transfer: %+v", settlements[1])
	}
	for _, settlement := range settlements {
		if settlement.Status != entities.SettlementStatusSuggested {
			t.Fatalf("expected suggested status, got %q", settlement.Status)
		}
	}
}

func TestOptimizeSettlementsPairsLargestFirst(t *testing.T) {
	balances := []entities.Balance{
		balance("alice", 70.00),
		balance("bob", 10.00),
		balance("carol", -50.00),
		balance("dave", -30.00),
	}
	settlements := OptimizeSettlements(balances)
	if len(settlements) != 3 {
		t.Fatalf("expected 3 transfers, got %d", len(settlements))
	}
	if settlements[0].FromParticipantID != "carol" || settlements[0].ToParticipantID != "alice" || settlements[0].Amount != 50.00 {
		t.Fatalf("expected largest debtor to pay largest creditor first, got %+v", settlements[0])
	}
	if !VerifySettlements(balances, settlements) {
		t.Fatalf("plan must replay to zero nets")
	}
}

func TestOptimizeSettlementsSkipsSettledParticipants(t *testing.T) {
	settlements := OptimizeSettlements([]entities.Balance{
		balance("alice", 0.00),
		balance("bob", 0.005),
		balance("carol", -0.005),
	})
	if len(settlements) != 0 {
		t.Fatalf("sub-epsilon nets must produce no transfers, got %d", len(settlements))
	}
}

func TestOptimizeSettlementsHandlesUnroundedNets(t *testing.T) {
	balances := []entities.Balance{
		balance("alice", 0.015),
		balance("bob", -0.015),
	}
	settlements := OptimizeSettlements(balances)
	if len(settlements) != 1 {
		t.Fatalf("expected a single one-cent transfer, got %d", len(settlements))
	}
	if settlements[0].Amount != 0.01 {
		t.Fatalf("expected 0.01 transfer, got %v", settlements[0].Amount)
	}
	if !VerifySettlements(balances, settlements) {
		t.Fatalf("plan must replay the unrounded nets to within epsilon")
	}
}

func TestOptimizeSettlementsCountNeverExceedsPartyBound(t *testing.T) {
	balances := []entities.Balance{
		balance("a", 25.00),
		balance("b", 35.00),
		balance("c", -10.00),
		balance("d", -20.00),
		balance("e", -30.00),
	}
	settlements := OptimizeSettlements(balances)
	// Greedy netting needs at most creditors+debtors-1 transfers.
	if len(settlements) > 4 {
		t.Fatalf("expected at most 4 transfers, got %d", len(settlements))
	}
	if !VerifySettlements(balances, settlements) {
		t.Fatalf("plan must replay to zero nets")
	}
}

func TestVerifySettlementsDetectsShortPlan(t *testing.T) {
	balances := []entities.Balance{
		balance("alice", 60.00),
		balance("bob", -60.00),
	}
	short := []entities.Settlement{{
		FromParticipantID: "bob",
		ToParticipantID:   "alice",
		Amount:            10.00,
	}}
	if VerifySettlements(balances, short) {
		t.Fatalf("partial plan must fail verification")
	}
}

func TestValidateClaimMatchesComputedTransfer(t *testing.T) {
	settlements := []entities.Settlement{{
		FromParticipantID: "bob",
		ToParticipantID:   "alice",
		Amount:            30.00,
	}}
	check, err := ValidateClaim("bob", "alice", 30.00, settlements)
	if err != nil {
		t.Fatalf("expected matching claim, got %v", err)
	}
	if !check.Matched || check.ComputedAmount != 30.00 || check.Difference != 0 {
		t.Fatalf("unexpected claim check: %+v", check)
	}
}

func TestValidateClaimReportsAmountMismatch(t *testing.T) {
	settlements := []entities.Settlement{{
		FromParticipantID: "bob",
		ToParticipantID:   "alice",
		Amount:            30.00,
	}}
	check, err := ValidateClaim("bob", "alice", 25.00, settlements)
	if !errors.Is(err, domainerrors.ErrAmountMismatch) {
		t.Fatalf("expected ErrAmountMismatch, got %v", err)
	}
	if !check.Matched || check.ComputedAmount != 30.00 || check.Difference != -5.00 {
		t.Fatalf("mismatch check must still carry the computed pair: %+v", check)
	}
}

func TestValidateClaimReportsNoMatchingPair(t *testing.T) {
	_, err := ValidateClaim("carol", "alice", 30.00, []entities.Settlement{{
		FromParticipantID: "bob",
		ToParticipantID:   "alice",
		Amount:            30.00,
	}})
	if !errors.Is(err, domainerrors.ErrNoMatchingSettlement) {
		t.Fatalf("expected ErrNoMatchingSettlement, got %v", err)
	}
}

func TestTransactionSavingsAgainstNaiveBound(t *testing.T) {
	balances := []entities.Balance{
		balance("alice", 60.00),
		balance("bob", -30.00),
		balance("carol", -30.00),
	}
	settlements := OptimizeSettlements(balances)
	// Naive pairwise bound is 1 creditor x 2 debtors = 2; greedy also needs 2.
	if savings := TransactionSavings(balances, settlements); savings != 0 {
		t.Fatalf("expected 0%% savings, got %v", savings)
	}

	balances = []entities.Balance{
		balance("alice", 30.00),
		balance("bob", 30.00),
		balance("carol", -30.00),
		balance("dave", -30.00),
	}
	settlements = OptimizeSettlements(balances)
	if len(settlements) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(settlements))
	}
	// Naive bound is 2x2=4, so two transfers is a 50% reduction.
	if savings := TransactionSavings(balances, settlements); savings != 50.00 {
		t.Fatalf("expected 50%% savings, got %v", savings)
	}
}

func TestTransactionSavingsZeroWhenNothingOwed(t *testing.T) {
	if savings := TransactionSavings(nil, nil); savings != 0 {
		t.Fatalf("expected 0 savings for empty ledger, got %v", savings)
	}
}
