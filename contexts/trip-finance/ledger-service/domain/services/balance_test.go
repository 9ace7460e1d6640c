package services

import (
	"math"
	"testing"

	"caravan/contexts/trip-finance/ledger-service/domain/entities"
)

func expense(payerID string, amount float64, splits ...entities.Split) entities.Expense {
	return entities.Expense{
		PayerID: payerID,
		Amount:  amount,
		Status:  entities.ExpenseStatusApproved,
		Splits:  splits,
	}
}

func TestAggregateBalancesCreditsPayerAndDebitsSplits(t *testing.T) {
	balances := AggregateBalances([]entities.Expense{
		expense("alice", 90.00,
			entities.Split{ParticipantID: "alice", Amount: 30.00},
			entities.Split{ParticipantID: "bob", Amount: 30.00},
			entities.Split{ParticipantID: "carol", Amount: 30.00},
		),
	})
	if len(balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(balances))
	}
	if balances[0].ParticipantID != "alice" || balances[0].Net != 60.00 {
		t.Fatalf("expected alice net +60, got %+v", balances[0])
	}
	if balances[1].ParticipantID != "bob" || balances[1].Net != -30.00 {
		t.Fatalf("expected bob net -30, got %+v", balances[1])
	}
	if balances[2].ParticipantID != "carol" || balances[2].Net != -30.00 {
		t.Fatalf("expected carol net -30, got %+v", balances[2])
	}
}

func TestAggregateBalancesConservesToZero(t *testing.T) {
	balances := AggregateBalances([]entities.Expense{
		expense("alice", 100.00,
			entities.Split{ParticipantID: "alice", Amount: 33.33},
			entities.Split{ParticipantID: "bob", Amount: 33.33},
			entities.Split{ParticipantID: "carol", Amount: 33.34},
		),
		expense("bob", 45.50,
			entities.Split{ParticipantID: "alice", Amount: 22.75},
			entities.Split{ParticipantID: "bob", Amount: 22.75},
		),
	})

	total := 0.0
	for _, balance := range balances {
		total += balance.Net
	}
	if math.Abs(total) > Epsilon {
		t.Fatalf("nets must conserve to zero, got %v", total)
	}
}

func TestAggregateBalancesIncludesOneSidedParticipants(t *testing.T) {
	balances := AggregateBalances([]entities.Expense{
		expense("alice", 50.00,
			entities.Split{ParticipantID: "bob", Amount: 50.00},
		),
	})
	if len(balances) != 2 {
		t.Fatalf("expected payer and debtor, got %d balances", len(balances))
	}
	if balances[0].ParticipantID != "alice" || balances[0].Paid != 50.00 || balances[0].Owed != 0 {
		t.Fatalf("expected alice paid-only, got %+v", balances[0])
	}
	if balances[1].ParticipantID != "bob" || balances[1].Paid != 0 || balances[1].Owed != 50.00 {
		t.Fatalf("expected bob owed-only, got %+v", balances[1])
	}
}

func TestAggregateBalancesEmptyLedger(t *testing.T) {
	if balances := AggregateBalances(nil); len(balances) != 0 {
		t.Fatalf("expected no balances for empty ledger, got %d", len(balances))
	}
}
