package services

import (
	"errors"
	"math"
	"testing"

	"caravan/contexts/trip-finance/ledger-service/domain/entities"
	domainerrors "caravan/contexts/trip-finance/ledger-service/domain/errors"
)

func participants(ids ...string) []SplitParticipant {
	items := make([]SplitParticipant, 0, len(ids))
	for _, id := range ids {
		items = append(items, SplitParticipant{ParticipantID: id})
	}
	return items
}

func sumSplits(splits []entities.Split) float64 {
	total := 0.0
	for _, split := range splits {
		total += split.Amount
	}
	return math.Round(total*100) / 100
}

func TestEqualSplitLastParticipantAbsorbsRemainder(t *testing.T) {
	splits, err := ComputeSplits(100.00, entities.SplitPolicyEqual, participants("alice", "bob", "carol"), nil)
	if err != nil {
		t.Fatalf("equal split failed: %v", err)
	}
	if len(splits) != 3 {
		t.Fatalf("expected 3 splits, got %d", len(splits))
	}
	if splits[0].Amount != 33.33 || splits[1].Amount != 33.33 {
		t.Fatalf("expected 33.33 per head, got %v and %v", splits[0].Amount, splits[1].Amount)
	}
	if splits[2].Amount != 33.34 {
		t.Fatalf("expected last participant to absorb remainder as 33.34, got %v", splits[2].Amount)
	}
	if sumSplits(splits) != 100.00 {
		t.Fatalf("splits must sum to the expense amount, got %v", sumSplits(splits))
	}
}

func TestEqualSplitSumsExactlyAcrossAwkwardAmounts(t *testing.T) {
	amounts := []float64{0.01, 0.05, 1.00, 10.01, 99.99, 250.37}
	headcounts := []int{1, 2, 3, 6, 7}
	ids := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"}

	for _, amount := range amounts {
		for _, count := range headcounts {
			splits, err := ComputeSplits(amount, entities.SplitPolicyEqual, participants(ids[:count]...), nil)
			if err != nil {
				t.Fatalf("equal split of %v across %d failed: %v", amount, count, err)
			}
			if got := sumSplits(splits); got != amount {
				t.Fatalf("equal split of %v across %d sums to %v", amount, count, got)
			}
		}
	}
}

func TestPercentageSplitUsesOverridesAndAbsorbsRounding(t *testing.T) {
	splits, err := ComputeSplits(100.00, entities.SplitPolicyPercentage,
		participants("alice", "bob", "carol"),
		&SplitOverride{Percentages: map[string]float64{
			"alice": 33.33,
			"bob":   33.33,
			"carol": 33.34,
		}},
	)
	if err != nil {
		t.Fatalf("percentage split failed: %v", err)
	}
	if sumSplits(splits) != 100.00 {
		t.Fatalf("percentage splits must sum to the expense amount, got %v", sumSplits(splits))
	}
	if splits[0].Percent == nil || *splits[0].Percent != 33.33 {
		t.Fatalf("expected percent to be carried on the split, got %v", splits[0].Percent)
	}
}

func TestPercentageSplitRejectsSumAwayFromHundred(t *testing.T) {
	_, err := ComputeSplits(100.00, entities.SplitPolicyPercentage,
		participants("alice", "bob"),
		&SplitOverride{Percentages: map[string]float64{
			"alice": 60,
			"bob":   30,
		}},
	)
	if !errors.Is(err, domainerrors.ErrInvalidPercentage) {
		t.Fatalf("expected ErrInvalidPercentage, got %v", err)
	}
}

func TestPercentageSplitFallsBackToDefaultShares(t *testing.T) {
	splits, err := ComputeSplits(80.00, entities.SplitPolicyPercentage,
		[]SplitParticipant{
			{ParticipantID: "alice", DefaultPercent: 50},
			{ParticipantID: "bob", DefaultPercent: 50},
		},
		nil,
	)
	if err != nil {
		t.Fatalf("percentage split with defaults failed: %v", err)
	}
	if splits[0].Amount != 40.00 || splits[1].Amount != 40.00 {
		t.Fatalf("expected 40/40, got %v and %v", splits[0].Amount, splits[1].Amount)
	}
}

func TestExactSplitKeepsCallerAmounts(t *testing.T) {
	splits, err := ComputeSplits(100.00, entities.SplitPolicyExact,
		participants("alice", "bob"),
		&SplitOverride{Amounts: map[string]float64{
			"alice": 70.50,
			"bob":   29.50,
		}},
	)
	if err != nil {
		t.Fatalf("exact split failed: %v", err)
	}
	if splits[0].Amount != 70.50 || splits[1].Amount != 29.50 {
		t.Fatalf("exact split must keep caller amounts, got %v and %v", splits[0].Amount, splits[1].Amount)
	}
}

func TestExactSplitRejectsSumBeyondTolerance(t *testing.T) {
	_, err := ComputeSplits(100.00, entities.SplitPolicyExact,
		participants("alice", "bob"),
		&SplitOverride{Amounts: map[string]float64{
			"alice": 70.00,
			"bob":   29.97,
		}},
	)
	if !errors.Is(err, domainerrors.ErrSplitMismatch) {
		t.Fatalf("expected ErrSplitMismatch, got %v", err)
	}
}

func TestExactSplitRejectsOneCentShortfall(t *testing.T) {
	_, err := ComputeSplits(100.00, entities.SplitPolicyExact,
		participants("alice", "bob"),
		&SplitOverride{Amounts: map[string]float64{
			"alice": 70.00,
			"bob":   29.99,
		}},
	)
	if !errors.Is(err, domainerrors.ErrSplitMismatch) {
		t.Fatalf("a full cent of drift must be rejected, got %v", err)
	}
}

func TestExactSplitAcceptsSubCentDrift(t *testing.T) {
	splits, err := ComputeSplits(100.00, entities.SplitPolicyExact,
		participants("alice", "bob"),
		&SplitOverride{Amounts: map[string]float64{
			"alice": 70.005,
			"bob":   29.999,
		}},
	)
	if err != nil {
		t.Fatalf("expected sub-cent drift to pass the tolerance, got %v", err)
	}
	if len(splits) != 2 {
		t.Fatalf("expected 2 splits, got %d", len(splits))
	}
}

func TestOptInSplitDividesAmongOptedInOnly(t *testing.T) {
	splits, err := ComputeSplits(60.00, entities.SplitPolicyOptIn,
		[]SplitParticipant{
			{ParticipantID: "alice", OptedIn: true},
			{ParticipantID: "bob", OptedIn: false},
			{ParticipantID: "carol", OptedIn: true},
		},
		nil,
	)
	if err != nil {
		t.Fatalf("opt-in split failed: %v", err)
	}
	if len(splits) != 2 {
		t.Fatalf("expected 2 opted-in splits, got %d", len(splits))
	}
	if splits[0].ParticipantID != "alice" || splits[1].ParticipantID != "carol" {
		t.Fatalf("expected alice and carol, got %v", splits)
	}
	if splits[0].Amount != 30.00 || splits[1].Amount != 30.00 {
		t.Fatalf("expected 30/30, got %v and %v", splits[0].Amount, splits[1].Amount)
	}
}

func TestOptInSplitRejectsEmptyOptedInSet(t *testing.T) {
	_, err := ComputeSplits(60.00, entities.SplitPolicyOptIn,
		[]SplitParticipant{
			{ParticipantID: "alice"},
			{ParticipantID: "bob"},
		},
		nil,
	)
	if !errors.Is(err, domainerrors.ErrEmptyParticipantSet) {
		t.Fatalf("expected ErrEmptyParticipantSet, got %v", err)
	}
}

func TestComputeSplitsRejectsZeroParticipants(t *testing.T) {
	_, err := ComputeSplits(10.00, entities.SplitPolicyEqual, nil, nil)
	if !errors.Is(err, domainerrors.ErrZeroParticipants) {
		t.Fatalf("expected ErrZeroParticipants, got %v", err)
	}
}
