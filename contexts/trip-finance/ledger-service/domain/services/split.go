package services

import (
	"github.com/shopspring/decimal"

	"caravan/contexts/trip-finance/ledger-service/domain/entities"
	domainerrors "caravan/contexts/trip-finance/ledger-service/domain/errors"
)

// Epsilon is the monetary tolerance for equality checks, one cent.
const Epsilon = 0.01

// SplitParticipant is one candidate share-holder of an expense, in the stable
// order supplied by the caller. DefaultPercent is the participant's standing
// percentage used when a percentage split carries no explicit override.
type SplitParticipant struct {
	ParticipantID  string
	DefaultPercent float64
	OptedIn        bool
}

// SplitOverride carries per-participant values supplied with the expense:
// Percentages for percentage splits, Amounts for exact splits.
type SplitOverride struct {
	Percentages map[string]float64
	Amounts     map[string]float64
}

// ComputeSplits divides an expense amount across participants according to the
// split policy. It is pure and deterministic given identical input ordering.
// For equal and percentage splits the last participant absorbs the rounding
// remainder so the split amounts sum to the expense amount exactly; the
// arithmetic runs on decimals so the remainder assignment is not subject to
// float drift. The amount is assumed positive; callers validate that upstream.
func ComputeSplits(
	amount float64,
	policy entities.SplitPolicy,
	participants []SplitParticipant,
	override *SplitOverride,
) ([]entities.Split, error) {
	if len(participants) == 0 {
		return nil, domainerrors.ErrZeroParticipants
	}

	switch policy {
	case entities.SplitPolicyEqual:
		return equalSplits(amount, participants), nil
	case entities.SplitPolicyPercentage:
		return percentageSplits(amount, participants, override)
	case entities.SplitPolicyExact:
		return exactSplits(amount, participants, override)
	case entities.SplitPolicyOptIn:
		optedIn := make([]SplitParticipant, 0, len(participants))
		for _, participant := range participants {
			if participant.OptedIn {
				optedIn = append(optedIn, participant)
			}
		}
		if len(optedIn) == 0 {
			return nil, domainerrors.ErrEmptyParticipantSet
		}
		return equalSplits(amount, optedIn), nil
	default:
		return nil, domainerrors.ErrInvalidExpenseInput
	}
}

func equalSplits(amount float64, participants []SplitParticipant) []entities.Split {
	total := decimal.NewFromFloat(amount)
	perHead := total.DivRound(decimal.NewFromInt(int64(len(participants))), 2)

	splits := make([]entities.Split, 0, len(participants))
	assigned := decimal.Zero
	for i, participant := range participants {
		share := perHead
		if i == len(participants)-1 {
			share = total.Sub(assigned)
		}
		assigned = assigned.Add(share)
		splits = append(splits, entities.Split{
			ParticipantID: participant.ParticipantID,
			Amount:        share.InexactFloat64(),
		})
	}
	return splits
}

func percentageSplits(
	amount float64,
	participants []SplitParticipant,
	override *SplitOverride,
) ([]entities.Split, error) {
	percents := make([]float64, len(participants))
	sum := decimal.Zero
	for i, participant := range participants {
		percent := participant.DefaultPercent
		if override != nil {
			if value, ok := override.Percentages[participant.ParticipantID]; ok {
				percent = value
			}
		}
		percents[i] = percent
		sum = sum.Add(decimal.NewFromFloat(percent))
	}
	if sum.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(decimal.NewFromFloat(Epsilon)) {
		return nil, domainerrors.ErrInvalidPercentage
	}

	total := decimal.NewFromFloat(amount)
	splits := make([]entities.Split, 0, len(participants))
	assigned := decimal.Zero
	for i, participant := range participants {
		share := total.
			Mul(decimal.NewFromFloat(percents[i])).
			Div(decimal.NewFromInt(100)).
			Round(2)
		if i == len(participants)-1 {
			share = total.Sub(assigned)
		}
		assigned = assigned.Add(share)
		percent := percents[i]
		splits = append(splits, entities.Split{
			ParticipantID: participant.ParticipantID,
			Amount:        share.InexactFloat64(),
			Percent:       &percent,
		})
	}
	return splits, nil
}

func exactSplits(
	amount float64,
	participants []SplitParticipant,
	override *SplitOverride,
) ([]entities.Split, error) {
	// Exact splits keep the caller's amounts as-is, no remainder is
	// reassigned. The sum must match the expense amount to strictly under one
	// cent; a full cent of drift already means the caller's figures are wrong.
	splits := make([]entities.Split, 0, len(participants))
	sum := decimal.Zero
	for _, participant := range participants {
		var share float64
		if override != nil {
			share = override.Amounts[participant.ParticipantID]
		}
		sum = sum.Add(decimal.NewFromFloat(share))
		splits = append(splits, entities.Split{
			ParticipantID: participant.ParticipantID,
			Amount:        share,
		})
	}
	if sum.Sub(decimal.NewFromFloat(amount)).Abs().GreaterThanOrEqual(decimal.NewFromFloat(Epsilon)) {
		return nil, domainerrors.ErrSplitMismatch
	}
	return splits, nil
}
