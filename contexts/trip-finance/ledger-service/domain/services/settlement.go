package services

import (
	"math"
	"sort"

	"caravan/contexts/trip-finance/ledger-service/domain/entities"
	domainerrors "caravan/contexts/trip-finance/ledger-service/domain/errors"
)

type party struct {
	participantID string
	remaining     float64
}

// OptimizeSettlements turns net balances into a reduced list of pairwise
// transfers that zero them out. It is a greedy largest-creditor/largest-debtor
// netting pass, not a minimum-cardinality solver (that problem is NP-hard);
// the greedy result is the documented, reproducible behavior. Ties in the
// descending sorts keep stable input order, which is a non-guarantee rather
// than a defect. Sub-epsilon leftovers are treated as zero rounding slack.
func OptimizeSettlements(balances []entities.Balance) []entities.Settlement {
	creditors := make([]party, 0, len(balances))
	debtors := make([]party, 0, len(balances))
	for _, balance := range balances {
		switch {
		case balance.Net > Epsilon:
			creditors = append(creditors, party{balance.ParticipantID, balance.Net})
		case balance.Net < -Epsilon:
			debtors = append(debtors, party{balance.ParticipantID, -balance.Net})
		}
	}
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining > creditors[j].remaining
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining > debtors[j].remaining
	})

	settlements := make([]entities.Settlement, 0, len(creditors)+len(debtors))
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		// Emit down to a single rounded cent: a party can enter the loop with
		// an unrounded net just above epsilon, and skipping its one-cent
		// transfer would leave that net standing against the verifier.
		amount := round2(math.Min(creditors[i].remaining, debtors[j].remaining))
		if amount >= Epsilon {
			settlements = append(settlements, entities.Settlement{
				FromParticipantID: debtors[j].participantID,
				ToParticipantID:   creditors[i].participantID,
				Amount:            amount,
				Status:            entities.SettlementStatusSuggested,
			})
		}
		creditors[i].remaining = round2(creditors[i].remaining - amount)
		debtors[j].remaining = round2(debtors[j].remaining - amount)
		if creditors[i].remaining <= Epsilon {
			i++
		}
		if j < len(debtors) && debtors[j].remaining <= Epsilon {
			j++
		}
	}
	return settlements
}

// VerifySettlements replays the settlements against a copy of the balances and
// reports whether every participant's net lands within epsilon of zero.
func VerifySettlements(balances []entities.Balance, settlements []entities.Settlement) bool {
	nets := make(map[string]float64, len(balances))
	for _, balance := range balances {
		nets[balance.ParticipantID] = balance.Net
	}
	for _, settlement := range settlements {
		nets[settlement.FromParticipantID] += settlement.Amount
		nets[settlement.ToParticipantID] -= settlement.Amount
	}
	for _, net := range nets {
		if math.Abs(net) > Epsilon {
			return false
		}
	}
	return true
}

// ClaimCheck describes how a payment claim compares against the freshly
// recomputed settlement plan.
type ClaimCheck struct {
	Matched        bool
	ComputedAmount float64
	Difference     float64
}

// ValidateClaim looks up the (from, to) pair in the recomputed settlements and
// compares the claimed amount. The returned errors are advisory: real payments
// may legitimately be partial or differently rounded, so callers report a
// mismatch without blocking the settlement record.
func ValidateClaim(
	fromParticipantID string,
	toParticipantID string,
	amount float64,
	settlements []entities.Settlement,
) (ClaimCheck, error) {
	for _, settlement := range settlements {
		if settlement.FromParticipantID != fromParticipantID ||
			settlement.ToParticipantID != toParticipantID {
			continue
		}
		check := ClaimCheck{
			Matched:        true,
			ComputedAmount: settlement.Amount,
			Difference:     round2(amount - settlement.Amount),
		}
		if math.Abs(amount-settlement.Amount) > Epsilon {
			return check, domainerrors.ErrAmountMismatch
		}
		return check, nil
	}
	return ClaimCheck{}, domainerrors.ErrNoMatchingSettlement
}

// TransactionSavings reports how far the settlement count sits below the naive
// pairwise upper bound (creditors x debtors), as a percentage. Diagnostic
// only, not a correctness check.
func TransactionSavings(balances []entities.Balance, settlements []entities.Settlement) float64 {
	creditors, debtors := 0, 0
	for _, balance := range balances {
		switch {
		case balance.Net > Epsilon:
			creditors++
		case balance.Net < -Epsilon:
			debtors++
		}
	}
	naive := creditors * debtors
	if naive == 0 {
		return 0
	}
	return round2(100 * (1 - float64(len(settlements))/float64(naive)))
}
