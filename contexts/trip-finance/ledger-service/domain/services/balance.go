package services

import (
	"math"
	"sort"

	"caravan/contexts/trip-finance/ledger-service/domain/entities"
)

// AggregateBalances reduces an expense snapshot into one net balance per
// participant: the payer's paid total is credited with the expense amount and
// every split debits that participant's owed total. Participants appearing on
// only one side still show up with the other field at zero. Output is sorted
// by participant id so repeated runs over the same snapshot are identical.
// Input is assumed single-currency; mixed-currency aggregation is out of scope.
func AggregateBalances(expenses []entities.Expense) []entities.Balance {
	totals := make(map[string]*entities.Balance)
	touch := func(participantID string) *entities.Balance {
		if balance, ok := totals[participantID]; ok {
			return balance
		}
		balance := &entities.Balance{ParticipantID: participantID}
		totals[participantID] = balance
		return balance
	}

	for _, expense := range expenses {
		touch(expense.PayerID).Paid += expense.Amount
		for _, split := range expense.Splits {
			touch(split.ParticipantID).Owed += split.Amount
		}
	}

	balances := make([]entities.Balance, 0, len(totals))
	for _, balance := range totals {
		balance.Paid = round2(balance.Paid)
		balance.Owed = round2(balance.Owed)
		balance.Net = round2(balance.Paid - balance.Owed)
		balances = append(balances, *balance)
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].ParticipantID < balances[j].ParticipantID
	})
	return balances
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
