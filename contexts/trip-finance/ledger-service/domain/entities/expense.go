package entities

import "time"

type SplitPolicy string

const (
	SplitPolicyEqual      SplitPolicy = "equal"
	SplitPolicyPercentage SplitPolicy = "percentage"
	SplitPolicyExact      SplitPolicy = "exact"
	SplitPolicyOptIn      SplitPolicy = "opt_in"
)

type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "pending"
	ExpenseStatusApproved ExpenseStatus = "approved"
	ExpenseStatusRejected ExpenseStatus = "rejected"
)

// Split is one participant's share of an expense. Percent is set only for
// percentage-policy splits.
type Split struct {
	ParticipantID string
	Amount        float64
	Percent       *float64
}

// Expense is immutable once created except for its status field.
type Expense struct {
	ExpenseID   string
	TripID      string
	PayerID     string
	Description string
	Amount      float64
	Currency    string
	Policy      SplitPolicy
	Status      ExpenseStatus
	Splits      []Split
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Balance is a participant's derived net position for a trip. It is always
// recomputed from the live expense set and never persisted.
type Balance struct {
	ParticipantID string
	Paid          float64
	Owed          float64
	Net           float64
}

type SettlementStatus string

const (
	SettlementStatusSuggested SettlementStatus = "suggested"
	SettlementStatusConfirmed SettlementStatus = "confirmed"
)

// Settlement is a one-way payment from a debtor to a creditor. Confirmed
// settlements record payment intent only; no money moves through this system.
type Settlement struct {
	SettlementID      string
	TripID            string
	FromParticipantID string
	ToParticipantID   string
	Amount            float64
	Status            SettlementStatus
	Note              string
	CreatedBy         string
	CreatedAt         time.Time
}
