package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateExpenseRequest struct {
	PayerID      string             `json:"payer_id"`
	Description  string             `json:"description,omitempty"`
	Amount       float64            `json:"amount"`
	Currency     string             `json:"currency,omitempty"`
	SplitPolicy  string             `json:"split_policy"`
	Participants []string           `json:"participants,omitempty"`
	Percentages  map[string]float64 `json:"percentages,omitempty"`
	ExactAmounts map[string]float64 `json:"exact_amounts,omitempty"`
	OptIns       []string           `json:"opt_ins,omitempty"`
}

type SplitItem struct {
	ParticipantID string   `json:"participant_id"`
	Amount        float64  `json:"amount"`
	Percent       *float64 `json:"percent,omitempty"`
}

type ExpenseResponse struct {
	ExpenseID   string      `json:"expense_id"`
	TripID      string      `json:"trip_id"`
	PayerID     string      `json:"payer_id"`
	Description string      `json:"description,omitempty"`
	Amount      float64     `json:"amount"`
	Currency    string      `json:"currency"`
	SplitPolicy string      `json:"split_policy"`
	Status      string      `json:"status"`
	Splits      []SplitItem `json:"splits"`
}

type ChangeExpenseStatusRequest struct {
	Status string `json:"status"`
}

type BalanceItem struct {
	ParticipantID string  `json:"participant_id"`
	Paid          float64 `json:"paid"`
	Owed          float64 `json:"owed"`
	Net           float64 `json:"net"`
}

type BalancesResponse struct {
	TripID   string        `json:"trip_id"`
	Balances []BalanceItem `json:"balances"`
}

type SettlementItem struct {
	SettlementID      string  `json:"settlement_id,omitempty"`
	FromParticipantID string  `json:"from_participant_id"`
	ToParticipantID   string  `json:"to_participant_id"`
	Amount            float64 `json:"amount"`
	Status            string  `json:"status"`
	Note              string  `json:"note,omitempty"`
}

type SettlementPlanResponse struct {
	TripID         string           `json:"trip_id"`
	Balances       []BalanceItem    `json:"balances"`
	Settlements    []SettlementItem `json:"settlements"`
	SavingsPercent float64          `json:"savings_percent"`
	Verified       bool             `json:"verified"`
}

type ConfirmSettlementRequest struct {
	FromParticipantID string  `json:"from_participant_id"`
	ToParticipantID   string  `json:"to_participant_id"`
	Amount            float64 `json:"amount"`
	Note              string  `json:"note,omitempty"`
}

type ConfirmSettlementResponse struct {
	Settlement     SettlementItem `json:"settlement"`
	ClaimMatched   bool           `json:"claim_matched"`
	ComputedAmount float64        `json:"computed_amount,omitempty"`
	Advisory       string         `json:"advisory,omitempty"`
}

type SettlementListResponse struct {
	TripID      string           `json:"trip_id"`
	Settlements []SettlementItem `json:"settlements"`
}
