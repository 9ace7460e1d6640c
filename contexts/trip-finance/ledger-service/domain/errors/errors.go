package errors

import "errors"

var (
	ErrInvalidExpenseInput     = errors.New("expense input is invalid")
	ErrInvalidCurrency         = errors.New("currency code is not recognized")
	ErrZeroParticipants        = errors.New("expense has no participants")
	ErrEmptyParticipantSet     = errors.New("no participants opted in to the split")
	ErrInvalidPercentage       = errors.New("split percentages do not sum to 100")
	ErrSplitMismatch           = errors.New("exact split amounts do not sum to the expense amount")
	ErrExpenseNotFound         = errors.New("expense not found")
	ErrInvalidStatusTransition = errors.New("expense status transition is not allowed")
	ErrInvalidSettlementInput  = errors.New("settlement input is invalid")
	ErrSettlementNotFound      = errors.New("settlement not found")
	ErrNoMatchingSettlement    = errors.New("no suggested settlement matches the claimed pair")
	ErrAmountMismatch          = errors.New("claimed amount differs from the computed settlement")
	ErrTripNotFound            = errors.New("trip membership not found")
	ErrConflict                = errors.New("ledger write conflict")
)
