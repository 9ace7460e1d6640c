package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	ledgererrors "caravan/contexts/trip-finance/ledger-service/domain/errors"
	ledgerhttp "caravan/contexts/trip-finance/ledger-service/transport/http"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	userID := s.resolveUserID(r)
	if userID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_user", "caller identity is required")
		return
	}

	var req ledgerhttp.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	tripID := r.PathValue("trip_id")
	resp, err := s.ledger.Handler.CreateExpenseHandler(r.Context(), tripID, userID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleChangeExpenseStatus(w http.ResponseWriter, r *http.Request) {
	userID := s.resolveUserID(r)
	if userID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_user", "caller identity is required")
		return
	}

	var req ledgerhttp.ChangeExpenseStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	expenseID := r.PathValue("expense_id")
	resp, err := s.ledger.Handler.ChangeExpenseStatusHandler(r.Context(), expenseID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTripBalances(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("trip_id")
	resp, err := s.ledger.Handler.TripBalancesHandler(r.Context(), tripID)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSuggestedSettlements(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("trip_id")
	resp, err := s.ledger.Handler.SuggestedSettlementsHandler(r.Context(), tripID)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConfirmSettlement(w http.ResponseWriter, r *http.Request) {
	userID := s.resolveUserID(r)
	if userID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_user", "caller identity is required")
		return
	}

	var req ledgerhttp.ConfirmSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	tripID := r.PathValue("trip_id")
	resp, err := s.ledger.Handler.ConfirmSettlementHandler(r.Context(), tripID, userID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	tripID := strings.TrimSpace(r.PathValue("trip_id"))
	resp, err := s.ledger.Handler.ListSettlementsHandler(r.Context(), tripID)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrInvalidExpenseInput),
		errors.Is(err, ledgererrors.ErrInvalidSettlementInput),
		errors.Is(err, ledgererrors.ErrInvalidCurrency):
		writeLedgerError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ledgererrors.ErrZeroParticipants),
		errors.Is(err, ledgererrors.ErrEmptyParticipantSet),
		errors.Is(err, ledgererrors.ErrInvalidPercentage),
		errors.Is(err, ledgererrors.ErrSplitMismatch):
		writeLedgerError(w, http.StatusUnprocessableEntity, "invalid_split", err.Error())
	case errors.Is(err, ledgererrors.ErrExpenseNotFound):
		writeLedgerError(w, http.StatusNotFound, "expense_not_found", err.Error())
	case errors.Is(err, ledgererrors.ErrSettlementNotFound):
		writeLedgerError(w, http.StatusNotFound, "settlement_not_found", err.Error())
	case errors.Is(err, ledgererrors.ErrTripNotFound):
		writeLedgerError(w, http.StatusNotFound, "trip_not_found", err.Error())
	case errors.Is(err, ledgererrors.ErrInvalidStatusTransition):
		writeLedgerError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, ledgererrors.ErrNoMatchingSettlement),
		errors.Is(err, ledgererrors.ErrAmountMismatch):
		writeLedgerError(w, http.StatusUnprocessableEntity, "settlement_claim_rejected", err.Error())
	case errors.Is(err, ledgererrors.ErrConflict):
		writeLedgerError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
