package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	pollerrors "caravan/contexts/trip-planning/poll-service/domain/errors"
	pollhttp "caravan/contexts/trip-planning/poll-service/transport/http"
)

func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	userID := s.resolveUserID(r)
	if userID == "" {
		writePollError(w, http.StatusUnauthorized, "missing_user", "caller identity is required")
		return
	}

	var req pollhttp.CreateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	tripID := r.PathValue("trip_id")
	resp, err := s.polls.Handler.CreateProposalHandler(r.Context(), tripID, userID, req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCloseProposal(w http.ResponseWriter, r *http.Request) {
	userID := s.resolveUserID(r)
	if userID == "" {
		writePollError(w, http.StatusUnauthorized, "missing_user", "caller identity is required")
		return
	}

	proposalID := r.PathValue("proposal_id")
	resp, err := s.polls.Handler.CloseProposalHandler(r.Context(), proposalID)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	userID := s.resolveUserID(r)
	if userID == "" {
		writePollError(w, http.StatusUnauthorized, "missing_user", "caller identity is required")
		return
	}

	var req pollhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	proposalID := r.PathValue("proposal_id")
	resp, err := s.polls.Handler.CastVoteHandler(r.Context(), proposalID, userID, req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitRankedBallot(w http.ResponseWriter, r *http.Request) {
	userID := s.resolveUserID(r)
	if userID == "" {
		writePollError(w, http.StatusUnauthorized, "missing_user", "caller identity is required")
		return
	}

	var req pollhttp.SubmitRankedBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	tripID := r.PathValue("trip_id")
	category := r.PathValue("category")
	resp, err := s.polls.Handler.SubmitRankedBallotHandler(r.Context(), tripID, category, userID, req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProposalResults(w http.ResponseWriter, r *http.Request) {
	proposalID := r.PathValue("proposal_id")
	resp, err := s.polls.Handler.ProposalResultsHandler(r.Context(), proposalID)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCategoryResults(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("trip_id")
	category := r.PathValue("category")
	resp, err := s.polls.Handler.CategoryResultsHandler(r.Context(), tripID, category)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writePollDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pollerrors.ErrInvalidProposalInput),
		errors.Is(err, pollerrors.ErrInvalidVoteInput):
		writePollError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, pollerrors.ErrInvalidRank):
		writePollError(w, http.StatusUnprocessableEntity, "invalid_rank", err.Error())
	case errors.Is(err, pollerrors.ErrInvalidVotingType):
		writePollError(w, http.StatusUnprocessableEntity, "invalid_voting_type", err.Error())
	case errors.Is(err, pollerrors.ErrVotingClosed):
		writePollError(w, http.StatusConflict, "voting_closed", err.Error())
	case errors.Is(err, pollerrors.ErrProposalClosed):
		writePollError(w, http.StatusConflict, "proposal_closed", err.Error())
	case errors.Is(err, pollerrors.ErrProposalNotFound):
		writePollError(w, http.StatusNotFound, "proposal_not_found", err.Error())
	case errors.Is(err, pollerrors.ErrVoteNotFound):
		writePollError(w, http.StatusNotFound, "vote_not_found", err.Error())
	case errors.Is(err, pollerrors.ErrTripNotFound):
		writePollError(w, http.StatusNotFound, "trip_not_found", err.Error())
	case errors.Is(err, pollerrors.ErrConflict):
		writePollError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writePollError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePollError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pollhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
