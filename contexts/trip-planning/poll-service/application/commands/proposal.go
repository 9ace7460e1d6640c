package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "caravan/contexts/trip-planning/poll-service/application"
	"caravan/contexts/trip-planning/poll-service/domain/entities"
	domainerrors "caravan/contexts/trip-planning/poll-service/domain/errors"
	"caravan/contexts/trip-planning/poll-service/ports"
)

// CreateProposalCommand opens a new candidate option for voting.
type CreateProposalCommand struct {
	TripID    string
	Category  string
	Title     string
	Method    entities.VotingMethod
	Deadline  *time.Time
	CreatorID string
}

// ProposalUseCase owns the proposal lifecycle: create and close.
type ProposalUseCase struct {
	Proposals ports.ProposalRepository
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc ProposalUseCase) CreateProposal(ctx context.Context, cmd CreateProposalCommand) (entities.Proposal, error) {
	logger := application.ResolveLogger(uc.Logger)
	tripID := strings.TrimSpace(cmd.TripID)
	category := strings.TrimSpace(cmd.Category)
	title := strings.TrimSpace(cmd.Title)
	if tripID == "" || category == "" || title == "" {
		return entities.Proposal{}, domainerrors.ErrInvalidProposalInput
	}
	if !isKnownMethod(cmd.Method) {
		return entities.Proposal{}, domainerrors.ErrInvalidVotingType
	}

	proposalID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Proposal{}, err
	}
	now := uc.now()
	var deadline *time.Time
	if cmd.Deadline != nil {
		value := cmd.Deadline.UTC()
		deadline = &value
	}
	proposal := entities.Proposal{
		ProposalID: proposalID,
		TripID:     tripID,
		Category:   category,
		Title:      title,
		Method:     cmd.Method,
		Status:     entities.ProposalStatusOpen,
		Deadline:   deadline,
		CreatedBy:  strings.TrimSpace(cmd.CreatorID),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.Proposals.CreateProposal(ctx, proposal); err != nil {
		return entities.Proposal{}, err
	}

	logger.Info("proposal created",
		"event", "poll_proposal_created",
		"module", "trip-planning/poll-service",
		"layer", "application",
		"proposal_id", proposal.ProposalID,
		"trip_id", proposal.TripID,
		"category", proposal.Category,
		"method", string(proposal.Method),
	)
	return proposal, nil
}

// CloseProposal moves an open proposal to closed; further votes are rejected
// by the voting-closed gate.
func (uc ProposalUseCase) CloseProposal(ctx context.Context, proposalID string) (entities.Proposal, error) {
	logger := application.ResolveLogger(uc.Logger)
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return entities.Proposal{}, domainerrors.ErrInvalidProposalInput
	}
	proposal, err := uc.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if proposal.Status != entities.ProposalStatusOpen {
		return entities.Proposal{}, domainerrors.ErrProposalClosed
	}

	now := uc.now()
	if err := uc.Proposals.UpdateProposalStatus(ctx, proposalID, entities.ProposalStatusClosed, now); err != nil {
		return entities.Proposal{}, err
	}
	proposal.Status = entities.ProposalStatusClosed
	proposal.UpdatedAt = now

	logger.Info("proposal closed",
		"event", "poll_proposal_closed",
		"module", "trip-planning/poll-service",
		"layer", "application",
		"proposal_id", proposal.ProposalID,
		"trip_id", proposal.TripID,
	)
	return proposal, nil
}

func (uc ProposalUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

func isKnownMethod(method entities.VotingMethod) bool {
	switch method {
	case entities.VotingMethodSingleChoice, entities.VotingMethodRankedChoice, entities.VotingMethodApproval:
		return true
	default:
		return false
	}
}
