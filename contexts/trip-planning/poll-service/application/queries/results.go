package queries

import (
	"context"
	"strings"

	"caravan/contexts/trip-planning/poll-service/domain/entities"
	domainerrors "caravan/contexts/trip-planning/poll-service/domain/errors"
	"caravan/contexts/trip-planning/poll-service/domain/services"
	"caravan/contexts/trip-planning/poll-service/ports"
)

// ProposalResult is the read model for a single proposal's yes/no tally.
type ProposalResult struct {
	Proposal     entities.Proposal
	Result       services.SingleChoiceResult
	VotingClosed bool
}

// CategoryResults is the read model for a trip category's standings. Exactly
// one of Ranked or Approval is populated, matching the category's method.
type CategoryResults struct {
	TripID       string
	Category     string
	Method       entities.VotingMethod
	Proposals    []entities.Proposal
	Ranked       []services.RankedStanding
	Approval     []services.ApprovalStanding
	VotingClosed bool
}

type ResultUseCase struct {
	Proposals  ports.ProposalRepository
	Votes      ports.VoteRepository
	Membership ports.MembershipProvider
	Clock      ports.Clock
}

// ProposalResults tallies one single-choice proposal. Results stay readable
// while voting is still open; VotingClosed tells consumers whether they are
// looking at a final count.
func (uc ResultUseCase) ProposalResults(ctx context.Context, proposalID string) (ProposalResult, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return ProposalResult{}, domainerrors.ErrInvalidProposalInput
	}
	proposal, err := uc.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return ProposalResult{}, err
	}
	if proposal.Method != entities.VotingMethodSingleChoice {
		return ProposalResult{}, domainerrors.ErrInvalidVotingType
	}
	votes, err := uc.Votes.ListVotesByProposal(ctx, proposalID)
	if err != nil {
		return ProposalResult{}, err
	}
	return ProposalResult{
		Proposal:     proposal,
		Result:       services.TallySingleChoice(proposal, votes),
		VotingClosed: proposal.VotingClosed(uc.Clock.Now()),
	}, nil
}

// CategoryResults tallies a trip category's full candidate set with the
// method the category's proposals share: Borda standings for ranked-choice
// categories, approval standings otherwise. Mixed methods in one category are
// rejected rather than guessed at.
func (uc ResultUseCase) CategoryResults(ctx context.Context, tripID string, category string) (CategoryResults, error) {
	tripID = strings.TrimSpace(tripID)
	category = strings.TrimSpace(category)
	if tripID == "" || category == "" {
		return CategoryResults{}, domainerrors.ErrInvalidProposalInput
	}
	proposals, err := uc.Proposals.ListProposalsByCategory(ctx, tripID, category, false)
	if err != nil {
		return CategoryResults{}, err
	}
	if len(proposals) == 0 {
		return CategoryResults{}, domainerrors.ErrProposalNotFound
	}
	method := proposals[0].Method
	for _, proposal := range proposals[1:] {
		if proposal.Method != method {
			return CategoryResults{}, domainerrors.ErrInvalidVotingType
		}
	}

	votes, err := uc.Votes.ListVotesByCategory(ctx, tripID, category)
	if err != nil {
		return CategoryResults{}, err
	}

	now := uc.Clock.Now()
	closed := true
	for _, proposal := range proposals {
		if !proposal.VotingClosed(now) {
			closed = false
			break
		}
	}
	results := CategoryResults{
		TripID:       tripID,
		Category:     category,
		Method:       method,
		Proposals:    proposals,
		VotingClosed: closed,
	}

	switch method {
	case entities.VotingMethodRankedChoice:
		results.Ranked = services.TallyRankedChoice(proposals, votes)
	case entities.VotingMethodApproval:
		eligible, err := uc.Membership.CountTripMembers(ctx, tripID)
		if err != nil {
			return CategoryResults{}, err
		}
		results.Approval = services.TallyApproval(proposals, votes, eligible)
	default:
		return CategoryResults{}, domainerrors.ErrInvalidVotingType
	}
	return results, nil
}
