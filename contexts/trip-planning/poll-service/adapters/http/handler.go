package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"caravan/contexts/trip-planning/poll-service/application/commands"
	"caravan/contexts/trip-planning/poll-service/application/queries"
	"caravan/contexts/trip-planning/poll-service/domain/entities"
	domainerrors "caravan/contexts/trip-planning/poll-service/domain/errors"
	"caravan/contexts/trip-planning/poll-service/domain/services"
	httptransport "caravan/contexts/trip-planning/poll-service/transport/http"
)

type Handler struct {
	Proposals commands.ProposalUseCase
	Votes     commands.VoteUseCase
	Results   queries.ResultUseCase
	Logger    *slog.Logger
}

func (h Handler) CreateProposalHandler(
	ctx context.Context,
	tripID string,
	userID string,
	req httptransport.CreateProposalRequest,
) (httptransport.ProposalResponse, error) {
	var deadline *time.Time
	if req.Deadline != "" {
		parsed, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			return httptransport.ProposalResponse{}, domainerrors.ErrInvalidProposalInput
		}
		deadline = &parsed
	}
	proposal, err := h.Proposals.CreateProposal(ctx, commands.CreateProposalCommand{
		TripID:    tripID,
		Category:  req.Category,
		Title:     req.Title,
		Method:    entities.VotingMethod(req.Method),
		Deadline:  deadline,
		CreatorID: userID,
	})
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return mapProposal(proposal), nil
}

func (h Handler) CloseProposalHandler(
	ctx context.Context,
	proposalID string,
) (httptransport.ProposalResponse, error) {
	proposal, err := h.Proposals.CloseProposal(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return mapProposal(proposal), nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	proposalID string,
	userID string,
	req httptransport.CastVoteRequest,
) (httptransport.VoteResponse, error) {
	vote, err := h.Votes.CastVote(ctx, commands.CastVoteCommand{
		ProposalID: proposalID,
		VoterID:    userID,
		Approved:   req.Approved,
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return mapVote(vote), nil
}

func (h Handler) SubmitRankedBallotHandler(
	ctx context.Context,
	tripID string,
	category string,
	userID string,
	req httptransport.SubmitRankedBallotRequest,
) (httptransport.RankedBallotResponse, error) {
	entries := make([]commands.RankedBallotEntry, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, commands.RankedBallotEntry{
			ProposalID: entry.ProposalID,
			Rank:       entry.Rank,
		})
	}
	votes, err := h.Votes.SubmitRankedBallot(ctx, commands.SubmitRankedBallotCommand{
		TripID:   tripID,
		Category: category,
		VoterID:  userID,
		Entries:  entries,
	})
	if err != nil {
		return httptransport.RankedBallotResponse{}, err
	}
	items := make([]httptransport.VoteResponse, 0, len(votes))
	for _, vote := range votes {
		items = append(items, mapVote(vote))
	}
	return httptransport.RankedBallotResponse{
		TripID:   tripID,
		Category: category,
		VoterID:  userID,
		Votes:    items,
	}, nil
}

func (h Handler) ProposalResultsHandler(
	ctx context.Context,
	proposalID string,
) (httptransport.ProposalResultResponse, error) {
	result, err := h.Results.ProposalResults(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalResultResponse{}, err
	}
	voters := make([]httptransport.VoterChoiceItem, 0, len(result.Result.Voters))
	for _, voter := range result.Result.Voters {
		voters = append(voters, httptransport.VoterChoiceItem{
			VoterID:  voter.VoterID,
			Approved: voter.Approved,
		})
	}
	return httptransport.ProposalResultResponse{
		Proposal:     mapProposal(result.Proposal),
		Yes:          result.Result.Yes,
		No:           result.Result.No,
		Percentage:   result.Result.Percentage,
		Voters:       voters,
		VotingClosed: result.VotingClosed,
	}, nil
}

func (h Handler) CategoryResultsHandler(
	ctx context.Context,
	tripID string,
	category string,
) (httptransport.CategoryResultsResponse, error) {
	results, err := h.Results.CategoryResults(ctx, tripID, category)
	if err != nil {
		return httptransport.CategoryResultsResponse{}, err
	}
	titles := make(map[string]string, len(results.Proposals))
	for _, proposal := range results.Proposals {
		titles[proposal.ProposalID] = proposal.Title
	}
	return httptransport.CategoryResultsResponse{
		TripID:       results.TripID,
		Category:     results.Category,
		Method:       string(results.Method),
		Ranked:       mapRankedStandings(results.Ranked, titles),
		Approval:     mapApprovalStandings(results.Approval, titles),
		VotingClosed: results.VotingClosed,
	}, nil
}

func mapProposal(proposal entities.Proposal) httptransport.ProposalResponse {
	resp := httptransport.ProposalResponse{
		ProposalID: proposal.ProposalID,
		TripID:     proposal.TripID,
		Category:   proposal.Category,
		Title:      proposal.Title,
		Method:     string(proposal.Method),
		Status:     string(proposal.Status),
		CreatedBy:  proposal.CreatedBy,
	}
	if proposal.Deadline != nil {
		resp.Deadline = proposal.Deadline.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapVote(vote entities.Vote) httptransport.VoteResponse {
	return httptransport.VoteResponse{
		VoteID:     vote.VoteID,
		ProposalID: vote.ProposalID,
		VoterID:    vote.VoterID,
		Approved:   vote.Approved,
		Rank:       vote.Rank,
	}
}

func mapRankedStandings(
	standings []services.RankedStanding,
	titles map[string]string,
) []httptransport.RankedStandingItem {
	if len(standings) == 0 {
		return nil
	}
	items := make([]httptransport.RankedStandingItem, 0, len(standings))
	for _, standing := range standings {
		voters := make([]httptransport.VoterRankItem, 0, len(standing.Voters))
		for _, voter := range standing.Voters {
			voters = append(voters, httptransport.VoterRankItem{
				VoterID: voter.VoterID,
				Rank:    voter.Rank,
			})
		}
		items = append(items, httptransport.RankedStandingItem{
			ProposalID:  standing.ProposalID,
			Title:       titles[standing.ProposalID],
			Points:      standing.Points,
			AverageRank: standing.AverageRank,
			VoteCount:   standing.VoteCount,
			Rank:        standing.Rank,
			Voters:      voters,
		})
	}
	return items
}

func mapApprovalStandings(
	standings []services.ApprovalStanding,
	titles map[string]string,
) []httptransport.ApprovalStandingItem {
	if len(standings) == 0 {
		return nil
	}
	items := make([]httptransport.ApprovalStandingItem, 0, len(standings))
	for _, standing := range standings {
		items = append(items, httptransport.ApprovalStandingItem{
			ProposalID: standing.ProposalID,
			Title:      titles[standing.ProposalID],
			Approvals:  standing.Approvals,
			Percentage: standing.Percentage,
			Rank:       standing.Rank,
			Voters:     standing.Voters,
		})
	}
	return items
}
