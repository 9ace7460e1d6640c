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

// CastVoteCommand casts or replaces a voter's choice on a single proposal.
// It applies to single-choice and approval proposals; ranked ballots go
// through SubmitRankedBallot.
type CastVoteCommand struct {
	ProposalID string
	VoterID    string
	Approved   bool
}

// RankedBallotEntry assigns one rank to one proposal within a ballot.
type RankedBallotEntry struct {
	ProposalID string
	Rank       int
}

// SubmitRankedBallotCommand replaces a voter's full ranked ballot for a
// trip category in one shot.
type SubmitRankedBallotCommand struct {
	TripID   string
	Category string
	VoterID  string
	Entries  []RankedBallotEntry
}

// VoteUseCase owns all vote writes. Revotes replace the prior choice
// rather than stacking.
type VoteUseCase struct {
	Proposals ports.ProposalRepository
	Votes     ports.VoteRepository
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc VoteUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (entities.Vote, error) {
	logger := application.ResolveLogger(uc.Logger)
	proposalID := strings.TrimSpace(cmd.ProposalID)
	voterID := strings.TrimSpace(cmd.VoterID)
	if proposalID == "" || voterID == "" {
		return entities.Vote{}, domainerrors.ErrInvalidVoteInput
	}

	proposal, err := uc.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return entities.Vote{}, err
	}
	switch proposal.Method {
	case entities.VotingMethodSingleChoice, entities.VotingMethodApproval:
	default:
		return entities.Vote{}, domainerrors.ErrInvalidVotingType
	}
	now := uc.now()
	if proposal.VotingClosed(now) {
		return entities.Vote{}, domainerrors.ErrVotingClosed
	}

	existing, found, err := uc.Votes.GetVoteByVoter(ctx, proposalID, voterID)
	if err != nil {
		return entities.Vote{}, err
	}
	if found {
		existing.Approved = cmd.Approved
		existing.UpdatedAt = now
		if err := uc.Votes.SaveVote(ctx, existing); err != nil {
			return entities.Vote{}, err
		}
		if err := uc.emitVoteCast(ctx, logger, existing, true); err != nil {
			return entities.Vote{}, err
		}
		return existing, nil
	}

	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Vote{}, err
	}
	vote := entities.Vote{
		VoteID:     voteID,
		ProposalID: proposal.ProposalID,
		TripID:     proposal.TripID,
		Category:   proposal.Category,
		VoterID:    voterID,
		Method:     proposal.Method,
		Approved:   cmd.Approved,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.Votes.SaveVote(ctx, vote); err != nil {
		return entities.Vote{}, err
	}
	if err := uc.emitVoteCast(ctx, logger, vote, false); err != nil {
		return entities.Vote{}, err
	}
	return vote, nil
}

// SubmitRankedBallot validates the ballot as a whole and replaces every
// ranked vote the voter holds in the category. A proposal left off the new
// ballot loses the voter's prior rank.
func (uc VoteUseCase) SubmitRankedBallot(ctx context.Context, cmd SubmitRankedBallotCommand) ([]entities.Vote, error) {
	logger := application.ResolveLogger(uc.Logger)
	tripID := strings.TrimSpace(cmd.TripID)
	category := strings.TrimSpace(cmd.Category)
	voterID := strings.TrimSpace(cmd.VoterID)
	if tripID == "" || category == "" || voterID == "" || len(cmd.Entries) == 0 {
		return nil, domainerrors.ErrInvalidVoteInput
	}

	seenRanks := make(map[int]bool, len(cmd.Entries))
	seenProposals := make(map[string]bool, len(cmd.Entries))
	for _, entry := range cmd.Entries {
		if entry.Rank < 1 || entry.Rank > entities.MaxBallotRank {
			return nil, domainerrors.ErrInvalidRank
		}
		if seenRanks[entry.Rank] {
			return nil, domainerrors.ErrInvalidRank
		}
		seenRanks[entry.Rank] = true
		proposalID := strings.TrimSpace(entry.ProposalID)
		if proposalID == "" || seenProposals[proposalID] {
			return nil, domainerrors.ErrInvalidVoteInput
		}
		seenProposals[proposalID] = true
	}

	now := uc.now()
	votes := make([]entities.Vote, 0, len(cmd.Entries))
	for _, entry := range cmd.Entries {
		proposal, err := uc.Proposals.GetProposal(ctx, strings.TrimSpace(entry.ProposalID))
		if err != nil {
			return nil, err
		}
		if proposal.TripID != tripID || proposal.Category != category {
			return nil, domainerrors.ErrInvalidVoteInput
		}
		if proposal.Method != entities.VotingMethodRankedChoice {
			return nil, domainerrors.ErrInvalidVotingType
		}
		if proposal.VotingClosed(now) {
			return nil, domainerrors.ErrVotingClosed
		}
		voteID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return nil, err
		}
		votes = append(votes, entities.Vote{
			VoteID:     voteID,
			ProposalID: proposal.ProposalID,
			TripID:     tripID,
			Category:   category,
			VoterID:    voterID,
			Method:     entities.VotingMethodRankedChoice,
			Rank:       entry.Rank,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	if err := uc.Votes.ReplaceRankedVotes(ctx, tripID, category, voterID, votes); err != nil {
		return nil, err
	}

	if err := uc.appendVoteEvent(ctx, eventBallotSubmitted, tripID, now, map[string]any{
		"trip_id":     tripID,
		"category":    category,
		"voter_id":    voterID,
		"entry_count": len(votes),
		"occurred_at": now.Format(time.RFC3339),
	}); err != nil {
		return nil, err
	}
	logger.Info("ranked ballot submitted",
		"event", "poll_ballot_submitted",
		"module", "trip-planning/poll-service",
		"layer", "application",
		"trip_id", tripID,
		"category", category,
		"voter_id", voterID,
		"entries", len(votes),
	)
	return votes, nil
}

func (uc VoteUseCase) emitVoteCast(ctx context.Context, logger *slog.Logger, vote entities.Vote, replaced bool) error {
	if err := uc.appendVoteEvent(ctx, eventVoteCast, vote.TripID, vote.UpdatedAt, map[string]any{
		"vote_id":     vote.VoteID,
		"proposal_id": vote.ProposalID,
		"trip_id":     vote.TripID,
		"voter_id":    vote.VoterID,
		"approved":    vote.Approved,
		"replaced":    replaced,
		"occurred_at": vote.UpdatedAt.Format(time.RFC3339),
	}); err != nil {
		return err
	}
	logger.Info("vote cast",
		"event", "poll_vote_cast",
		"module", "trip-planning/poll-service",
		"layer", "application",
		"proposal_id", vote.ProposalID,
		"voter_id", vote.VoterID,
		"replaced", replaced,
	)
	return nil
}

func (uc VoteUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
