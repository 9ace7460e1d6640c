package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"caravan/contexts/trip-planning/poll-service/adapters/memory"
	"caravan/contexts/trip-planning/poll-service/domain/entities"
	domainerrors "caravan/contexts/trip-planning/poll-service/domain/errors"
)

func newResultUseCase(store *memory.Store) ResultUseCase {
	return ResultUseCase{
		Proposals:  store,
		Votes:      store,
		Membership: store,
		Clock:      store,
	}
}

func seedProposal(
	t *testing.T,
	store *memory.Store,
	id string,
	category string,
	method entities.VotingMethod,
	status entities.ProposalStatus,
	createdAt time.Time,
) entities.Proposal {
	t.Helper()
	proposal := entities.Proposal{
		ProposalID: id,
		TripID:     "trip-1",
		Category:   category,
		Title:      id,
		Method:     method,
		Status:     status,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	if err := store.CreateProposal(context.Background(), proposal); err != nil {
		t.Fatalf("seed proposal %s failed: %v", id, err)
	}
	return proposal
}

func seedVote(t *testing.T, store *memory.Store, vote entities.Vote) {
	t.Helper()
	if err := store.SaveVote(context.Background(), vote); err != nil {
		t.Fatalf("seed vote failed: %v", err)
	}
}

func TestProposalResultsTalliesWhileOpen(t *testing.T) {
	store := memory.NewStore()
	base := time.Now().UTC()
	seedProposal(t, store, "dates-june", "dates", entities.VotingMethodSingleChoice, entities.ProposalStatusOpen, base)
	seedVote(t, store, entities.Vote{VoteID: "v1", ProposalID: "dates-june", TripID: "trip-1", Category: "dates", VoterID: "alice", Approved: true})
	seedVote(t, store, entities.Vote{VoteID: "v2", ProposalID: "dates-june", TripID: "trip-1", Category: "dates", VoterID: "bob", Approved: false})

	uc := newResultUseCase(store)
	result, err := uc.ProposalResults(context.Background(), "dates-june")
	if err != nil {
		t.Fatalf("proposal results failed: %v", err)
	}
	if result.Result.Yes != 1 || result.Result.No != 1 {
		t.Fatalf("expected 1/1 tally, got %d/%d", result.Result.Yes, result.Result.No)
	}
	if result.VotingClosed {
		t.Fatalf("open proposal without deadline must report voting open")
	}
}

func TestProposalResultsRejectsNonSingleChoice(t *testing.T) {
	store := memory.NewStore()
	seedProposal(t, store, "hotel", "lodging", entities.VotingMethodRankedChoice, entities.ProposalStatusOpen, time.Now().UTC())

	uc := newResultUseCase(store)
	_, err := uc.ProposalResults(context.Background(), "hotel")
	if !errors.Is(err, domainerrors.ErrInvalidVotingType) {
		t.Fatalf("expected ErrInvalidVotingType, got %v", err)
	}
}

func TestCategoryResultsRankedStandings(t *testing.T) {
	store := memory.NewStore()
	base := time.Now().UTC()
	seedProposal(t, store, "hotel", "lodging", entities.VotingMethodRankedChoice, entities.ProposalStatusOpen, base)
	seedProposal(t, store, "hostel", "lodging", entities.VotingMethodRankedChoice, entities.ProposalStatusOpen, base.Add(time.Second))
	seedVote(t, store, entities.Vote{VoteID: "v1", ProposalID: "hotel", TripID: "trip-1", Category: "lodging", VoterID: "alice", Method: entities.VotingMethodRankedChoice, Rank: 1})
	seedVote(t, store, entities.Vote{VoteID: "v2", ProposalID: "hostel", TripID: "trip-1", Category: "lodging", VoterID: "alice", Method: entities.VotingMethodRankedChoice, Rank: 2})

	uc := newResultUseCase(store)
	results, err := uc.CategoryResults(context.Background(), "trip-1", "lodging")
	if err != nil {
		t.Fatalf("category results failed: %v", err)
	}
	if results.Method != entities.VotingMethodRankedChoice {
		t.Fatalf("expected ranked method, got %q", results.Method)
	}
	if len(results.Ranked) != 2 || results.Ranked[0].ProposalID != "hotel" || results.Ranked[0].Points != 3 {
		t.Fatalf("unexpected ranked standings: %+v", results.Ranked)
	}
	if len(results.Approval) != 0 {
		t.Fatalf("ranked categories must not emit approval standings")
	}
	if results.VotingClosed {
		t.Fatalf("open proposals must report voting open")
	}
}

func TestCategoryResultsApprovalUsesMembershipDenominator(t *testing.T) {
	store := memory.NewStore()
	base := time.Now().UTC()
	store.SetTripMemberCount("trip-1", 4)
	seedProposal(t, store, "museum", "activities", entities.VotingMethodApproval, entities.ProposalStatusClosed, base)
	seedVote(t, store, entities.Vote{VoteID: "v1", ProposalID: "museum", TripID: "trip-1", Category: "activities", VoterID: "alice", Method: entities.VotingMethodApproval, Approved: true})
	seedVote(t, store, entities.Vote{VoteID: "v2", ProposalID: "museum", TripID: "trip-1", Category: "activities", VoterID: "bob", Method: entities.VotingMethodApproval, Approved: true})

	uc := newResultUseCase(store)
	results, err := uc.CategoryResults(context.Background(), "trip-1", "activities")
	if err != nil {
		t.Fatalf("category results failed: %v", err)
	}
	if len(results.Approval) != 1 || results.Approval[0].Percentage != 0.5 {
		t.Fatalf("expected 2 of 4 members approving, got %+v", results.Approval)
	}
	if !results.VotingClosed {
		t.Fatalf("all-closed categories must report voting closed")
	}
}

func TestCategoryResultsRejectsMixedMethods(t *testing.T) {
	store := memory.NewStore()
	base := time.Now().UTC()
	seedProposal(t, store, "hotel", "lodging", entities.VotingMethodRankedChoice, entities.ProposalStatusOpen, base)
	seedProposal(t, store, "hostel", "lodging", entities.VotingMethodApproval, entities.ProposalStatusOpen, base.Add(time.Second))

	uc := newResultUseCase(store)
	_, err := uc.CategoryResults(context.Background(), "trip-1", "lodging")
	if !errors.Is(err, domainerrors.ErrInvalidVotingType) {
		t.Fatalf("expected ErrInvalidVotingType for mixed category, got %v", err)
	}
}

func TestCategoryResultsEmptyCategory(t *testing.T) {
	store := memory.NewStore()
	uc := newResultUseCase(store)
	_, err := uc.CategoryResults(context.Background(), "trip-1", "ghost")
	if !errors.Is(err, domainerrors.ErrProposalNotFound) {
		t.Fatalf("expected ErrProposalNotFound, got %v", err)
	}
}
