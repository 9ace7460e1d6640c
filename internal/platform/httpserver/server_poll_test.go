package httpserver

import (
	"net/http"
	"testing"

	pollhttp "caravan/contexts/trip-planning/poll-service/transport/http"
)

func createProposal(
	t *testing.T,
	server *Server,
	tripID string,
	userID string,
	req pollhttp.CreateProposalRequest,
) pollhttp.ProposalResponse {
	t.Helper()
	recorder := doJSON(t, server, http.MethodPost, "/v1/trips/"+tripID+"/proposals", userID, req)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create proposal returned %d: %s", recorder.Code, recorder.Body.String())
	}
	var proposal pollhttp.ProposalResponse
	decodeBody(t, recorder, &proposal)
	return proposal
}

func TestSingleChoiceVoteFlow(t *testing.T) {
	server := newTestServer(t, Options{})
	proposal := createProposal(t, server, "trip-1", "alice", pollhttp.CreateProposalRequest{
		Category: "activity",
		Title:    "Kayak day",
		Method:   "single_choice",
	})

	yes := doJSON(t, server, http.MethodPost, "/v1/proposals/"+proposal.ProposalID+"/votes", "alice", pollhttp.CastVoteRequest{Approved: true})
	if yes.Code != http.StatusOK {
		t.Fatalf("cast vote returned %d: %s", yes.Code, yes.Body.String())
	}
	no := doJSON(t, server, http.MethodPost, "/v1/proposals/"+proposal.ProposalID+"/votes", "bob", pollhttp.CastVoteRequest{Approved: false})
	if no.Code != http.StatusOK {
		t.Fatalf("cast vote returned %d: %s", no.Code, no.Body.String())
	}

	results := doJSON(t, server, http.MethodGet, "/v1/proposals/"+proposal.ProposalID+"/results", "", nil)
	if results.Code != http.StatusOK {
		t.Fatalf("results returned %d: %s", results.Code, results.Body.String())
	}
	var tally pollhttp.ProposalResultResponse
	decodeBody(t, results, &tally)
	if tally.Yes != 1 || tally.No != 1 {
		t.Fatalf("unexpected tally: yes=%d no=%d", tally.Yes, tally.No)
	}
	if tally.Percentage != 0.5 {
		t.Fatalf("expected 0.5 approval share, got %v", tally.Percentage)
	}
	if tally.VotingClosed {
		t.Fatalf("open proposal must not report voting closed")
	}
}

func TestCloseProposalStopsVoting(t *testing.T) {
	server := newTestServer(t, Options{})
	proposal := createProposal(t, server, "trip-1", "alice", pollhttp.CreateProposalRequest{
		Category: "activity",
		Title:    "Museum pass",
		Method:   "single_choice",
	})

	closed := doJSON(t, server, http.MethodPost, "/v1/proposals/"+proposal.ProposalID+"/close", "alice", nil)
	if closed.Code != http.StatusOK {
		t.Fatalf("close proposal returned %d: %s", closed.Code, closed.Body.String())
	}

	vote := doJSON(t, server, http.MethodPost, "/v1/proposals/"+proposal.ProposalID+"/votes", "bob", pollhttp.CastVoteRequest{Approved: true})
	if vote.Code != http.StatusConflict {
		t.Fatalf("expected 409 for closed proposal, got %d: %s", vote.Code, vote.Body.String())
	}
	var errResp pollhttp.ErrorResponse
	decodeBody(t, vote, &errResp)
	if errResp.Code != "voting_closed" {
		t.Fatalf("expected voting_closed code, got %q", errResp.Code)
	}
}

func TestRankedBallotFlow(t *testing.T) {
	server := newTestServer(t, Options{})
	hotel := createProposal(t, server, "trip-1", "alice", pollhttp.CreateProposalRequest{
		Category: "lodging",
		Title:    "Hotel",
		Method:   "ranked_choice",
	})
	hostel := createProposal(t, server, "trip-1", "alice", pollhttp.CreateProposalRequest{
		Category: "lodging",
		Title:    "Hostel",
		Method:   "ranked_choice",
	})

	ballot := doJSON(t, server, http.MethodPost, "/v1/trips/trip-1/categories/lodging/ballots", "alice", pollhttp.SubmitRankedBallotRequest{
		Entries: []pollhttp.RankedBallotEntryItem{
			{ProposalID: hotel.ProposalID, Rank: 1},
			{ProposalID: hostel.ProposalID, Rank: 2},
		},
	})
	if ballot.Code != http.StatusOK {
		t.Fatalf("submit ballot returned %d: %s", ballot.Code, ballot.Body.String())
	}
	var ballotResp pollhttp.RankedBallotResponse
	decodeBody(t, ballot, &ballotResp)
	if len(ballotResp.Votes) != 2 {
		t.Fatalf("expected 2 ballot entries, got %d", len(ballotResp.Votes))
	}

	results := doJSON(t, server, http.MethodGet, "/v1/trips/trip-1/categories/lodging/results", "", nil)
	if results.Code != http.StatusOK {
		t.Fatalf("category results returned %d: %s", results.Code, results.Body.String())
	}
	var standings pollhttp.CategoryResultsResponse
	decodeBody(t, results, &standings)
	if standings.Method != "ranked_choice" {
		t.Fatalf("expected ranked_choice results, got %q", standings.Method)
	}
	if len(standings.Ranked) != 2 {
		t.Fatalf("expected standings for both proposals, got %d", len(standings.Ranked))
	}
	first := standings.Ranked[0]
	if first.ProposalID != hotel.ProposalID || first.Points != 3 || first.Rank != 1 {
		t.Fatalf("unexpected leader: %+v", first)
	}
	if first.Title != "Hotel" {
		t.Fatalf("standings must carry the proposal title, got %q", first.Title)
	}
}

func TestRankedBallotRejectsRankOutOfRange(t *testing.T) {
	server := newTestServer(t, Options{})
	hotel := createProposal(t, server, "trip-1", "alice", pollhttp.CreateProposalRequest{
		Category: "lodging",
		Title:    "Hotel",
		Method:   "ranked_choice",
	})

	ballot := doJSON(t, server, http.MethodPost, "/v1/trips/trip-1/categories/lodging/ballots", "alice", pollhttp.SubmitRankedBallotRequest{
		Entries: []pollhttp.RankedBallotEntryItem{
			{ProposalID: hotel.ProposalID, Rank: 4},
		},
	})
	if ballot.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for rank out of range, got %d: %s", ballot.Code, ballot.Body.String())
	}
	var errResp pollhttp.ErrorResponse
	decodeBody(t, ballot, &errResp)
	if errResp.Code != "invalid_rank" {
		t.Fatalf("expected invalid_rank code, got %q", errResp.Code)
	}
}

func TestApprovalResultsUseTripHeadcount(t *testing.T) {
	server := newTestServer(t, Options{})
	server.polls.Store.SetTripMemberCount("trip-1", 4)

	beach := createProposal(t, server, "trip-1", "alice", pollhttp.CreateProposalRequest{
		Category: "day-trip",
		Title:    "Beach",
		Method:   "approval",
	})
	_ = doJSON(t, server, http.MethodPost, "/v1/proposals/"+beach.ProposalID+"/votes", "alice", pollhttp.CastVoteRequest{Approved: true})
	_ = doJSON(t, server, http.MethodPost, "/v1/proposals/"+beach.ProposalID+"/votes", "bob", pollhttp.CastVoteRequest{Approved: true})

	results := doJSON(t, server, http.MethodGet, "/v1/trips/trip-1/categories/day-trip/results", "", nil)
	if results.Code != http.StatusOK {
		t.Fatalf("category results returned %d: %s", results.Code, results.Body.String())
	}
	var standings pollhttp.CategoryResultsResponse
	decodeBody(t, results, &standings)
	if len(standings.Approval) != 1 {
		t.Fatalf("expected one approval standing, got %d", len(standings.Approval))
	}
	if standings.Approval[0].Approvals != 2 {
		t.Fatalf("expected 2 approvals, got %d", standings.Approval[0].Approvals)
	}
	if standings.Approval[0].Percentage != 0.5 {
		t.Fatalf("expected approval share 0.5 of 4 members, got %v", standings.Approval[0].Percentage)
	}
}

func TestProposalWritesRequireIdentity(t *testing.T) {
	server := newTestServer(t, Options{})
	recorder := doJSON(t, server, http.MethodPost, "/v1/trips/trip-1/proposals", "", pollhttp.CreateProposalRequest{
		Category: "activity",
		Title:    "Kayak day",
		Method:   "single_choice",
	})
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", recorder.Code)
	}
}
