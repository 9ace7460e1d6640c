package services

import (
	"sort"

	"caravan/contexts/trip-planning/poll-service/domain/entities"
)

// Borda points by rank position; ranks outside 1..3 score nothing.
func bordaPoints(rank int) int {
	switch rank {
	case 1:
		return 3
	case 2:
		return 2
	case 3:
		return 1
	default:
		return 0
	}
}

// VoterChoice is the per-voter detail attached to single-choice and approval
// results.
type VoterChoice struct {
	VoterID  string
	Approved bool
}

// SingleChoiceResult is the yes/no tally for one proposal. Single-choice has
// no cross-proposal ranking; it applies to one proposal at a time.
type SingleChoiceResult struct {
	ProposalID string
	Yes        int
	No         int
	Percentage float64
	Voters     []VoterChoice
}

// TallySingleChoice counts boolean votes for one proposal. Percentage is
// yes over total votes cast, zero when nobody voted.
func TallySingleChoice(proposal entities.Proposal, votes []entities.Vote) SingleChoiceResult {
	result := SingleChoiceResult{ProposalID: proposal.ProposalID}
	for _, vote := range votes {
		if vote.ProposalID != proposal.ProposalID {
			continue
		}
		if vote.Approved {
			result.Yes++
		} else {
			result.No++
		}
		result.Voters = append(result.Voters, VoterChoice{VoterID: vote.VoterID, Approved: vote.Approved})
	}
	if total := result.Yes + result.No; total > 0 {
		result.Percentage = float64(result.Yes) / float64(total)
	}
	return result
}

// VoterRank is the per-voter detail attached to ranked standings.
type VoterRank struct {
	VoterID string
	Rank    int
}

// RankedStanding is one proposal's position in a Borda tally.
type RankedStanding struct {
	ProposalID  string
	Points      int
	AverageRank float64
	VoteCount   int
	Rank        int
	Voters      []VoterRank
}

// TallyRankedChoice runs a Borda count over the category's candidate set:
// rank 1 scores 3 points, rank 2 scores 2, rank 3 scores 1. Standings sort by
// total points descending with ties broken by ascending average rank; a tie in
// both keys keeps the proposals' stable input order. Positions are dense
// (1..k): the secondary key always resolves point ties into distinct ranks.
func TallyRankedChoice(proposals []entities.Proposal, votes []entities.Vote) []RankedStanding {
	byProposal := make(map[string]*RankedStanding, len(proposals))
	standings := make([]RankedStanding, 0, len(proposals))
	for _, proposal := range proposals {
		byProposal[proposal.ProposalID] = &RankedStanding{ProposalID: proposal.ProposalID}
	}
	rankSums := make(map[string]int, len(proposals))
	for _, vote := range votes {
		standing, ok := byProposal[vote.ProposalID]
		if !ok {
			continue
		}
		standing.Points += bordaPoints(vote.Rank)
		standing.VoteCount++
		rankSums[vote.ProposalID] += vote.Rank
		standing.Voters = append(standing.Voters, VoterRank{VoterID: vote.VoterID, Rank: vote.Rank})
	}
	for _, proposal := range proposals {
		standing := byProposal[proposal.ProposalID]
		if standing.VoteCount > 0 {
			standing.AverageRank = float64(rankSums[proposal.ProposalID]) / float64(standing.VoteCount)
		}
		standings = append(standings, *standing)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].AverageRank < standings[j].AverageRank
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

// ApprovalStanding is one proposal's position in an approval tally.
type ApprovalStanding struct {
	ProposalID string
	Approvals  int
	Percentage float64
	Rank       int
	Voters     []string
}

// TallyApproval counts approvals per proposal. Percentage is approvals over
// the eligible voter count (trip membership), not over votes cast. Standings
// sort by approval count descending; equal counts share the same competition
// rank and the next distinct count resumes at its 1-based position, leaving a
// gap. This deliberately differs from the ranked tally's dense positions.
func TallyApproval(
	proposals []entities.Proposal,
	votes []entities.Vote,
	eligibleVoters int,
) []ApprovalStanding {
	byProposal := make(map[string]*ApprovalStanding, len(proposals))
	standings := make([]ApprovalStanding, 0, len(proposals))
	for _, proposal := range proposals {
		byProposal[proposal.ProposalID] = &ApprovalStanding{ProposalID: proposal.ProposalID}
	}
	for _, vote := range votes {
		standing, ok := byProposal[vote.ProposalID]
		if !ok || !vote.Approved {
			continue
		}
		standing.Approvals++
		standing.Voters = append(standing.Voters, vote.VoterID)
	}
	for _, proposal := range proposals {
		standing := byProposal[proposal.ProposalID]
		if eligibleVoters > 0 {
			standing.Percentage = float64(standing.Approvals) / float64(eligibleVoters)
		}
		standings = append(standings, *standing)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Approvals > standings[j].Approvals
	})
	for i := range standings {
		if i > 0 && standings[i].Approvals == standings[i-1].Approvals {
			standings[i].Rank = standings[i-1].Rank
			continue
		}
		standings[i].Rank = i + 1
	}
	return standings
}
