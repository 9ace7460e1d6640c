package entities

import "time"

type VotingMethod string

const (
	VotingMethodSingleChoice VotingMethod = "single_choice"
	VotingMethodRankedChoice VotingMethod = "ranked_choice"
	VotingMethodApproval     VotingMethod = "approval"
)

type ProposalStatus string

const (
	ProposalStatusOpen   ProposalStatus = "open"
	ProposalStatusClosed ProposalStatus = "closed"
)

// Proposal is one candidate option the group can vote on. Proposals in the
// same trip+category form the candidate set for ranked and approval tallies.
type Proposal struct {
	ProposalID string
	TripID     string
	Category   string
	Title      string
	Method     VotingMethod
	Status     ProposalStatus
	Deadline   *time.Time
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// VotingClosed reports whether new votes are blocked. A past deadline and a
// non-open status each close voting independently.
func (p Proposal) VotingClosed(now time.Time) bool {
	if p.Status != ProposalStatusOpen {
		return true
	}
	return p.Deadline != nil && p.Deadline.UTC().Before(now.UTC())
}

// MaxBallotRank caps ranked ballots at a top-3.
const MaxBallotRank = 3

// Vote is a participant's ballot entry for one proposal. Approved carries the
// single-choice/approval payload; Rank carries the ranked-choice payload and
// is zero otherwise.
type Vote struct {
	VoteID     string
	ProposalID string
	TripID     string
	Category   string
	VoterID    string
	Method     VotingMethod
	Approved   bool
	Rank       int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
