package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateProposalRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Method   string `json:"voting_method"`
	Deadline string `json:"deadline,omitempty"`
}

type ProposalResponse struct {
	ProposalID string `json:"proposal_id"`
	TripID     string `json:"trip_id"`
	Category   string `json:"category"`
	Title      string `json:"title"`
	Method     string `json:"voting_method"`
	Status     string `json:"status"`
	Deadline   string `json:"deadline,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
}

type CastVoteRequest struct {
	Approved bool `json:"approved"`
}

type VoteResponse struct {
	VoteID     string `json:"vote_id"`
	ProposalID string `json:"proposal_id"`
	VoterID    string `json:"voter_id"`
	Approved   bool   `json:"approved"`
	Rank       int    `json:"rank,omitempty"`
}

type RankedBallotEntryItem struct {
	ProposalID string `json:"proposal_id"`
	Rank       int    `json:"rank"`
}

type SubmitRankedBallotRequest struct {
	Entries []RankedBallotEntryItem `json:"entries"`
}

type RankedBallotResponse struct {
	TripID   string         `json:"trip_id"`
	Category string         `json:"category"`
	VoterID  string         `json:"voter_id"`
	Votes    []VoteResponse `json:"votes"`
}

type VoterChoiceItem struct {
	VoterID  string `json:"voter_id"`
	Approved bool   `json:"approved"`
}

type ProposalResultResponse struct {
	Proposal     ProposalResponse  `json:"proposal"`
	Yes          int               `json:"yes"`
	No           int               `json:"no"`
	Percentage   float64           `json:"percentage"`
	Voters       []VoterChoiceItem `json:"voters"`
	VotingClosed bool              `json:"voting_closed"`
}

type VoterRankItem struct {
	VoterID string `json:"voter_id"`
	Rank    int    `json:"rank"`
}

type RankedStandingItem struct {
	ProposalID  string          `json:"proposal_id"`
	Title       string          `json:"title"`
	Points      int             `json:"points"`
	AverageRank float64         `json:"average_rank"`
	VoteCount   int             `json:"vote_count"`
	Rank        int             `json:"rank"`
	Voters      []VoterRankItem `json:"voters"`
}

type ApprovalStandingItem struct {
	ProposalID string   `json:"proposal_id"`
	Title      string   `json:"title"`
	Approvals  int      `json:"approvals"`
	Percentage float64  `json:"percentage"`
	Rank       int      `json:"rank"`
	Voters     []string `json:"voters"`
}

type CategoryResultsResponse struct {
	TripID       string                 `json:"trip_id"`
	Category     string                 `json:"category"`
	Method       string                 `json:"voting_method"`
	Ranked       []RankedStandingItem   `json:"ranked_standings,omitempty"`
	Approval     []ApprovalStandingItem `json:"approval_standings,omitempty"`
	VotingClosed bool                   `json:"voting_closed"`
}
