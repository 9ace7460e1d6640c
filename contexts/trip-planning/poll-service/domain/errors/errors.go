package errors

import "errors"

var (
	ErrInvalidProposalInput = errors.New("proposal input is invalid")
	ErrInvalidVoteInput     = errors.New("vote input is invalid")
	ErrInvalidVotingType    = errors.New("voting method is not supported for this operation")
	ErrInvalidRank          = errors.New("ranked vote rank must be 1, 2 or 3 and unique per ballot")
	ErrVotingClosed         = errors.New("voting is closed for this proposal")
	ErrProposalNotFound     = errors.New("proposal not found")
	ErrProposalClosed       = errors.New("proposal is already closed")
	ErrVoteNotFound         = errors.New("vote not found")
	ErrTripNotFound         = errors.New("trip membership not found")
	ErrConflict             = errors.New("poll write conflict")
)
