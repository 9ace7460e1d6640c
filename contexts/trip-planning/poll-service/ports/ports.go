package ports

import (
	"context"
	"time"

	"caravan/contexts/trip-planning/poll-service/domain/entities"
	contractsv1 "caravan/contracts/gen/events/v1"
)

type ProposalRepository interface {
	CreateProposal(ctx context.Context, proposal entities.Proposal) error
	GetProposal(ctx context.Context, proposalID string) (entities.Proposal, error)
	UpdateProposalStatus(ctx context.Context, proposalID string, status entities.ProposalStatus, updatedAt time.Time) error
	// ListProposalsByCategory returns the trip+category candidate set in
	// creation order; onlyOpen restricts it to proposals still accepting votes.
	ListProposalsByCategory(ctx context.Context, tripID string, category string, onlyOpen bool) ([]entities.Proposal, error)
}

type VoteRepository interface {
	SaveVote(ctx context.Context, vote entities.Vote) error
	GetVoteByVoter(ctx context.Context, proposalID string, voterID string) (entities.Vote, bool, error)
	ListVotesByProposal(ctx context.Context, proposalID string) ([]entities.Vote, error)
	ListVotesByCategory(ctx context.Context, tripID string, category string) ([]entities.Vote, error)
	// ReplaceRankedVotes atomically deletes every ranked vote the voter holds
	// in the trip+category and inserts the supplied ballot in its place.
	ReplaceRankedVotes(ctx context.Context, tripID string, category string, voterID string, votes []entities.Vote) error
}

type MembershipProvider interface {
	CountTripMembers(ctx context.Context, tripID string) (int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
