package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"caravan/contexts/trip-planning/poll-service/domain/entities"
	domainerrors "caravan/contexts/trip-planning/poll-service/domain/errors"
	"caravan/contexts/trip-planning/poll-service/ports"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory adapter used for tests and local wiring. It
// implements every poll port behind one mutex.
type Store struct {
	mu sync.RWMutex

	proposals map[string]entities.Proposal
	votes     map[string]entities.Vote
	members   map[string]int
	outbox    map[string]outboxRecord
}

func NewStore() *Store {
	return &Store{
		proposals: make(map[string]entities.Proposal),
		votes:     make(map[string]entities.Vote),
		members:   make(map[string]int),
		outbox:    make(map[string]outboxRecord),
	}
}

// SetTripMemberCount seeds the membership projection for a trip.
func (s *Store) SetTripMemberCount(tripID string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[strings.TrimSpace(tripID)] = count
}

func (s *Store) CreateProposal(_ context.Context, proposal entities.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(proposal.ProposalID)
	if id == "" {
		return domainerrors.ErrInvalidProposalInput
	}
	if _, exists := s.proposals[id]; exists {
		return domainerrors.ErrConflict
	}
	s.proposals[id] = proposal
	return nil
}

func (s *Store) GetProposal(_ context.Context, proposalID string) (entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proposal, ok := s.proposals[strings.TrimSpace(proposalID)]
	if !ok {
		return entities.Proposal{}, domainerrors.ErrProposalNotFound
	}
	return proposal, nil
}

func (s *Store) UpdateProposalStatus(
	_ context.Context,
	proposalID string,
	status entities.ProposalStatus,
	updatedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	proposal, ok := s.proposals[strings.TrimSpace(proposalID)]
	if !ok {
		return domainerrors.ErrProposalNotFound
	}
	proposal.Status = status
	proposal.UpdatedAt = updatedAt.UTC()
	s.proposals[proposal.ProposalID] = proposal
	return nil
}

func (s *Store) ListProposalsByCategory(
	_ context.Context,
	tripID string,
	category string,
	onlyOpen bool,
) ([]entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Proposal, 0, len(s.proposals))
	for _, proposal := range s.proposals {
		if proposal.TripID != strings.TrimSpace(tripID) || proposal.Category != strings.TrimSpace(category) {
			continue
		}
		if onlyOpen && proposal.Status != entities.ProposalStatusOpen {
			continue
		}
		items = append(items, proposal)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ProposalID < items[j].ProposalID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) SaveVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSpace(vote.VoteID)
	if id == "" {
		return domainerrors.ErrInvalidVoteInput
	}
	s.votes[id] = vote
	return nil
}

func (s *Store) GetVoteByVoter(
	_ context.Context,
	proposalID string,
	voterID string,
) (entities.Vote, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, vote := range s.votes {
		if vote.ProposalID == strings.TrimSpace(proposalID) && vote.VoterID == strings.TrimSpace(voterID) {
			return vote, true, nil
		}
	}
	return entities.Vote{}, false, nil
}

func (s *Store) ListVotesByProposal(_ context.Context, proposalID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Vote, 0, len(s.votes))
	for _, vote := range s.votes {
		if vote.ProposalID == strings.TrimSpace(proposalID) {
			items = append(items, vote)
		}
	}
	sortVotes(items)
	return items, nil
}

func (s *Store) ListVotesByCategory(
	_ context.Context,
	tripID string,
	category string,
) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Vote, 0, len(s.votes))
	for _, vote := range s.votes {
		if vote.TripID == strings.TrimSpace(tripID) && vote.Category == strings.TrimSpace(category) {
			items = append(items, vote)
		}
	}
	sortVotes(items)
	return items, nil
}

func (s *Store) ReplaceRankedVotes(
	_ context.Context,
	tripID string,
	category string,
	voterID string,
	votes []entities.Vote,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, vote := range s.votes {
		if vote.TripID == strings.TrimSpace(tripID) &&
			vote.Category == strings.TrimSpace(category) &&
			vote.VoterID == strings.TrimSpace(voterID) &&
			vote.Method == entities.VotingMethodRankedChoice {
			delete(s.votes, id)
		}
	}
	for _, vote := range votes {
		id := strings.TrimSpace(vote.VoteID)
		if id == "" {
			return domainerrors.ErrInvalidVoteInput
		}
		s.votes[id] = vote
	}
	return nil
}

func (s *Store) CountTripMembers(_ context.Context, tripID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count, ok := s.members[strings.TrimSpace(tripID)]
	if !ok {
		return 0, domainerrors.ErrTripNotFound
	}
	return count, nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	outboxID := uuid.NewString()
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    time.Now().UTC(),
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, record := range s.outbox {
		if !record.published {
			items = append(items, record.message)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].OutboxID < items[j].OutboxID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return nil
	}
	record.published = true
	s.outbox[strings.TrimSpace(outboxID)] = record
	return nil
}

// PendingOutboxCount reports unpublished rows, for test assertions.
func (s *Store) PendingOutboxCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, record := range s.outbox {
		if !record.published {
			count++
		}
	}
	return count
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func sortVotes(items []entities.Vote) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].VoteID < items[j].VoteID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

var _ ports.ProposalRepository = (*Store)(nil)
var _ ports.VoteRepository = (*Store)(nil)
var _ ports.MembershipProvider = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
