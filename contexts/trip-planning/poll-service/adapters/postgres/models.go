package postgresadapter

import (
	"time"

	"caravan/contexts/trip-planning/poll-service/domain/entities"
)

type proposalModel struct {
	ID        string     `gorm:"column:id;primaryKey"`
	TripID    string     `gorm:"column:trip_id"`
	Category  string     `gorm:"column:category"`
	Title     string     `gorm:"column:title"`
	Method    string     `gorm:"column:voting_method"`
	Status    string     `gorm:"column:status"`
	Deadline  *time.Time `gorm:"column:deadline"`
	CreatedBy string     `gorm:"column:created_by"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (proposalModel) TableName() string {
	return "trip_proposals"
}

type voteModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ProposalID string    `gorm:"column:proposal_id"`
	TripID     string    `gorm:"column:trip_id"`
	Category   string    `gorm:"column:category"`
	VoterID    string    `gorm:"column:voter_id"`
	Method     string    `gorm:"column:voting_method"`
	Approved   bool      `gorm:"column:approved"`
	Rank       int       `gorm:"column:rank"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (voteModel) TableName() string {
	return "trip_votes"
}

type pollMemberModel struct {
	TripID        string    `gorm:"column:trip_id;primaryKey"`
	ParticipantID string    `gorm:"column:participant_id;primaryKey"`
	JoinedAt      time.Time `gorm:"column:joined_at"`
}

func (pollMemberModel) TableName() string {
	return "trip_members"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "poll_outbox"
}

func proposalModelFromEntity(proposal entities.Proposal) proposalModel {
	row := proposalModel{
		ID:        proposal.ProposalID,
		TripID:    proposal.TripID,
		Category:  proposal.Category,
		Title:     proposal.Title,
		Method:    string(proposal.Method),
		Status:    string(proposal.Status),
		CreatedBy: proposal.CreatedBy,
		CreatedAt: proposal.CreatedAt.UTC(),
		UpdatedAt: proposal.UpdatedAt.UTC(),
	}
	if proposal.Deadline != nil {
		deadline := proposal.Deadline.UTC()
		row.Deadline = &deadline
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m proposalModel) toEntity() entities.Proposal {
	proposal := entities.Proposal{
		ProposalID: m.ID,
		TripID:     m.TripID,
		Category:   m.Category,
		Title:      m.Title,
		Method:     entities.VotingMethod(m.Method),
		Status:     entities.ProposalStatus(m.Status),
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
	if m.Deadline != nil {
		deadline := m.Deadline.UTC()
		proposal.Deadline = &deadline
	}
	return proposal
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	row := voteModel{
		ID:         vote.VoteID,
		ProposalID: vote.ProposalID,
		TripID:     vote.TripID,
		Category:   vote.Category,
		VoterID:    vote.VoterID,
		Method:     string(vote.Method),
		Approved:   vote.Approved,
		Rank:       vote.Rank,
		CreatedAt:  vote.CreatedAt.UTC(),
		UpdatedAt:  vote.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		VoteID:     m.ID,
		ProposalID: m.ProposalID,
		TripID:     m.TripID,
		Category:   m.Category,
		VoterID:    m.VoterID,
		Method:     entities.VotingMethod(m.Method),
		Approved:   m.Approved,
		Rank:       m.Rank,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}
