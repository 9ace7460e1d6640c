package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"caravan/contexts/trip-planning/poll-service/domain/entities"
	domainerrors "caravan/contexts/trip-planning/poll-service/domain/errors"
	"caravan/contexts/trip-planning/poll-service/ports"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateProposal(ctx context.Context, proposal entities.Proposal) error {
	row := proposalModelFromEntity(proposal)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("poll_repo_create_proposal_failed", err,
			"proposal_id", strings.TrimSpace(proposal.ProposalID),
			"trip_id", strings.TrimSpace(proposal.TripID),
		)
	}
	return nil
}

func (r *Repository) GetProposal(ctx context.Context, proposalID string) (entities.Proposal, error) {
	var row proposalModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(proposalID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Proposal{}, domainerrors.ErrProposalNotFound
		}
		return entities.Proposal{}, r.logError("poll_repo_get_proposal_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateProposalStatus(
	ctx context.Context,
	proposalID string,
	status entities.ProposalStatus,
	updatedAt time.Time,
) error {
	result := r.db.WithContext(ctx).Model(&proposalModel{}).
		Where("id = ?", strings.TrimSpace(proposalID)).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("poll_repo_update_proposal_status_failed", result.Error,
			"proposal_id", strings.TrimSpace(proposalID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProposalNotFound
	}
	return nil
}

func (r *Repository) ListProposalsByCategory(
	ctx context.Context,
	tripID string,
	category string,
	onlyOpen bool,
) ([]entities.Proposal, error) {
	tx := r.db.WithContext(ctx).Model(&proposalModel{}).
		Where("trip_id = ? AND category = ?", strings.TrimSpace(tripID), strings.TrimSpace(category))
	if onlyOpen {
		tx = tx.Where("status = ?", string(entities.ProposalStatusOpen))
	}
	var rows []proposalModel
	if err := tx.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("poll_repo_list_proposals_failed", err,
			"trip_id", strings.TrimSpace(tripID),
			"category", strings.TrimSpace(category),
		)
	}
	items := make([]entities.Proposal, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// SaveVote upserts on the vote id so revotes overwrite in place.
func (r *Repository) SaveVote(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("poll_repo_save_vote_failed", err,
			"vote_id", strings.TrimSpace(vote.VoteID),
			"proposal_id", strings.TrimSpace(vote.ProposalID),
		)
	}
	return nil
}

func (r *Repository) GetVoteByVoter(
	ctx context.Context,
	proposalID string,
	voterID string,
) (entities.Vote, bool, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where("proposal_id = ? AND voter_id = ?", strings.TrimSpace(proposalID), strings.TrimSpace(voterID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vote{}, false, nil
		}
		return entities.Vote{}, false, r.logError("poll_repo_get_vote_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
			"voter_id", strings.TrimSpace(voterID),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListVotesByProposal(ctx context.Context, proposalID string) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("proposal_id = ?", strings.TrimSpace(proposalID)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("poll_repo_list_votes_failed", err,
			"proposal_id", strings.TrimSpace(proposalID),
		)
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListVotesByCategory(
	ctx context.Context,
	tripID string,
	category string,
) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("trip_id = ? AND category = ?", strings.TrimSpace(tripID), strings.TrimSpace(category)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("poll_repo_list_category_votes_failed", err,
			"trip_id", strings.TrimSpace(tripID),
			"category", strings.TrimSpace(category),
		)
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// ReplaceRankedVotes swaps a voter's ranked ballot in one transaction so the
// category never holds a partial ballot.
func (r *Repository) ReplaceRankedVotes(
	ctx context.Context,
	tripID string,
	category string,
	voterID string,
	votes []entities.Vote,
) error {
	rows := make([]voteModel, 0, len(votes))
	for _, vote := range votes {
		rows = append(rows, voteModelFromEntity(vote))
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("trip_id = ? AND category = ? AND voter_id = ? AND voting_method = ?",
				strings.TrimSpace(tripID),
				strings.TrimSpace(category),
				strings.TrimSpace(voterID),
				string(entities.VotingMethodRankedChoice),
			).
			Delete(&voteModel{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("poll_repo_replace_ballot_failed", err,
			"trip_id", strings.TrimSpace(tripID),
			"category", strings.TrimSpace(category),
			"voter_id", strings.TrimSpace(voterID),
		)
	}
	return nil
}

func (r *Repository) CountTripMembers(ctx context.Context, tripID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&pollMemberModel{}).
		Where("trip_id = ?", strings.TrimSpace(tripID)).
		Count(&count).Error; err != nil {
		return 0, r.logError("poll_repo_count_members_failed", err,
			"trip_id", strings.TrimSpace(tripID),
		)
	}
	if count == 0 {
		return 0, domainerrors.ErrTripNotFound
	}
	return int(count), nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     uuid.NewString(),
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("poll_repo_append_outbox_failed", err,
			"event_type", envelope.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("poll_repo_list_outbox_failed", err)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	published := publishedAt.UTC()
	result := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &published,
		})
	if result.Error != nil {
		return r.logError("poll_repo_mark_outbox_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "trip-planning/poll-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("poll repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ProposalRepository = (*Repository)(nil)
var _ ports.VoteRepository = (*Repository)(nil)
var _ ports.MembershipProvider = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
