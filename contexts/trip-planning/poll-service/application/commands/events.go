package commands

import (
	"context"
	"encoding/json"
	"time"

	"caravan/contexts/trip-planning/poll-service/ports"
)

const (
	eventVoteCast        = "poll.vote_cast"
	eventBallotSubmitted = "poll.ballot_submitted"
)

func newPollEnvelope(
	eventID string,
	eventType string,
	tripID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Poll events are partitioned by trip, mirroring the ledger stream, so a
	// trip's planning activity replays in order.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "poll-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "trip_id",
		PartitionKey:     tripID,
		Data:             payload,
	}, nil
}

func (uc VoteUseCase) appendVoteEvent(
	ctx context.Context,
	eventType string,
	tripID string,
	occurredAt time.Time,
	data map[string]any,
) error {
	// Outbox is optional for pure read/test wiring, so nil is treated as no-op.
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newPollEnvelope(eventID, eventType, tripID, occurredAt, data)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}
