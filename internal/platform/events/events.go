// Package events publishes booking lifecycle events for consumers outside
// this service, such as a future dispatch system. Publishing happens after
// the store write has committed; a failure is logged and never surfaces to
// the caller.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
)

// Event is the envelope written to the broker.
type Event struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Key        string          `json:"key"`
	Data       json.RawMessage `json:"data"`
}

// New builds an event with data marshalled to JSON. key groups related events
// (the booking record id) so brokers can keep them ordered.
func New(eventType, key string, data interface{}) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Key:        key,
		Data:       raw,
	}, nil
}

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// LogPublisher writes events to the log only. It backs EVENTS_BROKER=none.
type LogPublisher struct {
	logger zerolog.Logger
}

func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, evt Event) error {
	p.logger.Debug().
		Str("event_id", evt.ID.String()).
		Str("event_type", evt.Type).
		Str("key", evt.Key).
		Msg("event")
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// Emitter is what services hold. It builds the envelope, publishes it
// with a bounded timeout detached from the request, and logs failures.
type Emitter struct {
	pub     Publisher
	logger  zerolog.Logger
	timeout time.Duration
}

func NewEmitter(pub Publisher, logger zerolog.Logger) *Emitter {
	return &Emitter{pub: pub, logger: logger, timeout: 5 * time.Second}
}

// Emit publishes eventType for key. It never returns an error.
func (e *Emitter) Emit(ctx context.Context, eventType, key string, data interface{}) {
	if e == nil || e.pub == nil {
		return
	}
	evt, err := New(eventType, key, data)
	if err != nil {
		e.logger.Error().Err(err).Str("event_type", eventType).Msg("build event")
		return
	}

	// The request may finish before the broker acks.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	if err := e.pub.Publish(pubCtx, evt); err != nil {
		e.logger.Warn().Err(err).
			Str("event_id", evt.ID.String()).
			Str("event_type", evt.Type).
			Str("key", key).
			Msg("publish event failed")
	}
}
