// Vinoteca - Personal Cellar Intelligence and Wine Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoteca

// Package notify publishes domain events on an in-process Watermill
// bus. Subscribers are optional; publishing never blocks request
// handling and failures are logged, not returned to callers.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Topics for domain events.
const (
	TopicRecommendationGenerated = "recommendation.generated"
	TopicEnrichmentCompleted     = "enrichment.completed"
	TopicBottleConsumed          = "cellar.bottle_consumed"
)

// RecommendationGenerated is emitted after the engine answers a request.
type RecommendationGenerated struct {
	RequestID   string    `json:"request_id"`
	UserID      string    `json:"user_id"`
	RequestType string    `json:"request_type"`
	Results     int       `json:"results"`
	Confidence  float64   `json:"confidence"`
	GeneratedAt time.Time `json:"generated_at"`
}

// EnrichmentCompleted is emitted after an external lookup merges.
type EnrichmentCompleted struct {
	CacheKey   string    `json:"cache_key"`
	Sources    int       `json:"sources"`
	Confidence float64   `json:"confidence"`
	FromCache  bool      `json:"from_cache"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BottleConsumed is emitted when a bottle leaves the cellar.
type BottleConsumed struct {
	OwnerID    string    `json:"owner_id"`
	WineID     string    `json:"wine_id"`
	Remaining  int       `json:"remaining"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Bus wraps a gochannel pub/sub with typed publish helpers.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger zerolog.Logger
}

// NewBus creates an in-process event bus.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBus(logger zerolog.Logger) *Bus {
	componentLogger := logger.With().Str("component", "notify").Logger()
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{
			// Bounded buffer so a slow subscriber cannot grow memory
			// without limit; publishers drop on overflow via timeout
			// at the subscriber side, not here.
			OutputChannelBuffer: 64,
		},
		&zerologAdapter{logger: componentLogger},
	)
	return &Bus{
		pubsub: pubsub,
		logger: componentLogger,
	}
}

// Subscribe returns a channel of raw messages for a topic. Callers must
// Ack or Nack every message.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return ch, nil
}

// PublishRecommendationGenerated publishes a recommendation event.
func (b *Bus) PublishRecommendationGenerated(event RecommendationGenerated) {
	b.publish(TopicRecommendationGenerated, event)
}

// PublishEnrichmentCompleted publishes an enrichment event.
func (b *Bus) PublishEnrichmentCompleted(event EnrichmentCompleted) {
	b.publish(TopicEnrichmentCompleted, event)
}

// PublishBottleConsumed publishes a consumption event.
func (b *Bus) PublishBottleConsumed(event BottleConsumed) {
	b.publish(TopicBottleConsumed, event)
}

// publish serializes and publishes an event. Failures are logged; the
// bus is a side channel and must not fail the operation that fired it.
func (b *Bus) publish(topic string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		b.logger.Error().Err(err).Str("topic", topic).Msg("failed to encode event")
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		b.logger.Warn().Err(err).Str("topic", topic).Msg("failed to publish event")
	}
}

// Close shuts the bus down, closing all subscriber channels.
func (b *Bus) Close() error {
	if err := b.pubsub.Close(); err != nil {
		return fmt.Errorf("failed to close event bus: %w", err)
	}
	return nil
}

// zerologAdapter bridges Watermill's LoggerAdapter to zerolog.
type zerologAdapter struct {
	logger zerolog.Logger
}

func (a *zerologAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.event(a.logger.Error().Err(err), msg, fields)
}

func (a *zerologAdapter) Info(msg string, fields watermill.LogFields) {
	a.event(a.logger.Info(), msg, fields)
}

func (a *zerologAdapter) Debug(msg string, fields watermill.LogFields) {
	a.event(a.logger.Debug(), msg, fields)
}

func (a *zerologAdapter) Trace(msg string, fields watermill.LogFields) {
	a.event(a.logger.Trace(), msg, fields)
}

func (a *zerologAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	ctx := a.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &zerologAdapter{logger: ctx.Logger()}
}

func (a *zerologAdapter) event(e *zerolog.Event, msg string, fields watermill.LogFields) {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}
