// Package events resolves free-text match metadata to canonical sporting
// events by fuzzy name matching within the same calendar day.
package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/bet-ledger-service/internal/models"
	"github.com/cypherlabdev/bet-ledger-service/internal/store"
)

// DefaultThreshold is the similarity score an existing event must exceed
// to be reused. Tuned to avoid merging distinct fixtures; duplicate
// events from a too-low score are tolerated, merged ones are not.
const DefaultThreshold = 0.4

// Resolver finds or creates events. Dedup is best effort: two concurrent
// units of work may still create near-duplicate events for one fixture.
type Resolver struct {
	threshold float64
	logger    zerolog.Logger
}

// NewResolver creates a resolver with the given similarity threshold;
// values outside (0, 1] fall back to DefaultThreshold.
func NewResolver(threshold float64, logger zerolog.Logger) *Resolver {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Resolver{
		threshold: threshold,
		logger:    logger.With().Str("component", "event_resolver").Logger(),
	}
}

// Resolve returns the id of an existing event on the same calendar day
// whose name is similar enough to name, creating a new event otherwise.
// Runs inside the caller's unit of work.
func (r *Resolver) Resolve(ctx context.Context, tx store.Tx, name string, date time.Time, sport string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return uuid.Nil, errors.New("event name is required")
	}
	if date.IsZero() {
		return uuid.Nil, errors.New("event date is invalid")
	}

	match, score, err := tx.BestEventMatch(ctx, trimmed, date)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return uuid.Nil, fmt.Errorf("event lookup: %w", err)
	}
	if match != nil && score > r.threshold {
		r.logger.Debug().
			Str("name", trimmed).
			Str("matched", match.Name).
			Float64("score", score).
			Msg("reusing existing event")
		return match.ID, nil
	}

	ev := &models.Event{
		ID:    uuid.New(),
		Name:  trimmed,
		Date:  date.UTC(),
		Sport: strings.TrimSpace(sport),
	}
	if err := tx.InsertEvent(ctx, ev); err != nil {
		return uuid.Nil, fmt.Errorf("create event: %w", err)
	}

	r.logger.Debug().
		Str("name", trimmed).
		Time("date", ev.Date).
		Msg("created new event")
	return ev.ID, nil
}
