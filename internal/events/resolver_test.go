package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/bet-ledger-service/internal/store"
)

type testResolver struct {
	resolver *Resolver
	store    *store.MemoryStore
	ctx      context.Context
}

func setupTestResolver(t *testing.T) *testResolver {
	t.Helper()
	return &testResolver{
		resolver: NewResolver(DefaultThreshold, zerolog.Nop()),
		store:    store.NewMemoryStore(),
		ctx:      context.Background(),
	}
}

// resolve runs one Resolve call inside its own unit of work.
func (tr *testResolver) resolve(t *testing.T, name string, date time.Time, sport string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := tr.store.WithinTx(tr.ctx, func(tx store.Tx) error {
		var err error
		id, err = tr.resolver.Resolve(tr.ctx, tx, name, date, sport)
		return err
	})
	require.NoError(t, err)
	return id
}

func matchDay() time.Time {
	return time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
}

// TestResolve_CreatesEvent tests that an unknown name creates a new event
func TestResolve_CreatesEvent(t *testing.T) {
	tr := setupTestResolver(t)

	id := tr.resolve(t, "Arsenal vs Chelsea", matchDay(), "football")
	assert.NotEqual(t, uuid.Nil, id)
}

// TestResolve_ReusesSimilarName tests fuzzy dedup within the same day
func TestResolve_ReusesSimilarName(t *testing.T) {
	tr := setupTestResolver(t)

	first := tr.resolve(t, "Arsenal vs Chelsea", matchDay(), "football")

	tests := []string{
		"arsenal vs chelsea",
		"Arsenal - Chelsea",
		"ARSENAL V CHELSEA",
		"  Arsenal vs Chelsea  ",
	}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, first, tr.resolve(t, name, matchDay(), "football"))
		})
	}
}

// TestResolve_DistinctFixtures tests that unrelated names never merge
func TestResolve_DistinctFixtures(t *testing.T) {
	tr := setupTestResolver(t)

	first := tr.resolve(t, "Arsenal vs Chelsea", matchDay(), "football")
	second := tr.resolve(t, "Bayern Munich vs Dortmund", matchDay(), "football")
	third := tr.resolve(t, "Djokovic vs Alcaraz", matchDay(), "tennis")

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, first, third)
	assert.NotEqual(t, second, third)
}

// TestResolve_DayBoundary tests that the same fixture name on different
// calendar days resolves to different events
func TestResolve_DayBoundary(t *testing.T) {
	tr := setupTestResolver(t)

	first := tr.resolve(t, "Arsenal vs Chelsea", matchDay(), "football")

	// Same day, different kickoff time: still the same event.
	sameDay := tr.resolve(t, "Arsenal vs Chelsea", matchDay().Add(2*time.Hour), "football")
	assert.Equal(t, first, sameDay)

	nextDay := tr.resolve(t, "Arsenal vs Chelsea", matchDay().AddDate(0, 0, 1), "football")
	assert.NotEqual(t, first, nextDay)
}

// TestResolve_InvalidInput tests name and date validation
func TestResolve_InvalidInput(t *testing.T) {
	tr := setupTestResolver(t)

	err := tr.store.WithinTx(tr.ctx, func(tx store.Tx) error {
		_, err := tr.resolver.Resolve(tr.ctx, tx, "   ", matchDay(), "")
		return err
	})
	assert.Error(t, err)

	err = tr.store.WithinTx(tr.ctx, func(tx store.Tx) error {
		_, err := tr.resolver.Resolve(tr.ctx, tx, "Arsenal vs Chelsea", time.Time{}, "")
		return err
	})
	assert.Error(t, err)
}

// TestNewResolver_ThresholdFallback tests out-of-range threshold handling
func TestNewResolver_ThresholdFallback(t *testing.T) {
	assert.Equal(t, DefaultThreshold, NewResolver(0, zerolog.Nop()).threshold)
	assert.Equal(t, DefaultThreshold, NewResolver(-1, zerolog.Nop()).threshold)
	assert.Equal(t, DefaultThreshold, NewResolver(1.5, zerolog.Nop()).threshold)
	assert.Equal(t, 0.7, NewResolver(0.7, zerolog.Nop()).threshold)
}
