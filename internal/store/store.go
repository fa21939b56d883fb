// Package store defines the persistence interface for the ledger engine.
// Implementations include PostgreSQL (source of truth) and in-memory
// (for testing).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-ledger-service/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist or is not visible
	// to the requesting user.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicate is returned when an insert violates a uniqueness rule.
	ErrDuplicate = errors.New("store: duplicate")
)

// Store is the persistence interface. Every ledger contract runs inside
// one unit of work obtained from WithinTx; reads outside a unit of work
// serve listing endpoints only and never mutate.
type Store interface {
	// WithinTx runs fn inside a single atomic unit of work. If fn returns
	// an error, every write made through its Tx is rolled back.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error

	// InsertBankroll persists a new bankroll. Returns ErrDuplicate if the
	// user already has one for the same bookmaker.
	InsertBankroll(ctx context.Context, b *models.Bankroll) error

	// ListBankrolls returns the user's bankrolls ordered by bookmaker name.
	ListBankrolls(ctx context.Context, userID uuid.UUID) ([]models.Bankroll, error)

	// ListOperations returns the user's operations with legs, newest first.
	ListOperations(ctx context.Context, userID uuid.UUID) ([]models.Operation, error)

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
}

// Tx is the set of row operations available inside one unit of work.
// Balance writes are relative adjustments so they compose with concurrent
// units; implementations must lock or serialize bankroll rows so two
// units cannot both pass a balance check against the same funds.
type Tx interface {
	// BankrollsForUpdate loads the given bankrolls, locked for the rest of
	// the unit of work. Only bankrolls owned by userID are returned.
	BankrollsForUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.Bankroll, error)

	// AdjustBankrollBalance applies a relative delta to a bankroll balance.
	AdjustBankrollBalance(ctx context.Context, bankrollID uuid.UUID, delta decimal.Decimal) error

	// OperationWithLegs loads an operation and all its legs. Returns
	// ErrNotFound if absent or owned by a different user.
	OperationWithLegs(ctx context.Context, userID, operationID uuid.UUID) (*models.Operation, error)

	// InsertOperation persists a new operation row.
	InsertOperation(ctx context.Context, op *models.Operation) error

	// UpdateOperationTotals persists an operation's rollup fields: status,
	// total stake, expected return, actual return, ROI, and description.
	UpdateOperationTotals(ctx context.Context, op *models.Operation) error

	// DeleteOperation removes an operation row (legs must be gone already).
	DeleteOperation(ctx context.Context, operationID uuid.UUID) error

	// InsertLeg persists a new leg row.
	InsertLeg(ctx context.Context, leg *models.Leg) error

	// LegByID loads a leg by id, constrained to operations owned by userID.
	LegByID(ctx context.Context, userID, legID uuid.UUID) (*models.Leg, error)

	// UpdateLeg persists an edited leg (selection, odds, stake, bankroll,
	// league, event).
	UpdateLeg(ctx context.Context, leg *models.Leg) error

	// UpdateLegResult persists a leg's settlement outcome.
	UpdateLegResult(ctx context.Context, legID uuid.UUID, status models.BetStatus, resultValue decimal.Decimal) error

	// DeleteLeg removes one leg row.
	DeleteLeg(ctx context.Context, legID uuid.UUID) error

	// CountLegs returns the number of legs remaining on an operation.
	CountLegs(ctx context.Context, operationID uuid.UUID) (int, error)

	// BestEventMatch returns the existing event on the same calendar day
	// whose name is most similar to name, with its similarity score.
	// Returns ErrNotFound when the day has no events.
	BestEventMatch(ctx context.Context, name string, date time.Time) (*models.Event, float64, error)

	// InsertEvent persists a new event.
	InsertEvent(ctx context.Context, ev *models.Event) error
}
