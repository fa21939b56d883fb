package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationType distinguishes how legs combine into one betting decision.
type OperationType string

const (
	// OperationSimple is a single-leg bet.
	OperationSimple OperationType = "SIMPLE"
	// OperationArbitrage is a surebet: multiple legs, exactly one can win.
	OperationArbitrage OperationType = "ARBITRAGE"
	// OperationMatched is a combined/sequential bet, optionally with a
	// combined odds override; single-winner settlement like arbitrage.
	OperationMatched OperationType = "MATCHED"
)

// Valid reports whether t is a known operation type.
func (t OperationType) Valid() bool {
	switch t {
	case OperationSimple, OperationArbitrage, OperationMatched:
		return true
	}
	return false
}

// SingleWinner reports whether settlement of a WON operation picks one
// winning leg and marks the rest lost.
func (t OperationType) SingleWinner() bool {
	return t == OperationArbitrage || t == OperationMatched
}

// BetStatus is the lifecycle status shared by operations and legs.
type BetStatus string

const (
	StatusPending   BetStatus = "PENDING"
	StatusWon       BetStatus = "WON"
	StatusLost      BetStatus = "LOST"
	StatusVoid      BetStatus = "VOID"
	StatusCashedOut BetStatus = "CASHED_OUT"
)

// Valid reports whether s is a known status.
func (s BetStatus) Valid() bool {
	switch s {
	case StatusPending, StatusWon, StatusLost, StatusVoid, StatusCashedOut:
		return true
	}
	return false
}

// Settled reports whether s is a terminal status a caller may settle to.
func (s BetStatus) Settled() bool {
	return s.Valid() && s != StatusPending
}

// Bankroll is a cash account held at one bookmaker, in one currency.
// Its balance is mutated exclusively by the ledger engine.
type Bankroll struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	BookmakerName  string          `json:"bookmaker_name"`
	Currency       string          `json:"currency"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Event is a real-world sporting fixture, shared across all users and
// deduplicated by fuzzy name match within the same calendar day.
type Event struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Date  time.Time `json:"date"`
	Sport string    `json:"sport,omitempty"`
}

// Operation is a betting decision grouping one or more legs.
type Operation struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	Type           OperationType    `json:"type"`
	Status         BetStatus        `json:"status"`
	TotalStake     decimal.Decimal  `json:"total_stake"`
	ExpectedReturn decimal.Decimal  `json:"expected_return"`
	ActualReturn   *decimal.Decimal `json:"actual_return,omitempty"` // nil until settled
	ROI            *decimal.Decimal `json:"roi,omitempty"`           // nil until settled
	Description    string           `json:"description,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	Legs []Leg `json:"legs,omitempty"`
}

// Leg is one wagered selection within an operation, drawing its stake
// from one bankroll. ResultValue is the gross amount returned to the
// bankroll for this leg, not profit; nil until resolved.
type Leg struct {
	ID          uuid.UUID        `json:"id"`
	OperationID uuid.UUID        `json:"operation_id"`
	BankrollID  uuid.UUID        `json:"bankroll_id"`
	EventID     uuid.UUID        `json:"event_id"`
	Selection   string           `json:"selection"`
	League      string           `json:"league,omitempty"`
	Odds        decimal.Decimal  `json:"odds"`
	Stake       decimal.Decimal  `json:"stake"`
	Status      BetStatus        `json:"status"`
	ResultValue *decimal.Decimal `json:"result_value,omitempty"`
}

// ResultOrZero returns the leg's result value, treating unresolved as zero.
func (l *Leg) ResultOrZero() decimal.Decimal {
	if l.ResultValue == nil {
		return decimal.Zero
	}
	return *l.ResultValue
}

// NewLeg describes one leg of an operation being created. Odds is nil for
// MATCHED legs covered by the combined odds override.
type NewLeg struct {
	BankrollID uuid.UUID        `json:"bankroll_id"`
	Stake      decimal.Decimal  `json:"stake"`
	Odds       *decimal.Decimal `json:"odds,omitempty"`
	Selection  string           `json:"selection"`
	League     string           `json:"league,omitempty"`
	MatchName  string           `json:"match_name"`
	EventDate  time.Time        `json:"event_date"`
	Sport      string           `json:"sport,omitempty"`
}

// CreateOperationRequest is the input to operation creation.
type CreateOperationRequest struct {
	UserID      uuid.UUID        `json:"user_id"`
	Type        OperationType    `json:"type"`
	Legs        []NewLeg         `json:"legs"`
	MatchedOdds *decimal.Decimal `json:"matched_odds,omitempty"` // MATCHED only
	Description string           `json:"description,omitempty"`
}

// LegEdit describes the new state of one existing leg of a pending
// operation. Every leg keeps its identity; only these fields change.
type LegEdit struct {
	ID         uuid.UUID       `json:"id"`
	BankrollID uuid.UUID       `json:"bankroll_id"`
	Stake      decimal.Decimal `json:"stake"`
	Odds       decimal.Decimal `json:"odds"`
	Selection  string          `json:"selection"`
	League     string          `json:"league,omitempty"`
	MatchName  string          `json:"match_name"`
	EventDate  time.Time       `json:"event_date"`
	Sport      string          `json:"sport,omitempty"`
}

// EditOperationRequest is the input to pending-operation editing.
type EditOperationRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	OperationID uuid.UUID `json:"operation_id"`
	Description string    `json:"description,omitempty"`
	Legs        []LegEdit `json:"legs"`
}

// SettleOperationRequest is the input to settlement. ActualReturn is
// required for CASHED_OUT; WinningLegID is required for WON on
// single-winner operation types.
type SettleOperationRequest struct {
	UserID       uuid.UUID        `json:"user_id"`
	OperationID  uuid.UUID        `json:"operation_id"`
	Status       BetStatus        `json:"status"`
	ActualReturn *decimal.Decimal `json:"actual_return,omitempty"`
	WinningLegID *uuid.UUID       `json:"winning_leg_id,omitempty"`
}

// UpdateLegStatusRequest is the ad-hoc single-leg resolution input.
// ResultValue is required for CASHED_OUT and ignored otherwise.
type UpdateLegStatusRequest struct {
	UserID      uuid.UUID        `json:"user_id"`
	LegID       uuid.UUID        `json:"leg_id"`
	Status      BetStatus        `json:"status"`
	ResultValue *decimal.Decimal `json:"result_value,omitempty"`
}

// CreateBankrollRequest is the input to bankroll creation.
type CreateBankrollRequest struct {
	UserID         uuid.UUID       `json:"user_id"`
	BookmakerName  string          `json:"bookmaker_name"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}
