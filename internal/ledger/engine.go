// Package ledger implements the settlement engine: the invariant-preserving
// state transitions that reserve stake from bankrolls, reconcile stake
// changes on edit, and resolve outcomes into balance deltas. Every public
// method runs as one atomic unit of work; a failure leaves no partial state.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-ledger-service/internal/events"
	"github.com/cypherlabdev/bet-ledger-service/internal/models"
	"github.com/cypherlabdev/bet-ledger-service/internal/store"
)

// Engine owns bankroll balance mutation. Nothing else writes balances.
type Engine struct {
	store    store.Store
	resolver *events.Resolver
	logger   zerolog.Logger
}

// NewEngine creates a ledger engine.
func NewEngine(st store.Store, resolver *events.Resolver, logger zerolog.Logger) *Engine {
	return &Engine{
		store:    st,
		resolver: resolver,
		logger:   logger.With().Str("component", "ledger_engine").Logger(),
	}
}

// CreateOperation atomically creates an operation with its legs, resolving
// each leg's event and reserving every stake from its bankroll. Balance
// sufficiency is checked against cumulative consumption within the
// request, so several legs drawing on one bankroll must jointly fit.
func (e *Engine) CreateOperation(ctx context.Context, req models.CreateOperationRequest) (uuid.UUID, error) {
	if err := validateCreate(req); err != nil {
		return uuid.Nil, err
	}

	operationID := uuid.New()
	err := e.store.WithinTx(ctx, func(tx store.Tx) error {
		bankrolls, err := e.lockBankrolls(ctx, tx, req.UserID, bankrollIDs(req.Legs))
		if err != nil {
			return err
		}

		// Track remaining funds per bankroll so legs sharing one bankroll
		// cannot jointly overdraw it.
		available := make(map[uuid.UUID]decimal.Decimal, len(bankrolls))
		for id, b := range bankrolls {
			available[id] = b.CurrentBalance
		}
		for _, leg := range req.Legs {
			rest := available[leg.BankrollID].Sub(leg.Stake)
			if rest.IsNegative() {
				return ErrInsufficientBalance
			}
			available[leg.BankrollID] = rest
		}

		totalStake, expectedReturn := expectedTotals(req)

		now := time.Now().UTC()
		op := &models.Operation{
			ID:             operationID,
			UserID:         req.UserID,
			Type:           req.Type,
			Status:         models.StatusPending,
			TotalStake:     totalStake,
			ExpectedReturn: expectedReturn,
			Description:    req.Description,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.InsertOperation(ctx, op); err != nil {
			return fmt.Errorf("insert operation: %w", err)
		}

		for _, leg := range req.Legs {
			eventID, err := e.resolver.Resolve(ctx, tx, leg.MatchName, leg.EventDate, leg.Sport)
			if err != nil {
				return err
			}

			if err := tx.InsertLeg(ctx, &models.Leg{
				ID:          uuid.New(),
				OperationID: operationID,
				BankrollID:  leg.BankrollID,
				EventID:     eventID,
				Selection:   leg.Selection,
				League:      leg.League,
				Odds:        legOdds(leg, req.MatchedOdds),
				Stake:       leg.Stake,
				Status:      models.StatusPending,
			}); err != nil {
				return fmt.Errorf("insert leg: %w", err)
			}

			if err := tx.AdjustBankrollBalance(ctx, leg.BankrollID, leg.Stake.Neg()); err != nil {
				return fmt.Errorf("reserve stake: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	e.logger.Info().
		Str("operation_id", operationID.String()).
		Str("user_id", req.UserID.String()).
		Str("type", string(req.Type)).
		Int("legs", len(req.Legs)).
		Msg("operation created")
	return operationID, nil
}

// CreateBankroll creates a cash account with its initial balance. The
// balance is mutated only by ledger contracts afterwards.
func (e *Engine) CreateBankroll(ctx context.Context, req models.CreateBankrollRequest) (uuid.UUID, error) {
	if len(req.BookmakerName) < 2 {
		return uuid.Nil, Validationf("bookmaker name is required")
	}
	if len(req.Currency) < 2 {
		return uuid.Nil, Validationf("currency is required")
	}
	if req.InitialBalance.IsNegative() {
		return uuid.Nil, Validationf("balance must be zero or greater")
	}

	now := time.Now().UTC()
	b := &models.Bankroll{
		ID:             uuid.New(),
		UserID:         req.UserID,
		BookmakerName:  req.BookmakerName,
		Currency:       req.Currency,
		CurrentBalance: req.InitialBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := e.store.InsertBankroll(ctx, b); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return uuid.Nil, ErrBankrollExists
		}
		return uuid.Nil, fmt.Errorf("insert bankroll: %w", err)
	}

	e.logger.Info().
		Str("bankroll_id", b.ID.String()).
		Str("user_id", req.UserID.String()).
		Str("bookmaker", req.BookmakerName).
		Msg("bankroll created")
	return b.ID, nil
}

// UpdateOperationDescription changes an operation's free-text description
// without touching any financial field.
func (e *Engine) UpdateOperationDescription(ctx context.Context, userID, operationID uuid.UUID, description string) error {
	return e.store.WithinTx(ctx, func(tx store.Tx) error {
		op, err := e.loadOperation(ctx, tx, userID, operationID)
		if err != nil {
			return err
		}
		op.Description = description
		return tx.UpdateOperationTotals(ctx, op)
	})
}

// lockBankrolls resolves and locks the given bankrolls for the unit of
// work, failing with ErrInvalidBankroll unless every distinct id resolves
// to a bankroll owned by userID.
func (e *Engine) lockBankrolls(ctx context.Context, tx store.Tx, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]models.Bankroll, error) {
	bankrolls, err := tx.BankrollsForUpdate(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("load bankrolls: %w", err)
	}
	if len(bankrolls) != len(ids) {
		return nil, ErrInvalidBankroll
	}
	out := make(map[uuid.UUID]models.Bankroll, len(bankrolls))
	for _, b := range bankrolls {
		out[b.ID] = b
	}
	return out, nil
}

func (e *Engine) loadOperation(ctx context.Context, tx store.Tx, userID, operationID uuid.UUID) (*models.Operation, error) {
	op, err := tx.OperationWithLegs(ctx, userID, operationID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load operation: %w", err)
	}
	return op, nil
}

// expectedTotals computes creation-time totals per operation type. The
// two multi-leg combination rules are intentionally different: generic
// multi-leg operations model independent parallel bets (Σ stake×odds),
// MATCHED without combined odds models one payout carried through
// sequential odds (totalStake × Π odds).
func expectedTotals(req models.CreateOperationRequest) (totalStake, expectedReturn decimal.Decimal) {
	for _, leg := range req.Legs {
		totalStake = totalStake.Add(leg.Stake)
	}

	if req.Type == models.OperationMatched {
		if req.MatchedOdds != nil {
			return totalStake, totalStake.Mul(*req.MatchedOdds)
		}
		product := decimal.NewFromInt(1)
		for _, leg := range req.Legs {
			product = product.Mul(*leg.Odds)
		}
		return totalStake, totalStake.Mul(product)
	}

	for _, leg := range req.Legs {
		expectedReturn = expectedReturn.Add(leg.Stake.Mul(*leg.Odds))
	}
	return totalStake, expectedReturn
}

// legOdds picks the odds stored on a created leg: its own odds when
// given, else the combined odds for a staked MATCHED leg, else 1.
func legOdds(leg models.NewLeg, matchedOdds *decimal.Decimal) decimal.Decimal {
	if leg.Odds != nil {
		return *leg.Odds
	}
	if matchedOdds != nil && leg.Stake.IsPositive() {
		return *matchedOdds
	}
	return decimal.NewFromInt(1)
}

// bankrollIDs returns the distinct bankroll ids referenced by legs.
func bankrollIDs(legs []models.NewLeg) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(legs))
	var out []uuid.UUID
	for _, leg := range legs {
		if _, ok := seen[leg.BankrollID]; ok {
			continue
		}
		seen[leg.BankrollID] = struct{}{}
		out = append(out, leg.BankrollID)
	}
	return out
}
