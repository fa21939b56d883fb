package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cypherlabdev/bet-ledger-service/internal/store"
)

// DeleteLeg removes one leg, refunding stake − resultValue to its
// bankroll. Deleting the last leg deletes the operation; otherwise the
// operation's rollup fields are recomputed from the remaining legs.
func (e *Engine) DeleteLeg(ctx context.Context, userID, legID uuid.UUID) error {
	err := e.store.WithinTx(ctx, func(tx store.Tx) error {
		leg, err := tx.LegByID(ctx, userID, legID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("load leg: %w", err)
		}

		refund := leg.Stake.Sub(leg.ResultOrZero())
		if err := tx.DeleteLeg(ctx, leg.ID); err != nil {
			return err
		}
		if err := tx.AdjustBankrollBalance(ctx, leg.BankrollID, refund); err != nil {
			return err
		}

		remaining, err := tx.CountLegs(ctx, leg.OperationID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return tx.DeleteOperation(ctx, leg.OperationID)
		}
		return e.recomputeOperation(ctx, tx, userID, leg.OperationID)
	})
	if err != nil {
		return err
	}

	e.logger.Info().Str("leg_id", legID.String()).Msg("leg deleted")
	return nil
}

// DeleteOperation removes an operation and all its legs, refunding each
// leg's stake − resultValue to its bankroll.
func (e *Engine) DeleteOperation(ctx context.Context, userID, operationID uuid.UUID) error {
	err := e.store.WithinTx(ctx, func(tx store.Tx) error {
		op, err := e.loadOperation(ctx, tx, userID, operationID)
		if err != nil {
			return err
		}

		for i := range op.Legs {
			leg := &op.Legs[i]
			refund := leg.Stake.Sub(leg.ResultOrZero())
			if err := tx.AdjustBankrollBalance(ctx, leg.BankrollID, refund); err != nil {
				return err
			}
			if err := tx.DeleteLeg(ctx, leg.ID); err != nil {
				return err
			}
		}
		return tx.DeleteOperation(ctx, operationID)
	})
	if err != nil {
		return err
	}

	e.logger.Info().Str("operation_id", operationID.String()).Msg("operation deleted")
	return nil
}
