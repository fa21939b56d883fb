package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-ledger-service/internal/models"
	"github.com/cypherlabdev/bet-ledger-service/internal/store"
)

// EditPendingOperation reconciles a pending operation's legs against
// their bankrolls: stake increases must fit the bankroll, decreases are
// refunded, and a bankroll switch refunds the old stake in full before
// reserving the new one. Settled operations are immutable.
func (e *Engine) EditPendingOperation(ctx context.Context, req models.EditOperationRequest) error {
	if err := validateEdit(req); err != nil {
		return err
	}

	err := e.store.WithinTx(ctx, func(tx store.Tx) error {
		op, err := e.loadOperation(ctx, tx, req.UserID, req.OperationID)
		if err != nil {
			return err
		}
		if op.Status != models.StatusPending {
			return ErrNotEditable
		}
		for i := range op.Legs {
			if op.Legs[i].Status != models.StatusPending {
				return ErrNotEditable
			}
		}

		ids := make([]uuid.UUID, 0, len(req.Legs))
		seen := make(map[uuid.UUID]struct{})
		for _, leg := range req.Legs {
			if _, ok := seen[leg.BankrollID]; !ok {
				seen[leg.BankrollID] = struct{}{}
				ids = append(ids, leg.BankrollID)
			}
		}
		bankrolls, err := e.lockBankrolls(ctx, tx, req.UserID, ids)
		if err != nil {
			return err
		}

		// Remaining funds per target bankroll, composed across all legs of
		// the request.
		available := make(map[uuid.UUID]decimal.Decimal, len(bankrolls))
		for id, b := range bankrolls {
			available[id] = b.CurrentBalance
		}

		existing := make(map[uuid.UUID]*models.Leg, len(op.Legs))
		for i := range op.Legs {
			existing[op.Legs[i].ID] = &op.Legs[i]
		}

		for _, edit := range req.Legs {
			prior, ok := existing[edit.ID]
			if !ok {
				return ErrNotFound
			}

			if prior.BankrollID == edit.BankrollID {
				delta := edit.Stake.Sub(prior.Stake)
				switch {
				case delta.IsPositive():
					rest := available[edit.BankrollID].Sub(delta)
					if rest.IsNegative() {
						return ErrInsufficientBalance
					}
					available[edit.BankrollID] = rest
					if err := tx.AdjustBankrollBalance(ctx, edit.BankrollID, delta.Neg()); err != nil {
						return err
					}
				case delta.IsNegative():
					available[edit.BankrollID] = available[edit.BankrollID].Add(delta.Abs())
					if err := tx.AdjustBankrollBalance(ctx, edit.BankrollID, delta.Abs()); err != nil {
						return err
					}
				}
			} else {
				// Full refund to the old bankroll, fresh reservation from
				// the new one.
				if err := tx.AdjustBankrollBalance(ctx, prior.BankrollID, prior.Stake); err != nil {
					return err
				}
				if _, ok := available[prior.BankrollID]; ok {
					available[prior.BankrollID] = available[prior.BankrollID].Add(prior.Stake)
				}

				rest := available[edit.BankrollID].Sub(edit.Stake)
				if rest.IsNegative() {
					return ErrInsufficientBalance
				}
				available[edit.BankrollID] = rest
				if err := tx.AdjustBankrollBalance(ctx, edit.BankrollID, edit.Stake.Neg()); err != nil {
					return err
				}
			}

			eventID, err := e.resolver.Resolve(ctx, tx, edit.MatchName, edit.EventDate, edit.Sport)
			if err != nil {
				return err
			}

			prior.BankrollID = edit.BankrollID
			prior.EventID = eventID
			prior.Selection = edit.Selection
			prior.League = edit.League
			prior.Odds = edit.Odds
			prior.Stake = edit.Stake
			if err := tx.UpdateLeg(ctx, prior); err != nil {
				return fmt.Errorf("update leg: %w", err)
			}
		}

		// Totals come from the persisted legs, using the creation-time
		// combination rule for the operation's type.
		fresh, err := e.loadOperation(ctx, tx, req.UserID, req.OperationID)
		if err != nil {
			return err
		}

		totalStake := decimal.Zero
		for i := range fresh.Legs {
			totalStake = totalStake.Add(fresh.Legs[i].Stake)
		}

		var expectedReturn decimal.Decimal
		if op.Type == models.OperationMatched {
			product := decimal.NewFromInt(1)
			for i := range fresh.Legs {
				product = product.Mul(fresh.Legs[i].Odds)
			}
			expectedReturn = totalStake.Mul(product)
		} else {
			for i := range fresh.Legs {
				expectedReturn = expectedReturn.Add(fresh.Legs[i].Stake.Mul(fresh.Legs[i].Odds))
			}
		}

		fresh.TotalStake = totalStake
		fresh.ExpectedReturn = expectedReturn
		fresh.Description = req.Description
		return tx.UpdateOperationTotals(ctx, fresh)
	})
	if err != nil {
		return err
	}

	e.logger.Info().
		Str("operation_id", req.OperationID.String()).
		Int("legs", len(req.Legs)).
		Msg("pending operation edited")
	return nil
}
