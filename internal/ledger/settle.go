package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-ledger-service/internal/models"
	"github.com/cypherlabdev/bet-ledger-service/internal/store"
)

// legOutcome is one leg's computed settlement result.
type legOutcome struct {
	leg         *models.Leg
	resultValue decimal.Decimal
	status      models.BetStatus
}

// SettleOperation resolves every leg of an operation for the given
// terminal status and applies the resulting balance deltas. Balances are
// adjusted by resultValue − previousResultValue, never overwritten, so
// re-settling with identical inputs moves no money.
func (e *Engine) SettleOperation(ctx context.Context, req models.SettleOperationRequest) error {
	if !req.Status.Settled() {
		return Validationf("settlement status must be WON, LOST, VOID or CASHED_OUT")
	}
	if req.Status == models.StatusCashedOut && (req.ActualReturn == nil || req.ActualReturn.IsNegative()) {
		return ErrMissingReturn
	}

	err := e.store.WithinTx(ctx, func(tx store.Tx) error {
		op, err := e.loadOperation(ctx, tx, req.UserID, req.OperationID)
		if err != nil {
			return err
		}
		if len(op.Legs) == 0 {
			return ErrEmptyOperation
		}

		// Recomputed from legs, never trusted from the stored rollup.
		totalStake := decimal.Zero
		for i := range op.Legs {
			totalStake = totalStake.Add(op.Legs[i].Stake)
		}

		outcomes, actualReturn, err := computeSettlement(op, req, totalStake)
		if err != nil {
			return err
		}

		for _, out := range outcomes {
			delta := out.resultValue.Sub(out.leg.ResultOrZero())
			if delta.IsZero() && out.leg.Status == out.status {
				continue
			}
			if err := tx.UpdateLegResult(ctx, out.leg.ID, out.status, out.resultValue); err != nil {
				return err
			}
			if err := tx.AdjustBankrollBalance(ctx, out.leg.BankrollID, delta); err != nil {
				return err
			}
		}

		roi := decimal.Zero
		if totalStake.IsPositive() {
			roi = actualReturn.Sub(totalStake).Div(totalStake)
		}

		op.Status = req.Status
		op.TotalStake = totalStake
		op.ActualReturn = &actualReturn
		op.ROI = &roi
		return tx.UpdateOperationTotals(ctx, op)
	})
	if err != nil {
		return err
	}

	e.logger.Info().
		Str("operation_id", req.OperationID.String()).
		Str("status", string(req.Status)).
		Msg("operation settled")
	return nil
}

// computeSettlement assigns each leg its result value and status for the
// requested terminal status. Pure: no I/O, no mutation of op.
func computeSettlement(op *models.Operation, req models.SettleOperationRequest, totalStake decimal.Decimal) ([]legOutcome, decimal.Decimal, error) {
	outcomes := make([]legOutcome, 0, len(op.Legs))
	actualReturn := decimal.Zero

	switch req.Status {
	case models.StatusVoid:
		// Everything annulled, stakes come back.
		for i := range op.Legs {
			leg := &op.Legs[i]
			outcomes = append(outcomes, legOutcome{leg: leg, resultValue: leg.Stake, status: models.StatusVoid})
		}
		actualReturn = totalStake

	case models.StatusLost:
		for i := range op.Legs {
			outcomes = append(outcomes, legOutcome{leg: &op.Legs[i], resultValue: decimal.Zero, status: models.StatusLost})
		}

	case models.StatusCashedOut:
		// Proportional split of the declared return by stake share.
		totalReturn := *req.ActualReturn
		actualReturn = totalReturn
		for i := range op.Legs {
			leg := &op.Legs[i]
			share := decimal.Zero
			if totalStake.IsPositive() {
				share = totalReturn.Mul(leg.Stake).Div(totalStake)
			}
			outcomes = append(outcomes, legOutcome{leg: leg, resultValue: share, status: models.StatusCashedOut})
		}

	case models.StatusWon:
		if op.Type.SingleWinner() {
			// One leg wins, the rest necessarily lost.
			if req.WinningLegID == nil {
				return nil, decimal.Zero, ErrMissingWinningLeg
			}
			found := false
			for i := range op.Legs {
				leg := &op.Legs[i]
				if leg.ID == *req.WinningLegID {
					found = true
					win := leg.Stake.Mul(leg.Odds)
					actualReturn = actualReturn.Add(win)
					outcomes = append(outcomes, legOutcome{leg: leg, resultValue: win, status: models.StatusWon})
				} else {
					outcomes = append(outcomes, legOutcome{leg: leg, resultValue: decimal.Zero, status: models.StatusLost})
				}
			}
			if !found {
				return nil, decimal.Zero, ErrMissingWinningLeg
			}
		} else {
			// Independent legs: every leg pays out its own odds.
			for i := range op.Legs {
				leg := &op.Legs[i]
				win := leg.Stake.Mul(leg.Odds)
				actualReturn = actualReturn.Add(win)
				outcomes = append(outcomes, legOutcome{leg: leg, resultValue: win, status: models.StatusWon})
			}
		}
	}

	return outcomes, actualReturn, nil
}
