package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-ledger-service/internal/models"
	"github.com/cypherlabdev/bet-ledger-service/internal/store"
)

// UpdateLegStatus resolves one leg ad hoc, outside full settlement: the
// result value follows from the status (cashouts carry an explicit one),
// the bankroll absorbs the delta, and the parent operation's rollup
// fields are recomputed.
func (e *Engine) UpdateLegStatus(ctx context.Context, req models.UpdateLegStatusRequest) error {
	if !req.Status.Settled() {
		return Validationf("status must be WON, LOST, VOID or CASHED_OUT")
	}
	if req.Status == models.StatusCashedOut {
		if req.ResultValue == nil {
			return Validationf("result value is required for cashout")
		}
		if req.ResultValue.IsNegative() {
			return Validationf("result value must be zero or greater")
		}
	}

	err := e.store.WithinTx(ctx, func(tx store.Tx) error {
		leg, err := tx.LegByID(ctx, req.UserID, req.LegID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var newResult decimal.Decimal
		switch req.Status {
		case models.StatusWon:
			newResult = leg.Stake.Mul(leg.Odds)
		case models.StatusLost:
			newResult = decimal.Zero
		case models.StatusVoid:
			newResult = leg.Stake
		case models.StatusCashedOut:
			newResult = *req.ResultValue
		}

		delta := newResult.Sub(leg.ResultOrZero())
		if err := tx.UpdateLegResult(ctx, leg.ID, req.Status, newResult); err != nil {
			return err
		}
		if err := tx.AdjustBankrollBalance(ctx, leg.BankrollID, delta); err != nil {
			return err
		}
		return e.recomputeOperation(ctx, tx, req.UserID, leg.OperationID)
	})
	if err != nil {
		return err
	}

	e.logger.Info().
		Str("leg_id", req.LegID.String()).
		Str("status", string(req.Status)).
		Msg("leg status updated")
	return nil
}

// recomputeOperation derives an operation's rollup fields from its
// current legs. The operation stays PENDING with no actual return while
// any leg is pending; once all legs are resolved the status follows from
// the legs: any loss makes it LOST, else any cashout CASHED_OUT, else
// all-void VOID, else WON.
func (e *Engine) recomputeOperation(ctx context.Context, tx store.Tx, userID, operationID uuid.UUID) error {
	op, err := tx.OperationWithLegs(ctx, userID, operationID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	totalStake := decimal.Zero
	expectedReturn := decimal.Zero
	hasPending := false
	for i := range op.Legs {
		leg := &op.Legs[i]
		totalStake = totalStake.Add(leg.Stake)
		expectedReturn = expectedReturn.Add(leg.Stake.Mul(leg.Odds))
		if leg.Status == models.StatusPending {
			hasPending = true
		}
	}

	op.TotalStake = totalStake
	op.ExpectedReturn = expectedReturn
	op.Status = models.StatusPending
	op.ActualReturn = nil
	op.ROI = nil

	if !hasPending && len(op.Legs) > 0 {
		actualReturn := decimal.Zero
		hasLoss, hasCashout, allVoid := false, false, true
		for i := range op.Legs {
			leg := &op.Legs[i]
			actualReturn = actualReturn.Add(leg.ResultOrZero())
			switch leg.Status {
			case models.StatusLost:
				hasLoss = true
			case models.StatusCashedOut:
				hasCashout = true
			}
			if leg.Status != models.StatusVoid {
				allVoid = false
			}
		}

		roi := decimal.Zero
		if totalStake.IsPositive() {
			roi = actualReturn.Sub(totalStake).Div(totalStake)
		}

		switch {
		case hasLoss:
			op.Status = models.StatusLost
		case hasCashout:
			op.Status = models.StatusCashedOut
		case allVoid:
			op.Status = models.StatusVoid
		default:
			op.Status = models.StatusWon
		}
		op.ActualReturn = &actualReturn
		op.ROI = &roi
	}

	return tx.UpdateOperationTotals(ctx, op)
}
