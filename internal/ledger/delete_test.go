package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/bet-ledger-service/internal/models"
)

// TestDeleteOperation_Pending tests that deleting a pending operation
// refunds every stake
func TestDeleteOperation_Pending(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollA := tl.bankroll(t, "Bet365", "1000")
	bankrollB := tl.bankroll(t, "Pinnacle", "1000")

	op := tl.arbitrageOperation(t, bankrollA, bankrollB)
	assertDecimalEqual(t, "900", tl.balance(t, bankrollA))
	assertDecimalEqual(t, "880", tl.balance(t, bankrollB))

	require.NoError(t, tl.engine.DeleteOperation(tl.ctx, tl.userID, op.ID))

	assertDecimalEqual(t, "1000", tl.balance(t, bankrollA))
	assertDecimalEqual(t, "1000", tl.balance(t, bankrollB))

	ops, err := tl.store.ListOperations(tl.ctx, tl.userID)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

// TestDeleteOperation_Settled tests that deleting a settled operation
// reverses its net financial effect, winnings included
func TestDeleteOperation_Settled(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollID := tl.bankroll(t, "Bet365", "1000")

	opID, err := tl.engine.CreateOperation(tl.ctx, tl.simpleRequest(bankrollID, "100", "2.0"))
	require.NoError(t, err)
	require.NoError(t, tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:      tl.userID,
		OperationID: opID,
		Status:      models.StatusWon,
	}))
	assertDecimalEqual(t, "1100", tl.balance(t, bankrollID))

	// Refund is stake - result: 100 - 200 claws the 100 profit back.
	require.NoError(t, tl.engine.DeleteOperation(tl.ctx, tl.userID, opID))
	assertDecimalEqual(t, "1000", tl.balance(t, bankrollID))
}

// TestDeleteOperation_NotFound tests unknown and foreign operations
func TestDeleteOperation_NotFound(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollID := tl.bankroll(t, "Bet365", "1000")

	opID, err := tl.engine.CreateOperation(tl.ctx, tl.simpleRequest(bankrollID, "100", "2.0"))
	require.NoError(t, err)

	assert.ErrorIs(t, tl.engine.DeleteOperation(tl.ctx, tl.userID, uuid.New()), ErrNotFound)
	assert.ErrorIs(t, tl.engine.DeleteOperation(tl.ctx, uuid.New(), opID), ErrNotFound)
	assertDecimalEqual(t, "900", tl.balance(t, bankrollID))
}

// TestDeleteLeg tests removing one leg of a multi-leg operation:
// stake refunded, rollup recomputed from the survivors
func TestDeleteLeg(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollA := tl.bankroll(t, "Bet365", "1000")
	bankrollB := tl.bankroll(t, "Pinnacle", "1000")

	op := tl.arbitrageOperation(t, bankrollA, bankrollB)

	var legA, legB models.Leg
	for _, leg := range op.Legs {
		if leg.BankrollID == bankrollA {
			legA = leg
		} else {
			legB = leg
		}
	}

	require.NoError(t, tl.engine.DeleteLeg(tl.ctx, tl.userID, legB.ID))

	assertDecimalEqual(t, "900", tl.balance(t, bankrollA))
	assertDecimalEqual(t, "1000", tl.balance(t, bankrollB))

	remaining := tl.operation(t, op.ID)
	require.Len(t, remaining.Legs, 1)
	assert.Equal(t, legA.ID, remaining.Legs[0].ID)
	assertDecimalEqual(t, "100", remaining.TotalStake)
	assertDecimalEqual(t, "200", remaining.ExpectedReturn)
}

// TestDeleteLeg_LastLegDeletesOperation tests the cascade on the final leg
func TestDeleteLeg_LastLegDeletesOperation(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollID := tl.bankroll(t, "Bet365", "1000")

	opID, err := tl.engine.CreateOperation(tl.ctx, tl.simpleRequest(bankrollID, "100", "2.0"))
	require.NoError(t, err)

	op := tl.operation(t, opID)
	require.NoError(t, tl.engine.DeleteLeg(tl.ctx, tl.userID, op.Legs[0].ID))

	assertDecimalEqual(t, "1000", tl.balance(t, bankrollID))
	ops, err := tl.store.ListOperations(tl.ctx, tl.userID)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

// TestDeleteLeg_Resolved tests that a resolved leg's refund nets out its
// result value
func TestDeleteLeg_Resolved(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollA := tl.bankroll(t, "Bet365", "1000")
	bankrollB := tl.bankroll(t, "Pinnacle", "1000")

	op := tl.arbitrageOperation(t, bankrollA, bankrollB)

	var legA models.Leg
	for _, leg := range op.Legs {
		if leg.BankrollID == bankrollA {
			legA = leg
		}
	}

	// Resolve leg A as won: bankroll A gains 100 x 2.0.
	require.NoError(t, tl.engine.UpdateLegStatus(tl.ctx, models.UpdateLegStatusRequest{
		UserID: tl.userID,
		LegID:  legA.ID,
		Status: models.StatusWon,
	}))
	assertDecimalEqual(t, "1100", tl.balance(t, bankrollA))

	// Deleting it refunds stake - result = 100 - 200 = -100.
	require.NoError(t, tl.engine.DeleteLeg(tl.ctx, tl.userID, legA.ID))
	assertDecimalEqual(t, "1000", tl.balance(t, bankrollA))
}

// TestDeleteLeg_NotFound tests unknown and foreign legs
func TestDeleteLeg_NotFound(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollID := tl.bankroll(t, "Bet365", "1000")

	opID, err := tl.engine.CreateOperation(tl.ctx, tl.simpleRequest(bankrollID, "100", "2.0"))
	require.NoError(t, err)
	op := tl.operation(t, opID)

	assert.ErrorIs(t, tl.engine.DeleteLeg(tl.ctx, tl.userID, uuid.New()), ErrNotFound)
	assert.ErrorIs(t, tl.engine.DeleteLeg(tl.ctx, uuid.New(), op.Legs[0].ID), ErrNotFound)
}
