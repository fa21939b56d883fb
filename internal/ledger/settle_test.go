package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/bet-ledger-service/internal/models"
)

// arbitrageOperation creates a two-leg arbitrage drawing on two bankrolls
// and returns the operation with its legs ordered by selection.
func (tl *testLedger) arbitrageOperation(t *testing.T, bankrollA, bankrollB uuid.UUID) models.Operation {
	t.Helper()

	opID, err := tl.engine.CreateOperation(tl.ctx, models.CreateOperationRequest{
		UserID: tl.userID,
		Type:   models.OperationArbitrage,
		Legs: []models.NewLeg{
			{
				BankrollID: bankrollA,
				Stake:      d("100"),
				Odds:       dp("2.0"),
				Selection:  "Home win",
				MatchName:  "Arsenal vs Chelsea",
				EventDate:  eventDate(),
			},
			{
				BankrollID: bankrollB,
				Stake:      d("120"),
				Odds:       dp("1.8"),
				Selection:  "Away win",
				MatchName:  "Arsenal vs Chelsea",
				EventDate:  eventDate(),
			},
		},
	})
	require.NoError(t, err)
	return tl.operation(t, opID)
}

// TestSettleOperation_SimpleWon tests the worked single-bet lifecycle:
// 1000 -> 900 on creation -> 1100 on a won 100 @ 2.0
func TestSettleOperation_SimpleWon(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollID := tl.bankroll(t, "Bet365", "1000")

	opID, err := tl.engine.CreateOperation(tl.ctx, tl.simpleRequest(bankrollID, "100", "2.0"))
	require.NoError(t, err)
	assertDecimalEqual(t, "900", tl.balance(t, bankrollID))

	require.NoError(t, tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:      tl.userID,
		OperationID: opID,
		Status:      models.StatusWon,
	}))

	assertDecimalEqual(t, "1100", tl.balance(t, bankrollID))

	op := tl.operation(t, opID)
	assert.Equal(t, models.StatusWon, op.Status)
	require.NotNil(t, op.ActualReturn)
	assertDecimalEqual(t, "200", *op.ActualReturn)
	require.NotNil(t, op.ROI)
	assertDecimalEqual(t, "1", *op.ROI)

	require.Len(t, op.Legs, 1)
	assert.Equal(t, models.StatusWon, op.Legs[0].Status)
	require.NotNil(t, op.Legs[0].ResultValue)
	assertDecimalEqual(t, "200", *op.Legs[0].ResultValue)
}

// TestSettleOperation_SimpleLost tests that a loss moves no money back
func TestSettleOperation_SimpleLost(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollID := tl.bankroll(t, "Bet365", "1000")

	opID, err := tl.engine.CreateOperation(tl.ctx, tl.simpleRequest(bankrollID, "100", "2.0"))
	require.NoError(t, err)

	require.NoError(t, tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:      tl.userID,
		OperationID: opID,
		Status:      models.StatusLost,
	}))

	assertDecimalEqual(t, "900", tl.balance(t, bankrollID))

	op := tl.operation(t, opID)
	assert.Equal(t, models.StatusLost, op.Status)
	require.NotNil(t, op.ActualReturn)
	assertDecimalEqual(t, "0", *op.ActualReturn)
	require.NotNil(t, op.ROI)
	assertDecimalEqual(t, "-1", *op.ROI)
}

// TestSettleOperation_Idempotent tests that re-settling with identical
// inputs moves no money
func TestSettleOperation_Idempotent(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollID := tl.bankroll(t, "Bet365", "1000")

	opID, err := tl.engine.CreateOperation(tl.ctx, tl.simpleRequest(bankrollID, "100", "2.0"))
	require.NoError(t, err)

	req := models.SettleOperationRequest{
		UserID:      tl.userID,
		OperationID: opID,
		Status:      models.StatusWon,
	}
	require.NoError(t, tl.engine.SettleOperation(tl.ctx, req))
	require.NoError(t, tl.engine.SettleOperation(tl.ctx, req))
	require.NoError(t, tl.engine.SettleOperation(tl.ctx, req))

	assertDecimalEqual(t, "1100", tl.balance(t, bankrollID))
}

// TestSettleOperation_Resettle tests that changing a settlement applies
// only the delta between the old and new results
func TestSettleOperation_Resettle(t *testing.T) {
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

	// Correcting WON to VOID claws the winnings back and refunds the stake.
	require.NoError(t, tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:      tl.userID,
		OperationID: opID,
		Status:      models.StatusVoid,
	}))
	assertDecimalEqual(t, "1000", tl.balance(t, bankrollID))

	op := tl.operation(t, opID)
	assert.Equal(t, models.StatusVoid, op.Status)
	require.NotNil(t, op.ActualReturn)
	assertDecimalEqual(t, "100", *op.ActualReturn)
	require.NotNil(t, op.ROI)
	assertDecimalEqual(t, "0", *op.ROI)
}

// TestSettleOperation_ArbitrageSingleWinner tests exclusive settlement:
// the named leg wins at its own odds, every other leg is lost
func TestSettleOperation_ArbitrageSingleWinner(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollA := tl.bankroll(t, "Bet365", "1000")
	bankrollB := tl.bankroll(t, "Pinnacle", "1000")

	op := tl.arbitrageOperation(t, bankrollA, bankrollB)
	assertDecimalEqual(t, "900", tl.balance(t, bankrollA))
	assertDecimalEqual(t, "880", tl.balance(t, bankrollB))

	var winner, loser models.Leg
	for _, leg := range op.Legs {
		if leg.BankrollID == bankrollA {
			winner = leg
		} else {
			loser = leg
		}
	}

	require.NoError(t, tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:       tl.userID,
		OperationID:  op.ID,
		Status:       models.StatusWon,
		WinningLegID: &winner.ID,
	}))

	// Winner returns 100 x 2.0 to its bankroll; the loser's stake is gone.
	assertDecimalEqual(t, "1100", tl.balance(t, bankrollA))
	assertDecimalEqual(t, "880", tl.balance(t, bankrollB))

	settled := tl.operation(t, op.ID)
	assert.Equal(t, models.StatusWon, settled.Status)
	require.NotNil(t, settled.ActualReturn)
	assertDecimalEqual(t, "200", *settled.ActualReturn)

	for _, leg := range settled.Legs {
		switch leg.ID {
		case winner.ID:
			assert.Equal(t, models.StatusWon, leg.Status)
			assertDecimalEqual(t, "200", leg.ResultOrZero())
		case loser.ID:
			assert.Equal(t, models.StatusLost, leg.Status)
			assertDecimalEqual(t, "0", leg.ResultOrZero())
		}
	}
}

// TestSettleOperation_ArbitrageMissingWinner tests that WON settlement of
// a single-winner operation requires a valid winning leg id
func TestSettleOperation_ArbitrageMissingWinner(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollA := tl.bankroll(t, "Bet365", "1000")
	bankrollB := tl.bankroll(t, "Pinnacle", "1000")

	op := tl.arbitrageOperation(t, bankrollA, bankrollB)

	err := tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:      tl.userID,
		OperationID: op.ID,
		Status:      models.StatusWon,
	})
	assert.ErrorIs(t, err, ErrMissingWinningLeg)

	// A leg id from another operation is rejected the same way, and the
	// failed settlement leaves balances untouched.
	bogus := uuid.New()
	err = tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:       tl.userID,
		OperationID:  op.ID,
		Status:       models.StatusWon,
		WinningLegID: &bogus,
	})
	assert.ErrorIs(t, err, ErrMissingWinningLeg)

	assertDecimalEqual(t, "900", tl.balance(t, bankrollA))
	assertDecimalEqual(t, "880", tl.balance(t, bankrollB))
	assert.Equal(t, models.StatusPending, tl.operation(t, op.ID).Status)
}

// TestSettleOperation_Void tests that voiding returns every stake
func TestSettleOperation_Void(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollA := tl.bankroll(t, "Bet365", "1000")
	bankrollB := tl.bankroll(t, "Pinnacle", "1000")

	op := tl.arbitrageOperation(t, bankrollA, bankrollB)

	require.NoError(t, tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:      tl.userID,
		OperationID: op.ID,
		Status:      models.StatusVoid,
	}))

	assertDecimalEqual(t, "1000", tl.balance(t, bankrollA))
	assertDecimalEqual(t, "1000", tl.balance(t, bankrollB))

	settled := tl.operation(t, op.ID)
	assert.Equal(t, models.StatusVoid, settled.Status)
	require.NotNil(t, settled.ROI)
	assertDecimalEqual(t, "0", *settled.ROI)
}

// TestSettleOperation_CashoutProportional tests that a cashout return is
// split across legs by stake share
func TestSettleOperation_CashoutProportional(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollA := tl.bankroll(t, "Bet365", "1000")
	bankrollB := tl.bankroll(t, "Pinnacle", "1000")

	opID, err := tl.engine.CreateOperation(tl.ctx, models.CreateOperationRequest{
		UserID: tl.userID,
		Type:   models.OperationArbitrage,
		Legs: []models.NewLeg{
			{
				BankrollID: bankrollA,
				Stake:      d("60"),
				Odds:       dp("2.5"),
				Selection:  "Home win",
				MatchName:  "Arsenal vs Chelsea",
				EventDate:  eventDate(),
			},
			{
				BankrollID: bankrollB,
				Stake:      d("40"),
				Odds:       dp("3.5"),
				Selection:  "Away win",
				MatchName:  "Arsenal vs Chelsea",
				EventDate:  eventDate(),
			},
		},
	})
	require.NoError(t, err)

	require.NoError(t, tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:       tl.userID,
		OperationID:  opID,
		Status:       models.StatusCashedOut,
		ActualReturn: dp("150"),
	}))

	// 150 split 60:40 -> 90 and 60.
	assertDecimalEqual(t, "1030", tl.balance(t, bankrollA))
	assertDecimalEqual(t, "1020", tl.balance(t, bankrollB))

	op := tl.operation(t, opID)
	assert.Equal(t, models.StatusCashedOut, op.Status)
	require.NotNil(t, op.ActualReturn)
	assertDecimalEqual(t, "150", *op.ActualReturn)
	require.NotNil(t, op.ROI)
	assertDecimalEqual(t, "0.5", *op.ROI)

	for _, leg := range op.Legs {
		assert.Equal(t, models.StatusCashedOut, leg.Status)
		if leg.BankrollID == bankrollA {
			assertDecimalEqual(t, "90", leg.ResultOrZero())
		} else {
			assertDecimalEqual(t, "60", leg.ResultOrZero())
		}
	}
}

// TestSettleOperation_CashoutRequiresReturn tests the CASHED_OUT input rule
func TestSettleOperation_CashoutRequiresReturn(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollID := tl.bankroll(t, "Bet365", "1000")

	opID, err := tl.engine.CreateOperation(tl.ctx, tl.simpleRequest(bankrollID, "100", "2.0"))
	require.NoError(t, err)

	err = tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:      tl.userID,
		OperationID: opID,
		Status:      models.StatusCashedOut,
	})
	assert.ErrorIs(t, err, ErrMissingReturn)

	err = tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:       tl.userID,
		OperationID:  opID,
		Status:       models.StatusCashedOut,
		ActualReturn: dp("-10"),
	})
	assert.ErrorIs(t, err, ErrMissingReturn)

	// Zero is a legitimate cashout: everything lost at cashout time.
	require.NoError(t, tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:       tl.userID,
		OperationID:  opID,
		Status:       models.StatusCashedOut,
		ActualReturn: dp("0"),
	}))
	assertDecimalEqual(t, "900", tl.balance(t, bankrollID))
}

// TestSettleOperation_InvalidStatus tests rejection of non-terminal statuses
func TestSettleOperation_InvalidStatus(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollID := tl.bankroll(t, "Bet365", "1000")

	opID, err := tl.engine.CreateOperation(tl.ctx, tl.simpleRequest(bankrollID, "100", "2.0"))
	require.NoError(t, err)

	err = tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:      tl.userID,
		OperationID: opID,
		Status:      models.StatusPending,
	})
	assert.True(t, IsValidation(err))

	err = tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:      tl.userID,
		OperationID: opID,
		Status:      "SETTLED",
	})
	assert.True(t, IsValidation(err))
}

// TestSettleOperation_NotFound tests unknown and foreign operations
func TestSettleOperation_NotFound(t *testing.T) {
	tl := setupTestLedger(t)
	bankrollID := tl.bankroll(t, "Bet365", "1000")

	opID, err := tl.engine.CreateOperation(tl.ctx, tl.simpleRequest(bankrollID, "100", "2.0"))
	require.NoError(t, err)

	err = tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:      tl.userID,
		OperationID: uuid.New(),
		Status:      models.StatusWon,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// Another user cannot settle this operation.
	err = tl.engine.SettleOperation(tl.ctx, models.SettleOperationRequest{
		UserID:      uuid.New(),
		OperationID: opID,
		Status:      models.StatusWon,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
