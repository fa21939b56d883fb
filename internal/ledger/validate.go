package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-ledger-service/internal/models"
)

var one = decimal.NewFromInt(1)

// validateCreate checks a creation request exhaustively at the boundary,
// with type-specific required fields per operation type. Nothing is
// persisted before this passes.
func validateCreate(req models.CreateOperationRequest) error {
	if req.UserID == uuid.Nil {
		return Validationf("user id is required")
	}
	if !req.Type.Valid() {
		return Validationf("unknown operation type")
	}
	if len(req.Legs) == 0 {
		return Validationf("at least one leg is required")
	}

	for _, leg := range req.Legs {
		if err := validateLegCommon(leg.BankrollID, leg.MatchName, leg.Selection, leg.EventDate.IsZero()); err != nil {
			return err
		}
	}

	switch req.Type {
	case models.OperationSimple:
		if len(req.Legs) != 1 {
			return Validationf("a simple operation has exactly one leg")
		}
		return validateStakedLegs(req.Legs)

	case models.OperationArbitrage:
		if len(req.Legs) < 2 {
			return Validationf("a multi-leg operation requires at least two legs")
		}
		return validateStakedLegs(req.Legs)

	case models.OperationMatched:
		return validateMatched(req)
	}
	return nil
}

// validateStakedLegs enforces the SIMPLE/ARBITRAGE leg shape: every leg
// carries its own odds above 1 and a positive stake.
func validateStakedLegs(legs []models.NewLeg) error {
	for _, leg := range legs {
		if leg.Odds == nil || leg.Odds.LessThanOrEqual(one) {
			return Validationf("odds must be greater than 1.0")
		}
		if !leg.Stake.IsPositive() {
			return Validationf("stake must be greater than zero")
		}
	}
	return nil
}

// validateMatched enforces the MATCHED shape: stakes are zero or more
// with at least one positive, and every leg needs its own odds unless a
// combined odds override is set.
func validateMatched(req models.CreateOperationRequest) error {
	if req.MatchedOdds != nil && req.MatchedOdds.LessThanOrEqual(one) {
		return Validationf("odds must be greater than 1.0")
	}

	staked := false
	for _, leg := range req.Legs {
		if leg.Stake.IsNegative() {
			return Validationf("stake must be zero or greater")
		}
		if leg.Stake.IsPositive() {
			staked = true
		}
		if leg.Odds != nil && leg.Odds.LessThanOrEqual(one) {
			return Validationf("odds must be greater than 1.0")
		}
		if req.MatchedOdds == nil && leg.Odds == nil {
			return ErrMissingOdds
		}
	}
	if !staked {
		return Validationf("provide a stake for at least one leg")
	}
	return nil
}

// validateEdit checks an edit request; legs are matched to existing legs
// by id inside the unit of work.
func validateEdit(req models.EditOperationRequest) error {
	if req.UserID == uuid.Nil {
		return Validationf("user id is required")
	}
	if req.OperationID == uuid.Nil {
		return Validationf("operation id is required")
	}
	if len(req.Legs) == 0 {
		return Validationf("at least one leg is required")
	}
	for _, leg := range req.Legs {
		if leg.ID == uuid.Nil {
			return Validationf("leg id is required")
		}
		if err := validateLegCommon(leg.BankrollID, leg.MatchName, leg.Selection, leg.EventDate.IsZero()); err != nil {
			return err
		}
		if leg.Odds.LessThanOrEqual(one) {
			return Validationf("odds must be greater than 1.0")
		}
		if leg.Stake.IsNegative() {
			return Validationf("stake must be zero or greater")
		}
	}
	return nil
}

func validateLegCommon(bankrollID uuid.UUID, matchName, selection string, dateZero bool) error {
	if bankrollID == uuid.Nil {
		return Validationf("select a bankroll for each leg")
	}
	if len(matchName) < 2 {
		return Validationf("match name is required")
	}
	if len(selection) < 2 {
		return Validationf("selection is required")
	}
	if dateZero {
		return Validationf("event date is required")
	}
	return nil
}
