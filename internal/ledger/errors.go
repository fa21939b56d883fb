package ledger

import "errors"

// Failure kinds surfaced by the ledger engine. Handlers match these with
// errors.Is to choose a response; every mutating contract either commits
// all of its writes or none of them, so none of these imply partial state.
var (
	// ErrNotFound means an operation, leg, or bankroll id did not resolve
	// or is not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalidBankroll means a referenced bankroll id did not resolve to
	// a bankroll owned by the caller.
	ErrInvalidBankroll = errors.New("one or more bankrolls are invalid")

	// ErrInsufficientBalance means a stake exceeds the available bankroll
	// balance at check time.
	ErrInsufficientBalance = errors.New("insufficient bankroll balance")

	// ErrNotEditable means the operation or one of its legs is no longer
	// pending; settled operations are immutable.
	ErrNotEditable = errors.New("only pending operations can be edited")

	// ErrEmptyOperation means settlement was requested for an operation
	// with no legs.
	ErrEmptyOperation = errors.New("operation has no bets")

	// ErrMissingWinningLeg means a WON settlement of a single-winner
	// operation did not identify the winning leg.
	ErrMissingWinningLeg = errors.New("winning leg must be specified for arbitrage or matched operations")

	// ErrMissingReturn means a cashout did not carry an actual return.
	ErrMissingReturn = errors.New("actual return must be provided for cashout")

	// ErrMissingOdds means a MATCHED operation without combined odds has a
	// leg without its own odds.
	ErrMissingOdds = errors.New("provide odds for all legs or set combined odds")

	// ErrBankrollExists means the user already has a bankroll for that
	// bookmaker.
	ErrBankrollExists = errors.New("bankroll already exists")
)

// ValidationError reports malformed input rejected before any state is
// touched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError.
func Validationf(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
