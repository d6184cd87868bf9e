package model

import "errors"

// Input errors, fixable by the caller
var (
	ErrEmptySelection      = errors.New("no positions selected")
	ErrTooManyPositions    = errors.New("too many positions selected")
	ErrMissingGameHandle   = errors.New("game handle is required for every position")
	ErrDuplicateGameHandle = errors.New("game handle already registered in tournament")
	ErrInvalidPosition     = errors.New("invalid position for match type")
	ErrInvalidSlot         = errors.New("invalid slot number")
	ErrDuplicatePick       = errors.New("position selected more than once")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrDuplicateIntent     = errors.New("intent id already used by another user")
)

// State errors, retry after refreshing the slot grid
var (
	ErrPositionAlreadyTaken = errors.New("position already taken")
	ErrConcurrentConflict   = errors.New("concurrent booking conflict")
	ErrTournamentClosed     = errors.New("tournament is not open for booking")
	ErrTournamentFull       = errors.New("tournament is full")
)

// Resource errors
var ErrInsufficientFunds = errors.New("insufficient funds")

var (
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrDuplicateTransaction is returned by the store when a transaction id
	// is inserted twice.
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrIntentExpired        = errors.New("booking intent expired")
)

// failureCodes maps booking failures to the code stored on a rejected intent.
var failureCodes = []struct {
	err  error
	code string
}{
	{ErrEmptySelection, "EMPTY_SELECTION"},
	{ErrTooManyPositions, "TOO_MANY_POSITIONS"},
	{ErrMissingGameHandle, "MISSING_GAME_HANDLE"},
	{ErrDuplicateGameHandle, "DUPLICATE_GAME_HANDLE"},
	{ErrInvalidPosition, "INVALID_POSITION"},
	{ErrInvalidSlot, "INVALID_SLOT"},
	{ErrDuplicatePick, "DUPLICATE_PICK"},
	{ErrPositionAlreadyTaken, "POSITION_ALREADY_TAKEN"},
	{ErrConcurrentConflict, "CONCURRENT_CONFLICT"},
	{ErrTournamentClosed, "TOURNAMENT_CLOSED"},
	{ErrTournamentFull, "TOURNAMENT_FULL"},
	{ErrInsufficientFunds, "INSUFFICIENT_FUNDS"},
	{ErrTournamentNotFound, "TOURNAMENT_NOT_FOUND"},
	{ErrAccountNotFound, "ACCOUNT_NOT_FOUND"},
	{ErrIntentExpired, "INTENT_EXPIRED"},
}

// FailureCode returns the stable code for a booking failure, or "" if err is
// not a known booking failure.
func FailureCode(err error) string {
	for _, fc := range failureCodes {
		if errors.Is(err, fc.err) {
			return fc.code
		}
	}
	return ""
}

// FailureFromCode is the inverse of FailureCode.
func FailureFromCode(code string) error {
	for _, fc := range failureCodes {
		if fc.code == code {
			return fc.err
		}
	}
	return nil
}
