package engine

import "errors"

// Sentinel errors returned by the data and action layers. Callers match
// with errors.Is; wrapped messages carry the offending id or index.
var (
	// ErrUnknownCard is returned when a card id or name is not in the database.
	ErrUnknownCard = errors.New("unknown card")

	// ErrInvalidDeck is returned when a deck list violates construction rules.
	ErrInvalidDeck = errors.New("invalid deck")

	// ErrIllegalAction is returned when an action index is not legal in the
	// current state. The state is left unchanged.
	ErrIllegalAction = errors.New("illegal action")
)
