package engine

import "errors"

// Errors returned by the engine. Every operation that returns one of these
// leaves the game untouched.
var (
	ErrInvalidCard        = errors.New("card outside the rank/suit domain")
	ErrInvalidSuit        = errors.New("invalid suit")
	ErrRegistrationClosed = errors.New("registration is closed")
	ErrTooManyPlayers     = errors.New("player cap reached")
	ErrNotEnoughPlayers   = errors.New("not enough players to start")
	ErrGameNotPlaying     = errors.New("game is not in progress")
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrPlayerOut          = errors.New("player has already gone out")
	ErrEmptyPlay          = errors.New("no cards to play")
	ErrMixedRanks         = errors.New("stacked cards must share one rank")
	ErrIllegalCard        = errors.New("card cannot be played now")
	ErrCardNotInHand      = errors.New("card is not in the player's hand")
)
