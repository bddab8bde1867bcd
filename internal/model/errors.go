package model

import (
	"errors"
	"fmt"
)

// Error categories. Every concrete error below wraps exactly one of these.
var (
	// ErrValidation marks malformed input the caller can correct and retry
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a reference to a player that does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidState marks an operation that is not valid for the session state
	ErrInvalidState = errors.New("invalid state")
)

var (
	// Player errors
	ErrEmptyName      = fmt.Errorf("%w: player name is required", ErrValidation)
	ErrNameTooLong    = fmt.Errorf("%w: player name exceeds %d bytes", ErrValidation, MaxNameLength)
	ErrPlayerNotFound = fmt.Errorf("%w: player not found", ErrNotFound)

	// Round errors
	ErrInvalidChoice = fmt.Errorf("%w: choice must be rock, paper or scissors", ErrValidation)

	// Session errors
	ErrSamePlayer      = fmt.Errorf("%w: players must be different", ErrValidation)
	ErrPlayer1Locked   = fmt.Errorf("%w: player1 is locked to the previous winner", ErrValidation)
	ErrNoActiveMatch   = fmt.Errorf("%w: no active match, start a game first", ErrInvalidState)
	ErrMatchFinished   = fmt.Errorf("%w: match is finished, start a new game", ErrInvalidState)
	ErrSessionNotFound = fmt.Errorf("%w: session has not been stored", ErrNotFound)
)
