package game

import "errors"

var (
	// ErrRange reports an action value outside its kind's code block, or a
	// collection whose size does not match the game constants.
	ErrRange = errors.New("value out of range")
	// ErrPhase reports an operation invoked in the wrong phase.
	ErrPhase = errors.New("wrong phase")
	// ErrCapacity reports an append past a fixed-size buffer.
	ErrCapacity = errors.New("buffer full")
	ErrKind     = errors.New("action kind mismatch")
	ErrIllegal  = errors.New("illegal action")
	ErrNoTaker  = errors.New("hand has no taker")
)
