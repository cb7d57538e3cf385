package core

import "github.com/pkg/errors"

var (
	// ErrUnknownState is returned when a lookup names a state that is
	// not a key of the table.
	ErrUnknownState = errors.New("unknown state")
	// ErrNoActions is returned when an action is requested for a
	// terminal state.
	ErrNoActions = errors.New("state has no actions")
)
