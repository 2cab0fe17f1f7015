package engine

import "errors"

// ErrNoAgent is returned when a match seat has no agent.
var ErrNoAgent = errors.New("missing agent")
