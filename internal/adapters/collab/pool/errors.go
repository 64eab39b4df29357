package pool

import "errors"

// Sentinel errors returned by Do.
var (
	ErrPoolBusy = errors.New("collaborator pool queue is full")
	ErrStopped  = errors.New("collaborator pool stopped")
)
