package service

import "errors"

// Sentinel errors returned by Service.Score.
var (
	ErrNotStarted = errors.New("service not started")
	ErrOverloaded = errors.New("collaborators are overloaded")
)
