package scoring

import "errors"

// Sentinel kinds for scoring errors. These allow errors.Is from callers.
var (
	// ErrInputTooShort is returned before any scorer runs when the transcript
	// has fewer than the minimum number of words.
	ErrInputTooShort = errors.New("transcript is too short")

	// ErrCollaborator marks a malformed answer from an embedding or grammar
	// collaborator that otherwise reported success.
	ErrCollaborator = errors.New("collaborator returned an invalid response")
)
