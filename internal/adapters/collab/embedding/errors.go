package embedding

import "errors"

// Sentinel errors for the embedding client.
var (
	ErrUnexpectedStatus = errors.New("embedding service returned unexpected status")
	ErrMalformedReply   = errors.New("embedding service returned a malformed reply")
)
