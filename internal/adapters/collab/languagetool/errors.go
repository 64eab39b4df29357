package languagetool

import "errors"

// Sentinel errors for the LanguageTool client.
var (
	ErrUnexpectedStatus = errors.New("languagetool returned unexpected status")
	ErrMalformedReply   = errors.New("languagetool returned a malformed reply")
)
