package oracle

import "errors"

// Common oracle errors. The engine treats all of them the same way: a
// single failure triggers the deterministic fallback, never a retry.
var (
	// ErrInvalidConfig indicates the oracle client was misconfigured.
	ErrInvalidConfig = errors.New("invalid oracle configuration")

	// ErrEmptyPrompt indicates an empty prompt was submitted.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrUnavailable indicates the oracle failed to produce a reply
	// (network failure, API error, empty response).
	ErrUnavailable = errors.New("oracle unavailable")

	// ErrContentBlocked indicates the oracle refused the prompt
	// (e.g., safety filters).
	ErrContentBlocked = errors.New("oracle blocked the prompt")

	// ErrMalformedReply indicates the oracle replied but the reply could
	// not be parsed or validated. Treated identically to ErrUnavailable by
	// the engine.
	ErrMalformedReply = errors.New("malformed oracle reply")
)
