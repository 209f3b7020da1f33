// Package oracle defines the contract between the assignment engine and
// the external recommendation oracle, a natural-language reasoning service
// treated as untrusted and fallible. The engine owns prompt construction
// and reply parsing; implementations (internal/platform/gemini) own only
// the transport.
package oracle

import "context"

// Generator produces a free-text reply for a structured prompt.
//
// Implementations may be slow or unavailable; callers must be prepared to
// fall back. Calls are blocking and must never be made while holding a
// database transaction.
type Generator interface {
	// Generate sends the prompt to the oracle and returns its raw text
	// reply. Returns ErrUnavailable (possibly wrapped) when the oracle
	// cannot produce a reply.
	Generate(ctx context.Context, prompt string) (string, error)
}
