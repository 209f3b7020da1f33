// Package store defines the persistence interfaces the engine depends on,
// together with the shared error taxonomy and transaction helpers.
// Implementations live in internal/platform.
package store
