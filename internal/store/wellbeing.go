package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ideiatech/smartleader-api/internal/domain"
)

// WellbeingStore defines the interface for wellbeing check persistence.
//
// Checks are immutable once created, except for the AI-derived fields,
// which UpdateAIFields may back-fill after creation.
type WellbeingStore interface {
	// Create saves a new wellbeing check to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	// Returns validation errors from the domain WellbeingCheck if data is
	// invalid.
	Create(ctx context.Context, check *domain.WellbeingCheck) error

	// GetByID retrieves a wellbeing check by its unique ID.
	// Returns ErrWellbeingCheckNotFound if the check does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WellbeingCheck, error)

	// GetLatestForPerson retrieves the person's most recent check.
	// Returns ErrWellbeingCheckNotFound if the person has no checks.
	GetLatestForPerson(ctx context.Context, personID uuid.UUID) (*domain.WellbeingCheck, error)

	// ListForPersonSince retrieves the person's checks created at or after
	// since, in chronological order. An empty slice is a valid result.
	ListForPersonSince(ctx context.Context, personID uuid.UUID, since time.Time) ([]*domain.WellbeingCheck, error)

	// UpdateAIFields back-fills the AI-derived fields of an existing check.
	// Returns ErrWellbeingCheckNotFound if the check does not exist.
	UpdateAIFields(ctx context.Context, id uuid.UUID, sentimentScore, burnoutRisk int, recommendations json.RawMessage) error

	// WithTx returns a new WellbeingStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) WellbeingStore
}
