package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ideiatech/smartleader-api/internal/domain"
)

// PersonStore defines the interface for person data persistence.
type PersonStore interface {
	// Create saves a new person to the store.
	// Returns ErrEmailExists or ErrUsernameExists on unique violations.
	// Returns validation errors from the domain Person if data is invalid.
	Create(ctx context.Context, person *domain.Person) error

	// GetByID retrieves a person by their unique ID.
	// Returns ErrPersonNotFound if the person does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)

	// GetByEmail retrieves a person by their email address.
	// Returns ErrPersonNotFound if the person does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Person, error)

	// Update modifies an existing person's details, including the load
	// counter. Returns ErrPersonNotFound if the person does not exist.
	// Returns validation errors from the domain Person if data is invalid.
	Update(ctx context.Context, person *domain.Person) error

	// Delete removes a person from the store by their ID.
	// Returns ErrPersonNotFound if the person does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListTeam retrieves the active people whose manager is managerID.
	// An empty slice is a valid result.
	ListTeam(ctx context.Context, managerID uuid.UUID) ([]*domain.Person, error)

	// ListActiveContributors retrieves active people with the contributor
	// role, optionally scoped to one manager's team when managerID is
	// non-nil. An empty slice is a valid result.
	ListActiveContributors(ctx context.Context, managerID *uuid.UUID) ([]*domain.Person, error)

	// ListSkillNames returns the names of the person's skills in catalog
	// order. An empty slice is a valid result.
	ListSkillNames(ctx context.Context, personID uuid.UUID) ([]string, error)

	// WithTx returns a new PersonStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) PersonStore
}
