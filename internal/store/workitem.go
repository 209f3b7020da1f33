package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/ideiatech/smartleader-api/internal/domain"
)

// WorkItemStore defines the interface for work item data persistence.
type WorkItemStore interface {
	// Create saves a new work item to the store.
	// Returns ErrInvalidEntity if the creator or assignee does not exist.
	// Returns validation errors from the domain WorkItem if data is invalid.
	Create(ctx context.Context, item *domain.WorkItem) error

	// GetByID retrieves a work item by its unique ID.
	// Returns ErrWorkItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkItem, error)

	// Update modifies an existing work item, including assignee and AI
	// provenance fields. Returns ErrWorkItemNotFound if the item does not
	// exist.
	Update(ctx context.Context, item *domain.WorkItem) error

	// Delete removes a work item from the store by its ID.
	// Returns ErrWorkItemNotFound if the item does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListForAssignee retrieves the work items currently assigned to the
	// given person, newest first. An empty slice is a valid result.
	ListForAssignee(ctx context.Context, personID uuid.UUID) ([]*domain.WorkItem, error)

	// ListPendingForAssignee retrieves the pending work items assigned to
	// the given person, ordered by descending priority. An empty slice is a
	// valid result.
	ListPendingForAssignee(ctx context.Context, personID uuid.UUID) ([]*domain.WorkItem, error)

	// ListForAssigneeSince retrieves the work items assigned to the given
	// person that were updated at or after since, newest first.
	ListForAssigneeSince(ctx context.Context, personID uuid.UUID, since time.Time) ([]*domain.WorkItem, error)

	// WithTx returns a new WorkItemStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) WorkItemStore
}
