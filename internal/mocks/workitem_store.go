package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ideiatech/smartleader-api/internal/domain"
	"github.com/ideiatech/smartleader-api/internal/store"
)

// MockWorkItemStore implements store.WorkItemStore for testing
type MockWorkItemStore struct {
	// Function fields for customizable behavior
	CreateFn                 func(ctx context.Context, item *domain.WorkItem) error
	GetByIDFn                func(ctx context.Context, id uuid.UUID) (*domain.WorkItem, error)
	UpdateFn                 func(ctx context.Context, item *domain.WorkItem) error
	DeleteFn                 func(ctx context.Context, id uuid.UUID) error
	ListForAssigneeFn        func(ctx context.Context, personID uuid.UUID) ([]*domain.WorkItem, error)
	ListPendingForAssigneeFn func(ctx context.Context, personID uuid.UUID) ([]*domain.WorkItem, error)
	ListForAssigneeSinceFn   func(ctx context.Context, personID uuid.UUID, since time.Time) ([]*domain.WorkItem, error)

	// Data for default implementation
	Items map[uuid.UUID]*domain.WorkItem

	// UpdatedItems records every item passed to Update, in order
	UpdatedItems []*domain.WorkItem
}

// NewMockWorkItemStore creates a new mock store with initialized defaults
func NewMockWorkItemStore(items ...*domain.WorkItem) *MockWorkItemStore {
	m := &MockWorkItemStore{
		Items: make(map[uuid.UUID]*domain.WorkItem),
	}
	for _, item := range items {
		m.Items[item.ID] = item
	}
	return m
}

// Create implements the WorkItemStore interface
func (m *MockWorkItemStore) Create(ctx context.Context, item *domain.WorkItem) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, item)
	}

	m.Items[item.ID] = item
	return nil
}

// GetByID implements the WorkItemStore interface
func (m *MockWorkItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkItem, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	item, exists := m.Items[id]
	if !exists {
		return nil, store.ErrWorkItemNotFound
	}
	return item, nil
}

// Update implements the WorkItemStore interface
func (m *MockWorkItemStore) Update(ctx context.Context, item *domain.WorkItem) error {
	m.UpdatedItems = append(m.UpdatedItems, item)

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, item)
	}

	if _, exists := m.Items[item.ID]; !exists {
		return store.ErrWorkItemNotFound
	}
	m.Items[item.ID] = item
	return nil
}

// Delete implements the WorkItemStore interface
func (m *MockWorkItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Items[id]; !exists {
		return store.ErrWorkItemNotFound
	}
	delete(m.Items, id)
	return nil
}

// ListForAssignee implements the WorkItemStore interface
func (m *MockWorkItemStore) ListForAssignee(ctx context.Context, personID uuid.UUID) ([]*domain.WorkItem, error) {
	if m.ListForAssigneeFn != nil {
		return m.ListForAssigneeFn(ctx, personID)
	}

	items := m.itemsForAssignee(personID, nil)
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// ListPendingForAssignee implements the WorkItemStore interface
func (m *MockWorkItemStore) ListPendingForAssignee(ctx context.Context, personID uuid.UUID) ([]*domain.WorkItem, error) {
	if m.ListPendingForAssigneeFn != nil {
		return m.ListPendingForAssigneeFn(ctx, personID)
	}

	pending := domain.StatusPending
	items := m.itemsForAssignee(personID, &pending)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority.Rank() != items[j].Priority.Rank() {
			return items[i].Priority.Rank() > items[j].Priority.Rank()
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// ListForAssigneeSince implements the WorkItemStore interface
func (m *MockWorkItemStore) ListForAssigneeSince(ctx context.Context, personID uuid.UUID, since time.Time) ([]*domain.WorkItem, error) {
	if m.ListForAssigneeSinceFn != nil {
		return m.ListForAssigneeSinceFn(ctx, personID, since)
	}

	all := m.itemsForAssignee(personID, nil)
	items := make([]*domain.WorkItem, 0, len(all))
	for _, item := range all {
		if !item.UpdatedAt.Before(since) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	return items, nil
}

// WithTx implements the WorkItemStore interface. The mock has no real
// transaction state, so it returns itself.
func (m *MockWorkItemStore) WithTx(tx *sql.Tx) store.WorkItemStore {
	return m
}

func (m *MockWorkItemStore) itemsForAssignee(personID uuid.UUID, status *domain.WorkItemStatus) []*domain.WorkItem {
	items := make([]*domain.WorkItem, 0)
	for _, item := range m.Items {
		if item.AssigneeID == nil || *item.AssigneeID != personID {
			continue
		}
		if status != nil && item.Status != *status {
			continue
		}
		items = append(items, item)
	}
	return items
}
