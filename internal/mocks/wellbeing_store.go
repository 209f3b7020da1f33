package mocks

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ideiatech/smartleader-api/internal/domain"
	"github.com/ideiatech/smartleader-api/internal/store"
)

// AIFieldsUpdate records one UpdateAIFields call for verification.
type AIFieldsUpdate struct {
	CheckID         uuid.UUID
	SentimentScore  int
	BurnoutRisk     int
	Recommendations json.RawMessage
}

// MockWellbeingStore implements store.WellbeingStore for testing
type MockWellbeingStore struct {
	// Function fields for customizable behavior
	CreateFn             func(ctx context.Context, check *domain.WellbeingCheck) error
	GetByIDFn            func(ctx context.Context, id uuid.UUID) (*domain.WellbeingCheck, error)
	GetLatestForPersonFn func(ctx context.Context, personID uuid.UUID) (*domain.WellbeingCheck, error)
	ListForPersonSinceFn func(ctx context.Context, personID uuid.UUID, since time.Time) ([]*domain.WellbeingCheck, error)
	UpdateAIFieldsFn     func(ctx context.Context, id uuid.UUID, sentimentScore, burnoutRisk int, recommendations json.RawMessage) error

	// Data for default implementation
	Checks map[uuid.UUID]*domain.WellbeingCheck

	// AIFieldsUpdates records every UpdateAIFields call, in order
	AIFieldsUpdates []AIFieldsUpdate
}

// NewMockWellbeingStore creates a new mock store with initialized defaults
func NewMockWellbeingStore(checks ...*domain.WellbeingCheck) *MockWellbeingStore {
	m := &MockWellbeingStore{
		Checks: make(map[uuid.UUID]*domain.WellbeingCheck),
	}
	for _, check := range checks {
		m.Checks[check.ID] = check
	}
	return m
}

// Create implements the WellbeingStore interface
func (m *MockWellbeingStore) Create(ctx context.Context, check *domain.WellbeingCheck) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, check)
	}

	m.Checks[check.ID] = check
	return nil
}

// GetByID implements the WellbeingStore interface
func (m *MockWellbeingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.WellbeingCheck, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	check, exists := m.Checks[id]
	if !exists {
		return nil, store.ErrWellbeingCheckNotFound
	}
	return check, nil
}

// GetLatestForPerson implements the WellbeingStore interface
func (m *MockWellbeingStore) GetLatestForPerson(ctx context.Context, personID uuid.UUID) (*domain.WellbeingCheck, error) {
	if m.GetLatestForPersonFn != nil {
		return m.GetLatestForPersonFn(ctx, personID)
	}

	var latest *domain.WellbeingCheck
	for _, check := range m.Checks {
		if check.PersonID != personID {
			continue
		}
		if latest == nil || check.CreatedAt.After(latest.CreatedAt) {
			latest = check
		}
	}
	if latest == nil {
		return nil, store.ErrWellbeingCheckNotFound
	}
	return latest, nil
}

// ListForPersonSince implements the WellbeingStore interface
func (m *MockWellbeingStore) ListForPersonSince(ctx context.Context, personID uuid.UUID, since time.Time) ([]*domain.WellbeingCheck, error) {
	if m.ListForPersonSinceFn != nil {
		return m.ListForPersonSinceFn(ctx, personID, since)
	}

	checks := make([]*domain.WellbeingCheck, 0)
	for _, check := range m.Checks {
		if check.PersonID == personID && !check.CreatedAt.Before(since) {
			checks = append(checks, check)
		}
	}
	sort.Slice(checks, func(i, j int) bool {
		return checks[i].CreatedAt.Before(checks[j].CreatedAt)
	})
	return checks, nil
}

// UpdateAIFields implements the WellbeingStore interface
func (m *MockWellbeingStore) UpdateAIFields(
	ctx context.Context,
	id uuid.UUID,
	sentimentScore, burnoutRisk int,
	recommendations json.RawMessage,
) error {
	m.AIFieldsUpdates = append(m.AIFieldsUpdates, AIFieldsUpdate{
		CheckID:         id,
		SentimentScore:  sentimentScore,
		BurnoutRisk:     burnoutRisk,
		Recommendations: recommendations,
	})

	if m.UpdateAIFieldsFn != nil {
		return m.UpdateAIFieldsFn(ctx, id, sentimentScore, burnoutRisk, recommendations)
	}

	check, exists := m.Checks[id]
	if !exists {
		return store.ErrWellbeingCheckNotFound
	}
	check.AISentimentScore = &sentimentScore
	check.AIBurnoutRisk = &burnoutRisk
	check.AIRecommendations = recommendations
	return nil
}

// WithTx implements the WellbeingStore interface. The mock has no real
// transaction state, so it returns itself.
func (m *MockWellbeingStore) WithTx(tx *sql.Tx) store.WellbeingStore {
	return m
}
