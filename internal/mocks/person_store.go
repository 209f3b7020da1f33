package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/ideiatech/smartleader-api/internal/domain"
	"github.com/ideiatech/smartleader-api/internal/store"
)

// MockPersonStore implements store.PersonStore for testing
type MockPersonStore struct {
	// Function fields for customizable behavior
	CreateFn                 func(ctx context.Context, person *domain.Person) error
	GetByIDFn                func(ctx context.Context, id uuid.UUID) (*domain.Person, error)
	GetByEmailFn             func(ctx context.Context, email string) (*domain.Person, error)
	UpdateFn                 func(ctx context.Context, person *domain.Person) error
	DeleteFn                 func(ctx context.Context, id uuid.UUID) error
	ListTeamFn               func(ctx context.Context, managerID uuid.UUID) ([]*domain.Person, error)
	ListActiveContributorsFn func(ctx context.Context, managerID *uuid.UUID) ([]*domain.Person, error)
	ListSkillNamesFn         func(ctx context.Context, personID uuid.UUID) ([]string, error)

	// Data for default implementation
	People map[uuid.UUID]*domain.Person
	Skills map[uuid.UUID][]string

	// UpdatedPeople records every person passed to Update, in order
	UpdatedPeople []*domain.Person
}

// NewMockPersonStore creates a new mock store with initialized defaults
func NewMockPersonStore(people ...*domain.Person) *MockPersonStore {
	m := &MockPersonStore{
		People: make(map[uuid.UUID]*domain.Person),
		Skills: make(map[uuid.UUID][]string),
	}
	for _, p := range people {
		m.People[p.ID] = p
	}
	return m
}

// Create implements the PersonStore interface
func (m *MockPersonStore) Create(ctx context.Context, person *domain.Person) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, person)
	}

	for _, existing := range m.People {
		if existing.Email == person.Email {
			return store.ErrEmailExists
		}
		if existing.Username == person.Username {
			return store.ErrUsernameExists
		}
	}

	m.People[person.ID] = person
	return nil
}

// GetByID implements the PersonStore interface
func (m *MockPersonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	person, exists := m.People[id]
	if !exists {
		return nil, store.ErrPersonNotFound
	}
	return person, nil
}

// GetByEmail implements the PersonStore interface
func (m *MockPersonStore) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	for _, person := range m.People {
		if person.Email == email {
			return person, nil
		}
	}
	return nil, store.ErrPersonNotFound
}

// Update implements the PersonStore interface
func (m *MockPersonStore) Update(ctx context.Context, person *domain.Person) error {
	m.UpdatedPeople = append(m.UpdatedPeople, person)

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, person)
	}

	if _, exists := m.People[person.ID]; !exists {
		return store.ErrPersonNotFound
	}
	m.People[person.ID] = person
	return nil
}

// Delete implements the PersonStore interface
func (m *MockPersonStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.People[id]; !exists {
		return store.ErrPersonNotFound
	}
	delete(m.People, id)
	return nil
}

// ListTeam implements the PersonStore interface
func (m *MockPersonStore) ListTeam(ctx context.Context, managerID uuid.UUID) ([]*domain.Person, error) {
	if m.ListTeamFn != nil {
		return m.ListTeamFn(ctx, managerID)
	}

	team := make([]*domain.Person, 0)
	for _, person := range m.People {
		if person.IsActive && person.ManagerID != nil && *person.ManagerID == managerID {
			team = append(team, person)
		}
	}
	sortPeople(team)
	return team, nil
}

// ListActiveContributors implements the PersonStore interface
func (m *MockPersonStore) ListActiveContributors(ctx context.Context, managerID *uuid.UUID) ([]*domain.Person, error) {
	if m.ListActiveContributorsFn != nil {
		return m.ListActiveContributorsFn(ctx, managerID)
	}

	people := make([]*domain.Person, 0)
	for _, person := range m.People {
		if !person.IsActive || person.Role != domain.RoleContributor {
			continue
		}
		if managerID != nil && (person.ManagerID == nil || *person.ManagerID != *managerID) {
			continue
		}
		people = append(people, person)
	}
	sortPeople(people)
	return people, nil
}

// ListSkillNames implements the PersonStore interface
func (m *MockPersonStore) ListSkillNames(ctx context.Context, personID uuid.UUID) ([]string, error) {
	if m.ListSkillNamesFn != nil {
		return m.ListSkillNamesFn(ctx, personID)
	}

	return m.Skills[personID], nil
}

// WithTx implements the PersonStore interface. The mock has no real
// transaction state, so it returns itself.
func (m *MockPersonStore) WithTx(tx *sql.Tx) store.PersonStore {
	return m
}

// sortPeople orders people by username so map iteration order never leaks
// into test assertions.
func sortPeople(people []*domain.Person) {
	sort.Slice(people, func(i, j int) bool {
		return people[i].Username < people[j].Username
	})
}
