package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewPerson(t *testing.T) {
	person, err := NewPerson("ana@example.com", "ana", "Ana Souza", "supersecurepass", RoleContributor)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if person.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if person.Email != "ana@example.com" {
		t.Errorf("Expected email ana@example.com, got %s", person.Email)
	}

	if !person.IsActive {
		t.Error("Expected new person to be active")
	}

	if person.Capacity != DefaultCapacityHours {
		t.Errorf("Expected default capacity %v, got %v", DefaultCapacityHours, person.Capacity)
	}

	if person.CurrentLoad != 0 {
		t.Errorf("Expected zero current load, got %v", person.CurrentLoad)
	}

	if person.CreatedAt.IsZero() || person.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}
}

func TestNewPersonValidation(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		username string
		fullName string
		role     Role
		wantErr  error
	}{
		{"empty email", "", "ana", "Ana Souza", RoleContributor, ErrEmptyEmail},
		{"email without at sign", "anaexample.com", "ana", "Ana Souza", RoleContributor, ErrInvalidEmail},
		{"email starting with at sign", "@example.com", "ana", "Ana Souza", RoleContributor, ErrInvalidEmail},
		{"empty username", "ana@example.com", "", "Ana Souza", RoleContributor, ErrEmptyUsername},
		{"empty full name", "ana@example.com", "ana", "", RoleContributor, ErrEmptyFullName},
		{"invalid role", "ana@example.com", "ana", "Ana Souza", Role("owner"), ErrInvalidRole},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPerson(tc.email, tc.username, tc.fullName, "supersecurepass", tc.role)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestPersonValidateLoadAndManager(t *testing.T) {
	person, err := NewPerson("ana@example.com", "ana", "Ana Souza", "supersecurepass", RoleContributor)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	person.CurrentLoad = -1
	if err := person.Validate(); !errors.Is(err, ErrNegativeLoad) {
		t.Errorf("Expected ErrNegativeLoad, got %v", err)
	}
	person.CurrentLoad = 0

	person.Capacity = -1
	if err := person.Validate(); !errors.Is(err, ErrNegativeCapacity) {
		t.Errorf("Expected ErrNegativeCapacity, got %v", err)
	}
	person.Capacity = DefaultCapacityHours

	person.ManagerID = &person.ID
	if err := person.Validate(); !errors.Is(err, ErrSelfManager) {
		t.Errorf("Expected ErrSelfManager, got %v", err)
	}
}

func TestLoadPercentage(t *testing.T) {
	cases := []struct {
		name     string
		capacity float64
		load     float64
		want     float64
	}{
		{"empty", 40, 0, 0},
		{"half", 40, 20, 50},
		{"full", 40, 40, 100},
		{"over capacity", 40, 50, 125},
		{"zero capacity reports zero", 0, 10, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Person{Capacity: tc.capacity, CurrentLoad: tc.load}
			if got := p.LoadPercentage(); got != tc.want {
				t.Errorf("Expected %v%%, got %v%%", tc.want, got)
			}
		})
	}
}

func TestIsOverloaded(t *testing.T) {
	// Exactly 90% is not overloaded; the threshold is strict.
	atThreshold := Person{Capacity: 40, CurrentLoad: 36}
	if atThreshold.IsOverloaded() {
		t.Error("Expected 90%% load to not be overloaded")
	}

	above := Person{Capacity: 40, CurrentLoad: 36.5}
	if !above.IsOverloaded() {
		t.Error("Expected load above 90%% to be overloaded")
	}

	zeroCapacity := Person{Capacity: 0, CurrentLoad: 10}
	if zeroCapacity.IsOverloaded() {
		t.Error("Expected zero-capacity person to never be overloaded")
	}
}

func TestAvailableHours(t *testing.T) {
	p := Person{Capacity: 40, CurrentLoad: 30}
	if got := p.AvailableHours(); got != 10 {
		t.Errorf("Expected 10 available hours, got %v", got)
	}

	over := Person{Capacity: 40, CurrentLoad: 45}
	if got := over.AvailableHours(); got != 0 {
		t.Errorf("Expected 0 available hours for over-capacity person, got %v", got)
	}
}
