package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Person-specific validation errors
var (
	ErrEmptyPersonID    = errors.New("person ID cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrEmptyFullName    = errors.New("full name cannot be empty")
	ErrInvalidRole      = errors.New("invalid person role")
	ErrNegativeCapacity = errors.New("capacity cannot be negative")
	ErrNegativeLoad     = errors.New("current load cannot be negative")
	ErrSelfManager      = errors.New("person cannot be their own manager")
)

// Role identifies what a person can do in the system.
type Role string

const (
	RoleContributor Role = "contributor"
	RoleManager     Role = "manager"
	RoleAdmin       Role = "admin"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleContributor, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// OverloadThresholdPercent is the load percentage above which a person is
// considered overloaded.
const OverloadThresholdPercent = 90.0

// DefaultCapacityHours is the default sustainable load per week.
const DefaultCapacityHours = 40.0

// Person represents a member of the organization: a contributor who
// receives work items, or a manager/admin.
//
// CurrentLoad is an incrementally maintained counter. Only the assignment
// engine mutates it, when assignments are created, moved, or removed. It is
// never recomputed by scanning work items, so every engine mutation must
// keep it consistent.
type Person struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Username       string     `json:"username"`
	FullName       string     `json:"full_name"`
	Password       string     `json:"-"` // Plaintext, only set transiently before hashing
	HashedPassword string     `json:"-"`
	Role           Role       `json:"role"`
	IsActive       bool       `json:"is_active"`
	IsVerified     bool       `json:"is_verified"`
	Department     string     `json:"department,omitempty"`
	Position       string     `json:"position,omitempty"`
	ManagerID      *uuid.UUID `json:"manager_id,omitempty"`
	Capacity       float64    `json:"capacity"`     // Hours per week
	CurrentLoad    float64    `json:"current_load"` // Hours currently allocated
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

// NewPerson creates a new Person with the given identity and role.
// It generates a new UUID, applies the default capacity, and sets the
// creation/update timestamps. Returns an error if validation fails.
//
// NOTE: the plaintext password is kept on the struct only until the caller
// hashes it; it is never persisted or serialized.
func NewPerson(email, username, fullName, password string, role Role) (*Person, error) {
	now := time.Now().UTC()
	person := &Person{
		ID:        uuid.New(),
		Email:     email,
		Username:  username,
		FullName:  fullName,
		Password:  password,
		Role:      role,
		IsActive:  true,
		Capacity:  DefaultCapacityHours,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := person.Validate(); err != nil {
		return nil, err
	}

	return person, nil
}

// Validate checks if the Person has valid data.
// Returns an error if any field fails validation.
func (p *Person) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPersonID
	}

	if p.Email == "" {
		return ErrEmptyEmail
	}

	if !strings.Contains(p.Email, "@") || strings.HasPrefix(p.Email, "@") ||
		strings.HasSuffix(p.Email, "@") {
		return ErrInvalidEmail
	}

	if p.Username == "" {
		return ErrEmptyUsername
	}

	if p.FullName == "" {
		return ErrEmptyFullName
	}

	if !p.Role.IsValid() {
		return ErrInvalidRole
	}

	if p.Capacity < 0 {
		return ErrNegativeCapacity
	}

	if p.CurrentLoad < 0 {
		return ErrNegativeLoad
	}

	if p.ManagerID != nil && *p.ManagerID == p.ID {
		return ErrSelfManager
	}

	return nil
}

// LoadPercentage returns the current load as a percentage of capacity.
// A person with zero capacity reports 0, not a division error.
func (p *Person) LoadPercentage() float64 {
	if p.Capacity == 0 {
		return 0
	}
	return p.CurrentLoad / p.Capacity * 100
}

// IsOverloaded reports whether the person's load percentage exceeds the
// overload threshold.
func (p *Person) IsOverloaded() bool {
	return p.LoadPercentage() > OverloadThresholdPercent
}

// AvailableHours returns the hours the person can still take on,
// never negative.
func (p *Person) AvailableHours() float64 {
	if p.CurrentLoad >= p.Capacity {
		return 0
	}
	return p.Capacity - p.CurrentLoad
}
