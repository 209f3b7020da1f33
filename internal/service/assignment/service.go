// Package assignment implements the work assignment engine: candidate
// eligibility, oracle-backed recommendations with a deterministic fallback,
// atomic assignment application, and team rebalancing.
package assignment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ideiatech/smartleader-api/internal/domain"
)

// Candidate is a transient projection of a person at recommendation time.
// It is rebuilt per recommendation call and never persisted.
type Candidate struct {
	ID             uuid.UUID          `json:"id"`
	FullName       string             `json:"full_name"`
	Username       string             `json:"username"`
	Position       string             `json:"position,omitempty"`
	Skills         []string           `json:"skills"`
	LoadPercentage float64            `json:"load_percentage"`
	AvailableHours float64            `json:"available_hours"`
	Mood           domain.MoodLevel   `json:"mood"`
	Energy         domain.EnergyLevel `json:"energy"`
}

// TeamContext summarizes the candidate pool for the oracle prompt.
type TeamContext struct {
	Size            int     `json:"size"`
	AverageLoad     float64 `json:"average_load"`
	OverloadedCount int     `json:"overloaded_count"`
}

// Recommendation is the result of a recommendation call. It is produced by
// either the oracle path or the fallback path; FromFallback is the only way
// callers can tell the two apart.
type Recommendation struct {
	PersonID        uuid.UUID  `json:"person_id"`
	PersonName      string     `json:"person_name"`
	MatchScore      float64    `json:"match_score"`
	Reasoning       string     `json:"reasoning"`
	Pros            []string   `json:"pros,omitempty"`
	Cons            []string   `json:"cons,omitempty"`
	AlternativeID   *uuid.UUID `json:"alternative_id,omitempty"`
	AlternativeName string     `json:"alternative_name,omitempty"`
	Warnings        []string   `json:"warnings,omitempty"`

	// FromFallback marks a recommendation produced by the deterministic
	// fallback instead of the oracle.
	FromFallback bool `json:"from_fallback"`

	// Extra carries unrecognized oracle reply fields. Opaque: never used
	// for control flow.
	Extra map[string]any `json:"extra,omitempty"`

	// Applied is set by AutoDistribute when the assignment was persisted.
	Applied bool `json:"applied"`
}

// ProposedMove is one reassignment suggested by a rebalance run.
type ProposedMove struct {
	WorkItemID    uuid.UUID `json:"work_item_id"`
	WorkItemTitle string    `json:"work_item_title"`
	FromID        uuid.UUID `json:"from_id"`
	FromName      string    `json:"from_name"`
	ToID          uuid.UUID `json:"to_id"`
	ToName        string    `json:"to_name"`
	MatchScore    float64   `json:"match_score"`
	Reasoning     string    `json:"reasoning"`
}

// RebalanceReport is the outcome of a rebalance run, dry or applied.
type RebalanceReport struct {
	ManagerID        uuid.UUID      `json:"manager_id"`
	TeamSize         int            `json:"team_size"`
	OverloadedCount  int            `json:"overloaded_count"`
	UnderloadedCount int            `json:"underloaded_count"`
	Moves            []ProposedMove `json:"moves"`
	Applied          bool           `json:"applied"`
	Summary          string         `json:"summary"`
}

// Service provides work assignment recommendations and rebalancing.
type Service interface {
	// RecommendAssignee recommends the best assignee for a work item among
	// the eligible candidates, optionally scoped to one manager's team.
	//
	// Returns:
	//   - (*Recommendation, nil): a recommendation from the oracle, or the
	//     deterministic fallback when the oracle fails
	//   - (nil, store.ErrWorkItemNotFound): the work item does not exist
	//   - (nil, ErrNoEligibleCandidates): no candidate can receive the item
	//
	// The oracle call never holds a database transaction; nothing is
	// persisted.
	RecommendAssignee(ctx context.Context, workItemID uuid.UUID, teamScope *uuid.UUID) (*Recommendation, error)

	// AutoDistribute recommends an assignee for a work item and, when
	// autoAssign is true, applies the assignment atomically: assignee set,
	// status pending, match score and reasoning recorded, and the item's
	// estimated hours added to the assignee's load. The returned
	// recommendation's Applied flag reports whether the write happened.
	AutoDistribute(ctx context.Context, workItemID uuid.UUID, autoAssign bool) (*Recommendation, error)

	// RebalanceTeam inspects the manager's team, proposes moving pending
	// items away from overloaded members, and, when apply is true, executes
	// every proposed move in a single transaction. A dry run (apply=false)
	// mutates nothing.
	//
	// Returns store.ErrPersonNotFound if the manager does not exist.
	RebalanceTeam(ctx context.Context, managerID uuid.UUID, apply bool) (*RebalanceReport, error)
}

// Common error types for the assignment service
var (
	// ErrNoEligibleCandidates indicates no candidate can receive the work
	// item. This is a valid outcome of the eligibility filter, surfaced as
	// an explicit sentinel rather than fabricating a recommendation.
	ErrNoEligibleCandidates = errors.New("no eligible candidates")
)

// ServiceError wraps errors from the assignment service with additional
// context, so consumers can differentiate failures with errors.As instead
// of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "recommend_assignee")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewRecommendError returns a new ServiceError for the recommend_assignee
// operation.
func NewRecommendError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "recommend_assignee",
		Message:   message,
		Err:       err,
	}
}

// NewRebalanceError returns a new ServiceError for the rebalance_team
// operation.
func NewRebalanceError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "rebalance_team",
		Message:   message,
		Err:       err,
	}
}
