package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WorkItem-specific validation errors
var (
	ErrEmptyWorkItemID = errors.New("work item ID cannot be empty")
	ErrEmptyTitle      = errors.New("work item title cannot be empty")
	ErrEmptyCreatorID  = errors.New("work item creator ID cannot be empty")
	ErrInvalidStatus   = errors.New("invalid work item status")
	ErrInvalidPriority = errors.New("invalid work item priority")
	ErrNegativeEffort  = errors.New("estimated hours cannot be negative")
)

// WorkItemStatus is the lifecycle state of a work item.
type WorkItemStatus string

const (
	StatusPending    WorkItemStatus = "pending"
	StatusInProgress WorkItemStatus = "in_progress"
	StatusCompleted  WorkItemStatus = "completed"
	StatusCancelled  WorkItemStatus = "cancelled"
	StatusBlocked    WorkItemStatus = "blocked"
)

// IsValid reports whether the status is one of the known values.
func (s WorkItemStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusBlocked:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further status transitions are allowed.
func (s WorkItemStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// WorkItemPriority is the ordered urgency of a work item:
// urgent > high > medium > low.
type WorkItemPriority string

const (
	PriorityLow    WorkItemPriority = "low"
	PriorityMedium WorkItemPriority = "medium"
	PriorityHigh   WorkItemPriority = "high"
	PriorityUrgent WorkItemPriority = "urgent"
)

// IsValid reports whether the priority is one of the known values.
func (p WorkItemPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal position of the priority, higher is more urgent.
// Unknown priorities rank lowest.
func (p WorkItemPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// WorkItem represents a unit of work that can be assigned to a person.
//
// The status machine is independent of assignment: changing AssigneeID
// never resets status, and an unassigned item contributes nothing to
// anyone's load.
type WorkItem struct {
	ID             uuid.UUID        `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Status         WorkItemStatus   `json:"status"`
	Priority       WorkItemPriority `json:"priority"`
	AssigneeID     *uuid.UUID       `json:"assignee_id,omitempty"`
	CreatorID      uuid.UUID        `json:"creator_id"`
	EstimatedHours *float64         `json:"estimated_hours,omitempty"`
	ActualHours    float64          `json:"actual_hours"`
	RequiredSkills []string         `json:"required_skills,omitempty"`
	DueDate        *time.Time       `json:"due_date,omitempty"`
	StartedAt      *time.Time       `json:"started_at,omitempty"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`

	// AI provenance, written by the assignment engine.
	MatchScore           *float64 `json:"ai_match_score,omitempty"`
	RecommendationReason string   `json:"ai_recommendation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWorkItem creates a new pending WorkItem with the given title, creator,
// and priority. Returns an error if validation fails.
func NewWorkItem(title, description string, creatorID uuid.UUID, priority WorkItemPriority) (*WorkItem, error) {
	now := time.Now().UTC()
	item := &WorkItem{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      StatusPending,
		Priority:    priority,
		CreatorID:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the WorkItem has valid data.
// Returns an error if any field fails validation.
func (w *WorkItem) Validate() error {
	if w.ID == uuid.Nil {
		return ErrEmptyWorkItemID
	}

	if w.Title == "" {
		return ErrEmptyTitle
	}

	if w.CreatorID == uuid.Nil {
		return ErrEmptyCreatorID
	}

	if !w.Status.IsValid() {
		return ErrInvalidStatus
	}

	if !w.Priority.IsValid() {
		return ErrInvalidPriority
	}

	if w.EstimatedHours != nil && *w.EstimatedHours < 0 {
		return ErrNegativeEffort
	}

	return nil
}

// Start transitions the item to in_progress. The start time is stamped only
// on the first transition; restarting a blocked item keeps the original
// stamp.
func (w *WorkItem) Start() error {
	if w.Status != StatusPending && w.Status != StatusBlocked {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, w.Status, StatusInProgress)
	}

	w.Status = StatusInProgress
	if w.StartedAt == nil {
		now := time.Now().UTC()
		w.StartedAt = &now
	}
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete transitions the item to completed and stamps the completion
// time once.
func (w *WorkItem) Complete() error {
	if w.Status != StatusInProgress {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, w.Status, StatusCompleted)
	}

	w.Status = StatusCompleted
	if w.CompletedAt == nil {
		now := time.Now().UTC()
		w.CompletedAt = &now
	}
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// Block transitions the item to blocked. Only pending or in-progress items
// can be blocked.
func (w *WorkItem) Block() error {
	if w.Status != StatusPending && w.Status != StatusInProgress {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, w.Status, StatusBlocked)
	}

	w.Status = StatusBlocked
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// Cancel transitions the item to cancelled. Only pending, in-progress, or
// blocked items can be cancelled.
func (w *WorkItem) Cancel() error {
	if w.Status.IsTerminal() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, w.Status, StatusCancelled)
	}

	w.Status = StatusCancelled
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// IsOverdue reports whether the item has a due date in the past and is not
// completed.
func (w *WorkItem) IsOverdue() bool {
	if w.DueDate == nil {
		return false
	}
	return time.Now().UTC().After(*w.DueDate) && w.Status != StatusCompleted
}

// EffortHours returns the estimated hours, or 0 when no estimate is set.
// Effort-less items contribute zero load on assignment.
func (w *WorkItem) EffortHours() float64 {
	if w.EstimatedHours == nil {
		return 0
	}
	return *w.EstimatedHours
}
