package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewWorkItem(t *testing.T) {
	creatorID := uuid.New()

	item, err := NewWorkItem("Fix login flow", "Users get stuck on the login page", creatorID, PriorityHigh)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if item.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if item.Status != StatusPending {
		t.Errorf("Expected status %s, got %s", StatusPending, item.Status)
	}

	if item.AssigneeID != nil {
		t.Error("Expected new item to be unassigned")
	}

	_, err = NewWorkItem("", "", creatorID, PriorityLow)
	if !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected ErrEmptyTitle, got %v", err)
	}

	_, err = NewWorkItem("Valid title", "", uuid.Nil, PriorityLow)
	if !errors.Is(err, ErrEmptyCreatorID) {
		t.Errorf("Expected ErrEmptyCreatorID, got %v", err)
	}

	_, err = NewWorkItem("Valid title", "", creatorID, WorkItemPriority("critical"))
	if !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Expected ErrInvalidPriority, got %v", err)
	}
}

func TestWorkItemValidateNegativeEffort(t *testing.T) {
	item, err := NewWorkItem("Write report", "", uuid.New(), PriorityMedium)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	hours := -2.0
	item.EstimatedHours = &hours
	if err := item.Validate(); !errors.Is(err, ErrNegativeEffort) {
		t.Errorf("Expected ErrNegativeEffort, got %v", err)
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityUrgent.Rank() <= PriorityHigh.Rank() {
		t.Error("Expected urgent to outrank high")
	}
	if PriorityHigh.Rank() <= PriorityMedium.Rank() {
		t.Error("Expected high to outrank medium")
	}
	if PriorityMedium.Rank() <= PriorityLow.Rank() {
		t.Error("Expected medium to outrank low")
	}
	if WorkItemPriority("unknown").Rank() != 0 {
		t.Error("Expected unknown priority to rank lowest")
	}
}

func TestWorkItemStatusMachine(t *testing.T) {
	item, err := NewWorkItem("Deploy release", "", uuid.New(), PriorityUrgent)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := item.Complete(); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("Expected ErrInvalidStatusTransition for pending -> completed, got %v", err)
	}

	if err := item.Start(); err != nil {
		t.Fatalf("Expected start to succeed, got %v", err)
	}
	if item.Status != StatusInProgress {
		t.Errorf("Expected status %s, got %s", StatusInProgress, item.Status)
	}
	if item.StartedAt == nil {
		t.Fatal("Expected StartedAt to be stamped")
	}

	firstStart := *item.StartedAt

	if err := item.Block(); err != nil {
		t.Fatalf("Expected block to succeed, got %v", err)
	}
	if err := item.Start(); err != nil {
		t.Fatalf("Expected restart from blocked to succeed, got %v", err)
	}
	if !item.StartedAt.Equal(firstStart) {
		t.Error("Expected restart to keep the original start stamp")
	}

	if err := item.Complete(); err != nil {
		t.Fatalf("Expected complete to succeed, got %v", err)
	}
	if item.CompletedAt == nil {
		t.Fatal("Expected CompletedAt to be stamped")
	}

	// Terminal states accept no further transitions.
	if err := item.Start(); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("Expected ErrInvalidStatusTransition for completed -> in_progress, got %v", err)
	}
	if err := item.Cancel(); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("Expected ErrInvalidStatusTransition for completed -> cancelled, got %v", err)
	}
}

func TestWorkItemCancelFromBlocked(t *testing.T) {
	item, err := NewWorkItem("Audit dependencies", "", uuid.New(), PriorityLow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := item.Block(); err != nil {
		t.Fatalf("Expected block to succeed, got %v", err)
	}
	if err := item.Cancel(); err != nil {
		t.Fatalf("Expected cancel from blocked to succeed, got %v", err)
	}
	if item.Status != StatusCancelled {
		t.Errorf("Expected status %s, got %s", StatusCancelled, item.Status)
	}
}

func TestIsOverdue(t *testing.T) {
	item, err := NewWorkItem("Quarterly review", "", uuid.New(), PriorityMedium)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if item.IsOverdue() {
		t.Error("Expected item without due date to never be overdue")
	}

	past := time.Now().UTC().Add(-24 * time.Hour)
	item.DueDate = &past
	if !item.IsOverdue() {
		t.Error("Expected item with past due date to be overdue")
	}

	if err := item.Start(); err != nil {
		t.Fatalf("Expected start to succeed, got %v", err)
	}
	if err := item.Complete(); err != nil {
		t.Fatalf("Expected complete to succeed, got %v", err)
	}
	if item.IsOverdue() {
		t.Error("Expected completed item to never be overdue")
	}
}

func TestEffortHours(t *testing.T) {
	item := WorkItem{}
	if item.EffortHours() != 0 {
		t.Error("Expected zero effort without an estimate")
	}

	hours := 6.5
	item.EstimatedHours = &hours
	if item.EffortHours() != 6.5 {
		t.Errorf("Expected 6.5 effort hours, got %v", item.EffortHours())
	}
}
