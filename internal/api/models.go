package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/ideiatech/smartleader-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Username string `json:"username"  validate:"required,min=3,max=50"`
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Password string `json:"password"  validate:"required,min=12,max=72"`
	Role     string `json:"role"      validate:"omitempty,oneof=contributor manager admin"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	PersonID     uuid.UUID `json:"person_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    string    `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CreateWorkItemRequest defines the payload for work item creation.
type CreateWorkItemRequest struct {
	Title          string     `json:"title"           validate:"required,min=1,max=300"`
	Description    string     `json:"description"     validate:"omitempty,max=5000"`
	Priority       string     `json:"priority"        validate:"required,oneof=low medium high urgent"`
	EstimatedHours *float64   `json:"estimated_hours" validate:"omitempty,gte=0"`
	RequiredSkills []string   `json:"required_skills" validate:"omitempty,dive,min=1"`
	DueDate        *time.Time `json:"due_date"`
	AssigneeID     *uuid.UUID `json:"assignee_id"`
}

// CheckinRequest defines the payload for a wellbeing check-in.
type CheckinRequest struct {
	Mood   string `json:"mood"   validate:"required,oneof=very_bad bad neutral good very_good"`
	Energy string `json:"energy" validate:"required,oneof=exhausted low medium high very_high"`
	Note   string `json:"note"   validate:"omitempty,max=2000"`
}

// RecommendAssigneeRequest defines the payload for the assignee
// recommendation endpoint.
type RecommendAssigneeRequest struct {
	WorkItemID uuid.UUID  `json:"work_item_id" validate:"required"`
	TeamScope  *uuid.UUID `json:"team_scope,omitempty"`
}

// AutoDistributeRequest defines the payload for the auto-distribution
// endpoint.
type AutoDistributeRequest struct {
	WorkItemID uuid.UUID `json:"work_item_id" validate:"required"`
	AutoAssign bool      `json:"auto_assign"`
}

// RebalanceRequest defines the payload for the team rebalance endpoint.
type RebalanceRequest struct {
	ManagerID uuid.UUID `json:"manager_id" validate:"required"`
	Apply     bool      `json:"apply"`
}

// AnalyzeWellbeingRequest defines the payload for the individual
// wellbeing analysis endpoint.
type AnalyzeWellbeingRequest struct {
	PersonID   uuid.UUID `json:"person_id"   validate:"required"`
	WindowDays int       `json:"window_days" validate:"omitempty,gte=1"`
}

// TeamSummaryRequest defines the payload for the team wellbeing summary
// endpoint.
type TeamSummaryRequest struct {
	ManagerID  uuid.UUID `json:"manager_id"  validate:"required"`
	WindowDays int       `json:"window_days" validate:"omitempty,gte=1"`
}

// BurnoutPatternRequest defines the payload for the burnout pattern
// detection endpoint. RiskThreshold is a pointer so an explicit 0 is
// distinguishable from an absent field.
type BurnoutPatternRequest struct {
	PersonID      uuid.UUID `json:"person_id"      validate:"required"`
	RiskThreshold *int      `json:"risk_threshold" validate:"omitempty,gte=0,lte=100"`
}

// NoCandidatesResponse is the structured result returned when no eligible
// candidate exists. An empty candidate pool is a valid outcome, not a
// failure.
type NoCandidatesResponse struct {
	WorkItemID uuid.UUID `json:"work_item_id"`
	Message    string    `json:"message"`
}

// PersonResponse is the public projection of a person.
type PersonResponse struct {
	ID             uuid.UUID   `json:"id"`
	Email          string      `json:"email"`
	Username       string      `json:"username"`
	FullName       string      `json:"full_name"`
	Role           domain.Role `json:"role"`
	Department     string      `json:"department,omitempty"`
	Position       string      `json:"position,omitempty"`
	Capacity       float64     `json:"capacity"`
	CurrentLoad    float64     `json:"current_load"`
	LoadPercentage float64     `json:"load_percentage"`
}

// NewPersonResponse projects a domain person into its public shape.
func NewPersonResponse(p *domain.Person) PersonResponse {
	return PersonResponse{
		ID:             p.ID,
		Email:          p.Email,
		Username:       p.Username,
		FullName:       p.FullName,
		Role:           p.Role,
		Department:     p.Department,
		Position:       p.Position,
		Capacity:       p.Capacity,
		CurrentLoad:    p.CurrentLoad,
		LoadPercentage: p.LoadPercentage(),
	}
}
