// Package wellbeing implements the wellbeing trend analyzer: local mood and
// energy metrics, declining-trend detection, burnout risk scoring, team
// summaries, and the oracle overlay merge.
package wellbeing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ideiatech/smartleader-api/internal/domain"
)

// Window bounds in days for trend analysis. Callers asking for less or
// more are clamped, not rejected.
const (
	MinWindowDays = 7
	MaxWindowDays = 90
)

// MinChecksForTrend is the number of checks required before any trend
// judgment is made. With fewer checks the result explicitly reports
// insufficient data instead of guessing.
const MinChecksForTrend = 3

// Severity is the burnout risk band.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Analysis is the wellbeing analysis of one person over a window.
// Local metrics are always present; the oracle overlay fields are filled
// only when a valid oracle result was merged on top.
type Analysis struct {
	PersonID   uuid.UUID `json:"person_id"`
	WindowDays int       `json:"window_days"`
	CheckCount int       `json:"check_count"`

	// SufficientData is false when there are fewer than MinChecksForTrend
	// checks; trend and risk fields are then zero values, not judgments.
	SufficientData bool `json:"sufficient_data"`

	AverageMood        float64                    `json:"average_mood"`
	AverageEnergy      float64                    `json:"average_energy"`
	MoodDistribution   map[domain.MoodLevel]int   `json:"mood_distribution"`
	EnergyDistribution map[domain.EnergyLevel]int `json:"energy_distribution"`
	ConcerningCount    int                        `json:"concerning_count"`
	ConcerningPercent  float64                    `json:"concerning_percent"`

	MoodDeclining   bool     `json:"mood_declining"`
	EnergyDeclining bool     `json:"energy_declining"`
	BurnoutRisk     int      `json:"burnout_risk"`
	Severity        Severity `json:"severity"`

	// Oracle overlay. SentimentScore and Recommendations come from the
	// oracle when present and valid; FromOracle marks the overlay.
	SentimentScore  *int     `json:"sentiment_score,omitempty"`
	OracleSummary   string   `json:"oracle_summary,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	FromOracle      bool     `json:"from_oracle"`

	// Extra carries unrecognized oracle reply fields. Opaque: never used
	// for control flow.
	Extra map[string]any `json:"extra,omitempty"`
}

// MemberStatus is one team member's slice of the team summary.
type MemberStatus struct {
	PersonID       uuid.UUID           `json:"person_id"`
	Name           string              `json:"name"`
	LoadPercentage float64             `json:"load_percentage"`
	HasCheckedIn   bool                `json:"has_checked_in"`
	LatestMood     *domain.MoodLevel   `json:"latest_mood,omitempty"`
	LatestEnergy   *domain.EnergyLevel `json:"latest_energy,omitempty"`
	BurnoutRisk    int                 `json:"burnout_risk"`
	Concerning     bool                `json:"concerning"`
}

// AlertKind classifies a team summary alert.
type AlertKind string

const (
	AlertBurnoutRisk     AlertKind = "burnout_risk"
	AlertOverload        AlertKind = "overload"
	AlertConcerningCheck AlertKind = "concerning_check"
)

// Alert flags one team member needing attention.
type Alert struct {
	PersonID uuid.UUID `json:"person_id"`
	Name     string    `json:"name"`
	Kind     AlertKind `json:"kind"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}

// TeamTrend is the overall team wellbeing direction.
type TeamTrend string

const (
	TrendPositive   TeamTrend = "positive"
	TrendStable     TeamTrend = "stable"
	TrendConcerning TeamTrend = "concerning"
)

// TeamSummary aggregates a team's wellbeing over a window.
type TeamSummary struct {
	ManagerID      uuid.UUID      `json:"manager_id"`
	WindowDays     int            `json:"window_days"`
	TeamSize       int            `json:"team_size"`
	CheckedInCount int            `json:"checked_in_count"`
	AverageMood    float64        `json:"average_mood"`
	AverageEnergy  float64        `json:"average_energy"`
	Members        []MemberStatus `json:"members"`
	Alerts         []Alert        `json:"alerts"`
	OverallTrend   TeamTrend      `json:"overall_trend"`
}

// BurnoutPattern is the result of burnout pattern detection over the fixed
// 30-day window.
type BurnoutPattern struct {
	PersonID       uuid.UUID `json:"person_id"`
	WindowDays     int       `json:"window_days"`
	CheckCount     int       `json:"check_count"`
	SufficientData bool      `json:"sufficient_data"`

	MoodDeclining     bool `json:"mood_declining"`
	EnergyDeclining   bool `json:"energy_declining"`
	LowMoodMajority   bool `json:"low_mood_majority"`
	LowEnergyMajority bool `json:"low_energy_majority"`

	RiskScore     int      `json:"risk_score"`
	RiskThreshold int      `json:"risk_threshold"`
	AtRisk        bool     `json:"at_risk"`
	Severity      Severity `json:"severity"`

	Recommendations []string `json:"recommendations,omitempty"`
}

// Service provides wellbeing analysis over check-in history.
type Service interface {
	// AnalyzePerson analyzes one person's checks over the given window
	// (clamped to 7-90 days). Local metrics are always computed; a valid
	// oracle analysis is merged on top and back-filled onto the latest
	// check. Oracle failures degrade to local-only results, never errors.
	//
	// Returns store.ErrPersonNotFound if the person does not exist.
	// Fewer than 3 checks is a normal result with SufficientData=false.
	AnalyzePerson(ctx context.Context, personID uuid.UUID, windowDays int) (*Analysis, error)

	// TeamSummary summarizes the wellbeing of the manager's team over the
	// given window: per-member latest check, averages, alerts sorted by
	// severity, and an overall trend.
	//
	// Returns store.ErrPersonNotFound if the manager does not exist.
	TeamSummary(ctx context.Context, managerID uuid.UUID, windowDays int) (*TeamSummary, error)

	// DetectBurnoutPattern inspects the person's checks over the last 30
	// days for burnout signals and compares the composite risk score
	// against riskThreshold (clamped to 0-100).
	//
	// Returns store.ErrPersonNotFound if the person does not exist.
	DetectBurnoutPattern(ctx context.Context, personID uuid.UUID, riskThreshold int) (*BurnoutPattern, error)
}

// ServiceError wraps errors from the wellbeing service with additional
// context, so consumers can differentiate failures with errors.As instead
// of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "analyze_person")
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

// NewAnalyzeError returns a new ServiceError for the analyze_person
// operation.
func NewAnalyzeError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "analyze_person",
		Message:   message,
		Err:       err,
	}
}

// NewTeamSummaryError returns a new ServiceError for the team_summary
// operation.
func NewTeamSummaryError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "team_summary",
		Message:   message,
		Err:       err,
	}
}

// NewBurnoutPatternError returns a new ServiceError for the
// detect_burnout_pattern operation.
func NewBurnoutPatternError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "detect_burnout_pattern",
		Message:   message,
		Err:       err,
	}
}
