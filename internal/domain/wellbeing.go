package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// WellbeingCheck-specific validation errors
var (
	ErrEmptyCheckID          = errors.New("wellbeing check ID cannot be empty")
	ErrEmptyCheckOwnerID     = errors.New("wellbeing check owner ID cannot be empty")
	ErrInvalidMood           = errors.New("invalid mood level")
	ErrInvalidEnergy         = errors.New("invalid energy level")
	ErrSentimentOutOfRange   = errors.New("sentiment score must be between -100 and 100")
	ErrBurnoutRiskOutOfRange = errors.New("burnout risk must be between 0 and 100")
)

// MoodLevel is a 5-point ordinal mood scale.
type MoodLevel string

const (
	MoodVeryBad  MoodLevel = "very_bad"
	MoodBad      MoodLevel = "bad"
	MoodNeutral  MoodLevel = "neutral"
	MoodGood     MoodLevel = "good"
	MoodVeryGood MoodLevel = "very_good"
)

// IsValid reports whether the mood is one of the known levels.
func (m MoodLevel) IsValid() bool {
	switch m {
	case MoodVeryBad, MoodBad, MoodNeutral, MoodGood, MoodVeryGood:
		return true
	default:
		return false
	}
}

// Score maps the mood to its ordinal position 1-5.
// Unknown values map to the neutral midpoint.
func (m MoodLevel) Score() int {
	switch m {
	case MoodVeryBad:
		return 1
	case MoodBad:
		return 2
	case MoodNeutral:
		return 3
	case MoodGood:
		return 4
	case MoodVeryGood:
		return 5
	default:
		return 3
	}
}

// EnergyLevel is a 5-point ordinal energy scale.
type EnergyLevel string

const (
	EnergyExhausted EnergyLevel = "exhausted"
	EnergyLow       EnergyLevel = "low"
	EnergyMedium    EnergyLevel = "medium"
	EnergyHigh      EnergyLevel = "high"
	EnergyVeryHigh  EnergyLevel = "very_high"
)

// IsValid reports whether the energy is one of the known levels.
func (e EnergyLevel) IsValid() bool {
	switch e {
	case EnergyExhausted, EnergyLow, EnergyMedium, EnergyHigh, EnergyVeryHigh:
		return true
	default:
		return false
	}
}

// Score maps the energy to its ordinal position 1-5.
// Unknown values map to the medium midpoint.
func (e EnergyLevel) Score() int {
	switch e {
	case EnergyExhausted:
		return 1
	case EnergyLow:
		return 2
	case EnergyMedium:
		return 3
	case EnergyHigh:
		return 4
	case EnergyVeryHigh:
		return 5
	default:
		return 3
	}
}

// WellbeingCheck is a person's self-reported mood/energy check-in.
//
// Checks are immutable once created, except for the AI-derived fields
// (sentiment score, burnout risk, recommendations) which may be back-filled
// after creation by the wellbeing analyzer.
type WellbeingCheck struct {
	ID       uuid.UUID   `json:"id"`
	PersonID uuid.UUID   `json:"person_id"`
	Mood     MoodLevel   `json:"mood"`
	Energy   EnergyLevel `json:"energy"`
	Note     string      `json:"note,omitempty"`

	// AI-derived fields, nil until back-filled.
	AISentimentScore  *int            `json:"ai_sentiment_score,omitempty"` // -100..100
	AIBurnoutRisk     *int            `json:"ai_burnout_risk,omitempty"`    // 0..100
	AIRecommendations json.RawMessage `json:"ai_recommendations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewWellbeingCheck creates a new check-in for the given person.
// Returns an error if validation fails.
func NewWellbeingCheck(personID uuid.UUID, mood MoodLevel, energy EnergyLevel, note string) (*WellbeingCheck, error) {
	check := &WellbeingCheck{
		ID:        uuid.New(),
		PersonID:  personID,
		Mood:      mood,
		Energy:    energy,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}

	if err := check.Validate(); err != nil {
		return nil, err
	}

	return check, nil
}

// Validate checks if the WellbeingCheck has valid data.
// Returns an error if any field fails validation.
func (c *WellbeingCheck) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCheckID
	}

	if c.PersonID == uuid.Nil {
		return ErrEmptyCheckOwnerID
	}

	if !c.Mood.IsValid() {
		return ErrInvalidMood
	}

	if !c.Energy.IsValid() {
		return ErrInvalidEnergy
	}

	if c.AISentimentScore != nil && (*c.AISentimentScore < -100 || *c.AISentimentScore > 100) {
		return ErrSentimentOutOfRange
	}

	if c.AIBurnoutRisk != nil && (*c.AIBurnoutRisk < 0 || *c.AIBurnoutRisk > 100) {
		return ErrBurnoutRiskOutOfRange
	}

	return nil
}

// IsConcerning reports whether the check signals low wellbeing:
// mood in {very_bad, bad} or energy in {exhausted, low}.
func (c *WellbeingCheck) IsConcerning() bool {
	return c.Mood.Score() <= 2 || c.Energy.Score() <= 2
}
