package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewWellbeingCheck(t *testing.T) {
	personID := uuid.New()

	check, err := NewWellbeingCheck(personID, MoodGood, EnergyHigh, "sprint went well")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if check.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if check.PersonID != personID {
		t.Errorf("Expected person ID %s, got %s", personID, check.PersonID)
	}
	if check.AISentimentScore != nil || check.AIBurnoutRisk != nil {
		t.Error("Expected AI fields to be nil on a fresh check")
	}

	_, err = NewWellbeingCheck(uuid.Nil, MoodGood, EnergyHigh, "")
	if !errors.Is(err, ErrEmptyCheckOwnerID) {
		t.Errorf("Expected ErrEmptyCheckOwnerID, got %v", err)
	}

	_, err = NewWellbeingCheck(personID, MoodLevel("ecstatic"), EnergyHigh, "")
	if !errors.Is(err, ErrInvalidMood) {
		t.Errorf("Expected ErrInvalidMood, got %v", err)
	}

	_, err = NewWellbeingCheck(personID, MoodGood, EnergyLevel("wired"), "")
	if !errors.Is(err, ErrInvalidEnergy) {
		t.Errorf("Expected ErrInvalidEnergy, got %v", err)
	}
}

func TestWellbeingCheckValidateAIFieldRanges(t *testing.T) {
	check, err := NewWellbeingCheck(uuid.New(), MoodNeutral, EnergyMedium, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	tooLow := -101
	check.AISentimentScore = &tooLow
	if err := check.Validate(); !errors.Is(err, ErrSentimentOutOfRange) {
		t.Errorf("Expected ErrSentimentOutOfRange, got %v", err)
	}
	check.AISentimentScore = nil

	tooHigh := 101
	check.AIBurnoutRisk = &tooHigh
	if err := check.Validate(); !errors.Is(err, ErrBurnoutRiskOutOfRange) {
		t.Errorf("Expected ErrBurnoutRiskOutOfRange, got %v", err)
	}
}

func TestMoodAndEnergyScores(t *testing.T) {
	if MoodVeryBad.Score() != 1 || MoodVeryGood.Score() != 5 {
		t.Error("Expected mood scale endpoints at 1 and 5")
	}
	if EnergyExhausted.Score() != 1 || EnergyVeryHigh.Score() != 5 {
		t.Error("Expected energy scale endpoints at 1 and 5")
	}

	// Unknown values collapse to the midpoint rather than failing.
	if MoodLevel("unknown").Score() != 3 {
		t.Error("Expected unknown mood to score 3")
	}
	if EnergyLevel("unknown").Score() != 3 {
		t.Error("Expected unknown energy to score 3")
	}
}

func TestIsConcerning(t *testing.T) {
	cases := []struct {
		name   string
		mood   MoodLevel
		energy EnergyLevel
		want   bool
	}{
		{"good mood and energy", MoodGood, EnergyHigh, false},
		{"neutral baseline", MoodNeutral, EnergyMedium, false},
		{"bad mood alone", MoodBad, EnergyHigh, true},
		{"low energy alone", MoodVeryGood, EnergyLow, true},
		{"both low", MoodVeryBad, EnergyExhausted, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := WellbeingCheck{Mood: tc.mood, Energy: tc.energy}
			if got := c.IsConcerning(); got != tc.want {
				t.Errorf("Expected IsConcerning=%v, got %v", tc.want, got)
			}
		})
	}
}
