package wellbeing

import (
	"testing"

	"github.com/ideiatech/smartleader-api/internal/domain"
)

// checkSeq builds a chronological sequence of checks from parallel mood and
// energy levels.
func checkSeq(t *testing.T, moods []domain.MoodLevel, energies []domain.EnergyLevel) []*domain.WellbeingCheck {
	t.Helper()
	if len(moods) != len(energies) {
		t.Fatalf("mismatched sequence lengths: %d moods, %d energies", len(moods), len(energies))
	}

	checks := make([]*domain.WellbeingCheck, len(moods))
	for i := range moods {
		checks[i] = &domain.WellbeingCheck{Mood: moods[i], Energy: energies[i]}
	}
	return checks
}

func TestComputeLocalMetricsEmpty(t *testing.T) {
	m := computeLocalMetrics(nil)

	if m.CheckCount != 0 {
		t.Errorf("Expected zero check count, got %d", m.CheckCount)
	}
	if m.SufficientData {
		t.Error("Expected insufficient data with no checks")
	}
	if m.Severity != SeverityLow {
		t.Errorf("Expected low severity, got %s", m.Severity)
	}
}

func TestComputeLocalMetricsBelowTrendMinimum(t *testing.T) {
	checks := checkSeq(t,
		[]domain.MoodLevel{domain.MoodVeryBad, domain.MoodVeryBad},
		[]domain.EnergyLevel{domain.EnergyExhausted, domain.EnergyExhausted},
	)

	m := computeLocalMetrics(checks)

	if m.SufficientData {
		t.Error("Expected insufficient data with two checks")
	}
	// Averages and distributions are still computed.
	if m.AverageMood != 1 {
		t.Errorf("Expected average mood 1, got %v", m.AverageMood)
	}
	if m.ConcerningCount != 2 {
		t.Errorf("Expected 2 concerning checks, got %d", m.ConcerningCount)
	}
	// Trend and risk stay at zero values below the minimum.
	if m.MoodDeclining || m.EnergyDeclining || m.BurnoutRisk != 0 {
		t.Error("Expected no trend or risk below the trend minimum")
	}
}

func TestMoodDecliningTrend(t *testing.T) {
	// First three average 5, last three average 1: clear decline.
	checks := checkSeq(t,
		[]domain.MoodLevel{
			domain.MoodVeryGood, domain.MoodVeryGood, domain.MoodVeryGood,
			domain.MoodVeryBad, domain.MoodVeryBad, domain.MoodVeryBad,
		},
		[]domain.EnergyLevel{
			domain.EnergyHigh, domain.EnergyHigh, domain.EnergyHigh,
			domain.EnergyHigh, domain.EnergyHigh, domain.EnergyHigh,
		},
	)

	m := computeLocalMetrics(checks)

	if !m.SufficientData {
		t.Fatal("Expected sufficient data with six checks")
	}
	if !m.MoodDeclining {
		t.Error("Expected declining mood trend")
	}
	if m.EnergyDeclining {
		t.Error("Expected stable energy trend")
	}
}

func TestFlatTrendIsNotDeclining(t *testing.T) {
	checks := checkSeq(t,
		[]domain.MoodLevel{domain.MoodNeutral, domain.MoodNeutral, domain.MoodNeutral, domain.MoodNeutral},
		[]domain.EnergyLevel{domain.EnergyMedium, domain.EnergyMedium, domain.EnergyMedium, domain.EnergyMedium},
	)

	m := computeLocalMetrics(checks)

	if m.MoodDeclining || m.EnergyDeclining {
		t.Error("Expected flat sequences to not be declining")
	}
	if m.BurnoutRisk != 0 {
		t.Errorf("Expected zero burnout risk, got %d", m.BurnoutRisk)
	}
}

func TestDeclineBelowThresholdIgnored(t *testing.T) {
	// First three mean 3.0, last three mean 2.67: drop under 0.5.
	checks := checkSeq(t,
		[]domain.MoodLevel{
			domain.MoodNeutral, domain.MoodNeutral, domain.MoodNeutral,
			domain.MoodNeutral, domain.MoodNeutral, domain.MoodBad,
		},
		[]domain.EnergyLevel{
			domain.EnergyMedium, domain.EnergyMedium, domain.EnergyMedium,
			domain.EnergyMedium, domain.EnergyMedium, domain.EnergyMedium,
		},
	)

	m := computeLocalMetrics(checks)

	if m.MoodDeclining {
		t.Error("Expected drop below threshold to not count as declining")
	}
}

func TestCompositeRiskFullHouse(t *testing.T) {
	// Declining mood and energy plus low-score majorities on both scales.
	checks := checkSeq(t,
		[]domain.MoodLevel{
			domain.MoodBad, domain.MoodBad, domain.MoodBad,
			domain.MoodVeryBad, domain.MoodVeryBad, domain.MoodVeryBad,
		},
		[]domain.EnergyLevel{
			domain.EnergyLow, domain.EnergyLow, domain.EnergyLow,
			domain.EnergyExhausted, domain.EnergyExhausted, domain.EnergyExhausted,
		},
	)

	m := computeLocalMetrics(checks)

	if m.BurnoutRisk != 100 {
		t.Errorf("Expected composite risk 100, got %d", m.BurnoutRisk)
	}
	if m.Severity != SeverityHigh {
		t.Errorf("Expected high severity, got %s", m.Severity)
	}
}

func TestSeverityBands(t *testing.T) {
	cases := []struct {
		risk int
		want Severity
	}{
		{0, SeverityLow},
		{49, SeverityLow},
		{50, SeverityMedium},
		{79, SeverityMedium},
		{80, SeverityHigh},
		{100, SeverityHigh},
	}

	for _, tc := range cases {
		if got := severityFor(tc.risk); got != tc.want {
			t.Errorf("severityFor(%d): expected %s, got %s", tc.risk, tc.want, got)
		}
	}
}

func TestLowMajorityRequiresStrictMajority(t *testing.T) {
	// Two low of four is exactly half, not a majority.
	checks := checkSeq(t,
		[]domain.MoodLevel{domain.MoodBad, domain.MoodBad, domain.MoodGood, domain.MoodGood},
		[]domain.EnergyLevel{domain.EnergyHigh, domain.EnergyHigh, domain.EnergyHigh, domain.EnergyHigh},
	)

	m := computeLocalMetrics(checks)

	if m.LowMoodMajority {
		t.Error("Expected exactly half low scores to not be a majority")
	}
}
