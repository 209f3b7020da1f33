package wellbeing

import "github.com/ideiatech/smartleader-api/internal/domain"

// Burnout risk composite weights. They sum to 100.
const (
	riskMoodDeclining     = 30
	riskEnergyDeclining   = 30
	riskLowMoodMajority   = 20
	riskLowEnergyMajority = 20
)

// declineThreshold is the minimum drop between the earliest and latest
// score means before a declining trend is declared.
const declineThreshold = 0.5

// localMetrics holds everything computable from the checks alone, without
// the oracle.
type localMetrics struct {
	CheckCount         int
	SufficientData     bool
	AverageMood        float64
	AverageEnergy      float64
	MoodDistribution   map[domain.MoodLevel]int
	EnergyDistribution map[domain.EnergyLevel]int
	ConcerningCount    int
	ConcerningPercent  float64
	MoodDeclining      bool
	EnergyDeclining    bool
	LowMoodMajority    bool
	LowEnergyMajority  bool
	BurnoutRisk        int
	Severity           Severity
}

// computeLocalMetrics derives the local wellbeing metrics from a
// chronological sequence of checks. With fewer than MinChecksForTrend
// checks, only averages and distributions are filled; trend and risk
// fields stay at their zero values and SufficientData is false.
func computeLocalMetrics(checks []*domain.WellbeingCheck) localMetrics {
	m := localMetrics{
		CheckCount:         len(checks),
		MoodDistribution:   make(map[domain.MoodLevel]int),
		EnergyDistribution: make(map[domain.EnergyLevel]int),
		Severity:           SeverityLow,
	}

	if len(checks) == 0 {
		return m
	}

	moodScores := make([]int, len(checks))
	energyScores := make([]int, len(checks))
	var moodSum, energySum int
	var lowMood, lowEnergy int

	for i, check := range checks {
		moodScores[i] = check.Mood.Score()
		energyScores[i] = check.Energy.Score()
		moodSum += moodScores[i]
		energySum += energyScores[i]

		m.MoodDistribution[check.Mood]++
		m.EnergyDistribution[check.Energy]++

		if moodScores[i] <= 2 {
			lowMood++
		}
		if energyScores[i] <= 2 {
			lowEnergy++
		}
		if check.IsConcerning() {
			m.ConcerningCount++
		}
	}

	n := float64(len(checks))
	m.AverageMood = float64(moodSum) / n
	m.AverageEnergy = float64(energySum) / n
	m.ConcerningPercent = float64(m.ConcerningCount) / n * 100

	if len(checks) < MinChecksForTrend {
		return m
	}

	m.SufficientData = true
	m.MoodDeclining = isDeclining(moodScores)
	m.EnergyDeclining = isDeclining(energyScores)
	m.LowMoodMajority = float64(lowMood) > n/2
	m.LowEnergyMajority = float64(lowEnergy) > n/2
	m.BurnoutRisk = compositeRisk(m)
	m.Severity = severityFor(m.BurnoutRisk)

	return m
}

// isDeclining compares the mean of the latest 3 scores against the mean of
// the earliest 3 (chronological order). A decline of at least 0.5 counts.
// Callers guarantee len(scores) >= 3.
func isDeclining(scores []int) bool {
	first := mean(scores[:3])
	last := mean(scores[len(scores)-3:])
	return last <= first-declineThreshold
}

// compositeRisk builds the 0-100 burnout risk from the four signals.
func compositeRisk(m localMetrics) int {
	risk := 0
	if m.MoodDeclining {
		risk += riskMoodDeclining
	}
	if m.EnergyDeclining {
		risk += riskEnergyDeclining
	}
	if m.LowMoodMajority {
		risk += riskLowMoodMajority
	}
	if m.LowEnergyMajority {
		risk += riskLowEnergyMajority
	}
	return risk
}

// severityFor maps a risk score to its band: >=80 high, >=50 medium,
// else low.
func severityFor(risk int) Severity {
	switch {
	case risk >= 80:
		return SeverityHigh
	case risk >= 50:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func mean(scores []int) float64 {
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}
