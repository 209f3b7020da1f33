package wellbeing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ideiatech/smartleader-api/internal/domain"
	"github.com/ideiatech/smartleader-api/internal/oracle"
	"github.com/ideiatech/smartleader-api/internal/platform/logger"
	"github.com/ideiatech/smartleader-api/internal/store"
)

// burnoutAlertThreshold is the risk score above which a team summary
// raises a burnout alert for a member.
const burnoutAlertThreshold = 70

// burnoutPatternWindowDays is the fixed window for burnout pattern
// detection.
const burnoutPatternWindowDays = 30

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	personStore    store.PersonStore
	wellbeingStore store.WellbeingStore
	generator      oracle.Generator
	logger         *slog.Logger
}

// NewService creates a new wellbeing Service implementation.
func NewService(
	personStore store.PersonStore,
	wellbeingStore store.WellbeingStore,
	generator oracle.Generator,
	logger *slog.Logger,
) Service {
	if personStore == nil {
		panic("personStore cannot be nil")
	}
	if wellbeingStore == nil {
		panic("wellbeingStore cannot be nil")
	}
	if generator == nil {
		panic("generator cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		personStore:    personStore,
		wellbeingStore: wellbeingStore,
		generator:      generator,
		logger:         logger.With(slog.String("component", "wellbeing_service")),
	}
}

// AnalyzePerson implements Service.AnalyzePerson.
func (s *serviceImpl) AnalyzePerson(
	ctx context.Context,
	personID uuid.UUID,
	windowDays int,
) (*Analysis, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	windowDays = clampWindow(windowDays)

	person, err := s.personStore.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, store.ErrPersonNotFound) {
			return nil, err
		}
		return nil, NewAnalyzeError("failed to load person", err)
	}

	checks, err := s.checksInWindow(ctx, personID, windowDays)
	if err != nil {
		return nil, NewAnalyzeError("failed to load checks", err)
	}

	m := computeLocalMetrics(checks)
	analysis := &Analysis{
		PersonID:           personID,
		WindowDays:         windowDays,
		CheckCount:         m.CheckCount,
		SufficientData:     m.SufficientData,
		AverageMood:        m.AverageMood,
		AverageEnergy:      m.AverageEnergy,
		MoodDistribution:   m.MoodDistribution,
		EnergyDistribution: m.EnergyDistribution,
		ConcerningCount:    m.ConcerningCount,
		ConcerningPercent:  m.ConcerningPercent,
		MoodDeclining:      m.MoodDeclining,
		EnergyDeclining:    m.EnergyDeclining,
		BurnoutRisk:        m.BurnoutRisk,
		Severity:           m.Severity,
	}

	if len(checks) == 0 {
		return analysis, nil
	}

	// The oracle sees the same data the local metrics were computed from.
	// Any failure on this path degrades to a local-only analysis.
	overlay := s.consultOracle(ctx, person, checks, m)
	if overlay == nil {
		return analysis, nil
	}

	mergeOverlay(analysis, overlay)
	s.backfillLatestCheck(ctx, checks[len(checks)-1], analysis, overlay)

	log.Debug("wellbeing analysis merged oracle overlay",
		slog.String("person_id", personID.String()),
		slog.Int("burnout_risk", analysis.BurnoutRisk))
	return analysis, nil
}

// TeamSummary implements Service.TeamSummary.
func (s *serviceImpl) TeamSummary(
	ctx context.Context,
	managerID uuid.UUID,
	windowDays int,
) (*TeamSummary, error) {
	windowDays = clampWindow(windowDays)

	if _, err := s.personStore.GetByID(ctx, managerID); err != nil {
		if errors.Is(err, store.ErrPersonNotFound) {
			return nil, err
		}
		return nil, NewTeamSummaryError("failed to load manager", err)
	}

	team, err := s.personStore.ListTeam(ctx, managerID)
	if err != nil {
		return nil, NewTeamSummaryError("failed to load team", err)
	}

	summary := &TeamSummary{
		ManagerID:  managerID,
		WindowDays: windowDays,
		TeamSize:   len(team),
		Members:    make([]MemberStatus, 0, len(team)),
		Alerts:     []Alert{},
	}

	var moodSum, energySum float64
	for _, member := range team {
		checks, err := s.checksInWindow(ctx, member.ID, windowDays)
		if err != nil {
			return nil, NewTeamSummaryError("failed to load member checks", err)
		}

		m := computeLocalMetrics(checks)
		status := MemberStatus{
			PersonID:       member.ID,
			Name:           member.FullName,
			LoadPercentage: member.LoadPercentage(),
			BurnoutRisk:    m.BurnoutRisk,
		}

		if len(checks) > 0 {
			latest := checks[len(checks)-1]
			status.HasCheckedIn = true
			status.LatestMood = &latest.Mood
			status.LatestEnergy = &latest.Energy
			status.Concerning = latest.IsConcerning()

			summary.CheckedInCount++
			moodSum += m.AverageMood
			energySum += m.AverageEnergy
		}

		summary.Members = append(summary.Members, status)
		summary.Alerts = append(summary.Alerts, memberAlerts(member, status)...)
	}

	if summary.CheckedInCount > 0 {
		summary.AverageMood = moodSum / float64(summary.CheckedInCount)
		summary.AverageEnergy = energySum / float64(summary.CheckedInCount)
	}
	summary.OverallTrend = overallTrend(summary.CheckedInCount, summary.AverageMood)

	sort.SliceStable(summary.Alerts, func(i, j int) bool {
		return severityRank(summary.Alerts[i].Severity) > severityRank(summary.Alerts[j].Severity)
	})

	return summary, nil
}

// DetectBurnoutPattern implements Service.DetectBurnoutPattern.
func (s *serviceImpl) DetectBurnoutPattern(
	ctx context.Context,
	personID uuid.UUID,
	riskThreshold int,
) (*BurnoutPattern, error) {
	riskThreshold = clampRisk(riskThreshold)

	if _, err := s.personStore.GetByID(ctx, personID); err != nil {
		if errors.Is(err, store.ErrPersonNotFound) {
			return nil, err
		}
		return nil, NewBurnoutPatternError("failed to load person", err)
	}

	checks, err := s.checksInWindow(ctx, personID, burnoutPatternWindowDays)
	if err != nil {
		return nil, NewBurnoutPatternError("failed to load checks", err)
	}

	m := computeLocalMetrics(checks)
	pattern := &BurnoutPattern{
		PersonID:       personID,
		WindowDays:     burnoutPatternWindowDays,
		CheckCount:     m.CheckCount,
		SufficientData: m.SufficientData,
		RiskThreshold:  riskThreshold,
		Severity:       m.Severity,
	}

	if !m.SufficientData {
		return pattern, nil
	}

	pattern.MoodDeclining = m.MoodDeclining
	pattern.EnergyDeclining = m.EnergyDeclining
	pattern.LowMoodMajority = m.LowMoodMajority
	pattern.LowEnergyMajority = m.LowEnergyMajority
	pattern.RiskScore = m.BurnoutRisk
	pattern.AtRisk = m.BurnoutRisk >= riskThreshold
	pattern.Recommendations = patternRecommendations(m)

	return pattern, nil
}

// consultOracle runs the oracle analysis path. Any failure returns nil and
// is logged; the caller keeps the local-only analysis.
func (s *serviceImpl) consultOracle(
	ctx context.Context,
	person *domain.Person,
	checks []*domain.WellbeingCheck,
	m localMetrics,
) *oracleOverlay {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prompt := buildAnalysisPrompt(person, checks, m)

	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Warn("oracle analysis failed, keeping local metrics",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return nil
	}

	overlay, err := parseAnalysisReply(reply)
	if err != nil {
		log.Warn("oracle analysis rejected, keeping local metrics",
			slog.String("error", err.Error()),
			slog.String("person_id", person.ID.String()))
		return nil
	}

	return overlay
}

// backfillLatestCheck writes the merged AI fields onto the most recent
// check. A failure here degrades silently to a log entry; the analysis
// result is already complete.
func (s *serviceImpl) backfillLatestCheck(
	ctx context.Context,
	latest *domain.WellbeingCheck,
	analysis *Analysis,
	overlay *oracleOverlay,
) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sentiment := 0
	if overlay.SentimentScore != nil {
		sentiment = *overlay.SentimentScore
	}

	var recommendations json.RawMessage
	if len(analysis.Recommendations) > 0 {
		if data, err := json.Marshal(analysis.Recommendations); err == nil {
			recommendations = data
		}
	}

	if err := s.wellbeingStore.UpdateAIFields(ctx, latest.ID, sentiment, analysis.BurnoutRisk, recommendations); err != nil {
		log.Warn("failed to back-fill AI fields on latest check",
			slog.String("error", err.Error()),
			slog.String("check_id", latest.ID.String()))
	}
}

func (s *serviceImpl) checksInWindow(ctx context.Context, personID uuid.UUID, windowDays int) ([]*domain.WellbeingCheck, error) {
	since := time.Now().UTC().AddDate(0, 0, -windowDays)
	checks, err := s.wellbeingStore.ListForPersonSince(ctx, personID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	return checks, nil
}

// memberAlerts derives the team summary alerts for one member.
func memberAlerts(member *domain.Person, status MemberStatus) []Alert {
	var alerts []Alert

	if status.BurnoutRisk > burnoutAlertThreshold {
		alerts = append(alerts, Alert{
			PersonID: member.ID,
			Name:     member.FullName,
			Kind:     AlertBurnoutRisk,
			Severity: severityFor(status.BurnoutRisk),
			Message:  fmt.Sprintf("burnout risk score %d", status.BurnoutRisk),
		})
	}

	if member.IsOverloaded() {
		alerts = append(alerts, Alert{
			PersonID: member.ID,
			Name:     member.FullName,
			Kind:     AlertOverload,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("workload at %.1f%% of capacity", member.LoadPercentage()),
		})
	}

	if status.Concerning {
		alerts = append(alerts, Alert{
			PersonID: member.ID,
			Name:     member.FullName,
			Kind:     AlertConcerningCheck,
			Severity: SeverityMedium,
			Message:  "latest check-in reports low mood or energy",
		})
	}

	return alerts
}

// overallTrend bands the team's average mood: positive at 4 and above,
// concerning at 2 and below.
func overallTrend(checkedIn int, averageMood float64) TeamTrend {
	if checkedIn == 0 {
		return TrendStable
	}
	switch {
	case averageMood >= 4:
		return TrendPositive
	case averageMood <= 2:
		return TrendConcerning
	default:
		return TrendStable
	}
}

// patternRecommendations returns the canned guidance for the detected
// pattern flags.
func patternRecommendations(m localMetrics) []string {
	var recs []string
	if m.MoodDeclining {
		recs = append(recs, "Schedule a one-on-one to talk through what is weighing on them.")
	}
	if m.EnergyDeclining {
		recs = append(recs, "Review their workload for items that can be deferred or reassigned.")
	}
	if m.LowMoodMajority {
		recs = append(recs, "Encourage taking time off before exhaustion sets in.")
	}
	if m.LowEnergyMajority {
		recs = append(recs, "Check for sustained after-hours work and protect recovery time.")
	}
	if m.Severity == SeverityHigh {
		recs = append(recs, "Act promptly: signals at this level rarely correct on their own.")
	}
	return recs
}

func severityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

func clampWindow(days int) int {
	if days < MinWindowDays {
		return MinWindowDays
	}
	if days > MaxWindowDays {
		return MaxWindowDays
	}
	return days
}

func clampRisk(threshold int) int {
	if threshold < 0 {
		return 0
	}
	if threshold > 100 {
		return 100
	}
	return threshold
}
