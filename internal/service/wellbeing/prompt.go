package wellbeing

import (
	"fmt"
	"strings"

	"github.com/ideiatech/smartleader-api/internal/domain"
)

// maxPromptChecks bounds how many recent checks are rendered into the
// prompt so long histories do not produce unbounded prompts.
const maxPromptChecks = 20

// buildAnalysisPrompt renders the oracle prompt for one person's wellbeing
// analysis from their chronological checks and the local metrics.
func buildAnalysisPrompt(person *domain.Person, checks []*domain.WellbeingCheck, m localMetrics) string {
	var b strings.Builder

	b.WriteString("You are a people-focused engineering leader reviewing a team member's wellbeing check-ins.\n\n")

	fmt.Fprintf(&b, "Team member: %s", person.FullName)
	if person.Position != "" {
		fmt.Fprintf(&b, " (%s)", person.Position)
	}
	fmt.Fprintf(&b, "\nCurrent workload: %.1f%% of capacity\n\n", person.LoadPercentage())

	start := 0
	if len(checks) > maxPromptChecks {
		start = len(checks) - maxPromptChecks
	}
	b.WriteString("Check-ins, oldest first:\n")
	for _, check := range checks[start:] {
		fmt.Fprintf(&b, "- %s: mood %s, energy %s", check.CreatedAt.Format("2006-01-02"), check.Mood, check.Energy)
		if check.Note != "" {
			fmt.Fprintf(&b, ", note: %q", check.Note)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nLocal signals: average mood %.1f/5, average energy %.1f/5, %d of %d checks concerning.\n",
		m.AverageMood, m.AverageEnergy, m.ConcerningCount, m.CheckCount)

	b.WriteString(`
Assess overall sentiment and burnout risk, and suggest concrete supportive
actions the manager can take.

Reply with a single JSON object and nothing else:
{
  "sentiment_score": <-100 to 100>,
  "burnout_risk": <0-100>,
  "summary": "<one-paragraph assessment>",
  "recommendations": ["<action>", "..."]
}
`)

	return b.String()
}
