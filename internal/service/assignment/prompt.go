package assignment

import (
	"fmt"
	"strings"

	"github.com/ideiatech/smartleader-api/internal/domain"
)

// buildAssignmentPrompt renders the structured prompt the oracle receives
// for an assignment recommendation. All input gathering happens before any
// transaction is opened.
func buildAssignmentPrompt(item *domain.WorkItem, candidates []Candidate, team *TeamContext) string {
	var b strings.Builder

	b.WriteString("You are an experienced engineering manager assigning work to a team.\n")
	b.WriteString("Pick the single best assignee for the work item below.\n\n")

	b.WriteString("Work item:\n")
	fmt.Fprintf(&b, "- Title: %s\n", item.Title)
	if item.Description != "" {
		fmt.Fprintf(&b, "- Description: %s\n", item.Description)
	}
	fmt.Fprintf(&b, "- Priority: %s\n", item.Priority)
	if item.EstimatedHours != nil {
		fmt.Fprintf(&b, "- Estimated hours: %.1f\n", *item.EstimatedHours)
	}
	if len(item.RequiredSkills) > 0 {
		fmt.Fprintf(&b, "- Required skills: %s\n", strings.Join(item.RequiredSkills, ", "))
	}
	if item.DueDate != nil {
		fmt.Fprintf(&b, "- Due date: %s\n", item.DueDate.Format("2006-01-02"))
	}

	b.WriteString("\nCandidates:\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. %s (id: %s)\n", i+1, c.FullName, c.ID)
		if c.Position != "" {
			fmt.Fprintf(&b, "   Position: %s\n", c.Position)
		}
		skills := "none listed"
		if len(c.Skills) > 0 {
			skills = strings.Join(c.Skills, ", ")
		}
		fmt.Fprintf(&b, "   Skills: %s\n", skills)
		fmt.Fprintf(&b, "   Current load: %.1f%% (%.1f hours available)\n", c.LoadPercentage, c.AvailableHours)
		fmt.Fprintf(&b, "   Mood: %s, Energy: %s\n", c.Mood, c.Energy)
	}

	if team != nil {
		fmt.Fprintf(&b, "\nTeam context: %d members, average load %.1f%%, %d overloaded.\n",
			team.Size, team.AverageLoad, team.OverloadedCount)
	}

	b.WriteString(`
Consider skill match, current workload, and wellbeing. Avoid adding work to
someone already near capacity or reporting low mood or energy unless no
better option exists.

Reply with a single JSON object and nothing else:
{
  "recommended_person_id": "<candidate id>",
  "recommended_person_name": "<candidate name>",
  "match_score": <0-100>,
  "reasoning": "<why this person>",
  "pros": ["..."],
  "cons": ["..."],
  "alternative_person_id": "<candidate id or null>",
  "alternative_person_name": "<candidate name or null>",
  "warnings": ["..."]
}
`)

	return b.String()
}
