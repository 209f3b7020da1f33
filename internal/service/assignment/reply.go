package assignment

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/ideiatech/smartleader-api/internal/oracle"
)

// Named reply fields the parser recognizes. Anything else lands in the
// recommendation's Extra map.
var knownReplyFields = map[string]struct{}{
	"recommended_person_id":   {},
	"recommended_person_name": {},
	"match_score":             {},
	"reasoning":               {},
	"pros":                    {},
	"cons":                    {},
	"alternative_person_id":   {},
	"alternative_person_name": {},
	"warnings":                {},
}

// parseAssignmentReply parses and validates an oracle reply against the
// candidate set. The reply must name one of the candidates and carry a
// score and reasoning; anything less is malformed. Scores outside 0-100 are
// clamped rather than rejected.
func parseAssignmentReply(raw string, candidates []Candidate) (*Recommendation, error) {
	payload := oracle.StripCodeFences(raw)

	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", oracle.ErrMalformedReply, err)
	}

	idStr, _ := fields["recommended_person_id"].(string)
	personID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("%w: missing or invalid recommended_person_id", oracle.ErrMalformedReply)
	}

	chosen := findCandidate(candidates, personID)
	if chosen == nil {
		return nil, fmt.Errorf("%w: recommended person %s is not a candidate", oracle.ErrMalformedReply, personID)
	}

	score, ok := fields["match_score"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing or non-numeric match_score", oracle.ErrMalformedReply)
	}
	score = clampScore(score)

	reasoning, _ := fields["reasoning"].(string)
	if reasoning == "" {
		return nil, fmt.Errorf("%w: missing reasoning", oracle.ErrMalformedReply)
	}

	rec := &Recommendation{
		PersonID:   chosen.ID,
		PersonName: chosen.FullName,
		MatchScore: score,
		Reasoning:  reasoning,
		Pros:       stringSlice(fields["pros"]),
		Cons:       stringSlice(fields["cons"]),
		Warnings:   stringSlice(fields["warnings"]),
	}

	// The alternative is optional and dropped when it does not name a real
	// candidate.
	if altStr, ok := fields["alternative_person_id"].(string); ok {
		if altID, err := uuid.Parse(altStr); err == nil {
			if alt := findCandidate(candidates, altID); alt != nil && alt.ID != chosen.ID {
				rec.AlternativeID = &alt.ID
				rec.AlternativeName = alt.FullName
			}
		}
	}

	for key, value := range fields {
		if _, known := knownReplyFields[key]; known {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[key] = value
	}

	return rec, nil
}

// fallbackRecommendation is the deterministic path used when the oracle
// fails or replies with garbage: the candidate with the lowest load
// percentage wins, ties broken by first-encountered order. It never fails
// for a non-empty candidate set.
func fallbackRecommendation(candidates []Candidate) *Recommendation {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.LoadPercentage < best.LoadPercentage {
			best = c
		}
	}

	return &Recommendation{
		PersonID:     best.ID,
		PersonName:   best.FullName,
		MatchScore:   50,
		Reasoning:    "Recommendation oracle unavailable; selected the least loaded eligible candidate.",
		Warnings:     []string{"degraded recommendation quality: deterministic fallback used"},
		FromFallback: true,
	}
}

func findCandidate(candidates []Candidate, id uuid.UUID) *Candidate {
	for i := range candidates {
		if candidates[i].ID == id {
			return &candidates[i]
		}
	}
	return nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
