package wellbeing

import (
	"encoding/json"
	"fmt"

	"github.com/ideiatech/smartleader-api/internal/oracle"
)

// Named oracle reply fields the merge recognizes. Anything else lands in
// the analysis Extra map.
var knownAnalysisFields = map[string]struct{}{
	"sentiment_score": {},
	"burnout_risk":    {},
	"summary":         {},
	"recommendations": {},
}

// oracleOverlay is the validated subset of an oracle wellbeing reply.
type oracleOverlay struct {
	SentimentScore  *int
	BurnoutRisk     *int
	Summary         string
	Recommendations []string
	Extra           map[string]any
}

// parseAnalysisReply parses an oracle wellbeing reply. Named fields are
// kept only when present and within their valid ranges (sentiment
// -100..100, burnout risk 0..100); out-of-range values make the whole
// reply malformed. Unknown fields pass through as opaque extras.
func parseAnalysisReply(raw string) (*oracleOverlay, error) {
	payload := oracle.StripCodeFences(raw)

	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", oracle.ErrMalformedReply, err)
	}

	overlay := &oracleOverlay{}

	if v, ok := fields["sentiment_score"].(float64); ok {
		score := int(v)
		if score < -100 || score > 100 {
			return nil, fmt.Errorf("%w: sentiment_score %d out of range", oracle.ErrMalformedReply, score)
		}
		overlay.SentimentScore = &score
	}

	if v, ok := fields["burnout_risk"].(float64); ok {
		risk := int(v)
		if risk < 0 || risk > 100 {
			return nil, fmt.Errorf("%w: burnout_risk %d out of range", oracle.ErrMalformedReply, risk)
		}
		overlay.BurnoutRisk = &risk
	}

	if overlay.SentimentScore == nil && overlay.BurnoutRisk == nil {
		return nil, fmt.Errorf("%w: no usable analysis fields", oracle.ErrMalformedReply)
	}

	overlay.Summary, _ = fields["summary"].(string)
	if items, ok := fields["recommendations"].([]any); ok {
		for _, item := range items {
			if s, ok := item.(string); ok {
				overlay.Recommendations = append(overlay.Recommendations, s)
			}
		}
	}

	for key, value := range fields {
		if _, known := knownAnalysisFields[key]; known {
			continue
		}
		if overlay.Extra == nil {
			overlay.Extra = make(map[string]any)
		}
		overlay.Extra[key] = value
	}

	return overlay, nil
}

// mergeOverlay lays the validated oracle fields over the local analysis.
// Local metrics stay intact so callers can compare both; only the named
// overlay fields and extras are added, and the oracle burnout risk
// replaces the local one when present.
func mergeOverlay(analysis *Analysis, overlay *oracleOverlay) {
	analysis.FromOracle = true
	analysis.SentimentScore = overlay.SentimentScore
	analysis.OracleSummary = overlay.Summary
	if len(overlay.Recommendations) > 0 {
		analysis.Recommendations = overlay.Recommendations
	}
	if overlay.BurnoutRisk != nil {
		analysis.BurnoutRisk = *overlay.BurnoutRisk
		analysis.Severity = severityFor(analysis.BurnoutRisk)
	}
	analysis.Extra = overlay.Extra
}
