package wellbeing

import (
	"errors"
	"testing"

	"github.com/ideiatech/smartleader-api/internal/oracle"
)

func TestParseAnalysisReply(t *testing.T) {
	raw := `{
		"sentiment_score": -40,
		"burnout_risk": 85,
		"summary": "Sustained decline over the window.",
		"recommendations": ["Reduce workload", "Schedule a 1:1"]
	}`

	overlay, err := parseAnalysisReply(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if overlay.SentimentScore == nil || *overlay.SentimentScore != -40 {
		t.Errorf("Expected sentiment score -40, got %v", overlay.SentimentScore)
	}
	if overlay.BurnoutRisk == nil || *overlay.BurnoutRisk != 85 {
		t.Errorf("Expected burnout risk 85, got %v", overlay.BurnoutRisk)
	}
	if overlay.Summary != "Sustained decline over the window." {
		t.Errorf("Unexpected summary: %q", overlay.Summary)
	}
	if len(overlay.Recommendations) != 2 {
		t.Errorf("Expected 2 recommendations, got %d", len(overlay.Recommendations))
	}
}

func TestParseAnalysisReplyWithCodeFences(t *testing.T) {
	raw := "```json\n{\"sentiment_score\": 20, \"burnout_risk\": 10}\n```"

	overlay, err := parseAnalysisReply(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if overlay.SentimentScore == nil || *overlay.SentimentScore != 20 {
		t.Errorf("Expected sentiment score 20, got %v", overlay.SentimentScore)
	}
}

func TestParseAnalysisReplyMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not JSON", "the member seems tired"},
		{"sentiment out of range", `{"sentiment_score": 150}`},
		{"burnout risk out of range", `{"burnout_risk": -5}`},
		{"no usable fields", `{"summary": "fine"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseAnalysisReply(tc.raw)
			if !errors.Is(err, oracle.ErrMalformedReply) {
				t.Errorf("Expected ErrMalformedReply, got %v", err)
			}
		})
	}
}

func TestParseAnalysisReplyExtras(t *testing.T) {
	raw := `{"burnout_risk": 30, "confidence": 0.9, "model_notes": "short window"}`

	overlay, err := parseAnalysisReply(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(overlay.Extra) != 2 {
		t.Fatalf("Expected 2 extra fields, got %d", len(overlay.Extra))
	}
	if overlay.Extra["confidence"] != 0.9 {
		t.Errorf("Expected confidence extra to pass through, got %v", overlay.Extra["confidence"])
	}
}

func TestMergeOverlayReplacesRiskAndRebands(t *testing.T) {
	analysis := &Analysis{
		BurnoutRisk:   30,
		Severity:      SeverityLow,
		MoodDeclining: true,
	}

	risk := 85
	sentiment := -20
	mergeOverlay(analysis, &oracleOverlay{
		SentimentScore: &sentiment,
		BurnoutRisk:    &risk,
		Summary:        "Worsening fast.",
	})

	if !analysis.FromOracle {
		t.Error("Expected FromOracle to be set")
	}
	if analysis.BurnoutRisk != 85 {
		t.Errorf("Expected oracle risk to replace local, got %d", analysis.BurnoutRisk)
	}
	if analysis.Severity != SeverityHigh {
		t.Errorf("Expected severity re-banded to high, got %s", analysis.Severity)
	}
	// Local metrics stay intact.
	if !analysis.MoodDeclining {
		t.Error("Expected local trend flags to survive the merge")
	}
}

func TestMergeOverlayWithoutRiskKeepsLocal(t *testing.T) {
	analysis := &Analysis{BurnoutRisk: 60, Severity: SeverityMedium}

	sentiment := 10
	mergeOverlay(analysis, &oracleOverlay{SentimentScore: &sentiment})

	if analysis.BurnoutRisk != 60 {
		t.Errorf("Expected local risk to be kept, got %d", analysis.BurnoutRisk)
	}
	if analysis.Severity != SeverityMedium {
		t.Errorf("Expected severity unchanged, got %s", analysis.Severity)
	}
}
