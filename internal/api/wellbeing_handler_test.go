package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideiatech/smartleader-api/internal/api"
	"github.com/ideiatech/smartleader-api/internal/mocks"
	"github.com/ideiatech/smartleader-api/internal/service/wellbeing"
)

// stubWellbeingService implements wellbeing.Service with function fields.
type stubWellbeingService struct {
	AnalyzePersonFn        func(ctx context.Context, personID uuid.UUID, windowDays int) (*wellbeing.Analysis, error)
	TeamSummaryFn          func(ctx context.Context, managerID uuid.UUID, windowDays int) (*wellbeing.TeamSummary, error)
	DetectBurnoutPatternFn func(ctx context.Context, personID uuid.UUID, riskThreshold int) (*wellbeing.BurnoutPattern, error)
}

func (s *stubWellbeingService) AnalyzePerson(
	ctx context.Context,
	personID uuid.UUID,
	windowDays int,
) (*wellbeing.Analysis, error) {
	return s.AnalyzePersonFn(ctx, personID, windowDays)
}

func (s *stubWellbeingService) TeamSummary(
	ctx context.Context,
	managerID uuid.UUID,
	windowDays int,
) (*wellbeing.TeamSummary, error) {
	return s.TeamSummaryFn(ctx, managerID, windowDays)
}

func (s *stubWellbeingService) DetectBurnoutPattern(
	ctx context.Context,
	personID uuid.UUID,
	riskThreshold int,
) (*wellbeing.BurnoutPattern, error) {
	return s.DetectBurnoutPatternFn(ctx, personID, riskThreshold)
}

func burnoutPatternThreshold(t *testing.T, body map[string]any) int {
	t.Helper()

	gotThreshold := -1
	svc := &stubWellbeingService{
		DetectBurnoutPatternFn: func(ctx context.Context, personID uuid.UUID, riskThreshold int) (*wellbeing.BurnoutPattern, error) {
			gotThreshold = riskThreshold
			return &wellbeing.BurnoutPattern{PersonID: personID, RiskThreshold: riskThreshold}, nil
		},
	}
	handler := api.NewWellbeingHandler(mocks.NewMockWellbeingStore(), svc, nil)

	rec := postJSON(t, handler.BurnoutPattern, "/api/ai/wellbeing/burnout-pattern", body)
	require.Equal(t, http.StatusOK, rec.Code)
	return gotThreshold
}

func TestBurnoutPatternDefaultThreshold(t *testing.T) {
	threshold := burnoutPatternThreshold(t, map[string]any{
		"person_id": uuid.New(),
	})

	assert.Equal(t, 50, threshold)
}

func TestBurnoutPatternExplicitZeroThreshold(t *testing.T) {
	threshold := burnoutPatternThreshold(t, map[string]any{
		"person_id":      uuid.New(),
		"risk_threshold": 0,
	})

	assert.Equal(t, 0, threshold, "an explicit zero threshold must not fall back to the default")
}

func TestBurnoutPatternRejectsOutOfRangeThreshold(t *testing.T) {
	svc := &stubWellbeingService{}
	handler := api.NewWellbeingHandler(mocks.NewMockWellbeingStore(), svc, nil)

	rec := postJSON(t, handler.BurnoutPattern, "/api/ai/wellbeing/burnout-pattern", map[string]any{
		"person_id":      uuid.New(),
		"risk_threshold": 101,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
