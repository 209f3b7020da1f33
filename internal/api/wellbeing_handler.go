package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ideiatech/smartleader-api/internal/domain"
	"github.com/ideiatech/smartleader-api/internal/service/wellbeing"
	"github.com/ideiatech/smartleader-api/internal/store"
)

// defaultBurnoutRiskThreshold is applied when a burnout pattern request
// does not name one.
const defaultBurnoutRiskThreshold = 50

// WellbeingHandler handles wellbeing check-in and analysis API requests.
type WellbeingHandler struct {
	wellbeingStore   store.WellbeingStore
	wellbeingService wellbeing.Service
	validator        *validator.Validate
	logger           *slog.Logger
}

// NewWellbeingHandler creates a new WellbeingHandler with the given
// dependencies.
func NewWellbeingHandler(
	wellbeingStore store.WellbeingStore,
	wellbeingService wellbeing.Service,
	logger *slog.Logger,
) *WellbeingHandler {
	if wellbeingStore == nil {
		panic("wellbeingStore cannot be nil")
	}
	if wellbeingService == nil {
		panic("wellbeingService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WellbeingHandler{
		wellbeingStore:   wellbeingStore,
		wellbeingService: wellbeingService,
		validator:        validator.New(),
		logger:           logger.With(slog.String("component", "wellbeing_handler")),
	}
}

// SubmitCheck handles POST /wellbeing/checks. The check is persisted
// first; the analyzer then runs and may back-fill its AI fields.
func (h *WellbeingHandler) SubmitCheck(w http.ResponseWriter, r *http.Request) {
	personID, ok := getPersonIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CheckinRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	check, err := domain.NewWellbeingCheck(personID, domain.MoodLevel(req.Mood), domain.EnergyLevel(req.Energy), req.Note)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid check data: "+err.Error())
		return
	}

	if err := h.wellbeingStore.Create(r.Context(), check); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	// Analysis runs after the write and may back-fill the stored check.
	// Its failure does not fail the submission.
	analysis, err := h.wellbeingService.AnalyzePerson(r.Context(), personID, wellbeing.MinWindowDays)
	if err != nil {
		h.logger.Warn("post-checkin analysis failed",
			slog.String("error", err.Error()),
			slog.String("person_id", personID.String()))
		RespondWithJSON(w, r, http.StatusCreated, check)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, map[string]any{
		"check":    check,
		"analysis": analysis,
	})
}

// ListMyChecks handles GET /wellbeing/checks?days=N, returning the
// authenticated person's recent checks in chronological order.
func (h *WellbeingHandler) ListMyChecks(w http.ResponseWriter, r *http.Request) {
	personID, ok := getPersonIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	days := wellbeing.MaxWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			RespondWithError(w, r, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	checks, err := h.wellbeingStore.ListForPersonSince(r.Context(), personID, since)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, checks)
}

// Analyze handles POST /ai/wellbeing/analyze.
func (h *WellbeingHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeWellbeingRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	analysis, err := h.wellbeingService.AnalyzePerson(r.Context(), req.PersonID, req.WindowDays)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, analysis)
}

// TeamSummary handles POST /ai/wellbeing/team-summary.
func (h *WellbeingHandler) TeamSummary(w http.ResponseWriter, r *http.Request) {
	var req TeamSummaryRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	summary, err := h.wellbeingService.TeamSummary(r.Context(), req.ManagerID, req.WindowDays)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, summary)
}

// BurnoutPattern handles POST /ai/wellbeing/burnout-pattern.
func (h *WellbeingHandler) BurnoutPattern(w http.ResponseWriter, r *http.Request) {
	var req BurnoutPatternRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	threshold := defaultBurnoutRiskThreshold
	if req.RiskThreshold != nil {
		threshold = *req.RiskThreshold
	}

	pattern, err := h.wellbeingService.DetectBurnoutPattern(r.Context(), req.PersonID, threshold)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, pattern)
}
