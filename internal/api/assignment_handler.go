package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ideiatech/smartleader-api/internal/service/assignment"
)

// AssignmentHandler handles AI assignment and rebalancing API requests.
type AssignmentHandler struct {
	assignmentService assignment.Service
	validator         *validator.Validate
	logger            *slog.Logger
}

// NewAssignmentHandler creates a new AssignmentHandler with the given
// dependencies.
func NewAssignmentHandler(assignmentService assignment.Service, logger *slog.Logger) *AssignmentHandler {
	if assignmentService == nil {
		panic("assignmentService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AssignmentHandler{
		assignmentService: assignmentService,
		validator:         validator.New(),
		logger:            logger.With(slog.String("component", "assignment_handler")),
	}
}

// RecommendAssignee handles POST /ai/recommend-assignee.
func (h *AssignmentHandler) RecommendAssignee(w http.ResponseWriter, r *http.Request) {
	var req RecommendAssigneeRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	rec, err := h.assignmentService.RecommendAssignee(r.Context(), req.WorkItemID, req.TeamScope)
	if err != nil {
		if h.respondNoCandidates(w, r, err, req.WorkItemID) {
			return
		}
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, rec)
}

// AutoDistribute handles POST /ai/auto-distribute.
func (h *AssignmentHandler) AutoDistribute(w http.ResponseWriter, r *http.Request) {
	var req AutoDistributeRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	rec, err := h.assignmentService.AutoDistribute(r.Context(), req.WorkItemID, req.AutoAssign)
	if err != nil {
		if h.respondNoCandidates(w, r, err, req.WorkItemID) {
			return
		}
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, rec)
}

// Rebalance handles POST /ai/rebalance.
func (h *AssignmentHandler) Rebalance(w http.ResponseWriter, r *http.Request) {
	var req RebalanceRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	report, err := h.assignmentService.RebalanceTeam(r.Context(), req.ManagerID, req.Apply)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, report)
}

// respondNoCandidates renders the no-eligible-candidates outcome as a
// structured result rather than an error. Returns true when it handled
// the response.
func (h *AssignmentHandler) respondNoCandidates(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	workItemID uuid.UUID,
) bool {
	if !errors.Is(err, assignment.ErrNoEligibleCandidates) {
		return false
	}

	RespondWithJSON(w, r, http.StatusOK, NoCandidatesResponse{
		WorkItemID: workItemID,
		Message:    "No eligible candidates are available for this work item.",
	})
	return true
}
