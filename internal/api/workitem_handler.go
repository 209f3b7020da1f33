package api

import (
	"context"
	"database/sql"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ideiatech/smartleader-api/internal/domain"
	"github.com/ideiatech/smartleader-api/internal/store"
)

// WorkItemHandler handles work item API requests.
type WorkItemHandler struct {
	workItemStore store.WorkItemStore
	personStore   store.PersonStore
	txRunner      store.TxRunner
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewWorkItemHandler creates a new WorkItemHandler with the given
// dependencies.
func NewWorkItemHandler(
	workItemStore store.WorkItemStore,
	personStore store.PersonStore,
	txRunner store.TxRunner,
	logger *slog.Logger,
) *WorkItemHandler {
	if workItemStore == nil {
		panic("workItemStore cannot be nil")
	}
	if personStore == nil {
		panic("personStore cannot be nil")
	}
	if txRunner == nil {
		panic("txRunner cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WorkItemHandler{
		workItemStore: workItemStore,
		personStore:   personStore,
		txRunner:      txRunner,
		validator:     validator.New(),
		logger:        logger.With(slog.String("component", "work_item_handler")),
	}
}

// Create handles POST /work-items. When the request names an assignee, the
// item is persisted and the assignee's load increased in one transaction,
// keeping the load accumulator consistent with the new assignment.
func (h *WorkItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := getPersonIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateWorkItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	item, err := domain.NewWorkItem(req.Title, req.Description, creatorID, domain.WorkItemPriority(req.Priority))
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid work item data: "+err.Error())
		return
	}

	item.EstimatedHours = req.EstimatedHours
	item.RequiredSkills = req.RequiredSkills
	item.DueDate = req.DueDate
	item.AssigneeID = req.AssigneeID

	if req.AssigneeID == nil {
		if err := h.workItemStore.Create(r.Context(), item); err != nil {
			HandleServiceError(w, r, err)
			return
		}
		RespondWithJSON(w, r, http.StatusCreated, item)
		return
	}

	err = h.txRunner.RunInTx(r.Context(), func(ctx context.Context, tx *sql.Tx) error {
		itemStore := h.workItemStore.WithTx(tx)
		personStore := h.personStore.WithTx(tx)

		assignee, err := personStore.GetByID(ctx, *req.AssigneeID)
		if err != nil {
			return err
		}

		if err := itemStore.Create(ctx, item); err != nil {
			return err
		}

		assignee.CurrentLoad += item.EffortHours()
		return personStore.Update(ctx, assignee)
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, item)
}

// Get handles GET /work-items/{id}.
func (h *WorkItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.workItemStore.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, item)
}

// ListMine handles GET /work-items, returning the authenticated person's
// assigned items.
func (h *WorkItemHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	personID, ok := getPersonIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	items, err := h.workItemStore.ListForAssignee(r.Context(), personID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, items)
}

// Delete handles DELETE /work-items/{id}. If the item is assigned, its
// estimated hours are subtracted from the assignee's load in the same
// transaction, clamped at zero.
func (h *WorkItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err = h.txRunner.RunInTx(r.Context(), func(ctx context.Context, tx *sql.Tx) error {
		itemStore := h.workItemStore.WithTx(tx)
		personStore := h.personStore.WithTx(tx)

		item, err := itemStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := itemStore.Delete(ctx, item.ID); err != nil {
			return err
		}

		if item.AssigneeID == nil {
			return nil
		}

		assignee, err := personStore.GetByID(ctx, *item.AssigneeID)
		if err != nil {
			return err
		}

		assignee.CurrentLoad = math.Max(0, assignee.CurrentLoad-item.EffortHours())
		return personStore.Update(ctx, assignee)
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Start handles POST /work-items/{id}/start.
func (h *WorkItemHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(item *domain.WorkItem) error { return item.Start() })
}

// Complete handles POST /work-items/{id}/complete.
func (h *WorkItemHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(item *domain.WorkItem) error { return item.Complete() })
}

// Block handles POST /work-items/{id}/block.
func (h *WorkItemHandler) Block(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(item *domain.WorkItem) error { return item.Block() })
}

// Cancel handles POST /work-items/{id}/cancel.
func (h *WorkItemHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(item *domain.WorkItem) error { return item.Cancel() })
}

// transition runs one status machine transition on the identified item and
// persists it.
func (h *WorkItemHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(*domain.WorkItem) error,
) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.workItemStore.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := apply(item); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.workItemStore.Update(r.Context(), item); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, item)
}
