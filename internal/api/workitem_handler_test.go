package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideiatech/smartleader-api/internal/api"
	"github.com/ideiatech/smartleader-api/internal/api/shared"
	"github.com/ideiatech/smartleader-api/internal/domain"
	"github.com/ideiatech/smartleader-api/internal/mocks"
)

type workItemFixture struct {
	personStore *mocks.MockPersonStore
	itemStore   *mocks.MockWorkItemStore
	txRunner    *mocks.MockTxRunner
	handler     *api.WorkItemHandler
	creatorID   uuid.UUID
}

func newWorkItemFixture(t *testing.T) *workItemFixture {
	t.Helper()

	f := &workItemFixture{
		personStore: mocks.NewMockPersonStore(),
		itemStore:   mocks.NewMockWorkItemStore(),
		txRunner:    &mocks.MockTxRunner{},
		creatorID:   uuid.New(),
	}
	f.handler = api.NewWorkItemHandler(f.itemStore, f.personStore, f.txRunner, nil)
	return f
}

func (f *workItemFixture) addPerson(username string, capacity, load float64) *domain.Person {
	p := &domain.Person{
		ID:          uuid.New(),
		Email:       username + "@example.com",
		Username:    username,
		FullName:    username,
		Role:        domain.RoleContributor,
		IsActive:    true,
		Capacity:    capacity,
		CurrentLoad: load,
	}
	f.personStore.People[p.ID] = p
	return p
}

// postJSONAs posts a JSON body with the given person authenticated.
func (f *workItemFixture) postJSONAs(t *testing.T, body any) *httptest.ResponseRecorder {
	t.Helper()

	rec := postJSON(t, func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), shared.PersonIDContextKey, f.creatorID)
		f.handler.Create(w, r.WithContext(ctx))
	}, "/api/work-items", body)
	return rec
}

func (f *workItemFixture) deleteItem(t *testing.T, id uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Delete("/api/work-items/{id}", f.handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/api/work-items/"+id.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateAssignedItemAddsLoad(t *testing.T) {
	f := newWorkItemFixture(t)
	assignee := f.addPerson("ana", 40, 10)

	rec := f.postJSONAs(t, map[string]any{
		"title":           "Fix ingestion pipeline",
		"priority":        "high",
		"estimated_hours": 4,
		"assignee_id":     assignee.ID,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 14.0, assignee.CurrentLoad)
	assert.Equal(t, 1, f.txRunner.CallCount())

	var created domain.WorkItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.AssigneeID)
	assert.Equal(t, assignee.ID, *created.AssigneeID)
}

func TestCreateUnassignedItemLeavesLoadsAlone(t *testing.T) {
	f := newWorkItemFixture(t)
	person := f.addPerson("ana", 40, 10)

	rec := f.postJSONAs(t, map[string]any{
		"title":           "Write release notes",
		"priority":        "low",
		"estimated_hours": 4,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 10.0, person.CurrentLoad)
	assert.Equal(t, 0, f.txRunner.CallCount())
	assert.Len(t, f.itemStore.Items, 1)
}

func TestCreateWithUnknownAssignee(t *testing.T) {
	f := newWorkItemFixture(t)

	rec := f.postJSONAs(t, map[string]any{
		"title":       "Orphaned work",
		"priority":    "medium",
		"assignee_id": uuid.New(),
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, f.itemStore.Items, "item must not be persisted when the assignee is unknown")
}

func TestDeleteAssignedItemRestoresLoad(t *testing.T) {
	f := newWorkItemFixture(t)
	assignee := f.addPerson("ana", 40, 10)

	rec := f.postJSONAs(t, map[string]any{
		"title":           "Fix ingestion pipeline",
		"priority":        "high",
		"estimated_hours": 4,
		"assignee_id":     assignee.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 14.0, assignee.CurrentLoad)

	var created domain.WorkItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = f.deleteItem(t, created.ID)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 10.0, assignee.CurrentLoad, "delete must restore the load the assignment added")
	assert.Empty(t, f.itemStore.Items)
}

func TestDeleteClampsLoadAtZero(t *testing.T) {
	f := newWorkItemFixture(t)
	assignee := f.addPerson("ana", 40, 2)

	hours := 4.0
	item, err := domain.NewWorkItem("Legacy item", "", f.creatorID, domain.PriorityMedium)
	require.NoError(t, err)
	item.EstimatedHours = &hours
	item.AssigneeID = &assignee.ID
	f.itemStore.Items[item.ID] = item

	rec := f.deleteItem(t, item.ID)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0.0, assignee.CurrentLoad)
}

func TestDeleteUnassignedItemTouchesNoLoads(t *testing.T) {
	f := newWorkItemFixture(t)

	item, err := domain.NewWorkItem("Unassigned item", "", f.creatorID, domain.PriorityLow)
	require.NoError(t, err)
	f.itemStore.Items[item.ID] = item

	rec := f.deleteItem(t, item.ID)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, f.personStore.UpdatedPeople)
	assert.Empty(t, f.itemStore.Items)
}

func TestDeleteUnknownItem(t *testing.T) {
	f := newWorkItemFixture(t)

	rec := f.deleteItem(t, uuid.New())

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
