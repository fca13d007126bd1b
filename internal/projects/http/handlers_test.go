package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilemaker-app/tilemaker-backend/internal/auth"
	"github.com/tilemaker-app/tilemaker-backend/internal/projects"
)

type fakeStore struct {
	byUser  map[string][]projects.Project
	upserts []string // "uid/projectID" pairs, in order
	deletes []string
	fail    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{byUser: make(map[string][]projects.Project)}
}

func (f *fakeStore) List(_ context.Context, userID string) ([]projects.Project, error) {
	if f.fail {
		return nil, errors.New("db down")
	}
	return f.byUser[userID], nil
}

func (f *fakeStore) Upsert(_ context.Context, userID string, p projects.Project) error {
	if f.fail {
		return errors.New("db down")
	}
	f.upserts = append(f.upserts, userID+"/"+p.ID)
	f.byUser[userID] = append(f.byUser[userID], p)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, userID, id string) error {
	if f.fail {
		return errors.New("db down")
	}
	f.deletes = append(f.deletes, userID+"/"+id)
	return nil
}

func testRouter(store Store, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rg := r.Group("/api/projects")
	rg.Use(func(c *gin.Context) {
		c.Set(auth.CtxUserID, uid)
	})
	New(store).Register(rg)
	return r
}

func do(r *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		rd = bytes.NewReader(data)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestList_ReturnsOwnProjectsOnly(t *testing.T) {
	store := newFakeStore()
	store.byUser["user-1"] = []projects.Project{
		{ID: "p1", Name: "mine", Cards: json.RawMessage(`[]`)},
	}
	store.byUser["user-2"] = []projects.Project{
		{ID: "p9", Name: "not mine", Cards: json.RawMessage(`[]`)},
	}
	r := testRouter(store, "user-1")

	w := do(r, http.MethodGet, "/api/projects", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got []projects.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestList_EmptyIsJSONArray(t *testing.T) {
	r := testRouter(newFakeStore(), "user-1")

	w := do(r, http.MethodGet, "/api/projects", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got []projects.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Empty(t, got)
}

func TestSave_MissingFieldsIs400(t *testing.T) {
	store := newFakeStore()
	r := testRouter(store, "user-1")

	for name, body := range map[string]map[string]any{
		"no id":    {"name": "x", "cards": []any{}},
		"no name":  {"id": "p1", "cards": []any{}},
		"no cards": {"id": "p1", "name": "x"},
	} {
		w := do(r, http.MethodPost, "/api/projects", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.Contains(t, w.Body.String(), "Missing required fields", name)
	}
	assert.Empty(t, store.upserts)
}

func TestSave_UpsertsUnderCallerUID(t *testing.T) {
	store := newFakeStore()
	r := testRouter(store, "user-1")

	w := do(r, http.MethodPost, "/api/projects", map[string]any{
		"id":         "p1",
		"name":       "Holiday Cards",
		"cards":      []map[string]any{{"id": "c1", "title": "New Card 1"}},
		"exportName": "holiday-2026",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	require.Equal(t, []string{"user-1/p1"}, store.upserts)

	saved := store.byUser["user-1"][0]
	require.NotNil(t, saved.ExportName)
	assert.Equal(t, "holiday-2026", *saved.ExportName)
}

func TestDelete_MissingIDIs400(t *testing.T) {
	store := newFakeStore()
	r := testRouter(store, "user-1")

	w := do(r, http.MethodDelete, "/api/projects", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing ID")
	assert.Empty(t, store.deletes)
}

func TestDelete_ScopedToCallerAndIdempotent(t *testing.T) {
	store := newFakeStore()
	r := testRouter(store, "user-1")

	// The id never existed; the handler still reports success.
	w := do(r, http.MethodDelete, "/api/projects?id=ghost", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Equal(t, []string{"user-1/ghost"}, store.deletes)
}

func TestStoreFailureIs500(t *testing.T) {
	store := newFakeStore()
	store.fail = true
	r := testRouter(store, "user-1")

	for _, w := range []*httptest.ResponseRecorder{
		do(r, http.MethodGet, "/api/projects", nil),
		do(r, http.MethodPost, "/api/projects", map[string]any{
			"id": "p1", "name": "x", "cards": []any{},
		}),
		do(r, http.MethodDelete, "/api/projects?id=p1", nil),
	} {
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal Server Error")
	}
}
