package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracepage/src/model"
	"tracepage/src/repository"
)

type mockNoteStore struct {
	note        *model.Note
	err         error
	id          uint
	created     *model.Note
	calledCount int
}

func (m *mockNoteStore) Get(ctx context.Context, id uint) (*model.Note, error) {
	m.calledCount++
	m.id = id
	return m.note, m.err
}

func (m *mockNoteStore) Create(ctx context.Context, note *model.Note) error {
	m.calledCount++
	m.created = note
	if m.err == nil {
		note.ID = 7
	}
	return m.err
}

func serve(t *testing.T, method, pattern, target, body string, h func(http.ResponseWriter, *http.Request) error) (*httptest.ResponseRecorder, error) {
	t.Helper()
	var handlerErr error
	r := chi.NewRouter()
	r.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerErr = h(w, r)
	}))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr, handlerErr
}

func TestGetNoteHandler_InvalidID(t *testing.T) {
	store := &mockNoteStore{}
	rr, err := serve(t, http.MethodGet, "/notes/{noteID}", "/notes/abc", "", GetNoteHandler(store))

	require.NoError(t, err)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	assert.Equal(t, 0, store.calledCount)
}

func TestGetNoteHandler_NotFound(t *testing.T) {
	store := &mockNoteStore{err: repository.ErrNoteNotFound}
	rr, err := serve(t, http.MethodGet, "/notes/{noteID}", "/notes/3", "", GetNoteHandler(store))

	require.NoError(t, err)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
	assert.Equal(t, uint(3), store.id)
}

func TestGetNoteHandler_StoreErrorIsReturned(t *testing.T) {
	store := &mockNoteStore{err: assert.AnError}
	rr, err := serve(t, http.MethodGet, "/notes/{noteID}", "/notes/3", "", GetNoteHandler(store))

	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, rr.Body.String())
}

func TestGetNoteHandler_Success(t *testing.T) {
	store := &mockNoteStore{note: &model.Note{ID: 3, Title: "hello"}}
	rr, err := serve(t, http.MethodGet, "/notes/{noteID}", "/notes/3", "", GetNoteHandler(store))

	require.NoError(t, err)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), `"title":"hello"`)
}

func TestCreateNoteHandler_InvalidPayload(t *testing.T) {
	store := &mockNoteStore{}
	rr, err := serve(t, http.MethodPost, "/notes", "/notes", "{", CreateNoteHandler(store))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, err = serve(t, http.MethodPost, "/notes", "/notes", `{"title":"  "}`, CreateNoteHandler(store))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, store.calledCount)
}

func TestCreateNoteHandler_Success(t *testing.T) {
	store := &mockNoteStore{}
	rr, err := serve(t, http.MethodPost, "/notes", "/notes", `{"title":" hi ","body":"there"}`, CreateNoteHandler(store))

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, store.created)
	assert.Equal(t, "hi", store.created.Title)
	assert.Contains(t, rr.Body.String(), `"id":7`)
}

func TestCreateNoteHandler_StoreErrorIsWrapped(t *testing.T) {
	store := &mockNoteStore{err: assert.AnError}
	_, err := serve(t, http.MethodPost, "/notes", "/notes", `{"title":"hi"}`, CreateNoteHandler(store))

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "handling note creation")
}
