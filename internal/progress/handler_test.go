package progress_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planfitapp/planfit/internal/auth"
	"github.com/planfitapp/planfit/internal/plans"
	"github.com/planfitapp/planfit/internal/progress"
	"github.com/planfitapp/planfit/internal/telemetry/metrics"
)

type handlerTestSetup struct {
	router    *mux.Router
	storeMock *MockprogressStore
	exercises *MockexerciseGetter
}

func newHandlerTestSetup(t *testing.T) *handlerTestSetup {
	t.Helper()
	ctrl := gomock.NewController(t)
	storeMock := NewMockprogressStore(ctrl)
	exercisesMock := NewMockexerciseGetter(ctrl)

	service := progress.NewService(storeMock, exercisesMock)
	handler := progress.NewHandler(service, metrics.NewTestManager())

	router := mux.NewRouter()
	handler.SetupRoutes(router)

	return &handlerTestSetup{
		router:    router,
		storeMock: storeMock,
		exercises: exercisesMock,
	}
}

func newAuthedRequest(t *testing.T, userID int64, method, target string, body []byte) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(auth.ContextWithUserID(context.Background(), userID))
}

func weekPath(planID, exerciseID int64, week int) string {
	return fmt.Sprintf("/progress/plan/%d/exercise/%d/week/%d", planID, exerciseID, week)
}

func TestHandler_Get_FreshWeek(t *testing.T) {
	setup := newHandlerTestSetup(t)

	setup.exercises.EXPECT().
		GetExercise(gomock.Any(), int64(3)).
		Return(&plans.Exercise{ID: 3, Sets: 4}, nil)
	setup.storeMock.EXPECT().
		Get(gomock.Any(), progress.Key{UserID: 1, PlanID: 2, ExerciseID: 3, WeekNumber: 3}).
		Return(nil, progress.ErrProgressNotFound)

	rec := httptest.NewRecorder()
	setup.router.ServeHTTP(rec, newAuthedRequest(t, 1, "GET", weekPath(2, 3, 3), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var p progress.WeeklyProgress
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 0, p.SetsCompleted)
	assert.False(t, p.Done)
	assert.Empty(t, p.Notes)
}

func TestHandler_Get_Unauthenticated(t *testing.T) {
	setup := newHandlerTestSetup(t)

	req, err := http.NewRequest("GET", weekPath(2, 3, 3), nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	setup.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_UpdateSets_Increment(t *testing.T) {
	setup := newHandlerTestSetup(t)
	key := progress.Key{UserID: 1, PlanID: 2, ExerciseID: 3, WeekNumber: 3}

	setup.storeMock.EXPECT().
		GetOrCreate(gomock.Any(), key).
		Return(&progress.WeeklyProgress{Key: key}, nil)
	setup.storeMock.EXPECT().
		AddSets(gomock.Any(), key, 1, 4, gomock.Any()).
		Return(&progress.WeeklyProgress{Key: key, SetsCompleted: 1, Notes: []progress.Note{}}, nil)

	body, err := json.Marshal(progress.UpdateSetsRequest{SetsIncrement: 1, TotalSets: 4})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	setup.router.ServeHTTP(rec, newAuthedRequest(t, 1, "POST", weekPath(2, 3, 3)+"/sets", body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp progress.UpdateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.UpdatedProgress)
	assert.Equal(t, 1, resp.UpdatedProgress.SetsCompleted)
	assert.False(t, resp.UpdatedProgress.Done)
}

func TestHandler_UpdateSets_CompleteAll(t *testing.T) {
	setup := newHandlerTestSetup(t)
	key := progress.Key{UserID: 1, PlanID: 2, ExerciseID: 3, WeekNumber: 3}

	setup.exercises.EXPECT().
		GetExercise(gomock.Any(), int64(3)).
		Return(&plans.Exercise{ID: 3, Sets: 5}, nil)
	setup.storeMock.EXPECT().
		GetOrCreate(gomock.Any(), key).
		Return(&progress.WeeklyProgress{Key: key, SetsCompleted: 2}, nil)
	setup.storeMock.EXPECT().
		CompleteAll(gomock.Any(), key, 5, gomock.Any()).
		Return(&progress.WeeklyProgress{Key: key, SetsCompleted: 5, Notes: []progress.Note{}}, nil)

	body, err := json.Marshal(progress.UpdateSetsRequest{CompleteAll: true})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	setup.router.ServeHTTP(rec, newAuthedRequest(t, 1, "POST", weekPath(2, 3, 3)+"/sets", body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp progress.UpdateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.UpdatedProgress)
	assert.Equal(t, 5, resp.UpdatedProgress.SetsCompleted)
	assert.True(t, resp.UpdatedProgress.Done)
}

func TestHandler_UpdateSets_InvalidIncrement(t *testing.T) {
	setup := newHandlerTestSetup(t)

	body, err := json.Marshal(progress.UpdateSetsRequest{SetsIncrement: 3})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	setup.router.ServeHTTP(rec, newAuthedRequest(t, 1, "POST", weekPath(2, 3, 3)+"/sets", body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UpdateSets_TotalSetsUnresolved(t *testing.T) {
	setup := newHandlerTestSetup(t)

	setup.exercises.EXPECT().
		GetExercise(gomock.Any(), int64(3)).
		Return(nil, plans.ErrExerciseNotFound)

	body, err := json.Marshal(progress.UpdateSetsRequest{SetsIncrement: 1})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	setup.router.ServeHTTP(rec, newAuthedRequest(t, 1, "POST", weekPath(2, 3, 3)+"/sets", body))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp progress.UpdateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "could not determine total sets", resp.Message)
}

func TestHandler_AddNote(t *testing.T) {
	setup := newHandlerTestSetup(t)
	key := progress.Key{UserID: 1, PlanID: 2, ExerciseID: 3, WeekNumber: 3}

	setup.storeMock.EXPECT().
		GetOrCreate(gomock.Any(), key).
		Return(&progress.WeeklyProgress{Key: key}, nil)
	setup.storeMock.EXPECT().
		AddNote(gomock.Any(), key, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ progress.Key, note progress.Note) error {
			assert.Equal(t, "felt strong today", note.Note)
			return nil
		})

	body, err := json.Marshal(progress.NoteRequest{Text: " felt strong today "})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	setup.router.ServeHTTP(rec, newAuthedRequest(t, 1, "POST", weekPath(2, 3, 3)+"/notes", body))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp progress.NoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Note)
	assert.Equal(t, "felt strong today", resp.Note.Note)
	assert.NotEmpty(t, resp.Note.ID)
}

func TestHandler_AddNote_EmptyText(t *testing.T) {
	setup := newHandlerTestSetup(t)

	body, err := json.Marshal(progress.NoteRequest{Text: "   "})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	setup.router.ServeHTTP(rec, newAuthedRequest(t, 1, "POST", weekPath(2, 3, 3)+"/notes", body))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp progress.NoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "note text empty", resp.Message)
}

func TestHandler_EditNote(t *testing.T) {
	setup := newHandlerTestSetup(t)
	key := progress.Key{UserID: 1, PlanID: 2, ExerciseID: 3, WeekNumber: 3}

	setup.storeMock.EXPECT().
		EditNote(gomock.Any(), key, "note-id-1", "updated", gomock.Any()).
		Return(nil)

	body, err := json.Marshal(progress.NoteRequest{Text: "updated"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	setup.router.ServeHTTP(rec, newAuthedRequest(t, 1, "PUT", weekPath(2, 3, 3)+"/notes/note-id-1", body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp progress.NoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Note)
	assert.Equal(t, "note-id-1", resp.Note.ID)
	assert.Equal(t, "updated", resp.Note.Note)
}

func TestHandler_DeleteNote_NoteMissing(t *testing.T) {
	setup := newHandlerTestSetup(t)
	key := progress.Key{UserID: 1, PlanID: 2, ExerciseID: 3, WeekNumber: 3}

	setup.storeMock.EXPECT().
		DeleteNote(gomock.Any(), key, "gone").
		Return(progress.ErrNoteNotFound)

	rec := httptest.NewRecorder()
	setup.router.ServeHTTP(rec, newAuthedRequest(t, 1, "DELETE", weekPath(2, 3, 3)+"/notes/gone", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp progress.NoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "note not found", resp.Message)
}

func TestHandler_DeleteNote_ProgressMissing(t *testing.T) {
	setup := newHandlerTestSetup(t)
	key := progress.Key{UserID: 1, PlanID: 2, ExerciseID: 3, WeekNumber: 3}

	setup.storeMock.EXPECT().
		DeleteNote(gomock.Any(), key, "note-id-1").
		Return(progress.ErrProgressNotFound)

	rec := httptest.NewRecorder()
	setup.router.ServeHTTP(rec, newAuthedRequest(t, 1, "DELETE", weekPath(2, 3, 3)+"/notes/note-id-1", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp progress.NoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "progress not found", resp.Message)
}

func TestHandler_InvalidWeekNumber(t *testing.T) {
	setup := newHandlerTestSetup(t)

	rec := httptest.NewRecorder()
	setup.router.ServeHTTP(rec, newAuthedRequest(t, 1, "GET", "/progress/plan/2/exercise/3/week/0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
