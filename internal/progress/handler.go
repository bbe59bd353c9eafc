package progress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/planfitapp/planfit/internal/auth"
	"github.com/planfitapp/planfit/internal/telemetry/metrics"
	"github.com/planfitapp/planfit/internal/telemetry/tracing"
	"github.com/planfitapp/planfit/pkg"
)

type progressService interface {
	Read(ctx context.Context, key Key) (*WeeklyProgress, error)
	Update(ctx context.Context, params UpdateParams) (*WeeklyProgress, error)
	AddNote(ctx context.Context, key Key, text string) (*Note, error)
	EditNote(ctx context.Context, key Key, noteID, text string) (*Note, error)
	DeleteNote(ctx context.Context, key Key, noteID string) error
}

type UpdateSetsRequest struct {
	SetsIncrement int  `json:"setsIncrement"`
	CompleteAll   bool `json:"completeAll"`
	TotalSets     int  `json:"totalSets,omitempty"`
}

type NoteRequest struct {
	Text string `json:"text"`
}

type UpdateResponse struct {
	Success         bool            `json:"success"`
	UpdatedProgress *WeeklyProgress `json:"updatedProgress,omitempty"`
	Message         string          `json:"message,omitempty"`
}

type NoteResponse struct {
	Success bool   `json:"success"`
	Note    *Note  `json:"note,omitempty"`
	Message string `json:"message,omitempty"`
}

type Handler struct {
	service progressService
	metrics *metrics.Manager
}

func NewHandler(service progressService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	weekPath := "/progress/plan/{planId}/exercise/{exerciseId}/week/{week}"
	r.HandleFunc(weekPath, handler.HandleGet).Methods("GET", "OPTIONS").Name("get-weekly-progress")
	r.HandleFunc(weekPath+"/sets", handler.HandleUpdateSets).Methods("POST", "OPTIONS").Name("update-set-completion")
	r.HandleFunc(weekPath+"/notes", handler.HandleAddNote).Methods("POST", "OPTIONS").Name("add-weekly-note")
	r.HandleFunc(weekPath+"/notes/{noteId}", handler.HandleEditNote).Methods("PUT", "OPTIONS").Name("edit-weekly-note")
	r.HandleFunc(weekPath+"/notes/{noteId}", handler.HandleDeleteNote).Methods("DELETE", "OPTIONS").Name("delete-weekly-note")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.get")
	defer span.End()

	key, ok := handler.progressKey(ctx, w, r)
	if !ok {
		return
	}

	weeklyProgress, err := handler.service.Read(ctx, key)
	if errors.Is(err, ErrTotalSetsUnresolved) {
		http.Error(w, "could not determine total sets", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf(
			"failed to get weekly progress [plan %d, exercise %d, week %d]: %s",
			key.PlanID, key.ExerciseID, key.WeekNumber, err,
		)
		http.Error(w, "failed to get weekly progress", http.StatusInternalServerError)
		return
	}

	progressJson, err := json.Marshal(weeklyProgress)
	if err != nil {
		log.Errorf("failed to marshal weekly progress: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, progressJson)
}

func (handler *Handler) HandleUpdateSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.updateSets")
	defer span.End()

	key, ok := handler.progressKey(ctx, w, r)
	if !ok {
		return
	}

	var req UpdateSetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update sets, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.CompleteAll && req.SetsIncrement != 1 && req.SetsIncrement != -1 {
		http.Error(w, "error, sets increment must be -1 or +1", http.StatusBadRequest)
		return
	}

	if req.CompleteAll {
		handler.metrics.CounterCompleteAll.Inc()
	} else {
		handler.metrics.CounterSetUpdates.Inc()
	}

	updatedProgress, err := handler.service.Update(ctx, UpdateParams{
		Key:           key,
		SetsIncrement: req.SetsIncrement,
		CompleteAll:   req.CompleteAll,
		TotalSets:     req.TotalSets,
	})
	if err != nil {
		handler.writeUpdateFailure(w, key, err)
		return
	}

	handler.writeJson(w, UpdateResponse{
		Success:         true,
		UpdatedProgress: updatedProgress,
	}, http.StatusOK)
}

func (handler *Handler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.addNote")
	defer span.End()

	key, ok := handler.progressKey(ctx, w, r)
	if !ok {
		return
	}

	req, ok := handler.noteText(w, r)
	if !ok {
		return
	}

	handler.metrics.CounterWeeklyNotes.Inc()

	note, err := handler.service.AddNote(ctx, key, req.Text)
	if err != nil {
		handler.writeNoteFailure(w, key, err)
		return
	}

	handler.writeJson(w, NoteResponse{
		Success: true,
		Note:    note,
	}, http.StatusCreated)
}

func (handler *Handler) HandleEditNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.editNote")
	defer span.End()

	key, ok := handler.progressKey(ctx, w, r)
	if !ok {
		return
	}

	req, ok := handler.noteText(w, r)
	if !ok {
		return
	}

	handler.metrics.CounterWeeklyNotes.Inc()

	note, err := handler.service.EditNote(ctx, key, mux.Vars(r)["noteId"], req.Text)
	if err != nil {
		handler.writeNoteFailure(w, key, err)
		return
	}

	handler.writeJson(w, NoteResponse{
		Success: true,
		Note:    note,
	}, http.StatusOK)
}

func (handler *Handler) HandleDeleteNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.deleteNote")
	defer span.End()

	key, ok := handler.progressKey(ctx, w, r)
	if !ok {
		return
	}

	handler.metrics.CounterWeeklyNotes.Inc()

	if err := handler.service.DeleteNote(ctx, key, mux.Vars(r)["noteId"]); err != nil {
		handler.writeNoteFailure(w, key, err)
		return
	}

	handler.writeJson(w, NoteResponse{Success: true}, http.StatusOK)
}

// progressKey assembles the compound key from the authenticated user and
// the path variables, writing the error response itself on failure.
func (handler *Handler) progressKey(ctx context.Context, w http.ResponseWriter, r *http.Request) (Key, bool) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return Key{}, false
	}

	vars := mux.Vars(r)
	planID, err := strconv.ParseInt(vars["planId"], 10, 64)
	if err != nil {
		http.Error(w, "error, plan id invalid", http.StatusBadRequest)
		return Key{}, false
	}
	exerciseID, err := strconv.ParseInt(vars["exerciseId"], 10, 64)
	if err != nil {
		http.Error(w, "error, exercise id invalid", http.StatusBadRequest)
		return Key{}, false
	}
	week, err := strconv.Atoi(vars["week"])
	if err != nil || week < 1 {
		http.Error(w, "error, week number invalid", http.StatusBadRequest)
		return Key{}, false
	}

	return Key{
		UserID:     userID,
		PlanID:     planID,
		ExerciseID: exerciseID,
		WeekNumber: week,
	}, true
}

func (handler *Handler) noteText(w http.ResponseWriter, r *http.Request) (NoteRequest, bool) {
	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("weekly note, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return NoteRequest{}, false
	}
	return req, true
}

func (handler *Handler) writeUpdateFailure(w http.ResponseWriter, key Key, err error) {
	switch {
	case errors.Is(err, ErrTotalSetsUnresolved):
		handler.writeJson(w, UpdateResponse{
			Success: false,
			Message: "could not determine total sets",
		}, http.StatusBadRequest)
	case errors.Is(err, ErrInvalidIncrement):
		handler.writeJson(w, UpdateResponse{
			Success: false,
			Message: "sets increment must be -1 or +1",
		}, http.StatusBadRequest)
	case errors.Is(err, ErrProgressNotFound):
		handler.writeJson(w, UpdateResponse{
			Success: false,
			Message: "progress not found",
		}, http.StatusNotFound)
	default:
		log.Errorf(
			"update set completion failed [plan %d, exercise %d, week %d]: %s",
			key.PlanID, key.ExerciseID, key.WeekNumber, err,
		)
		handler.writeJson(w, UpdateResponse{
			Success: false,
			Message: "operation failed",
		}, http.StatusInternalServerError)
	}
}

func (handler *Handler) writeNoteFailure(w http.ResponseWriter, key Key, err error) {
	switch {
	case errors.Is(err, ErrEmptyNote):
		handler.writeJson(w, NoteResponse{
			Success: false,
			Message: "note text empty",
		}, http.StatusBadRequest)
	case errors.Is(err, ErrProgressNotFound):
		handler.writeJson(w, NoteResponse{
			Success: false,
			Message: "progress not found",
		}, http.StatusNotFound)
	case errors.Is(err, ErrNoteNotFound):
		handler.writeJson(w, NoteResponse{
			Success: false,
			Message: "note not found",
		}, http.StatusNotFound)
	default:
		log.Errorf(
			"weekly note operation failed [plan %d, exercise %d, week %d]: %s",
			key.PlanID, key.ExerciseID, key.WeekNumber, err,
		)
		handler.writeJson(w, NoteResponse{
			Success: false,
			Message: "operation failed",
		}, http.StatusInternalServerError)
	}
}

func (handler *Handler) writeJson(w http.ResponseWriter, resp any, statusCode int) {
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, statusCode)
}
