package plans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/planfitapp/planfit/internal/auth"
	"github.com/planfitapp/planfit/internal/telemetry/tracing"
	"github.com/planfitapp/planfit/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=plans_mocks_test.go -package=plans_test

type plansRepo interface {
	AddPlan(ctx context.Context, plan TrainingPlan) (*TrainingPlan, error)
	GetPlan(ctx context.Context, userID, planID int64) (*TrainingPlan, error)
	ListPlans(ctx context.Context, userID int64) ([]TrainingPlan, error)
	DeletePlan(ctx context.Context, userID, planID int64) error
	AddExercise(ctx context.Context, exercise Exercise) (*Exercise, error)
	GetExercise(ctx context.Context, id int64) (*Exercise, error)
	ListExercises(ctx context.Context, planID int64) ([]Exercise, error)
	GetDefinition(ctx context.Context, id int64) (*ExerciseDefinition, error)
}

type ListPlansResponse struct {
	Plans []TrainingPlan `json:"plans"`
	Total int            `json:"total"`
}

type ListExercisesResponse struct {
	Exercises []Exercise `json:"exercises"`
	Total     int        `json:"total"`
}

type DeletePlanResponse struct {
	DeletedID int64 `json:"deletedId"`
}

type Handler struct {
	repo plansRepo
}

func NewHandler(repo plansRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/plans", handler.HandleAddPlan).Methods("POST", "OPTIONS").Name("new-plan")
	r.HandleFunc("/plans", handler.HandleListPlans).Methods("GET", "OPTIONS").Name("list-plans")
	r.HandleFunc("/plans/{id}", handler.HandleGetPlan).Methods("GET", "OPTIONS").Name("get-plan")
	r.HandleFunc("/plans/{id}", handler.HandleDeletePlan).Methods("DELETE", "OPTIONS").Name("delete-plan")
	r.HandleFunc("/plans/{id}/exercises", handler.HandleAddExercise).Methods("POST", "OPTIONS").Name("new-plan-exercise")
	r.HandleFunc("/plans/{id}/exercises", handler.HandleListExercises).Methods("GET", "OPTIONS").Name("list-plan-exercises")
	r.HandleFunc("/exercises/{id}", handler.HandleGetExercise).Methods("GET", "OPTIONS").Name("get-exercise")
}

func (handler *Handler) HandleAddPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.add")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var plan TrainingPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		log.Tracef("new plan, unmarshal json params: %s", err)
		http.Error(w, "add plan failed", http.StatusBadRequest)
		return
	}

	if plan.Name == "" {
		http.Error(w, "error, plan name empty", http.StatusBadRequest)
		return
	}
	if plan.Weeks < 1 {
		http.Error(w, "error, plan weeks must be >= 1", http.StatusBadRequest)
		return
	}

	plan.UserID = userID
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}

	addedPlan, err := handler.repo.AddPlan(ctx, plan)
	if err != nil {
		log.Errorf("failed to add new plan [%s]: %s", plan.Name, err)
		http.Error(w, "error, failed to add new plan", http.StatusInternalServerError)
		return
	}

	addedPlanJson, err := json.Marshal(addedPlan)
	if err != nil {
		log.Errorf("failed to marshal new plan: %s", err)
		http.Error(w, "error, failed to add new plan", http.StatusInternalServerError)
		return
	}

	log.Debugf("new plan added: %d", addedPlan.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedPlanJson, http.StatusCreated)
}

func (handler *Handler) HandleListPlans(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	plans, err := handler.repo.ListPlans(ctx, userID)
	if err != nil {
		log.Errorf("list plans error: %s", err)
		http.Error(w, "failed to get plans", http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(ListPlansResponse{
		Plans: plans,
		Total: len(plans),
	})
	if err != nil {
		log.Errorf("marshal plans error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) HandleGetPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	planID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	plan, err := handler.repo.GetPlan(ctx, userID, planID)
	if errors.Is(err, ErrPlanNotFound) {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get plan %d: %s", planID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	planJson, err := json.Marshal(plan)
	if err != nil {
		log.Errorf("failed to marshal plan: %s", err)
		http.Error(w, "failed to marshal plan", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, planJson)
}

func (handler *Handler) HandleDeletePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	planID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.DeletePlan(ctx, userID, planID); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, "plan not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete plan %d: %s", planID, err)
		http.Error(w, "plan not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeletePlanResponse{
		DeletedID: planID,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.addExercise")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	planID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "error, plan id invalid", http.StatusBadRequest)
		return
	}

	// the plan must exist and belong to the caller
	if _, err := handler.repo.GetPlan(ctx, userID, planID); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, "plan not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get plan %d: %s", planID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	if exercise.Name == "" || exercise.DefinitionID == 0 {
		http.Error(w, "error, exercise name or definition id empty", http.StatusBadRequest)
		return
	}
	if exercise.Sets < 1 {
		http.Error(w, "error, exercise sets must be >= 1", http.StatusBadRequest)
		return
	}

	exercise.PlanID = planID
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now()
	}

	addedExercise, err := handler.repo.AddExercise(ctx, exercise)
	if errors.Is(err, ErrDefinitionNotFound) {
		http.Error(w, "error, unknown exercise definition", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("failed to add new exercise [%s] to plan %d: %s", exercise.Name, planID, err)
		http.Error(w, "error, failed to add new exercise", http.StatusInternalServerError)
		return
	}

	addedExJson, err := json.Marshal(addedExercise)
	if err != nil {
		log.Errorf("failed to marshal new exercise: %s", err)
		http.Error(w, "error, failed to add new exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise added to plan %d: %d", planID, addedExercise.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedExJson, http.StatusCreated)
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.listExercises")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	planID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "error, plan id invalid", http.StatusBadRequest)
		return
	}

	if _, err := handler.repo.GetPlan(ctx, userID, planID); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, "plan not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get plan %d: %s", planID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	exercises, err := handler.repo.ListExercises(ctx, planID)
	if err != nil {
		log.Errorf("list exercises error: %s", err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(ListExercisesResponse{
		Exercises: exercises,
		Total:     len(exercises),
	})
	if err != nil {
		log.Errorf("marshal exercises error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) HandleGetExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.getExercise")
	defer span.End()

	exerciseID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	exercise, err := handler.repo.GetExercise(ctx, exerciseID)
	if errors.Is(err, ErrExerciseNotFound) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get exercise %d: %s", exerciseID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	exJson, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("failed to marshal exercise: %s", err)
		http.Error(w, "failed to marshal exercise", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, exJson)
}

func pathID(r *http.Request, name string) (int64, error) {
	idStr := mux.Vars(r)[name]
	return strconv.ParseInt(idStr, 10, 64)
}
