package activity

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/planfitapp/planfit/internal/auth"
	"github.com/planfitapp/planfit/internal/telemetry/tracing"
	"github.com/planfitapp/planfit/pkg"
)

const dateLayout = "2006-01-02"

type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

type Handler struct {
	repo     *Repo
	analyzer *Analyzer
}

func NewHandler(repo *Repo, analyzer *Analyzer) *Handler {
	return &Handler{
		repo:     repo,
		analyzer: analyzer,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/activity", handler.HandleList).Methods("GET", "OPTIONS").Name("activity-logs")
	r.HandleFunc("/activity/daily", handler.HandleDaily).Methods("GET", "OPTIONS").Name("activity-daily")
	r.HandleFunc("/activity/summary", handler.HandleSummary).Methods("GET", "OPTIONS").Name("activity-summary")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}

	entries, err := handler.repo.List(ctx, userID, from, to)
	if err != nil {
		log.Errorf("list activity error: %s", err)
		http.Error(w, "failed to get activity logs", http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(ListResponse{
		Entries: entries,
		Total:   len(entries),
	})
	if err != nil {
		log.Errorf("marshal activity logs error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.daily")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}

	days, err := handler.analyzer.DailyActivity(ctx, userID, from, to)
	if err != nil {
		log.Errorf("daily activity error: %s", err)
		http.Error(w, "failed to get daily activity", http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(days)
	if err != nil {
		log.Errorf("marshal daily activity error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.summary")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}

	groupBy := GroupBy(r.URL.Query().Get("group_by"))
	if groupBy == "" {
		groupBy = GroupByDay
	}
	if err := groupBy.Validate(); err != nil {
		http.Error(w, "error, group_by must be day, week or month", http.StatusBadRequest)
		return
	}

	summaries, err := handler.analyzer.Summarize(ctx, userID, from, to, groupBy)
	if err != nil {
		log.Errorf("activity summary error: %s", err)
		http.Error(w, "failed to get activity summary", http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(summaries)
	if err != nil {
		log.Errorf("marshal activity summary error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func dateRange(w http.ResponseWriter, r *http.Request) (from, to time.Time, ok bool) {
	query := r.URL.Query()

	from, err := time.Parse(dateLayout, query.Get("from"))
	if err != nil {
		http.Error(w, "error, from date invalid, use YYYY-MM-DD", http.StatusBadRequest)
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse(dateLayout, query.Get("to"))
	if err != nil {
		http.Error(w, "error, to date invalid, use YYYY-MM-DD", http.StatusBadRequest)
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		http.Error(w, "error, to date before from date", http.StatusBadRequest)
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}
