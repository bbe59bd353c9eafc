package activity

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/planfitapp/planfit/internal/plans"
	"github.com/planfitapp/planfit/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=activity_test

// MuscleGroupOther labels rows whose exercise or definition record
// cannot be resolved.
const MuscleGroupOther = "Other"

const muscleCacheTTLSeconds = 60 * 60

type activityLister interface {
	List(ctx context.Context, userID int64, from, to time.Time) ([]Entry, error)
}

type exerciseCatalog interface {
	GetExercise(ctx context.Context, id int64) (*plans.Exercise, error)
	GetDefinition(ctx context.Context, id int64) (*plans.ExerciseDefinition, error)
}

// Analyzer is the read-only reporting pipeline over the activity log.
// Muscle-group labels come from the exercise definition catalog, cached
// since definitions are read-only reference data.
type Analyzer struct {
	activity    activityLister
	catalog     exerciseCatalog
	muscleCache *freecache.Cache
}

func NewAnalyzer(activity activityLister, catalog exerciseCatalog, cacheSizeBytes int) *Analyzer {
	return &Analyzer{
		activity:    activity,
		catalog:     catalog,
		muscleCache: freecache.NewCache(cacheSizeBytes),
	}
}

type muscleBucket struct {
	sets      int
	exercises map[int64]struct{}
}

// Summarize produces one row per period in [from, endOfDay(to)], sorted
// ascending, with per-muscle set totals. Per period, exerciseCount is
// the sum over muscle labels of that label's distinct exercise count.
func (a *Analyzer) Summarize(
	ctx context.Context,
	userID int64,
	from, to time.Time,
	groupBy GroupBy,
) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activity.analyzer.summarize")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("group.by", string(groupBy)))

	if err := groupBy.Validate(); err != nil {
		return nil, err
	}

	entries, err := a.activity.List(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	// (period, muscle) -> sets + distinct exercises
	periods := make(map[time.Time]map[string]*muscleBucket)
	for _, entry := range entries {
		period := periodStart(entry.Day, groupBy)
		muscle := a.muscleFor(ctx, entry.ExerciseID)

		muscles, ok := periods[period]
		if !ok {
			muscles = make(map[string]*muscleBucket)
			periods[period] = muscles
		}
		bucket, ok := muscles[muscle]
		if !ok {
			bucket = &muscleBucket{exercises: make(map[int64]struct{})}
			muscles[muscle] = bucket
		}
		bucket.sets += entry.SetsCompleted
		bucket.exercises[entry.ExerciseID] = struct{}{}
	}

	summaries := make([]Summary, 0, len(periods))
	for period, muscles := range periods {
		summary := Summary{
			Date:         period,
			MuscleGroups: make(map[string]int, len(muscles)),
		}
		for muscle, bucket := range muscles {
			summary.TotalSets += bucket.sets
			summary.ExerciseCount += len(bucket.exercises)
			summary.MuscleGroups[muscle] = bucket.sets
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date.Before(summaries[j].Date)
	})
	return summaries, nil
}

// DailyActivity walks every calendar day in [from, to] inclusive,
// pre-seeding zeroed buckets so silent days still appear, then folds the
// raw log rows in by exact day match. No muscle grouping.
func (a *Analyzer) DailyActivity(ctx context.Context, userID int64, from, to time.Time) (_ []DayActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activity.analyzer.daily")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := a.activity.List(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	fromDay := dayOf(from)
	toDay := dayOf(to)

	days := make([]DayActivity, 0)
	dayIndex := make(map[time.Time]int)
	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		dayIndex[day] = len(days)
		days = append(days, DayActivity{Day: day})
	}

	for _, entry := range entries {
		if i, ok := dayIndex[dayOf(entry.Day)]; ok {
			days[i].TotalSets += entry.SetsCompleted
		}
	}

	return days, nil
}

func (a *Analyzer) muscleFor(ctx context.Context, exerciseID int64) string {
	cacheKey := []byte(strconv.FormatInt(exerciseID, 10))
	if cached, err := a.muscleCache.Get(cacheKey); err == nil {
		return string(cached)
	}

	exercise, err := a.catalog.GetExercise(ctx, exerciseID)
	if err != nil {
		log.Tracef("resolve muscle group, get exercise %d: %s", exerciseID, err)
		return MuscleGroupOther
	}
	definition, err := a.catalog.GetDefinition(ctx, exercise.DefinitionID)
	if err != nil {
		log.Tracef("resolve muscle group, get definition %d: %s", exercise.DefinitionID, err)
		return MuscleGroupOther
	}

	muscle := definition.PrimaryMuscle
	if muscle == "" {
		muscle = MuscleGroupOther
	}

	if err := a.muscleCache.Set(cacheKey, []byte(muscle), muscleCacheTTLSeconds); err != nil {
		log.Tracef("cache muscle group for exercise %d: %s", exerciseID, err)
	}
	return muscle
}

func periodStart(day time.Time, groupBy GroupBy) time.Time {
	day = dayOf(day)
	switch groupBy {
	case GroupByWeek:
		// week starts on monday
		return day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
	case GroupByMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	default:
		return day
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
