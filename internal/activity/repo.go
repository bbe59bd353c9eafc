package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/planfitapp/planfit/internal/db"
	"github.com/planfitapp/planfit/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{
		db: pool,
	}
}

// RecordDelta folds a set delta into the (user, exercise, day) bucket,
// creating it on first write. It runs on whatever querier the caller
// hands in, usually the transaction of the weekly counter update.
func (r *Repo) RecordDelta(
	ctx context.Context,
	q db.Querier,
	userID, exerciseID int64,
	day time.Time,
	delta int,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.recordDelta")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("exercise.id", exerciseID),
		attribute.Int("delta", delta),
	)

	_, err = q.Exec(
		ctx,
		`INSERT INTO exercise_activity (user_id, exercise_id, day, sets_completed)
			VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, exercise_id, day)
			DO UPDATE SET sets_completed = exercise_activity.sets_completed + EXCLUDED.sets_completed;`,
		userID, exerciseID, day, delta,
	)
	if err != nil {
		return fmt.Errorf("upsert activity: %w", err)
	}
	return nil
}

// List returns the raw log rows for the user in [from, to], both bounds
// taken as whole calendar days.
func (r *Repo) List(ctx context.Context, userID int64, from, to time.Time) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.activity.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, exercise_id, day, sets_completed
		FROM exercise_activity
		WHERE user_id = $1 AND day >= $2::date AND day <= $3::date
		ORDER BY day ASC, exercise_id ASC;
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	entries := make([]Entry, 0)
	for rows.Next() {
		entry := Entry{UserID: userID}
		if err := rows.Scan(&entry.ID, &entry.ExerciseID, &entry.Day, &entry.SetsCompleted); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
