package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/planfitapp/planfit/internal/db"
	"github.com/planfitapp/planfit/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrProgressNotFound = errors.New("progress not found")
	ErrNoteNotFound     = errors.New("note not found")
)

type activityRecorder interface {
	RecordDelta(ctx context.Context, q db.Querier, userID, exerciseID int64, day time.Time, delta int) error
}

// Repo owns the weekly_progress table. The set-counter mutations and the
// per-day activity log are written in one transaction, so the two views
// of "sets completed" cannot diverge on partial failure.
type Repo struct {
	db       *pgxpool.Pool
	activity activityRecorder
}

func NewRepo(pool *pgxpool.Pool, activity activityRecorder) *Repo {
	return &Repo{
		db:       pool,
		activity: activity,
	}
}

// GetOrCreate returns the row for the given key, inserting a zeroed one
// if none exists. Concurrent callers on the same key all land on the
// single row created by whoever wins the insert.
func (r *Repo) GetOrCreate(ctx context.Context, key Key) (_ *WeeklyProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.getOrCreate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("plan.id", key.PlanID),
		attribute.Int64("exercise.id", key.ExerciseID),
		attribute.Int("week", key.WeekNumber),
	)

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO weekly_progress (user_id, plan_id, exercise_id, week_number)
			VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, plan_id, exercise_id, week_number) DO NOTHING;`,
		key.UserID, key.PlanID, key.ExerciseID, key.WeekNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert weekly progress: %w", err)
	}

	return r.Get(ctx, key)
}

func (r *Repo) Get(ctx context.Context, key Key) (_ *WeeklyProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p := WeeklyProgress{Key: key}
	err = r.db.
		QueryRow(ctx, `
			SELECT sets_completed, completed_at, notes, created_at, updated_at
			FROM weekly_progress
			WHERE user_id = $1 AND plan_id = $2 AND exercise_id = $3 AND week_number = $4
		`, key.UserID, key.PlanID, key.ExerciseID, key.WeekNumber).
		Scan(&p.SetsCompleted, &p.CompletedAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.Notes == nil {
		p.Notes = []Note{}
	}
	return &p, nil
}

// AddSets applies a clamped atomic increment: the stored counter never
// leaves [0, totalSets] regardless of what the caller sends. The first
// time the counter reaches the total, completed_at is set, and it is
// never cleared by later decrements. The effective increment (post-clamp)
// is mirrored into the activity log for the given day within the same
// transaction.
func (r *Repo) AddSets(ctx context.Context, key Key, delta, totalSets int, day time.Time) (_ *WeeklyProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.addSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("exercise.id", key.ExerciseID),
		attribute.Int("delta", delta),
	)

	return r.mutateSets(ctx, key, day, `
		UPDATE weekly_progress AS w
		SET sets_completed = LEAST(GREATEST(old.sets_completed + $5, 0), $6),
			completed_at = COALESCE(
				w.completed_at,
				CASE WHEN LEAST(GREATEST(old.sets_completed + $5, 0), $6) >= $6 THEN now() END
			),
			updated_at = now()
		FROM (
			SELECT id, sets_completed FROM weekly_progress
			WHERE user_id = $1 AND plan_id = $2 AND exercise_id = $3 AND week_number = $4
			FOR UPDATE
		) AS old
		WHERE w.id = old.id
		RETURNING
			old.sets_completed, w.sets_completed,
			w.completed_at, w.notes, w.created_at, w.updated_at;`,
		key.UserID, key.PlanID, key.ExerciseID, key.WeekNumber, delta, totalSets,
	)
}

// CompleteAll raises the counter to the total in one conditional update,
// so two racing calls (or a call racing a single-set toggle) cannot lose
// an update. At or above the total it is a benign no-op.
func (r *Repo) CompleteAll(ctx context.Context, key Key, totalSets int, day time.Time) (_ *WeeklyProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.completeAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("exercise.id", key.ExerciseID))

	p, err := r.mutateSets(ctx, key, day, `
		UPDATE weekly_progress AS w
		SET sets_completed = $5,
			completed_at = COALESCE(w.completed_at, now()),
			updated_at = now()
		FROM (
			SELECT id, sets_completed FROM weekly_progress
			WHERE user_id = $1 AND plan_id = $2 AND exercise_id = $3 AND week_number = $4
			FOR UPDATE
		) AS old
		WHERE w.id = old.id
			AND old.sets_completed < $5
		RETURNING
			old.sets_completed, w.sets_completed,
			w.completed_at, w.notes, w.created_at, w.updated_at;`,
		key.UserID, key.PlanID, key.ExerciseID, key.WeekNumber, totalSets,
	)
	if errors.Is(err, ErrProgressNotFound) {
		// already at or above the total, leave the row untouched
		return r.Get(ctx, key)
	}
	return p, err
}

// The mutation queries read the old row through a locked subquery, so a
// writer that waited out a concurrent update computes from the committed
// counter, not from its snapshot.
func (r *Repo) mutateSets(ctx context.Context, key Key, day time.Time, query string, args ...any) (_ *WeeklyProgress, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	p := WeeklyProgress{Key: key}
	var setsBefore int
	err = tx.
		QueryRow(ctx, query, args...).
		Scan(&setsBefore, &p.SetsCompleted, &p.CompletedAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update sets: %w", err)
	}
	if p.Notes == nil {
		p.Notes = []Note{}
	}

	if effective := p.SetsCompleted - setsBefore; effective != 0 {
		if err = r.activity.RecordDelta(ctx, tx, key.UserID, key.ExerciseID, day, effective); err != nil {
			return nil, fmt.Errorf("record activity: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &p, nil
}

func (r *Repo) AddNote(ctx context.Context, key Key, note Note) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.addNote")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("note.id", note.ID))

	noteJson, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("marshal note: %w", err)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE weekly_progress
			SET notes = notes || jsonb_build_array($5::jsonb), updated_at = now()
		WHERE user_id = $1 AND plan_id = $2 AND exercise_id = $3 AND week_number = $4;`,
		key.UserID, key.PlanID, key.ExerciseID, key.WeekNumber, noteJson,
	)
	if err != nil {
		return fmt.Errorf("append note: %w", err)
	}
	if tag.RowsAffected() != 1 {
		// parent row got deleted between ensure and append
		return ErrProgressNotFound
	}
	return nil
}

// EditNote rewrites the text and date of the note matching noteID. The
// match check is separate from the rewrite, so writing text identical to
// the stored one still succeeds. The stored array is read under a row
// lock, so concurrent rewrites of different notes serialize instead of
// overwriting each other.
func (r *Repo) EditNote(ctx context.Context, key Key, noteID, text string, date time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.editNote")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("note.id", noteID))

	var noteMatched bool
	err = r.db.
		QueryRow(ctx, `
			UPDATE weekly_progress AS w
			SET notes = (
					SELECT COALESCE(jsonb_agg(
						CASE WHEN t.n->>'noteId' = $5
							THEN t.n || jsonb_build_object('note', $6::text, 'date', to_jsonb($7::timestamptz))
							ELSE t.n
						END ORDER BY t.ord), '[]'::jsonb)
					FROM jsonb_array_elements(old.notes) WITH ORDINALITY AS t(n, ord)
				),
				updated_at = now()
			FROM (
				SELECT id, notes FROM weekly_progress
				WHERE user_id = $1 AND plan_id = $2 AND exercise_id = $3 AND week_number = $4
				FOR UPDATE
			) AS old
			WHERE w.id = old.id
			RETURNING EXISTS (
				SELECT 1 FROM jsonb_array_elements(old.notes) AS e
				WHERE e->>'noteId' = $5
			);`,
			key.UserID, key.PlanID, key.ExerciseID, key.WeekNumber, noteID, text, date,
		).
		Scan(&noteMatched)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProgressNotFound
	}
	if err != nil {
		return fmt.Errorf("edit note: %w", err)
	}
	if !noteMatched {
		return ErrNoteNotFound
	}
	return nil
}

// DeleteNote removes the matching note. A missing parent row and a
// missing note are reported as distinct errors.
func (r *Repo) DeleteNote(ctx context.Context, key Key, noteID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.deleteNote")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("note.id", noteID))

	var noteMatched bool
	err = r.db.
		QueryRow(ctx, `
			UPDATE weekly_progress AS w
			SET notes = (
					SELECT COALESCE(jsonb_agg(t.n ORDER BY t.ord), '[]'::jsonb)
					FROM jsonb_array_elements(old.notes) WITH ORDINALITY AS t(n, ord)
					WHERE t.n->>'noteId' <> $5
				),
				updated_at = now()
			FROM (
				SELECT id, notes FROM weekly_progress
				WHERE user_id = $1 AND plan_id = $2 AND exercise_id = $3 AND week_number = $4
				FOR UPDATE
			) AS old
			WHERE w.id = old.id
			RETURNING EXISTS (
				SELECT 1 FROM jsonb_array_elements(old.notes) AS e
				WHERE e->>'noteId' = $5
			);`,
			key.UserID, key.PlanID, key.ExerciseID, key.WeekNumber, noteID,
		).
		Scan(&noteMatched)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProgressNotFound
	}
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if !noteMatched {
		return ErrNoteNotFound
	}
	return nil
}
