package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/planfitapp/planfit/internal/telemetry/tracing"
	"github.com/planfitapp/planfit/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrPlanNotFound       = errors.New("training plan not found")
	ErrExerciseNotFound   = errors.New("exercise not found")
	ErrDefinitionNotFound = errors.New("exercise definition not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddPlan(ctx context.Context, plan TrainingPlan) (_ *TrainingPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO training_plan (user_id, name, description, weeks, created_at)
			VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`,
		plan.UserID, plan.Name, plan.Description, plan.Weeks, plan.CreatedAt,
	).Scan(&plan.ID)
	if err != nil {
		return nil, fmt.Errorf("insert training plan: %w", err)
	}

	span.SetAttributes(attribute.Int64("plan.id", plan.ID))
	return &plan, nil
}

func (r *Repo) GetPlan(ctx context.Context, userID, planID int64) (_ *TrainingPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("plan.id", planID))

	plan := TrainingPlan{ID: planID, UserID: userID}
	err = r.db.
		QueryRow(ctx, `
			SELECT name, description, weeks, created_at
			FROM training_plan
			WHERE id = $1 AND user_id = $2
		`, planID, userID).
		Scan(&plan.Name, &plan.Description, &plan.Weeks, &plan.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *Repo) ListPlans(ctx context.Context, userID int64) (_ []TrainingPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, weeks, created_at
		FROM training_plan
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	plans := make([]TrainingPlan, 0)
	for rows.Next() {
		plan := TrainingPlan{UserID: userID}
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.Description, &plan.Weeks, &plan.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

func (r *Repo) DeletePlan(ctx context.Context, userID, planID int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("plan.id", planID))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM training_plan WHERE id = $1 AND user_id = $2`,
		planID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (r *Repo) AddExercise(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.addExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO plan_exercise (plan_id, definition_id, name, sets, reps, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;`,
		exercise.PlanID, exercise.DefinitionID, exercise.Name, exercise.Sets, exercise.Reps, exercise.CreatedAt,
	).Scan(&exercise.ID)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrDefinitionNotFound
		}
		return nil, fmt.Errorf("insert plan exercise: %w", err)
	}

	span.SetAttributes(attribute.Int64("exercise.id", exercise.ID))
	return &exercise, nil
}

func (r *Repo) GetExercise(ctx context.Context, id int64) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.getExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("exercise.id", id))

	exercise := Exercise{ID: id}
	err = r.db.
		QueryRow(ctx, `
			SELECT plan_id, definition_id, name, sets, reps, created_at
			FROM plan_exercise
			WHERE id = $1
		`, id).
		Scan(
			&exercise.PlanID, &exercise.DefinitionID, &exercise.Name,
			&exercise.Sets, &exercise.Reps, &exercise.CreatedAt,
		)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *Repo) ListExercises(ctx context.Context, planID int64) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.listExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("plan.id", planID))

	rows, err := r.db.Query(ctx, `
		SELECT id, definition_id, name, sets, reps, created_at
		FROM plan_exercise
		WHERE plan_id = $1
		ORDER BY created_at ASC;
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	exercises := make([]Exercise, 0)
	for rows.Next() {
		exercise := Exercise{PlanID: planID}
		if err := rows.Scan(
			&exercise.ID, &exercise.DefinitionID, &exercise.Name,
			&exercise.Sets, &exercise.Reps, &exercise.CreatedAt,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}

	return exercises, nil
}

// GetDefinition returns the read-only exercise definition record.
func (r *Repo) GetDefinition(ctx context.Context, id int64) (_ *ExerciseDefinition, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.getDefinition")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("definition.id", id))

	def := ExerciseDefinition{ID: id}
	err = r.db.
		QueryRow(ctx, `
			SELECT name, primary_muscle
			FROM exercise_definition
			WHERE id = $1
		`, id).
		Scan(&def.Name, &def.PrimaryMuscle)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDefinitionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &def, nil
}
