package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/planfitapp/planfit/internal/plans"
	"github.com/planfitapp/planfit/internal/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progress_test

var (
	ErrTotalSetsUnresolved = errors.New("could not determine total sets")
	ErrEmptyNote           = errors.New("note text empty")
	ErrInvalidIncrement    = errors.New("sets increment must be -1 or +1")
)

type progressStore interface {
	GetOrCreate(ctx context.Context, key Key) (*WeeklyProgress, error)
	Get(ctx context.Context, key Key) (*WeeklyProgress, error)
	AddSets(ctx context.Context, key Key, delta, totalSets int, day time.Time) (*WeeklyProgress, error)
	CompleteAll(ctx context.Context, key Key, totalSets int, day time.Time) (*WeeklyProgress, error)
	AddNote(ctx context.Context, key Key, note Note) error
	EditNote(ctx context.Context, key Key, noteID, text string, date time.Time) error
	DeleteNote(ctx context.Context, key Key, noteID string) error
}

type exerciseGetter interface {
	GetExercise(ctx context.Context, id int64) (*plans.Exercise, error)
}

type UpdateParams struct {
	Key
	SetsIncrement int
	CompleteAll   bool
	// TotalSets <= 0 means "resolve from the exercise record".
	TotalSets int
}

// Service is the completion engine: it resolves total sets, ensures the
// progress row exists, applies counter mutations and derives the done
// flag on every result it hands out.
type Service struct {
	store     progressStore
	exercises exerciseGetter

	// NowFunc is swapped out in tests.
	NowFunc func() time.Time
}

func NewService(store progressStore, exercises exerciseGetter) *Service {
	return &Service{
		store:     store,
		exercises: exercises,
		NowFunc:   time.Now,
	}
}

// Read returns the current progress for the key, or a zero-valued
// placeholder when no row exists yet. The placeholder is not persisted,
// read-only callers never materialize a row.
func (s *Service) Read(ctx context.Context, key Key) (_ *WeeklyProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.read")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := key.Validate(); err != nil {
		return nil, err
	}

	totalSets, err := s.resolveTotalSets(ctx, key.ExerciseID, 0)
	if err != nil {
		return nil, err
	}

	p, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrProgressNotFound) {
		return NewDefault(key), nil
	}
	if err != nil {
		return nil, err
	}

	p.Done = p.SetsCompleted >= totalSets
	return p, nil
}

func (s *Service) Update(ctx context.Context, params UpdateParams) (_ *WeeklyProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("exercise.id", params.ExerciseID),
		attribute.Bool("complete.all", params.CompleteAll),
	)

	if err := params.Validate(); err != nil {
		return nil, err
	}

	totalSets, err := s.resolveTotalSets(ctx, params.ExerciseID, params.TotalSets)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetOrCreate(ctx, params.Key); err != nil {
		return nil, fmt.Errorf("ensure progress row: %w", err)
	}

	today := dayOf(s.NowFunc())

	var p *WeeklyProgress
	if params.CompleteAll {
		p, err = s.store.CompleteAll(ctx, params.Key, totalSets, today)
	} else {
		p, err = s.store.AddSets(ctx, params.Key, params.SetsIncrement, totalSets, today)
	}
	if err != nil {
		return nil, err
	}

	p.Done = p.SetsCompleted >= totalSets
	return p, nil
}

func (s *Service) AddNote(ctx context.Context, key Key, text string) (_ *Note, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.addNote")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := key.Validate(); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyNote
	}

	if _, err := s.store.GetOrCreate(ctx, key); err != nil {
		return nil, fmt.Errorf("ensure progress row: %w", err)
	}

	note := Note{
		ID:   uuid.NewString(),
		Date: s.NowFunc(),
		Note: text,
	}
	if err := s.store.AddNote(ctx, key, note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *Service) EditNote(ctx context.Context, key Key, noteID, text string) (_ *Note, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.editNote")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := key.Validate(); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyNote
	}
	if noteID == "" {
		return nil, ErrNoteNotFound
	}

	date := s.NowFunc()
	if err := s.store.EditNote(ctx, key, noteID, text, date); err != nil {
		return nil, err
	}
	return &Note{
		ID:   noteID,
		Date: date,
		Note: text,
	}, nil
}

func (s *Service) DeleteNote(ctx context.Context, key Key, noteID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.deleteNote")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := key.Validate(); err != nil {
		return err
	}
	if noteID == "" {
		return ErrNoteNotFound
	}
	return s.store.DeleteNote(ctx, key, noteID)
}

func (params UpdateParams) Validate() error {
	if err := params.Key.Validate(); err != nil {
		return err
	}
	if !params.CompleteAll && params.SetsIncrement != 1 && params.SetsIncrement != -1 {
		return ErrInvalidIncrement
	}
	return nil
}

func (s *Service) resolveTotalSets(ctx context.Context, exerciseID int64, supplied int) (int, error) {
	if supplied > 0 {
		return supplied, nil
	}
	exercise, err := s.exercises.GetExercise(ctx, exerciseID)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrTotalSetsUnresolved, err)
	}
	if exercise.Sets < 1 {
		return 0, ErrTotalSetsUnresolved
	}
	return exercise.Sets, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
