package progress

import (
	"fmt"
	"time"
)

// Key identifies one weekly progress row. One row exists per key,
// created lazily on first access.
type Key struct {
	UserID     int64 `json:"userId"`
	PlanID     int64 `json:"planId"`
	ExerciseID int64 `json:"exerciseId"`
	WeekNumber int   `json:"weekNumber"`
}

func (k Key) Validate() error {
	if k.UserID <= 0 {
		return fmt.Errorf("invalid user id %d", k.UserID)
	}
	if k.PlanID <= 0 {
		return fmt.Errorf("invalid plan id %d", k.PlanID)
	}
	if k.ExerciseID <= 0 {
		return fmt.Errorf("invalid exercise id %d", k.ExerciseID)
	}
	if k.WeekNumber < 1 {
		return fmt.Errorf("invalid week number %d", k.WeekNumber)
	}
	return nil
}

// Note is embedded in the progress row, not a standalone table.
// ID is immutable after creation, Date tracks the last modification.
type Note struct {
	ID   string    `json:"noteId"`
	Date time.Time `json:"date"`
	Note string    `json:"note"`
}

type WeeklyProgress struct {
	Key
	SetsCompleted int        `json:"setsCompleted"`
	Done          bool       `json:"isExerciseDone"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	Notes         []Note     `json:"weeklyNotes"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"lastUpdatedAt"`
}

// NewDefault returns the zero-valued placeholder handed to read-only
// callers when no row exists yet. It is never persisted.
func NewDefault(key Key) *WeeklyProgress {
	return &WeeklyProgress{
		Key:   key,
		Notes: []Note{},
	}
}
