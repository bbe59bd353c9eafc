package activity

import (
	"fmt"
	"time"
)

// Entry is one row of the per-day activity log, the denormalized twin of
// the weekly counter used for history and reporting.
type Entry struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	ExerciseID    int64     `json:"exerciseId"`
	Day           time.Time `json:"date"`
	SetsCompleted int       `json:"setsCompleted"`
}

// DayActivity is one bucket of the simple daily view. Days with no
// logged activity still appear, zeroed.
type DayActivity struct {
	Day       time.Time `json:"date"`
	TotalSets int       `json:"totalSets"`
}

// Summary is one output row of the aggregation pipeline. ExerciseCount
// sums the distinct-exercise cardinalities of each (period, muscle)
// pair, so an exercise mapped to two muscle labels counts twice.
type Summary struct {
	Date          time.Time      `json:"date"`
	TotalSets     int            `json:"totalSets"`
	ExerciseCount int            `json:"exerciseCount"`
	MuscleGroups  map[string]int `json:"muscleGroups"`
}

type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
)

func (g GroupBy) Validate() error {
	switch g {
	case GroupByDay, GroupByWeek, GroupByMonth:
		return nil
	default:
		return fmt.Errorf("invalid group by value: %q", g)
	}
}
