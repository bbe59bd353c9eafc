package plans

import "time"

// TrainingPlan groups exercises a user works through week by week.
type TrainingPlan struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Weeks       int       `json:"weeks"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Exercise is one entry of a training plan. Sets is the weekly target
// used for completion tracking.
type Exercise struct {
	ID           int64     `json:"id"`
	PlanID       int64     `json:"planId"`
	DefinitionID int64     `json:"definitionId"`
	Name         string    `json:"name"`
	Sets         int       `json:"sets"`
	Reps         int       `json:"reps"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ExerciseDefinition is read-only reference data seeded by migration,
// there is no management API for it.
type ExerciseDefinition struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	PrimaryMuscle string `json:"primaryMuscle"`
}
