package training

import (
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"github.com/saulo-duarte/atarax-lambda/internal/schedule"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
)

// Feedback is the optional completion detail sent with a workout. Nil fields
// are left untouched on the stored log.
type Feedback struct {
	CompletedDate         *util.Date `json:"completed_date,omitempty"`
	ActualDurationMinutes *int       `json:"actual_duration_minutes,omitempty"`
	ActualDistanceMiles   *float64   `json:"actual_distance_miles,omitempty"`
	AverageHeartRate      *int       `json:"average_heart_rate,omitempty"`
	MaxHeartRate          *int       `json:"max_heart_rate,omitempty"`
	CaloriesBurned        *int       `json:"calories_burned,omitempty"`
	PerceivedExertion     *int       `json:"perceived_exertion,omitempty"`
	EnergyLevel           *int       `json:"energy_level,omitempty"`
	EnjoymentLevel        *int       `json:"enjoyment_level,omitempty"`
	Notes                 *string    `json:"notes,omitempty"`
	WeatherConditions     *string    `json:"weather_conditions,omitempty"`
}

func (f *Feedback) Validate() error {
	if f == nil {
		return nil
	}
	scales := []struct {
		name string
		v    *int
	}{
		{"perceived_exertion", f.PerceivedExertion},
		{"energy_level", f.EnergyLevel},
		{"enjoyment_level", f.EnjoymentLevel},
	}
	for _, s := range scales {
		if s.v != nil && (*s.v < 1 || *s.v > 10) {
			return apperr.Validationf("%s must be between 1 and 10", s.name)
		}
	}

	counts := []struct {
		name string
		v    *int
	}{
		{"actual_duration_minutes", f.ActualDurationMinutes},
		{"average_heart_rate", f.AverageHeartRate},
		{"max_heart_rate", f.MaxHeartRate},
		{"calories_burned", f.CaloriesBurned},
	}
	for _, c := range counts {
		if c.v != nil && *c.v < 0 {
			return apperr.Validationf("%s must not be negative", c.name)
		}
	}
	if f.ActualDistanceMiles != nil && *f.ActualDistanceMiles < 0 {
		return apperr.Validationf("actual_distance_miles must not be negative")
	}
	if f.WeatherConditions != nil && len(*f.WeatherConditions) > 255 {
		return apperr.Validationf("weather_conditions must be at most 255 characters")
	}
	return nil
}

func (f *Feedback) applyTo(l *WorkoutLog) {
	if f == nil {
		return
	}
	if f.CompletedDate != nil && !f.CompletedDate.IsZero() {
		l.CompletedDate = *f.CompletedDate
	}
	if f.ActualDurationMinutes != nil {
		l.ActualDurationMinutes = f.ActualDurationMinutes
	}
	if f.ActualDistanceMiles != nil {
		l.ActualDistanceMiles = f.ActualDistanceMiles
	}
	if f.AverageHeartRate != nil {
		l.AverageHeartRate = f.AverageHeartRate
	}
	if f.MaxHeartRate != nil {
		l.MaxHeartRate = f.MaxHeartRate
	}
	if f.CaloriesBurned != nil {
		l.CaloriesBurned = f.CaloriesBurned
	}
	if f.PerceivedExertion != nil {
		l.PerceivedExertion = f.PerceivedExertion
	}
	if f.EnergyLevel != nil {
		l.EnergyLevel = f.EnergyLevel
	}
	if f.EnjoymentLevel != nil {
		l.EnjoymentLevel = f.EnjoymentLevel
	}
	if f.Notes != nil {
		l.Notes = f.Notes
	}
	if f.WeatherConditions != nil {
		l.WeatherConditions = f.WeatherConditions
	}
}

type CompletionResult struct {
	Workout           *Workout    `json:"workout"`
	Log               *WorkoutLog `json:"log"`
	AlreadyCompleted  bool        `json:"already_completed"`
	CompletedWorkouts int64       `json:"completed_workouts"`
	TotalWorkouts     int64       `json:"total_workouts"`
	ProgressPct       float64     `json:"progress_pct"`
}

type PlanDetail struct {
	Plan     *TrainingPlan      `json:"plan"`
	Snapshot *schedule.Snapshot `json:"schedule"`
}

type CurrentWeek struct {
	HasTrainingPlan bool           `json:"has_training_plan"`
	PlanID          string         `json:"plan_id,omitempty"`
	Week            int            `json:"week,omitempty"`
	Phase           schedule.Phase `json:"phase,omitempty"`
	WeeklyFocus     string         `json:"weekly_focus,omitempty"`
	Workouts        []Workout      `json:"workouts"`
}

type WorkoutQuery struct {
	PlanID string
	Week   *int
	Skip   int
	Limit  int
}

type FeedbackSummary struct {
	RecentWorkouts      int                 `json:"recent_workouts"`
	AvgExertion         *float64            `json:"avg_exertion"`
	AvgEnergy           *float64            `json:"avg_energy"`
	AvgEnjoyment        *float64            `json:"avg_enjoyment"`
	IntensityAdjustment IntensityAdjustment `json:"intensity_adjustment"`
	RecoveryAdjustment  RecoveryAdjustment  `json:"recovery_adjustment"`
}
