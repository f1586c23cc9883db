package goal

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"github.com/saulo-duarte/atarax-lambda/internal/schedule"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
)

const (
	maxWorkoutsPerWeek   = 14
	maxMinutesPerWorkout = 600
)

type CreateGoalRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	GoalType      GoalType   `json:"goal_type"`
	EventDate     *util.Date `json:"event_date"`
	EventLocation string     `json:"event_location"`

	SwimDistanceMeters *float64 `json:"swim_distance_meters"`
	BikeDistanceMiles  *float64 `json:"bike_distance_miles"`
	RunDistanceMiles   *float64 `json:"run_distance_miles"`

	CurrentWeightLbs     *float64 `json:"current_weight_lbs"`
	TargetWeightLbs      *float64 `json:"target_weight_lbs"`
	TargetBodyFatPercent *float64 `json:"target_body_fat_percent"`

	TargetBenchPressLbs *float64 `json:"target_bench_press_lbs"`
	TargetSquatLbs      *float64 `json:"target_squat_lbs"`
	TargetDeadliftLbs   *float64 `json:"target_deadlift_lbs"`

	CurrentFitnessAssessment string `json:"current_fitness_assessment"`
	CurrentSwimAbility       string `json:"current_swim_ability"`
	CurrentBikeAbility       string `json:"current_bike_ability"`
	CurrentRunAbility        string `json:"current_run_ability"`

	TargetSwimTime  *int `json:"target_swim_time"`
	TargetBikeTime  *int `json:"target_bike_time"`
	TargetRunTime   *int `json:"target_run_time"`
	TargetTotalTime *int `json:"target_total_time"`

	PreferredDays     []string `json:"preferred_workout_days"`
	Equipment         []string `json:"available_equipment"`
	MinutesPerWorkout *int     `json:"time_per_workout_minutes"`
	WorkoutsPerWeek   *int     `json:"workouts_per_week"`
}

// details picks the variant matching the goal type out of the flat request.
func (r CreateGoalRequest) details() Details {
	switch r.GoalType.Category() {
	case CategoryRace:
		d := RaceDetails{
			SwimMeters: r.SwimDistanceMeters,
			BikeMiles:  r.BikeDistanceMiles,
			RunMiles:   r.RunDistanceMiles,
		}
		return d.withDefaults(r.GoalType)
	case CategoryWeight:
		return WeightDetails{
			CurrentLbs:       r.CurrentWeightLbs,
			TargetLbs:        r.TargetWeightLbs,
			TargetBodyFatPct: r.TargetBodyFatPercent,
		}
	case CategoryStrength:
		return StrengthDetails{
			BenchLbs:    r.TargetBenchPressLbs,
			SquatLbs:    r.TargetSquatLbs,
			DeadliftLbs: r.TargetDeadliftLbs,
		}
	default:
		return GeneralFitnessDetails{}
	}
}

func (r CreateGoalRequest) toGoal(userID uuid.UUID) *Goal {
	g := &Goal{
		UserID:                   userID,
		Title:                    strings.TrimSpace(r.Title),
		Description:              r.Description,
		GoalType:                 r.GoalType,
		Status:                   StatusPlanning,
		EventDate:                r.EventDate,
		EventLocation:            r.EventLocation,
		CurrentFitnessAssessment: r.CurrentFitnessAssessment,
		CurrentSwimAbility:       r.CurrentSwimAbility,
		CurrentBikeAbility:       r.CurrentBikeAbility,
		CurrentRunAbility:        r.CurrentRunAbility,
		TargetSwimTime:           r.TargetSwimTime,
		TargetBikeTime:           r.TargetBikeTime,
		TargetRunTime:            r.TargetRunTime,
		TargetTotalTime:          r.TargetTotalTime,
		PreferredDays:            normalizeDays(r.PreferredDays),
		Equipment:                r.Equipment,
		MinutesPerWorkout:        r.MinutesPerWorkout,
		WorkoutsPerWeek:          r.WorkoutsPerWeek,
		GenerationStatus:         GenerationIdle,
	}
	if g.EventDate != nil && g.EventDate.IsZero() {
		g.EventDate = nil
	}
	g.SetDetails(r.details())
	return g
}

// UpdateGoalRequest changes descriptive fields only. Type, event date and
// status have their own operations.
type UpdateGoalRequest struct {
	Title                    *string  `json:"title"`
	Description              *string  `json:"description"`
	EventLocation            *string  `json:"event_location"`
	CurrentFitnessAssessment *string  `json:"current_fitness_assessment"`
	CurrentSwimAbility       *string  `json:"current_swim_ability"`
	CurrentBikeAbility       *string  `json:"current_bike_ability"`
	CurrentRunAbility        *string  `json:"current_run_ability"`
	TargetSwimTime           *int     `json:"target_swim_time"`
	TargetBikeTime           *int     `json:"target_bike_time"`
	TargetRunTime            *int     `json:"target_run_time"`
	TargetTotalTime          *int     `json:"target_total_time"`
	PreferredDays            []string `json:"preferred_workout_days"`
	Equipment                []string `json:"available_equipment"`
	MinutesPerWorkout        *int     `json:"time_per_workout_minutes"`
	WorkoutsPerWeek          *int     `json:"workouts_per_week"`
}

func (r UpdateGoalRequest) applyTo(g *Goal) {
	setIf(&g.Title, r.Title)
	if r.Title != nil {
		g.Title = strings.TrimSpace(g.Title)
	}
	setIf(&g.Description, r.Description)
	setIf(&g.EventLocation, r.EventLocation)
	setIf(&g.CurrentFitnessAssessment, r.CurrentFitnessAssessment)
	setIf(&g.CurrentSwimAbility, r.CurrentSwimAbility)
	setIf(&g.CurrentBikeAbility, r.CurrentBikeAbility)
	setIf(&g.CurrentRunAbility, r.CurrentRunAbility)
	if r.TargetSwimTime != nil {
		g.TargetSwimTime = r.TargetSwimTime
	}
	if r.TargetBikeTime != nil {
		g.TargetBikeTime = r.TargetBikeTime
	}
	if r.TargetRunTime != nil {
		g.TargetRunTime = r.TargetRunTime
	}
	if r.TargetTotalTime != nil {
		g.TargetTotalTime = r.TargetTotalTime
	}
	if r.PreferredDays != nil {
		g.PreferredDays = normalizeDays(r.PreferredDays)
	}
	if r.Equipment != nil {
		g.Equipment = r.Equipment
	}
	if r.MinutesPerWorkout != nil {
		g.MinutesPerWorkout = r.MinutesPerWorkout
	}
	if r.WorkoutsPerWeek != nil {
		g.WorkoutsPerWeek = r.WorkoutsPerWeek
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

func normalizeDays(days []string) []string {
	if days == nil {
		return nil
	}
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, strings.ToLower(strings.TrimSpace(d)))
	}
	return out
}

// validate checks the goal as it would be stored. Event dates only have to
// be in the future for new goals.
func validate(g *Goal, now time.Time, isNew bool) error {
	if g.Title == "" {
		return apperr.Validationf("title is required")
	}
	if len(g.Title) > 255 {
		return apperr.Validationf("title must be at most 255 characters")
	}
	if !g.GoalType.IsValid() {
		return apperr.Validationf("invalid goal_type %q", g.GoalType)
	}
	if g.GoalType.Category() == CategoryRace {
		if g.EventDate == nil {
			return apperr.Validationf("event_date is required for %s goals", g.GoalType)
		}
		if isNew && !g.EventDate.After(util.DateOf(now).Time) {
			return apperr.Validationf("event_date must be in the future")
		}
	}
	if err := validateDetails(g.Details()); err != nil {
		return err
	}
	if n := g.WorkoutsPerWeek; n != nil && (*n < 1 || *n > maxWorkoutsPerWeek) {
		return apperr.Validationf("workouts_per_week must be between 1 and %d", maxWorkoutsPerWeek)
	}
	if m := g.MinutesPerWorkout; m != nil && (*m < 1 || *m > maxMinutesPerWorkout) {
		return apperr.Validationf("time_per_workout_minutes must be between 1 and %d", maxMinutesPerWorkout)
	}
	for _, t := range []*int{g.TargetSwimTime, g.TargetBikeTime, g.TargetRunTime, g.TargetTotalTime} {
		if t != nil && *t <= 0 {
			return apperr.Validationf("target times must be positive")
		}
	}
	for _, d := range g.PreferredDays {
		if !weekdays[d] {
			return apperr.Validationf("invalid preferred workout day %q", d)
		}
	}
	return nil
}

type ListQuery struct {
	Status *Status
	Skip   int
	Limit  int
}

type GoalSummary struct {
	ID               uuid.UUID        `json:"id"`
	Title            string           `json:"title"`
	GoalType         GoalType         `json:"goal_type"`
	Status           Status           `json:"status"`
	EventDate        *util.Date       `json:"event_date,omitempty"`
	DaysUntilEvent   *int             `json:"days_until_event"`
	TotalWeeks       int              `json:"total_weeks"`
	GenerationStatus GenerationStatus `json:"generation_status"`
}

// GoalDetail is a goal with its plan state at read time.
type GoalDetail struct {
	*Goal
	Category        Category           `json:"category"`
	Specifics       Details            `json:"details"`
	DaysUntilEvent  *int               `json:"days_until_event"`
	WeeksUntilEvent *int               `json:"weeks_until_event"`
	HasTrainingPlan bool               `json:"has_training_plan"`
	PlanID          *uuid.UUID         `json:"training_plan_id,omitempty"`
	Snapshot        *schedule.Snapshot `json:"progress,omitempty"`
}

// CreateResult carries the new goal and the outcome of its plan synthesis. A
// failed synthesis still returns the goal, still in planning.
type CreateResult struct {
	Goal            *GoalDetail            `json:"goal"`
	Plan            *training.TrainingPlan `json:"training_plan,omitempty"`
	WorkoutCount    int                    `json:"workout_count"`
	GenerationError string                 `json:"generation_error,omitempty"`
}

type PlanResult struct {
	Plan         *training.TrainingPlan `json:"training_plan"`
	WorkoutCount int                    `json:"workout_count"`
}

type Dashboard struct {
	HasActiveGoal       bool                   `json:"has_active_goal"`
	HasTrainingPlan     bool                   `json:"has_training_plan"`
	Goal                *GoalDetail            `json:"goal,omitempty"`
	Plan                *training.TrainingPlan `json:"training_plan,omitempty"`
	Snapshot            *schedule.Snapshot     `json:"progress,omitempty"`
	WeeklyFocus         string                 `json:"weekly_focus,omitempty"`
	CurrentWeekWorkouts []training.Workout     `json:"current_week_workouts"`
	CompletedThisWeek   int                    `json:"completed_this_week"`
}
