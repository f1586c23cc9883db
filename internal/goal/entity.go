package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Goal struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	GoalType    GoalType  `gorm:"size:30;not null" json:"goal_type"`
	Status      Status    `gorm:"size:20;not null;index" json:"status"`

	EventDate     *util.Date `json:"event_date,omitempty"`
	EventLocation string     `gorm:"size:255" json:"event_location,omitempty"`

	SwimDistanceMeters *float64 `json:"swim_distance_meters,omitempty"`
	BikeDistanceMiles  *float64 `json:"bike_distance_miles,omitempty"`
	RunDistanceMiles   *float64 `json:"run_distance_miles,omitempty"`

	CurrentWeightLbs     *float64 `json:"current_weight_lbs,omitempty"`
	TargetWeightLbs      *float64 `json:"target_weight_lbs,omitempty"`
	TargetBodyFatPercent *float64 `json:"target_body_fat_percent,omitempty"`

	TargetBenchPressLbs *float64 `json:"target_bench_press_lbs,omitempty"`
	TargetSquatLbs      *float64 `json:"target_squat_lbs,omitempty"`
	TargetDeadliftLbs   *float64 `json:"target_deadlift_lbs,omitempty"`

	CurrentFitnessAssessment string `gorm:"type:text" json:"current_fitness_assessment,omitempty"`
	CurrentSwimAbility       string `gorm:"size:255" json:"current_swim_ability,omitempty"`
	CurrentBikeAbility       string `gorm:"size:255" json:"current_bike_ability,omitempty"`
	CurrentRunAbility        string `gorm:"size:255" json:"current_run_ability,omitempty"`

	// Target times in minutes.
	TargetSwimTime  *int `json:"target_swim_time,omitempty"`
	TargetBikeTime  *int `json:"target_bike_time,omitempty"`
	TargetRunTime   *int `json:"target_run_time,omitempty"`
	TargetTotalTime *int `json:"target_total_time,omitempty"`

	PreferredDays     datatypes.JSONSlice[string] `json:"preferred_workout_days,omitempty"`
	Equipment         datatypes.JSONSlice[string] `json:"available_equipment,omitempty"`
	MinutesPerWorkout *int                        `json:"time_per_workout_minutes,omitempty"`
	WorkoutsPerWeek   *int                        `json:"workouts_per_week,omitempty"`
	TotalWeeks        int                         `gorm:"not null" json:"total_weeks"`

	GenerationStatus    GenerationStatus `gorm:"size:20;not null;default:idle" json:"generation_status"`
	GenerationStartedAt *time.Time       `json:"generation_started_at,omitempty"`
	GenerationError     string           `gorm:"size:255" json:"generation_error,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Migration only. Goal rows own their plans and logs.
	Plans []training.TrainingPlan `gorm:"foreignKey:GoalID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Logs  []training.WorkoutLog   `gorm:"foreignKey:GoalID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.GenerationStatus == "" {
		g.GenerationStatus = GenerationIdle
	}
	return nil
}

// Details returns the type-specific fields of the goal as their variant.
func (g *Goal) Details() Details {
	switch g.GoalType.Category() {
	case CategoryRace:
		return RaceDetails{
			SwimMeters: g.SwimDistanceMeters,
			BikeMiles:  g.BikeDistanceMiles,
			RunMiles:   g.RunDistanceMiles,
		}
	case CategoryWeight:
		return WeightDetails{
			CurrentLbs:       g.CurrentWeightLbs,
			TargetLbs:        g.TargetWeightLbs,
			TargetBodyFatPct: g.TargetBodyFatPercent,
		}
	case CategoryStrength:
		return StrengthDetails{
			BenchLbs:    g.TargetBenchPressLbs,
			SquatLbs:    g.TargetSquatLbs,
			DeadliftLbs: g.TargetDeadliftLbs,
		}
	default:
		return GeneralFitnessDetails{}
	}
}

// SetDetails stores d and clears the columns of every other variant.
func (g *Goal) SetDetails(d Details) {
	g.SwimDistanceMeters, g.BikeDistanceMiles, g.RunDistanceMiles = nil, nil, nil
	g.CurrentWeightLbs, g.TargetWeightLbs, g.TargetBodyFatPercent = nil, nil, nil
	g.TargetBenchPressLbs, g.TargetSquatLbs, g.TargetDeadliftLbs = nil, nil, nil

	switch d := d.(type) {
	case RaceDetails:
		g.SwimDistanceMeters = d.SwimMeters
		g.BikeDistanceMiles = d.BikeMiles
		g.RunDistanceMiles = d.RunMiles
	case WeightDetails:
		g.CurrentWeightLbs = d.CurrentLbs
		g.TargetWeightLbs = d.TargetLbs
		g.TargetBodyFatPercent = d.TargetBodyFatPct
	case StrengthDetails:
		g.TargetBenchPressLbs = d.BenchLbs
		g.TargetSquatLbs = d.SquatLbs
		g.TargetDeadliftLbs = d.DeadliftLbs
	case GeneralFitnessDetails:
	}
}

func (g *Goal) eventTime() *time.Time {
	if g.EventDate == nil || g.EventDate.IsZero() {
		return nil
	}
	t := g.EventDate.Time
	return &t
}
