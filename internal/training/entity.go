package training

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/schedule"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TrainingPlan struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GoalID      uuid.UUID `gorm:"type:uuid;not null;index" json:"goal_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Philosophy  string    `gorm:"type:text" json:"training_philosophy"`
	TotalWeeks  int       `gorm:"not null" json:"total_weeks"`

	BaseWeeks  int `gorm:"not null;default:0" json:"base_weeks"`
	BuildWeeks int `gorm:"not null;default:0" json:"build_weeks"`
	PeakWeeks  int `gorm:"not null;default:0" json:"peak_weeks"`
	TaperWeeks int `gorm:"not null;default:0" json:"taper_weeks"`

	WeeklySwimSessions     int `gorm:"not null;default:0" json:"weekly_swim_sessions"`
	WeeklyBikeSessions     int `gorm:"not null;default:0" json:"weekly_bike_sessions"`
	WeeklyRunSessions      int `gorm:"not null;default:0" json:"weekly_run_sessions"`
	WeeklyStrengthSessions int `gorm:"not null;default:0" json:"weekly_strength_sessions"`

	StartDate   util.Date `json:"start_date"`
	GeneratedAt time.Time `json:"generated_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Workouts []Workout `gorm:"foreignKey:TrainingPlanID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (p *TrainingPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *TrainingPlan) PhaseWeeks() schedule.PhaseWeeks {
	return schedule.PhaseWeeks{
		Base:  p.BaseWeeks,
		Build: p.BuildWeeks,
		Peak:  p.PeakWeeks,
		Taper: p.TaperWeeks,
	}
}

func (p *TrainingPlan) SetPhaseWeeks(w schedule.PhaseWeeks) {
	p.BaseWeeks = w.Base
	p.BuildWeeks = w.Build
	p.PeakWeeks = w.Peak
	p.TaperWeeks = w.Taper
}

type Workout struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	TrainingPlanID uuid.UUID   `gorm:"type:uuid;not null;index" json:"training_plan_id"`
	Name           string      `gorm:"size:255;not null" json:"name"`
	Type           WorkoutType `gorm:"size:32;not null" json:"workout_type"`
	Intensity      Intensity   `gorm:"size:32;not null" json:"intensity"`
	WeekNumber     int         `gorm:"not null;index" json:"week_number"`
	DayOfWeek      int         `gorm:"not null" json:"day_of_week"`
	ScheduledDate  util.Date   `gorm:"index" json:"scheduled_date"`

	DurationMinutes int      `json:"duration_minutes"`
	DistanceMiles   *float64 `json:"distance_miles,omitempty"`
	TotalYards      *int     `json:"total_yards,omitempty"`
	Description     string   `gorm:"type:text" json:"description"`
	Instructions    string   `gorm:"type:text" json:"instructions"`
	WeeklyFocus     string   `gorm:"size:255" json:"weekly_focus"`

	Exercises datatypes.JSONSlice[string] `json:"exercises,omitempty"`

	Completed     bool       `gorm:"not null;default:false;index" json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	GoogleEventID *string    `gorm:"size:255" json:"google_event_id,omitempty"`

	// Phase is derived from WeekNumber and the plan split on every read.
	Phase schedule.Phase `gorm:"-" json:"phase"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (w *Workout) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

type WorkoutLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	GoalID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"goal_id"`
	WorkoutID *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"workout_id"`
	User      *user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Workout   *Workout   `gorm:"foreignKey:WorkoutID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CompletedDate         util.Date `gorm:"not null" json:"completed_date"`
	ActualDurationMinutes *int      `json:"actual_duration_minutes,omitempty"`
	ActualDistanceMiles   *float64  `json:"actual_distance_miles,omitempty"`
	AverageHeartRate      *int      `json:"average_heart_rate,omitempty"`
	MaxHeartRate          *int      `json:"max_heart_rate,omitempty"`
	CaloriesBurned        *int      `json:"calories_burned,omitempty"`

	PerceivedExertion *int `json:"perceived_exertion,omitempty"`
	EnergyLevel       *int `json:"energy_level,omitempty"`
	EnjoymentLevel    *int `json:"enjoyment_level,omitempty"`

	Notes             *string `gorm:"type:text" json:"notes,omitempty"`
	WeatherConditions *string `gorm:"size:255" json:"weather_conditions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (l *WorkoutLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// StampPhases fills the derived Phase of each workout from the plan split.
func StampPhases(plan *TrainingPlan, workouts []Workout) {
	weeks := plan.PhaseWeeks()
	for i := range workouts {
		workouts[i].Phase = schedule.PhaseForWeek(weeks, workouts[i].WeekNumber)
	}
}
