package planner

import (
	"strings"

	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"github.com/saulo-duarte/atarax-lambda/internal/schedule"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
)

// Sessions is the weekly session count per discipline.
type Sessions struct {
	Swim     int `json:"weekly_swim_sessions"`
	Bike     int `json:"weekly_bike_sessions"`
	Run      int `json:"weekly_run_sessions"`
	Strength int `json:"weekly_strength_sessions"`
}

func (s Sessions) Total() int {
	return s.Swim + s.Bike + s.Run + s.Strength
}

// Brief is everything the generator is told about a goal and its athlete.
type Brief struct {
	GoalTitle     string
	GoalType      string
	Description   string
	EventDate     *util.Date
	EventLocation string
	// Targets are goal specific lines such as "Run distance: 26.2 miles".
	Targets []string

	TotalWeeks int
	StartDate  util.Date

	Age               *int
	WeightLbs         *float64
	Experience        string
	FitnessLevel      string
	MedicalConditions string
	FitnessAssessment string
	Abilities         []string

	Sessions          Sessions
	WorkoutsPerWeek   int
	MinutesPerWorkout int
	PreferredDays     []string
	Equipment         []string
}

func (b Brief) Validate() error {
	if strings.TrimSpace(b.GoalTitle) == "" {
		return apperr.Validationf("goal title is required")
	}
	if b.TotalWeeks < 1 || b.TotalWeeks > schedule.MaxPlanWeeks {
		return apperr.Validationf("plan length must be between 1 and %d weeks", schedule.MaxPlanWeeks)
	}
	if b.StartDate.IsZero() {
		return apperr.Validationf("plan start date is required")
	}
	return nil
}
