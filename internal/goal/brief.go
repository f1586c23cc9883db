package goal

import (
	"fmt"
	"time"

	"github.com/saulo-duarte/atarax-lambda/internal/planner"
	"github.com/saulo-duarte/atarax-lambda/internal/schedule"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
)

// sessionsFor is the weekly session distribution asked of the generator for
// each kind of goal.
func sessionsFor(g *Goal) planner.Sessions {
	switch g.GoalType {
	case TypeTriathlon, TypeIronman:
		return planner.Sessions{Swim: 2, Bike: 2, Run: 3, Strength: 1}
	case TypeMarathon, TypeHalfMarathon, TypeTenK, TypeFiveK:
		dist := 3.1
		if g.RunDistanceMiles != nil {
			dist = *g.RunDistanceMiles
		}
		runs := 5
		switch {
		case dist <= 5:
			runs = 3
		case dist <= 13.1:
			runs = 4
		}
		return planner.Sessions{Run: runs, Strength: 2}
	case TypeWeightLoss, TypeMuscleGain:
		return planner.Sessions{Run: 2, Strength: 3}
	case TypeStrengthTraining:
		return planner.Sessions{Run: 1, Strength: 4}
	case TypeCycling, TypeCenturyRide:
		return planner.Sessions{Bike: 4, Strength: 2}
	case TypeSwimming:
		return planner.Sessions{Swim: 4, Strength: 1}
	case TypeObstacleRace:
		return planner.Sessions{Run: 3, Strength: 2}
	default:
		return planner.Sessions{Run: 2, Strength: 2}
	}
}

func buildBrief(g *Goal, u *user.User, now time.Time) planner.Brief {
	b := planner.Brief{
		GoalTitle:         g.Title,
		GoalType:          string(g.GoalType),
		Description:       g.Description,
		EventDate:         g.EventDate,
		EventLocation:     g.EventLocation,
		Targets:           targets(g.Details()),
		TotalWeeks:        schedule.TotalWeeksFor(g.eventTime(), now),
		StartDate:         util.DateOf(now),
		FitnessAssessment: g.CurrentFitnessAssessment,
		Sessions:          sessionsFor(g),
		PreferredDays:     g.PreferredDays,
		Equipment:         g.Equipment,
	}

	times := []struct {
		label string
		v     *int
	}{
		{"swim", g.TargetSwimTime},
		{"bike", g.TargetBikeTime},
		{"run", g.TargetRunTime},
		{"total", g.TargetTotalTime},
	}
	for _, t := range times {
		if t.v != nil {
			b.Targets = append(b.Targets, fmt.Sprintf("Target %s time: %d minutes", t.label, *t.v))
		}
	}

	abilities := []struct {
		label string
		v     string
	}{
		{"Swim", g.CurrentSwimAbility},
		{"Bike", g.CurrentBikeAbility},
		{"Run", g.CurrentRunAbility},
	}
	for _, a := range abilities {
		if a.v != "" {
			b.Abilities = append(b.Abilities, fmt.Sprintf("%s: %s", a.label, a.v))
		}
	}

	if g.WorkoutsPerWeek != nil {
		b.WorkoutsPerWeek = *g.WorkoutsPerWeek
	}
	if g.MinutesPerWorkout != nil {
		b.MinutesPerWorkout = *g.MinutesPerWorkout
	}

	if u != nil {
		b.Age = u.Age(now)
		b.WeightLbs = u.WeightLbs
		b.Experience = string(u.TrainingExperience)
		b.FitnessLevel = string(u.FitnessLevel)
		b.MedicalConditions = u.MedicalConditions
	}
	if b.WeightLbs == nil {
		b.WeightLbs = g.CurrentWeightLbs
	}
	return b
}
