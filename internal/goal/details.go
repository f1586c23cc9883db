package goal

import (
	"fmt"

	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
)

// Details is the type-specific part of a goal. It is one of RaceDetails,
// WeightDetails, StrengthDetails or GeneralFitnessDetails.
type Details interface {
	Category() Category
}

type RaceDetails struct {
	SwimMeters *float64 `json:"swim_distance_meters,omitempty"`
	BikeMiles  *float64 `json:"bike_distance_miles,omitempty"`
	RunMiles   *float64 `json:"run_distance_miles,omitempty"`
}

type WeightDetails struct {
	CurrentLbs       *float64 `json:"current_weight_lbs,omitempty"`
	TargetLbs        *float64 `json:"target_weight_lbs,omitempty"`
	TargetBodyFatPct *float64 `json:"target_body_fat_percent,omitempty"`
}

type StrengthDetails struct {
	BenchLbs    *float64 `json:"target_bench_press_lbs,omitempty"`
	SquatLbs    *float64 `json:"target_squat_lbs,omitempty"`
	DeadliftLbs *float64 `json:"target_deadlift_lbs,omitempty"`
}

type GeneralFitnessDetails struct{}

func (RaceDetails) Category() Category           { return CategoryRace }
func (WeightDetails) Category() Category         { return CategoryWeight }
func (StrengthDetails) Category() Category       { return CategoryStrength }
func (GeneralFitnessDetails) Category() Category { return CategoryGeneral }

// raceDefaults are the standard distances filled in when a race goal leaves
// them out.
var raceDefaults = map[GoalType]RaceDetails{
	TypeTriathlon:    {SwimMeters: ptr(750.0), BikeMiles: ptr(14.3), RunMiles: ptr(3.1)},
	TypeIronman:      {SwimMeters: ptr(3862.0), BikeMiles: ptr(112.0), RunMiles: ptr(26.2)},
	TypeMarathon:     {RunMiles: ptr(26.2)},
	TypeHalfMarathon: {RunMiles: ptr(13.1)},
	TypeTenK:         {RunMiles: ptr(6.2)},
	TypeFiveK:        {RunMiles: ptr(3.1)},
	TypeCenturyRide:  {BikeMiles: ptr(100.0)},
	TypeObstacleRace: {RunMiles: ptr(3.1)},
}

func (d RaceDetails) withDefaults(t GoalType) RaceDetails {
	def := raceDefaults[t]
	if d.SwimMeters == nil {
		d.SwimMeters = def.SwimMeters
	}
	if d.BikeMiles == nil {
		d.BikeMiles = def.BikeMiles
	}
	if d.RunMiles == nil {
		d.RunMiles = def.RunMiles
	}
	return d
}

func validateDetails(d Details) error {
	switch d := d.(type) {
	case RaceDetails:
		distances := []struct {
			name string
			v    *float64
		}{
			{"swim_distance_meters", d.SwimMeters},
			{"bike_distance_miles", d.BikeMiles},
			{"run_distance_miles", d.RunMiles},
		}
		for _, dist := range distances {
			if dist.v != nil && *dist.v < 0 {
				return apperr.Validationf("%s must not be negative", dist.name)
			}
		}
	case WeightDetails:
		if d.TargetLbs == nil || *d.TargetLbs <= 0 {
			return apperr.Validationf("target_weight_lbs is required for weight goals")
		}
		if d.CurrentLbs != nil && *d.CurrentLbs <= 0 {
			return apperr.Validationf("current_weight_lbs must be positive")
		}
		if p := d.TargetBodyFatPct; p != nil && (*p <= 0 || *p >= 100) {
			return apperr.Validationf("target_body_fat_percent must be between 0 and 100")
		}
	case StrengthDetails:
		lifts := []*float64{d.BenchLbs, d.SquatLbs, d.DeadliftLbs}
		set := 0
		for _, v := range lifts {
			if v == nil {
				continue
			}
			if *v <= 0 {
				return apperr.Validationf("lift targets must be positive")
			}
			set++
		}
		if set == 0 {
			return apperr.Validationf("strength goals need at least one lift target")
		}
	case GeneralFitnessDetails:
	default:
		return fmt.Errorf("unknown goal details %T", d)
	}
	return nil
}

// targets renders the details as plain lines for the plan brief.
func targets(d Details) []string {
	var out []string
	switch d := d.(type) {
	case RaceDetails:
		if d.SwimMeters != nil {
			out = append(out, fmt.Sprintf("Swim distance: %gm", *d.SwimMeters))
		}
		if d.BikeMiles != nil {
			out = append(out, fmt.Sprintf("Bike distance: %g miles", *d.BikeMiles))
		}
		if d.RunMiles != nil {
			out = append(out, fmt.Sprintf("Run distance: %g miles", *d.RunMiles))
		}
	case WeightDetails:
		if d.CurrentLbs != nil {
			out = append(out, fmt.Sprintf("Current weight: %g lbs", *d.CurrentLbs))
		}
		if d.TargetLbs != nil {
			out = append(out, fmt.Sprintf("Target weight: %g lbs", *d.TargetLbs))
		}
		if d.TargetBodyFatPct != nil {
			out = append(out, fmt.Sprintf("Target body fat: %g%%", *d.TargetBodyFatPct))
		}
	case StrengthDetails:
		if d.BenchLbs != nil {
			out = append(out, fmt.Sprintf("Bench press target: %g lbs", *d.BenchLbs))
		}
		if d.SquatLbs != nil {
			out = append(out, fmt.Sprintf("Squat target: %g lbs", *d.SquatLbs))
		}
		if d.DeadliftLbs != nil {
			out = append(out, fmt.Sprintf("Deadlift target: %g lbs", *d.DeadliftLbs))
		}
	case GeneralFitnessDetails:
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
