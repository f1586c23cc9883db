// Package schedule derives where an athlete is inside a training plan: the
// current week, its phase and how far along the plan they are.
package schedule

import "fmt"

type Phase string

const (
	Base  Phase = "base"
	Build Phase = "build"
	Peak  Phase = "peak"
	Taper Phase = "taper"
)

var AllPhases = []Phase{Base, Build, Peak, Taper}

// Severity orders phases; it never decreases as a plan advances.
func (p Phase) Severity() int {
	switch p {
	case Base:
		return 0
	case Build:
		return 1
	case Peak:
		return 2
	case Taper:
		return 3
	}
	return -1
}

func (p Phase) IsValid() bool {
	return p.Severity() >= 0
}

// PhaseWeeks is the length in weeks of each phase, in plan order.
type PhaseWeeks struct {
	Base  int `json:"base_weeks"`
	Build int `json:"build_weeks"`
	Peak  int `json:"peak_weeks"`
	Taper int `json:"taper_weeks"`
}

func (w PhaseWeeks) Total() int {
	return w.Base + w.Build + w.Peak + w.Taper
}

func (w PhaseWeeks) Validate(totalWeeks int) error {
	if w.Base < 1 || w.Build < 0 || w.Peak < 0 || w.Taper < 0 {
		return fmt.Errorf("invalid phase split %+v", w)
	}
	if w.Total() != totalWeeks {
		return fmt.Errorf("phase split sums to %d weeks, plan has %d", w.Total(), totalWeeks)
	}
	return nil
}

// PhaseForWeek maps a 1-based week to its phase using cumulative boundaries.
// Weeks past the last boundary belong to Taper.
func PhaseForWeek(w PhaseWeeks, week int) Phase {
	switch {
	case week <= w.Base:
		return Base
	case week <= w.Base+w.Build:
		return Build
	case week <= w.Base+w.Build+w.Peak:
		return Peak
	default:
		return Taper
	}
}

// DefaultSplit spreads totalWeeks over the four phases. It is used whenever a
// generated plan comes back with a split that does not add up.
func DefaultSplit(totalWeeks int) PhaseWeeks {
	if totalWeeks <= 0 {
		return PhaseWeeks{}
	}
	if totalWeeks < 4 {
		return PhaseWeeks{Base: totalWeeks}
	}

	taper := clamp(totalWeeks/8, 1, 2)
	peak := clamp(totalWeeks/8, 1, 3)
	rest := totalWeeks - taper - peak
	build := rest * 2 / 5

	return PhaseWeeks{
		Base:  rest - build,
		Build: build,
		Peak:  peak,
		Taper: taper,
	}
}

var weeklyFocus = map[Phase][]string{
	Base:  {"Building aerobic base", "Establishing routine", "Technique focus"},
	Build: {"Increasing intensity", "Race pace practice", "Building strength"},
	Peak:  {"High intensity training", "Race simulation", "Peak fitness"},
	Taper: {"Recovery and preparation", "Maintaining fitness", "Race readiness"},
}

// WeeklyFocus returns the training theme shown for a week.
func WeeklyFocus(p Phase, week int) string {
	focuses, ok := weeklyFocus[p]
	if !ok || week < 1 {
		return ""
	}
	return focuses[(week-1)%len(focuses)]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
