package schedule

import (
	"math"
	"time"
)

const week = 7 * 24 * time.Hour

const (
	MinPlanWeeks     = 4
	MaxPlanWeeks     = 32
	DefaultPlanWeeks = 12
)

// TotalWeeksFor sizes a plan to the weeks left before the event, within
// [MinPlanWeeks, MaxPlanWeeks]. Goals without an event get DefaultPlanWeeks.
func TotalWeeksFor(eventDate *time.Time, now time.Time) int {
	if eventDate == nil || eventDate.IsZero() {
		return DefaultPlanWeeks
	}
	return clamp(DaysUntil(*eventDate, now)/7, MinPlanWeeks, MaxPlanWeeks)
}

// CurrentWeek is floor(elapsed/7d)+1, clamped to [1, totalWeeks].
func CurrentWeek(start, now time.Time, totalWeeks int) int {
	if totalWeeks < 1 {
		return 1
	}
	elapsed := now.Sub(start)
	if elapsed < 0 {
		return 1
	}
	return clamp(int(elapsed/week)+1, 1, totalWeeks)
}

// ProgressPct is the share of completed workouts, in [0, 100]. Any completed
// workout shows at least 1%.
func ProgressPct(completed, total int64) float64 {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	pct := float64(completed) * 100 / float64(total)
	pct = math.Round(pct*100) / 100
	if pct < 1 {
		pct = 1
	}
	return math.Min(pct, 100)
}

// DaysUntil counts calendar days (UTC) from now to event. Negative once the
// event has passed.
func DaysUntil(event, now time.Time) int {
	e := time.Date(event.Year(), event.Month(), event.Day(), 0, 0, 0, 0, time.UTC)
	n := now.UTC()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(e.Sub(today).Hours() / 24))
}

type Input struct {
	PlanCreatedAt     time.Time
	TotalWeeks        int
	Weeks             PhaseWeeks
	CompletedWorkouts int64
	TotalWorkouts     int64
	EventDate         *time.Time
}

type Snapshot struct {
	Phase             Phase   `json:"phase"`
	ProgressPct       float64 `json:"progress_pct"`
	TimeProgressPct   float64 `json:"time_progress_pct"`
	CurrentWeek       int     `json:"current_week"`
	TotalWeeks        int     `json:"total_weeks"`
	WeeksRemaining    int     `json:"weeks_remaining"`
	DaysUntilEvent    *int    `json:"days_until_event"`
	CompletedWorkouts int64   `json:"completed_workouts"`
	TotalWorkouts     int64   `json:"total_workouts"`
	WeeklyFocus       string  `json:"weekly_focus"`
}

// Compute derives the dashboard view of a plan at now. Elapsed time decides
// the week and phase; completed workouts alone decide the progress figure.
func Compute(in Input, now time.Time) Snapshot {
	current := CurrentWeek(in.PlanCreatedAt, now, in.TotalWeeks)
	phase := PhaseForWeek(in.Weeks, current)

	s := Snapshot{
		Phase:             phase,
		ProgressPct:       ProgressPct(in.CompletedWorkouts, in.TotalWorkouts),
		CurrentWeek:       current,
		TotalWeeks:        in.TotalWeeks,
		WeeksRemaining:    max(in.TotalWeeks-current, 0),
		CompletedWorkouts: in.CompletedWorkouts,
		TotalWorkouts:     in.TotalWorkouts,
		WeeklyFocus:       WeeklyFocus(phase, current),
	}
	if in.TotalWeeks > 0 {
		s.TimeProgressPct = math.Round(float64(current)*10000/float64(in.TotalWeeks)) / 100
	}
	if in.EventDate != nil && !in.EventDate.IsZero() {
		d := DaysUntil(*in.EventDate, now)
		s.DaysUntilEvent = &d
	}
	return s
}
