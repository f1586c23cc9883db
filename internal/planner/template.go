package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/saulo-duarte/atarax-lambda/internal/schedule"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
)

// templateProvider builds a plan offline from the brief alone. It answers in
// the same JSON shape as the model so the full parsing path is exercised.
type templateProvider struct{}

func NewTemplateProvider() Provider {
	return templateProvider{}
}

var defaultSessions = Sessions{Run: 2, Strength: 2}

// trainingDays spreads n sessions across a week, keeping rest between them
// where possible.
var trainingDays = [][]int{
	{},
	{2},
	{1, 4},
	{0, 2, 4},
	{0, 1, 3, 5},
	{0, 1, 3, 4, 6},
	{0, 1, 2, 3, 4, 6},
	{0, 1, 2, 3, 4, 5, 6},
}

func (templateProvider) SendPrompt(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b := req.Brief
	if b.TotalWeeks < 1 {
		return "", errors.New("brief has no plan length")
	}

	sessions := b.Sessions
	if sessions.Total() == 0 {
		sessions = defaultSessions
	}
	minutes := b.MinutesPerWorkout
	if minutes <= 0 {
		minutes = 45
	}
	split := schedule.DefaultSplit(b.TotalWeeks)

	env := struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Philosophy  string `json:"training_philosophy"`
		schedule.PhaseWeeks
		Sessions
		Workouts []workoutEntry `json:"workouts"`
	}{
		Name:        fmt.Sprintf("%s - Training Plan", b.GoalTitle),
		Description: fmt.Sprintf("Progressive %d-week %s plan", b.TotalWeeks, b.GoalType),
		Philosophy:  "Build an aerobic and strength base, add intensity gradually, then reduce volume before the goal date.",
		PhaseWeeks:  split,
		Sessions:    sessions,
	}

	slots := weeklySlots(sessions)
	days := trainingDays[len(slots)]
	for week := 1; week <= b.TotalWeeks; week++ {
		phase := schedule.PhaseForWeek(split, week)
		for i, t := range slots {
			env.Workouts = append(env.Workouts, templateWorkout(t, phase, week, days[i], i, minutes))
		}
	}

	out, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// weeklySlots interleaves disciplines so the same one rarely lands on
// consecutive days. At most seven sessions are scheduled.
func weeklySlots(s Sessions) []training.WorkoutType {
	remaining := map[training.WorkoutType]int{
		training.Run:      s.Run,
		training.Bike:     s.Bike,
		training.Swim:     s.Swim,
		training.Strength: s.Strength,
	}
	order := []training.WorkoutType{training.Run, training.Strength, training.Bike, training.Swim}

	var slots []training.WorkoutType
	for len(slots) < 7 {
		added := false
		for _, t := range order {
			if remaining[t] > 0 && len(slots) < 7 {
				slots = append(slots, t)
				remaining[t]--
				added = true
			}
		}
		if !added {
			break
		}
	}
	return slots
}

func templateWorkout(t training.WorkoutType, phase schedule.Phase, week, day, slot, minutes int) workoutEntry {
	intensity := training.Easy
	switch phase {
	case schedule.Build:
		intensity = training.Moderate
	case schedule.Peak:
		intensity = training.Hard
	}
	// The first session of each week stays easy as the long aerobic day.
	if slot == 0 && phase != schedule.Taper {
		intensity = training.Easy
	}

	duration := minutes + (week-1)*2
	if phase == schedule.Taper {
		duration = minutes * 2 / 3
	}

	e := workoutEntry{
		Week:      ptr(week),
		Day:       ptr(day),
		Type:      string(t),
		Intensity: string(intensity),
		Duration:  ptr(duration),
		Instructions: fmt.Sprintf("Warm up 10 minutes, keep the main set at %s effort, cool down 5 minutes.",
			intensity),
	}

	switch t {
	case training.Run:
		e.Name = fmt.Sprintf("Run - Week %d", week)
		e.Description = "Steady run at conversational pace"
		e.Distance = ptr(float64(duration) / 10)
	case training.Bike:
		e.Name = fmt.Sprintf("Bike - Week %d", week)
		e.Description = "Endurance ride with steady cadence"
		e.Distance = ptr(float64(duration) / 4)
	case training.Swim:
		e.Name = fmt.Sprintf("Swim - Week %d", week)
		e.Description = "Technique drills and aerobic intervals"
		e.TotalYards = ptr(duration * 40)
	case training.Strength:
		e.Name = fmt.Sprintf("Strength - Week %d", week)
		e.Description = "Full body strength session"
		e.Exercises = []string{"Squat 3x8", "Romanian deadlift 3x8", "Push-up 3x12", "Plank 3x45s"}
	}
	return e
}

func ptr[T any](v T) *T {
	return &v
}
