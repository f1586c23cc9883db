package planner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/saulo-duarte/atarax-lambda/internal/training"
)

var (
	errNoJSONObject = errors.New("no JSON object in response")
	errNoWorkouts   = errors.New("no usable workouts in response")
)

// planEnvelope is the top-level shape requested from the generator. Workouts
// stay raw so a malformed entry cannot sink the whole response.
type planEnvelope struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Philosophy  string `json:"training_philosophy"`

	BaseWeeks  int `json:"base_weeks"`
	BuildWeeks int `json:"build_weeks"`
	PeakWeeks  int `json:"peak_weeks"`
	TaperWeeks int `json:"taper_weeks"`

	Sessions

	Workouts []json.RawMessage `json:"workouts"`
}

type workoutEntry struct {
	Week         *int     `json:"week"`
	Day          *int     `json:"day"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Intensity    string   `json:"intensity"`
	Duration     *int     `json:"duration_minutes"`
	Distance     *float64 `json:"distance_miles,omitempty"`
	TotalYards   *int     `json:"total_yards,omitempty"`
	Description  string   `json:"description"`
	Instructions string   `json:"instructions"`
	Exercises    []string `json:"exercises,omitempty"`
}

// Draft is a parsed plan that has not been persisted. Phase weeks are as
// reported by the generator and may not add up yet.
type Draft struct {
	Plan     training.TrainingPlan
	Workouts []training.Workout
}

// EntryError describes a generated workout that was dropped.
type EntryError struct {
	Index  int
	Reason string
}

func (e EntryError) Error() string {
	return fmt.Sprintf("workout %d: %s", e.Index, e.Reason)
}

// ParsePlan decodes generator output into a Draft. Entries failing the
// workout schema are skipped and reported; an unreadable envelope is an error.
func ParsePlan(raw string, totalWeeks int) (*Draft, []EntryError, error) {
	body, err := extractObject(raw)
	if err != nil {
		return nil, nil, err
	}

	var env planEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, nil, fmt.Errorf("decode plan: %w", err)
	}

	draft := &Draft{
		Plan: training.TrainingPlan{
			Name:                   strings.TrimSpace(env.Name),
			Description:            strings.TrimSpace(env.Description),
			Philosophy:             strings.TrimSpace(env.Philosophy),
			TotalWeeks:             totalWeeks,
			BaseWeeks:              env.BaseWeeks,
			BuildWeeks:             env.BuildWeeks,
			PeakWeeks:              env.PeakWeeks,
			TaperWeeks:             env.TaperWeeks,
			WeeklySwimSessions:     max(env.Swim, 0),
			WeeklyBikeSessions:     max(env.Bike, 0),
			WeeklyRunSessions:      max(env.Run, 0),
			WeeklyStrengthSessions: max(env.Strength, 0),
		},
	}

	var dropped []EntryError
	for i, msg := range env.Workouts {
		w, err := decodeEntry(msg, totalWeeks)
		if err != nil {
			dropped = append(dropped, EntryError{Index: i, Reason: err.Error()})
			continue
		}
		draft.Workouts = append(draft.Workouts, w)
	}

	slices.SortStableFunc(draft.Workouts, func(a, b training.Workout) int {
		if a.WeekNumber != b.WeekNumber {
			return a.WeekNumber - b.WeekNumber
		}
		return a.DayOfWeek - b.DayOfWeek
	})

	return draft, dropped, nil
}

// extractObject strips markdown fences and returns the outermost {...}.
func extractObject(raw string) ([]byte, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end <= start {
		return nil, errNoJSONObject
	}
	return []byte(clean[start : end+1]), nil
}

func decodeEntry(msg json.RawMessage, totalWeeks int) (training.Workout, error) {
	if len(bytes.TrimSpace(msg)) == 0 || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return training.Workout{}, errors.New("empty entry")
	}

	var e workoutEntry
	if err := json.Unmarshal(msg, &e); err != nil {
		return training.Workout{}, fmt.Errorf("malformed entry: %w", err)
	}

	switch {
	case e.Week == nil:
		return training.Workout{}, errors.New("week is required")
	case *e.Week < 1 || *e.Week > totalWeeks:
		return training.Workout{}, fmt.Errorf("week %d outside 1..%d", *e.Week, totalWeeks)
	case e.Day == nil:
		return training.Workout{}, errors.New("day is required")
	case *e.Day < 0 || *e.Day > 6:
		return training.Workout{}, fmt.Errorf("day %d outside 0..6", *e.Day)
	case strings.TrimSpace(e.Name) == "":
		return training.Workout{}, errors.New("name is required")
	case e.Duration == nil:
		return training.Workout{}, errors.New("duration_minutes is required")
	case *e.Duration < 0:
		return training.Workout{}, errors.New("duration_minutes is negative")
	case e.Distance != nil && *e.Distance < 0:
		return training.Workout{}, errors.New("distance_miles is negative")
	case e.TotalYards != nil && *e.TotalYards < 0:
		return training.Workout{}, errors.New("total_yards is negative")
	}

	wt := training.WorkoutType(normalize(e.Type))
	if !wt.IsValid() {
		return training.Workout{}, fmt.Errorf("unknown workout type %q", e.Type)
	}
	in := training.Intensity(normalize(e.Intensity))
	if !in.IsValid() {
		return training.Workout{}, fmt.Errorf("unknown intensity %q", e.Intensity)
	}

	w := training.Workout{
		Name:            strings.TrimSpace(e.Name),
		Type:            wt,
		Intensity:       in,
		WeekNumber:      *e.Week,
		DayOfWeek:       *e.Day,
		DurationMinutes: *e.Duration,
		Description:     strings.TrimSpace(e.Description),
		Instructions:    strings.TrimSpace(e.Instructions),
	}
	if e.Distance != nil && *e.Distance > 0 {
		w.DistanceMiles = e.Distance
	}
	if e.TotalYards != nil && *e.TotalYards > 0 {
		w.TotalYards = e.TotalYards
	}
	if len(e.Exercises) > 0 {
		w.Exercises = e.Exercises
	}
	return w, nil
}

// normalize maps "Very Hard" or "cross-training" to their enum spelling.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}
