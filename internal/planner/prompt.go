package planner

import (
	"fmt"
	"strings"
)

const systemPrompt = `
You are an expert endurance and strength coach and exercise physiologist.
You design periodized training plans (base, build, peak and taper phases) that are safe,
progressive and achievable for the athlete described by the user.

Safety rules:
1. Any listed medical condition or injury must be accommodated explicitly. Never prescribe
   movements or loads that aggravate it; prefer low impact alternatives.
2. Scale intensity and recovery to the athlete's age, experience and current fitness.
3. Include warm-up and cool-down in every session duration.
4. Never increase weekly volume by more than about 10% week over week, and schedule a lighter
   week at least every fourth week.

Respond with pure JSON only, no text outside the JSON, matching exactly this shape:

{
  "name": "<plan name>",
  "description": "<short summary of the approach>",
  "training_philosophy": "<coaching approach, key adaptations and safety considerations>",
  "base_weeks": <int>,
  "build_weeks": <int>,
  "peak_weeks": <int>,
  "taper_weeks": <int>,
  "weekly_swim_sessions": <int>,
  "weekly_bike_sessions": <int>,
  "weekly_run_sessions": <int>,
  "weekly_strength_sessions": <int>,
  "workouts": [
    {
      "week": <int, 1..plan length>,
      "day": <int, 0..6, offset from the first day of that plan week>,
      "name": "<workout name>",
      "type": "swim | bike | run | strength | rest | cross_training | brick",
      "intensity": "recovery | easy | moderate | hard | very_hard",
      "duration_minutes": <int>,
      "distance_miles": <number or 0 when not a distance session>,
      "total_yards": <int, swim sessions only, otherwise omit>,
      "description": "<one sentence>",
      "instructions": "<specific instructions: sets, paces, heart rate zones>",
      "exercises": ["<strength sessions only: exercise with sets x reps>"]
    }
  ]
}

The four phase lengths must add up to the plan length. List every training session of every
week; rest days may be omitted.
`

// BuildUserPrompt renders the athlete and goal description sent with the
// system prompt.
func BuildUserPrompt(b Brief) string {
	var sb strings.Builder

	sb.WriteString("Create a personalized training plan for this athlete.\n\n")

	sb.WriteString("GOAL:\n")
	fmt.Fprintf(&sb, "- Goal: %s\n", b.GoalTitle)
	fmt.Fprintf(&sb, "- Goal type: %s\n", b.GoalType)
	fmt.Fprintf(&sb, "- Description: %s\n", orNone(b.Description, "None provided"))
	if b.EventDate != nil && !b.EventDate.IsZero() {
		fmt.Fprintf(&sb, "- Event date: %s\n", b.EventDate)
	} else {
		sb.WriteString("- Event date: No specific date\n")
	}
	if b.EventLocation != "" {
		fmt.Fprintf(&sb, "- Event location: %s\n", b.EventLocation)
	}
	for _, t := range b.Targets {
		fmt.Fprintf(&sb, "- %s\n", t)
	}
	fmt.Fprintf(&sb, "- Plan length: %d weeks starting %s\n", b.TotalWeeks, b.StartDate)

	sb.WriteString("\nATHLETE PROFILE:\n")
	if b.Age != nil {
		fmt.Fprintf(&sb, "- Age: %d years old\n", *b.Age)
	}
	if b.WeightLbs != nil {
		fmt.Fprintf(&sb, "- Current weight: %.1f lbs\n", *b.WeightLbs)
	}
	if b.Experience != "" {
		fmt.Fprintf(&sb, "- Training experience: %s\n", b.Experience)
	}
	if b.FitnessLevel != "" {
		fmt.Fprintf(&sb, "- Fitness level: %s\n", b.FitnessLevel)
	}
	if b.MedicalConditions != "" {
		fmt.Fprintf(&sb, "- SAFETY: medical conditions or injuries to accommodate: %s\n", b.MedicalConditions)
	}

	sb.WriteString("\nCURRENT FITNESS ASSESSMENT:\n")
	fmt.Fprintf(&sb, "%s\n", orNone(b.FitnessAssessment, "Not provided"))
	for _, a := range b.Abilities {
		fmt.Fprintf(&sb, "- %s\n", a)
	}

	sb.WriteString("\nTRAINING PREFERENCES:\n")
	if b.WorkoutsPerWeek > 0 {
		fmt.Fprintf(&sb, "- Workouts per week: %d\n", b.WorkoutsPerWeek)
	}
	if b.MinutesPerWorkout > 0 {
		fmt.Fprintf(&sb, "- Preferred workout duration: %d minutes\n", b.MinutesPerWorkout)
	}
	fmt.Fprintf(&sb, "- Requested weekly sessions: swim %d, bike %d, run %d, strength %d\n",
		b.Sessions.Swim, b.Sessions.Bike, b.Sessions.Run, b.Sessions.Strength)
	if len(b.PreferredDays) > 0 {
		fmt.Fprintf(&sb, "- Preferred training days: %s\n", strings.Join(b.PreferredDays, ", "))
	}
	if len(b.Equipment) > 0 {
		fmt.Fprintf(&sb, "- Available equipment: %s\n", strings.Join(b.Equipment, ", "))
	}

	return sb.String()
}

func orNone(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
