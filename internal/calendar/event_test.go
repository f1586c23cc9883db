package calendar

import (
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEvent(t *testing.T) {
	miles := 6.0
	w := &training.Workout{
		ID:              uuid.New(),
		Name:            "Long run",
		Type:            training.Run,
		Intensity:       training.Easy,
		WeekNumber:      3,
		ScheduledDate:   util.NewDate(2025, 12, 31),
		DurationMinutes: 60,
		DistanceMiles:   &miles,
		Instructions:    "Conversational pace.",
		WeeklyFocus:     "Aerobic base",
		Exercises:       []string{"Strides x4"},
	}

	e := buildEvent(w)
	require.NotNil(t, e)
	assert.Equal(t, "Long run", e.Summary)
	assert.Equal(t, "2025-12-31", e.Start.Date)
	assert.Equal(t, "2026-01-01", e.End.Date)
	assert.Empty(t, e.Start.DateTime)
	assert.Equal(t, w.ID.String(), e.ExtendedProperties.Private["workout_id"])

	assert.Contains(t, e.Description, "run, easy intensity, 60 min, 6.0 mi")
	assert.Contains(t, e.Description, "Week 3 focus: Aerobic base")
	assert.Contains(t, e.Description, "Conversational pace.")
	assert.Contains(t, e.Description, "- Strides x4")

	t.Run("Unscheduled", func(t *testing.T) {
		assert.Nil(t, buildEvent(&training.Workout{Name: "Floating"}))
	})
}
