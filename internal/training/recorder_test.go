package training

import (
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"github.com/saulo-duarte/atarax-lambda/internal/metrics"
	"github.com/saulo-duarte/atarax-lambda/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestComplete_Idempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	m := metrics.NewTestManager()
	rec := NewRecorder(db, repo, m)
	ctx := t.Context()

	userID := uuid.New()
	goalID := insertGoal(t, db, userID, "active")
	plan, workouts := seedPlan(t, repo, goalID, fourWeeks, 1)

	before, err := repo.CountCompleted(ctx, plan.ID)
	require.NoError(t, err)
	assert.Zero(t, before)

	first, err := rec.Complete(ctx, userID, workouts[0].ID, &Feedback{PerceivedExertion: intPtr(8)})
	require.NoError(t, err)
	assert.False(t, first.AlreadyCompleted)
	assert.True(t, first.Workout.Completed)
	assert.NotNil(t, first.Workout.CompletedAt)
	assert.Equal(t, int64(1), first.CompletedWorkouts)
	assert.Equal(t, int64(4), first.TotalWorkouts)
	assert.Equal(t, 25.0, first.ProgressPct)
	assert.NotEmpty(t, first.Workout.Phase)

	second, err := rec.Complete(ctx, userID, workouts[0].ID, &Feedback{Notes: strPtr("windy")})
	require.NoError(t, err)
	assert.True(t, second.AlreadyCompleted)
	assert.Equal(t, int64(1), second.CompletedWorkouts)
	assert.Equal(t, first.Log.ID, second.Log.ID)

	stored, err := repo.LogForWorkout(ctx, workouts[0].ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PerceivedExertion)
	assert.Equal(t, 8, *stored.PerceivedExertion)
	require.NotNil(t, stored.Notes)
	assert.Equal(t, "windy", *stored.Notes)
	assert.Nil(t, stored.EnergyLevel)
	assert.Nil(t, stored.ActualDurationMinutes)
	assert.Equal(t, goalID, stored.GoalID)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterWorkoutsCompleted))
}

func TestComplete_FirstCompletionFloorsProgress(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	rec := NewRecorder(db, repo, metrics.NewTestManager())

	userID := uuid.New()
	goalID := insertGoal(t, db, userID, "active")
	// 32 weeks x 5 workouts = 160 workouts, one completion is 0.625%.
	_, workouts := seedPlan(t, repo, goalID, schedule.PhaseWeeks{Base: 16, Build: 8, Peak: 4, Taper: 4}, 5)

	res, err := rec.Complete(t.Context(), userID, workouts[10].ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(160), res.TotalWorkouts)
	assert.Equal(t, 1.0, res.ProgressPct)
}

func TestComplete_NotInActivePlan(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	rec := NewRecorder(db, repo, metrics.NewTestManager())
	ctx := t.Context()

	userID := uuid.New()
	pausedGoal := insertGoal(t, db, userID, "paused")
	_, pausedWorkouts := seedPlan(t, repo, pausedGoal, fourWeeks, 1)

	activeGoal := insertGoal(t, db, userID, "active")
	_, activeWorkouts := seedPlan(t, repo, activeGoal, fourWeeks, 1)

	_, err := rec.Complete(ctx, userID, pausedWorkouts[0].ID, nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = rec.Complete(ctx, uuid.New(), activeWorkouts[0].ID, nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = rec.Complete(ctx, userID, uuid.New(), nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	var logs int64
	require.NoError(t, db.Model(&WorkoutLog{}).Count(&logs).Error)
	assert.Zero(t, logs)
}

func TestFeedback_Validate(t *testing.T) {
	tests := []struct {
		name    string
		fb      *Feedback
		wantErr bool
	}{
		{"Nil", nil, false},
		{"Empty", &Feedback{}, false},
		{"AllScales", &Feedback{PerceivedExertion: intPtr(1), EnergyLevel: intPtr(10), EnjoymentLevel: intPtr(5)}, false},
		{"ExertionTooHigh", &Feedback{PerceivedExertion: intPtr(11)}, true},
		{"EnergyZero", &Feedback{EnergyLevel: intPtr(0)}, true},
		{"NegativeDuration", &Feedback{ActualDurationMinutes: intPtr(-1)}, true},
		{"NegativeDistance", &Feedback{ActualDistanceMiles: floatPtr(-0.5)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fb.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
