package goal_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/goal"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateKeepsGenerationState(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	repo := f.goals.Repository

	g := f.create(t, f.newUser(t), raceRequest()).Goal
	stale, err := repo.FindByID(ctx, g.ID)
	require.NoError(t, err)

	require.NoError(t, repo.FinishGeneration(ctx, g.ID, goal.GenerationFailed, "training plan generation failed"))
	require.NoError(t, repo.SetTotalWeeks(ctx, g.ID, 20))

	stale.Title = "Renamed"
	require.NoError(t, repo.Update(ctx, stale))

	got, err := repo.FindByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, goal.GenerationFailed, got.GenerationStatus)
	assert.Equal(t, "training plan generation failed", got.GenerationError)
	assert.Equal(t, 20, got.TotalWeeks)
	assert.Equal(t, g.Status, got.Status)
}

func TestForeignKeys(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	userID := f.newUser(t)

	res := f.create(t, userID, raceRequest())
	_, err := f.goals.Service.Activate(ctx, userID, res.Goal.ID)
	require.NoError(t, err)

	t.Run("Declared", func(t *testing.T) {
		for table, want := range map[string]int64{
			"goals":          1,
			"training_plans": 1,
			"workouts":       1,
			"workout_logs":   3,
		} {
			var n int64
			require.NoError(t, f.db.Raw("SELECT COUNT(*) FROM pragma_foreign_key_list(?)", table).Scan(&n).Error)
			assert.Equal(t, want, n, table)
		}
	})

	t.Run("OrphanPlanRejected", func(t *testing.T) {
		plan := &training.TrainingPlan{GoalID: uuid.New(), Name: "Orphan", TotalWeeks: 1}
		assert.Error(t, f.db.Create(plan).Error)
	})

	t.Run("OrphanWorkoutRejected", func(t *testing.T) {
		w := &training.Workout{
			TrainingPlanID: uuid.New(),
			Name:           "Orphan",
			Type:           training.Run,
			Intensity:      training.Easy,
			WeekNumber:     1,
		}
		assert.Error(t, f.db.Create(w).Error)
	})

	t.Run("OrphanLogRejected", func(t *testing.T) {
		entry := &training.WorkoutLog{
			UserID:        uuid.New(),
			GoalID:        res.Goal.ID,
			CompletedDate: util.DateOf(time.Now()),
		}
		assert.Error(t, f.db.Create(entry).Error)
	})

	t.Run("GoalRowDeleteCascades", func(t *testing.T) {
		cur, err := f.training.Service.CurrentWeek(ctx, userID)
		require.NoError(t, err)
		require.NotEmpty(t, cur.Workouts)
		_, err = f.training.Service.CompleteWorkout(ctx, userID, cur.Workouts[0].ID, nil)
		require.NoError(t, err)

		require.NoError(t, f.db.Exec("DELETE FROM goals WHERE id = ?", res.Goal.ID).Error)

		for _, model := range []any{&training.TrainingPlan{}, &training.Workout{}, &training.WorkoutLog{}} {
			var n int64
			require.NoError(t, f.db.Model(model).Count(&n).Error)
			assert.Zero(t, n, "%T", model)
		}
	})
}
