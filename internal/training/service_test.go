package training

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"github.com/saulo-duarte/atarax-lambda/internal/metrics"
	"github.com/saulo-duarte/atarax-lambda/internal/schedule"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*service, Repository, *Recorder) {
	db := newTestDB(t)
	repo := NewRepository(db)
	rec := NewRecorder(db, repo, metrics.NewTestManager())
	return NewService(repo, rec).(*service), repo, rec
}

func TestCurrentWeek(t *testing.T) {
	svc, repo, _ := newTestService(t)
	db := repo.(*repository).db

	userID := uuid.New()

	t.Run("NoActivePlan", func(t *testing.T) {
		cw, err := svc.CurrentWeek(t.Context(), userID)
		require.NoError(t, err)
		assert.False(t, cw.HasTrainingPlan)
		assert.Empty(t, cw.Workouts)
	})

	goalID := insertGoal(t, db, userID, "active")
	plan, _ := seedPlan(t, repo, goalID, fourWeeks, 3)

	t.Run("SecondWeek", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }

		cw, err := svc.CurrentWeek(t.Context(), userID)
		require.NoError(t, err)
		assert.True(t, cw.HasTrainingPlan)
		assert.Equal(t, plan.ID.String(), cw.PlanID)
		assert.Equal(t, 2, cw.Week)
		assert.Equal(t, schedule.Base, cw.Phase)
		assert.Equal(t, "Establishing routine", cw.WeeklyFocus)
		require.Len(t, cw.Workouts, 3)
		for _, w := range cw.Workouts {
			assert.Equal(t, 2, w.WeekNumber)
			assert.Equal(t, schedule.Base, w.Phase)
		}
	})

	t.Run("ClampedToLastWeek", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().AddDate(1, 0, 0) }

		cw, err := svc.CurrentWeek(t.Context(), userID)
		require.NoError(t, err)
		assert.Equal(t, 4, cw.Week)
		assert.Equal(t, schedule.Peak, cw.Phase)
	})
}

func TestListWorkouts(t *testing.T) {
	svc, repo, _ := newTestService(t)
	db := repo.(*repository).db
	ctx := t.Context()

	userID := uuid.New()
	goalID := insertGoal(t, db, userID, "active")
	plan, _ := seedPlan(t, repo, goalID, fourWeeks, 2)

	all, err := svc.ListWorkouts(ctx, userID, WorkoutQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 8)

	week := 3
	third, err := svc.ListWorkouts(ctx, userID, WorkoutQuery{Week: &week})
	require.NoError(t, err)
	require.Len(t, third, 2)
	assert.Equal(t, schedule.Build, third[0].Phase)

	page, err := svc.ListWorkouts(ctx, userID, WorkoutQuery{PlanID: plan.ID.String(), Skip: 6, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	_, err = svc.ListWorkouts(ctx, userID, WorkoutQuery{PlanID: "nope"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	none, err := svc.ListWorkouts(ctx, uuid.New(), WorkoutQuery{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetPlanSnapshot(t *testing.T) {
	svc, repo, rec := newTestService(t)
	db := repo.(*repository).db
	ctx := t.Context()

	userID := uuid.New()
	goalID := insertGoal(t, db, userID, "active")
	plan, workouts := seedPlan(t, repo, goalID, fourWeeks, 5)

	detail, err := svc.GetPlan(ctx, userID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, detail.Snapshot.ProgressPct)
	assert.Equal(t, 1, detail.Snapshot.CurrentWeek)

	for _, w := range workouts[:5] {
		_, err := rec.Complete(ctx, userID, w.ID, nil)
		require.NoError(t, err)
	}

	detail, err = svc.GetPlan(ctx, userID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, detail.Snapshot.ProgressPct)
	assert.Equal(t, int64(5), detail.Snapshot.CompletedWorkouts)

	_, err = svc.GetPlan(ctx, uuid.New(), plan.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFeedbackSummary(t *testing.T) {
	svc, repo, _ := newTestService(t)
	db := repo.(*repository).db
	ctx := t.Context()

	userID := uuid.New()
	goalID := insertGoal(t, db, userID, "active")
	today := util.DateOf(time.Now())

	t.Run("NoLogs", func(t *testing.T) {
		s, err := svc.FeedbackSummary(ctx, userID)
		require.NoError(t, err)
		assert.Zero(t, s.RecentWorkouts)
		assert.Nil(t, s.AvgExertion)
		assert.Equal(t, AdjustMaintain, s.IntensityAdjustment)
		assert.Equal(t, RecoveryMaintain, s.RecoveryAdjustment)
	})

	logs := []WorkoutLog{
		{UserID: userID, GoalID: goalID, CompletedDate: today, PerceivedExertion: intPtr(8), EnergyLevel: intPtr(3)},
		{UserID: userID, GoalID: goalID, CompletedDate: today.AddDays(-2), PerceivedExertion: intPtr(9), EnergyLevel: intPtr(4)},
		{UserID: userID, GoalID: goalID, CompletedDate: today.AddDays(-3), PerceivedExertion: intPtr(7)},
		// Outside the two week window.
		{UserID: userID, GoalID: goalID, CompletedDate: today.AddDays(-30), PerceivedExertion: intPtr(1), EnergyLevel: intPtr(10)},
	}
	require.NoError(t, db.Create(&logs).Error)

	t.Run("TiredAndStrained", func(t *testing.T) {
		s, err := svc.FeedbackSummary(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 3, s.RecentWorkouts)
		require.NotNil(t, s.AvgExertion)
		assert.Equal(t, 8.0, *s.AvgExertion)
		require.NotNil(t, s.AvgEnergy)
		assert.Equal(t, 3.5, *s.AvgEnergy)
		assert.Nil(t, s.AvgEnjoyment)
		assert.Equal(t, AdjustDecrease, s.IntensityAdjustment)
		assert.Equal(t, RecoveryMoreRest, s.RecoveryAdjustment)
	})
}
