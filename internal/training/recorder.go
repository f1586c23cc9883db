package training

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
	"github.com/saulo-duarte/atarax-lambda/internal/metrics"
	"github.com/saulo-duarte/atarax-lambda/internal/schedule"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Recorder marks workouts complete and keeps their feedback log.
type Recorder struct {
	db      *gorm.DB
	repo    Repository
	metrics *metrics.Manager
	now     func() time.Time
}

func NewRecorder(db *gorm.DB, repo Repository, m *metrics.Manager) *Recorder {
	return &Recorder{db: db, repo: repo, metrics: m, now: time.Now}
}

// Complete is idempotent. The first call flips the completed flag; later
// calls only merge the provided feedback into the existing log. The workout
// must belong to the plan of the user's active goal.
func (r *Recorder) Complete(ctx context.Context, userID, workoutID uuid.UUID, fb *Feedback) (*CompletionResult, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"user_id":    userID,
		"workout_id": workoutID,
	})

	if err := fb.Validate(); err != nil {
		log.WithError(err).Warn("Invalid workout feedback")
		return nil, err
	}

	var (
		workout Workout
		plan    TrainingPlan
		entry   WorkoutLog
		already bool
	)
	now := r.now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Workout{}).
			Select("workouts.*").
			Joins("JOIN training_plans ON training_plans.id = workouts.training_plan_id").
			Joins("JOIN goals ON goals.id = training_plans.goal_id").
			Where("workouts.id = ? AND goals.user_id = ? AND goals.status = ?", workoutID, userID, activeGoalStatus).
			Take(&workout).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Take(&plan, "id = ?", workout.TrainingPlanID).Error; err != nil {
			return err
		}

		res := tx.Model(&Workout{}).
			Where("id = ? AND completed = ?", workout.ID, false).
			Updates(map[string]any{"completed": true, "completed_at": now})
		if res.Error != nil {
			return res.Error
		}
		already = res.RowsAffected == 0
		if !already {
			workout.Completed = true
			workout.CompletedAt = &now
		}

		err = tx.Where("workout_id = ?", workout.ID).Take(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			id := workout.ID
			entry = WorkoutLog{
				UserID:        userID,
				GoalID:        plan.GoalID,
				WorkoutID:     &id,
				CompletedDate: util.DateOf(now),
			}
			fb.applyTo(&entry)
			return tx.Create(&entry).Error
		}
		if err != nil {
			return err
		}
		fb.applyTo(&entry)
		return tx.Save(&entry).Error
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			log.Warn("Workout not in the user's active plan")
		} else {
			log.WithError(err).Error("Failed to record workout completion")
		}
		return nil, err
	}

	completed, err := r.repo.CountCompleted(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	total, err := r.repo.CountWorkouts(ctx, plan.ID)
	if err != nil {
		return nil, err
	}

	if !already {
		r.metrics.CounterWorkoutsCompleted.Inc()
	}
	workout.Phase = schedule.PhaseForWeek(plan.PhaseWeeks(), workout.WeekNumber)

	log.WithField("already_completed", already).Info("Workout completion recorded")
	return &CompletionResult{
		Workout:           &workout,
		Log:               &entry,
		AlreadyCompleted:  already,
		CompletedWorkouts: completed,
		TotalWorkouts:     total,
		ProgressPct:       schedule.ProgressPct(completed, total),
	}, nil
}
