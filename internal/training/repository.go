package training

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"gorm.io/gorm"
)

// activeGoalStatus mirrors the goal status stored in goals.status.
const activeGoalStatus = "active"

type WorkoutFilter struct {
	UserID uuid.UUID
	PlanID *uuid.UUID
	Week   *int
	Skip   int
	Limit  int
}

type Repository interface {
	ReplacePlan(ctx context.Context, goalID uuid.UUID, plan *TrainingPlan, workouts []Workout) error
	DeleteByGoal(tx *gorm.DB, goalID uuid.UUID) error

	PlansByUser(ctx context.Context, userID uuid.UUID) ([]TrainingPlan, error)
	PlanByIDForUser(ctx context.Context, planID, userID uuid.UUID) (*TrainingPlan, error)
	PlanByGoal(ctx context.Context, goalID uuid.UUID) (*TrainingPlan, error)
	ActivePlan(ctx context.Context, userID uuid.UUID) (*TrainingPlan, error)

	Workouts(ctx context.Context, f WorkoutFilter) ([]Workout, error)
	WorkoutsByPlanWeek(ctx context.Context, planID uuid.UUID, week int) ([]Workout, error)
	WorkoutForUser(ctx context.Context, workoutID, userID uuid.UUID) (*Workout, error)
	SetGoogleEventID(ctx context.Context, workoutID uuid.UUID, eventID string) error

	CountWorkouts(ctx context.Context, planID uuid.UUID) (int64, error)
	CountCompleted(ctx context.Context, planID uuid.UUID) (int64, error)

	LogForWorkout(ctx context.Context, workoutID uuid.UUID) (*WorkoutLog, error)
	RecentLogs(ctx context.Context, userID uuid.UUID, since util.Date, limit int) ([]WorkoutLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ReplacePlan swaps whatever plan the goal has for the given one. Logs of
// replaced workouts are kept with workout_id cleared. Readers see either the
// old plan or the complete new one.
func (r *repository) ReplacePlan(ctx context.Context, goalID uuid.UUID, plan *TrainingPlan, workouts []Workout) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		oldPlans := tx.Model(&TrainingPlan{}).Select("id").Where("goal_id = ?", goalID)
		oldWorkouts := tx.Model(&Workout{}).Select("id").Where("training_plan_id IN (?)", oldPlans)

		if err := tx.Model(&WorkoutLog{}).
			Where("workout_id IN (?)", oldWorkouts).
			Update("workout_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("training_plan_id IN (?)", oldPlans).Delete(&Workout{}).Error; err != nil {
			return err
		}
		if err := tx.Where("goal_id = ?", goalID).Delete(&TrainingPlan{}).Error; err != nil {
			return err
		}

		plan.GoalID = goalID
		if err := tx.Create(plan).Error; err != nil {
			return err
		}
		for i := range workouts {
			workouts[i].TrainingPlanID = plan.ID
		}
		if len(workouts) > 0 {
			if err := tx.CreateInBatches(&workouts, 200).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByGoal removes logs, workouts and plans of a goal in foreign key
// order. It runs inside the caller's transaction.
func (r *repository) DeleteByGoal(tx *gorm.DB, goalID uuid.UUID) error {
	plans := tx.Model(&TrainingPlan{}).Select("id").Where("goal_id = ?", goalID)
	workouts := tx.Model(&Workout{}).Select("id").Where("training_plan_id IN (?)", plans)

	if err := tx.Where("goal_id = ? OR workout_id IN (?)", goalID, workouts).Delete(&WorkoutLog{}).Error; err != nil {
		return err
	}
	if err := tx.Where("training_plan_id IN (?)", plans).Delete(&Workout{}).Error; err != nil {
		return err
	}
	return tx.Where("goal_id = ?", goalID).Delete(&TrainingPlan{}).Error
}

func (r *repository) ownedPlans(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&TrainingPlan{}).
		Select("training_plans.*").
		Joins("JOIN goals ON goals.id = training_plans.goal_id").
		Where("goals.user_id = ?", userID)
}

func (r *repository) PlansByUser(ctx context.Context, userID uuid.UUID) ([]TrainingPlan, error) {
	var plans []TrainingPlan
	if err := r.ownedPlans(ctx, userID).
		Order("training_plans.created_at DESC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repository) PlanByIDForUser(ctx context.Context, planID, userID uuid.UUID) (*TrainingPlan, error) {
	var plan TrainingPlan
	err := r.ownedPlans(ctx, userID).
		Where("training_plans.id = ?", planID).
		Take(&plan).Error
	return found(&plan, err)
}

func (r *repository) PlanByGoal(ctx context.Context, goalID uuid.UUID) (*TrainingPlan, error) {
	var plan TrainingPlan
	err := r.db.WithContext(ctx).Where("goal_id = ?", goalID).Take(&plan).Error
	return found(&plan, err)
}

func (r *repository) ActivePlan(ctx context.Context, userID uuid.UUID) (*TrainingPlan, error) {
	var plan TrainingPlan
	err := r.ownedPlans(ctx, userID).
		Where("goals.status = ?", activeGoalStatus).
		Take(&plan).Error
	return found(&plan, err)
}

func (r *repository) Workouts(ctx context.Context, f WorkoutFilter) ([]Workout, error) {
	q := r.db.WithContext(ctx).
		Model(&Workout{}).
		Select("workouts.*").
		Joins("JOIN training_plans ON training_plans.id = workouts.training_plan_id").
		Joins("JOIN goals ON goals.id = training_plans.goal_id").
		Where("goals.user_id = ?", f.UserID)

	if f.PlanID != nil {
		q = q.Where("workouts.training_plan_id = ?", *f.PlanID)
	}
	if f.Week != nil {
		q = q.Where("workouts.week_number = ?", *f.Week)
	}

	var workouts []Workout
	if err := q.
		Order("workouts.scheduled_date ASC").
		Order("workouts.week_number ASC").
		Order("workouts.day_of_week ASC").
		Offset(f.Skip).
		Limit(f.Limit).
		Find(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *repository) WorkoutsByPlanWeek(ctx context.Context, planID uuid.UUID, week int) ([]Workout, error) {
	var workouts []Workout
	if err := r.db.WithContext(ctx).
		Where("training_plan_id = ? AND week_number = ?", planID, week).
		Order("day_of_week ASC").
		Find(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *repository) WorkoutForUser(ctx context.Context, workoutID, userID uuid.UUID) (*Workout, error) {
	var w Workout
	err := r.db.WithContext(ctx).
		Model(&Workout{}).
		Select("workouts.*").
		Joins("JOIN training_plans ON training_plans.id = workouts.training_plan_id").
		Joins("JOIN goals ON goals.id = training_plans.goal_id").
		Where("workouts.id = ? AND goals.user_id = ?", workoutID, userID).
		Take(&w).Error
	return found(&w, err)
}

func (r *repository) SetGoogleEventID(ctx context.Context, workoutID uuid.UUID, eventID string) error {
	return r.db.WithContext(ctx).
		Model(&Workout{}).
		Where("id = ?", workoutID).
		Update("google_event_id", eventID).Error
}

func (r *repository) CountWorkouts(ctx context.Context, planID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Workout{}).Where("training_plan_id = ?", planID).Count(&n).Error
	return n, err
}

func (r *repository) CountCompleted(ctx context.Context, planID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Workout{}).
		Where("training_plan_id = ? AND completed = ?", planID, true).
		Count(&n).Error
	return n, err
}

func (r *repository) LogForWorkout(ctx context.Context, workoutID uuid.UUID) (*WorkoutLog, error) {
	var l WorkoutLog
	err := r.db.WithContext(ctx).Where("workout_id = ?", workoutID).Take(&l).Error
	return found(&l, err)
}

func (r *repository) RecentLogs(ctx context.Context, userID uuid.UUID, since util.Date, limit int) ([]WorkoutLog, error) {
	var logs []WorkoutLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND completed_date >= ?", userID, since).
		Order("completed_date DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func found[T any](v *T, err error) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
