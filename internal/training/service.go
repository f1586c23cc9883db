package training

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
	"github.com/saulo-duarte/atarax-lambda/internal/schedule"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
)

const (
	defaultWorkoutLimit = 100
	maxWorkoutLimit     = 500

	feedbackWindowDays = 14
	feedbackMaxLogs    = 10
)

type Service interface {
	ListPlans(ctx context.Context, userID uuid.UUID) ([]TrainingPlan, error)
	GetPlan(ctx context.Context, userID, planID uuid.UUID) (*PlanDetail, error)
	ListWorkouts(ctx context.Context, userID uuid.UUID, q WorkoutQuery) ([]Workout, error)
	CurrentWeek(ctx context.Context, userID uuid.UUID) (*CurrentWeek, error)
	GetWorkout(ctx context.Context, userID, workoutID uuid.UUID) (*Workout, error)
	CompleteWorkout(ctx context.Context, userID, workoutID uuid.UUID, fb *Feedback) (*CompletionResult, error)
	FeedbackSummary(ctx context.Context, userID uuid.UUID) (*FeedbackSummary, error)

	// Snapshot derives the schedule view of plan at the current time.
	Snapshot(ctx context.Context, plan *TrainingPlan, eventDate *time.Time) (*schedule.Snapshot, error)
	WeekWorkouts(ctx context.Context, plan *TrainingPlan, week int) ([]Workout, error)
}

type service struct {
	repo     Repository
	recorder *Recorder
	now      func() time.Time
}

func NewService(repo Repository, recorder *Recorder) Service {
	return &service{repo: repo, recorder: recorder, now: time.Now}
}

func (s *service) ListPlans(ctx context.Context, userID uuid.UUID) ([]TrainingPlan, error) {
	log := config.WithContext(ctx)

	plans, err := s.repo.PlansByUser(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to list training plans")
		return nil, err
	}
	return plans, nil
}

func (s *service) GetPlan(ctx context.Context, userID, planID uuid.UUID) (*PlanDetail, error) {
	log := config.WithContext(ctx).WithField("plan_id", planID)

	plan, err := s.repo.PlanByIDForUser(ctx, planID, userID)
	if err != nil {
		log.WithError(err).Warn("Training plan lookup failed")
		return nil, err
	}

	snap, err := s.Snapshot(ctx, plan, nil)
	if err != nil {
		return nil, err
	}
	return &PlanDetail{Plan: plan, Snapshot: snap}, nil
}

func (s *service) ListWorkouts(ctx context.Context, userID uuid.UUID, q WorkoutQuery) ([]Workout, error) {
	log := config.WithContext(ctx)

	f := WorkoutFilter{UserID: userID, Week: q.Week, Skip: max(q.Skip, 0), Limit: q.Limit}
	if f.Limit <= 0 {
		f.Limit = defaultWorkoutLimit
	}
	if f.Limit > maxWorkoutLimit {
		f.Limit = maxWorkoutLimit
	}
	if q.PlanID != "" {
		id, err := uuid.Parse(q.PlanID)
		if err != nil {
			return nil, apperr.Validationf("invalid plan_id")
		}
		f.PlanID = &id
	}
	if q.Week != nil && *q.Week < 1 {
		return nil, apperr.Validationf("week must be at least 1")
	}

	workouts, err := s.repo.Workouts(ctx, f)
	if err != nil {
		log.WithError(err).Error("Failed to list workouts")
		return nil, err
	}
	if err := s.stampPhases(ctx, userID, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (s *service) CurrentWeek(ctx context.Context, userID uuid.UUID) (*CurrentWeek, error) {
	log := config.WithContext(ctx)

	plan, err := s.repo.ActivePlan(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		return &CurrentWeek{HasTrainingPlan: false, Workouts: []Workout{}}, nil
	}
	if err != nil {
		log.WithError(err).Error("Failed to load active plan")
		return nil, err
	}

	week := schedule.CurrentWeek(plan.CreatedAt, s.now(), plan.TotalWeeks)
	workouts, err := s.WeekWorkouts(ctx, plan, week)
	if err != nil {
		return nil, err
	}

	phase := schedule.PhaseForWeek(plan.PhaseWeeks(), week)
	return &CurrentWeek{
		HasTrainingPlan: true,
		PlanID:          plan.ID.String(),
		Week:            week,
		Phase:           phase,
		WeeklyFocus:     schedule.WeeklyFocus(phase, week),
		Workouts:        workouts,
	}, nil
}

func (s *service) WeekWorkouts(ctx context.Context, plan *TrainingPlan, week int) ([]Workout, error) {
	workouts, err := s.repo.WorkoutsByPlanWeek(ctx, plan.ID, week)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load week workouts")
		return nil, err
	}
	StampPhases(plan, workouts)
	return workouts, nil
}

func (s *service) GetWorkout(ctx context.Context, userID, workoutID uuid.UUID) (*Workout, error) {
	w, err := s.repo.WorkoutForUser(ctx, workoutID, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Workout lookup failed")
		return nil, err
	}
	plan, err := s.repo.PlanByIDForUser(ctx, w.TrainingPlanID, userID)
	if err != nil {
		return nil, err
	}
	w.Phase = schedule.PhaseForWeek(plan.PhaseWeeks(), w.WeekNumber)
	return w, nil
}

func (s *service) CompleteWorkout(ctx context.Context, userID, workoutID uuid.UUID, fb *Feedback) (*CompletionResult, error) {
	return s.recorder.Complete(ctx, userID, workoutID, fb)
}

// FeedbackSummary averages the subjective scores of the most recent logs and
// turns them into suggested intensity and recovery adjustments.
func (s *service) FeedbackSummary(ctx context.Context, userID uuid.UUID) (*FeedbackSummary, error) {
	since := util.DateOf(s.now()).AddDays(-feedbackWindowDays)

	logs, err := s.repo.RecentLogs(ctx, userID, since, feedbackMaxLogs)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load recent workout logs")
		return nil, err
	}

	var exertion, energy, enjoyment []int
	for _, l := range logs {
		if l.PerceivedExertion != nil {
			exertion = append(exertion, *l.PerceivedExertion)
		}
		if l.EnergyLevel != nil {
			energy = append(energy, *l.EnergyLevel)
		}
		if l.EnjoymentLevel != nil {
			enjoyment = append(enjoyment, *l.EnjoymentLevel)
		}
	}

	summary := &FeedbackSummary{
		RecentWorkouts:      len(logs),
		AvgExertion:         average(exertion),
		AvgEnergy:           average(energy),
		AvgEnjoyment:        average(enjoyment),
		IntensityAdjustment: AdjustMaintain,
		RecoveryAdjustment:  RecoveryMaintain,
	}
	if a := summary.AvgExertion; a != nil {
		switch {
		case *a >= 7:
			summary.IntensityAdjustment = AdjustDecrease
		case *a <= 3:
			summary.IntensityAdjustment = AdjustIncrease
		}
	}
	if a := summary.AvgEnergy; a != nil {
		switch {
		case *a <= 4:
			summary.RecoveryAdjustment = RecoveryMoreRest
		case *a >= 8:
			summary.RecoveryAdjustment = RecoveryCanPushHarder
		}
	}
	return summary, nil
}

func (s *service) Snapshot(ctx context.Context, plan *TrainingPlan, eventDate *time.Time) (*schedule.Snapshot, error) {
	completed, err := s.repo.CountCompleted(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountWorkouts(ctx, plan.ID)
	if err != nil {
		return nil, err
	}

	snap := schedule.Compute(schedule.Input{
		PlanCreatedAt:     plan.CreatedAt,
		TotalWeeks:        plan.TotalWeeks,
		Weeks:             plan.PhaseWeeks(),
		CompletedWorkouts: completed,
		TotalWorkouts:     total,
		EventDate:         eventDate,
	}, s.now())
	return &snap, nil
}

func (s *service) stampPhases(ctx context.Context, userID uuid.UUID, workouts []Workout) error {
	if len(workouts) == 0 {
		return nil
	}
	plans, err := s.repo.PlansByUser(ctx, userID)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*TrainingPlan, len(plans))
	for i := range plans {
		byID[plans[i].ID] = &plans[i]
	}
	for i := range workouts {
		if p, ok := byID[workouts[i].TrainingPlanID]; ok {
			workouts[i].Phase = schedule.PhaseForWeek(p.PhaseWeeks(), workouts[i].WeekNumber)
		}
	}
	return nil
}

func average(v []int) *float64 {
	if len(v) == 0 {
		return nil
	}
	sum := 0
	for _, x := range v {
		sum += x
	}
	avg := float64(sum) / float64(len(v))
	return &avg
}
