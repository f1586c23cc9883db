package goal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
	"github.com/saulo-duarte/atarax-lambda/internal/planner"
	"github.com/saulo-duarte/atarax-lambda/internal/schedule"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
)

const (
	defaultListLimit    = 100
	maxListLimit        = 500
	defaultUpcomingDays = 30
	maxUpcomingDays     = 365
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateGoalRequest) (*CreateResult, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*GoalDetail, error)
	List(ctx context.Context, userID uuid.UUID, q ListQuery) ([]GoalSummary, error)
	Update(ctx context.Context, userID, id uuid.UUID, req UpdateGoalRequest) (*GoalDetail, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error

	Activate(ctx context.Context, userID, id uuid.UUID) (*GoalDetail, error)
	Pause(ctx context.Context, userID, id uuid.UUID) (*GoalDetail, error)
	Cancel(ctx context.Context, userID, id uuid.UUID) (*GoalDetail, error)
	Complete(ctx context.Context, userID, id uuid.UUID) (*GoalDetail, error)
	Archive(ctx context.Context, userID, id uuid.UUID) (*GoalDetail, error)

	GeneratePlan(ctx context.Context, userID, id uuid.UUID) (*PlanResult, error)

	Active(ctx context.Context, userID uuid.UUID) (*GoalDetail, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
	Upcoming(ctx context.Context, userID uuid.UUID, days int) ([]GoalSummary, error)
}

type service struct {
	repo        Repository
	plans       training.Repository
	trainingSvc training.Service
	users       user.UserRepository
	synth       *planner.Synthesizer
	staleAfter  time.Duration
	now         func() time.Time
}

func NewService(
	repo Repository,
	plans training.Repository,
	trainingSvc training.Service,
	users user.UserRepository,
	synth *planner.Synthesizer,
	staleAfter time.Duration,
) Service {
	return &service{
		repo:        repo,
		plans:       plans,
		trainingSvc: trainingSvc,
		users:       users,
		synth:       synth,
		staleAfter:  staleAfter,
		now:         time.Now,
	}
}

// Create stores the goal in planning and synthesizes its plan right away. A
// failed synthesis is reported in the result; the goal stays in planning so
// the plan can be generated again later.
func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateGoalRequest) (*CreateResult, error) {
	log := config.WithContext(ctx).WithField("user_id", userID)

	if !req.GoalType.IsValid() {
		return nil, apperr.Validationf("invalid goal_type %q", req.GoalType)
	}
	g := req.toGoal(userID)
	now := s.now()
	if err := validate(g, now, true); err != nil {
		return nil, err
	}
	g.TotalWeeks = schedule.TotalWeeksFor(g.eventTime(), now)

	if err := s.repo.Create(ctx, g); err != nil {
		log.WithError(err).Error("Failed to create goal")
		return nil, err
	}
	log = log.WithField("goal_id", g.ID)
	log.Info("Goal created")

	result := &CreateResult{}
	plan, err := s.generate(ctx, g)
	switch {
	case err == nil:
		result.Plan = plan.Plan
		result.WorkoutCount = plan.WorkoutCount
	case errors.Is(err, apperr.ErrGeneration), errors.Is(err, apperr.ErrValidation):
		result.GenerationError = apperr.Message(err)
	default:
		return nil, err
	}

	if g, err = s.repo.FindByID(ctx, g.ID); err != nil {
		return nil, err
	}
	if result.Goal, err = s.detail(ctx, g); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*GoalDetail, error) {
	g, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, g)
}

func (s *service) List(ctx context.Context, userID uuid.UUID, q ListQuery) ([]GoalSummary, error) {
	log := config.WithContext(ctx)

	if q.Status != nil && !q.Status.IsValid() {
		return nil, apperr.Validationf("invalid status %q", *q.Status)
	}
	q.Skip = max(q.Skip, 0)
	if q.Limit <= 0 {
		q.Limit = defaultListLimit
	}
	q.Limit = min(q.Limit, maxListLimit)

	goals, err := s.repo.ListByUser(ctx, userID, q)
	if err != nil {
		log.WithError(err).Error("Failed to list goals")
		return nil, err
	}
	return s.summaries(goals), nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, req UpdateGoalRequest) (*GoalDetail, error) {
	log := config.WithContext(ctx).WithField("goal_id", id)

	g, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	req.applyTo(g)
	if err := validate(g, s.now(), false); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, g); err != nil {
		log.WithError(err).Error("Failed to update goal")
		return nil, err
	}
	log.Info("Goal updated")
	if g, err = s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.detail(ctx, g)
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := config.WithContext(ctx).WithField("goal_id", id)

	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to delete goal")
		return err
	}
	log.Info("Goal deleted")
	return nil
}

func (s *service) Activate(ctx context.Context, userID, id uuid.UUID) (*GoalDetail, error) {
	log := config.WithContext(ctx).WithField("goal_id", id)

	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	g, err := s.repo.Activate(ctx, id, userID)
	if err != nil {
		if !errors.Is(err, apperr.ErrConflict) {
			log.WithError(err).Error("Failed to activate goal")
		}
		return nil, err
	}
	log.Info("Goal activated")
	return s.detail(ctx, g)
}

func (s *service) Pause(ctx context.Context, userID, id uuid.UUID) (*GoalDetail, error) {
	return s.transition(ctx, userID, id, StatusPaused)
}

func (s *service) Cancel(ctx context.Context, userID, id uuid.UUID) (*GoalDetail, error) {
	return s.transition(ctx, userID, id, StatusCancelled)
}

// Complete is the only way a goal becomes completed; nothing completes goals
// on its own.
func (s *service) Complete(ctx context.Context, userID, id uuid.UUID) (*GoalDetail, error) {
	return s.transition(ctx, userID, id, StatusCompleted)
}

func (s *service) Archive(ctx context.Context, userID, id uuid.UUID) (*GoalDetail, error) {
	return s.transition(ctx, userID, id, StatusArchived)
}

func (s *service) transition(ctx context.Context, userID, id uuid.UUID, to Status) (*GoalDetail, error) {
	log := config.WithContext(ctx).WithField("goal_id", id)

	g, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !g.Status.CanTransitionTo(to) {
		log.Warnf("Rejected goal transition %s -> %s", g.Status, to)
		return nil, apperr.InvalidTransition(string(g.Status), string(to))
	}
	if err := s.repo.Transition(ctx, id, g.Status, to); err != nil {
		return nil, err
	}
	log.Infof("Goal moved from %s to %s", g.Status, to)
	g.Status = to
	return s.detail(ctx, g)
}

// GeneratePlan replaces the goal's plan with a newly synthesized one.
func (s *service) GeneratePlan(ctx context.Context, userID, id uuid.UUID) (*PlanResult, error) {
	g, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !g.Status.Open() {
		return nil, apperr.Conflictf("cannot generate a plan for a %s goal", g.Status)
	}
	return s.generate(ctx, g)
}

// generate runs one synthesis for g under its generation claim. Nothing is
// persisted unless the whole plan is.
func (s *service) generate(ctx context.Context, g *Goal) (*PlanResult, error) {
	log := config.WithContext(ctx).WithField("goal_id", g.ID)

	claimed, err := s.repo.ClaimGeneration(ctx, g.ID, s.now().Add(-s.staleAfter))
	if err != nil {
		log.WithError(err).Error("Failed to claim plan generation")
		return nil, err
	}
	if !claimed {
		log.Warn("Plan generation already in progress")
		return nil, apperr.Conflictf("a training plan is already being generated for this goal")
	}

	result, err := s.synthesize(ctx, g)
	// Record the outcome even if the request was cancelled meanwhile.
	finishCtx := context.WithoutCancel(ctx)
	if err != nil {
		if ferr := s.repo.FinishGeneration(finishCtx, g.ID, GenerationFailed, apperr.Message(err)); ferr != nil {
			log.WithError(ferr).Error("Failed to record generation failure")
		}
		return nil, err
	}
	if err := s.repo.FinishGeneration(finishCtx, g.ID, GenerationReady, ""); err != nil {
		log.WithError(err).Error("Failed to record generation success")
		return nil, err
	}
	return result, nil
}

func (s *service) synthesize(ctx context.Context, g *Goal) (*PlanResult, error) {
	log := config.WithContext(ctx).WithField("goal_id", g.ID)

	u, err := s.users.GetByID(ctx, g.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to load athlete profile")
		return nil, err
	}

	brief := buildBrief(g, u, s.now())
	draft, err := s.synth.Synthesize(ctx, brief)
	if err != nil {
		return nil, err
	}

	if err := s.plans.ReplacePlan(ctx, g.ID, &draft.Plan, draft.Workouts); err != nil {
		log.WithError(err).Error("Failed to store training plan")
		return nil, err
	}
	if g.TotalWeeks != brief.TotalWeeks {
		if err := s.repo.SetTotalWeeks(ctx, g.ID, brief.TotalWeeks); err != nil {
			return nil, err
		}
		g.TotalWeeks = brief.TotalWeeks
	}

	log.WithField("plan_id", draft.Plan.ID).Infof("Stored training plan with %d workouts", len(draft.Workouts))
	return &PlanResult{Plan: &draft.Plan, WorkoutCount: len(draft.Workouts)}, nil
}

func (s *service) Active(ctx context.Context, userID uuid.UUID) (*GoalDetail, error) {
	g, err := s.repo.FindActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, g)
}

// Dashboard is the home screen: the active goal, its plan progress and the
// workouts of the current week.
func (s *service) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	log := config.WithContext(ctx)

	d := &Dashboard{CurrentWeekWorkouts: []training.Workout{}}

	g, err := s.repo.FindActive(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		return d, nil
	}
	if err != nil {
		log.WithError(err).Error("Failed to load active goal")
		return nil, err
	}
	d.HasActiveGoal = true

	detail, plan, err := s.describe(ctx, g)
	if err != nil {
		return nil, err
	}
	d.Goal = detail
	if plan == nil {
		return d, nil
	}

	d.HasTrainingPlan = true
	d.Plan = plan
	d.Snapshot = detail.Snapshot
	d.WeeklyFocus = detail.Snapshot.WeeklyFocus

	workouts, err := s.trainingSvc.WeekWorkouts(ctx, plan, detail.Snapshot.CurrentWeek)
	if err != nil {
		return nil, err
	}
	d.CurrentWeekWorkouts = workouts
	for _, w := range workouts {
		if w.Completed {
			d.CompletedThisWeek++
		}
	}
	return d, nil
}

func (s *service) Upcoming(ctx context.Context, userID uuid.UUID, days int) ([]GoalSummary, error) {
	if days == 0 {
		days = defaultUpcomingDays
	}
	if days < 1 || days > maxUpcomingDays {
		return nil, apperr.Validationf("days must be between 1 and %d", maxUpcomingDays)
	}

	today := util.DateOf(s.now())
	goals, err := s.repo.Upcoming(ctx, userID, today, today.AddDays(days))
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list upcoming events")
		return nil, err
	}
	return s.summaries(goals), nil
}

// owned loads the goal and checks it belongs to userID.
func (s *service) owned(ctx context.Context, userID, id uuid.UUID) (*Goal, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.UserID != userID {
		config.WithContext(ctx).WithField("goal_id", id).Warn("Goal accessed by another user")
		return nil, apperr.ErrNotAuthorized
	}
	return g, nil
}

func (s *service) detail(ctx context.Context, g *Goal) (*GoalDetail, error) {
	d, _, err := s.describe(ctx, g)
	return d, err
}

func (s *service) describe(ctx context.Context, g *Goal) (*GoalDetail, *training.TrainingPlan, error) {
	d := &GoalDetail{
		Goal:      g,
		Category:  g.GoalType.Category(),
		Specifics: g.Details(),
	}
	now := s.now()
	if ev := g.eventTime(); ev != nil {
		days := schedule.DaysUntil(*ev, now)
		weeks := max(days, 0) / 7
		d.DaysUntilEvent = &days
		d.WeeksUntilEvent = &weeks
	}

	plan, err := s.plans.PlanByGoal(ctx, g.ID)
	if errors.Is(err, apperr.ErrNotFound) {
		return d, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	snap, err := s.trainingSvc.Snapshot(ctx, plan, g.eventTime())
	if err != nil {
		return nil, nil, err
	}
	d.HasTrainingPlan = true
	d.PlanID = &plan.ID
	d.Snapshot = snap
	return d, plan, nil
}

func (s *service) summaries(goals []Goal) []GoalSummary {
	now := s.now()
	out := make([]GoalSummary, 0, len(goals))
	for i := range goals {
		g := &goals[i]
		sum := GoalSummary{
			ID:               g.ID,
			Title:            g.Title,
			GoalType:         g.GoalType,
			Status:           g.Status,
			EventDate:        g.EventDate,
			TotalWeeks:       g.TotalWeeks,
			GenerationStatus: g.GenerationStatus,
		}
		if ev := g.eventTime(); ev != nil {
			days := schedule.DaysUntil(*ev, now)
			sum.DaysUntilEvent = &days
		}
		out = append(out, sum)
	}
	return out
}
