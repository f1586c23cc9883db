package calendar

import (
	"context"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
)

type SyncResult struct {
	PlanID  uuid.UUID `json:"plan_id"`
	Created int       `json:"created"`
	Skipped int       `json:"skipped"`
}

type CalendarService interface {
	Sync(ctx context.Context, userID, planID uuid.UUID) (*SyncResult, error)
}

type calendarService struct {
	users  user.UserRepository
	plans  training.Repository
	dialer Dialer
}

func NewCalendarService(users user.UserRepository, plans training.Repository, dialer Dialer) CalendarService {
	return &calendarService{users: users, plans: plans, dialer: dialer}
}

// Sync pushes every workout of the plan that has no calendar event yet and
// records the created event ids. Workouts synced before a failure keep
// their ids, so a retry only pushes the rest.
func (s *calendarService) Sync(ctx context.Context, userID, planID uuid.UUID) (*SyncResult, error) {
	log := config.WithContext(ctx).WithField("plan_id", planID)

	if _, err := s.plans.PlanByIDForUser(ctx, planID, userID); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.CalendarConnected() {
		return nil, errNotConnected
	}

	cal, err := s.dialer.Dial(ctx, u)
	if err != nil {
		return nil, err
	}

	workouts, err := s.plans.Workouts(ctx, training.WorkoutFilter{UserID: userID, PlanID: &planID, Limit: -1})
	if err != nil {
		log.WithError(err).Error("Failed to load workouts for calendar sync")
		return nil, err
	}

	res := &SyncResult{PlanID: planID}
	for i := range workouts {
		w := &workouts[i]
		if w.GoogleEventID != nil && *w.GoogleEventID != "" {
			res.Skipped++
			continue
		}
		event := buildEvent(w)
		if event == nil {
			res.Skipped++
			continue
		}

		eventID, err := cal.InsertEvent(ctx, event)
		if err != nil {
			log.WithError(err).WithField("workout_id", w.ID).Error("Failed to insert calendar event")
			return nil, err
		}
		if err := s.plans.SetGoogleEventID(ctx, w.ID, eventID); err != nil {
			log.WithError(err).WithField("workout_id", w.ID).Error("Failed to store calendar event id")
			return nil, err
		}
		res.Created++
	}

	log.WithField("created", res.Created).Info("Training plan synced to Google Calendar")
	return res, nil
}
