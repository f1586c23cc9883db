package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
	"github.com/saulo-duarte/atarax-lambda/internal/metrics"
	"github.com/saulo-duarte/atarax-lambda/internal/schedule"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	"github.com/sirupsen/logrus"
)

const (
	outcomeSuccess       = "success"
	outcomeProviderError = "provider_error"
	outcomeParseError    = "parse_error"
	outcomeEmpty         = "empty"
)

type Synthesizer struct {
	provider Provider
	timeout  time.Duration
	metrics  *metrics.Manager
}

func NewSynthesizer(provider Provider, timeout time.Duration, m *metrics.Manager) *Synthesizer {
	return &Synthesizer{provider: provider, timeout: timeout, metrics: m}
}

// Synthesize makes exactly one provider call and returns a plan ready to be
// persisted: phase split normalised, workouts dated and stamped with their
// phase. Nothing is written here.
func (s *Synthesizer) Synthesize(ctx context.Context, b Brief) (*Draft, error) {
	log := config.WithContext(ctx).WithField("goal_title", b.GoalTitle)

	if err := b.Validate(); err != nil {
		return nil, err
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	raw, err := s.provider.SendPrompt(callCtx, Request{
		System: systemPrompt,
		User:   BuildUserPrompt(b),
		Brief:  b,
	})
	s.metrics.HistSynthesisDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		s.observe(outcomeProviderError)
		log.WithError(err).Error("Plan provider call failed")
		return nil, apperr.Generation(err)
	}

	draft, dropped, err := ParsePlan(raw, b.TotalWeeks)
	if err != nil {
		s.observe(outcomeParseError)
		log.WithError(err).Error("Failed to parse generated plan")
		return nil, apperr.Generation(err)
	}
	for _, d := range dropped {
		log.WithField("entry", d.Index).Warnf("Dropping generated workout: %s", d.Reason)
	}
	s.metrics.CounterEntriesDropped.Add(float64(len(dropped)))

	if len(draft.Workouts) == 0 {
		s.observe(outcomeEmpty)
		log.Error("Generated plan has no usable workouts")
		return nil, apperr.Generation(errNoWorkouts)
	}

	finalize(draft, b, log)
	s.observe(outcomeSuccess)
	log.WithField("workouts", len(draft.Workouts)).Info("Training plan synthesized")
	return draft, nil
}

func (s *Synthesizer) observe(outcome string) {
	s.metrics.CounterPlanSynthesis.WithLabelValues(outcome).Inc()
}

// finalize fills everything the generator is not trusted with.
func finalize(d *Draft, b Brief, log *logrus.Entry) {
	p := &d.Plan
	p.TotalWeeks = b.TotalWeeks
	p.StartDate = b.StartDate
	p.GeneratedAt = time.Now().UTC()

	if err := p.PhaseWeeks().Validate(b.TotalWeeks); err != nil {
		log.WithError(err).Warn("Generated phase split rejected, using default split")
		p.SetPhaseWeeks(schedule.DefaultSplit(b.TotalWeeks))
	}
	if p.Name == "" {
		p.Name = fmt.Sprintf("%s - Training Plan", b.GoalTitle)
	}
	if p.WeeklySwimSessions+p.WeeklyBikeSessions+p.WeeklyRunSessions+p.WeeklyStrengthSessions == 0 {
		p.WeeklySwimSessions = b.Sessions.Swim
		p.WeeklyBikeSessions = b.Sessions.Bike
		p.WeeklyRunSessions = b.Sessions.Run
		p.WeeklyStrengthSessions = b.Sessions.Strength
	}

	training.StampPhases(p, d.Workouts)
	for i := range d.Workouts {
		w := &d.Workouts[i]
		w.ScheduledDate = b.StartDate.AddDays((w.WeekNumber-1)*7 + w.DayOfWeek)
		w.WeeklyFocus = schedule.WeeklyFocus(w.Phase, w.WeekNumber)
	}
}
