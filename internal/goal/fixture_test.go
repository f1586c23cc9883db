package goal_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/goal"
	"github.com/saulo-duarte/atarax-lambda/internal/metrics"
	"github.com/saulo-duarte/atarax-lambda/internal/planner"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubProvider answers every prompt with the same text.
type stubProvider struct {
	mu    sync.Mutex
	raw   string
	err   error
	calls int
}

func (p *stubProvider) SendPrompt(ctx context.Context, req planner.Request) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.raw, p.err
}

func (p *stubProvider) set(raw string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.raw, p.err = raw, err
}

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// planJSON is a generator response with perWeek runs in each of weeks weeks.
func planJSON(weeks, perWeek int) string {
	var entries []string
	for week := 1; week <= weeks; week++ {
		for day := 0; day < perWeek; day++ {
			entries = append(entries, fmt.Sprintf(
				`{"week":%d,"day":%d,"name":"Run %d.%d","type":"run","intensity":"easy","duration_minutes":30}`,
				week, day, week, day))
		}
	}
	return fmt.Sprintf(`{"name":"Test plan","base_weeks":%d,"build_weeks":0,"peak_weeks":0,"taper_weeks":0,"workouts":[%s]}`,
		weeks, strings.Join(entries, ","))
}

type fixture struct {
	db       *gorm.DB
	users    user.UserRepository
	training *training.TrainingContainer
	goals    *goal.GoalContainer
	provider *stubProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&goal.Goal{},
		&training.TrainingPlan{},
		&training.Workout{},
		&training.WorkoutLog{},
	))

	m := metrics.NewTestManager()
	provider := &stubProvider{raw: planJSON(4, 5)}
	users := user.NewUserRepository(db)
	tc := training.NewTrainingContainer(db, m)
	synth := planner.NewSynthesizer(provider, time.Minute, m)

	return &fixture{
		db:       db,
		users:    users,
		training: tc,
		goals:    goal.NewGoalContainer(db, tc, users, synth, 15*time.Minute),
		provider: provider,
	}
}

func (f *fixture) newUser(t *testing.T) uuid.UUID {
	t.Helper()
	name := "u" + strings.ReplaceAll(uuid.NewString()[:8], "-", "")
	u := &user.User{
		Email:        name + "@example.com",
		Username:     name,
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, f.users.Create(t.Context(), u))
	return u.ID
}

// raceRequest is a marathon four weeks out.
func raceRequest() goal.CreateGoalRequest {
	event := util.DateOf(time.Now()).AddDays(30)
	return goal.CreateGoalRequest{
		Title:     "Spring marathon",
		GoalType:  goal.TypeMarathon,
		EventDate: &event,
	}
}

func generalRequest(title string) goal.CreateGoalRequest {
	return goal.CreateGoalRequest{
		Title:    title,
		GoalType: goal.TypeGeneralFitness,
	}
}

func (f *fixture) create(t *testing.T, userID uuid.UUID, req goal.CreateGoalRequest) *goal.CreateResult {
	t.Helper()
	res, err := f.goals.Service.Create(t.Context(), userID, req)
	require.NoError(t, err)
	return res
}

func (f *fixture) countActive(t *testing.T, userID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&goal.Goal{}).
		Where("user_id = ? AND status = ?", userID, goal.StatusActive).
		Count(&n).Error)
	return n
}
