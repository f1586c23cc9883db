package training

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/schedule"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&user.User{}))
	// Only the columns the training queries join on.
	require.NoError(t, db.Exec(`CREATE TABLE goals (
		id uuid PRIMARY KEY,
		user_id uuid NOT NULL,
		status text NOT NULL
	)`).Error)
	require.NoError(t, db.AutoMigrate(&TrainingPlan{}, &Workout{}, &WorkoutLog{}))
	return db
}

func insertGoal(t *testing.T, db *gorm.DB, userID uuid.UUID, status string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec("INSERT INTO goals (id, user_id, status) VALUES (?, ?, ?)", id, userID, status).Error)
	return id
}

// seedPlan stores a plan with perWeek workouts in every week.
func seedPlan(t *testing.T, repo Repository, goalID uuid.UUID, weeks schedule.PhaseWeeks, perWeek int) (*TrainingPlan, []Workout) {
	t.Helper()

	plan := &TrainingPlan{
		Name:       "Test plan",
		TotalWeeks: weeks.Total(),
		StartDate:  util.NewDate(2025, 1, 6),
	}
	plan.SetPhaseWeeks(weeks)

	var workouts []Workout
	for week := 1; week <= weeks.Total(); week++ {
		for day := 0; day < perWeek; day++ {
			workouts = append(workouts, Workout{
				Name:            "Run",
				Type:            Run,
				Intensity:       Easy,
				WeekNumber:      week,
				DayOfWeek:       day % 7,
				DurationMinutes: 30,
				ScheduledDate:   plan.StartDate.AddDays((week-1)*7 + day%7),
			})
		}
	}

	require.NoError(t, repo.ReplacePlan(t.Context(), goalID, plan, workouts))
	return plan, workouts
}
