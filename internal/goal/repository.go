package goal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, g *Goal) error
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	ListByUser(ctx context.Context, userID uuid.UUID, q ListQuery) ([]Goal, error)
	FindActive(ctx context.Context, userID uuid.UUID) (*Goal, error)
	Upcoming(ctx context.Context, userID uuid.UUID, from, to util.Date) ([]Goal, error)
	Update(ctx context.Context, g *Goal) error
	SetTotalWeeks(ctx context.Context, id uuid.UUID, weeks int) error

	Activate(ctx context.Context, id, userID uuid.UUID) (*Goal, error)
	Transition(ctx context.Context, id uuid.UUID, from, to Status) error
	Delete(ctx context.Context, id uuid.UUID) error

	ClaimGeneration(ctx context.Context, id uuid.UUID, staleBefore time.Time) (bool, error)
	FinishGeneration(ctx context.Context, id uuid.UUID, status GenerationStatus, reason string) error
}

type repository struct {
	db       *gorm.DB
	training training.Repository
	now      func() time.Time
}

func NewRepository(db *gorm.DB, trainingRepo training.Repository) Repository {
	return &repository{db: db, training: trainingRepo, now: time.Now}
}

func (r *repository) Create(ctx context.Context, g *Goal) error {
	return r.db.WithContext(ctx).Omit("User").Create(g).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Goal, error) {
	var g Goal
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	return found(&g, err)
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, q ListQuery) ([]Goal, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if q.Status != nil {
		tx = tx.Where("status = ?", *q.Status)
	}
	var goals []Goal
	if err := tx.Order("created_at DESC").Offset(q.Skip).Limit(q.Limit).Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *repository) FindActive(ctx context.Context, userID uuid.UUID) (*Goal, error) {
	var g Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, StatusActive).
		First(&g).Error
	return found(&g, err)
}

// Upcoming lists the user's open goals whose event falls within [from, to].
func (r *repository) Upcoming(ctx context.Context, userID uuid.UUID, from, to util.Date) ([]Goal, error) {
	var goals []Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, []Status{StatusActive, StatusPlanning, StatusPaused}).
		Where("event_date >= ? AND event_date <= ?", from, to).
		Order("event_date ASC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// editableColumns are the fields a user edit may touch. Status, total weeks
// and generation state are written by their own statements.
var editableColumns = []string{
	"title", "description", "event_location",
	"current_fitness_assessment", "current_swim_ability", "current_bike_ability", "current_run_ability",
	"target_swim_time", "target_bike_time", "target_run_time", "target_total_time",
	"preferred_days", "equipment", "minutes_per_workout", "workouts_per_week",
	"updated_at",
}

func (r *repository) Update(ctx context.Context, g *Goal) error {
	return r.db.WithContext(ctx).
		Model(g).
		Select(editableColumns).
		Updates(g).Error
}

func (r *repository) SetTotalWeeks(ctx context.Context, id uuid.UUID, weeks int) error {
	return r.db.WithContext(ctx).Model(&Goal{}).Where("id = ?", id).Update("total_weeks", weeks).Error
}

// Activate makes the goal the user's only active one. The user row is locked
// for the whole swap so concurrent activations for one user run one at a time.
func (r *repository) Activate(ctx context.Context, id, userID uuid.UUID) (*Goal, error) {
	var g Goal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u user.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&u, "id = ?", userID).Error; err != nil {
			return err
		}

		if err := tx.First(&g, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return err
		}
		if !g.Status.CanTransitionTo(StatusActive) {
			return apperr.InvalidTransition(string(g.Status), string(StatusActive))
		}

		if err := tx.Model(&Goal{}).
			Where("user_id = ? AND status = ? AND id <> ?", userID, StatusActive, id).
			Update("status", StatusPaused).Error; err != nil {
			return err
		}
		if err := tx.Model(&Goal{}).Where("id = ?", id).Update("status", StatusActive).Error; err != nil {
			return err
		}
		g.Status = StatusActive
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Transition moves the goal from one status to another only if it is still
// in from.
func (r *repository) Transition(ctx context.Context, id uuid.UUID, from, to Status) error {
	res := r.db.WithContext(ctx).Model(&Goal{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.Conflictf("goal status changed concurrently, retry")
	}
	return nil
}

// Delete removes the goal with its logs, workouts and plans in one
// transaction.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.training.DeleteByGoal(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&Goal{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		return nil
	})
}

// ClaimGeneration marks the goal as having a synthesis in flight. It fails
// (false) while another claim is pending, unless that claim started before
// staleBefore.
func (r *repository) ClaimGeneration(ctx context.Context, id uuid.UUID, staleBefore time.Time) (bool, error) {
	now := r.now()
	res := r.db.WithContext(ctx).Model(&Goal{}).
		Where("id = ?", id).
		Where("(generation_status <> ? OR generation_started_at IS NULL OR generation_started_at < ?)",
			GenerationPending, staleBefore).
		Updates(map[string]any{
			"generation_status":     GenerationPending,
			"generation_started_at": now,
			"generation_error":      "",
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) FinishGeneration(ctx context.Context, id uuid.UUID, status GenerationStatus, reason string) error {
	return r.db.WithContext(ctx).Model(&Goal{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"generation_status": status,
			"generation_error":  reason,
		}).Error
}

func found(g *Goal, err error) (*Goal, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}
