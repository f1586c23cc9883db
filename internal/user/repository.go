package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByLogin(ctx context.Context, login string) (*User, error)
	Exists(ctx context.Context, email, username string) (bool, error)
	Update(ctx context.Context, u *User) error
	SaveGoogleTokens(ctx context.Context, id uuid.UUID, access, refresh string, expiry *time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflictf("email or username already registered")
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return found(&u, err)
}

// GetByLogin matches either the username or the (lower-cased) email.
func (r *userRepository) GetByLogin(ctx context.Context, login string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&u).Error
	return found(&u, err)
}

func (r *userRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&n).Error
	return n > 0, err
}

func (r *userRepository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepository) SaveGoogleTokens(ctx context.Context, id uuid.UUID, access, refresh string, expiry *time.Time) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]any{
		"encrypted_google_access_token":  access,
		"encrypted_google_refresh_token": refresh,
		"google_token_expiry":            expiry,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func found(u *User, err error) (*User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
