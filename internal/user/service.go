package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"github.com/saulo-duarte/atarax-lambda/internal/auth"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
)

var errBadCredentials = apperr.ErrUnauthenticated

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, p ProfileUpdate) (*UserResponse, error)
	ConnectCalendar(ctx context.Context, userID uuid.UUID, t CalendarTokens) (*UserResponse, error)
	DisconnectCalendar(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	repo UserRepository
	now  func() time.Time
}

func NewUserService(repo UserRepository) UserService {
	return &userService{repo: repo, now: time.Now}
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	log := config.WithContext(ctx)

	req.normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, req.Email, req.Username)
	if err != nil {
		log.WithError(err).Error("Failed to check existing users")
		return nil, err
	}
	if exists {
		return nil, apperr.Conflictf("email or username already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	u := &User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         RoleAthlete,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return s.issueToken(u)
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	log := config.WithContext(ctx)

	login := strings.TrimSpace(req.Username)
	if login == "" || req.Password == "" {
		return nil, apperr.Validationf("username and password are required")
	}
	if strings.Contains(login, "@") {
		login = strings.ToLower(login)
	}

	u, err := s.repo.GetByLogin(ctx, login)
	if errors.Is(err, apperr.ErrNotFound) {
		log.Warn("Login for unknown user")
		return nil, errBadCredentials
	}
	if err != nil {
		log.WithError(err).Error("Failed to load user for login")
		return nil, err
	}
	if !u.IsActive || !auth.CheckPassword(u.PasswordHash, req.Password) {
		log.WithField("user_id", u.ID).Warn("Rejected login")
		return nil, errBadCredentials
	}
	return s.issueToken(u)
}

func (s *userService) issueToken(u *User) (*TokenResponse, error) {
	ttl := auth.TokenTTL()
	token, err := auth.GenerateJWT(u.ID.String(), string(u.Role), ttl)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(ttl.Seconds()),
		User:        toResponse(u, s.now()),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to load current user")
		return nil, err
	}
	return toResponse(u, s.now()), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, p ProfileUpdate) (*UserResponse, error) {
	log := config.WithContext(ctx).WithField("user_id", userID)

	if err := p.Validate(s.now()); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.applyTo(u)

	if err := s.repo.Update(ctx, u); err != nil {
		log.WithError(err).Error("Failed to update profile")
		return nil, err
	}
	log.Info("Profile updated")
	return toResponse(u, s.now()), nil
}

// ConnectCalendar stores the Google tokens encrypted at rest.
func (s *userService) ConnectCalendar(ctx context.Context, userID uuid.UUID, t CalendarTokens) (*UserResponse, error) {
	log := config.WithContext(ctx).WithField("user_id", userID)

	if t.AccessToken == "" {
		return nil, apperr.Validationf("access_token is required")
	}
	if !config.CryptoEnabled() {
		return nil, apperr.Validationf("calendar integration is not configured")
	}

	access, err := config.Encrypt(t.AccessToken)
	if err != nil {
		log.WithError(err).Error("Failed to encrypt access token")
		return nil, err
	}
	var refresh string
	if t.RefreshToken != "" {
		if refresh, err = config.Encrypt(t.RefreshToken); err != nil {
			log.WithError(err).Error("Failed to encrypt refresh token")
			return nil, err
		}
	}

	if err := s.repo.SaveGoogleTokens(ctx, userID, access, refresh, t.Expiry); err != nil {
		log.WithError(err).Error("Failed to store calendar tokens")
		return nil, err
	}
	log.Info("Google calendar connected")
	return s.Me(ctx, userID)
}

func (s *userService) DisconnectCalendar(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.SaveGoogleTokens(ctx, userID, "", "", nil); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to clear calendar tokens")
		return err
	}
	return nil
}
