package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
)

const minPasswordLen = 8

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (r *RegisterRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
}

func (r RegisterRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil || r.Email == "" {
		return apperr.Validationf("a valid email is required")
	}
	if n := len(r.Username); n < 3 || n > 50 {
		return apperr.Validationf("username must be between 3 and 50 characters")
	}
	if strings.Contains(r.Username, "@") {
		return apperr.Validationf("username must not contain @")
	}
	if len(r.Password) < minPasswordLen {
		return apperr.Validationf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

// LoginRequest accepts either the username or the email in Username.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ProfileUpdate struct {
	FullName           *string       `json:"full_name"`
	BirthDate          *util.Date    `json:"birth_date"`
	HeightInches       *float64      `json:"height_inches"`
	WeightLbs          *float64      `json:"weight_lbs"`
	FitnessLevel       *FitnessLevel `json:"fitness_level"`
	TrainingExperience *Experience   `json:"training_experience"`
	MedicalConditions  *string       `json:"medical_conditions"`
}

func (p ProfileUpdate) Validate(now time.Time) error {
	if p.BirthDate != nil && !p.BirthDate.IsZero() && !p.BirthDate.Before(now) {
		return apperr.Validationf("birth_date must be in the past")
	}
	if p.HeightInches != nil && (*p.HeightInches <= 0 || *p.HeightInches > 120) {
		return apperr.Validationf("height_inches must be between 0 and 120")
	}
	if p.WeightLbs != nil && (*p.WeightLbs <= 0 || *p.WeightLbs > 1500) {
		return apperr.Validationf("weight_lbs must be between 0 and 1500")
	}
	if p.FitnessLevel != nil && *p.FitnessLevel != "" && !p.FitnessLevel.IsValid() {
		return apperr.Validationf("invalid fitness_level %q", *p.FitnessLevel)
	}
	if p.TrainingExperience != nil && *p.TrainingExperience != "" && !p.TrainingExperience.IsValid() {
		return apperr.Validationf("invalid training_experience %q", *p.TrainingExperience)
	}
	return nil
}

func (p ProfileUpdate) applyTo(u *User) {
	if p.FullName != nil {
		u.FullName = strings.TrimSpace(*p.FullName)
	}
	if p.BirthDate != nil {
		u.BirthDate = p.BirthDate
		if p.BirthDate.IsZero() {
			u.BirthDate = nil
		}
	}
	if p.HeightInches != nil {
		u.HeightInches = p.HeightInches
	}
	if p.WeightLbs != nil {
		u.WeightLbs = p.WeightLbs
	}
	if p.FitnessLevel != nil {
		u.FitnessLevel = *p.FitnessLevel
	}
	if p.TrainingExperience != nil {
		u.TrainingExperience = *p.TrainingExperience
	}
	if p.MedicalConditions != nil {
		u.MedicalConditions = *p.MedicalConditions
	}
}

// CalendarTokens are the Google OAuth tokens obtained by the front end.
type CalendarTokens struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	Expiry       *time.Time `json:"expiry,omitempty"`
}

type UserResponse struct {
	ID                 uuid.UUID    `json:"id"`
	Email              string       `json:"email"`
	Username           string       `json:"username"`
	FullName           string       `json:"full_name,omitempty"`
	Role               Role         `json:"role"`
	BirthDate          *util.Date   `json:"birth_date,omitempty"`
	HeightInches       *float64     `json:"height_inches,omitempty"`
	WeightLbs          *float64     `json:"weight_lbs,omitempty"`
	FitnessLevel       FitnessLevel `json:"fitness_level,omitempty"`
	TrainingExperience Experience   `json:"training_experience,omitempty"`
	MedicalConditions  string       `json:"medical_conditions,omitempty"`
	Age                *int         `json:"age"`
	BMI                *float64     `json:"bmi"`
	CalendarConnected  bool         `json:"calendar_connected"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int           `json:"expires_in"`
	User        *UserResponse `json:"user"`
}

func toResponse(u *User, now time.Time) *UserResponse {
	return &UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Username:           u.Username,
		FullName:           u.FullName,
		Role:               u.Role,
		BirthDate:          u.BirthDate,
		HeightInches:       u.HeightInches,
		WeightLbs:          u.WeightLbs,
		FitnessLevel:       u.FitnessLevel,
		TrainingExperience: u.TrainingExperience,
		MedicalConditions:  u.MedicalConditions,
		Age:                u.Age(now),
		BMI:                u.BMI(),
		CalendarConnected:  u.CalendarConnected(),
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}
