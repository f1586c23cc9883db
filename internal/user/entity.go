package user

import (
	"math"
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `gorm:"size:255" json:"full_name,omitempty"`
	Role         Role      `gorm:"size:20;not null;default:athlete" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`

	BirthDate          *util.Date   `json:"birth_date,omitempty"`
	HeightInches       *float64     `json:"height_inches,omitempty"`
	WeightLbs          *float64     `json:"weight_lbs,omitempty"`
	FitnessLevel       FitnessLevel `gorm:"size:20" json:"fitness_level,omitempty"`
	TrainingExperience Experience   `gorm:"size:20" json:"training_experience,omitempty"`
	MedicalConditions  string       `gorm:"type:text" json:"medical_conditions,omitempty"`

	EncryptedGoogleAccessToken  string     `gorm:"type:text" json:"-"`
	EncryptedGoogleRefreshToken string     `gorm:"type:text" json:"-"`
	GoogleTokenExpiry           *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleAthlete
	}
	return nil
}

// Age is the age in whole years on the given day, nil without a birth date.
func (u *User) Age(now time.Time) *int {
	if u.BirthDate == nil || u.BirthDate.IsZero() {
		return nil
	}
	b := u.BirthDate.Time
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return &age
}

// BMI uses the imperial formula, rounded to one decimal.
func (u *User) BMI() *float64 {
	if u.HeightInches == nil || u.WeightLbs == nil || *u.HeightInches <= 0 {
		return nil
	}
	bmi := 703 * *u.WeightLbs / (*u.HeightInches * *u.HeightInches)
	bmi = math.Round(bmi*10) / 10
	return &bmi
}

func (u *User) CalendarConnected() bool {
	return u.EncryptedGoogleAccessToken != ""
}
