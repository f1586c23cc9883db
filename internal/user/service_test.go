package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"github.com/saulo-duarte/atarax-lambda/internal/auth"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "segredo-de-teste-longo-o-suficiente"

func newContainer(t *testing.T) *user.UserContainer {
	t.Helper()
	auth.Init(testSecret, time.Hour)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&user.User{}))
	return user.NewUserContainer(db)
}

func register(t *testing.T, c *user.UserContainer, username string) *user.TokenResponse {
	t.Helper()
	resp, err := c.Service.Register(t.Context(), user.RegisterRequest{
		Email:    username + "@Example.com",
		Username: username,
		Password: "correct horse",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	c := newContainer(t)
	ctx := t.Context()

	resp := register(t, c, "ana")
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, user.RoleAthlete, resp.User.Role)

	claims, err := auth.ValidateJWT(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)

	t.Run("Duplicate", func(t *testing.T) {
		_, err := c.Service.Register(ctx, user.RegisterRequest{
			Email:    "ANA@example.com",
			Username: "other",
			Password: "correct horse",
		})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		cases := []user.RegisterRequest{
			{Email: "nope", Username: "bob", Password: "correct horse"},
			{Email: "bob@example.com", Username: "b", Password: "correct horse"},
			{Email: "bob@example.com", Username: "bob", Password: "short"},
		}
		for _, req := range cases {
			_, err := c.Service.Register(ctx, req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		}
	})

	t.Run("ByUsernameOrEmail", func(t *testing.T) {
		for _, login := range []string{"ana", "Ana@Example.com"} {
			got, err := c.Service.Login(ctx, user.LoginRequest{Username: login, Password: "correct horse"})
			require.NoError(t, err, login)
			assert.Equal(t, resp.User.ID, got.User.ID)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := c.Service.Login(ctx, user.LoginRequest{Username: "ana", Password: "battery staple"})
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

		_, err = c.Service.Login(ctx, user.LoginRequest{Username: "ghost", Password: "battery staple"})
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})
}

func TestUpdateProfile(t *testing.T) {
	c := newContainer(t)
	ctx := t.Context()
	id := register(t, c, "bruno").User.ID

	birth := util.DateOf(time.Now().AddDate(-30, 0, -1))
	height := 70.0
	weight := 175.0
	level := user.FitnessIntermediate
	conditions := "old knee injury"

	got, err := c.Service.UpdateProfile(ctx, id, user.ProfileUpdate{
		BirthDate:         &birth,
		HeightInches:      &height,
		WeightLbs:         &weight,
		FitnessLevel:      &level,
		MedicalConditions: &conditions,
	})
	require.NoError(t, err)
	require.NotNil(t, got.Age)
	assert.Equal(t, 30, *got.Age)
	require.NotNil(t, got.BMI)
	assert.Equal(t, 25.1, *got.BMI)
	assert.Equal(t, "old knee injury", got.MedicalConditions)

	bad := user.FitnessLevel("legendary")
	_, err = c.Service.UpdateProfile(ctx, id, user.ProfileUpdate{FitnessLevel: &bad})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	future := util.DateOf(time.Now().AddDate(1, 0, 0))
	_, err = c.Service.UpdateProfile(ctx, id, user.ProfileUpdate{BirthDate: &future})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestConnectCalendar(t *testing.T) {
	c := newContainer(t)
	ctx := t.Context()
	id := register(t, c, "carla").User.ID

	config.InitCrypto("")
	_, err := c.Service.ConnectCalendar(ctx, id, user.CalendarTokens{AccessToken: "ya29.token"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	config.InitCrypto("01234567890123456789012345678901")
	t.Cleanup(func() { config.InitCrypto("") })

	got, err := c.Service.ConnectCalendar(ctx, id, user.CalendarTokens{
		AccessToken:  "ya29.token",
		RefreshToken: "1//refresh",
	})
	require.NoError(t, err)
	assert.True(t, got.CalendarConnected)

	u, err := c.Repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, "ya29.token", u.EncryptedGoogleAccessToken)
	plain, err := config.Decrypt(u.EncryptedGoogleAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ya29.token", plain)

	require.NoError(t, c.Service.DisconnectCalendar(ctx, id))
	me, err := c.Service.Me(ctx, id)
	require.NoError(t, err)
	assert.False(t, me.CalendarConnected)
}

func TestRoutes(t *testing.T) {
	c := newContainer(t)

	mux := http.NewServeMux()
	mux.Handle("/auth/", http.StripPrefix("/auth", user.AuthRoutes(c.Handler)))
	mux.Handle("/users/", http.StripPrefix("/users", user.Routes(c.Handler)))

	body, _ := json.Marshal(user.RegisterRequest{
		Email:    "dora@example.com",
		Username: "dora",
		Password: "correct horse",
	})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tok user.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tok))

	t.Run("Me", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var me user.UserResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
		assert.Equal(t, "dora", me.Username)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("BadLogin", func(t *testing.T) {
		body := bytes.NewBufferString(`{"username":"dora","password":"wrong password"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", body))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
