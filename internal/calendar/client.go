package calendar

import (
	"context"
	"time"

	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const primaryCalendar = "primary"

var errNotConnected = apperr.Validationf("google calendar is not connected")

// Calendar is the part of the Google Calendar API that sync needs.
type Calendar interface {
	InsertEvent(ctx context.Context, e *gcal.Event) (string, error)
}

// Dialer opens a calendar client acting for u.
type Dialer interface {
	Dial(ctx context.Context, u *user.User) (Calendar, error)
}

type googleDialer struct {
	oauthConfig *oauth2.Config
	users       user.UserRepository
}

func NewGoogleDialer(oauthConfig *oauth2.Config, users user.UserRepository) Dialer {
	return &googleDialer{oauthConfig: oauthConfig, users: users}
}

func (d *googleDialer) Dial(ctx context.Context, u *user.User) (Calendar, error) {
	log := config.WithContext(ctx).WithField("user_id", u.ID)

	if !u.CalendarConnected() {
		return nil, errNotConnected
	}

	access, err := config.Decrypt(u.EncryptedGoogleAccessToken)
	if err != nil {
		log.WithError(err).Error("Failed to decrypt access token")
		return nil, errNotConnected
	}
	var refresh string
	if u.EncryptedGoogleRefreshToken != "" {
		if refresh, err = config.Decrypt(u.EncryptedGoogleRefreshToken); err != nil {
			log.WithError(err).Error("Failed to decrypt refresh token")
			return nil, errNotConnected
		}
	}

	token := &oauth2.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}
	if u.GoogleTokenExpiry != nil {
		token.Expiry = *u.GoogleTokenExpiry
	}

	ts := d.oauthConfig.TokenSource(ctx, token)
	current, err := ts.Token()
	if err != nil {
		log.WithError(err).Warn("Failed to refresh Google token")
		return nil, apperr.Validationf("google calendar authorization expired, reconnect the calendar")
	}
	if current.AccessToken != access {
		d.persist(ctx, u, current)
	}

	srv, err := gcal.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
	if err != nil {
		log.WithError(err).Error("Failed to create Calendar service client")
		return nil, err
	}
	return &googleCalendar{srv: srv}, nil
}

// persist stores a refreshed token. Failing to save it only costs another
// refresh on the next sync.
func (d *googleDialer) persist(ctx context.Context, u *user.User, t *oauth2.Token) {
	log := config.WithContext(ctx).WithField("user_id", u.ID)

	access, err := config.Encrypt(t.AccessToken)
	if err != nil {
		log.WithError(err).Warn("Failed to encrypt refreshed token")
		return
	}
	refresh := u.EncryptedGoogleRefreshToken
	if t.RefreshToken != "" {
		if refresh, err = config.Encrypt(t.RefreshToken); err != nil {
			log.WithError(err).Warn("Failed to encrypt refreshed token")
			return
		}
	}
	var expiry *time.Time
	if !t.Expiry.IsZero() {
		expiry = &t.Expiry
	}
	if err := d.users.SaveGoogleTokens(ctx, u.ID, access, refresh, expiry); err != nil {
		log.WithError(err).Warn("Failed to persist refreshed Google token")
		return
	}
	log.Info("Google token refreshed")
}

type googleCalendar struct {
	srv *gcal.Service
}

func (c *googleCalendar) InsertEvent(ctx context.Context, e *gcal.Event) (string, error) {
	created, err := c.srv.Events.Insert(primaryCalendar, e).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}
