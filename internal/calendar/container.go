package calendar

import (
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
)

type CalendarContainer struct {
	Service CalendarService
	Handler *Handler
}

type OAuthSettings struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func NewCalendarContainer(s OAuthSettings, users user.UserRepository, plans training.Repository) *CalendarContainer {
	oauthConfig := &oauth2.Config{
		ClientID:     s.ClientID,
		ClientSecret: s.ClientSecret,
		RedirectURL:  s.RedirectURL,
		Scopes:       []string{gcal.CalendarEventsScope},
		Endpoint:     google.Endpoint,
	}

	service := NewCalendarService(users, plans, NewGoogleDialer(oauthConfig, users))

	return &CalendarContainer{
		Service: service,
		Handler: NewHandler(service),
	}
}
