package util_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathUUID(t *testing.T) {
	id := uuid.New()
	var got uuid.UUID
	var gotErr error

	r := chi.NewRouter()
	r.Get("/goals/{id}", func(w http.ResponseWriter, req *http.Request) {
		got, gotErr = util.PathUUID(req, "id")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/goals/"+id.String(), nil))
	require.NoError(t, gotErr)
	assert.Equal(t, id, got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/goals/not-a-uuid", nil))
	assert.ErrorIs(t, gotErr, apperr.ErrValidation)
}

func TestQueryInt(t *testing.T) {
	v, err := util.QueryInt(httptest.NewRequest(http.MethodGet, "/w?week=3", nil), "week")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 3, *v)

	v, err = util.QueryInt(httptest.NewRequest(http.MethodGet, "/w", nil), "week")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = util.QueryInt(httptest.NewRequest(http.MethodGet, "/w?week=x", nil), "week")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Title string `json:"title"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"10k"}`))
	require.NoError(t, util.DecodeJSON(req, &body, false))
	assert.Equal(t, "10k", body.Title)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	assert.ErrorIs(t, util.DecodeJSON(req, &body, false), apperr.ErrValidation)

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(""))
	assert.NoError(t, util.DecodeJSON(req, &body, true))
}
