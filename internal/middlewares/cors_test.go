package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saulo-duarte/atarax-lambda/internal/middlewares"
	"github.com/stretchr/testify/assert"
)

func TestCors(t *testing.T) {
	h := middlewares.Cors([]string{"https://app.atarax.fit"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("AllowedOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/goals", nil)
		req.Header.Set("Origin", "https://app.atarax.fit")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "https://app.atarax.fit", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("UnknownOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/goals", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/goals", nil)
		req.Header.Set("Origin", "https://app.atarax.fit")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
