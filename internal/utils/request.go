package util

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
)

// PathUUID reads a chi URL parameter as a UUID.
func PathUUID(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, key))
	if err != nil {
		return uuid.Nil, apperr.Validationf("invalid %s", key)
	}
	return id, nil
}

// QueryInt returns nil when the parameter is absent.
func QueryInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.Validationf("%s must be an integer", key)
	}
	return &v, nil
}

// DecodeJSON decodes the request body into v. An empty body leaves v as is
// when allowEmpty is set.
func DecodeJSON(r *http.Request, v any, allowEmpty bool) error {
	if r.Body == nil || r.Body == http.NoBody {
		if allowEmpty {
			return nil
		}
		return apperr.Validationf("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Validationf("invalid request body")
	}
	return nil
}
