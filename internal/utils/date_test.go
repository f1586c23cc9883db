package util_test

import (
	"encoding/json"
	"testing"
	"time"

	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var payload struct {
		EventDate *util.Date `json:"event_date"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"event_date":"2027-03-14"}`), &payload))
	require.NotNil(t, payload.EventDate)
	assert.Equal(t, util.NewDate(2027, time.March, 14), *payload.EventDate)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event_date":"2027-03-14"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"event_date":"2027-03-14T18:30:00-03:00"}`), &payload))
	assert.Equal(t, "2027-03-14", payload.EventDate.String())

	assert.Error(t, json.Unmarshal([]byte(`{"event_date":"14/03/2027"}`), &payload))
}

func TestDateScan(t *testing.T) {
	var d util.Date
	require.NoError(t, d.Scan("2026-10-18 00:00:00+00:00"))
	assert.Equal(t, util.NewDate(2026, time.October, 18), d)

	require.NoError(t, d.Scan(time.Date(2026, time.October, 18, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-10-18", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateArithmetic(t *testing.T) {
	start := util.NewDate(2026, time.October, 18)
	assert.Equal(t, util.NewDate(2026, time.October, 25), start.AddDays(7))
	assert.Equal(t, 7, start.AddDays(7).DaysSince(start))
	assert.Equal(t, -3, start.AddDays(-3).DaysSince(start))
}
