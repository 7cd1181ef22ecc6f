package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForecastPointIndependentRounding(t *testing.T) {
	ts := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	// 30000.4 and 12999.7 round to 30000 and 13000, but their difference
	// 17000.7 rounds to 17001. The gap keeps its own rounding.
	p := NewForecastPoint(ts, 30000.4, 12999.7)
	assert.Equal(t, 30000, p.Demand)
	assert.Equal(t, 13000, p.Supply)
	assert.Equal(t, 17001, p.Gap)
	assert.Equal(t, "02:30 PM", p.TimeLabel)
	assert.True(t, p.IsPrediction)
}

func TestRealModelSource(t *testing.T) {
	assert.Equal(t, "Real Model (6h)", RealModelSource(6))
	assert.Equal(t, "Real Model (24h)", RealModelSource(24))
}

func TestForecastPointJSONKeys(t *testing.T) {
	ts := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	data, err := json.Marshal(NewForecastPoint(ts, 100, 50))
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"timestamp", "timeLabel", "demand", "supply", "gap", "isPrediction"} {
		assert.Contains(t, raw, key)
	}
}
