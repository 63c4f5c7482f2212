package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomDateJSONRoundTrip(t *testing.T) {
	var d CustomDate
	require.NoError(t, json.Unmarshal([]byte(`"2026-10-01"`), &d))
	assert.Equal(t, "2026-10-01", d.String())

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-10-01"`, string(raw))

	assert.Error(t, json.Unmarshal([]byte(`"01/10/2026"`), &d))
}

func TestCustomDateNull(t *testing.T) {
	var d CustomDate
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `null`, string(raw))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1995-06-01")
	require.NoError(t, err)
	assert.Equal(t, 1995, d.Year())

	_, err = ParseDate("June 1st 1995")
	assert.Error(t, err)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 25.5, Round2(8.5*3))
	assert.Equal(t, 0.3, Round2(0.1+0.2))
	assert.Equal(t, 12.35, Round2(12.345000001))
}
