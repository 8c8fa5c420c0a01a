package util

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDateJSONRoundTrip(t *testing.T) {
	d := NewLocalDate(2026, time.March, 20)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-20"`, string(b))

	var parsed LocalDate
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.True(t, parsed.Equal(d))
}

func TestLocalDateZeroMarshalsNull(t *testing.T) {
	var d LocalDate

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `null`, string(b))
}

func TestLocalDateBefore(t *testing.T) {
	start := NewLocalDate(2026, time.January, 1)
	end := NewLocalDate(2026, time.March, 31)

	assert.True(t, start.Before(end))
	assert.False(t, end.Before(start))
	assert.False(t, start.Before(start))
}

func TestLocalDateScanTruncatesTimeComponent(t *testing.T) {
	var d LocalDate
	require.NoError(t, d.Scan("2026-03-20 15:04:05"))
	assert.True(t, d.Equal(NewLocalDate(2026, time.March, 20)))
}

func TestLocalDateScanNil(t *testing.T) {
	var d LocalDate
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}
