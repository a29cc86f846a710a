package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	in := time.Date(2026, 5, 14, 23, 59, 1, 5, loc)

	got := StartOfDay(in)

	assert.Equal(t, time.Date(2026, 5, 14, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestParse(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)

	d, err := Parse("2026-02-03", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, loc), d)

	ts, err := Parse("2026-02-03T04:00:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-02", Format(ts))

	_, err = Parse("not-a-date", loc)
	assert.Error(t, err)
}

func TestWithinIsInclusive(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := AddDays(start, 3)

	assert.True(t, Within(start, start, end))
	assert.True(t, Within(end, start, end))
	assert.False(t, Within(AddDays(end, 1), start, end))
	assert.False(t, Within(start.Add(-time.Nanosecond), start, end))
}

func TestApprovalHours(t *testing.T) {
	submitted := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	reviewed := submitted.Add(90 * time.Minute)
	earlier := submitted.Add(-time.Hour)

	h, ok := ApprovalHours(&submitted, &reviewed)
	assert.True(t, ok)
	assert.InDelta(t, 1.5, h, 1e-9)

	h, ok = ApprovalHours(&submitted, &earlier)
	assert.True(t, ok)
	assert.Zero(t, h)

	_, ok = ApprovalHours(nil, &reviewed)
	assert.False(t, ok)
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation("", nil))
	assert.Equal(t, time.UTC, LoadLocation("Mars/Olympus", nil))
	assert.Equal(t, "UTC", LoadLocation("UTC", time.Local).String())
}
