package timezone_test

import (
	"dinebook/shared/constant"
	"dinebook/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestToAppTime(t *testing.T) {
	utc := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	converted := timezone.ToAppTime(utc)

	assert.True(t, utc.Equal(converted))
	assert.Equal(t, timezone.GetLocation(), converted.Location())
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse(constant.CalendarFormat, "2026-03-01")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", timezone.Format(parsed, constant.CalendarFormat))

	_, err = timezone.Parse(constant.CalendarFormat, "01/03/2026")
	assert.Error(t, err)
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	_, err := time.Parse(constant.CalendarFormat, today)
	assert.NoError(t, err)
}
