package schedule_test

import (
	"dinebook/shared/failure"
	"dinebook/shared/schedule"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		minutes  int
		wantErr  bool
	}{
		{input: "00:00", expected: "00:00", minutes: 0},
		{input: "9:30", expected: "09:30", minutes: 570},
		{input: "09:30", expected: "09:30", minutes: 570},
		{input: "23:59", expected: "23:59", minutes: 1439},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "1230", wantErr: true},
		{input: "", wantErr: true},
		{input: "7pm", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			clock, err := schedule.ParseClock(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, failure.Is(err, failure.KindValidation))
				assert.False(t, schedule.IsClock(tt.input))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, clock.String())
			assert.Equal(t, tt.minutes, clock.Minutes())
			assert.True(t, schedule.IsClock(tt.input))
		})
	}
}

func TestNormalizeClockSortsLexically(t *testing.T) {
	early, err := schedule.NormalizeClock("9:00")
	require.NoError(t, err)

	late, err := schedule.NormalizeClock("10:00")
	require.NoError(t, err)

	assert.Less(t, early, late)
}

func TestClockFromMinutes(t *testing.T) {
	clock, err := schedule.ClockFromMinutes(1170)
	require.NoError(t, err)
	assert.Equal(t, "19:30", clock.String())

	_, err = schedule.ClockFromMinutes(-1)
	assert.Error(t, err)

	_, err = schedule.ClockFromMinutes(1440)
	assert.Error(t, err)
}

func TestParseWindow(t *testing.T) {
	window, err := schedule.ParseWindow("18:00", "20:00")
	require.NoError(t, err)
	assert.Equal(t, 120, window.Duration())
	assert.Equal(t, "18:00-20:00", window.String())

	_, err = schedule.ParseWindow("20:00", "20:00")
	assert.True(t, failure.Is(err, failure.KindValidation))

	_, err = schedule.ParseWindow("21:00", "20:00")
	assert.True(t, failure.Is(err, failure.KindValidation))

	_, err = schedule.ParseWindow("bad", "20:00")
	assert.Error(t, err)
}

func TestWindowOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     [2]string
		expected bool
	}{
		{name: "partial overlap", a: [2]string{"18:00", "20:00"}, b: [2]string{"19:00", "21:00"}, expected: true},
		{name: "touching after", a: [2]string{"18:00", "20:00"}, b: [2]string{"20:00", "22:00"}, expected: false},
		{name: "touching before", a: [2]string{"18:00", "20:00"}, b: [2]string{"16:00", "18:00"}, expected: false},
		{name: "contained", a: [2]string{"18:00", "22:00"}, b: [2]string{"19:00", "20:00"}, expected: true},
		{name: "identical", a: [2]string{"18:00", "20:00"}, b: [2]string{"18:00", "20:00"}, expected: true},
		{name: "disjoint", a: [2]string{"12:00", "13:00"}, b: [2]string{"18:00", "20:00"}, expected: false},
		{name: "unpadded input", a: [2]string{"9:00", "10:00"}, b: [2]string{"09:30", "11:00"}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := schedule.ParseWindow(tt.a[0], tt.a[1])
			require.NoError(t, err)

			b, err := schedule.ParseWindow(tt.b[0], tt.b[1])
			require.NoError(t, err)

			assert.Equal(t, tt.expected, a.Overlaps(b))
			assert.Equal(t, tt.expected, b.Overlaps(a))
		})
	}
}

func TestWindowContains(t *testing.T) {
	slot, _ := schedule.ParseWindow("18:00", "22:00")
	inside, _ := schedule.ParseWindow("18:00", "20:00")
	outside, _ := schedule.ParseWindow("21:00", "23:00")

	assert.True(t, slot.Contains(inside))
	assert.True(t, slot.Contains(slot))
	assert.False(t, slot.Contains(outside))
}

func TestDates(t *testing.T) {
	date, err := schedule.ParseDate("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", schedule.DateKey(date))

	_, err = schedule.ParseDate("2026-13-01")
	assert.True(t, failure.Is(err, failure.KindValidation))

	assert.True(t, schedule.IsDate("2026-02-28"))
	assert.False(t, schedule.IsDate("2026-02-30"))
	assert.False(t, schedule.IsDate("01/03/2026"))

	jakarta := time.FixedZone("WIB", 7*60*60)
	assert.True(t, schedule.SameDay(date, time.Date(2026, 3, 1, 23, 0, 0, 0, jakarta)))
	assert.False(t, schedule.SameDay(date, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
}
