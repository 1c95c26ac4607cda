package conflict_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinebook/internal/domains/reservation/conflict"
	"dinebook/internal/domains/reservation/model"
	"dinebook/shared/failure"
)

var june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func booked(id, table string, date time.Time, start, end, status string) model.Reservation {
	return model.Reservation{
		ID:              id,
		TableID:         table,
		ReservationDate: date,
		StartTime:       start,
		EndTime:         end,
		Status:          status,
	}
}

func TestHasConflict(t *testing.T) {
	existing := []model.Reservation{
		booked("r-1", "T", june1, "18:00", "20:00", model.StatusConfirmed),
	}

	tests := []struct {
		name      string
		existing  []model.Reservation
		table     string
		date      time.Time
		start     string
		end       string
		excludeID string
		want      bool
	}{
		{name: "overlapping the tail", existing: existing, table: "T", date: june1, start: "19:00", end: "21:00", want: true},
		{name: "touching the end", existing: existing, table: "T", date: june1, start: "20:00", end: "22:00", want: false},
		{name: "touching the start", existing: existing, table: "T", date: june1, start: "16:00", end: "18:00", want: false},
		{name: "enclosing", existing: existing, table: "T", date: june1, start: "17:00", end: "21:00", want: true},
		{name: "enclosed", existing: existing, table: "T", date: june1, start: "18:30", end: "19:00", want: true},
		{name: "identical", existing: existing, table: "T", date: june1, start: "18:00", end: "20:00", want: true},
		{name: "other table", existing: existing, table: "U", date: june1, start: "19:00", end: "21:00", want: false},
		{name: "other day", existing: existing, table: "T", date: june1.AddDate(0, 0, 1), start: "19:00", end: "21:00", want: false},
		{name: "excluded self", existing: existing, table: "T", date: june1, start: "19:00", end: "21:00", excludeID: "r-1", want: false},
		{name: "unpadded input still overlaps", existing: existing, table: "T", date: june1, start: "9:00", end: "19:00", want: true},
		{name: "no reservations", table: "T", date: june1, start: "19:00", end: "21:00", want: false},
		{
			name:     "cancelled does not block",
			existing: []model.Reservation{booked("r-2", "T", june1, "18:00", "20:00", model.StatusCancelled)},
			table:    "T", date: june1, start: "19:00", end: "21:00", want: false,
		},
		{
			name:     "no-show does not block",
			existing: []model.Reservation{booked("r-3", "T", june1, "18:00", "20:00", model.StatusNoShow)},
			table:    "T", date: june1, start: "19:00", end: "21:00", want: false,
		},
		{
			name:     "seated blocks",
			existing: []model.Reservation{booked("r-4", "T", june1, "18:00", "20:00", model.StatusSeated)},
			table:    "T", date: june1, start: "19:00", end: "21:00", want: true,
		},
		{
			name:     "same day in another location",
			existing: []model.Reservation{booked("r-5", "T", time.Date(2024, 6, 1, 0, 0, 0, 0, time.FixedZone("WIB", 7*3600)), "18:00", "20:00", model.StatusPending)},
			table:    "T", date: june1, start: "19:00", end: "21:00", want: true,
		},
		{
			name: "lexicographic trap",
			existing: []model.Reservation{
				booked("r-6", "T", june1, "09:00", "10:00", model.StatusPending),
			},
			table: "T", date: june1, start: "10:00", end: "11:00", want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conflict.HasConflict(tt.existing, tt.table, tt.date, tt.start, tt.end, tt.excludeID)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasConflict_MalformedInput(t *testing.T) {
	existing := []model.Reservation{booked("r-1", "T", june1, "18:00", "20:00", model.StatusConfirmed)}

	tests := []struct {
		name     string
		existing []model.Reservation
		start    string
		end      string
	}{
		{name: "bad start", existing: existing, start: "7pm", end: "21:00"},
		{name: "bad end", existing: existing, start: "19:00", end: "24:00"},
		{name: "inverted window", existing: existing, start: "21:00", end: "19:00"},
		{name: "empty window", existing: existing, start: "19:00", end: "19:00"},
		{
			name:     "stored record malformed",
			existing: []model.Reservation{booked("r-9", "T", june1, "18:00", "", model.StatusConfirmed)},
			start:    "19:00",
			end:      "21:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conflict.HasConflict(tt.existing, "T", june1, tt.start, tt.end, "")

			require.Error(t, err)
			assert.False(t, got)
			assert.Equal(t, failure.KindValidation, failure.GetKind(err))
		})
	}
}

func TestCheck(t *testing.T) {
	existing := []model.Reservation{booked("r-1", "T", june1, "18:00", "20:00", model.StatusConfirmed)}

	err := conflict.Check(existing, conflict.Candidate{TableID: "T", Date: june1, StartTime: "19:00", EndTime: "21:00"})
	require.Error(t, err)
	assert.Equal(t, failure.KindSchedulingConflict, failure.GetKind(err))
	assert.Contains(t, err.Error(), "18:00")

	assert.NoError(t, conflict.Check(existing, conflict.Candidate{TableID: "T", Date: june1, StartTime: "20:00", EndTime: "22:00"}))
}
