package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinebook/internal/domains/timeslot/model"
	"dinebook/internal/domains/timeslot/model/dto"
	"dinebook/shared/failure"
)

func TestTimeSlotFilter(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantWhere string
		wantArgs  map[string]any
		wantErr   bool
	}{
		{
			name:      "availability is implicit",
			query:     "",
			wantWhere: "(time_slots.is_available = :is_available)",
			wantArgs:  map[string]any{"is_available": true},
		},
		{
			name:  "every filter",
			query: "date=2026-03-01&location=indoor&party_size=4&area=hall&start_time=9:00&end_time=22:00&price_min=10&price_max=50",
			wantWhere: "(time_slots.is_available = :is_available AND time_slots.date = :date AND time_slots.location = :location" +
				" AND time_slots.max_party_size >= :party_size AND LOWER(time_slots.area) LIKE LOWER(:area)  AND time_slots.start_time >= :start_time" +
				" AND time_slots.end_time <= :end_time AND time_slots.special_pricing >= :price_min AND time_slots.special_pricing <= :price_max)",
			wantArgs: map[string]any{
				"is_available": true,
				"date":         "2026-03-01",
				"location":     "indoor",
				"party_size":   4,
				"area":         "%hall%",
				"start_time":   "09:00",
				"end_time":     "22:00",
				"price_min":    10.0,
				"price_max":    50.0,
			},
		},
		{name: "bad date", query: "date=01-03-2026", wantErr: true},
		{name: "party too large", query: "party_size=21", wantErr: true},
		{name: "bad clock", query: "start_time=25:00", wantErr: true},
		{name: "negative price", query: "price_min=-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/timeslots?"+tt.query, nil)

			filter := dto.TimeSlotFilter{}
			err := filter.FromRequest(req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, failure.KindValidation, failure.GetKind(err))

				return
			}

			require.NoError(t, err)

			group := filter.ToFilterGroup()
			where, args := group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestUpdateTimeSlotRequest_Apply(t *testing.T) {
	current := model.TimeSlot{
		ID:        "s-1",
		Date:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "18:00",
		EndTime:   "20:00",
		Location:  "indoor",
	}

	notes := "closed for a private party"
	closed := false

	next, err := (&dto.UpdateTimeSlotRequest{
		Date:         "2026-03-02",
		StartTime:    "17:30",
		SpecialNotes: &notes,
		IsAvailable:  &closed,
	}).Apply(current)

	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", next.Date.Format("2006-01-02"))
	assert.Equal(t, "17:30", next.StartTime)
	assert.Equal(t, "20:00", next.EndTime)
	assert.Equal(t, 17*60+30, next.StartMinute)
	assert.Equal(t, 20*60, next.EndMinute)
	assert.Equal(t, notes, next.SpecialNotes)
	assert.False(t, next.IsAvailable)
	assert.Equal(t, "18:00", current.StartTime, "current is left untouched")
}
