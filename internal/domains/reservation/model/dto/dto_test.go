package dto_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinebook/internal/domains/reservation/model"
	"dinebook/internal/domains/reservation/model/dto"
	"dinebook/shared/actor"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	"dinebook/shared/schedule"
	"dinebook/shared/timezone"
)

func TestCreateReservationRequest_Schedule(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.CreateReservationRequest
		wantDate string
		wantKind failure.Kind
	}{
		{
			name:     "dated booking",
			req:      dto.CreateReservationRequest{ReservationDate: "2024-06-01", StartTime: "18:00", EndTime: "20:00"},
			wantDate: "2024-06-01",
		},
		{
			name:     "walk-in defaults to today",
			req:      dto.CreateReservationRequest{IsWalkIn: true, StartTime: "12:00", EndTime: "13:00"},
			wantDate: timezone.Today(),
		},
		{
			name:     "regular booking needs a date",
			req:      dto.CreateReservationRequest{StartTime: "18:00", EndTime: "20:00"},
			wantKind: failure.KindValidation,
		},
		{
			name:     "empty window",
			req:      dto.CreateReservationRequest{ReservationDate: "2024-06-01", StartTime: "18:00", EndTime: "18:00"},
			wantKind: failure.KindValidation,
		},
		{
			name:     "bad date",
			req:      dto.CreateReservationRequest{ReservationDate: "2024-13-01", StartTime: "18:00", EndTime: "20:00"},
			wantKind: failure.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, window, err := tt.req.Schedule()

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, schedule.DateKey(date))
			assert.Equal(t, tt.req.StartTime, window.Start.String())
			assert.Equal(t, tt.req.EndTime, window.End.String())
		})
	}
}

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		TimeSlotID: "slot-1",
		TableID:    "table-1",
		PartySize:  4,
		StartTime:  "18:00",
		EndTime:    "20:00",
	}

	date, _ := schedule.ParseDate("2024-06-01")
	window, _ := schedule.ParseWindow("18:00", "20:00")

	got := req.ToModel("c-1", "s-1", date, window, model.NewPriceSnapshot(nil, 25, 4))

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "c-1", got.CustomerID)
	assert.Equal(t, "s-1", got.CreatedBy)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Equal(t, 18*60, got.StartMinute)
	assert.Equal(t, 20*60, got.EndMinute)
	assert.Equal(t, 25.0, got.PricePerPersonAtBooking)
	assert.Equal(t, 100.0, got.TotalPrice)
	require.NotNil(t, got.TimeSlotID)
	assert.Equal(t, "slot-1", *got.TimeSlotID)
}

func TestReservationResponse_FromModel(t *testing.T) {
	number, start := "T4", "18:00"
	slotID := "slot-1"
	date, _ := schedule.ParseDate("2024-06-01")

	var res dto.ReservationResponse
	res.FromModel(model.Reservation{
		ID:              "r-1",
		TableID:         "table-1",
		TimeSlotID:      &slotID,
		ReservationDate: date,
		StartTime:       "18:00",
		EndTime:         "20:00",
		TableNumber:     &number,
		SlotStartTime:   &start,
	})

	assert.Equal(t, "2024-06-01", res.ReservationDate)
	assert.Equal(t, "18:00 - 20:00", res.TimeRange)
	require.NotNil(t, res.Table)
	assert.Equal(t, "T4", res.Table.TableNumber)
	require.NotNil(t, res.TimeSlot)
	assert.Equal(t, "slot-1", res.TimeSlot.ID)
	assert.Equal(t, "r-1", res.EventKey())
}

func TestReservationFilter(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		var filter dto.ReservationFilter

		err := filter.FromRequest(httptest.NewRequest("GET", "/reservations?status=lost", nil))

		require.Error(t, err)
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})

	t.Run("customer scope overrides requested customer", func(t *testing.T) {
		var filter dto.ReservationFilter

		require.NoError(t, filter.FromRequest(httptest.NewRequest("GET", "/reservations?status=confirmed&customer=c-2&date=2024-06-01", nil)))

		group := filter.Scope(actor.Customer("c-1")).ToFilterGroup()

		require.Len(t, group.Filters, 3)
		assert.Equal(t, "c-1", group.Filters[0].(gDto.Filter).Value)
		assert.Equal(t, gDto.FilterGroupOperatorAnd, group.Operator)
	})

	t.Run("staff keeps requested customer", func(t *testing.T) {
		filter := dto.ReservationFilter{Customer: "c-2"}

		group := filter.Scope(actor.Staff("s-1")).ToFilterGroup()

		require.Len(t, group.Filters, 1)
		assert.Equal(t, "c-2", group.Filters[0].(gDto.Filter).Value)
	})
}
