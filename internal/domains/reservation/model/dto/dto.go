package dto

import (
	"time"

	"dinebook/internal/domains/reservation/lifecycle"
	"dinebook/internal/domains/reservation/model"
	"dinebook/shared"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	gModel "dinebook/shared/model"
	"dinebook/shared/schedule"
	"dinebook/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	TimeSlotID      string `json:"time_slot_id"     validate:"required,uuid"`
	TableID         string `json:"table_id"         validate:"required,uuid"`
	PartySize       int    `json:"party_size"       validate:"required,min=1,max=20"`
	ReservationDate string `json:"reservation_date" validate:"omitempty,date"`
	StartTime       string `json:"start_time"       validate:"required,clock"`
	EndTime         string `json:"end_time"         validate:"required,clock"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=500"`
	CustomerNotes   string `json:"customer_notes"   validate:"omitempty,max=500"`
	IsWalkIn        bool   `json:"is_walk_in"`
	// CustomerID lets staff book on behalf of a customer.
	CustomerID string `json:"customer_id" validate:"omitempty,uuid"`
}

// Schedule parses the requested day and window. A walk-in without a date is
// booked for today.
func (c *CreateReservationRequest) Schedule() (time.Time, schedule.Window, error) {
	day := c.ReservationDate
	if day == "" {
		if !c.IsWalkIn {
			return time.Time{}, schedule.Window{}, failure.BadRequestFromString("reservation_date is required") //nolint:wrapcheck
		}

		day = timezone.Today()
	}

	date, err := schedule.ParseDate(day)
	if err != nil {
		return time.Time{}, schedule.Window{}, err
	}

	window, err := schedule.ParseWindow(c.StartTime, c.EndTime)
	if err != nil {
		return time.Time{}, schedule.Window{}, err
	}

	return date, window, nil
}

// ToModel builds a pending reservation carrying the price snapshot.
func (c *CreateReservationRequest) ToModel(customerID, user string, date time.Time, window schedule.Window, price model.PriceSnapshot) model.Reservation {
	slotID := c.TimeSlotID

	reservation := model.Reservation{
		ID:                      uuid.NewString(),
		CustomerID:              customerID,
		TimeSlotID:              &slotID,
		TableID:                 c.TableID,
		PartySize:               c.PartySize,
		ReservationDate:         date,
		Status:                  model.StatusPending,
		SpecialRequests:         c.SpecialRequests,
		CustomerNotes:           c.CustomerNotes,
		IsWalkIn:                c.IsWalkIn,
		PricePerPersonAtBooking: price.PricePerPerson,
		TotalPrice:              price.Total,
		Metadata:                gModel.NewMetadata(user, timezone.Now()),
	}
	reservation.SetWindow(window)

	return reservation
}

// UpdateReservationRequest is a partial update. Which fields an actor may
// send is decided by lifecycle.Authorize, not by validation.
type UpdateReservationRequest struct {
	Status          *string `json:"status"           validate:"omitempty,oneof=pending confirmed seated completed cancelled no-show"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=500"`
	CustomerNotes   *string `json:"customer_notes"   validate:"omitempty,max=500"`
	StaffNotes      *string `json:"staff_notes"      validate:"omitempty,max=500"`
	TableID         *string `json:"table_id"         validate:"omitempty,uuid"`
	ReservationDate *string `json:"reservation_date" validate:"omitempty,date"`
	StartTime       *string `json:"start_time"       validate:"omitempty,clock"`
	EndTime         *string `json:"end_time"         validate:"omitempty,clock"`
}

func (u *UpdateReservationRequest) ToChange() lifecycle.Change {
	return lifecycle.Change{
		Status:          u.Status,
		SpecialRequests: u.SpecialRequests,
		CustomerNotes:   u.CustomerNotes,
		StaffNotes:      u.StaffNotes,
		TableID:         u.TableID,
		ReservationDate: u.ReservationDate,
		StartTime:       u.StartTime,
		EndTime:         u.EndTime,
	}
}

type PriceSnapshotResponse struct {
	PricePerPersonAtBooking float64 `json:"price_per_person_at_booking"`
	TotalPrice              float64 `json:"total_price"`
}

type TableSummary struct {
	ID          string `json:"id"`
	TableNumber string `json:"table_number"`
	Capacity    int    `json:"capacity"`
	Location    string `json:"location"`
	Area        string `json:"area"`
}

type TimeSlotSummary struct {
	ID             string   `json:"id"`
	Date           string   `json:"date"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	Location       string   `json:"location"`
	Area           string   `json:"area"`
	SpecialPricing *float64 `json:"special_pricing,omitempty"`
}

type ReservationResponse struct {
	ID              string                `json:"id"`
	CustomerID      string                `json:"customer_id"`
	TimeSlotID      *string               `json:"time_slot_id"`
	TableID         string                `json:"table_id"`
	PartySize       int                   `json:"party_size"`
	ReservationDate string                `json:"reservation_date"`
	StartTime       string                `json:"start_time"`
	EndTime         string                `json:"end_time"`
	TimeRange       string                `json:"time_range"`
	Status          string                `json:"status"`
	SpecialRequests string                `json:"special_requests,omitempty"`
	CustomerNotes   string                `json:"customer_notes,omitempty"`
	StaffNotes      string                `json:"staff_notes,omitempty"`
	IsWalkIn        bool                  `json:"is_walk_in"`
	PriceSnapshot   PriceSnapshotResponse `json:"price_snapshot"`
	Table           *TableSummary         `json:"table,omitempty"`
	TimeSlot        *TimeSlotSummary      `json:"time_slot,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.TimeSlotID = model.TimeSlotID
	r.TableID = model.TableID
	r.PartySize = model.PartySize
	r.ReservationDate = schedule.DateKey(model.ReservationDate)
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.TimeRange = model.StartTime + " - " + model.EndTime
	r.Status = model.Status
	r.SpecialRequests = model.SpecialRequests
	r.CustomerNotes = model.CustomerNotes
	r.StaffNotes = model.StaffNotes
	r.IsWalkIn = model.IsWalkIn
	r.PriceSnapshot = PriceSnapshotResponse{
		PricePerPersonAtBooking: model.PricePerPersonAtBooking,
		TotalPrice:              model.TotalPrice,
	}
	r.Metadata.FromModel(model.Metadata)

	if model.TableNumber != nil {
		r.Table = &TableSummary{
			ID:          model.TableID,
			TableNumber: *model.TableNumber,
			Capacity:    deref(model.TableCapacity),
			Location:    deref(model.TableLocation),
			Area:        deref(model.TableArea),
		}
	}

	if model.TimeSlotID != nil && model.SlotStartTime != nil {
		r.TimeSlot = &TimeSlotSummary{
			ID:             *model.TimeSlotID,
			StartTime:      *model.SlotStartTime,
			EndTime:        deref(model.SlotEndTime),
			Location:       deref(model.SlotLocation),
			Area:           deref(model.SlotArea),
			SpecialPricing: model.SlotSpecialPricing,
		}

		if model.SlotDate != nil {
			r.TimeSlot.Date = schedule.DateKey(*model.SlotDate)
		}
	}
}

// EventKey keeps every event of one reservation on one partition.
func (r ReservationResponse) EventKey() string {
	return r.ID
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

func deref[T any](value *T) T {
	var zero T
	if value == nil {
		return zero
	}

	return *value
}
