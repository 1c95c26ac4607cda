package model

import (
	"math"
	"time"

	"dinebook/shared/model"
	"dinebook/shared/schedule"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID                      = "id"
	FieldCustomerID              = "customer_id"
	FieldTimeSlotID              = "time_slot_id"
	FieldTableID                 = "table_id"
	FieldPartySize               = "party_size"
	FieldReservationDate         = "reservation_date"
	FieldStartTime               = "start_time"
	FieldEndTime                 = "end_time"
	FieldStartMinute             = "start_minute"
	FieldEndMinute               = "end_minute"
	FieldStatus                  = "status"
	FieldSpecialRequests         = "special_requests"
	FieldCustomerNotes           = "customer_notes"
	FieldStaffNotes              = "staff_notes"
	FieldIsWalkIn                = "is_walk_in"
	FieldPricePerPersonAtBooking = "price_per_person_at_booking"
	FieldTotalPrice              = "total_price"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusSeated    = "seated"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

// Statuses lists every status in lifecycle order.
var Statuses = []string{StatusPending, StatusConfirmed, StatusSeated, StatusCompleted, StatusCancelled, StatusNoShow}

// Reservation carries its own date and window, copied at booking time, so
// edits to the referenced slot never move it. The table and slot columns
// at the bottom are read through GetJoinQuery and never written.
type Reservation struct {
	ID                      string    `db:"id"`
	CustomerID              string    `db:"customer_id"`
	TimeSlotID              *string   `db:"time_slot_id"`
	TableID                 string    `db:"table_id"`
	PartySize               int       `db:"party_size"`
	ReservationDate         time.Time `db:"reservation_date"`
	StartTime               string    `db:"start_time"`
	EndTime                 string    `db:"end_time"`
	StartMinute             int       `db:"start_minute"`
	EndMinute               int       `db:"end_minute"`
	Status                  string    `db:"status"`
	SpecialRequests         string    `db:"special_requests"`
	CustomerNotes           string    `db:"customer_notes"`
	StaffNotes              string    `db:"staff_notes"`
	IsWalkIn                bool      `db:"is_walk_in"`
	PricePerPersonAtBooking float64   `db:"price_per_person_at_booking"`
	TotalPrice              float64   `db:"total_price"`
	model.Metadata

	TableNumber        *string    `column:"table_number"    db:"table_number"         table:"restaurant_tables"`
	TableCapacity      *int       `column:"capacity"        db:"table_capacity"       table:"restaurant_tables"`
	TableLocation      *string    `column:"location"        db:"table_location"       table:"restaurant_tables"`
	TableArea          *string    `column:"area"            db:"table_area"           table:"restaurant_tables"`
	SlotDate           *time.Time `column:"date"            db:"slot_date"            table:"time_slots"`
	SlotStartTime      *string    `column:"start_time"      db:"slot_start_time"      table:"time_slots"`
	SlotEndTime        *string    `column:"end_time"        db:"slot_end_time"        table:"time_slots"`
	SlotLocation       *string    `column:"location"        db:"slot_location"        table:"time_slots"`
	SlotArea           *string    `column:"area"            db:"slot_area"            table:"time_slots"`
	SlotSpecialPricing *float64   `column:"special_pricing" db:"slot_special_pricing" table:"time_slots"`
}

// GetJoinQuery pulls the table and slot summaries. The slot join is outer
// because deleting a slot clears time_slot_id.
func (Reservation) GetJoinQuery() string {
	return "INNER JOIN restaurant_tables ON restaurant_tables.id = reservations.table_id " +
		"LEFT JOIN time_slots ON time_slots.id = reservations.time_slot_id"
}

// Blocks reports whether the reservation still holds its table.
func (r Reservation) Blocks() bool {
	return IsBlocking(r.Status)
}

func (r Reservation) Window() (schedule.Window, error) {
	return schedule.ParseWindow(r.StartTime, r.EndTime)
}

// SetWindow stores w in both the rendered and the minute columns.
func (r *Reservation) SetWindow(w schedule.Window) {
	r.StartTime = w.Start.String()
	r.EndTime = w.End.String()
	r.StartMinute = w.Start.Minutes()
	r.EndMinute = w.End.Minutes()
}

// IsBlocking is false for the statuses that release a table.
func IsBlocking(status string) bool {
	return status != StatusCancelled && status != StatusNoShow
}

// PriceSnapshot is captured once when a reservation is booked.
type PriceSnapshot struct {
	PricePerPerson float64
	Total          float64
}

// NewPriceSnapshot prefers the slot's special pricing over the table rate.
// Both amounts are rounded to cents.
func NewPriceSnapshot(specialPricing *float64, tablePricePerPerson float64, partySize int) PriceSnapshot {
	price := tablePricePerPerson
	if specialPricing != nil {
		price = *specialPricing
	}

	price = roundCents(price)

	return PriceSnapshot{
		PricePerPerson: price,
		Total:          roundCents(price * float64(partySize)),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
