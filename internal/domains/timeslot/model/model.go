package model

import (
	"time"

	"dinebook/shared/model"
	"dinebook/shared/schedule"

	"github.com/lib/pq"
)

const (
	TableName  = "time_slots"
	EntityName = "time slot"

	FieldID             = "id"
	FieldDate           = "date"
	FieldStartTime      = "start_time"
	FieldEndTime        = "end_time"
	FieldStartMinute    = "start_minute"
	FieldEndMinute      = "end_minute"
	FieldDuration       = "duration"
	FieldMaxPartySize   = "max_party_size"
	FieldLocation       = "location"
	FieldArea           = "area"
	FieldSpecialPricing = "special_pricing"
	FieldIsAvailable    = "is_available"
	FieldFeatures       = "features"
	FieldSpecialNotes   = "special_notes"
)

type TimeSlot struct {
	ID             string         `db:"id"`
	Date           time.Time      `db:"date"`
	StartTime      string         `db:"start_time"`
	EndTime        string         `db:"end_time"`
	StartMinute    int            `db:"start_minute"`
	EndMinute      int            `db:"end_minute"`
	Duration       int            `db:"duration"`
	MaxPartySize   int            `db:"max_party_size"`
	Location       string         `db:"location"`
	Area           string         `db:"area"`
	SpecialPricing *float64       `db:"special_pricing"`
	IsAvailable    bool           `db:"is_available"`
	Features       pq.StringArray `db:"features"`
	SpecialNotes   string         `db:"special_notes"`
	model.Metadata
}

func (t TimeSlot) Window() (schedule.Window, error) {
	return schedule.ParseWindow(t.StartTime, t.EndTime)
}

// SetWindow stores w in both the rendered and the minute columns.
func (t *TimeSlot) SetWindow(w schedule.Window) {
	t.StartTime = w.Start.String()
	t.EndTime = w.End.String()
	t.StartMinute = w.Start.Minutes()
	t.EndMinute = w.End.Minutes()
}
