package dto

import (
	"dinebook/internal/domains/timeslot/model"
	"dinebook/shared"
	gDto "dinebook/shared/dto"
	gModel "dinebook/shared/model"
	"dinebook/shared/schedule"
	"dinebook/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateTimeSlotRequest struct {
	Date           string   `json:"date"            validate:"required,date"`
	StartTime      string   `json:"start_time"      validate:"required,clock"`
	EndTime        string   `json:"end_time"        validate:"required,clock"`
	Duration       int      `json:"duration"        validate:"required,min=30,max=240"`
	MaxPartySize   int      `json:"max_party_size"  validate:"required,min=1,max=20"`
	Location       string   `json:"location"        validate:"required,oneof=indoor outdoor private-dining bar window-view quiet-area"`
	Area           string   `json:"area"            validate:"required,max=100"`
	SpecialPricing *float64 `json:"special_pricing" validate:"omitempty,min=0"`
	SpecialNotes   string   `json:"special_notes"   validate:"omitempty,max=500"`
	Features       []string `json:"features"        validate:"omitempty,dive,max=50"`
	IsAvailable    *bool    `json:"is_available"    validate:"omitempty"`
}

// ToModel normalizes the times and rejects a window whose start is not before its end.
func (c *CreateTimeSlotRequest) ToModel(user string) (model.TimeSlot, error) {
	date, err := schedule.ParseDate(c.Date)
	if err != nil {
		return model.TimeSlot{}, err
	}

	window, err := schedule.ParseWindow(c.StartTime, c.EndTime)
	if err != nil {
		return model.TimeSlot{}, err
	}

	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	features := pq.StringArray{}
	if len(c.Features) > 0 {
		features = pq.StringArray(c.Features)
	}

	slot := model.TimeSlot{
		ID:             uuid.NewString(),
		Date:           date,
		Duration:       c.Duration,
		MaxPartySize:   c.MaxPartySize,
		Location:       c.Location,
		Area:           c.Area,
		SpecialPricing: c.SpecialPricing,
		IsAvailable:    available,
		Features:       features,
		SpecialNotes:   c.SpecialNotes,
		Metadata:       gModel.NewMetadata(user, timezone.Now()),
	}
	slot.SetWindow(window)

	return slot, nil
}

// UpdateTimeSlotRequest is merged onto the stored slot before it is checked,
// so a partial window change is validated against the other stored end.
type UpdateTimeSlotRequest struct {
	Date           string         `db:"date"            json:"date"            validate:"omitempty,date"`
	StartTime      string         `db:"-"               json:"start_time"      validate:"omitempty,clock"`
	EndTime        string         `db:"-"               json:"end_time"        validate:"omitempty,clock"`
	Duration       *int           `db:"duration"        json:"duration"        validate:"omitempty,min=30,max=240"`
	MaxPartySize   *int           `db:"max_party_size"  json:"max_party_size"  validate:"omitempty,min=1,max=20"`
	Location       string         `db:"location"        json:"location"        validate:"omitempty,oneof=indoor outdoor private-dining bar window-view quiet-area"`
	Area           string         `db:"area"            json:"area"            validate:"omitempty,max=100"`
	SpecialPricing *float64       `db:"special_pricing" json:"special_pricing" validate:"omitempty,min=0"`
	SpecialNotes   *string        `db:"special_notes"   json:"special_notes"   validate:"omitempty,max=500"`
	Features       pq.StringArray `db:"features"        json:"features"        validate:"omitempty,dive,max=50"`
	IsAvailable    *bool          `db:"is_available"    json:"is_available"    validate:"omitempty"`
}

// Apply returns current with the set fields of u written over it.
func (u *UpdateTimeSlotRequest) Apply(current model.TimeSlot) (model.TimeSlot, error) {
	next := current

	if u.Date != "" {
		date, err := schedule.ParseDate(u.Date)
		if err != nil {
			return current, err
		}

		next.Date = date
	}

	start, end := current.StartTime, current.EndTime
	if u.StartTime != "" {
		start = u.StartTime
	}

	if u.EndTime != "" {
		end = u.EndTime
	}

	window, err := schedule.ParseWindow(start, end)
	if err != nil {
		return current, err
	}

	next.SetWindow(window)

	if u.Duration != nil {
		next.Duration = *u.Duration
	}

	if u.MaxPartySize != nil {
		next.MaxPartySize = *u.MaxPartySize
	}

	if u.Location != "" {
		next.Location = u.Location
	}

	if u.Area != "" {
		next.Area = u.Area
	}

	if u.SpecialPricing != nil {
		next.SpecialPricing = u.SpecialPricing
	}

	if u.SpecialNotes != nil {
		next.SpecialNotes = *u.SpecialNotes
	}

	if u.Features != nil {
		next.Features = u.Features
	}

	if u.IsAvailable != nil {
		next.IsAvailable = *u.IsAvailable
	}

	return next, nil
}

type TimeSlotResponse struct {
	ID             string   `json:"id"`
	Date           string   `json:"date"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	TimeRange      string   `json:"time_range"`
	Duration       int      `json:"duration"`
	MaxPartySize   int      `json:"max_party_size"`
	Location       string   `json:"location"`
	Area           string   `json:"area"`
	SpecialPricing *float64 `json:"special_pricing,omitempty"`
	IsAvailable    bool     `json:"is_available"`
	Features       []string `json:"features"`
	SpecialNotes   string   `json:"special_notes,omitempty"`
	gDto.Metadata
}

func (r *TimeSlotResponse) FromModel(model model.TimeSlot) {
	r.ID = model.ID
	r.Date = schedule.DateKey(model.Date)
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.TimeRange = model.StartTime + " - " + model.EndTime
	r.Duration = model.Duration
	r.MaxPartySize = model.MaxPartySize
	r.Location = model.Location
	r.Area = model.Area
	r.SpecialPricing = model.SpecialPricing
	r.IsAvailable = model.IsAvailable
	r.Features = []string(model.Features)
	r.SpecialNotes = model.SpecialNotes
	r.Metadata.FromModel(model.Metadata)

	if r.Features == nil {
		r.Features = []string{}
	}
}

// EventKey partitions time slot events by slot.
func (r TimeSlotResponse) EventKey() string {
	return r.ID
}

type GetTimeSlotsResponse struct {
	TimeSlots []TimeSlotResponse `json:"time_slots"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetTimeSlotsResponse) FromModels(models []model.TimeSlot, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.TimeSlots = make([]TimeSlotResponse, len(models))
	for i, mod := range models {
		r.TimeSlots[i].FromModel(mod)
	}
}
