// Package conflict decides whether a candidate booking collides with the
// reservations already holding a table.
//
// Windows are half-open, so a reservation ending at 19:00 and another
// starting at 19:00 do not conflict. Cancelled and no-show reservations
// never block. Malformed times are a validation error, never "no conflict".
package conflict

import (
	"fmt"
	"time"

	"dinebook/internal/domains/reservation/model"
	"dinebook/shared/failure"
	"dinebook/shared/schedule"
)

// Candidate is the booking being checked. ExcludeID skips the reservation
// that is being moved, so it does not collide with itself.
type Candidate struct {
	TableID   string
	Date      time.Time
	StartTime string
	EndTime   string
	ExcludeID string
}

// Find returns the first existing reservation that overlaps c, or nil.
func Find(existing []model.Reservation, c Candidate) (*model.Reservation, error) {
	window, err := schedule.ParseWindow(c.StartTime, c.EndTime)
	if err != nil {
		return nil, err
	}

	for i := range existing {
		other := existing[i]

		if other.ID == c.ExcludeID && c.ExcludeID != "" {
			continue
		}

		if other.TableID != c.TableID || !schedule.SameDay(other.ReservationDate, c.Date) || !other.Blocks() {
			continue
		}

		otherWindow, err := other.Window()
		if err != nil {
			return nil, failure.BadRequestFromString(fmt.Sprintf("reservation %s has a malformed window: %s", other.ID, err)) //nolint:wrapcheck
		}

		if window.Overlaps(otherWindow) {
			return &other, nil
		}
	}

	return nil, nil
}

// HasConflict reports whether any existing reservation overlaps the candidate
// on the same table and date.
func HasConflict(existing []model.Reservation, tableID string, date time.Time, start, end, excludeID string) (bool, error) {
	clash, err := Find(existing, Candidate{
		TableID:   tableID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		ExcludeID: excludeID,
	})
	if err != nil {
		return false, err
	}

	return clash != nil, nil
}

// Check is Find with the SchedulingConflict failure already built.
func Check(existing []model.Reservation, c Candidate) error {
	clash, err := Find(existing, c)
	if err != nil {
		return err
	}

	if clash != nil {
		return failure.SchedulingConflict(fmt.Sprintf("table already reserved from %s to %s", clash.StartTime, clash.EndTime)) //nolint:wrapcheck
	}

	return nil
}
