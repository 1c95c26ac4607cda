// Package lifecycle holds the reservation status machine and the table of
// which actor may change which field.
//
//	pending   -> confirmed, cancelled
//	confirmed -> seated, cancelled, no-show
//	seated    -> completed
//
// completed, cancelled and no-show are terminal. Staff may force any
// transition unless the policy is strict.
package lifecycle

import (
	"fmt"
	"slices"
	"strings"

	"dinebook/internal/domains/reservation/model"
	"dinebook/shared/actor"
	"dinebook/shared/failure"
)

var transitions = map[string][]string{
	model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusSeated, model.StatusCancelled, model.StatusNoShow},
	model.StatusSeated:    {model.StatusCompleted},
}

// Policy configures staff transitions.
type Policy struct {
	StrictTransitions bool
}

// Change is a requested mutation. Nil fields are left alone.
type Change struct {
	Status          *string
	SpecialRequests *string
	CustomerNotes   *string
	StaffNotes      *string
	TableID         *string
	ReservationDate *string
	StartTime       *string
	EndTime         *string
}

func (c Change) IsEmpty() bool {
	return c.Status == nil && c.SpecialRequests == nil && c.CustomerNotes == nil && c.StaffNotes == nil && !c.Reschedules()
}

// Reschedules reports whether the change moves the reservation.
func (c Change) Reschedules() bool {
	return c.TableID != nil || c.ReservationDate != nil || c.StartTime != nil || c.EndTime != nil
}

// CanTransition follows the forward machine. Staying in place is allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}

	return slices.Contains(transitions[from], to)
}

func IsTerminal(status string) bool {
	_, ok := transitions[status]

	return !ok
}

// Reactivates reports whether moving from -> to puts a released reservation
// back on its table.
func Reactivates(from, to string) bool {
	return !model.IsBlocking(from) && model.IsBlocking(to)
}

// Authorize checks c against the permission table:
//
//	customer, owner      status->cancelled (from pending/confirmed), special_requests, customer_notes
//	staff                status->any (subject to policy), staff_notes, reschedule
//	customer, non-owner  nothing
func Authorize(who actor.Actor, current model.Reservation, c Change, policy Policy) error {
	switch {
	case who.IsStaff():
		return authorizeStaff(current, c, policy)
	case who.IsCustomer():
		return authorizeCustomer(who, current, c)
	default:
		return failure.ForbiddenError
	}
}

func authorizeCustomer(who actor.Actor, current model.Reservation, c Change) error {
	if !who.Owns(current.CustomerID) {
		return failure.Forbidden("not authorized to modify this reservation") //nolint:wrapcheck
	}

	denied := []string{}
	if c.StaffNotes != nil {
		denied = append(denied, model.FieldStaffNotes)
	}

	if c.Reschedules() {
		denied = append(denied, "schedule")
	}

	if c.Status != nil && *c.Status != model.StatusCancelled {
		denied = append(denied, model.FieldStatus+"="+*c.Status)
	}

	if len(denied) > 0 {
		return failure.Forbidden("customers may not change " + strings.Join(denied, ", ")) //nolint:wrapcheck
	}

	if c.Status != nil && current.Status != model.StatusPending && current.Status != model.StatusConfirmed {
		return failure.BadRequestFromString(fmt.Sprintf("a %s reservation can no longer be cancelled", current.Status)) //nolint:wrapcheck
	}

	return nil
}

func authorizeStaff(current model.Reservation, c Change, policy Policy) error {
	denied := []string{}
	if c.SpecialRequests != nil {
		denied = append(denied, model.FieldSpecialRequests)
	}

	if c.CustomerNotes != nil {
		denied = append(denied, model.FieldCustomerNotes)
	}

	if len(denied) > 0 {
		return failure.Forbidden("staff may not change " + strings.Join(denied, ", ")) //nolint:wrapcheck
	}

	if c.Status == nil {
		return nil
	}

	if !slices.Contains(model.Statuses, *c.Status) {
		return failure.BadRequestFromString("unknown status " + *c.Status) //nolint:wrapcheck
	}

	if policy.StrictTransitions && !CanTransition(current.Status, *c.Status) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot move a reservation from %s to %s", current.Status, *c.Status)) //nolint:wrapcheck
	}

	return nil
}
