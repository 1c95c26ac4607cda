package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dinebook/internal/domains/reservation/lifecycle"
	"dinebook/internal/domains/reservation/model"
	"dinebook/shared/actor"
	"dinebook/shared/failure"
)

func ptr(s string) *string {
	return &s
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusSeated, false},
		{model.StatusConfirmed, model.StatusSeated, true},
		{model.StatusConfirmed, model.StatusNoShow, true},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusPending, false},
		{model.StatusSeated, model.StatusCompleted, true},
		{model.StatusSeated, model.StatusCancelled, false},
		{model.StatusCompleted, model.StatusPending, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
		{model.StatusNoShow, model.StatusSeated, false},
		{model.StatusSeated, model.StatusSeated, true},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, lifecycle.CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, lifecycle.IsTerminal(model.StatusCompleted))
	assert.True(t, lifecycle.IsTerminal(model.StatusCancelled))
	assert.True(t, lifecycle.IsTerminal(model.StatusNoShow))
	assert.False(t, lifecycle.IsTerminal(model.StatusPending))
	assert.False(t, lifecycle.IsTerminal(model.StatusSeated))
}

func TestReactivates(t *testing.T) {
	assert.True(t, lifecycle.Reactivates(model.StatusCancelled, model.StatusConfirmed))
	assert.True(t, lifecycle.Reactivates(model.StatusNoShow, model.StatusPending))
	assert.False(t, lifecycle.Reactivates(model.StatusCancelled, model.StatusNoShow))
	assert.False(t, lifecycle.Reactivates(model.StatusPending, model.StatusConfirmed))
}

func TestAuthorize(t *testing.T) {
	owner := actor.Customer("c-1")
	stranger := actor.Customer("c-2")
	staff := actor.Staff("s-1")

	reservation := func(status string) model.Reservation {
		return model.Reservation{ID: "r-1", CustomerID: "c-1", Status: status}
	}

	tests := []struct {
		name     string
		who      actor.Actor
		current  model.Reservation
		change   lifecycle.Change
		policy   lifecycle.Policy
		wantKind failure.Kind
	}{
		{name: "owner cancels pending", who: owner, current: reservation(model.StatusPending), change: lifecycle.Change{Status: ptr(model.StatusCancelled)}},
		{name: "owner cancels confirmed", who: owner, current: reservation(model.StatusConfirmed), change: lifecycle.Change{Status: ptr(model.StatusCancelled)}},
		{
			name: "owner cannot cancel seated", who: owner, current: reservation(model.StatusSeated),
			change: lifecycle.Change{Status: ptr(model.StatusCancelled)}, wantKind: failure.KindValidation,
		},
		{
			name: "owner cannot cancel twice", who: owner, current: reservation(model.StatusCancelled),
			change: lifecycle.Change{Status: ptr(model.StatusCancelled)}, wantKind: failure.KindValidation,
		},
		{
			name: "owner cannot confirm", who: owner, current: reservation(model.StatusPending),
			change: lifecycle.Change{Status: ptr(model.StatusConfirmed)}, wantKind: failure.KindAuthorization,
		},
		{
			name: "owner edits notes in any status", who: owner, current: reservation(model.StatusCompleted),
			change: lifecycle.Change{SpecialRequests: ptr("high chair"), CustomerNotes: ptr("anniversary")},
		},
		{
			name: "owner cannot write staff notes", who: owner, current: reservation(model.StatusPending),
			change: lifecycle.Change{StaffNotes: ptr("vip")}, wantKind: failure.KindAuthorization,
		},
		{
			name: "owner cannot reschedule", who: owner, current: reservation(model.StatusPending),
			change: lifecycle.Change{StartTime: ptr("19:00")}, wantKind: failure.KindAuthorization,
		},
		{
			name: "stranger is refused", who: stranger, current: reservation(model.StatusPending),
			change: lifecycle.Change{Status: ptr(model.StatusCancelled)}, wantKind: failure.KindAuthorization,
		},
		{
			name: "stranger cannot edit notes", who: stranger, current: reservation(model.StatusPending),
			change: lifecycle.Change{CustomerNotes: ptr("hi")}, wantKind: failure.KindAuthorization,
		},
		{name: "staff confirms", who: staff, current: reservation(model.StatusPending), change: lifecycle.Change{Status: ptr(model.StatusConfirmed), StaffNotes: ptr("called")}},
		{name: "staff forces backwards by default", who: staff, current: reservation(model.StatusCompleted), change: lifecycle.Change{Status: ptr(model.StatusPending)}},
		{
			name: "staff blocked backwards when strict", who: staff, current: reservation(model.StatusCompleted),
			change: lifecycle.Change{Status: ptr(model.StatusPending)}, policy: lifecycle.Policy{StrictTransitions: true}, wantKind: failure.KindValidation,
		},
		{
			name: "staff forward when strict", who: staff, current: reservation(model.StatusConfirmed),
			change: lifecycle.Change{Status: ptr(model.StatusSeated)}, policy: lifecycle.Policy{StrictTransitions: true},
		},
		{
			name: "staff unknown status", who: staff, current: reservation(model.StatusPending),
			change: lifecycle.Change{Status: ptr("eaten")}, wantKind: failure.KindValidation,
		},
		{name: "staff reschedules", who: staff, current: reservation(model.StatusConfirmed), change: lifecycle.Change{TableID: ptr("t-2"), StartTime: ptr("20:00")}},
		{
			name: "staff cannot edit customer notes", who: staff, current: reservation(model.StatusPending),
			change: lifecycle.Change{CustomerNotes: ptr("x")}, wantKind: failure.KindAuthorization,
		},
		{
			name: "unknown role", who: actor.Actor{ID: "x", Role: "guest"}, current: reservation(model.StatusPending),
			change: lifecycle.Change{CustomerNotes: ptr("x")}, wantKind: failure.KindAuthorization,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lifecycle.Authorize(tt.who, tt.current, tt.change, tt.policy)

			if tt.wantKind == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantKind, failure.GetKind(err))
		})
	}
}

func TestChange(t *testing.T) {
	assert.True(t, lifecycle.Change{}.IsEmpty())
	assert.False(t, lifecycle.Change{StaffNotes: ptr("")}.IsEmpty())
	assert.True(t, lifecycle.Change{ReservationDate: ptr("2024-06-02")}.Reschedules())
	assert.False(t, lifecycle.Change{Status: ptr(model.StatusSeated)}.Reschedules())
}
