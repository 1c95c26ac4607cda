// Package actor identifies who is performing a request.
package actor

import (
	"context"
	"dinebook/shared/constant"
	"dinebook/shared/failure"
)

type Role string

const (
	RoleCustomer Role = constant.RoleCustomer
	RoleStaff    Role = constant.RoleStaff
)

// Actor is either a Customer or Staff; construct it with those functions.
type Actor struct {
	ID   string
	Role Role
}

func Customer(id string) Actor {
	return Actor{ID: id, Role: RoleCustomer}
}

func Staff(id string) Actor {
	return Actor{ID: id, Role: RoleStaff}
}

func (a Actor) IsStaff() bool {
	return a.Role == RoleStaff
}

func (a Actor) IsCustomer() bool {
	return a.Role == RoleCustomer
}

// Owns reports whether the actor is the given owner.
func (a Actor) Owns(ownerID string) bool {
	return a.ID != "" && a.ID == ownerID
}

// FromContext reads the actor placed on the context by the auth middleware.
// Unknown roles are rejected rather than downgraded.
func FromContext(ctx context.Context) (Actor, error) {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if id == "" {
		return Actor{}, failure.Unauthorized("missing authenticated user") //nolint:wrapcheck
	}

	switch Role(role) {
	case RoleStaff:
		return Staff(id), nil
	case RoleCustomer:
		return Customer(id), nil
	default:
		return Actor{}, failure.Forbidden("unknown role " + role) //nolint:wrapcheck
	}
}

// WithContext places the actor on ctx the same way the auth middleware does.
func WithContext(ctx context.Context, a Actor) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, a.ID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, string(a.Role))
}
