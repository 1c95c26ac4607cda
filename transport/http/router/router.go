package router

import (
	"dinebook/internal/handlers/auth"
	"dinebook/internal/handlers/event"
	"dinebook/internal/handlers/reservation"
	"dinebook/internal/handlers/review"
	"dinebook/internal/handlers/table"
	"dinebook/internal/handlers/timeslot"
	"dinebook/internal/handlers/user"
	"dinebook/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Table       table.Handler
	TimeSlot    timeslot.Handler
	Reservation reservation.Handler
	Review      review.Handler
	Event       event.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

// SetupRoutes mounts /v1. Every route passes through the API key, JWT and
// role checks; public routes are marked skip in permissions.json.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.TimeSlot.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Event.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
