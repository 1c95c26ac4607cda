package event

import (
	"errors"
	"net/http"

	"dinebook/infras/otel"
	"dinebook/shared/constant"
	"dinebook/shared/notifier"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	hub  *notifier.Hub
	otel otel.Otel
}

func New(hub *notifier.Hub, otel otel.Otel) Handler {
	return Handler{
		hub:  hub,
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/events", func(routerGroup chi.Router) {
		routerGroup.Get("/ws", handler.Subscribe)
	})
}

// Subscribe streams reservation and time slot events over a websocket.
// Each frame is {"event": ..., "payload": ..., "at": ...}. Staff only; the
// token may also arrive as ?access_token= or "Sec-WebSocket-Protocol: bearer, <token>".
// @Summary Subscribe to live events
// @Tags Event
// @Security BearerAuth
// @Param access_token query string false "Access token for browser clients"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/events/ws [get]
func (handler *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Subscribe")
	scope.SetAttribute("ws.subscribers", handler.hub.Subscribers())
	scope.End()

	if err := handler.hub.ServeWS(w, r); err != nil {
		if errors.Is(err, notifier.ErrHubClosed) {
			return
		}

		// The upgrader has already written the HTTP error.
		log.Warn().Err(err).Msg("event subscription failed")
	}
}
