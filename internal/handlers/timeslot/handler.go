package timeslot

import (
	"net/http"

	"dinebook/infras/otel"
	"dinebook/internal/domains/timeslot/model/dto"
	"dinebook/internal/domains/timeslot/service"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/validator"
	"dinebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.TimeSlot
	otel    otel.Otel
}

func New(service service.TimeSlot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/timeslots", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTimeSlot)
		routerGroup.Get("/", handler.GetTimeSlots)
		routerGroup.Get("/{id}", handler.GetTimeSlotByID)
		routerGroup.Put("/{id}", handler.UpdateTimeSlot)
		routerGroup.Delete("/{id}", handler.DeleteTimeSlot)
	})
}

// CreateTimeSlot handles the creation of a bookable time slot.
// @Summary Create a time slot @Staff
// @Description Available slots at the same location and date may not overlap.
// @Tags TimeSlot
// @Accept json
// @Produce json
// @Param request body dto.CreateTimeSlotRequest true "Create Time Slot Request"
// @Success 201 {object} dto.TimeSlotResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/timeslots [post]
// @Security BearerAuth
func (handler *Handler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTimeSlot")
	defer scope.End()

	req := dto.CreateTimeSlotRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create time slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetTimeSlots lists available time slots.
// @Summary List available time slots
// @Description Only available slots are listed, sorted by date then start time.
// @Tags TimeSlot
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param location query string false "Location"
// @Param party_size query int false "Party size the slot must accept"
// @Param area query string false "Area contains (case-insensitive)"
// @Param start_time query string false "Starts at or after (HH:MM)"
// @Param end_time query string false "Ends at or before (HH:MM)"
// @Param price_min query number false "Minimum special pricing"
// @Param price_max query number false "Maximum special pricing"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetTimeSlotsResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/timeslots [get]
func (handler *Handler) GetTimeSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeSlots")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.TimeSlotFilter{}
	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	slots, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get time slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}

// GetTimeSlotByID retrieves a time slot by its ID.
// @Summary Get a time slot
// @Tags TimeSlot
// @Produce json
// @Param id path string true "Time Slot ID"
// @Success 200 {object} dto.TimeSlotResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/timeslots/{id} [get]
func (handler *Handler) GetTimeSlotByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeSlotByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	slot, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get time slot")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slot)
}

// UpdateTimeSlot updates a time slot.
// @Summary Update a time slot @Staff
// @Description The merged slot is re-checked for overlap, excluding itself.
// @Tags TimeSlot
// @Accept json
// @Produce json
// @Param id path string true "Time Slot ID"
// @Param request body dto.UpdateTimeSlotRequest true "Update Time Slot Request"
// @Success 200 {object} dto.TimeSlotResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/timeslots/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTimeSlot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTimeSlotRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update time slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteTimeSlot deletes a time slot. Reservations made against it keep their copied schedule.
// @Summary Delete a time slot @Staff
// @Tags TimeSlot
// @Produce json
// @Param id path string true "Time Slot ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/timeslots/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTimeSlot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete time slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot deleted successfully")

	response.WithMessage(w, http.StatusOK, "Time slot deleted successfully")
}
