package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"fmt"
	"time"

	"dinebook/config"
	"dinebook/infras/otel"
	"dinebook/infras/postgres"
	"dinebook/internal/domains/reservation/conflict"
	"dinebook/internal/domains/reservation/lifecycle"
	"dinebook/internal/domains/reservation/model"
	"dinebook/internal/domains/reservation/model/dto"
	"dinebook/internal/domains/reservation/repository"
	tableModel "dinebook/internal/domains/table/model"
	tableRepo "dinebook/internal/domains/table/repository"
	slotModel "dinebook/internal/domains/timeslot/model"
	slotRepo "dinebook/internal/domains/timeslot/repository"
	"dinebook/shared"
	"dinebook/shared/actor"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	"dinebook/shared/notifier"
	"dinebook/shared/schedule"
	"dinebook/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	DefaultListLimit = 20
	defaultMaxLimit  = 100

	sortByDateAndStart = model.TableName + "." + model.FieldReservationDate + ", " + model.TableName + "." + model.FieldStartTime
)

type Reservation interface {
	Create(ctx context.Context, who actor.Actor, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, who actor.Actor, req gDto.QueryParams, filter dto.ReservationFilter) (dto.GetReservationsResponse, error)
	Get(ctx context.Context, who actor.Actor, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, who actor.Actor, req dto.UpdateReservationRequest, id string) (dto.ReservationResponse, error)
	Delete(ctx context.Context, who actor.Actor, id string) error
}

type serviceImpl struct {
	repo       repository.Reservation
	tables     tableRepo.Table
	slots      slotRepo.TimeSlot
	transactor postgres.Transactor
	cfg        *config.Config
	otel       otel.Otel
	metrics    otel.Metrics
	notifier   notifier.Notifier
}

func New(
	repo repository.Reservation,
	tables tableRepo.Table,
	slots slotRepo.TimeSlot,
	transactor postgres.Transactor,
	cfg *config.Config,
	otel otel.Otel,
	metrics otel.Metrics,
	notifier notifier.Notifier,
) Reservation {
	return &serviceImpl{
		repo:       repo,
		tables:     tables,
		slots:      slots,
		transactor: transactor,
		cfg:        cfg,
		otel:       otel,
		metrics:    metrics,
		notifier:   notifier,
	}
}

// Create books a table. The slot, table and existing reservations are all
// read after the (table, date) lock is taken, inside the transaction that
// inserts, so two bookers of the same table and day cannot both pass the
// conflict check.
func (s *serviceImpl) Create(ctx context.Context, who actor.Actor, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	defer func() {
		if err != nil {
			s.metrics.BookingRejected(ctx, string(failure.GetKind(err)))
		}
	}()

	customerID := who.ID
	if req.CustomerID != constant.Empty && req.CustomerID != who.ID {
		if !who.IsStaff() {
			return res, failure.Forbidden("customers may only book for themselves") //nolint:wrapcheck
		}

		customerID = req.CustomerID
	}

	date, window, err := req.Schedule()
	if err != nil {
		return res, err
	}

	var (
		created model.Reservation
		slot    slotModel.TimeSlot
		table   tableModel.Table
	)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		dateKey := schedule.DateKey(date)

		if err := s.repo.LockSchedule(ctx, tx, req.TableID, dateKey); err != nil {
			return failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
		}

		var err error

		slot, err = s.bookableSlot(ctx, tx, req.TimeSlotID)
		if err != nil {
			return err
		}

		table, err = s.suitableTable(ctx, tx, req.TableID, req.PartySize)
		if err != nil {
			return err
		}

		if err := fitsSlot(slot, date, window, req.PartySize); err != nil {
			return err
		}

		existing, err := s.repo.GetAllTx(ctx, tx, gDto.QueryParams{}, dto.TableSchedule(req.TableID, dateKey))
		if err != nil {
			return failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
		}

		err = conflict.Check(existing, conflict.Candidate{
			TableID:   req.TableID,
			Date:      date,
			StartTime: window.Start.String(),
			EndTime:   window.End.String(),
		})
		if err != nil {
			return err
		}

		price := model.NewPriceSnapshot(slot.SpecialPricing, table.PricePerPerson, req.PartySize)
		created = req.ToModel(customerID, who.ID, date, window, price)

		if err := s.repo.InsertTx(ctx, tx, created); err != nil {
			return failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
		}

		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("table_id", req.TableID).Str("time_slot_id", req.TimeSlotID).Msg("booking rejected")

		return res, err
	}

	s.metrics.ReservationCreated(ctx, created.IsWalkIn)

	populate(&created, slot, table)
	res.FromModel(created)

	s.notifier.Publish(ctx, notifier.ReservationCreated, res)

	return res, nil
}

// GetAll lists newest first. Customers only ever see their own reservations.
func (s *serviceImpl) GetAll(ctx context.Context, who actor.Actor, req gDto.QueryParams, filter dto.ReservationFilter) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Limit <= 0 {
		req.Limit = DefaultListLimit
	}

	req.ClampLimit(s.maxLimit())
	req.SortBy = sortByDateAndStart
	req.SortDir = gDto.SortDirDesc

	group := filter.Scope(who).ToFilterGroup()

	total, err := s.repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	models, err := s.repo.GetAll(ctx, req, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, who actor.Actor, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if !who.IsStaff() && !who.Owns(reservation.CustomerID) {
		return res, failure.Forbidden("not authorized to view this reservation") //nolint:wrapcheck
	}

	res.FromModel(reservation)

	return res, nil
}

// Update applies a role-gated change. Moving the reservation, or putting a
// released one back on its table, re-runs the conflict check under the
// schedule lock of the target table and day. The price snapshot is never
// written here.
func (s *serviceImpl) Update(ctx context.Context, who actor.Actor, req dto.UpdateReservationRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	change := req.ToChange()
	if change.IsEmpty() {
		return res, failure.BadRequestFromString("no changes requested") //nolint:wrapcheck
	}

	current, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if err = lifecycle.Authorize(who, current, change, s.policy()); err != nil {
		return res, err
	}

	next, fields, err := apply(current, change, who.ID)
	if err != nil {
		return res, err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	reactivates := change.Status != nil && lifecycle.Reactivates(current.Status, next.Status)
	if (change.Reschedules() || reactivates) && next.Blocks() {
		err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			return s.moveTx(ctx, tx, current, next, fields, filter)
		})
	} else {
		err = s.repo.Update(ctx, fields, filter)
		if err != nil {
			err = failure.FromStorage(err, model.EntityName)
		}
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update reservation")

		return res, err //nolint:wrapcheck
	}

	updated, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	event := notifier.ReservationUpdated
	if current.Status != model.StatusCancelled && updated.Status == model.StatusCancelled {
		event = notifier.ReservationCancelled
	}

	s.notifier.Publish(ctx, event, res)

	return res, nil
}

// Delete cancels for the customer who owns the reservation and hard-deletes for staff.
func (s *serviceImpl) Delete(ctx context.Context, who actor.Actor, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if who.IsStaff() {
		if err = s.repo.Delete(ctx, filter); err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to delete reservation")

			return failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
		}

		s.notifier.Publish(ctx, notifier.ReservationDeleted, notifier.DeletedPayload{ReservationID: id})

		return nil
	}

	cancelled := model.StatusCancelled
	change := lifecycle.Change{Status: &cancelled}

	if err = lifecycle.Authorize(who, current, change, s.policy()); err != nil {
		return err
	}

	fields := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: who.ID,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to cancel reservation")

		return failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	current.Status = model.StatusCancelled
	current.ModifiedBy = who.ID

	var res dto.ReservationResponse
	res.FromModel(current)

	s.notifier.Publish(ctx, notifier.ReservationCancelled, res)

	return nil
}

// moveTx re-validates next against its target table and day, excluding the
// reservation itself, and writes fields in the same transaction.
func (s *serviceImpl) moveTx(ctx context.Context, tx *sqlx.Tx, current, next model.Reservation, fields map[string]any, filter gDto.FilterGroup) error {
	dateKey := schedule.DateKey(next.ReservationDate)

	if err := s.repo.LockSchedule(ctx, tx, next.TableID, dateKey); err != nil {
		return failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	if next.TableID != current.TableID {
		if _, err := s.suitableTable(ctx, tx, next.TableID, next.PartySize); err != nil {
			return err
		}
	}

	existing, err := s.repo.GetAllTx(ctx, tx, gDto.QueryParams{}, dto.TableSchedule(next.TableID, dateKey))
	if err != nil {
		return failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	err = conflict.Check(existing, conflict.Candidate{
		TableID:   next.TableID,
		Date:      next.ReservationDate,
		StartTime: next.StartTime,
		EndTime:   next.EndTime,
		ExcludeID: current.ID,
	})
	if err != nil {
		return err
	}

	if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
		return failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get reservation")

		return reservation, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) bookableSlot(ctx context.Context, tx *sqlx.Tx, id string) (slotModel.TimeSlot, error) {
	slot, err := s.slots.GetTx(ctx, tx, shared.FilterByID(id, slotModel.FieldID, slotModel.TableName))
	if err != nil {
		return slot, failure.FromStorage(err, slotModel.EntityName) //nolint:wrapcheck
	}

	if slot.ID == constant.Empty || !slot.IsAvailable {
		return slot, failure.SlotUnavailable("time slot not available") //nolint:wrapcheck
	}

	return slot, nil
}

func (s *serviceImpl) suitableTable(ctx context.Context, tx *sqlx.Tx, id string, partySize int) (tableModel.Table, error) {
	table, err := s.tables.GetTx(ctx, tx, shared.FilterByID(id, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		return table, failure.FromStorage(err, tableModel.EntityName) //nolint:wrapcheck
	}

	if table.ID == constant.Empty || !table.Seats(partySize) {
		return table, failure.TableUnsuitable("table not suitable for party size") //nolint:wrapcheck
	}

	return table, nil
}

func (s *serviceImpl) policy() lifecycle.Policy {
	return lifecycle.Policy{StrictTransitions: s.cfg.App.Reservation.StrictTransitions}
}

func (s *serviceImpl) maxLimit() int {
	if s.cfg.App.Reservation.ListMaxLimit > 0 {
		return s.cfg.App.Reservation.ListMaxLimit
	}

	return defaultMaxLimit
}

// fitsSlot requires the booking to fall on the slot's day, inside its window,
// and within its party size ceiling.
func fitsSlot(slot slotModel.TimeSlot, date time.Time, window schedule.Window, partySize int) error {
	slotWindow, err := slot.Window()
	if err != nil {
		return err
	}

	if !schedule.SameDay(slot.Date, date) || !slotWindow.Contains(window) {
		return failure.BadRequestFromString(fmt.Sprintf( //nolint:wrapcheck
			"requested %s %s is outside the time slot %s %s",
			schedule.DateKey(date), window, schedule.DateKey(slot.Date), slotWindow,
		))
	}

	if partySize > slot.MaxPartySize {
		return failure.BadRequestFromString(fmt.Sprintf("party size %d exceeds the time slot maximum of %d", partySize, slot.MaxPartySize)) //nolint:wrapcheck
	}

	return nil
}

// apply merges c onto current and returns the column writes it implies.
func apply(current model.Reservation, c lifecycle.Change, user string) (model.Reservation, map[string]any, error) {
	next := current
	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if c.Status != nil {
		next.Status = *c.Status
		fields[model.FieldStatus] = next.Status
	}

	if c.SpecialRequests != nil {
		next.SpecialRequests = *c.SpecialRequests
		fields[model.FieldSpecialRequests] = next.SpecialRequests
	}

	if c.CustomerNotes != nil {
		next.CustomerNotes = *c.CustomerNotes
		fields[model.FieldCustomerNotes] = next.CustomerNotes
	}

	if c.StaffNotes != nil {
		next.StaffNotes = *c.StaffNotes
		fields[model.FieldStaffNotes] = next.StaffNotes
	}

	if !c.Reschedules() {
		return next, fields, nil
	}

	if c.TableID != nil {
		next.TableID = *c.TableID
		fields[model.FieldTableID] = next.TableID
	}

	if c.ReservationDate != nil {
		date, err := schedule.ParseDate(*c.ReservationDate)
		if err != nil {
			return current, nil, err
		}

		next.ReservationDate = date
		fields[model.FieldReservationDate] = schedule.DateKey(date)
	}

	start, end := current.StartTime, current.EndTime
	if c.StartTime != nil {
		start = *c.StartTime
	}

	if c.EndTime != nil {
		end = *c.EndTime
	}

	window, err := schedule.ParseWindow(start, end)
	if err != nil {
		return current, nil, err
	}

	next.SetWindow(window)
	fields[model.FieldStartTime] = next.StartTime
	fields[model.FieldEndTime] = next.EndTime
	fields[model.FieldStartMinute] = next.StartMinute
	fields[model.FieldEndMinute] = next.EndMinute

	return next, fields, nil
}

// populate fills the joined summaries of a reservation that was just inserted.
func populate(r *model.Reservation, slot slotModel.TimeSlot, table tableModel.Table) {
	r.TableNumber = &table.TableNumber
	r.TableCapacity = &table.Capacity
	r.TableLocation = &table.Location
	r.TableArea = &table.Area

	r.SlotDate = &slot.Date
	r.SlotStartTime = &slot.StartTime
	r.SlotEndTime = &slot.EndTime
	r.SlotLocation = &slot.Location
	r.SlotArea = &slot.Area
	r.SlotSpecialPricing = slot.SpecialPricing
}
