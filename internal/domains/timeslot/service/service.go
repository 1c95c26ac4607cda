package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=TimeSlot=MockTimeSlotService

import (
	"context"
	"fmt"

	"dinebook/config"
	"dinebook/infras/otel"
	"dinebook/internal/domains/timeslot/model"
	"dinebook/internal/domains/timeslot/model/dto"
	"dinebook/internal/domains/timeslot/repository"
	"dinebook/shared"
	"dinebook/shared/cache"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	"dinebook/shared/notifier"
	"dinebook/shared/schedule"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTimeSlot    = "timeslot:get"
	cacheGetAllTimeSlot = "timeslot:gets"
	cacheCountTimeSlot  = "timeslot:count"

	sortByDateAndStart = model.TableName + "." + model.FieldDate + ", " + model.TableName + "." + model.FieldStartTime
)

type TimeSlot interface {
	Create(ctx context.Context, req dto.CreateTimeSlotRequest) (dto.TimeSlotResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTimeSlotsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.TimeSlotResponse, error)
	Update(ctx context.Context, req dto.UpdateTimeSlotRequest, id string) (dto.TimeSlotResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.TimeSlot
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	notifier notifier.Notifier
}

func New(repo repository.TimeSlot, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, notifier notifier.Notifier) TimeSlot {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		notifier: notifier,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTimeSlotRequest) (res dto.TimeSlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TimeSlot.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	slot, err := req.ToModel(user)
	if err != nil {
		return res, err
	}

	if err = s.ensureNoOverlap(ctx, slot); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, slot); err != nil {
		log.Error().Err(err).Msg("failed to create time slot")

		return res, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(slot)
	s.notifier.Publish(ctx, notifier.TimeSlotCreated, res)

	return res, nil
}

// GetAll lists by date, then start time.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTimeSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TimeSlot.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.SortBy = sortByDateAndStart
	req.SortDir = gDto.SortDirAsc

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTimeSlot, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for time slots")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count time slots")

		return res, fmt.Errorf("failed to count time slots: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slots")

		return res, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save time slots to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TimeSlot.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTimeSlot, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count time slots")

		return res, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save time slot count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TimeSlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TimeSlot.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetTimeSlot, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	slot, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(slot)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save time slot to cache")
		}
	}()

	return res, nil
}

// Update merges req onto the stored slot and re-runs the window and overlap
// checks against the result, excluding the slot itself.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTimeSlotRequest, id string) (res dto.TimeSlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TimeSlot.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	next, err := req.Apply(current)
	if err != nil {
		return res, err
	}

	if err = s.ensureNoOverlap(ctx, next); err != nil {
		return res, err
	}

	fields := shared.TransformFields(req, user)
	fields[model.FieldStartTime] = next.StartTime
	fields[model.FieldEndTime] = next.EndTime
	fields[model.FieldStartMinute] = next.StartMinute
	fields[model.FieldEndMinute] = next.EndMinute

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update time slot")

		return res, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	updated, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)
	s.notifier.Publish(ctx, notifier.TimeSlotUpdated, res)

	return res, nil
}

// Delete leaves reservations in place; their slot reference is cleared by the store.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TimeSlot.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if time slot exists")

		return failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	if !exist {
		return failure.NotFound("time slot not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete time slot")

		return failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	s.invalidate(ctx, id)
	s.notifier.Publish(ctx, notifier.TimeSlotDeleted, notifier.DeletedPayload{TimeSlotID: id})

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.TimeSlot, error) {
	slot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get time slot")

		return slot, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	if slot.ID == constant.Empty {
		return slot, failure.NotFound("time slot not found") // nolint:wrapcheck
	}

	return slot, nil
}

// ensureNoOverlap rejects an available slot that overlaps another available
// slot at the same location and date. Unavailable slots are never checked.
func (s *serviceImpl) ensureNoOverlap(ctx context.Context, slot model.TimeSlot) error {
	if !slot.IsAvailable {
		return nil
	}

	candidate, err := slot.Window()
	if err != nil {
		return err
	}

	others, err := s.repo.GetAll(ctx, gDto.QueryParams{}, dto.SameDayAtLocation(schedule.DateKey(slot.Date), slot.Location))
	if err != nil {
		log.Error().Err(err).Msg("failed to load time slots for overlap check")

		return failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	for _, other := range others {
		if other.ID == slot.ID {
			continue
		}

		window, err := other.Window()
		if err != nil {
			log.Warn().Err(err).Str("id", other.ID).Msg("skipping time slot with malformed window")

			continue
		}

		if candidate.Overlaps(window) {
			return failure.SchedulingConflict(fmt.Sprintf("time slot conflicts with existing availability %s at %s", window, slot.Location)) //nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTimeSlot, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete time slot from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTimeSlot)
		shared.InvalidateCaches(c, s.cache, cacheCountTimeSlot)
	}()
}
