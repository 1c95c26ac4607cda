package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Review=MockReviewService

import (
	"context"

	"dinebook/config"
	"dinebook/infras/otel"
	reservationModel "dinebook/internal/domains/reservation/model"
	reservationRepo "dinebook/internal/domains/reservation/repository"
	"dinebook/internal/domains/review/model"
	"dinebook/internal/domains/review/model/dto"
	"dinebook/internal/domains/review/repository"
	"dinebook/shared"
	"dinebook/shared/actor"
	"dinebook/shared/cache"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	"dinebook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReview    = "review:get"
	cacheGetAllReview = "review:gets"
	cacheCountReview  = "review:count"

	MaxListLimit = 50
)

type Review interface {
	Create(ctx context.Context, who actor.Actor, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.ReviewFilter) (dto.GetReviewsResponse, error)
	Get(ctx context.Context, id string) (dto.ReviewResponse, error)
	Update(ctx context.Context, who actor.Actor, req dto.UpdateReviewRequest, id string) (dto.ReviewResponse, error)
	Delete(ctx context.Context, who actor.Actor, id string) error
	Verify(ctx context.Context, who actor.Actor, id string) (dto.ReviewResponse, error)
}

type serviceImpl struct {
	repo         repository.Review
	reservations reservationRepo.Reservation
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.Review, reservations reservationRepo.Reservation, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Review {
	return &serviceImpl{
		repo:         repo,
		reservations: reservations,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create reviews one of the customer's own reservations, once.
func (s *serviceImpl) Create(ctx context.Context, who actor.Actor, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Review.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !who.IsCustomer() {
		return res, failure.Forbidden("only customers can write reviews") //nolint:wrapcheck
	}

	reservation, err := s.reservations.Get(ctx, shared.FilterByID(req.ReservationID, reservationModel.FieldID, reservationModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("reservation_id", req.ReservationID).Msg("failed to get reservation for review")

		return res, failure.FromStorage(err, reservationModel.EntityName) //nolint:wrapcheck
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if !who.Owns(reservation.CustomerID) {
		return res, failure.Forbidden("you can only review your own reservations") //nolint:wrapcheck
	}

	exists, err := s.repo.Exist(ctx, byReservation(req.ReservationID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing review")

		return res, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	if exists {
		return res, failure.Duplicate("reservation already reviewed") //nolint:wrapcheck
	}

	review := req.ToModel(who.ID)

	if err = s.repo.Insert(ctx, review); err != nil {
		log.Error().Err(err).Msg("failed to create review")

		return res, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.ReviewFilter) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Review.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.ClampLimit(MaxListLimit)
	req.SortBy = model.TableName + "." + constant.FieldCreatedAt
	req.SortDir = gDto.SortDirDesc

	group := filter.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReview, req, group)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.count(ctx, req, group)
	if err != nil {
		return res, err
	}

	reviews, err := s.repo.GetAll(ctx, req, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	res.FromModels(reviews, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reviews to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Review.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetReview, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	review, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(review)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save review to cache")
		}
	}()

	return res, nil
}

// Update lets the author edit ratings and comment, and lets staff respond.
func (s *serviceImpl) Update(ctx context.Context, who actor.Actor, req dto.UpdateReviewRequest, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Review.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	review, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	var fields map[string]any

	switch {
	case who.IsStaff():
		if req.HasCustomerEdits() {
			return res, failure.Forbidden("staff may only respond to reviews") //nolint:wrapcheck
		}

		if req.StaffResponse == nil {
			return res, failure.BadRequestFromString("staff_response is required") //nolint:wrapcheck
		}

		fields = map[string]any{
			model.FieldStaffResponseComment: *req.StaffResponse,
			model.FieldStaffResponseBy:      who.ID,
			model.FieldStaffResponseAt:      timezone.Now(),
			constant.FieldModifiedAt:        timezone.Now(),
			constant.FieldModifiedBy:        who.ID,
		}
	case who.IsCustomer():
		if !who.Owns(review.CustomerID) {
			return res, failure.Forbidden("not authorized to modify this review") //nolint:wrapcheck
		}

		if req.StaffResponse != nil {
			return res, failure.Forbidden("customers may not set a staff response") //nolint:wrapcheck
		}

		if !req.HasCustomerEdits() {
			return res, failure.BadRequestFromString("no changes requested") //nolint:wrapcheck
		}

		fields = shared.TransformFields(req, who.ID)
	default:
		return res, failure.ForbiddenError
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update review")

		return res, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	updated, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

// Delete removes the author's own review. Staff hide it instead.
func (s *serviceImpl) Delete(ctx context.Context, who actor.Actor, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Review.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	review, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	switch {
	case who.IsStaff():
		err = s.repo.Update(ctx, map[string]any{
			model.FieldIsPublic:      false,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: who.ID,
		}, filter)
	case who.Owns(review.CustomerID):
		err = s.repo.Delete(ctx, filter)
	default:
		return failure.Forbidden("not authorized to delete this review") //nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete review")

		return failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

// Verify flips is_verified.
func (s *serviceImpl) Verify(ctx context.Context, who actor.Actor, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Review.Verify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !who.IsStaff() {
		return res, failure.Forbidden("only staff can verify reviews") //nolint:wrapcheck
	}

	review, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	review.IsVerified = !review.IsVerified
	review.ModifiedBy = who.ID

	fields := map[string]any{
		model.FieldIsVerified:    review.IsVerified,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: who.ID,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to verify review")

		return res, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Review, error) {
	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get review")

		return review, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	if review.ID == constant.Empty {
		return review, failure.NotFound("review not found") // nolint:wrapcheck
	}

	return review, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReview, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, failure.FromStorage(err, model.EntityName) //nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save review count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReview, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete review from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReview)
		shared.InvalidateCaches(c, s.cache, cacheCountReview)
	}()
}

func byReservation(reservationID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldReservationID, Value: reservationID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}
