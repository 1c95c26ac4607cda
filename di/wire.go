//go:build wireinject
// +build wireinject

package di

import (
	"dinebook/config"
	"dinebook/infras/jwt"
	"dinebook/infras/otel"
	"dinebook/infras/postgres"
	"dinebook/infras/redis"
	"dinebook/permissions"
	"dinebook/shared/cache"
	"dinebook/shared/notifier"
	"dinebook/transport/http"
	"dinebook/transport/http/middleware"
	"dinebook/transport/http/router"

	"github.com/google/wire"

	authService "dinebook/internal/domains/auth/service"
	reservationRepository "dinebook/internal/domains/reservation/repository"
	reservationService "dinebook/internal/domains/reservation/service"
	reviewRepository "dinebook/internal/domains/review/repository"
	reviewService "dinebook/internal/domains/review/service"
	tableRepository "dinebook/internal/domains/table/repository"
	tableService "dinebook/internal/domains/table/service"
	timeSlotRepository "dinebook/internal/domains/timeslot/repository"
	timeSlotService "dinebook/internal/domains/timeslot/service"
	userRepository "dinebook/internal/domains/user/repository"
	userService "dinebook/internal/domains/user/service"

	authHandler "dinebook/internal/handlers/auth"
	eventHandler "dinebook/internal/handlers/event"
	reservationHandler "dinebook/internal/handlers/reservation"
	reviewHandler "dinebook/internal/handlers/review"
	tableHandler "dinebook/internal/handlers/table"
	timeSlotHandler "dinebook/internal/handlers/timeslot"
	userHandler "dinebook/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	otel.NewMetrics,
	redis.New,
	jwt.New,
	ProvideKafka,
	ProvideAMQP,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	ProvideHub,
	ProvideNotifier,
	wire.Bind(new(notifier.Notifier), new(*notifier.Fanout)),
	ProvideCleanups,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var timeSlotDomain = wire.NewSet(
	timeSlotRepository.New,
	timeSlotService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	tableDomain,
	timeSlotDomain,
	reservationDomain,
	reviewDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	tableHandler.New,
	timeSlotHandler.New,
	reservationHandler.New,
	reviewHandler.New,
	eventHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
