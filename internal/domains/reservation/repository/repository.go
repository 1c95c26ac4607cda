package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"dinebook/infras/otel"
	"dinebook/infras/postgres"
	"dinebook/internal/domains/reservation/model"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/logger"
	gRepo "dinebook/shared/repository"

	"github.com/jmoiron/sqlx"
)

const lockScheduleQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

type Reservation interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	LockSchedule(ctx context.Context, sqltx *sqlx.Tx, tableID, date string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// LockSchedule serializes every booker of one table on one day until sqltx
// ends. Reads made after it see whatever an earlier holder committed.
func (r *repositoryImpl) LockSchedule(ctx context.Context, sqltx *sqlx.Tx, tableID, date string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.LockSchedule")
	defer scope.End()

	key := ScheduleLockKey(tableID, date)
	scope.SetAttribute(constant.OtelQueryAttributeKey, lockScheduleQuery)

	if _, err := sqltx.ExecContext(ctx, lockScheduleQuery, key); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to lock schedule %s: %w", key, err)
	}

	return nil
}

func ScheduleLockKey(tableID, date string) string {
	return "reservation:" + tableID + ":" + date
}
