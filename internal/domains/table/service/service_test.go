package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dinebook/config"
	"dinebook/infras/otel/mocks"
	tableMocks "dinebook/internal/domains/table/mocks"
	"dinebook/internal/domains/table/model"
	"dinebook/internal/domains/table/model/dto"
	"dinebook/internal/domains/table/service"
	cacheMocks "dinebook/shared/cache/mocks"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
)

func newService(t *testing.T) (service.Table, *tableMocks.MockTable, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := tableMocks.NewMockTable(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func staffContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func TestTableService_Create(t *testing.T) {
	tests := []struct {
		name     string
		insert   error
		wantKind failure.Kind
	}{
		{name: "created"},
		{name: "duplicate table number", insert: &pq.Error{Code: constant.PqErrorCodeUniqueViolation}, wantKind: failure.KindDuplicateResource},
		{name: "storage failure", insert: errors.New("connection reset"), wantKind: failure.KindStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)

			repo.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, table model.Table) error {
					assert.Equal(t, "T1", table.TableNumber)
					assert.Equal(t, "staff-1", table.CreatedBy)
					assert.True(t, table.IsActive)
					assert.Equal(t, model.StatusAvailable, table.CurrentStatus)

					return tt.insert
				})

			res, err := svc.Create(staffContext(), dto.CreateTableRequest{
				TableNumber: "T1",
				Capacity:    4,
				Location:    "indoor",
			})

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, 4, res.Capacity)
			assert.Empty(t, res.Features)
		})
	}
}

func TestTableService_GetAll(t *testing.T) {
	t.Run("loads from repository ordered by table number", func(t *testing.T) {
		svc, repo, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Table, error) {
				assert.Equal(t, "ORDER BY restaurant_tables.table_number ASC", params.OrderClause())

				return []model.Table{{ID: "a", TableNumber: "T1"}, {ID: "b", TableNumber: "T2"}}, nil
			})

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 1, SortBy: "capacity; DROP TABLE", SortDir: gDto.SortDirDesc}, gDto.FilterGroup{})

		require.NoError(t, err)
		assert.Len(t, res.Tables, 2)
		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		svc, _, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
		require.NoError(t, err)
	})

	t.Run("repository failure is retryable", func(t *testing.T) {
		svc, repo, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("timeout"))

		_, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
		require.Error(t, err)
		assert.True(t, failure.IsRetryable(err))
	})
}

func TestTableService_Get(t *testing.T) {
	tests := []struct {
		name     string
		found    model.Table
		repoErr  error
		wantKind failure.Kind
	}{
		{name: "found", found: model.Table{ID: "t-1", TableNumber: "T1", Features: pq.StringArray{"private"}}},
		{name: "not found", wantKind: failure.KindNotFound},
		{name: "storage failure", repoErr: errors.New("boom"), wantKind: failure.KindStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)

			cache.EXPECT().Get(gomock.Any(), "table:get:t-1", gomock.Any()).Return(errors.New("miss"))
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.found, tt.repoErr)

			res, err := svc.Get(context.Background(), "t-1")
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "t-1", res.ID)
			assert.Equal(t, []string{"private"}, res.Features)
		})
	}
}

func TestTableService_Update(t *testing.T) {
	t.Run("writes only set fields", func(t *testing.T) {
		svc, repo, _ := newService(t)

		capacity := 6
		active := false

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 6, fields[model.FieldCapacity])
				assert.Equal(t, false, fields[model.FieldIsActive])
				assert.NotContains(t, fields, model.FieldLocation)
				assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])

				return nil
			})
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{ID: "t-1", Capacity: 6}, nil)

		res, err := svc.Update(staffContext(), dto.UpdateTableRequest{Capacity: &capacity, IsActive: &active}, "t-1")

		require.NoError(t, err)
		assert.Equal(t, 6, res.Capacity)
	})

	t.Run("missing table", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Update(staffContext(), dto.UpdateTableRequest{Location: "bar"}, "t-1")
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("renumbering onto a taken number", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.Join(errors.New("failed to update data (table)"), &pq.Error{Code: constant.PqErrorCodeUniqueViolation}))

		_, err := svc.Update(staffContext(), dto.UpdateTableRequest{TableNumber: "T2"}, "t-1")
		assert.Equal(t, failure.KindDuplicateResource, failure.GetKind(err))
	})
}

func TestTableService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		exist     bool
		deleteErr error
		wantKind  failure.Kind
	}{
		{name: "deleted", exist: true},
		{name: "not found", exist: false, wantKind: failure.KindNotFound},
		{name: "still referenced", exist: true, deleteErr: &pq.Error{Code: constant.PqErrorCodeFkViolation}, wantKind: failure.KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)

			repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(tt.exist, nil)

			if tt.exist {
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(tt.deleteErr)
			}

			err := svc.Delete(staffContext(), "t-1")
			if tt.wantKind == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantKind, failure.GetKind(err))
		})
	}
}
