package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dinebook/config"
	"dinebook/infras/otel/mocks"
	slotMocks "dinebook/internal/domains/timeslot/mocks"
	"dinebook/internal/domains/timeslot/model"
	"dinebook/internal/domains/timeslot/model/dto"
	"dinebook/internal/domains/timeslot/service"
	cacheMocks "dinebook/shared/cache/mocks"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	"dinebook/shared/notifier"
	notifierMocks "dinebook/shared/notifier/mocks"
)

type fixture struct {
	svc      service.TimeSlot
	repo     *slotMocks.MockTimeSlot
	cache    *cacheMocks.MockRedisCache
	notifier *notifierMocks.MockNotifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     slotMocks.NewMockTimeSlot(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		notifier: notifierMocks.NewMockNotifier(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.notifier)

	return f
}

func staffContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func slot(id, start, end string) model.TimeSlot {
	s := model.TimeSlot{
		ID:           id,
		Date:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Duration:     120,
		MaxPartySize: 6,
		Location:     "indoor",
		Area:         "Main Hall",
		IsAvailable:  true,
		StartTime:    start,
		EndTime:      end,
	}

	w, _ := s.Window()
	s.SetWindow(w)

	return s
}

func dinnerRequest(start, end string) dto.CreateTimeSlotRequest {
	return dto.CreateTimeSlotRequest{
		Date:         "2026-03-01",
		StartTime:    start,
		EndTime:      end,
		Duration:     120,
		MaxPartySize: 6,
		Location:     "indoor",
		Area:         "Main Hall",
	}
}

func TestTimeSlotService_Create(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.CreateTimeSlotRequest
		existing []model.TimeSlot
		wantKind failure.Kind
	}{
		{name: "no other slots", req: dinnerRequest("18:00", "20:00")},
		{name: "touching slot accepted", req: dinnerRequest("20:00", "22:00"), existing: []model.TimeSlot{slot("s-1", "18:00", "20:00")}},
		{name: "overlapping slot rejected", req: dinnerRequest("19:00", "21:00"), existing: []model.TimeSlot{slot("s-1", "18:00", "20:00")}, wantKind: failure.KindSchedulingConflict},
		{name: "start after end", req: dinnerRequest("21:00", "19:00"), wantKind: failure.KindValidation},
		{name: "equal start and end", req: dinnerRequest("19:00", "19:00"), wantKind: failure.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			validWindow := tt.wantKind != failure.KindValidation
			if validWindow {
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.existing, nil)
			}

			if tt.wantKind == "" {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s model.TimeSlot) error {
						assert.Equal(t, tt.req.StartTime, s.StartTime)
						assert.Equal(t, 120, s.EndMinute-s.StartMinute)
						assert.Equal(t, "staff-1", s.CreatedBy)

						return nil
					})
				f.notifier.EXPECT().Publish(gomock.Any(), notifier.TimeSlotCreated, gomock.Any())
			}

			res, err := f.svc.Create(staffContext(), tt.req)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "2026-03-01", res.Date)
			assert.True(t, res.IsAvailable)
		})
	}
}

func TestTimeSlotService_CreateNormalizesClock(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().Publish(gomock.Any(), notifier.TimeSlotCreated, gomock.Any())

	res, err := f.svc.Create(staffContext(), dinnerRequest("9:30", "11:00"))

	require.NoError(t, err)
	assert.Equal(t, "09:30", res.StartTime)
	assert.Equal(t, "09:30 - 11:00", res.TimeRange)
}

func TestTimeSlotService_CreateUnavailableSkipsOverlapCheck(t *testing.T) {
	f := newFixture(t)

	closed := false
	req := dinnerRequest("18:00", "20:00")
	req.IsAvailable = &closed

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().Publish(gomock.Any(), notifier.TimeSlotCreated, gomock.Any())

	res, err := f.svc.Create(staffContext(), req)

	require.NoError(t, err)
	assert.False(t, res.IsAvailable)
}

func TestTimeSlotService_Update(t *testing.T) {
	t.Run("partial window change checked against stored end", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(slot("s-1", "18:00", "20:00"), nil)

		_, err := f.svc.Update(staffContext(), dto.UpdateTimeSlotRequest{StartTime: "20:30"}, "s-1")

		require.Error(t, err)
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})

	t.Run("own window is not an overlap", func(t *testing.T) {
		f := newFixture(t)

		current := slot("s-1", "18:00", "20:00")
		updated := slot("s-1", "18:00", "21:00")

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil),
			f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.TimeSlot{current}, nil),
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, "21:00", fields[model.FieldEndTime])
					assert.Equal(t, 21*60, fields[model.FieldEndMinute])
					assert.Equal(t, "18:00", fields[model.FieldStartTime])

					return nil
				}),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil),
		)
		f.notifier.EXPECT().Publish(gomock.Any(), notifier.TimeSlotUpdated, gomock.Any())

		res, err := f.svc.Update(staffContext(), dto.UpdateTimeSlotRequest{EndTime: "21:00"}, "s-1")

		require.NoError(t, err)
		assert.Equal(t, "21:00", res.EndTime)
	})

	t.Run("moving onto another slot", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(slot("s-1", "12:00", "14:00"), nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.TimeSlot{slot("s-1", "12:00", "14:00"), slot("s-2", "18:00", "20:00")}, nil)

		_, err := f.svc.Update(staffContext(), dto.UpdateTimeSlotRequest{StartTime: "17:00", EndTime: "19:00"}, "s-1")

		assert.Equal(t, failure.KindSchedulingConflict, failure.GetKind(err))
	})

	t.Run("missing slot", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.TimeSlot{}, nil)

		_, err := f.svc.Update(staffContext(), dto.UpdateTimeSlotRequest{Area: "Terrace"}, "s-9")

		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}

func TestTimeSlotService_Delete(t *testing.T) {
	t.Run("publishes the deleted id", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.notifier.EXPECT().Publish(gomock.Any(), notifier.TimeSlotDeleted, notifier.DeletedPayload{TimeSlotID: "s-1"})

		require.NoError(t, f.svc.Delete(staffContext(), "s-1"))
	})

	t.Run("not found publishes nothing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(staffContext(), "s-1")
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("timeout"))

		err := f.svc.Delete(staffContext(), "s-1")
		assert.True(t, failure.IsRetryable(err))
	})
}

func TestTimeSlotService_GetAllSortsByDateThenStart(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.TimeSlot, error) {
			assert.Equal(t, "ORDER BY time_slots.date ASC, time_slots.start_time ASC", params.OrderClause())

			return []model.TimeSlot{slot("s-1", "18:00", "20:00")}, nil
		})

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 20}, gDto.FilterGroup{})

	require.NoError(t, err)
	require.Len(t, res.TimeSlots, 1)
	assert.Equal(t, "18:00 - 20:00", res.TimeSlots[0].TimeRange)
}
