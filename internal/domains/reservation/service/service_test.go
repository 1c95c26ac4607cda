package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dinebook/config"
	otelMocks "dinebook/infras/otel/mocks"
	"dinebook/infras/postgres"
	txMocks "dinebook/infras/postgres/mocks"
	reservationMocks "dinebook/internal/domains/reservation/mocks"
	"dinebook/internal/domains/reservation/model"
	"dinebook/internal/domains/reservation/model/dto"
	"dinebook/internal/domains/reservation/repository"
	"dinebook/internal/domains/reservation/service"
	tableMocks "dinebook/internal/domains/table/mocks"
	tableModel "dinebook/internal/domains/table/model"
	slotMocks "dinebook/internal/domains/timeslot/mocks"
	slotModel "dinebook/internal/domains/timeslot/model"
	"dinebook/shared/actor"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	"dinebook/shared/notifier"
	notifierMocks "dinebook/shared/notifier/mocks"
	"dinebook/shared/schedule"
)

const (
	tableID  = "6f1c1c36-5d59-4a59-8f0e-0d7a3c4e9a01"
	slotID   = "0b8f3a52-2a1d-4c4e-9b61-7f6d3e2a1c02"
	customer = "c-1"
)

var bookingDay = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// serialTransactor runs transactions one at a time, the way the schedule
// lock serializes bookers of the same table and day.
type serialTransactor struct {
	mu sync.Mutex
}

func (s *serialTransactor) WithTransaction(ctx context.Context, fn postgres.TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(ctx, nil)
}

// memoryRepo is an in-memory reservation store.
type memoryRepo struct {
	mu        sync.Mutex
	rows      map[string]model.Reservation
	locks     []string
	inserts   int
	insertErr error
}

var _ repository.Reservation = (*memoryRepo)(nil)

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[string]model.Reservation{}}
}

func (m *memoryRepo) InsertTx(_ context.Context, _ *sqlx.Tx, r model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.insertErr != nil {
		return m.insertErr
	}

	m.rows[r.ID] = r
	m.inserts++

	return nil
}

func (m *memoryRepo) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := idOf(filter)

	return m.rows[id], nil
}

func (m *memoryRepo) GetAll(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
	return m.all(), nil
}

func (m *memoryRepo) GetAllTx(_ context.Context, _ *sqlx.Tx, _ gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
	// Widen the window between the conflict read and the insert.
	time.Sleep(time.Millisecond)

	return m.all(), nil
}

func (m *memoryRepo) Count(_ context.Context, _ gDto.FilterGroup) (int, error) {
	return len(m.all()), nil
}

func (m *memoryRepo) Update(_ context.Context, req map[string]any, filter gDto.FilterGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := idOf(filter)
	row := m.rows[id]

	if status, ok := req[model.FieldStatus].(string); ok {
		row.Status = status
	}

	m.rows[id] = row

	return nil
}

func (m *memoryRepo) UpdateTx(ctx context.Context, _ *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error {
	return m.Update(ctx, req, filter)
}

func (m *memoryRepo) Delete(_ context.Context, filter gDto.FilterGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := idOf(filter)
	delete(m.rows, id)

	return nil
}

func (m *memoryRepo) LockSchedule(_ context.Context, _ *sqlx.Tx, tableID, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.locks = append(m.locks, repository.ScheduleLockKey(tableID, date))

	return nil
}

func idOf(filter gDto.FilterGroup) string {
	byID, _ := filter.Filters[0].(gDto.Filter)
	id, _ := byID.Value.(string)

	return id
}

func (m *memoryRepo) all() []model.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := make([]model.Reservation, 0, len(m.rows))
	for _, r := range m.rows {
		rows = append(rows, r)
	}

	return rows
}

type fixture struct {
	tables   *tableMocks.MockTable
	slots    *slotMocks.MockTimeSlot
	notifier *notifierMocks.MockNotifier
	metrics  *otelMocks.Metrics
	cfg      *config.Config
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.Reservation.ListMaxLimit = 100

	return fixture{
		tables:   tableMocks.NewMockTable(ctrl),
		slots:    slotMocks.NewMockTimeSlot(ctrl),
		notifier: notifierMocks.NewMockNotifier(ctrl),
		metrics:  otelMocks.NewMetrics(),
		cfg:      cfg,
	}
}

func (f fixture) service(repo repository.Reservation, tx postgres.Transactor) service.Reservation {
	return service.New(repo, f.tables, f.slots, tx, f.cfg, otelMocks.NewOtel(), f.metrics, f.notifier)
}

func (f fixture) stock(table tableModel.Table, slot slotModel.TimeSlot) {
	f.tables.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(table, nil).AnyTimes()
	f.slots.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(slot, nil).AnyTimes()
}

func price(v float64) *float64 {
	return &v
}

func eveningSlot() slotModel.TimeSlot {
	slot := slotModel.TimeSlot{
		ID:             slotID,
		Date:           bookingDay,
		MaxPartySize:   8,
		Location:       "indoor",
		Area:           "main",
		SpecialPricing: price(35),
		IsAvailable:    true,
	}

	window, _ := schedule.ParseWindow("18:00", "20:00")
	slot.SetWindow(window)

	return slot
}

func eightTop() tableModel.Table {
	return tableModel.Table{
		ID:             tableID,
		TableNumber:    "T8",
		Capacity:       8,
		Location:       "indoor",
		Area:           "main",
		PricePerPerson: 25,
		IsActive:       true,
	}
}

func booking(party int, start, end string) dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		TimeSlotID:      slotID,
		TableID:         tableID,
		PartySize:       party,
		ReservationDate: "2024-06-01",
		StartTime:       start,
		EndTime:         end,
	}
}

func TestReservationService_Create(t *testing.T) {
	t.Run("captures the slot special price", func(t *testing.T) {
		f := newFixture(t)
		f.stock(eightTop(), eveningSlot())

		repo := newMemoryRepo()
		f.notifier.EXPECT().Publish(gomock.Any(), notifier.ReservationCreated, gomock.Any())

		res, err := f.service(repo, &serialTransactor{}).Create(context.Background(), actor.Customer(customer), booking(4, "18:00", "20:00"))

		require.NoError(t, err)
		assert.Equal(t, 35.0, res.PriceSnapshot.PricePerPersonAtBooking)
		assert.Equal(t, 140.0, res.PriceSnapshot.TotalPrice)
		assert.Equal(t, model.StatusPending, res.Status)
		assert.Equal(t, customer, res.CustomerID)
		assert.Equal(t, "T8", res.Table.TableNumber)
		assert.Equal(t, []string{repository.ScheduleLockKey(tableID, "2024-06-01")}, repo.locks)

		created, _, _ := f.metrics.Snapshot()
		assert.Equal(t, 1, created)
	})

	t.Run("falls back to the table rate", func(t *testing.T) {
		f := newFixture(t)

		slot := eveningSlot()
		slot.SpecialPricing = nil
		f.stock(eightTop(), slot)
		f.notifier.EXPECT().Publish(gomock.Any(), notifier.ReservationCreated, gomock.Any())

		res, err := f.service(newMemoryRepo(), &serialTransactor{}).Create(context.Background(), actor.Customer(customer), booking(2, "18:30", "19:30"))

		require.NoError(t, err)
		assert.Equal(t, 25.0, res.PriceSnapshot.PricePerPersonAtBooking)
		assert.Equal(t, 50.0, res.PriceSnapshot.TotalPrice)
	})

	tests := []struct {
		name     string
		who      actor.Actor
		table    func(tableModel.Table) tableModel.Table
		slot     func(slotModel.TimeSlot) slotModel.TimeSlot
		req      func(dto.CreateReservationRequest) dto.CreateReservationRequest
		existing []model.Reservation
		wantKind failure.Kind
	}{
		{
			name:     "party larger than table",
			req:      func(r dto.CreateReservationRequest) dto.CreateReservationRequest { r.PartySize = 10; return r },
			wantKind: failure.KindTableUnsuitable,
		},
		{
			name:     "inactive table",
			table:    func(t tableModel.Table) tableModel.Table { t.IsActive = false; return t },
			wantKind: failure.KindTableUnsuitable,
		},
		{
			name:     "missing table",
			table:    func(tableModel.Table) tableModel.Table { return tableModel.Table{} },
			wantKind: failure.KindTableUnsuitable,
		},
		{
			name:     "unavailable slot",
			slot:     func(s slotModel.TimeSlot) slotModel.TimeSlot { s.IsAvailable = false; return s },
			wantKind: failure.KindSlotUnavailable,
		},
		{
			name:     "missing slot",
			slot:     func(slotModel.TimeSlot) slotModel.TimeSlot { return slotModel.TimeSlot{} },
			wantKind: failure.KindSlotUnavailable,
		},
		{
			name:     "party above slot maximum",
			slot:     func(s slotModel.TimeSlot) slotModel.TimeSlot { s.MaxPartySize = 2; return s },
			wantKind: failure.KindValidation,
		},
		{
			name:     "window outside slot",
			req:      func(r dto.CreateReservationRequest) dto.CreateReservationRequest { r.EndTime = "21:00"; return r },
			wantKind: failure.KindValidation,
		},
		{
			name: "different day than slot",
			req: func(r dto.CreateReservationRequest) dto.CreateReservationRequest {
				r.ReservationDate = "2024-06-02"
				return r
			},
			wantKind: failure.KindValidation,
		},
		{
			name: "end before start",
			req: func(r dto.CreateReservationRequest) dto.CreateReservationRequest {
				r.StartTime = "20:00"
				r.EndTime = "18:00"
				return r
			},
			wantKind: failure.KindValidation,
		},
		{
			name:     "missing date for a regular booking",
			req:      func(r dto.CreateReservationRequest) dto.CreateReservationRequest { r.ReservationDate = ""; return r },
			wantKind: failure.KindValidation,
		},
		{
			name:     "customer booking for someone else",
			req:      func(r dto.CreateReservationRequest) dto.CreateReservationRequest { r.CustomerID = "c-2"; return r },
			wantKind: failure.KindAuthorization,
		},
		{
			name: "overlapping reservation",
			existing: []model.Reservation{
				existing("r-1", model.StatusConfirmed, "18:30", "19:30"),
			},
			wantKind: failure.KindSchedulingConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			table, slot := eightTop(), eveningSlot()
			if tt.table != nil {
				table = tt.table(table)
			}

			if tt.slot != nil {
				slot = tt.slot(slot)
			}

			f.stock(table, slot)

			req := booking(4, "18:00", "20:00")
			if tt.req != nil {
				req = tt.req(req)
			}

			who := tt.who
			if who.ID == "" {
				who = actor.Customer(customer)
			}

			repo := newMemoryRepo()
			for _, r := range tt.existing {
				repo.rows[r.ID] = r
			}

			_, err := f.service(repo, &serialTransactor{}).Create(context.Background(), who, req)

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, failure.GetKind(err))
			assert.Equal(t, 0, repo.inserts)

			created, rejected, _ := f.metrics.Snapshot()
			assert.Equal(t, 0, created)
			assert.Equal(t, 1, rejected[string(tt.wantKind)])
		})
	}

	t.Run("staff books on behalf of a customer", func(t *testing.T) {
		f := newFixture(t)
		f.stock(eightTop(), eveningSlot())
		f.notifier.EXPECT().Publish(gomock.Any(), notifier.ReservationCreated, gomock.Any())

		req := booking(4, "18:00", "20:00")
		req.CustomerID = "c-9"

		res, err := f.service(newMemoryRepo(), &serialTransactor{}).Create(context.Background(), actor.Staff("s-1"), req)

		require.NoError(t, err)
		assert.Equal(t, "c-9", res.CustomerID)
	})

	t.Run("exclusion constraint rejects an overlap the lock missed", func(t *testing.T) {
		f := newFixture(t)
		f.stock(eightTop(), eveningSlot())

		repo := newMemoryRepo()
		repo.insertErr = &pq.Error{Code: constant.PqErrorCodeExclusionViolation}

		_, err := f.service(repo, &serialTransactor{}).Create(context.Background(), actor.Customer(customer), booking(4, "18:00", "20:00"))

		require.Error(t, err)
		assert.True(t, failure.Is(err, failure.KindSchedulingConflict))
		assert.False(t, failure.IsRetryable(err))
		assert.Empty(t, repo.rows)

		_, rejected, _ := f.metrics.Snapshot()
		assert.Equal(t, 1, rejected[string(failure.KindSchedulingConflict)])
	})

	t.Run("touching reservation does not conflict", func(t *testing.T) {
		f := newFixture(t)

		slot := eveningSlot()
		window, _ := schedule.ParseWindow("18:00", "22:00")
		slot.SetWindow(window)
		f.stock(eightTop(), slot)
		f.notifier.EXPECT().Publish(gomock.Any(), notifier.ReservationCreated, gomock.Any())

		repo := newMemoryRepo()
		repo.rows["r-1"] = existing("r-1", model.StatusConfirmed, "18:00", "20:00")

		_, err := f.service(repo, &serialTransactor{}).Create(context.Background(), actor.Customer(customer), booking(4, "20:00", "22:00"))

		require.NoError(t, err)
		assert.Equal(t, 1, repo.inserts)
	})

	t.Run("transaction failure is retryable", func(t *testing.T) {
		f := newFixture(t)

		tx := txMocks.NewMockTransactor(gomock.NewController(t))
		tx.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).Return(failure.FromStorage(errors.New("connection reset"), model.EntityName))

		_, err := f.service(newMemoryRepo(), tx).Create(context.Background(), actor.Customer(customer), booking(4, "18:00", "20:00"))

		require.Error(t, err)
		assert.True(t, failure.IsRetryable(err))
	})
}

func TestReservationService_ConcurrentBookings(t *testing.T) {
	f := newFixture(t)
	f.stock(eightTop(), eveningSlot())
	f.notifier.EXPECT().Publish(gomock.Any(), notifier.ReservationCreated, gomock.Any()).Times(1)

	repo := newMemoryRepo()
	svc := f.service(repo, &serialTransactor{})

	const bookers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	start := make(chan struct{})

	for i := 0; i < bookers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			<-start

			_, err := svc.Create(context.Background(), actor.Customer(customer), booking(4, "18:00", "20:00"))

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				succeeded++
			} else if failure.Is(err, failure.KindSchedulingConflict) {
				conflicts++
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, bookers-1, conflicts)
	assert.Equal(t, 1, repo.inserts)
	require.Len(t, repo.locks, bookers)

	for _, key := range repo.locks {
		assert.Equal(t, repository.ScheduleLockKey(tableID, "2024-06-01"), key)
	}
}

func TestReservationService_CancelThenRebook(t *testing.T) {
	f := newFixture(t)
	f.stock(eightTop(), eveningSlot())

	repo := newMemoryRepo()
	repo.rows["r-1"] = existing("r-1", model.StatusConfirmed, "18:00", "20:00")

	svc := f.service(repo, &serialTransactor{})

	_, err := svc.Create(context.Background(), actor.Customer("c-2"), booking(4, "18:00", "20:00"))
	require.Error(t, err)
	assert.Equal(t, failure.KindSchedulingConflict, failure.GetKind(err))

	f.notifier.EXPECT().Publish(gomock.Any(), notifier.ReservationCancelled, gomock.Any())
	require.NoError(t, svc.Delete(context.Background(), actor.Customer(customer), "r-1"))
	assert.Equal(t, model.StatusCancelled, repo.rows["r-1"].Status)

	f.notifier.EXPECT().Publish(gomock.Any(), notifier.ReservationCreated, gomock.Any())

	_, err = svc.Create(context.Background(), actor.Customer("c-2"), booking(4, "18:00", "20:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, repo.inserts)
}

func TestReservationService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		who      actor.Actor
		status   string
		event    notifier.Event
		wantKind failure.Kind
		gone     bool
	}{
		{name: "staff removes the record", who: actor.Staff("s-1"), status: model.StatusSeated, event: notifier.ReservationDeleted, gone: true},
		{name: "owner cancels pending", who: actor.Customer(customer), status: model.StatusPending, event: notifier.ReservationCancelled},
		{name: "other customer", who: actor.Customer("c-2"), status: model.StatusPending, wantKind: failure.KindAuthorization},
		{name: "owner cannot cancel once seated", who: actor.Customer(customer), status: model.StatusSeated, wantKind: failure.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			repo := newMemoryRepo()
			repo.rows["r-1"] = existing("r-1", tt.status, "18:00", "20:00")

			if tt.event != "" {
				f.notifier.EXPECT().Publish(gomock.Any(), tt.event, gomock.Any())
			}

			err := f.service(repo, &serialTransactor{}).Delete(context.Background(), tt.who, "r-1")

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))
				assert.Equal(t, tt.status, repo.rows["r-1"].Status)

				return
			}

			require.NoError(t, err)

			_, found := repo.rows["r-1"]
			assert.Equal(t, !tt.gone, found)
		})
	}

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		err := f.service(newMemoryRepo(), &serialTransactor{}).Delete(context.Background(), actor.Staff("s-1"), "missing")

		require.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}

func TestReservationService_Update(t *testing.T) {
	t.Run("status change never writes price columns", func(t *testing.T) {
		f := newFixture(t)
		ctrl := gomock.NewController(t)
		repo := reservationMocks.NewMockReservation(ctrl)

		current := existing("r-1", model.StatusPending, "18:00", "20:00")
		confirmed := current
		confirmed.Status = model.StatusConfirmed

		gomock.InOrder(
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil),
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil),
		)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])
				assert.NotContains(t, fields, model.FieldPricePerPersonAtBooking)
				assert.NotContains(t, fields, model.FieldTotalPrice)

				return nil
			})
		f.notifier.EXPECT().Publish(gomock.Any(), notifier.ReservationUpdated, gomock.Any())

		status := model.StatusConfirmed
		res, err := f.service(repo, &serialTransactor{}).Update(context.Background(), actor.Staff("s-1"), dto.UpdateReservationRequest{Status: &status}, "r-1")

		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, res.Status)
	})

	t.Run("reschedule onto an occupied window", func(t *testing.T) {
		f := newFixture(t)

		repo := newMemoryRepo()
		repo.rows["r-1"] = existing("r-1", model.StatusConfirmed, "18:00", "19:00")
		repo.rows["r-2"] = existing("r-2", model.StatusConfirmed, "19:00", "20:00")

		start, end := "18:30", "19:30"
		_, err := f.service(repo, &serialTransactor{}).Update(context.Background(), actor.Staff("s-1"), dto.UpdateReservationRequest{StartTime: &start, EndTime: &end}, "r-1")

		require.Error(t, err)
		assert.Equal(t, failure.KindSchedulingConflict, failure.GetKind(err))
		assert.Len(t, repo.locks, 1)
	})

	t.Run("reschedule does not collide with itself", func(t *testing.T) {
		f := newFixture(t)
		f.notifier.EXPECT().Publish(gomock.Any(), notifier.ReservationUpdated, gomock.Any())

		repo := newMemoryRepo()
		repo.rows["r-1"] = existing("r-1", model.StatusConfirmed, "18:00", "19:00")

		end := "19:30"
		_, err := f.service(repo, &serialTransactor{}).Update(context.Background(), actor.Staff("s-1"), dto.UpdateReservationRequest{EndTime: &end}, "r-1")

		require.NoError(t, err)
	})

	t.Run("customer cancels through update", func(t *testing.T) {
		f := newFixture(t)
		f.notifier.EXPECT().Publish(gomock.Any(), notifier.ReservationCancelled, gomock.Any())

		repo := newMemoryRepo()
		repo.rows["r-1"] = existing("r-1", model.StatusConfirmed, "18:00", "20:00")

		status := model.StatusCancelled
		res, err := f.service(repo, &serialTransactor{}).Update(context.Background(), actor.Customer(customer), dto.UpdateReservationRequest{Status: &status}, "r-1")

		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Status)
	})

	t.Run("customer cannot confirm", func(t *testing.T) {
		f := newFixture(t)

		repo := newMemoryRepo()
		repo.rows["r-1"] = existing("r-1", model.StatusPending, "18:00", "20:00")

		status := model.StatusConfirmed
		_, err := f.service(repo, &serialTransactor{}).Update(context.Background(), actor.Customer(customer), dto.UpdateReservationRequest{Status: &status}, "r-1")

		require.Error(t, err)
		assert.Equal(t, failure.KindAuthorization, failure.GetKind(err))
	})

	t.Run("empty change", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service(newMemoryRepo(), &serialTransactor{}).Update(context.Background(), actor.Staff("s-1"), dto.UpdateReservationRequest{}, "r-1")

		require.Error(t, err)
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})
}

func TestReservationService_GetAll(t *testing.T) {
	tests := []struct {
		name      string
		who       actor.Actor
		params    gDto.QueryParams
		filter    dto.ReservationFilter
		wantLimit int
		wantOwner string
	}{
		{name: "customer sees own only", who: actor.Customer(customer), filter: dto.ReservationFilter{Customer: "c-2"}, wantLimit: 20, wantOwner: customer},
		{name: "staff filters by customer", who: actor.Staff("s-1"), filter: dto.ReservationFilter{Customer: "c-2"}, params: gDto.QueryParams{Page: 1, Limit: 500}, wantLimit: 100, wantOwner: "c-2"},
		{name: "staff sees everyone", who: actor.Staff("s-1"), params: gDto.QueryParams{Page: 2, Limit: 10}, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctrl := gomock.NewController(t)
			repo := reservationMocks.NewMockReservation(ctrl)

			assertScope := func(group gDto.FilterGroup) {
				owner := ""

				for _, item := range group.Filters {
					if filter, ok := item.(gDto.Filter); ok && filter.Field == model.FieldCustomerID {
						owner, _ = filter.Value.(string)
					}
				}

				assert.Equal(t, tt.wantOwner, owner)
			}

			repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, group gDto.FilterGroup) (int, error) {
				assertScope(group)

				return 1, nil
			})
			repo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params gDto.QueryParams, group gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
					assertScope(group)
					assert.Equal(t, tt.wantLimit, params.Limit)
					assert.Equal(t, "ORDER BY reservations.reservation_date DESC, reservations.start_time DESC", params.OrderClause())

					return []model.Reservation{existing("r-1", model.StatusPending, "18:00", "20:00")}, nil
				})

			res, err := f.service(repo, &serialTransactor{}).GetAll(context.Background(), tt.who, tt.params, tt.filter)

			require.NoError(t, err)
			assert.Len(t, res.Reservations, 1)
			assert.Equal(t, 1, res.TotalData)
		})
	}
}

func TestReservationService_Get(t *testing.T) {
	tests := []struct {
		name     string
		who      actor.Actor
		wantKind failure.Kind
	}{
		{name: "owner", who: actor.Customer(customer)},
		{name: "staff", who: actor.Staff("s-1")},
		{name: "stranger", who: actor.Customer("c-2"), wantKind: failure.KindAuthorization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			repo := newMemoryRepo()
			repo.rows["r-1"] = existing("r-1", model.StatusPending, "18:00", "20:00")

			res, err := f.service(repo, &serialTransactor{}).Get(context.Background(), tt.who, "r-1")

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "r-1", res.ID)
		})
	}
}

func existing(id, status, start, end string) model.Reservation {
	r := model.Reservation{
		ID:              id,
		CustomerID:      customer,
		TableID:         tableID,
		PartySize:       4,
		ReservationDate: bookingDay,
		Status:          status,
	}

	window, _ := schedule.ParseWindow(start, end)
	r.SetWindow(window)

	return r
}
