package appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	dbpkg "github.com/BruksfildServices01/barber-agenda/internal/db"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	infraRepo "github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// ======================================================
// SETUP
// ======================================================

type fixture struct {
	db   *gorm.DB
	repo *infraRepo.AppointmentGormRepository

	shop     models.Barbershop
	barber   models.User
	client   models.Client
	services []models.Service
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		sqlite.Dialector{DriverName: "sqlite", DSN: dsn},
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	f := &fixture{db: db, repo: infraRepo.NewAppointmentGormRepository(db)}

	f.shop = models.Barbershop{
		Name:     "Barbearia Central",
		Slug:     "central-" + t.Name(),
		Timezone: "America/Sao_Paulo",
	}
	require.NoError(t, db.Create(&f.shop).Error)

	f.barber = models.User{
		BarbershopID: f.shop.ID,
		Name:         "João",
		Email:        t.Name() + "@barber.test",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&f.barber).Error)

	f.client = models.Client{
		BarbershopID: f.shop.ID,
		Name:         "Carlos",
		Phone:        "11999990000",
	}
	require.NoError(t, db.Create(&f.client).Error)

	f.services = []models.Service{
		{BarbershopID: f.shop.ID, Name: "Corte", Price: 50, DurationMin: 30, Active: true},
		{BarbershopID: f.shop.ID, Name: "Barba", Price: 30, DurationMin: 15, Active: true},
	}
	for i := range f.services {
		require.NoError(t, db.Create(&f.services[i]).Error)
	}

	return f
}

func (f *fixture) createUC() *CreateAppointment {
	return NewCreateAppointment(f.repo, audit.NewDispatcher(audit.New(f.db)))
}

func (f *fixture) baseInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		BarbershopID: f.shop.ID,
		BarberID:     f.barber.ID,
		ClientID:     f.client.ID,
		ServiceIDs:   []uint{f.services[0].ID, f.services[1].ID},
		Date:         "2026-03-02", // segunda-feira
		Time:         "10:00",
	}
}

func (f *fixture) countAppointments(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Appointment{}).Count(&n).Error)
	return n
}

// ======================================================
// CREATE
// ======================================================

func TestCreateSingleAppointment(t *testing.T) {
	f := setupFixture(t)

	ap, err := f.createUC().Execute(context.Background(), f.baseInput())
	require.NoError(t, err)

	assert.Equal(t, "scheduled", ap.Status)
	assert.Equal(t, 45, ap.DurationMin) // 30 + 15
	assert.Equal(t, 80.0, ap.TotalPrice)
	assert.Nil(t, ap.RecurrenceGroupID, "ocorrência única não ganha grupo")
	assert.Len(t, ap.Services, 2)

	// Snapshot das linhas carrega preço e duração do momento
	assert.Equal(t, "Corte", ap.Services[0].Name)
	assert.Equal(t, 50.0, ap.Services[0].Price)
	assert.Equal(t, 30, ap.Services[0].DurationMin)
}

func TestCreateWeeklySeriesSharesGroup(t *testing.T) {
	f := setupFixture(t)

	in := f.baseInput()
	in.Recurrence = RecurrenceInput{Type: "weekly", Interval: 1, Count: 3}

	first, err := f.createUC().Execute(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, first.RecurrenceGroupID)

	var aps []models.Appointment
	require.NoError(t, f.db.Order("start_time ASC").Find(&aps).Error)
	require.Len(t, aps, 3)

	for i, ap := range aps {
		require.NotNil(t, ap.RecurrenceGroupID)
		assert.Equal(t, *first.RecurrenceGroupID, *ap.RecurrenceGroupID)
		assert.Equal(t, time.Monday, ap.StartTime.Weekday())

		if i > 0 {
			assert.Equal(t,
				aps[i-1].StartTime.AddDate(0, 0, 7).Unix(),
				ap.StartTime.Unix(),
			)
		}
	}

	// Uma linha de serviço por serviço por agendamento
	var lines int64
	require.NoError(t, f.db.Model(&models.AppointmentService{}).Count(&lines).Error)
	assert.EqualValues(t, 6, lines)
}

func TestCreateRejectsOverlappingAppointment(t *testing.T) {
	f := setupFixture(t)
	uc := f.createUC()

	_, err := uc.Execute(context.Background(), f.baseInput())
	require.NoError(t, err)

	// 10:15 cai dentro de [10:00, 10:45)
	in := f.baseInput()
	in.Time = "10:15"

	_, err = uc.Execute(context.Background(), in)
	require.Error(t, err)

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, domain.ConflictAppointment, conflictErr.Conflicts[0].Kind)
	assert.Equal(t, "Carlos", conflictErr.Conflicts[0].ClientName)

	assert.EqualValues(t, 1, f.countAppointments(t))
}

func TestCreateAllowOverlapToleratesDoubleBooking(t *testing.T) {
	f := setupFixture(t)
	uc := f.createUC()

	_, err := uc.Execute(context.Background(), f.baseInput())
	require.NoError(t, err)

	in := f.baseInput()
	in.Time = "10:15"
	in.AllowOverlap = true

	_, err = uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.EqualValues(t, 2, f.countAppointments(t))
}

func TestCreateBlockConflictNeverOverridable(t *testing.T) {
	f := setupFixture(t)

	loc, _ := time.LoadLocation("America/Sao_Paulo")
	block := models.ScheduleBlock{
		BarbershopID: f.shop.ID,
		Date:         time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
		StartTime:    "09:00",
		EndTime:      "12:00",
		Reason:       "manutenção",
	}
	require.NoError(t, f.db.Create(&block).Error)

	in := f.baseInput()
	in.AllowOverlap = true // override não vale contra bloqueio

	_, err := f.createUC().Execute(context.Background(), in)
	require.Error(t, err)

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.True(t, conflictErr.HasBlockConflict())
	assert.Equal(t, "manutenção", conflictErr.Conflicts[0].Reason)

	assert.EqualValues(t, 0, f.countAppointments(t))
}

func TestCreateBatchAllOrNothing(t *testing.T) {
	f := setupFixture(t)
	uc := f.createUC()

	// Ocupa a terceira segunda-feira da série
	in := f.baseInput()
	in.Date = "2026-03-16"
	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	series := f.baseInput()
	series.Recurrence = RecurrenceInput{Type: "weekly", Interval: 1, Count: 3}

	_, err = uc.Execute(context.Background(), series)
	require.Error(t, err)

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))

	// Só o agendamento pré-existente sobrevive: nenhuma data da série
	// foi persistida
	assert.EqualValues(t, 1, f.countAppointments(t))
}

func TestCreateValidatesInput(t *testing.T) {
	f := setupFixture(t)
	uc := f.createUC()

	in := f.baseInput()
	in.ServiceIDs = nil
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "services_required"))

	in = f.baseInput()
	in.DurationMin = 3
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_duration"))

	in = f.baseInput()
	in.ClientID = 9999
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))

	in = f.baseInput()
	in.ServiceIDs = []uint{9999}
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateManualDurationOverride(t *testing.T) {
	f := setupFixture(t)

	in := f.baseInput()
	in.DurationMin = 90

	ap, err := f.createUC().Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 90, ap.DurationMin)
}
