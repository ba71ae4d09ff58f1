package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func (f *fixture) dispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(f.db))
}

func (f *fixture) mustCreate(t *testing.T, in CreateAppointmentInput) *models.Appointment {
	t.Helper()
	ap, err := f.createUC().Execute(context.Background(), in)
	require.NoError(t, err)
	return ap
}

// ======================================================
// COMPLETE
// ======================================================

func TestCompleteRequiresPaymentMethod(t *testing.T) {
	f := setupFixture(t)
	ap := f.mustCreate(t, f.baseInput())

	uc := NewCompleteAppointment(f.repo, f.dispatcher())

	_, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		BarbershopID:  f.shop.ID,
		BarberID:      f.barber.ID,
		AppointmentID: ap.ID,
	})
	assert.True(t, httperr.IsBusiness(err, "payment_method_required"))
}

func TestCompleteDefaultsFinalAmount(t *testing.T) {
	f := setupFixture(t)
	ap := f.mustCreate(t, f.baseInput())

	uc := NewCompleteAppointment(f.repo, f.dispatcher())

	done, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		BarbershopID:  f.shop.ID,
		BarberID:      f.barber.ID,
		AppointmentID: ap.ID,
		PaymentMethod: "pix",
	})
	require.NoError(t, err)

	assert.Equal(t, "completed", done.Status)
	require.NotNil(t, done.PaymentMethod)
	assert.Equal(t, "pix", *done.PaymentMethod)
	require.NotNil(t, done.FinalAmount)
	assert.Equal(t, ap.TotalPrice, *done.FinalAmount)
	assert.NotNil(t, done.CompletedAt)
}

func TestCompleteHonorsExplicitFinalAmount(t *testing.T) {
	f := setupFixture(t)
	ap := f.mustCreate(t, f.baseInput())

	uc := NewCompleteAppointment(f.repo, f.dispatcher())

	discounted := 60.0
	done, err := uc.Execute(context.Background(), CompleteAppointmentInput{
		BarbershopID:  f.shop.ID,
		BarberID:      f.barber.ID,
		AppointmentID: ap.ID,
		PaymentMethod: "dinheiro",
		FinalAmount:   &discounted,
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, *done.FinalAmount)
}

func TestCompleteTwiceRejected(t *testing.T) {
	f := setupFixture(t)
	ap := f.mustCreate(t, f.baseInput())

	uc := NewCompleteAppointment(f.repo, f.dispatcher())
	in := CompleteAppointmentInput{
		BarbershopID:  f.shop.ID,
		BarberID:      f.barber.ID,
		AppointmentID: ap.ID,
		PaymentMethod: "pix",
	}

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

// ======================================================
// CANCEL / NO-SHOW
// ======================================================

func TestCancelSetsTimestamp(t *testing.T) {
	f := setupFixture(t)
	ap := f.mustCreate(t, f.baseInput())

	uc := NewCancelAppointment(f.repo, f.dispatcher())

	cancelled, err := uc.Execute(context.Background(), f.shop.ID, f.barber.ID, ap.ID)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
}

func TestCancelledCannotComplete(t *testing.T) {
	f := setupFixture(t)
	ap := f.mustCreate(t, f.baseInput())

	cancelUC := NewCancelAppointment(f.repo, f.dispatcher())
	_, err := cancelUC.Execute(context.Background(), f.shop.ID, f.barber.ID, ap.ID)
	require.NoError(t, err)

	completeUC := NewCompleteAppointment(f.repo, f.dispatcher())
	_, err = completeUC.Execute(context.Background(), CompleteAppointmentInput{
		BarbershopID:  f.shop.ID,
		BarberID:      f.barber.ID,
		AppointmentID: ap.ID,
		PaymentMethod: "pix",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestMarkNoShow(t *testing.T) {
	f := setupFixture(t)
	ap := f.mustCreate(t, f.baseInput())

	uc := NewMarkNoShow(f.repo, f.dispatcher())

	marked, err := uc.Execute(context.Background(), f.shop.ID, f.barber.ID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "no_show", marked.Status)
}

// ======================================================
// UPDATE
// ======================================================

func TestUpdateTerminalRejected(t *testing.T) {
	f := setupFixture(t)
	ap := f.mustCreate(t, f.baseInput())

	cancelUC := NewCancelAppointment(f.repo, f.dispatcher())
	_, err := cancelUC.Execute(context.Background(), f.shop.ID, f.barber.ID, ap.ID)
	require.NoError(t, err)

	updateUC := NewUpdateAppointment(f.repo, f.dispatcher())
	_, err = updateUC.Execute(context.Background(), UpdateAppointmentInput{
		AppointmentID: ap.ID,
		BarbershopID:  f.shop.ID,
		ClientID:      f.client.ID,
		BarberID:      f.barber.ID,
		ServiceIDs:    []uint{f.services[0].ID},
		Date:          "2026-03-03",
		Time:          "11:00",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestUpdateMoveIgnoresOwnSlot(t *testing.T) {
	f := setupFixture(t)
	ap := f.mustCreate(t, f.baseInput())

	updateUC := NewUpdateAppointment(f.repo, f.dispatcher())

	// Mover 15 minutos dentro do próprio horário não conflita consigo
	moved, err := updateUC.Execute(context.Background(), UpdateAppointmentInput{
		AppointmentID: ap.ID,
		BarbershopID:  f.shop.ID,
		ClientID:      f.client.ID,
		BarberID:      f.barber.ID,
		ServiceIDs:    []uint{f.services[0].ID, f.services[1].ID},
		Date:          "2026-03-02",
		Time:          "10:15",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, moved.StartTime.Minute())
}

func TestUpdateKeepsSnapshotWhenServicesUnchanged(t *testing.T) {
	f := setupFixture(t)
	ap := f.mustCreate(t, f.baseInput())

	// Catálogo muda depois da reserva
	require.NoError(t, f.db.Model(&models.Service{}).
		Where("id = ?", f.services[0].ID).
		Update("price", 70).Error)

	updateUC := NewUpdateAppointment(f.repo, f.dispatcher())
	updated, err := updateUC.Execute(context.Background(), UpdateAppointmentInput{
		AppointmentID: ap.ID,
		BarbershopID:  f.shop.ID,
		ClientID:      f.client.ID,
		BarberID:      f.barber.ID,
		ServiceIDs:    []uint{f.services[0].ID, f.services[1].ID},
		Date:          "2026-03-02",
		Time:          "14:00",
	})
	require.NoError(t, err)

	// Mesmo conjunto de serviços → snapshot original preservado
	var lines []models.AppointmentService
	require.NoError(t, f.db.Where("appointment_id = ?", updated.ID).
		Order("id ASC").Find(&lines).Error)
	require.Len(t, lines, 2)
	assert.Equal(t, 50.0, lines[0].Price)
}

func TestUpdateResnapshotsOnServiceChange(t *testing.T) {
	f := setupFixture(t)
	ap := f.mustCreate(t, f.baseInput())

	updateUC := NewUpdateAppointment(f.repo, f.dispatcher())
	updated, err := updateUC.Execute(context.Background(), UpdateAppointmentInput{
		AppointmentID: ap.ID,
		BarbershopID:  f.shop.ID,
		ClientID:      f.client.ID,
		BarberID:      f.barber.ID,
		ServiceIDs:    []uint{f.services[0].ID}, // só o corte
		Date:          "2026-03-02",
		Time:          "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, updated.TotalPrice)
	assert.Equal(t, 30, updated.DurationMin)

	var lines int64
	require.NoError(t, f.db.Model(&models.AppointmentService{}).
		Where("appointment_id = ?", updated.ID).Count(&lines).Error)
	assert.EqualValues(t, 1, lines)
}
