package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

type UpdateAppointmentInput struct {
	AppointmentID uint
	BarbershopID  uint

	ClientID uint
	BarberID uint

	ServiceIDs []uint

	Date string
	Time string

	DurationMin int
	Notes       string

	AllowOverlap bool
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute substitui cliente/barbeiro/serviços/data/hora/duração/nota de
// exatamente um agendamento. Troca de serviços apaga e reinsere as
// linhas com snapshots frescos; total e duração são recalculados.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.BarbershopID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// Agendamento em estado terminal não é editável
	if domain.IsTerminal(domain.Status(ap.Status)) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("services_required")
	}
	if !domain.ValidOverride(in.DurationMin) {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	client, err := uc.repo.GetClient(ctx, in.BarbershopID, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	services, err := uc.repo.ListServicesByIDs(ctx, in.BarbershopID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(in.ServiceIDs) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	durationMin := domain.TotalDuration(services, barber, in.DurationMin)

	totalPrice := 0.0
	for _, svc := range services {
		totalPrice += svc.Price
	}

	// O próprio agendamento não conflita consigo mesmo
	if err := detectConflicts(
		ctx,
		uc.repo,
		in.BarbershopID,
		in.BarberID,
		[]time.Time{start},
		durationMin,
		in.AllowOverlap,
		ap.ID,
	); err != nil {
		return nil, err
	}

	ap.ClientID = client.ID
	ap.BarberID = barber.ID
	ap.StartTime = start
	ap.DurationMin = durationMin
	ap.TotalPrice = totalPrice
	ap.AllowOverlap = in.AllowOverlap
	ap.Notes = in.Notes

	var lines []models.AppointmentService
	if serviceSetChanged(ap.Services, in.ServiceIDs) {
		lines = snapshotLines(services, barber)
	}
	ap.Services = nil

	if err := uc.repo.UpdateAppointment(ctx, ap, lines); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "appointment_updated",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

func serviceSetChanged(current []models.AppointmentService, wanted []uint) bool {
	if len(current) != len(wanted) {
		return true
	}

	have := make(map[uint]int, len(current))
	for _, line := range current {
		have[line.ServiceID]++
	}
	for _, id := range wanted {
		if have[id] == 0 {
			return true
		}
		have[id]--
	}
	return false
}
