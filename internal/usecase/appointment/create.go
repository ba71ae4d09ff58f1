package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type RecurrenceInput struct {
	Type     string
	Interval int
	EndDate  string
	Count    int
}

type CreateAppointmentInput struct {
	BarbershopID uint
	BarberID     uint
	ClientID     uint

	ServiceIDs []uint

	Date string
	Time string

	// Override manual de duração (5–480 min); 0 = calculada
	DurationMin int

	Notes string

	Recurrence RecurrenceInput

	// Tolera double-booking intencional (nunca bloqueios)
	AllowOverlap bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute cria uma ocorrência por data gerada, com uma linha de serviço
// por serviço por agendamento, capturando preço e comissão do momento.
// Mais de uma ocorrência → todas compartilham um grupo recém-gerado.
// Retorna o primeiro agendamento criado como handle representativo.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(shop.Timezone)

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
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

	// Barbeiro inválido degrada a duração para o fallback, mas o
	// agendamento em si precisa de um barbeiro existente.
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

	spec, err := parseRecurrence(in.Recurrence, loc)
	if err != nil {
		return nil, err
	}

	dates := domain.Occurrences(start, spec)

	if err := detectConflicts(
		ctx,
		uc.repo,
		in.BarbershopID,
		in.BarberID,
		dates,
		durationMin,
		in.AllowOverlap,
		0,
	); err != nil {
		return nil, err
	}

	// Grupo só existe quando a recorrência produz mais de uma ocorrência
	var groupID *string
	if len(dates) > 1 {
		id := uuid.NewString()
		groupID = &id
	}

	aps := make([]*models.Appointment, 0, len(dates))
	for _, date := range dates {
		ap := &models.Appointment{
			BarbershopID:      in.BarbershopID,
			BarberID:          in.BarberID,
			ClientID:          client.ID,
			StartTime:         date,
			DurationMin:       durationMin,
			TotalPrice:        totalPrice,
			Status:            string(domain.InitialStatus()),
			AllowOverlap:      in.AllowOverlap,
			Notes:             in.Notes,
			RecurrenceGroupID: groupID,
			Services:          snapshotLines(services, barber),
		}
		aps = append(aps, ap)
	}

	if err := uc.repo.CreateBatch(ctx, aps); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	first := aps[0]
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &first.ID,
		Metadata: map[string]any{
			"occurrences": len(aps),
			"group_id":    groupID,
		},
	})

	return first, nil
}

// snapshotLines captura nome, preço, comissão e duração de cada serviço
// no momento da reserva — imutáveis depois disso.
func snapshotLines(services []models.Service, barber *models.User) []models.AppointmentService {
	lines := make([]models.AppointmentService, 0, len(services))
	for i := range services {
		svc := services[i]
		lines = append(lines, models.AppointmentService{
			ServiceID:      svc.ID,
			Name:           svc.Name,
			Price:          svc.Price,
			CommissionRate: barber.CommissionFor(&svc),
			DurationMin:    domain.ServiceDuration(&svc, barber),
		})
	}
	return lines
}

func parseRecurrence(in RecurrenceInput, loc *time.Location) (domain.RecurrenceSpec, error) {
	spec := domain.RecurrenceSpec{
		Type:     domain.RecurrenceType(in.Type),
		Interval: in.Interval,
		Count:    in.Count,
	}
	if in.Type == "" {
		spec.Type = domain.RecurrenceNone
	}

	if in.EndDate != "" {
		day, err := time.ParseInLocation("2006-01-02", in.EndDate, loc)
		if err != nil {
			return spec, httperr.ErrBusiness("invalid_recurrence_end_date")
		}
		// data final é inclusiva: ocorrências no próprio dia contam
		end := day.Add(24*time.Hour - time.Second)
		spec.EndDate = &end
	}

	return spec, nil
}
