package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

type UpdateGroupInput struct {
	BarbershopID  uint
	UserID        uint
	AppointmentID uint

	ClientID *uint
	BarberID *uint
	Notes    *string

	// Nulo = conjunto de serviços não muda
	ServiceIDs []uint
}

type UpdateRecurringGroup struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateRecurringGroup(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateRecurringGroup {
	return &UpdateRecurringGroup{
		repo:  repo,
		audit: audit,
	}
}

// Execute aplica a mutação a todos os irmãos do grupo. Troca de
// serviços recalcula preço/duração/comissão uma única vez (lookup
// representativo) e aplica idêntico a cada irmão, substituindo as
// linhas por inteiro. Sem troca de serviços, só cliente/barbeiro/nota
// são remendados — nenhum recálculo.
func (uc *UpdateRecurringGroup) Execute(
	ctx context.Context,
	in UpdateGroupInput,
) error {

	ap, err := uc.repo.GetAppointment(ctx, in.BarbershopID, in.AppointmentID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}
	if ap.RecurrenceGroupID == nil {
		return httperr.ErrBusiness("not_recurring")
	}
	groupID := *ap.RecurrenceGroupID

	if in.ServiceIDs != nil && serviceSetChanged(ap.Services, in.ServiceIDs) {
		// Barbeiro representativo: o novo, se trocou; senão o atual
		barberID := ap.BarberID
		if in.BarberID != nil {
			barberID = *in.BarberID
		}
		barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, barberID)
		if err != nil {
			return httperr.ErrBusiness("barber_not_found")
		}

		services, err := uc.repo.ListServicesByIDs(ctx, in.BarbershopID, in.ServiceIDs)
		if err != nil {
			return err
		}
		if len(services) != len(in.ServiceIDs) {
			return httperr.ErrBusiness("service_not_found")
		}

		durationMin := domain.TotalDuration(services, barber, 0)
		totalPrice := 0.0
		for _, svc := range services {
			totalPrice += svc.Price
		}

		lines := snapshotLines(services, barber)
		if err := uc.repo.ReplaceGroupServices(
			ctx,
			in.BarbershopID,
			groupID,
			totalPrice,
			durationMin,
			lines,
		); err != nil {
			return err
		}
	}

	if err := uc.repo.PatchGroup(ctx, in.BarbershopID, groupID, domain.GroupPatch{
		ClientID: in.ClientID,
		BarberID: in.BarberID,
		Notes:    in.Notes,
	}); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.UserID,
		Action:       "appointment_group_updated",
		Entity:       "appointment",
		EntityID:     &in.AppointmentID,
	})

	return nil
}
