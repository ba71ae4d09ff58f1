package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

// Escopos de mutação em grupo recorrente
const (
	ScopeSingle = "single"
	ScopeFuture = "future"
	ScopeAll    = "all"
)

type DeleteGroupInput struct {
	BarbershopID  uint
	BarberID      uint
	AppointmentID uint
	Scope         string
}

type DeleteRecurringGroup struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteRecurringGroup(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteRecurringGroup {
	return &DeleteRecurringGroup{
		repo:  repo,
		audit: audit,
	}
}

// Execute remove membros do grupo do agendamento referenciado:
// single = só ele; future = ele e os irmãos de data posterior;
// all = o grupo inteiro, passado e futuro.
func (uc *DeleteRecurringGroup) Execute(
	ctx context.Context,
	in DeleteGroupInput,
) error {

	ap, err := uc.repo.GetAppointment(ctx, in.BarbershopID, in.AppointmentID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	scope := in.Scope
	if scope == "" {
		scope = ScopeSingle
	}

	// Sem grupo só existe o escopo single
	if ap.RecurrenceGroupID == nil {
		scope = ScopeSingle
	}

	switch scope {
	case ScopeSingle:
		if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
			return err
		}

	case ScopeFuture:
		from := ap.StartTime
		if err := uc.repo.DeleteGroup(ctx, in.BarbershopID, *ap.RecurrenceGroupID, &from); err != nil {
			return err
		}

	case ScopeAll:
		if err := uc.repo.DeleteGroup(ctx, in.BarbershopID, *ap.RecurrenceGroupID, nil); err != nil {
			return err
		}

	default:
		return httperr.ErrBusiness("invalid_scope")
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "appointment_group_deleted",
		Entity:       "appointment",
		EntityID:     &in.AppointmentID,
		Metadata:     map[string]any{"scope": scope},
	})

	return nil
}
