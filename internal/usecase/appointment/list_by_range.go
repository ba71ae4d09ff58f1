package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/dto"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

type ListAppointmentsByRange struct {
	repo domain.Repository
}

func NewListAppointmentsByRange(
	repo domain.Repository,
) *ListAppointmentsByRange {
	return &ListAppointmentsByRange{
		repo: repo,
	}
}

// Execute lista agendamentos de um intervalo de datas, opcionalmente
// filtrando por barbeiro (0 = todos). É a consulta que a camada de
// sincronização reexecuta a cada recarga.
func (uc *ListAppointmentsByRange) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]dto.AppointmentListDTO, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc).Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		barbershopID,
		barberID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for i := range appointments {
		out = append(out, dto.FromAppointment(&appointments[i]))
	}

	return out, nil
}
