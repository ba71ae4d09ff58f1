package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

type CompleteAppointmentInput struct {
	BarbershopID  uint
	BarberID      uint
	AppointmentID uint

	PaymentMethod string
	FinalAmount   *float64
}

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute é a única transição que grava dados de pagamento: exige o
// método e aceita valor final opcional, que por omissão é o total
// original do agendamento.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	in CompleteAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	if in.PaymentMethod == "" {
		return nil, httperr.ErrBusiness("payment_method_required")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.BarbershopID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanTransition(domain.Status(ap.Status), domain.StatusCompleted); err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)

	finalAmount := ap.TotalPrice
	if in.FinalAmount != nil {
		finalAmount = *in.FinalAmount
	}

	ap.Status = string(domain.StatusCompleted)
	ap.PaymentMethod = &in.PaymentMethod
	ap.FinalAmount = &finalAmount
	ap.CompletedAt = &now

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "appointment_completed",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]any{
			"payment_method": in.PaymentMethod,
			"final_amount":   finalAmount,
		},
	})

	return ap, nil
}
