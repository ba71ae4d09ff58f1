package scheduleblock

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	apDomain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

type CreateBlockInput struct {
	BarbershopID uint
	UserID       uint

	// Nulo = bloqueio geral, todos os barbeiros
	BarberID *uint

	Date      string
	StartTime string
	EndTime   string
	Reason    string

	IsRecurring       bool
	RecurrenceType    string
	RecurrenceEndDate string
}

type CreateScheduleBlock struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateScheduleBlock(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateScheduleBlock {
	return &CreateScheduleBlock{
		repo:  repo,
		audit: audit,
	}
}

// Execute cria um bloqueio avulso, ou um pai recorrente que se desdobra
// em filhos não-recorrentes já na criação (os filhos apontam para o
// gerador).
func (uc *CreateScheduleBlock) Execute(
	ctx context.Context,
	in CreateBlockInput,
) (*models.ScheduleBlock, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(shop.Timezone)

	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	startHM, err := time.Parse("15:04", in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}
	endHM, err := time.Parse("15:04", in.EndTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}
	if !endHM.After(startHM) {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	parent := &models.ScheduleBlock{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		Date:         date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Reason:       in.Reason,
	}

	var children []*models.ScheduleBlock

	if in.IsRecurring {
		spec := apDomain.RecurrenceSpec{
			Type:     apDomain.RecurrenceType(in.RecurrenceType),
			Interval: 1,
		}
		if in.RecurrenceEndDate != "" {
			day, err := time.ParseInLocation("2006-01-02", in.RecurrenceEndDate, loc)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_recurrence_end_date")
			}
			end := day.Add(24*time.Hour - time.Second)
			spec.EndDate = &end
			parent.RecurrenceEndDate = &day
		}

		dates := apDomain.Occurrences(date, spec)
		if len(dates) < 2 {
			return nil, httperr.ErrBusiness("invalid_recurrence")
		}

		recurrenceType := in.RecurrenceType
		parent.IsRecurring = true
		parent.RecurrenceType = &recurrenceType

		// O pai ocupa a primeira data; cada data seguinte vira um
		// filho não-recorrente, com os campos de recorrência nulos
		for _, d := range dates[1:] {
			children = append(children, &models.ScheduleBlock{
				BarbershopID: in.BarbershopID,
				BarberID:     in.BarberID,
				Date:         d,
				StartTime:    in.StartTime,
				EndTime:      in.EndTime,
				Reason:       in.Reason,
			})
		}
	}

	if err := uc.repo.CreateFamily(ctx, parent, children); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.UserID,
		Action:       "schedule_block_created",
		Entity:       "schedule_block",
		EntityID:     &parent.ID,
		Metadata:     map[string]any{"occurrences": 1 + len(children)},
	})

	return parent, nil
}
