package scheduleblock

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

type ListScheduleBlocks struct {
	repo domain.Repository
}

func NewListScheduleBlocks(repo domain.Repository) *ListScheduleBlocks {
	return &ListScheduleBlocks{repo: repo}
}

func (uc *ListScheduleBlocks) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.ScheduleBlock, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc).Add(24 * time.Hour)

	return uc.repo.ListForRange(ctx, barbershopID, barberID, start, end)
}
