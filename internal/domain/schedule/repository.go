package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type Repository interface {
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	// CreateFamily persiste o pai recorrente e seus filhos em uma
	// transação; bloqueio avulso é uma família de um elemento.
	CreateFamily(
		ctx context.Context,
		parent *models.ScheduleBlock,
		children []*models.ScheduleBlock,
	) error

	GetBlock(
		ctx context.Context,
		barbershopID uint,
		blockID uint,
	) (*models.ScheduleBlock, error)

	DeleteBlock(
		ctx context.Context,
		blockID uint,
	) error

	// DeleteFamily remove pai + filhos; from limita aos datados em
	// from ou depois (escopo "future").
	DeleteFamily(
		ctx context.Context,
		barbershopID uint,
		parentID uint,
		from *time.Time,
	) error

	ListForRange(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.ScheduleBlock, error)
}
