package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type ScheduleBlockGormRepository struct {
	db *gorm.DB
}

func NewScheduleBlockGormRepository(db *gorm.DB) *ScheduleBlockGormRepository {
	return &ScheduleBlockGormRepository{db: db}
}

func (r *ScheduleBlockGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// CreateFamily grava o pai e, com o ID dele em mãos, os filhos
// apontando para o gerador. Tudo em uma transação.
func (r *ScheduleBlockGormRepository) CreateFamily(
	ctx context.Context,
	parent *models.ScheduleBlock,
	children []*models.ScheduleBlock,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(parent).Error; err != nil {
			return err
		}

		for _, child := range children {
			child.ParentBlockID = &parent.ID
			if err := tx.Create(child).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ScheduleBlockGormRepository) GetBlock(
	ctx context.Context,
	barbershopID uint,
	blockID uint,
) (*models.ScheduleBlock, error) {

	var block models.ScheduleBlock
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", blockID, barbershopID).
		First(&block).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *ScheduleBlockGormRepository) DeleteBlock(
	ctx context.Context,
	blockID uint,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.ScheduleBlock{}, blockID).Error
}

func (r *ScheduleBlockGormRepository) DeleteFamily(
	ctx context.Context,
	barbershopID uint,
	parentID uint,
	from *time.Time,
) error {

	q := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND (id = ? OR parent_block_id = ?)",
			barbershopID, parentID, parentID,
		)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}

	return q.Delete(&models.ScheduleBlock{}).Error
}

func (r *ScheduleBlockGormRepository) ListForRange(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.ScheduleBlock, error) {

	q := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND date >= ? AND date < ?",
			barbershopID, start, end,
		)

	if barberID > 0 {
		q = q.Where("(barber_id IS NULL OR barber_id = ?)", barberID)
	}

	var blocks []models.ScheduleBlock
	if err := q.Order("date ASC, start_time ASC").Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleBlockGormRepository)(nil)
