package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Directories
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", barberID, barbershopID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", clientID, barbershopID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) ListServicesByIDs(
	ctx context.Context,
	barbershopID uint,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND id IN ?", barbershopID, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Conflict sources
// --------------------------------------------------

func (r *AppointmentGormRepository) ListScheduledInWindow(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Where(
			"barber_id = ? AND status = 'scheduled' AND start_time >= ? AND start_time < ?",
			barberID, start, end,
		)

	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListBlocksForDay(
	ctx context.Context,
	barbershopID uint,
	day time.Time,
) ([]models.ScheduleBlock, error) {

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var blocks []models.ScheduleBlock
	if err := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND date >= ? AND date < ?",
			barbershopID, dayStart, dayEnd,
		).
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// --------------------------------------------------
// Appointment (create / mutate)
// --------------------------------------------------

// CreateBatch grava todas as ocorrências de um lote em uma transação:
// ou o lote inteiro entra, ou nada entra. O re-check com lock dentro da
// transação estreita a corrida check-then-insert; a exclusion constraint
// do Postgres fecha o resto.
func (r *AppointmentGormRepository) CreateBatch(
	ctx context.Context,
	aps []*models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ap := range aps {
			if !ap.AllowOverlap {
				q := tx.Model(&models.Appointment{})
				if tx.Dialector.Name() == "postgres" {
					q = q.Clauses(clause.Locking{Strength: "UPDATE"})
				}

				fetchFrom := ap.StartTime.Add(
					-time.Duration(domain.MaxOverrideDurationMin) * time.Minute,
				)

				var existing []models.Appointment
				if err := q.
					Where(
						"barber_id = ? AND status = 'scheduled' AND start_time > ? AND start_time < ?",
						ap.BarberID, fetchFrom, ap.EndTime(),
					).
					Find(&existing).Error; err != nil {
					return err
				}
				for i := range existing {
					if domain.Overlaps(
						existing[i].StartTime, existing[i].EndTime(),
						ap.StartTime, ap.EndTime(),
					) {
						return httperr.ErrBusiness("time_conflict")
					}
				}
			}

			if err := tx.Create(ap).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Client").
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// UpdateAppointment regrava os campos do agendamento e, quando lines não
// é nulo, apaga e reinsere as linhas de serviço com snapshots novos.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	lines []models.AppointmentService,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Services", "Client", "Barber", "Barbershop").
			Save(ap).Error; err != nil {
			return err
		}

		if lines == nil {
			return nil
		}

		if err := tx.
			Where("appointment_id = ?", ap.ID).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}

		for i := range lines {
			lines[i].ID = 0
			lines[i].AppointmentID = ap.ID
		}
		return tx.Create(&lines).Error
	})
}

func (r *AppointmentGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit("Services", "Client", "Barber", "Barbershop").
		Save(ap).Error
}

// DeleteAppointment remove primeiro as linhas de serviço, depois o
// agendamento (as linhas dependem da existência dele).
func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	appointmentID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("appointment_id = ?", appointmentID).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Appointment{}, appointmentID).Error
	})
}

// --------------------------------------------------
// Recurring group
// --------------------------------------------------

func (r *AppointmentGormRepository) ListGroup(
	ctx context.Context,
	barbershopID uint,
	groupID string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("barbershop_id = ? AND recurrence_group_id = ?", barbershopID, groupID).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) DeleteGroup(
	ctx context.Context,
	barbershopID uint,
	groupID string,
	from *time.Time,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Appointment{}).
			Where("barbershop_id = ? AND recurrence_group_id = ?", barbershopID, groupID)
		if from != nil {
			q = q.Where("start_time >= ?", *from)
		}

		var ids []uint
		if err := q.Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.
			Where("appointment_id IN ?", ids).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Appointment{}, ids).Error
	})
}

func (r *AppointmentGormRepository) PatchGroup(
	ctx context.Context,
	barbershopID uint,
	groupID string,
	patch domain.GroupPatch,
) error {

	fields := map[string]any{}
	if patch.ClientID != nil {
		fields["client_id"] = *patch.ClientID
	}
	if patch.BarberID != nil {
		fields["barber_id"] = *patch.BarberID
	}
	if patch.Notes != nil {
		fields["notes"] = *patch.Notes
	}
	if len(fields) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barbershop_id = ? AND recurrence_group_id = ?", barbershopID, groupID).
		Updates(fields).Error
}

// ReplaceGroupServices aplica o novo snapshot de serviços identicamente
// a todos os irmãos do grupo: linhas totalmente substituídas, total e
// duração recalculados uma vez pelo chamador.
func (r *AppointmentGormRepository) ReplaceGroupServices(
	ctx context.Context,
	barbershopID uint,
	groupID string,
	totalPrice float64,
	durationMin int,
	lines []models.AppointmentService,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Appointment{}).
			Where("barbershop_id = ? AND recurrence_group_id = ?", barbershopID, groupID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		for _, id := range ids {
			if err := tx.
				Where("appointment_id = ?", id).
				Delete(&models.AppointmentService{}).Error; err != nil {
				return err
			}

			fresh := make([]models.AppointmentService, len(lines))
			copy(fresh, lines)
			for i := range fresh {
				fresh[i].ID = 0
				fresh[i].AppointmentID = id
			}
			if err := tx.Create(&fresh).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Appointment{}).
			Where("id IN ?", ids).
			Updates(map[string]any{
				"total_price":  totalPrice,
				"duration_min": durationMin,
			}).Error
	})
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where(
			"barbershop_id = ? AND start_time >= ? AND start_time < ?",
			barbershopID, start, end,
		)

	if barberID > 0 {
		q = q.Where("barber_id = ?", barberID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
