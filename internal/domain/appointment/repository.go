package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// GroupPatch são os campos atualizáveis em lote sem troca de serviços.
// Ponteiro nulo = campo não muda.
type GroupPatch struct {
	ClientID *uint
	BarberID *uint
	Notes    *string
}

type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	// -------- Directories --------
	GetBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.User, error)

	GetClient(
		ctx context.Context,
		barbershopID uint,
		clientID uint,
	) (*models.Client, error)

	ListServicesByIDs(
		ctx context.Context,
		barbershopID uint,
		ids []uint,
	) ([]models.Service, error)

	// -------- Conflict sources --------
	ListScheduledInWindow(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) ([]models.Appointment, error)

	ListBlocksForDay(
		ctx context.Context,
		barbershopID uint,
		day time.Time,
	) ([]models.ScheduleBlock, error)

	// -------- Appointment (create / mutate) --------
	CreateBatch(
		ctx context.Context,
		aps []*models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		barbershopID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		lines []models.AppointmentService,
	) error

	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		appointmentID uint,
	) error

	// -------- Recurring group --------
	ListGroup(
		ctx context.Context,
		barbershopID uint,
		groupID string,
	) ([]models.Appointment, error)

	DeleteGroup(
		ctx context.Context,
		barbershopID uint,
		groupID string,
		from *time.Time,
	) error

	PatchGroup(
		ctx context.Context,
		barbershopID uint,
		groupID string,
		patch GroupPatch,
	) error

	ReplaceGroupServices(
		ctx context.Context,
		barbershopID uint,
		groupID string,
		totalPrice float64,
		durationMin int,
		lines []models.AppointmentService,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
