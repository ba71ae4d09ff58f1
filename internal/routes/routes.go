package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	"github.com/BruksfildServices01/barber-agenda/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	syncpkg "github.com/BruksfildServices01/barber-agenda/internal/sync"
	ucAppointment "github.com/BruksfildServices01/barber-agenda/internal/usecase/appointment"
	ucBlock "github.com/BruksfildServices01/barber-agenda/internal/usecase/scheduleblock"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	hub *syncpkg.Hub,
	coordinator *syncpkg.Coordinator,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	scheduleBlockRepo := infraRepo.NewScheduleBlockGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	noShowUC := ucAppointment.NewMarkNoShow(
		appointmentRepo,
		auditDispatcher,
	)

	updateGroupUC := ucAppointment.NewUpdateRecurringGroup(
		appointmentRepo,
		auditDispatcher,
	)

	deleteGroupUC := ucAppointment.NewDeleteRecurringGroup(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsUC := ucAppointment.NewListAppointmentsByRange(
		appointmentRepo,
	)

	// ======================================================
	// 🧠 USE CASES — SCHEDULE BLOCKS
	// ======================================================
	createBlockUC := ucBlock.NewCreateScheduleBlock(
		scheduleBlockRepo,
		auditDispatcher,
	)

	deleteBlockUC := ucBlock.NewDeleteScheduleBlock(
		scheduleBlockRepo,
		auditDispatcher,
	)

	listBlocksUC := ucBlock.NewListScheduleBlocks(
		scheduleBlockRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db)

	clientHandler := handlers.NewClientHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	barberHandler := handlers.NewBarberHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		noShowUC,
		updateGroupUC,
		deleteGroupUC,
		listAppointmentsUC,
		coordinator,
	)

	scheduleBlockHandler := handlers.NewScheduleBlockHandler(
		createBlockUC,
		deleteBlockUC,
		listBlocksUC,
		coordinator,
	)

	syncHandler := handlers.NewSyncHandler(cfg, hub)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔄 SYNC (WEBSOCKET)
		// ------------------------------
		api.GET("/sync", syncHandler.Connect)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.GET("/me/barbers", barberHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Deactivate)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.List)
			secured.PUT("/me/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)
			secured.PATCH("/me/appointments/:id/group", appointmentHandler.UpdateGroup)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// SCHEDULE BLOCKS
			// ------------------------------
			secured.GET("/me/schedule-blocks", scheduleBlockHandler.List)
			secured.POST("/me/schedule-blocks", scheduleBlockHandler.Create)
			secured.DELETE("/me/schedule-blocks/:id", scheduleBlockHandler.Delete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
