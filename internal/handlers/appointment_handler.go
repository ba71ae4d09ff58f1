package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	syncpkg "github.com/BruksfildServices01/barber-agenda/internal/sync"
	ucAppointment "github.com/BruksfildServices01/barber-agenda/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC      *ucAppointment.CreateAppointment
	updateUC      *ucAppointment.UpdateAppointment
	completeUC    *ucAppointment.CompleteAppointment
	cancelUC      *ucAppointment.CancelAppointment
	noShowUC      *ucAppointment.MarkNoShow
	groupUpdateUC *ucAppointment.UpdateRecurringGroup
	groupDeleteUC *ucAppointment.DeleteRecurringGroup
	listUC        *ucAppointment.ListAppointmentsByRange

	coordinator *syncpkg.Coordinator
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	noShowUC *ucAppointment.MarkNoShow,
	groupUpdateUC *ucAppointment.UpdateRecurringGroup,
	groupDeleteUC *ucAppointment.DeleteRecurringGroup,
	listUC *ucAppointment.ListAppointmentsByRange,
	coordinator *syncpkg.Coordinator,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:      createUC,
		updateUC:      updateUC,
		completeUC:    completeUC,
		cancelUC:      cancelUC,
		noShowUC:      noShowUC,
		groupUpdateUC: groupUpdateUC,
		groupDeleteUC: groupDeleteUC,
		listUC:        listUC,
		coordinator:   coordinator,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RecurrenceRequest struct {
	Type     string `json:"type"`
	Interval int    `json:"interval"`
	EndDate  string `json:"end_date"`
	Count    int    `json:"count"`
}

type CreateAppointmentRequest struct {
	ClientID   uint   `json:"client_id" binding:"required"`
	BarberID   uint   `json:"barber_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	DurationMin  int    `json:"duration_min"`
	Notes        string `json:"notes"`
	AllowOverlap bool   `json:"allow_overlap"`

	Recurrence RecurrenceRequest `json:"recurrence"`
}

type UpdateAppointmentRequest struct {
	ClientID   uint   `json:"client_id" binding:"required"`
	BarberID   uint   `json:"barber_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	DurationMin  int    `json:"duration_min"`
	Notes        string `json:"notes"`
	AllowOverlap bool   `json:"allow_overlap"`
}

type CompleteAppointmentRequest struct {
	PaymentMethod string   `json:"payment_method" binding:"required"`
	FinalAmount   *float64 `json:"final_amount"`
}

type UpdateGroupRequest struct {
	ClientID   *uint   `json:"client_id"`
	BarberID   *uint   `json:"barber_id"`
	Notes      *string `json:"notes"`
	ServiceIDs []uint  `json:"service_ids"`
}

// ======================================================
// HELPERS
// ======================================================

// writeEngineError traduz erros do motor: relatório de conflito vira
// 409 estruturado para o chamador decidir entre abortar ou forçar
// override (agendamentos, nunca bloqueios).
func writeEngineError(c *gin.Context, err error) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error_code": "time_conflict",
			"message":    "Conflito de horário.",
			"overridable": !conflictErr.HasBlockConflict(),
			"conflicts":   conflictErr.Conflicts,
		})
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		httperr.BadRequest(c, be.Code, "Operação inválida.")
		return
	}

	httperr.Internal(c, "internal_error", "Erro interno.")
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: barbershopID,
		BarberID:     req.BarberID,
		ClientID:     req.ClientID,
		ServiceIDs:   req.ServiceIDs,
		Date:         req.Date,
		Time:         req.Time,
		DurationMin:  req.DurationMin,
		Notes:        req.Notes,
		AllowOverlap: req.AllowOverlap,
		Recurrence: ucAppointment.RecurrenceInput{
			Type:     req.Recurrence.Type,
			Interval: req.Recurrence.Interval,
			EndDate:  req.Recurrence.EndDate,
			Count:    req.Recurrence.Count,
		},
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}

	h.coordinator.NotifyLocal(c.Request.Context(), barbershopID, "appointments")
	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// UPDATE (SINGLE)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	appointmentID, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		AppointmentID: appointmentID,
		BarbershopID:  barbershopID,
		ClientID:      req.ClientID,
		BarberID:      req.BarberID,
		ServiceIDs:    req.ServiceIDs,
		Date:          req.Date,
		Time:          req.Time,
		DurationMin:   req.DurationMin,
		Notes:         req.Notes,
		AllowOverlap:  req.AllowOverlap,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}

	h.coordinator.NotifyLocal(c.Request.Context(), barbershopID, "appointments")
	c.JSON(http.StatusOK, ap)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	appointmentID, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Método de pagamento é obrigatório.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), ucAppointment.CompleteAppointmentInput{
		BarbershopID:  barbershopID,
		BarberID:      userID,
		AppointmentID: appointmentID,
		PaymentMethod: req.PaymentMethod,
		FinalAmount:   req.FinalAmount,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}

	h.coordinator.NotifyLocal(c.Request.Context(), barbershopID, "appointments")
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	appointmentID, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), barbershopID, userID, appointmentID)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	h.coordinator.NotifyLocal(c.Request.Context(), barbershopID, "appointments")
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	appointmentID, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := h.noShowUC.Execute(c.Request.Context(), barbershopID, userID, appointmentID)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	h.coordinator.NotifyLocal(c.Request.Context(), barbershopID, "appointments")
	c.JSON(http.StatusOK, ap)
}

// ======================================================
// DELETE (SINGLE + GROUP)
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	appointmentID, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	// scope: single (default) | future | all
	scope := c.DefaultQuery("scope", ucAppointment.ScopeSingle)

	if err := h.groupDeleteUC.Execute(c.Request.Context(), ucAppointment.DeleteGroupInput{
		BarbershopID:  barbershopID,
		BarberID:      userID,
		AppointmentID: appointmentID,
		Scope:         scope,
	}); err != nil {
		writeEngineError(c, err)
		return
	}

	h.coordinator.NotifyLocal(c.Request.Context(), barbershopID, "appointments")
	c.JSON(http.StatusOK, gin.H{"deleted": true, "scope": scope})
}

// ======================================================
// GROUP UPDATE
// ======================================================

func (h *AppointmentHandler) UpdateGroup(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	appointmentID, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := h.groupUpdateUC.Execute(c.Request.Context(), ucAppointment.UpdateGroupInput{
		BarbershopID:  barbershopID,
		UserID:        userID,
		AppointmentID: appointmentID,
		ClientID:      req.ClientID,
		BarberID:      req.BarberID,
		Notes:         req.Notes,
		ServiceIDs:    req.ServiceIDs,
	}); err != nil {
		writeEngineError(c, err)
		return
	}

	h.coordinator.NotifyLocal(c.Request.Context(), barbershopID, "appointments")
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
		return
	}
	to, err := time.Parse("2006-01-02", c.DefaultQuery("to", c.Query("from")))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data final inválida.")
		return
	}

	var barberID uint
	if v := c.Query("barber_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
			return
		}
		barberID = uint(parsed)
	}

	appointments, err := h.listUC.Execute(c.Request.Context(), barbershopID, barberID, from, to)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	// A recarga da sincronização reexecuta exatamente este filtro
	h.coordinator.TrackQuery(syncpkg.Query{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		From:         from,
		To:           to,
	})

	httpresp.List(c, appointments)
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
