package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	syncpkg "github.com/BruksfildServices01/barber-agenda/internal/sync"
	ucBlock "github.com/BruksfildServices01/barber-agenda/internal/usecase/scheduleblock"
)

type ScheduleBlockHandler struct {
	createUC *ucBlock.CreateScheduleBlock
	deleteUC *ucBlock.DeleteScheduleBlock
	listUC   *ucBlock.ListScheduleBlocks

	coordinator *syncpkg.Coordinator
}

func NewScheduleBlockHandler(
	createUC *ucBlock.CreateScheduleBlock,
	deleteUC *ucBlock.DeleteScheduleBlock,
	listUC *ucBlock.ListScheduleBlocks,
	coordinator *syncpkg.Coordinator,
) *ScheduleBlockHandler {
	return &ScheduleBlockHandler{
		createUC:    createUC,
		deleteUC:    deleteUC,
		listUC:      listUC,
		coordinator: coordinator,
	}
}

type CreateBlockRequest struct {
	BarberID  *uint  `json:"barber_id"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`

	IsRecurring       bool   `json:"is_recurring"`
	RecurrenceType    string `json:"recurrence_type"`
	RecurrenceEndDate string `json:"recurrence_end_date"`
}

// ======================================================
// CREATE
// ======================================================
func (h *ScheduleBlockHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	block, err := h.createUC.Execute(c.Request.Context(), ucBlock.CreateBlockInput{
		BarbershopID:      barbershopID,
		UserID:            userID,
		BarberID:          req.BarberID,
		Date:              req.Date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Reason:            req.Reason,
		IsRecurring:       req.IsRecurring,
		RecurrenceType:    req.RecurrenceType,
		RecurrenceEndDate: req.RecurrenceEndDate,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}

	h.coordinator.NotifyLocal(c.Request.Context(), barbershopID, "schedule_blocks")
	c.JSON(http.StatusCreated, block)
}

// ======================================================
// DELETE
// ======================================================
func (h *ScheduleBlockHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	blockID, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	scope := c.DefaultQuery("scope", ucBlock.ScopeSingle)

	if err := h.deleteUC.Execute(c.Request.Context(), ucBlock.DeleteBlockInput{
		BarbershopID: barbershopID,
		UserID:       userID,
		BlockID:      blockID,
		Scope:        scope,
	}); err != nil {
		writeEngineError(c, err)
		return
	}

	h.coordinator.NotifyLocal(c.Request.Context(), barbershopID, "schedule_blocks")
	c.JSON(http.StatusOK, gin.H{"deleted": true, "scope": scope})
}

// ======================================================
// LIST
// ======================================================
func (h *ScheduleBlockHandler) List(c *gin.Context) {
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

	blocks, err := h.listUC.Execute(c.Request.Context(), barbershopID, barberID, from, to)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	httpresp.List(c, blocks)
}
