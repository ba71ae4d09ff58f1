package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`

	DurationMin        int  `json:"duration_min" binding:"required"`
	DurationSpecialMin *int `json:"duration_special_min"`

	IsChemical bool   `json:"is_chemical"`
	Category   string `json:"category"`
}

// ======================================================
// LIST SERVICES
// ======================================================
func (h *ServiceHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var services []models.Service
	if err := h.db.
		Where("barbershop_id = ? AND active = ?", barbershopID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, services)
}

// ======================================================
// CREATE SERVICE
// ======================================================
func (h *ServiceHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	service := models.Service{
		BarbershopID:       barbershopID,
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		DurationMin:        req.DurationMin,
		DurationSpecialMin: req.DurationSpecialMin,
		IsChemical:         req.IsChemical,
		Active:             true,
		Category:           req.Category,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// ======================================================
// UPDATE SERVICE
// ======================================================
func (h *ServiceHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	serviceID, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&service).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.Price = req.Price
	service.DurationMin = req.DurationMin
	service.DurationSpecialMin = req.DurationSpecialMin
	service.IsChemical = req.IsChemical
	service.Category = req.Category

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	c.JSON(http.StatusOK, service)
}

// ======================================================
// DEACTIVATE SERVICE
// ======================================================
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	serviceID, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	// Agendamentos antigos carregam o snapshot: desativar nunca apaga
	result := h.db.Model(&models.Service{}).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		Update("active", false)

	if result.Error != nil {
		httperr.Internal(c, "failed_to_deactivate_service", "Erro ao desativar serviço.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deactivated": true})
}
