package models

import "time"

// AppointmentService é a linha de serviço de um agendamento.
// Preço, comissão e duração são snapshots do momento da criação —
// nunca recalculados quando o catálogo muda.
type AppointmentService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index" json:"appointment_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Name           string  `gorm:"size:100" json:"name"`
	Price          float64 `json:"price"`
	CommissionRate float64 `json:"commission_rate"`
	DurationMin    int     `json:"duration_min"`

	CreatedAt time.Time `json:"created_at"`
}
