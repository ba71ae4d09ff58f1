package models

import "time"

// ScheduleBlock é um bloqueio administrativo de agenda.
// BarberID nulo = vale para todos os barbeiros da barbearia.
type ScheduleBlock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint  `json:"barbershop_id"`
	BarberID     *uint `json:"barber_id"`

	Date      time.Time `json:"date"`
	StartTime string    `gorm:"size:5" json:"start_time"`
	EndTime   string    `gorm:"size:5" json:"end_time"`

	Reason string `gorm:"size:255" json:"reason"`

	// Bloqueio recorrente: a linha pai carrega a regra, os filhos
	// gerados apontam para ela e nascem não-recorrentes.
	IsRecurring       bool       `gorm:"default:false" json:"is_recurring"`
	RecurrenceType    *string    `gorm:"size:20" json:"recurrence_type"`
	RecurrenceEndDate *time.Time `json:"recurrence_end_date"`
	ParentBlockID     *uint      `gorm:"index" json:"parent_block_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
