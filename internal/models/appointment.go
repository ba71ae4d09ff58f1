package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	BarberID uint `json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StartTime   time.Time `json:"start_time"`
	DurationMin int       `json:"duration_min"`

	// Soma dos preços capturados no momento da criação
	TotalPrice float64 `json:"total_price"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	// Double-booking intencional: a linha fica fora da exclusion
	// constraint de sobreposição
	AllowOverlap bool `gorm:"default:false" json:"allow_overlap"`

	// Preenchidos apenas na transição scheduled → completed
	PaymentMethod *string  `gorm:"size:30" json:"payment_method"`
	FinalAmount   *float64 `json:"final_amount"`

	Notes string `gorm:"size:255" json:"notes"`

	// Agendamentos gerados por uma mesma recorrência compartilham o grupo
	RecurrenceGroupID *string `gorm:"size:36;index" json:"recurrence_group_id"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMin) * time.Minute)
}
