package models

import "time"

type Service struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `json:"barbershop_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `json:"price"`

	DurationMin int `json:"duration_min"`

	// Duração alternativa usada por barbeiros "especiais"; nula = usa a normal
	DurationSpecialMin *int `json:"duration_special_min"`

	// Serviço químico tem taxa de comissão própria
	IsChemical bool `gorm:"default:false" json:"is_chemical"`

	Active bool `gorm:"default:true" json:"active"`

	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
