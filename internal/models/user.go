package models

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`

	// Barbeiro "especial" usa a tabela alternativa de duração dos serviços
	IsSpecial bool `gorm:"default:false" json:"is_special"`

	CommissionRate         float64 `gorm:"default:0.4" json:"commission_rate"`
	CommissionRateChemical float64 `gorm:"default:0.3" json:"commission_rate_chemical"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommissionFor resolve a taxa de comissão para um serviço,
// diferenciando serviços químicos.
func (u *User) CommissionFor(s *Service) float64 {
	if s != nil && s.IsChemical {
		return u.CommissionRateChemical
	}
	return u.CommissionRate
}
