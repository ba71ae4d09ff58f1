package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type AppointmentServiceDTO struct {
	ServiceID      uint    `json:"service_id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	CommissionRate float64 `json:"commission_rate"`
	DurationMin    int     `json:"duration_min"`
}

type AppointmentListDTO struct {
	ID                uint                    `json:"id"`
	StartTime         time.Time               `json:"start_time"`
	EndTime           time.Time               `json:"end_time"`
	DurationMin       int                     `json:"duration_min"`
	Status            string                  `json:"status"`
	BarberID          uint                    `json:"barber_id"`
	ClientName        string                  `json:"client_name"`
	TotalPrice        float64                 `json:"total_price"`
	PaymentMethod     *string                 `json:"payment_method,omitempty"`
	FinalAmount       *float64                `json:"final_amount,omitempty"`
	RecurrenceGroupID *string                 `json:"recurrence_group_id,omitempty"`
	Services          []AppointmentServiceDTO `json:"services"`
}

func FromAppointment(ap *models.Appointment) AppointmentListDTO {
	services := make([]AppointmentServiceDTO, 0, len(ap.Services))
	for _, line := range ap.Services {
		services = append(services, AppointmentServiceDTO{
			ServiceID:      line.ServiceID,
			Name:           line.Name,
			Price:          line.Price,
			CommissionRate: line.CommissionRate,
			DurationMin:    line.DurationMin,
		})
	}

	return AppointmentListDTO{
		ID:                ap.ID,
		StartTime:         ap.StartTime,
		EndTime:           ap.EndTime(),
		DurationMin:       ap.DurationMin,
		Status:            ap.Status,
		BarberID:          ap.BarberID,
		ClientName:        ap.Client.Name,
		TotalPrice:        ap.TotalPrice,
		PaymentMethod:     ap.PaymentMethod,
		FinalAmount:       ap.FinalAmount,
		RecurrenceGroupID: ap.RecurrenceGroupID,
		Services:          services,
	}
}
