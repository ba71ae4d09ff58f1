package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// ===============================
// Conflict detection
// ===============================

type ConflictKind string

const (
	ConflictAppointment ConflictKind = "appointment"
	ConflictBlock       ConflictKind = "block"
)

// Conflict é uma entrada do relatório: qual data candidata colidiu,
// com o quê, e quando.
type Conflict struct {
	Date time.Time    `json:"date"`
	Kind ConflictKind `json:"kind"`

	AppointmentID uint   `json:"appointment_id,omitempty"`
	ClientName    string `json:"client_name,omitempty"`

	BlockID uint   `json:"block_id,omitempty"`
	Reason  string `json:"reason,omitempty"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ConflictError carrega o relatório completo do lote: ou o lote inteiro
// passa, ou é rejeitado com todas as colisões listadas.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return "time_conflict"
}

// HasBlockConflict indica colisão com bloqueio administrativo —
// nunca sobreponível, nem com override.
func (e *ConflictError) HasBlockConflict() bool {
	for _, c := range e.Conflicts {
		if c.Kind == ConflictBlock {
			return true
		}
	}
	return false
}

// Overlaps é o teste simétrico de interseção de intervalos: o outro
// intervalo começa durante o candidato, termina durante o candidato, ou
// o contém. As três condições são necessárias porque nenhum dos
// intervalos é garantidamente o "maior". Fronteiras compartilhadas não
// colidem.
func Overlaps(otherStart, otherEnd, start, end time.Time) bool {
	startsDuring := !otherStart.Before(start) && otherStart.Before(end)
	endsDuring := otherEnd.After(start) && !otherEnd.After(end)
	contains := !otherStart.After(start) && !otherEnd.Before(end)

	return startsDuring || endsDuring || contains
}

// BlockInterval materializa o horário do bloqueio no dia/fuso da data
// candidata (blocos guardam hora como "15:04").
func BlockInterval(block *models.ScheduleBlock, day time.Time) (time.Time, time.Time) {
	loc := day.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			day.Year(), day.Month(), day.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	return parseHM(block.StartTime), parseHM(block.EndTime)
}

// AppliesTo indica se o bloqueio atinge o barbeiro: específico dele ou
// geral (sem barbeiro).
func AppliesTo(block *models.ScheduleBlock, barberID uint) bool {
	return block.BarberID == nil || *block.BarberID == barberID
}
