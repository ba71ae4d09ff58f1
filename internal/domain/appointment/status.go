package appointment

import "github.com/BruksfildServices01/barber-agenda/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Tabela fechada de transições: scheduled transiciona exatamente uma vez
// para um estado terminal; estados terminais não transicionam.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// CanTransition valida uma transição de status
func CanTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

func InitialStatus() Status {
	return StatusScheduled
}
