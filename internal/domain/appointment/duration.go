package appointment

import "github.com/BruksfildServices01/barber-agenda/internal/models"

// ===============================
// Duration
// ===============================

const (
	// Fallback quando o serviço não tem duração cadastrada
	FallbackDurationMin = 30

	MinOverrideDurationMin = 5
	MaxOverrideDurationMin = 480
)

// ServiceDuration resolve a duração de um serviço para um barbeiro.
// Barbeiro especial usa a duração alternativa quando cadastrada.
func ServiceDuration(svc *models.Service, barber *models.User) int {
	if barber != nil && barber.IsSpecial &&
		svc.DurationSpecialMin != nil && *svc.DurationSpecialMin > 0 {
		return *svc.DurationSpecialMin
	}
	if svc.DurationMin > 0 {
		return svc.DurationMin
	}
	return FallbackDurationMin
}

// TotalDuration calcula a duração total reservada para um conjunto de
// serviços. Override manual positivo vence sempre; barbeiro ausente
// degrada para o fallback, nunca falha.
func TotalDuration(services []models.Service, barber *models.User, overrideMin int) int {
	if overrideMin > 0 {
		return overrideMin
	}

	total := 0
	for i := range services {
		total += ServiceDuration(&services[i], barber)
	}
	return total
}

// ValidOverride valida o override manual quando informado (5–480 min)
func ValidOverride(overrideMin int) bool {
	if overrideMin == 0 {
		return true
	}
	return overrideMin >= MinOverrideDurationMin && overrideMin <= MaxOverrideDurationMin
}
