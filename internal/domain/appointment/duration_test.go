package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func intPtr(v int) *int { return &v }

func TestServiceDuration(t *testing.T) {
	normal := &models.User{IsSpecial: false}
	special := &models.User{IsSpecial: true}

	svc := &models.Service{DurationMin: 45, DurationSpecialMin: intPtr(60)}

	assert.Equal(t, 45, ServiceDuration(svc, normal))
	assert.Equal(t, 60, ServiceDuration(svc, special))

	// Especial sem duração alternativa cadastrada usa a normal
	plain := &models.Service{DurationMin: 45}
	assert.Equal(t, 45, ServiceDuration(plain, special))

	// Serviço sem duração cadastrada cai no fallback
	empty := &models.Service{}
	assert.Equal(t, FallbackDurationMin, ServiceDuration(empty, normal))
	assert.Equal(t, FallbackDurationMin, ServiceDuration(empty, nil))
}

func TestTotalDurationSumsServices(t *testing.T) {
	services := []models.Service{
		{DurationMin: 30},
		{DurationMin: 15},
		{}, // sem duração → fallback
	}

	assert.Equal(t, 30+15+FallbackDurationMin, TotalDuration(services, nil, 0))
}

func TestTotalDurationOverrideWins(t *testing.T) {
	services := []models.Service{
		{DurationMin: 30},
		{DurationMin: 30},
	}

	assert.Equal(t, 90, TotalDuration(services, nil, 90))
}

func TestTotalDurationSpecialBarber(t *testing.T) {
	special := &models.User{IsSpecial: true}
	services := []models.Service{
		{DurationMin: 30, DurationSpecialMin: intPtr(50)},
		{DurationMin: 20},
	}

	assert.Equal(t, 70, TotalDuration(services, special, 0))
}

func TestValidOverride(t *testing.T) {
	assert.True(t, ValidOverride(0)) // zero = calculada, sempre válido
	assert.True(t, ValidOverride(MinOverrideDurationMin))
	assert.True(t, ValidOverride(MaxOverrideDurationMin))

	assert.False(t, ValidOverride(4))
	assert.False(t, ValidOverride(481))
	assert.False(t, ValidOverride(-10))
}
