package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestOverlaps(t *testing.T) {
	loc := time.UTC
	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 2, h, m, 0, 0, loc)
	}

	// candidato 10:00–11:00
	start, end := at(10, 0), at(11, 0)

	// bloqueio começa durante
	assert.True(t, Overlaps(at(10, 30), at(11, 30), start, end))

	// bloqueio termina durante
	assert.True(t, Overlaps(at(9, 30), at(10, 30), start, end))

	// bloqueio contém o candidato inteiro
	assert.True(t, Overlaps(at(9, 0), at(12, 0), start, end))

	// bloqueio contido no candidato
	assert.True(t, Overlaps(at(10, 15), at(10, 45), start, end))

	// fronteira compartilhada não colide
	assert.False(t, Overlaps(at(9, 0), at(10, 0), start, end))
	assert.False(t, Overlaps(at(11, 0), at(12, 0), start, end))

	// totalmente fora
	assert.False(t, Overlaps(at(8, 0), at(9, 0), start, end))
}

func TestBlockInterval(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	assert.NoError(t, err)

	day := time.Date(2026, 3, 2, 14, 0, 0, 0, loc)

	block := &models.ScheduleBlock{StartTime: "12:00", EndTime: "13:30"}

	bs, be := BlockInterval(block, day)
	assert.Equal(t, time.Date(2026, 3, 2, 12, 0, 0, 0, loc), bs)
	assert.Equal(t, time.Date(2026, 3, 2, 13, 30, 0, 0, loc), be)
	assert.Equal(t, loc, bs.Location())
}

func TestAppliesTo(t *testing.T) {
	general := &models.ScheduleBlock{}
	assert.True(t, AppliesTo(general, 7))
	assert.True(t, AppliesTo(general, 99))

	specific := &models.ScheduleBlock{BarberID: uintPtr(7)}
	assert.True(t, AppliesTo(specific, 7))
	assert.False(t, AppliesTo(specific, 8))
}

func TestConflictErrorHasBlockConflict(t *testing.T) {
	onlyAp := &ConflictError{Conflicts: []Conflict{
		{Kind: ConflictAppointment},
	}}
	assert.False(t, onlyAp.HasBlockConflict())
	assert.Equal(t, "time_conflict", onlyAp.Error())

	withBlock := &ConflictError{Conflicts: []Conflict{
		{Kind: ConflictAppointment},
		{Kind: ConflictBlock},
	}}
	assert.True(t, withBlock.HasBlockConflict())
}
