package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestOccurrencesNone(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, mustLoc(t))

	dates := Occurrences(start, RecurrenceSpec{Type: RecurrenceNone})
	require.Len(t, dates, 1)
	assert.Equal(t, start, dates[0])
}

func TestOccurrencesUnknownTypeDegradesToSingle(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, mustLoc(t))

	dates := Occurrences(start, RecurrenceSpec{Type: "daily", Count: 10})
	require.Len(t, dates, 1)
}

func TestOccurrencesWeeklyByCount(t *testing.T) {
	loc := mustLoc(t)
	// segunda-feira
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, loc)

	dates := Occurrences(start, RecurrenceSpec{
		Type:     RecurrenceWeekly,
		Interval: 1,
		Count:    3,
	})

	require.Len(t, dates, 3)
	assert.Equal(t, start, dates[0])
	assert.Equal(t, start.AddDate(0, 0, 7), dates[1])
	assert.Equal(t, start.AddDate(0, 0, 14), dates[2])

	// todas caem no mesmo dia da semana e horário
	for _, d := range dates {
		assert.Equal(t, time.Monday, d.Weekday())
		assert.Equal(t, 10, d.Hour())
	}
}

func TestOccurrencesWeeklyIntervalTwo(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, mustLoc(t))

	dates := Occurrences(start, RecurrenceSpec{
		Type:     RecurrenceWeekly,
		Interval: 2,
		Count:    3,
	})

	require.Len(t, dates, 3)
	assert.Equal(t, start.AddDate(0, 0, 14), dates[1])
	assert.Equal(t, start.AddDate(0, 0, 28), dates[2])
}

func TestOccurrencesBiweeklyIgnoresInterval(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, mustLoc(t))

	dates := Occurrences(start, RecurrenceSpec{
		Type:     RecurrenceBiweekly,
		Interval: 3, // quinzenal é sempre +14 dias
		Count:    2,
	})

	require.Len(t, dates, 2)
	assert.Equal(t, start.AddDate(0, 0, 14), dates[1])
}

func TestOccurrencesMonthly(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 30, 0, 0, mustLoc(t))

	dates := Occurrences(start, RecurrenceSpec{
		Type:     RecurrenceMonthly,
		Interval: 1,
		Count:    4,
	})

	require.Len(t, dates, 4)
	assert.Equal(t, start.AddDate(0, 1, 0), dates[1])
	assert.Equal(t, start.AddDate(0, 3, 0), dates[3])
}

func TestOccurrencesEndDateInclusive(t *testing.T) {
	loc := mustLoc(t)
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, loc)

	// fim exatamente na quarta ocorrência (fim do dia)
	end := time.Date(2026, 3, 23, 23, 59, 59, 0, loc)

	dates := Occurrences(start, RecurrenceSpec{
		Type:     RecurrenceWeekly,
		Interval: 1,
		EndDate:  &end,
	})

	require.Len(t, dates, 4)
	assert.Equal(t, time.Date(2026, 3, 23, 10, 0, 0, 0, loc), dates[3])
}

func TestOccurrencesCountCapped(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, mustLoc(t))

	dates := Occurrences(start, RecurrenceSpec{
		Type:     RecurrenceWeekly,
		Interval: 1,
		Count:    500,
	})

	assert.Len(t, dates, MaxOccurrences)
}

func TestOccurrencesEndDateCapped(t *testing.T) {
	loc := mustLoc(t)
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, loc)
	end := start.AddDate(10, 0, 0)

	dates := Occurrences(start, RecurrenceSpec{
		Type:     RecurrenceWeekly,
		Interval: 1,
		EndDate:  &end,
	})

	assert.Len(t, dates, MaxOccurrences)
}

func TestOccurrencesWithoutBoundIsSingle(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, mustLoc(t))

	dates := Occurrences(start, RecurrenceSpec{
		Type:     RecurrenceWeekly,
		Interval: 1,
	})

	require.Len(t, dates, 1)
}
