package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestListByRangeReturnsWindow(t *testing.T) {
	f := setupFixture(t)

	in := f.baseInput()
	in.Recurrence = RecurrenceInput{Type: "weekly", Interval: 1, Count: 3}
	_, err := f.createUC().Execute(context.Background(), in)
	require.NoError(t, err)

	uc := NewListAppointmentsByRange(f.repo)

	// Janela cobrindo só as duas primeiras segundas-feiras
	from := mustDate(t, "2026-03-01")
	to := mustDate(t, "2026-03-10")

	got, err := uc.Execute(context.Background(), f.shop.ID, 0, from, to)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Carlos", got[0].ClientName)
	assert.Equal(t, got[0].StartTime.Add(45*time.Minute), got[0].EndTime)
	assert.Len(t, got[0].Services, 2)
	assert.NotNil(t, got[0].RecurrenceGroupID)
}

func TestListByRangeFiltersByBarber(t *testing.T) {
	f := setupFixture(t)

	_, err := f.createUC().Execute(context.Background(), f.baseInput())
	require.NoError(t, err)

	uc := NewListAppointmentsByRange(f.repo)
	from := mustDate(t, "2026-03-02")

	got, err := uc.Execute(context.Background(), f.shop.ID, f.barber.ID, from, from)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = uc.Execute(context.Background(), f.shop.ID, f.barber.ID+1, from, from)
	require.NoError(t, err)
	assert.Empty(t, got)
}
