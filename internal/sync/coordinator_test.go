package sync

import (
	"context"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-agenda/internal/dto"
)

type fakeReloader struct {
	mu    stdsync.Mutex
	calls map[uint]int
}

func newFakeReloader() *fakeReloader {
	return &fakeReloader{calls: map[uint]int{}}
}

func (f *fakeReloader) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]dto.AppointmentListDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[barbershopID]++
	return nil, nil
}

func (f *fakeReloader) callsFor(barbershopID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[barbershopID]
}

func startCoordinator(t *testing.T) (*Coordinator, *fakeReloader) {
	t.Helper()

	reloader := newFakeReloader()
	coord := NewCoordinator(reloader, NewHub(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go coord.Run(ctx)

	return coord, reloader
}

func TestCoordinatorCoalescesBurstIntoSingleReload(t *testing.T) {
	coord, reloader := startCoordinator(t)

	coord.TrackQuery(Query{BarbershopID: 1})

	// Rajada típica de uma recorrência: N inserts em sequência
	for i := 0; i < 10; i++ {
		coord.Events() <- ChangeEvent{BarbershopID: 1, Table: "appointments", Op: "INSERT"}
	}

	time.Sleep(InsertDebounce + 300*time.Millisecond)
	assert.Equal(t, 1, reloader.callsFor(1))
}

func TestCoordinatorIgnoresUntrackedShops(t *testing.T) {
	coord, reloader := startCoordinator(t)

	coord.TrackQuery(Query{BarbershopID: 1})
	coord.Events() <- ChangeEvent{BarbershopID: 2, Table: "appointments", Op: "UPDATE"}

	time.Sleep(WriteDebounce + 200*time.Millisecond)
	assert.Equal(t, 0, reloader.callsFor(2))
	assert.Equal(t, 0, reloader.callsFor(1))
}

func TestCoordinatorEventWithoutShopHitsAllTracked(t *testing.T) {
	coord, reloader := startCoordinator(t)

	coord.TrackQuery(Query{BarbershopID: 1})
	coord.TrackQuery(Query{BarbershopID: 2})

	// Tabela sem barbershop_id publica 0 → recarga de todas as
	// consultas rastreadas
	coord.Events() <- ChangeEvent{BarbershopID: 0, Table: "appointment_services", Op: "UPDATE"}

	time.Sleep(WriteDebounce + 300*time.Millisecond)
	assert.Equal(t, 1, reloader.callsFor(1))
	assert.Equal(t, 1, reloader.callsFor(2))
}

func TestCoordinatorReloadsAgainAfterQuiescence(t *testing.T) {
	coord, reloader := startCoordinator(t)

	coord.TrackQuery(Query{BarbershopID: 1})

	coord.Events() <- ChangeEvent{BarbershopID: 1, Table: "appointments", Op: "UPDATE"}
	time.Sleep(WriteDebounce + 200*time.Millisecond)

	coord.Events() <- ChangeEvent{BarbershopID: 1, Table: "appointments", Op: "DELETE"}
	time.Sleep(WriteDebounce + 200*time.Millisecond)

	assert.Equal(t, 2, reloader.callsFor(1))
}

func TestParsePayload(t *testing.T) {
	op, shopID := parsePayload("INSERT:42")
	assert.Equal(t, "INSERT", op)
	assert.EqualValues(t, 42, shopID)

	op, shopID = parsePayload("DELETE:0")
	assert.Equal(t, "DELETE", op)
	assert.EqualValues(t, 0, shopID)

	// payload malformado degrada para "todas as barbearias"
	op, shopID = parsePayload("UPDATE:abc")
	assert.Equal(t, "UPDATE", op)
	assert.EqualValues(t, 0, shopID)

	op, shopID = parsePayload("TRUNCATE")
	assert.Equal(t, "TRUNCATE", op)
	assert.EqualValues(t, 0, shopID)
}
