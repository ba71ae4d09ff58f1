package sync

import (
	"context"
	"log"
	stdsync "sync"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/dto"
)

// Debounce por tipo de evento: insert espera mais porque as linhas de
// serviço chegam microssegundos depois do agendamento — recarregar cedo
// demais mostraria o agendamento sem os serviços.
const (
	InsertDebounce = 500 * time.Millisecond
	WriteDebounce  = 300 * time.Millisecond
)

// Query é o último filtro usado por uma barbearia: é ela que a recarga
// reexecuta, mesmo intervalo de datas e mesmo filtro de barbeiro.
type Query struct {
	BarbershopID uint
	BarberID     uint
	From         time.Time
	To           time.Time
}

// Reloader reexecuta a consulta de agendamentos de uma recarga.
type Reloader interface {
	Execute(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]dto.AppointmentListDTO, error)
}

// RefreshMessage é o payload empurrado aos clientes conectados.
type RefreshMessage struct {
	Type         string                   `json:"type"`
	BarberID     uint                     `json:"barber_id"`
	From         time.Time                `json:"from"`
	To           time.Time                `json:"to"`
	Appointments []dto.AppointmentListDTO `json:"appointments"`
}

// Coordinator liga as fontes de eventos (feed do banco + broadcast de
// pares) ao caminho único de recarga: debounce por barbearia, reexecução
// do último filtro, broadcast do resultado pelo hub.
type Coordinator struct {
	reloader  Reloader
	hub       *Hub
	broadcast *Broadcast

	mu        stdsync.Mutex
	queries   map[uint]Query
	debounced map[uint]*Debounced

	events chan ChangeEvent
}

func NewCoordinator(reloader Reloader, hub *Hub, broadcast *Broadcast) *Coordinator {
	return &Coordinator{
		reloader:  reloader,
		hub:       hub,
		broadcast: broadcast,
		queries:   make(map[uint]Query),
		debounced: make(map[uint]*Debounced),
		events:    make(chan ChangeEvent, 100),
	}
}

// Events é o canal alimentado pelo Listener e pelo Subscribe do
// broadcast.
func (c *Coordinator) Events() chan<- ChangeEvent {
	return c.events
}

// TrackQuery registra o último filtro pedido pela barbearia.
func (c *Coordinator) TrackQuery(q Query) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries[q.BarbershopID] = q
}

// NotifyLocal publica a mutação local no canal de pares: a visão do
// originador é atualizada pelo mesmo caminho dos demais clientes.
func (c *Coordinator) NotifyLocal(ctx context.Context, barbershopID uint, table string) {
	if c.broadcast == nil {
		return
	}
	if err := c.broadcast.Publish(ctx, ChangeEvent{
		BarbershopID: barbershopID,
		Table:        table,
		Op:           "TOUCH",
	}); err != nil {
		log.Println("sync: falha ao publicar broadcast:", err)
	}
}

// Run consome eventos até o contexto encerrar. Cada evento reinicia o
// timer da barbearia (nunca empilha); a recarga roda uma vez depois da
// quiescência, coalescendo a rajada de N inserts de uma recorrência em
// uma única recarga.
func (c *Coordinator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.stopAll()
			return

		case ev := <-c.events:
			delay := WriteDebounce
			if ev.Op == "INSERT" {
				delay = InsertDebounce
			}

			for _, shopID := range c.targets(ev.BarbershopID) {
				c.debouncedFor(shopID).Trigger(delay)
			}
		}
	}
}

// targets resolve as barbearias atingidas: evento sem barbearia (0)
// atinge todas as consultas rastreadas.
func (c *Coordinator) targets(barbershopID uint) []uint {
	c.mu.Lock()
	defer c.mu.Unlock()

	if barbershopID > 0 {
		if _, tracked := c.queries[barbershopID]; !tracked {
			return nil
		}
		return []uint{barbershopID}
	}

	all := make([]uint, 0, len(c.queries))
	for id := range c.queries {
		all = append(all, id)
	}
	return all
}

func (c *Coordinator) debouncedFor(barbershopID uint) *Debounced {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, exists := c.debounced[barbershopID]
	if !exists {
		d = NewDebounced(func() { c.reload(barbershopID) })
		c.debounced[barbershopID] = d
	}
	return d
}

func (c *Coordinator) stopAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range c.debounced {
		d.Stop()
	}
}

// reload reexecuta o último filtro e substitui o estado de todos os
// clientes conectados da barbearia.
func (c *Coordinator) reload(barbershopID uint) {
	c.mu.Lock()
	q, tracked := c.queries[barbershopID]
	c.mu.Unlock()

	if !tracked {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	appointments, err := c.reloader.Execute(ctx, q.BarbershopID, q.BarberID, q.From, q.To)
	if err != nil {
		log.Println("sync: falha na recarga:", err)
		return
	}

	c.hub.Broadcast(barbershopID, RefreshMessage{
		Type:         "refresh",
		BarberID:     q.BarberID,
		From:         q.From,
		To:           q.To,
		Appointments: appointments,
	})
}
