package sync

import (
	stdsync "sync"

	"github.com/gorilla/websocket"
)

type client struct {
	conn         *websocket.Conn
	barbershopID uint
}

// Hub mantém as conexões websocket dos clientes e empurra os payloads
// de recarga para todos os conectados de uma barbearia.
type Hub struct {
	mu      stdsync.RWMutex
	nextID  uint64
	clients map[uint64]client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint64]client),
	}
}

func (h *Hub) Register(barbershopID uint, conn *websocket.Conn) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	h.clients[h.nextID] = client{conn: conn, barbershopID: barbershopID}
	return h.nextID
}

func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, exists := h.clients[id]; exists {
		_ = c.conn.Close()
		delete(h.clients, id)
	}
}

// Broadcast envia o payload para todos os clientes da barbearia;
// conexão que falha na escrita é descartada.
func (h *Hub) Broadcast(barbershopID uint, message interface{}) {
	h.mu.RLock()
	targets := make(map[uint64]client)
	for id, c := range h.clients {
		if c.barbershopID == barbershopID {
			targets[id] = c
		}
	}
	h.mu.RUnlock()

	for id, c := range targets {
		if err := c.conn.WriteJSON(message); err != nil {
			h.Unregister(id)
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		_ = c.conn.Close()
		delete(h.clients, id)
	}
}
