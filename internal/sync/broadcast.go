package sync

import (
	"context"
	"encoding/json"
	"log"

	"github.com/go-redis/redis/v8"
)

// Canal de broadcast entre pares: sinaliza "algo mudou" para todos os
// clientes conectados, incluindo quem originou a mutação — assim a
// visão do originador passa pelo mesmo caminho de recarga dos demais.
const BroadcastChannel = "agenda:changed"

// ChangeEvent descreve um evento de mudança de qualquer fonte: feed de
// notificações do banco ou broadcast de um par.
type ChangeEvent struct {
	BarbershopID uint   `json:"barbershop_id"`
	Table        string `json:"table"`
	Op           string `json:"op"` // INSERT | UPDATE | DELETE | TOUCH
}

type Broadcast struct {
	rdb *redis.Client
}

func NewBroadcast(rdb *redis.Client) *Broadcast {
	return &Broadcast{rdb: rdb}
}

func (b *Broadcast) Publish(ctx context.Context, ev ChangeEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, BroadcastChannel, payload).Err()
}

// Subscribe consome o canal de broadcast e entrega os eventos em out
// até o contexto encerrar.
func (b *Broadcast) Subscribe(ctx context.Context, out chan<- ChangeEvent) {
	pubsub := b.rdb.Subscribe(ctx, BroadcastChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}

			var ev ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Println("sync: broadcast payload inválido:", err)
				continue
			}

			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}
