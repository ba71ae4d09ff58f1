package sync

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Canais LISTEN/NOTIFY das tabelas observadas (triggers instalados na
// migração).
var watchedChannels = map[string]string{
	"appointments_changed":         "appointments",
	"appointment_services_changed": "appointment_services",
	"schedule_blocks_changed":      "schedule_blocks",
}

// Listener é o feed de notificações de mudança do banco: uma conexão
// pgx dedicada escutando insert/update/delete das tabelas observadas.
type Listener struct {
	dbURL string
}

func NewListener(dbURL string) *Listener {
	return &Listener{dbURL: dbURL}
}

// Run consome notificações e as entrega em out até o contexto
// encerrar; queda de conexão reconecta com backoff simples.
func (l *Listener) Run(ctx context.Context, out chan<- ChangeEvent) {
	for {
		if err := l.listen(ctx, out); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Println("sync: listener caiu, reconectando:", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func (l *Listener) listen(ctx context.Context, out chan<- ChangeEvent) error {
	conn, err := pgx.Connect(ctx, l.dbURL)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	for channel := range watchedChannels {
		if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
			return err
		}
	}

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}

		table, ok := watchedChannels[notification.Channel]
		if !ok {
			continue
		}

		op, shopID := parsePayload(notification.Payload)

		select {
		case out <- ChangeEvent{BarbershopID: shopID, Table: table, Op: op}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// parsePayload decodifica "OP:barbershop_id"
func parsePayload(payload string) (string, uint) {
	op, rest, found := strings.Cut(payload, ":")
	if !found {
		return payload, 0
	}

	id, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return op, 0
	}
	return op, uint(id)
}
