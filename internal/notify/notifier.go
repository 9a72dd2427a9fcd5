// Package notify fans out entity change events to storefront gateways over
// Redis pub/sub. Every committed mutation publishes one event on the channel
// of its collection; subscribers (the public live hub, admin dashboards)
// re-read the collection on receipt — replace-on-change, no diffing contract.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Collection channel names.
const (
	ColProductos     = "productos"
	ColTransacciones = "transacciones"
	ColTerminales    = "terminales"
	ColArqueos       = "arqueos"
	ColEventosLive   = "eventos_live"
	ColSorteos       = "sorteos"
)

const channelPrefix = "cambios:"

// Evento is the payload published on every change.
type Evento struct {
	Coleccion string    `json:"coleccion"`
	Accion    string    `json:"accion"` // created | updated
	ID        string    `json:"id"`
	Fecha     time.Time `json:"fecha"`
}

// Notifier publishes collection change events. Publishing is best-effort:
// a failed publish is logged and never fails the originating write.
type Notifier interface {
	Publicar(ctx context.Context, coleccion, accion, id string)
}

type redisNotifier struct{ rdb *redis.Client }

func NewRedisNotifier(rdb *redis.Client) Notifier { return &redisNotifier{rdb: rdb} }

func (n *redisNotifier) Publicar(ctx context.Context, coleccion, accion, id string) {
	ev := Evento{Coleccion: coleccion, Accion: accion, ID: id, Fecha: time.Now().UTC()}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("coleccion", coleccion).Msg("notify: marshal event")
		return
	}
	if err := n.rdb.Publish(ctx, channelPrefix+coleccion, data).Err(); err != nil {
		log.Warn().Err(err).Str("coleccion", coleccion).Msg("notify: publish failed")
	}
}

// Suscribir returns a channel of events for one collection. The live stream
// endpoint relays these to SSE clients.
func Suscribir(ctx context.Context, rdb *redis.Client, coleccion string) (<-chan Evento, error) {
	sub := rdb.Subscribe(ctx, channelPrefix+coleccion)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, err
	}

	out := make(chan Evento)
	go func() {
		defer close(out)
		defer sub.Close()
		for msg := range sub.Channel() {
			var ev Evento
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Error().Err(err).Msg("notify: unmarshal event")
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// NopNotifier discards events; used in unit tests.
type NopNotifier struct{}

func (NopNotifier) Publicar(context.Context, string, string, string) {}
