// Package sync fans vitals and condition changes out to the player's
// own room and the shared game-master table room over websocket.
package sync

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("sync")

// Handler handles websocket connections
type Handler interface {
	Connect(c echo.Context) error
}

type handler struct {
	rdb *redis.Client
}

// NewHandler creates a new handler
func NewHandler(rdb *redis.Client) Handler {
	return &handler{rdb: rdb}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Connect upgrades the connection and forwards room payloads verbatim.
// A reconnecting client gets no snapshot here: canonical state comes
// from the REST API, this channel carries only forward-looking deltas.
func (h handler) Connect(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("failed to upgrade websocket", slog.String("error", err.Error()))
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	pubsub := h.rdb.Subscribe(ctx)
	defer pubsub.Close()

	go func() {
		for {
			msg, err := pubsub.ReceiveMessage(ctx)
			if err != nil {
				return
			}
			err = ws.WriteMessage(websocket.TextMessage, []byte(msg.Payload))
			if err != nil {
				slog.Info("failed to write message", slog.String("error", err.Error()))
				cancel()
				return
			}
		}
	}()

	for {
		var req ChannelRequest
		err := ws.ReadJSON(&req)
		if err != nil {
			break
		}

		err = pubsub.Unsubscribe(ctx)
		if err != nil {
			slog.Error("failed to unsubscribe", slog.String("error", err.Error()))
			break
		}
		if len(req.Channels) > 0 {
			err = pubsub.Subscribe(ctx, req.Channels...)
			if err != nil {
				slog.Error("failed to subscribe", slog.String("error", err.Error()))
				break
			}
		}
	}
	return nil
}
