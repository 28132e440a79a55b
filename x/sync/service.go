//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=mock/service.go
package sync

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/nexusrpg/nexus/core"
)

// Publisher is the interface for broadcasting vitals changes.
// Best effort: no acknowledgment, no replay, no startup snapshot.
type Publisher interface {
	Publish(ctx context.Context, event string, charID string, payload interface{}) error
}

type publisher struct {
	rdb *redis.Client
}

// NewPublisher creates a new publisher
func NewPublisher(rdb *redis.Client) Publisher {
	return &publisher{rdb: rdb}
}

// Publish sends the identical payload to the character's own room and
// then the shared table room, in that order, in one call.
func (p *publisher) Publish(ctx context.Context, event string, charID string, payload interface{}) error {
	ctx, span := tracer.Start(ctx, "Sync.Publisher.Publish")
	defer span.End()

	jsonstr, err := json.Marshal(core.Event{
		Type: event,
		Body: payload,
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	for _, room := range []string{core.PlayerRoom(charID), core.TableRoom} {
		err = p.rdb.Publish(ctx, room, jsonstr).Err()
		if err != nil {
			span.RecordError(err)
			slog.Error("failed to publish to room",
				slog.String("room", room),
				slog.String("error", err.Error()),
			)
			return err
		}
	}

	return nil
}
