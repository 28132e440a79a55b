//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package wizard

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/nexusrpg/nexus/core"
	"github.com/nexusrpg/nexus/util"
)

// DraftStore persists in-progress drafts for autosave/resume
type DraftStore interface {
	Save(ctx context.Context, draft Draft)
	SaveNow(ctx context.Context, draft Draft) error
	Load(ctx context.Context, id string) (Draft, error)
	Clear(ctx context.Context, id string) error
}

// draftStore is the source of truth for a session between requests.
// Debounced saves therefore go through a write-through buffer: the
// draft is visible to Load the moment it is accepted, and only the
// redis write itself is coalesced.
type draftStore struct {
	rdb    *redis.Client
	policy SavePolicy
	ttl    time.Duration

	mu      sync.Mutex
	pending map[string]Draft
}

// NewDraftStore creates a redis-backed draft store
func NewDraftStore(rdb *redis.Client, policy SavePolicy, config util.Config) DraftStore {
	return &draftStore{
		rdb:     rdb,
		policy:  policy,
		ttl:     config.DraftTTL(),
		pending: make(map[string]Draft),
	}
}

func draftKey(id string) string {
	return "draft:" + id
}

func (s *draftStore) write(ctx context.Context, draft Draft) error {
	blob, err := json.Marshal(draft)
	if err != nil {
		return errors.Wrap(err, "failed to marshal draft")
	}
	return s.rdb.Set(ctx, draftKey(draft.ID), blob, s.ttl).Err()
}

// Save buffers the draft and schedules the redis write through the
// debounce policy. The buffer keeps an accepted mutation observable
// before the write lands; a crashed process loses at most one
// interval of edits.
func (s *draftStore) Save(ctx context.Context, draft Draft) {
	_, span := tracer.Start(ctx, "Wizard.DraftStore.Save")
	defer span.End()

	s.mu.Lock()
	s.pending[draft.ID] = draft
	s.mu.Unlock()

	s.policy.Schedule(draft.ID, func() {
		s.flush(draft.ID)
	})
}

// flush writes the buffered draft and drops it from the buffer.
// Detached from the request context: the debounce timer outlives the
// request that scheduled it.
func (s *draftStore) flush(id string) {
	s.mu.Lock()
	draft, ok := s.pending[id]
	delete(s.pending, id)
	s.mu.Unlock()
	if !ok {
		return
	}

	err := s.write(context.Background(), draft)
	if err != nil {
		slog.Error("failed to autosave draft",
			slog.String("draft", id),
			slog.String("error", err.Error()),
		)
	}
}

// SaveNow bypasses the debounce, for writes that must land
func (s *draftStore) SaveNow(ctx context.Context, draft Draft) error {
	ctx, span := tracer.Start(ctx, "Wizard.DraftStore.SaveNow")
	defer span.End()

	s.policy.Cancel(draft.ID)
	s.mu.Lock()
	delete(s.pending, draft.ID)
	s.mu.Unlock()
	return s.write(ctx, draft)
}

// Load restores a draft by session id, preferring a buffered draft
// over the last flushed one
func (s *draftStore) Load(ctx context.Context, id string) (Draft, error) {
	ctx, span := tracer.Start(ctx, "Wizard.DraftStore.Load")
	defer span.End()

	s.mu.Lock()
	draft, ok := s.pending[id]
	s.mu.Unlock()
	if ok {
		return draft, nil
	}

	blob, err := s.rdb.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Draft{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return Draft{}, err
	}

	err = json.Unmarshal(blob, &draft)
	if err != nil {
		span.RecordError(err)
		return Draft{}, errors.Wrap(err, "failed to unmarshal draft")
	}
	return draft, nil
}

// Clear discards a draft, dropping any buffered write first so a
// queued autosave cannot resurrect it
func (s *draftStore) Clear(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Wizard.DraftStore.Clear")
	defer span.End()

	s.policy.Cancel(id)
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
	return s.rdb.Del(ctx, draftKey(id)).Err()
}
