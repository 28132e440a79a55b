//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=mock/service.go
package vitals

import (
	"context"

	"github.com/nexusrpg/nexus/core"
	"github.com/nexusrpg/nexus/x/sync"
)

// Service is the sole mutator of hp/san/condition after creation
type Service interface {
	Modulate(ctx context.Context, charID string, stat string, delta int) (core.Stats, error)
	SetCondition(ctx context.Context, charID string, statusID string) (core.Stats, error)
}

type service struct {
	repo      Repository
	publisher sync.Publisher
}

// NewService creates a new vitals service
func NewService(repo Repository, publisher sync.Publisher) Service {
	return &service{repo: repo, publisher: publisher}
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Modulate applies a delta to hp or san, clamped into [0, max]. The
// persisted commit happens before the broadcast, and the returned
// stats carry the clamped value: the delta actually applied may be
// smaller than requested.
func (s *service) Modulate(ctx context.Context, charID string, stat string, delta int) (core.Stats, error) {
	ctx, span := tracer.Start(ctx, "Vitals.Service.Modulate")
	defer span.End()

	stats, err := s.repo.GetStats(ctx, charID)
	if err != nil {
		span.RecordError(err)
		return core.Stats{}, err
	}

	var column string
	var newValue int
	switch stat {
	case core.StatHP:
		column = "hp"
		newValue = clamp(stats.HP+delta, 0, stats.MaxHP)
	case core.StatSAN:
		column = "san"
		newValue = clamp(stats.SAN+delta, 0, stats.MaxSAN)
	default:
		return core.Stats{}, core.NewErrorValidation("stat must be hp or san")
	}

	updated, err := s.repo.SetStat(ctx, charID, column, newValue)
	if err != nil {
		span.RecordError(err)
		return core.Stats{}, err
	}

	err = s.publisher.Publish(ctx, core.EventStatusUpdate, charID, core.VitalsDelta{
		CharID:   charID,
		Stat:     stat,
		NewValue: newValue,
	})
	if err != nil {
		// the mutation is already canonical; a failed broadcast only
		// delays the views until the next event or refetch
		span.RecordError(err)
	}

	return updated, nil
}

// SetCondition unconditionally overwrites the condition. Reference
// integrity of statusID is owned by the catalog, not checked here.
func (s *service) SetCondition(ctx context.Context, charID string, statusID string) (core.Stats, error) {
	ctx, span := tracer.Start(ctx, "Vitals.Service.SetCondition")
	defer span.End()

	updated, err := s.repo.SetStatus(ctx, charID, statusID)
	if err != nil {
		span.RecordError(err)
		return core.Stats{}, err
	}

	err = s.publisher.Publish(ctx, core.EventConditionUpdate, charID, core.ConditionChange{
		CharID:   charID,
		StatusID: statusID,
	})
	if err != nil {
		span.RecordError(err)
	}

	return updated, nil
}
