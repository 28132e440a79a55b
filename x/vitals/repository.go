//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package vitals

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nexusrpg/nexus/core"
)

// Repository is the interface for vitals repository
type Repository interface {
	GetStats(ctx context.Context, charID string) (core.Stats, error)
	SetStat(ctx context.Context, charID string, column string, value int) (core.Stats, error)
	SetStatus(ctx context.Context, charID string, statusID string) (core.Stats, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new vitals repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetStats loads the canonical stats block of one character
func (r *repository) GetStats(ctx context.Context, charID string) (core.Stats, error) {
	ctx, span := tracer.Start(ctx, "Vitals.Repository.GetStats")
	defer span.End()

	var character core.Character
	if err := r.db.WithContext(ctx).Select("hp", "max_hp", "san", "max_san", "status_id").
		First(&character, "id = ?", charID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Stats{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Stats{}, err
	}
	return character.Stats, nil
}

// SetStat persists one stat column and returns the resulting block
func (r *repository) SetStat(ctx context.Context, charID string, column string, value int) (core.Stats, error) {
	ctx, span := tracer.Start(ctx, "Vitals.Repository.SetStat")
	defer span.End()

	result := r.db.WithContext(ctx).Model(&core.Character{}).
		Where("id = ?", charID).Update(column, value)
	if result.Error != nil {
		span.RecordError(result.Error)
		return core.Stats{}, result.Error
	}
	if result.RowsAffected == 0 {
		return core.Stats{}, core.NewErrorNotFound()
	}

	return r.GetStats(ctx, charID)
}

// SetStatus persists the condition and returns the resulting block
func (r *repository) SetStatus(ctx context.Context, charID string, statusID string) (core.Stats, error) {
	ctx, span := tracer.Start(ctx, "Vitals.Repository.SetStatus")
	defer span.End()

	result := r.db.WithContext(ctx).Model(&core.Character{}).
		Where("id = ?", charID).Update("status_id", statusID)
	if result.Error != nil {
		span.RecordError(result.Error)
		return core.Stats{}, result.Error
	}
	if result.RowsAffected == 0 {
		return core.Stats{}, core.NewErrorNotFound()
	}

	return r.GetStats(ctx, charID)
}
