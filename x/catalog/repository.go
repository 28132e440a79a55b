//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bradfitz/gomemcache/memcache"
	"gorm.io/gorm"

	"github.com/nexusrpg/nexus/core"
)

// Repository is the interface for catalog repository
type Repository interface {
	GetClub(ctx context.Context, id string) (core.Club, error)
	ListClubs(ctx context.Context) ([]core.Club, error)
	UpsertClub(ctx context.Context, club core.Club) (core.Club, error)

	GetArchetype(ctx context.Context, id string) (core.Archetype, error)
	ListArchetypes(ctx context.Context) ([]core.Archetype, error)
	UpsertArchetype(ctx context.Context, archetype core.Archetype) (core.Archetype, error)

	GetWeapon(ctx context.Context, id string) (core.Weapon, error)
	ListWeapons(ctx context.Context) ([]core.Weapon, error)
	UpsertWeapon(ctx context.Context, weapon core.Weapon) (core.Weapon, error)

	GetStatusEffect(ctx context.Context, id string) (core.StatusEffect, error)
	ListStatusEffects(ctx context.Context) ([]core.StatusEffect, error)
	UpsertStatusEffect(ctx context.Context, status core.StatusEffect) (core.StatusEffect, error)
}

type repository struct {
	db *gorm.DB
	mc *memcache.Client
}

// NewRepository creates a new catalog repository
func NewRepository(db *gorm.DB, mc *memcache.Client) Repository {
	return &repository{db, mc}
}

// GetClub returns a club by ID. Reads go through memcached since the
// reconciler asks for the same club on every wizard transition.
func (r *repository) GetClub(ctx context.Context, id string) (core.Club, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Repository.GetClub")
	defer span.End()

	item, err := r.mc.Get("club:" + id)
	if err == nil {
		var club core.Club
		err = json.Unmarshal(item.Value, &club)
		if err == nil {
			return club, nil
		}
	}

	var club core.Club
	if err := r.db.WithContext(ctx).First(&club, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Club{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Club{}, err
	}

	blob, err := json.Marshal(club)
	if err == nil {
		r.mc.Set(&memcache.Item{Key: "club:" + id, Value: blob})
	}

	return club, nil
}

// ListClubs returns all clubs
func (r *repository) ListClubs(ctx context.Context) ([]core.Club, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Repository.ListClubs")
	defer span.End()

	var clubs []core.Club
	err := r.db.WithContext(ctx).Find(&clubs).Error
	return clubs, err
}

// UpsertClub creates or updates a club and invalidates its cache entry
func (r *repository) UpsertClub(ctx context.Context, club core.Club) (core.Club, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Repository.UpsertClub")
	defer span.End()

	if err := r.db.WithContext(ctx).Save(&club).Error; err != nil {
		span.RecordError(err)
		return core.Club{}, err
	}
	r.mc.Delete("club:" + club.ID)
	return club, nil
}

// GetArchetype returns an archetype by ID
func (r *repository) GetArchetype(ctx context.Context, id string) (core.Archetype, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Repository.GetArchetype")
	defer span.End()

	var archetype core.Archetype
	if err := r.db.WithContext(ctx).First(&archetype, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Archetype{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Archetype{}, err
	}
	return archetype, nil
}

// ListArchetypes returns all archetypes
func (r *repository) ListArchetypes(ctx context.Context) ([]core.Archetype, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Repository.ListArchetypes")
	defer span.End()

	var archetypes []core.Archetype
	err := r.db.WithContext(ctx).Find(&archetypes).Error
	return archetypes, err
}

// UpsertArchetype creates or updates an archetype
func (r *repository) UpsertArchetype(ctx context.Context, archetype core.Archetype) (core.Archetype, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Repository.UpsertArchetype")
	defer span.End()

	if err := r.db.WithContext(ctx).Save(&archetype).Error; err != nil {
		span.RecordError(err)
		return core.Archetype{}, err
	}
	return archetype, nil
}

// GetWeapon returns a weapon by ID
func (r *repository) GetWeapon(ctx context.Context, id string) (core.Weapon, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Repository.GetWeapon")
	defer span.End()

	var weapon core.Weapon
	if err := r.db.WithContext(ctx).First(&weapon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Weapon{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Weapon{}, err
	}
	return weapon, nil
}

// ListWeapons returns all weapons
func (r *repository) ListWeapons(ctx context.Context) ([]core.Weapon, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Repository.ListWeapons")
	defer span.End()

	var weapons []core.Weapon
	err := r.db.WithContext(ctx).Find(&weapons).Error
	return weapons, err
}

// UpsertWeapon creates or updates a weapon
func (r *repository) UpsertWeapon(ctx context.Context, weapon core.Weapon) (core.Weapon, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Repository.UpsertWeapon")
	defer span.End()

	if err := r.db.WithContext(ctx).Save(&weapon).Error; err != nil {
		span.RecordError(err)
		return core.Weapon{}, err
	}
	return weapon, nil
}

// GetStatusEffect returns a status effect by ID
func (r *repository) GetStatusEffect(ctx context.Context, id string) (core.StatusEffect, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Repository.GetStatusEffect")
	defer span.End()

	var status core.StatusEffect
	if err := r.db.WithContext(ctx).First(&status, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.StatusEffect{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.StatusEffect{}, err
	}
	return status, nil
}

// ListStatusEffects returns all status effects
func (r *repository) ListStatusEffects(ctx context.Context) ([]core.StatusEffect, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Repository.ListStatusEffects")
	defer span.End()

	var statuses []core.StatusEffect
	err := r.db.WithContext(ctx).Find(&statuses).Error
	return statuses, err
}

// UpsertStatusEffect creates or updates a status effect
func (r *repository) UpsertStatusEffect(ctx context.Context, status core.StatusEffect) (core.StatusEffect, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Repository.UpsertStatusEffect")
	defer span.End()

	if err := r.db.WithContext(ctx).Save(&status).Error; err != nil {
		span.RecordError(err)
		return core.StatusEffect{}, err
	}
	return status, nil
}
