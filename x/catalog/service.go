//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=mock/service.go
package catalog

import (
	"context"

	"github.com/nexusrpg/nexus/core"
)

// Service is the interface for catalog service
type Service interface {
	GetClub(ctx context.Context, id string) (core.Club, error)
	GetArchetype(ctx context.Context, id string) (core.Archetype, error)
	GetWeapon(ctx context.Context, id string) (core.Weapon, error)
	GetStatusEffect(ctx context.Context, id string) (core.StatusEffect, error)
	GetReferenceData(ctx context.Context) (ReferenceData, error)

	UpsertClub(ctx context.Context, club core.Club) (core.Club, error)
	UpsertArchetype(ctx context.Context, archetype core.Archetype) (core.Archetype, error)
	UpsertWeapon(ctx context.Context, weapon core.Weapon) (core.Weapon, error)
	UpsertStatusEffect(ctx context.Context, status core.StatusEffect) (core.StatusEffect, error)
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetClub(ctx context.Context, id string) (core.Club, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.GetClub")
	defer span.End()

	return s.repo.GetClub(ctx, id)
}

func (s *service) GetArchetype(ctx context.Context, id string) (core.Archetype, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.GetArchetype")
	defer span.End()

	return s.repo.GetArchetype(ctx, id)
}

func (s *service) GetWeapon(ctx context.Context, id string) (core.Weapon, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.GetWeapon")
	defer span.End()

	return s.repo.GetWeapon(ctx, id)
}

func (s *service) GetStatusEffect(ctx context.Context, id string) (core.StatusEffect, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.GetStatusEffect")
	defer span.End()

	return s.repo.GetStatusEffect(ctx, id)
}

// GetReferenceData returns every reference list in one call
func (s *service) GetReferenceData(ctx context.Context) (ReferenceData, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.GetReferenceData")
	defer span.End()

	clubs, err := s.repo.ListClubs(ctx)
	if err != nil {
		return ReferenceData{}, err
	}
	archetypes, err := s.repo.ListArchetypes(ctx)
	if err != nil {
		return ReferenceData{}, err
	}
	weapons, err := s.repo.ListWeapons(ctx)
	if err != nil {
		return ReferenceData{}, err
	}
	statuses, err := s.repo.ListStatusEffects(ctx)
	if err != nil {
		return ReferenceData{}, err
	}

	return ReferenceData{
		Clubs:         clubs,
		Archetypes:    archetypes,
		Weapons:       weapons,
		StatusEffects: statuses,
	}, nil
}

func (s *service) UpsertClub(ctx context.Context, club core.Club) (core.Club, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.UpsertClub")
	defer span.End()

	return s.repo.UpsertClub(ctx, club)
}

func (s *service) UpsertArchetype(ctx context.Context, archetype core.Archetype) (core.Archetype, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.UpsertArchetype")
	defer span.End()

	return s.repo.UpsertArchetype(ctx, archetype)
}

func (s *service) UpsertWeapon(ctx context.Context, weapon core.Weapon) (core.Weapon, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.UpsertWeapon")
	defer span.End()

	return s.repo.UpsertWeapon(ctx, weapon)
}

func (s *service) UpsertStatusEffect(ctx context.Context, status core.StatusEffect) (core.StatusEffect, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Service.UpsertStatusEffect")
	defer span.End()

	return s.repo.UpsertStatusEffect(ctx, status)
}
