//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=mock/service.go
package character

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"

	"github.com/nexusrpg/nexus/core"
	"github.com/nexusrpg/nexus/util"
	"github.com/nexusrpg/nexus/x/catalog"
)

// Service is the interface for character service
type Service interface {
	Create(ctx context.Context, request CreateRequest) (core.Character, string, error)
	Get(ctx context.Context, id string) (core.Character, error)
	List(ctx context.Context) ([]core.Character, error)
	Delete(ctx context.Context, id string) (DeleteResult, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo    Repository
	catalog catalog.Service
	config  util.Config
}

// NewService creates a new character service
func NewService(repo Repository, catalog catalog.Service, config util.Config) Service {
	return &service{repo, catalog, config}
}

func (s *service) validate(request CreateRequest) error {
	nameLen := utf8.RuneCountInString(request.Identity.Name)
	if nameLen < nameMinLen || nameLen > nameMaxLen {
		return core.NewErrorValidation(fmt.Sprintf("name must be %d-%d characters", nameMinLen, nameMaxLen))
	}
	if request.Identity.Age < ageMin || request.Identity.Age > ageMax {
		return core.NewErrorValidation(fmt.Sprintf("age must be %d-%d", ageMin, ageMax))
	}
	if utf8.RuneCountInString(request.Background.Biography) > bioMaxLen {
		return core.NewErrorValidation("biography too long")
	}
	if request.Background.ClubID == "" || request.Background.ArchetypeID == "" {
		return core.NewErrorValidation("club and archetype are required")
	}
	if request.Weapons.Primary == "" {
		return core.NewErrorValidation("primary weapon is required")
	}
	return nil
}

// sanitize drops system and malformed attribute keys. System keys are
// a spoofing attempt on derived stats, so they are logged; creation
// still proceeds with the cleaned map.
func (s *service) sanitize(attributes core.AttributeMap) core.AttributeMap {
	clean := core.AttributeMap{}
	for key, value := range attributes {
		if core.IsSystemAttribute(key) {
			slog.Warn("security: system attribute in creation payload stripped",
				slog.String("attribute", key),
				slog.Int("value", value),
			)
			continue
		}
		if !core.IsKnownAttribute(key) {
			continue
		}
		clean[key] = value
	}
	return clean
}

func (s *service) mintToken(charID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": s.config.Nexus.FQDN,
		"sub": charID,
		"aud": "character",
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(s.config.Nexus.TokenTTLMin) * time.Minute).Unix(),
		"jti": xid.New().String(),
	})
	return token.SignedString([]byte(s.config.Nexus.TokenSecret))
}

// Create persists a finished draft as a canonical character. Stats are
// derived server-side, never taken from the payload. Returns the
// character and a short-lived credential scoped to it.
func (s *service) Create(ctx context.Context, request CreateRequest) (core.Character, string, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Create")
	defer span.End()

	if err := s.validate(request); err != nil {
		return core.Character{}, "", err
	}

	archetype, err := s.catalog.GetArchetype(ctx, request.Background.ArchetypeID)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, "", core.NewErrorValidation("unknown archetype")
	}
	if _, err := s.catalog.GetClub(ctx, request.Background.ClubID); err != nil {
		span.RecordError(err)
		return core.Character{}, "", core.NewErrorValidation("unknown club")
	}
	if _, err := s.catalog.GetWeapon(ctx, request.Weapons.Primary); err != nil {
		span.RecordError(err)
		return core.Character{}, "", core.NewErrorValidation("unknown weapon")
	}

	attributes := s.sanitize(request.Attributes)

	maxHP := archetype.BaseHP + attributes[core.AttrStrength]
	maxSAN := archetype.BaseSAN + attributes[core.AttrWillpower]

	character := core.Character{
		ID:          xid.New().String(),
		Name:        request.Identity.Name,
		Age:         request.Identity.Age,
		ClubID:      request.Background.ClubID,
		ArchetypeID: request.Background.ArchetypeID,
		Biography:   request.Background.Biography,
		WeaponID:    request.Weapons.Primary,
		Attributes:  attributes,
		Stats: core.Stats{
			HP:       maxHP,
			MaxHP:    maxHP,
			SAN:      maxSAN,
			MaxSAN:   maxSAN,
			StatusID: s.config.Nexus.DefaultStatus,
		},
	}

	// the account row, when requested, is inserted in the same
	// transaction as the character so neither can exist without the other
	var acct *core.Account
	if request.AccountHandle != "" {
		acct = &core.Account{
			ID:          xid.New().String(),
			Handle:      request.AccountHandle,
			CharacterID: character.ID,
		}
		character.UserID = &acct.ID
	}

	created, err := s.repo.Create(ctx, character, acct)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, "", err
	}

	token, err := s.mintToken(created.ID)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, "", err
	}

	return created, token, nil
}

// Get returns a character by ID
func (s *service) Get(ctx context.Context, id string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Get")
	defer span.End()

	return s.repo.Get(ctx, id)
}

// List returns all characters
func (s *service) List(ctx context.Context) ([]core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.List")
	defer span.End()

	return s.repo.List(ctx)
}

// Count returns the total number of characters, for metrics
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Count")
	defer span.End()

	return s.repo.Count(ctx)
}

// Delete removes a character and purges its linked account
func (s *service) Delete(ctx context.Context, id string) (DeleteResult, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Delete")
	defer span.End()

	return s.repo.Delete(ctx, id)
}
