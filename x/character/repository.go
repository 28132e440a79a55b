//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package character

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/nexusrpg/nexus/core"
	"github.com/nexusrpg/nexus/x/account"
)

// Repository is the interface for character repository
type Repository interface {
	Create(ctx context.Context, character core.Character, acct *core.Account) (core.Character, error)
	Get(ctx context.Context, id string) (core.Character, error)
	List(ctx context.Context) ([]core.Character, error)
	Delete(ctx context.Context, id string) (DeleteResult, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db       *gorm.DB
	accounts account.Repository
}

// NewRepository creates a new character repository
func NewRepository(db *gorm.DB, accounts account.Repository) Repository {
	return &repository{db: db, accounts: accounts}
}

// the attribute map is kept canonical in memory and converted to the
// json column only here, at the persistence boundary

func pack(character *core.Character) error {
	blob, err := json.Marshal(character.Attributes)
	if err != nil {
		return err
	}
	character.AttributesJSON = string(blob)
	return nil
}

func unpack(character *core.Character) error {
	character.Attributes = core.AttributeMap{}
	if character.AttributesJSON == "" {
		return nil
	}
	return json.Unmarshal([]byte(character.AttributesJSON), &character.Attributes)
}

// Create creates a character and, when acct is non-nil, its linked
// account in one transaction. A failed character insert rolls the
// account back, so no orphaned account can be observed.
func (r *repository) Create(ctx context.Context, character core.Character, acct *core.Account) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Create")
	defer span.End()

	if err := pack(&character); err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if acct != nil {
			if _, err := r.accounts.CreateTx(tx, *acct); err != nil {
				return err
			}
		}
		return tx.Create(&character).Error
	})
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}
	return character, nil
}

// Get returns a character by ID
func (r *repository) Get(ctx context.Context, id string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Get")
	defer span.End()

	var character core.Character
	if err := r.db.WithContext(ctx).First(&character, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Character{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Character{}, err
	}

	if err := unpack(&character); err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}
	return character, nil
}

// List returns all characters, for the game-master table view
func (r *repository) List(ctx context.Context) ([]core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.List")
	defer span.End()

	var characters []core.Character
	if err := r.db.WithContext(ctx).Find(&characters).Error; err != nil {
		span.RecordError(err)
		return nil, err
	}
	for i := range characters {
		if err := unpack(&characters[i]); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}
	return characters, nil
}

// Count returns the total number of characters
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Count")
	defer span.End()

	var count int64
	err := r.db.WithContext(ctx).Model(&core.Character{}).Count(&count).Error
	return count, err
}

// Delete deletes a character and its linked account in one transaction.
// If the account delete fails the character row is rolled back, so no
// orphaned half-delete can be observed.
func (r *repository) Delete(ctx context.Context, id string) (DeleteResult, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Delete")
	defer span.End()

	result := DeleteResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var character core.Character
		if err := tx.First(&character, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return core.NewErrorNotFound()
			}
			return err
		}

		if err := tx.Delete(&core.Character{}, "id = ?", id).Error; err != nil {
			return err
		}
		result.DeletedCharID = id

		if character.UserID != nil {
			if err := r.accounts.DeleteTx(tx, *character.UserID); err != nil {
				return err
			}
			result.UserPurged = true
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return DeleteResult{}, err
	}

	return result, nil
}
