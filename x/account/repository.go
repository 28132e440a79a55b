//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go

// Package account keeps the owning-account records linked to characters.
// Accounts live and die with their character: creation and the cascade
// delete both run inside the character's transaction.
package account

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/nexusrpg/nexus/core"
)

var tracer = otel.Tracer("account")

// Repository is the interface for account repository
type Repository interface {
	CreateTx(tx *gorm.DB, account core.Account) (core.Account, error)
	Get(ctx context.Context, id string) (core.Account, error)
	DeleteTx(tx *gorm.DB, id string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new account repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateTx creates an account inside an existing transaction, so the
// character creation can link both rows atomically.
func (r *repository) CreateTx(tx *gorm.DB, account core.Account) (core.Account, error) {
	if err := tx.Create(&account).Error; err != nil {
		return core.Account{}, err
	}
	return account, nil
}

// Get returns an account by ID
func (r *repository) Get(ctx context.Context, id string) (core.Account, error) {
	ctx, span := tracer.Start(ctx, "Account.Repository.Get")
	defer span.End()

	var account core.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Account{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Account{}, err
	}
	return account, nil
}

// DeleteTx deletes an account inside an existing transaction, so the
// character cascade can make both deletions atomic.
func (r *repository) DeleteTx(tx *gorm.DB, id string) error {
	result := tx.Delete(&core.Account{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.NewErrorNotFound()
	}
	return nil
}
