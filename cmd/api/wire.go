//go:build wireinject

package main

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nexusrpg/nexus/util"
	"github.com/nexusrpg/nexus/x/account"
	"github.com/nexusrpg/nexus/x/bonus"
	"github.com/nexusrpg/nexus/x/catalog"
	"github.com/nexusrpg/nexus/x/character"
	"github.com/nexusrpg/nexus/x/sync"
	"github.com/nexusrpg/nexus/x/vitals"
	"github.com/nexusrpg/nexus/x/wizard"
)

var catalogProvider = wire.NewSet(catalog.NewService, catalog.NewRepository)
var characterProvider = wire.NewSet(character.NewService, character.NewRepository, account.NewRepository, catalogProvider)

func SetupCatalogService(db *gorm.DB, mc *memcache.Client) catalog.Service {
	wire.Build(catalogProvider)
	return nil
}

func SetupCharacterService(db *gorm.DB, mc *memcache.Client, config util.Config) character.Service {
	wire.Build(characterProvider)
	return nil
}

func SetupVitalsService(db *gorm.DB, rdb *redis.Client) vitals.Service {
	wire.Build(vitals.NewService, vitals.NewRepository, sync.NewPublisher)
	return nil
}

func SetupWizardService(db *gorm.DB, rdb *redis.Client, mc *memcache.Client, config util.Config) wizard.Service {
	wire.Build(wizard.NewService, wizard.NewDraftStore, provideSavePolicy, bonus.NewReconciler, characterProvider)
	return nil
}

func SetupSyncHandler(rdb *redis.Client) sync.Handler {
	wire.Build(sync.NewHandler)
	return nil
}
