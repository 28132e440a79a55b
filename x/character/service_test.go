package character_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/nexusrpg/nexus/core"
	"github.com/nexusrpg/nexus/util"
	"github.com/nexusrpg/nexus/x/catalog/mock"
	"github.com/nexusrpg/nexus/x/character"
	"github.com/nexusrpg/nexus/x/character/mock"
)

func testConfig() util.Config {
	var config util.Config
	config.Nexus.FQDN = "nexus.test"
	config.Nexus.TokenSecret = "test-secret"
	config.ApplyDefaults()
	return config
}

type fixture struct {
	repo    *mock_character.MockRepository
	catalog *mock_catalog.MockService
	service character.Service
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mock_character.NewMockRepository(ctrl)
	mockCatalog := mock_catalog.NewMockService(ctrl)

	return fixture{
		repo:    repo,
		catalog: mockCatalog,
		service: character.NewService(repo, mockCatalog, testConfig()),
	}
}

func validRequest() character.CreateRequest {
	return character.CreateRequest{
		Identity: character.Identity{
			Name: "Akira Endo",
			Age:  16,
		},
		Background: character.Background{
			ClubID:      "drama",
			ArchetypeID: "bookworm",
		},
		Attributes: core.AttributeMap{
			core.AttrStrength:  7,
			core.AttrDexterity: 6,
			core.AttrIntellect: 6,
			core.AttrWillpower: 5,
			core.AttrCharisma:  6,
			core.AttrEducation: 6,
		},
		Weapons: character.Weapons{Primary: "bokken"},
	}
}

func (f fixture) expectCatalog() {
	f.catalog.EXPECT().GetArchetype(gomock.Any(), "bookworm").
		Return(core.Archetype{ID: "bookworm", BaseHP: 10, BaseSAN: 50}, nil)
	f.catalog.EXPECT().GetClub(gomock.Any(), "drama").
		Return(core.Club{ID: "drama"}, nil)
	f.catalog.EXPECT().GetWeapon(gomock.Any(), "bokken").
		Return(core.Weapon{ID: "bokken"}, nil)
}

func TestCreateDerivesStats(t *testing.T) {
	f := newFixture(t)
	f.expectCatalog()

	var saved core.Character
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(ctx context.Context, c core.Character, acct *core.Account) (core.Character, error) {
			saved = c
			return c, nil
		})

	created, token, err := f.service.Create(context.Background(), validRequest())
	if !assert.NoError(t, err) {
		return
	}

	// hp scales on strength, san on willpower, both start full
	assert.Equal(t, 17, saved.Stats.MaxHP)
	assert.Equal(t, 17, saved.Stats.HP)
	assert.Equal(t, 55, saved.Stats.MaxSAN)
	assert.Equal(t, 55, saved.Stats.SAN)
	assert.Equal(t, "steady", saved.Stats.StatusID)
	assert.Nil(t, saved.UserID)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if assert.NoError(t, err) {
		assert.Equal(t, created.ID, claims["sub"])
		assert.Equal(t, "nexus.test", claims["iss"])
	}
}

func TestCreateStripsSystemAttributes(t *testing.T) {
	f := newFixture(t)
	f.expectCatalog()

	request := validRequest()
	request.Attributes["hp"] = 9999
	request.Attributes["maxHp"] = 9999
	request.Attributes["level"] = 99
	request.Attributes["luck"] = 3 // unknown, silently dropped

	var saved core.Character
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(ctx context.Context, c core.Character, acct *core.Account) (core.Character, error) {
			saved = c
			return c, nil
		})

	_, _, err := f.service.Create(context.Background(), request)
	if !assert.NoError(t, err) {
		return
	}

	for _, key := range []string{"hp", "maxHp", "level", "luck"} {
		_, present := saved.Attributes[key]
		assert.False(t, present, "%s must not survive sanitization", key)
	}
	assert.Equal(t, 7, saved.Attributes[core.AttrStrength])
	assert.Equal(t, 17, saved.Stats.MaxHP, "smuggled hp must not leak into derived stats")
}

func TestCreateRejectsBadIdentity(t *testing.T) {
	f := newFixture(t)

	request := validRequest()
	request.Identity.Age = 30

	_, _, err := f.service.Create(context.Background(), request)
	var validation core.ErrorValidation
	assert.ErrorAs(t, err, &validation)
}

func TestCreateRejectsUnknownArchetype(t *testing.T) {
	f := newFixture(t)

	f.catalog.EXPECT().GetArchetype(gomock.Any(), "bookworm").
		Return(core.Archetype{}, core.NewErrorNotFound())

	_, _, err := f.service.Create(context.Background(), validRequest())
	var validation core.ErrorValidation
	assert.ErrorAs(t, err, &validation)
}

func TestCreateLinksAccount(t *testing.T) {
	f := newFixture(t)
	f.expectCatalog()

	request := validRequest()
	request.AccountHandle = "akira"

	var saved core.Character
	var savedAcct *core.Account
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, c core.Character, acct *core.Account) (core.Character, error) {
			saved = c
			savedAcct = acct
			return c, nil
		})

	_, _, err := f.service.Create(context.Background(), request)
	if !assert.NoError(t, err) {
		return
	}

	// the account reaches the repository in the same call as the
	// character, so both rows share one transaction
	if assert.NotNil(t, savedAcct) {
		assert.Equal(t, "akira", savedAcct.Handle)
		assert.Equal(t, saved.ID, savedAcct.CharacterID)
	}
	if assert.NotNil(t, saved.UserID) {
		assert.Equal(t, savedAcct.ID, *saved.UserID)
	}
}

func TestCreateFailureMakesNoSeparateAccountCall(t *testing.T) {
	f := newFixture(t)
	f.expectCatalog()

	request := validRequest()
	request.AccountHandle = "akira"

	// the single Create expectation is the point: there is no other
	// seam through which an account could be committed
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(core.Character{}, assert.AnError)

	_, _, err := f.service.Create(context.Background(), request)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCreateCountsNameInRunes(t *testing.T) {
	f := newFixture(t)
	f.expectCatalog()

	request := validRequest()
	request.Identity.Name = "遠藤晶太郎三世" // 7 runes in 21 bytes

	f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(ctx context.Context, c core.Character, acct *core.Account) (core.Character, error) {
			return c, nil
		})

	_, _, err := f.service.Create(context.Background(), request)
	assert.NoError(t, err)
}

func TestDeleteReportsCascade(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Delete(gomock.Any(), "c1").
		Return(character.DeleteResult{DeletedCharID: "c1", UserPurged: true}, nil)

	result, err := f.service.Delete(context.Background(), "c1")
	if assert.NoError(t, err) {
		assert.Equal(t, "c1", result.DeletedCharID)
		assert.True(t, result.UserPurged)
	}
}
