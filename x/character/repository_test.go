package character

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexusrpg/nexus/core"
	"github.com/nexusrpg/nexus/internal/testutil"
	"github.com/nexusrpg/nexus/x/account"
)

func TestRepository(t *testing.T) {

	ctx := context.Background()

	db, cleanup_db := testutil.CreateDB()
	defer cleanup_db()

	accounts := account.NewRepository(db)
	repo := NewRepository(db, accounts)

	// :: create and round-trip the attribute column ::
	created, err := repo.Create(ctx, core.Character{
		ID:          "00000000000000000001",
		Name:        "Akira Endo",
		Age:         16,
		ClubID:      "drama",
		ArchetypeID: "bookworm",
		WeaponID:    "bokken",
		Attributes: core.AttributeMap{
			core.AttrStrength: 7,
			core.AttrCharisma: 6,
		},
		Stats: core.Stats{
			HP:       17,
			MaxHP:    17,
			SAN:      55,
			MaxSAN:   55,
			StatusID: "steady",
		},
	}, nil)
	if assert.NoError(t, err) {
		assert.Equal(t, "00000000000000000001", created.ID)
	}

	fetched, err := repo.Get(ctx, "00000000000000000001")
	if assert.NoError(t, err) {
		assert.Equal(t, 7, fetched.Attributes[core.AttrStrength])
		assert.Equal(t, 17, fetched.Stats.MaxHP)
		assert.Equal(t, "steady", fetched.Stats.StatusID)
	}

	// :: list includes the new character ::
	list, err := repo.List(ctx)
	if assert.NoError(t, err) {
		assert.Len(t, list, 1)
	}

	// :: delete without a linked account ::
	result, err := repo.Delete(ctx, "00000000000000000001")
	if assert.NoError(t, err) {
		assert.Equal(t, "00000000000000000001", result.DeletedCharID)
		assert.False(t, result.UserPurged)
	}

	_, err = repo.Get(ctx, "00000000000000000001")
	assert.ErrorIs(t, err, core.ErrorNotFound{})

	// :: create commits the linked account in the same call ::
	acct := core.Account{
		ID:          "000000000000000000aa",
		Handle:      "akira",
		CharacterID: "00000000000000000002",
	}
	userID := acct.ID
	_, err = repo.Create(ctx, core.Character{
		ID:     "00000000000000000002",
		Name:   "Akira Endo",
		Age:    16,
		UserID: &userID,
	}, &acct)
	assert.NoError(t, err)

	stored, err := accounts.Get(ctx, acct.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, "akira", stored.Handle)
	}

	// :: a failed character insert rolls the account back ::
	orphan := core.Account{
		ID:          "000000000000000000bb",
		Handle:      "yukiko",
		CharacterID: "00000000000000000002",
	}
	orphanID := orphan.ID
	_, err = repo.Create(ctx, core.Character{
		ID:     "00000000000000000002", // duplicate key
		Name:   "Yukiko Mori",
		Age:    17,
		UserID: &orphanID,
	}, &orphan)
	assert.Error(t, err)

	_, err = accounts.Get(ctx, orphan.ID)
	assert.ErrorIs(t, err, core.ErrorNotFound{}, "the account must not outlive the failed insert")

	// :: delete cascades to the linked account ::
	result, err = repo.Delete(ctx, "00000000000000000002")
	if assert.NoError(t, err) {
		assert.True(t, result.UserPurged)
	}

	_, err = accounts.Get(ctx, acct.ID)
	assert.ErrorIs(t, err, core.ErrorNotFound{})

	// :: delete of a missing character ::
	_, err = repo.Delete(ctx, "ffffffffffffffffffff")
	assert.ErrorIs(t, err, core.ErrorNotFound{})
}
