package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/nexusrpg/nexus/core"
	"github.com/nexusrpg/nexus/x/bonus"
	"github.com/nexusrpg/nexus/x/catalog/mock"
	"github.com/nexusrpg/nexus/x/character"
	"github.com/nexusrpg/nexus/x/ledger"
)

var testRules = ledger.Rules{
	Floor:   30,
	Ceiling: 42,
	AttrMin: 1,
	AttrMax: 12,
}

type memStore struct {
	drafts map[string]Draft
	saves  int
	clears int
}

func newMemStore() *memStore {
	return &memStore{drafts: map[string]Draft{}}
}

func (s *memStore) Save(ctx context.Context, draft Draft) {
	s.saves++
	s.drafts[draft.ID] = draft
}

func (s *memStore) SaveNow(ctx context.Context, draft Draft) error {
	s.drafts[draft.ID] = draft
	return nil
}

func (s *memStore) Load(ctx context.Context, id string) (Draft, error) {
	draft, ok := s.drafts[id]
	if !ok {
		return Draft{}, core.NewErrorNotFound()
	}
	return draft, nil
}

func (s *memStore) Clear(ctx context.Context, id string) error {
	s.clears++
	delete(s.drafts, id)
	return nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func validDraft() *Draft {
	return &Draft{
		ID:   "w1",
		Step: StepIdentity,
		Identity: character.Identity{
			Name: "Akira Endo",
			Age:  16,
		},
		Background: character.Background{
			ClubID:      "drama",
			ArchetypeID: "bookworm",
		},
		Attributes: ledger.Default(testRules),
		Weapons:    character.Weapons{Primary: "bokken"},
	}
}

func dramaClub() core.Club {
	return core.Club{ID: "drama", BonusAttribute: core.AttrCharisma, BonusValue: 1}
}

func setup(t *testing.T, draft *Draft) (*Machine, *memStore, *fakeClock, *mock_catalog.MockService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockCatalog := mock_catalog.NewMockService(ctrl)
	store := newMemStore()
	clock := &fakeClock{t: time.Now()}

	m := NewMachine(draft, testRules, bonus.NewReconciler(mockCatalog), store, clock.now)
	return m, store, clock, mockCatalog
}

func TestNextRejectsInvalidIdentity(t *testing.T) {
	ctx := context.Background()
	draft := validDraft()
	draft.Identity.Name = "Al" // too short

	m, store, clock, _ := setup(t, draft)

	err := m.Next(ctx)
	var rejection StepRejection
	if assert.ErrorAs(t, err, &rejection) {
		assert.Equal(t, StepIdentity, rejection.Step)
	}
	assert.Equal(t, StepIdentity, draft.Step)
	assert.Equal(t, 0, store.saves, "a rejected transition must not persist")

	// the flag is transient: visible now, gone after the clear delay
	assert.NotEmpty(t, m.Flag())
	clock.t = clock.t.Add(flagTTL + time.Second)
	assert.Empty(t, m.Flag())
}

func TestNameBoundsCountRunes(t *testing.T) {
	ctx := context.Background()

	draft := validDraft()
	draft.Identity.Name = "遠藤晶太郎三世" // 7 runes in 21 bytes
	m, _, _, _ := setup(t, draft)
	assert.NoError(t, m.Next(ctx))
	assert.Equal(t, StepBackground, draft.Step)

	short := validDraft()
	short.Identity.Name = "遠藤" // 2 runes; the byte count must not satisfy the minimum
	m2, _, _, _ := setup(t, short)
	assert.Error(t, m2.Next(ctx))
	assert.Equal(t, StepIdentity, short.Step)
}

func TestNextRejectsUnderage(t *testing.T) {
	ctx := context.Background()
	draft := validDraft()
	draft.Identity.Age = 11

	m, _, _, _ := setup(t, draft)
	assert.Error(t, m.Next(ctx))
	assert.Equal(t, StepIdentity, draft.Step)
}

func TestNextWalksAllSteps(t *testing.T) {
	ctx := context.Background()
	draft := validDraft()
	m, store, _, mockCatalog := setup(t, draft)

	mockCatalog.EXPECT().GetClub(gomock.Any(), "drama").Return(dramaClub(), nil)

	assert.NoError(t, m.Next(ctx)) // identity -> background
	assert.NoError(t, m.Next(ctx)) // background -> attributes
	assert.NoError(t, m.Next(ctx)) // attributes -> weapons, bonus applied
	assert.NoError(t, m.Next(ctx)) // weapons -> review

	assert.Equal(t, StepReview, draft.Step)
	assert.True(t, m.AtReview())
	assert.Equal(t, 4, store.saves, "every accepted transition persists a snapshot")

	// no step past review
	assert.Error(t, m.Next(ctx))
}

func TestAttributesGateIsFloorOnly(t *testing.T) {
	ctx := context.Background()
	draft := validDraft()
	draft.Step = StepAttributes
	for _, key := range core.Attributes {
		draft.Attributes[key] = 4 // total 24, below floor
	}

	m, _, _, mockCatalog := setup(t, draft)

	err := m.Next(ctx)
	var rejection StepRejection
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, StepAttributes, draft.Step)

	// floor reached but ceiling untouched: gate passes
	mockCatalog.EXPECT().GetClub(gomock.Any(), "drama").Return(dramaClub(), nil)
	assert.NoError(t, m.SetPoints(ctx, core.AttrIntellect, 10)) // total 30
	assert.NoError(t, m.Next(ctx))
	assert.Equal(t, StepWeapons, draft.Step)
}

func TestBonusAppliedOnceAndRevokedOnBacktrack(t *testing.T) {
	ctx := context.Background()
	draft := validDraft()
	draft.Step = StepAttributes

	m, _, _, mockCatalog := setup(t, draft)

	// forward out of attributes applies exactly one charisma point
	mockCatalog.EXPECT().GetClub(gomock.Any(), "drama").Return(dramaClub(), nil)
	assert.NoError(t, m.Next(ctx))
	if assert.NotNil(t, draft.Bonus) {
		assert.Equal(t, core.AttrCharisma, draft.Bonus.Attribute)
	}
	assert.Equal(t, 7, draft.Attributes[core.AttrCharisma])

	// backward into attributes revokes it
	mockCatalog.EXPECT().GetClub(gomock.Any(), "drama").Return(dramaClub(), nil)
	assert.NoError(t, m.Prev(ctx))
	assert.Nil(t, draft.Bonus)
	assert.Equal(t, 6, draft.Attributes[core.AttrCharisma])
	assert.Equal(t, StepAttributes, draft.Step)
}

func TestRevokeTargetsApplySnapshotAfterClubChange(t *testing.T) {
	ctx := context.Background()
	draft := validDraft()
	draft.Step = StepAttributes

	m, _, _, mockCatalog := setup(t, draft)

	mockCatalog.EXPECT().GetClub(gomock.Any(), "drama").Return(dramaClub(), nil)
	assert.NoError(t, m.Next(ctx)) // charisma bonused

	// switching clubs on the weapons step must not move the revoke
	// target: the snapshot pins charisma
	kendo := core.Club{ID: "kendo", BonusAttribute: core.AttrStrength}
	mockCatalog.EXPECT().GetClub(gomock.Any(), "kendo").Return(kendo, nil).AnyTimes()
	draft.Background.ClubID = "kendo"

	assert.NoError(t, m.Prev(ctx))
	assert.Equal(t, 6, draft.Attributes[core.AttrCharisma])
	assert.Equal(t, 6, draft.Attributes[core.AttrStrength])
}

func TestPrevSurvivesVanishedClub(t *testing.T) {
	ctx := context.Background()
	draft := validDraft()
	draft.Step = StepAttributes

	m, _, _, mockCatalog := setup(t, draft)

	mockCatalog.EXPECT().GetClub(gomock.Any(), "drama").Return(dramaClub(), nil)
	assert.NoError(t, m.Next(ctx))

	// the club disappears from the catalog between apply and revoke;
	// the revoke still lands and the draft just loses its bonus cap
	mockCatalog.EXPECT().GetClub(gomock.Any(), "drama").
		Return(core.Club{}, core.NewErrorNotFound())
	assert.NoError(t, m.Prev(ctx))
	assert.Nil(t, draft.Bonus)
	assert.Equal(t, 6, draft.Attributes[core.AttrCharisma])
	assert.Equal(t, StepAttributes, draft.Step)
}

func TestPrevAtFirstStepIsNoop(t *testing.T) {
	ctx := context.Background()
	draft := validDraft()
	m, store, _, _ := setup(t, draft)

	assert.NoError(t, m.Prev(ctx))
	assert.Equal(t, StepIdentity, draft.Step)
	assert.Equal(t, 0, store.saves)
}

func TestPrevNeedsNoValidation(t *testing.T) {
	ctx := context.Background()
	draft := validDraft()
	draft.Step = StepBackground
	draft.Identity.Name = "" // would never pass next()

	m, _, _, _ := setup(t, draft)
	assert.NoError(t, m.Prev(ctx))
	assert.Equal(t, StepIdentity, draft.Step)
}

func TestSetPointsSurfacesRejection(t *testing.T) {
	ctx := context.Background()
	draft := validDraft()
	draft.Step = StepAttributes

	m, store, clock, _ := setup(t, draft)

	err := m.SetPoints(ctx, core.AttrStrength, 13)
	var rejection ledger.Rejection
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, 0, store.saves)
	assert.NotEmpty(t, m.Flag())

	clock.t = clock.t.Add(flagTTL + time.Millisecond)
	assert.Empty(t, m.Flag())
}

func TestBuildRequestCarriesBonusedAttributes(t *testing.T) {
	ctx := context.Background()
	draft := validDraft()
	draft.Step = StepAttributes
	draft.AccountHandle = "akira"

	m, _, _, mockCatalog := setup(t, draft)

	mockCatalog.EXPECT().GetClub(gomock.Any(), "drama").Return(dramaClub(), nil)
	assert.NoError(t, m.Next(ctx))

	request := m.BuildRequest()
	assert.Equal(t, "Akira Endo", request.Identity.Name)
	assert.Equal(t, 7, request.Attributes[core.AttrCharisma])
	assert.Equal(t, "akira", request.AccountHandle)
}
