package bonus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/nexusrpg/nexus/core"
	"github.com/nexusrpg/nexus/x/catalog/mock"
	"github.com/nexusrpg/nexus/x/ledger"
)

var testRules = ledger.Rules{
	Floor:   30,
	Ceiling: 42,
	AttrMin: 1,
	AttrMax: 12,
}

func TestApplyRevokeSymmetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := mock_catalog.NewMockService(ctrl)
	mockCatalog.EXPECT().GetClub(gomock.Any(), "drama").Return(core.Club{
		ID:             "drama",
		BonusAttribute: core.AttrCharisma,
		BonusValue:     1,
	}, nil)

	r := NewReconciler(mockCatalog)
	l := ledger.New(testRules, ledger.Default(testRules))

	before := l.Points()[core.AttrCharisma]

	applied, err := r.Apply(context.Background(), "drama", l)
	if assert.NoError(t, err) && assert.NotNil(t, applied) {
		assert.Equal(t, core.AttrCharisma, applied.Attribute)
		assert.Equal(t, before+1, l.Points()[core.AttrCharisma])
	}

	applied = r.Revoke(applied, l)
	assert.Nil(t, applied)
	assert.Equal(t, before, l.Points()[core.AttrCharisma])
}

func TestApplyNoBonusClub(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := mock_catalog.NewMockService(ctrl)
	mockCatalog.EXPECT().GetClub(gomock.Any(), "gonin").Return(core.Club{ID: "gonin"}, nil)

	r := NewReconciler(mockCatalog)
	l := ledger.New(testRules, ledger.Default(testRules))
	before := l.Points()

	applied, err := r.Apply(context.Background(), "gonin", l)
	assert.NoError(t, err)
	assert.Nil(t, applied)
	assert.Equal(t, before, l.Points())

	// revoking nothing is a no-op
	assert.Nil(t, r.Revoke(nil, l))
	assert.Equal(t, before, l.Points())
}

func TestApplyNoClubSelected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := NewReconciler(mock_catalog.NewMockService(ctrl))
	l := ledger.New(testRules, ledger.Default(testRules))

	applied, err := r.Apply(context.Background(), "", l)
	assert.NoError(t, err)
	assert.Nil(t, applied)
}

func TestRevokeTargetsSnapshotAfterClubChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := mock_catalog.NewMockService(ctrl)
	mockCatalog.EXPECT().GetClub(gomock.Any(), "drama").Return(core.Club{
		ID:             "drama",
		BonusAttribute: core.AttrCharisma,
	}, nil)

	r := NewReconciler(mockCatalog)
	l := ledger.New(testRules, ledger.Default(testRules))

	applied, err := r.Apply(context.Background(), "drama", l)
	assert.NoError(t, err)

	// the user switches to a club that bonuses strength before going
	// back. The revoke must still remove the charisma point: the
	// snapshot wins over the current selection.
	applied = r.Revoke(applied, l)
	assert.Nil(t, applied)
	assert.Equal(t, 6, l.Points()[core.AttrCharisma])
	assert.Equal(t, 6, l.Points()[core.AttrStrength])
}

func TestApplyClampsManualOverflow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := mock_catalog.NewMockService(ctrl)
	mockCatalog.EXPECT().GetClub(gomock.Any(), "kendo").Return(core.Club{
		ID:             "kendo",
		BonusAttribute: core.AttrStrength,
	}, nil)

	r := NewReconciler(mockCatalog)

	// strength was raised to 12 before the club selection adjusted its
	// cap down to 11. Applying must clamp first so the result is 12,
	// not 13.
	points := ledger.Default(testRules)
	points[core.AttrStrength] = 12
	l := ledger.New(testRules, points)

	applied, err := r.Apply(context.Background(), "kendo", l)
	if assert.NoError(t, err) && assert.NotNil(t, applied) {
		assert.Equal(t, 12, l.Points()[core.AttrStrength])
	}
}

func TestApplyPropagatesLookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := mock_catalog.NewMockService(ctrl)
	mockCatalog.EXPECT().GetClub(gomock.Any(), "missing").Return(core.Club{}, core.NewErrorNotFound())

	r := NewReconciler(mockCatalog)
	l := ledger.New(testRules, ledger.Default(testRules))

	applied, err := r.Apply(context.Background(), "missing", l)
	assert.Error(t, err)
	assert.Nil(t, applied)
}
