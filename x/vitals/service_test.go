package vitals_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/nexusrpg/nexus/core"
	"github.com/nexusrpg/nexus/x/sync/mock"
	"github.com/nexusrpg/nexus/x/vitals"
	"github.com/nexusrpg/nexus/x/vitals/mock"
)

func TestModulateClampsLow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_vitals.NewMockRepository(ctrl)
	publisher := mock_sync.NewMockPublisher(ctrl)

	repo.EXPECT().GetStats(gomock.Any(), "char1").Return(core.Stats{HP: 5, MaxHP: 10}, nil)
	repo.EXPECT().SetStat(gomock.Any(), "char1", "hp", 0).Return(core.Stats{HP: 0, MaxHP: 10}, nil)
	publisher.EXPECT().Publish(gomock.Any(), core.EventStatusUpdate, "char1", core.VitalsDelta{
		CharID:   "char1",
		Stat:     "hp",
		NewValue: 0,
	}).Return(nil)

	s := vitals.NewService(repo, publisher)
	stats, err := s.Modulate(context.Background(), "char1", "hp", -20)

	if assert.NoError(t, err) {
		assert.Equal(t, 0, stats.HP)
	}
}

func TestModulateClampsHigh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_vitals.NewMockRepository(ctrl)
	publisher := mock_sync.NewMockPublisher(ctrl)

	repo.EXPECT().GetStats(gomock.Any(), "char1").Return(core.Stats{SAN: 5, MaxSAN: 10}, nil)
	repo.EXPECT().SetStat(gomock.Any(), "char1", "san", 10).Return(core.Stats{SAN: 10, MaxSAN: 10}, nil)
	publisher.EXPECT().Publish(gomock.Any(), core.EventStatusUpdate, "char1", core.VitalsDelta{
		CharID:   "char1",
		Stat:     "san",
		NewValue: 10,
	}).Return(nil)

	s := vitals.NewService(repo, publisher)
	stats, err := s.Modulate(context.Background(), "char1", "san", 20)

	if assert.NoError(t, err) {
		assert.Equal(t, 10, stats.SAN)
	}
}

func TestModulateUnknownStat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_vitals.NewMockRepository(ctrl)
	publisher := mock_sync.NewMockPublisher(ctrl)

	repo.EXPECT().GetStats(gomock.Any(), "char1").Return(core.Stats{}, nil)

	s := vitals.NewService(repo, publisher)
	_, err := s.Modulate(context.Background(), "char1", "luck", 1)

	var validation core.ErrorValidation
	assert.ErrorAs(t, err, &validation)
}

func TestModulateNotFoundEmitsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_vitals.NewMockRepository(ctrl)
	publisher := mock_sync.NewMockPublisher(ctrl)

	repo.EXPECT().GetStats(gomock.Any(), "ghost").Return(core.Stats{}, core.NewErrorNotFound())

	s := vitals.NewService(repo, publisher)
	_, err := s.Modulate(context.Background(), "ghost", "hp", -1)

	assert.ErrorIs(t, err, core.ErrorNotFound{})
}

func TestModulateSurvivesPublishFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_vitals.NewMockRepository(ctrl)
	publisher := mock_sync.NewMockPublisher(ctrl)

	repo.EXPECT().GetStats(gomock.Any(), "char1").Return(core.Stats{HP: 5, MaxHP: 10}, nil)
	repo.EXPECT().SetStat(gomock.Any(), "char1", "hp", 7).Return(core.Stats{HP: 7, MaxHP: 10}, nil)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	s := vitals.NewService(repo, publisher)
	stats, err := s.Modulate(context.Background(), "char1", "hp", 2)

	// persistence already committed; the broadcast is best effort
	if assert.NoError(t, err) {
		assert.Equal(t, 7, stats.HP)
	}
}

func TestSetCondition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_vitals.NewMockRepository(ctrl)
	publisher := mock_sync.NewMockPublisher(ctrl)

	repo.EXPECT().SetStatus(gomock.Any(), "char1", "panicked").
		Return(core.Stats{StatusID: "panicked"}, nil)
	publisher.EXPECT().Publish(gomock.Any(), core.EventConditionUpdate, "char1", core.ConditionChange{
		CharID:   "char1",
		StatusID: "panicked",
	}).Return(nil)

	s := vitals.NewService(repo, publisher)
	stats, err := s.SetCondition(context.Background(), "char1", "panicked")

	if assert.NoError(t, err) {
		assert.Equal(t, "panicked", stats.StatusID)
	}
}
