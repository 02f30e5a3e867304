package usecase

import (
	"context"
	"errors"
	"testing"

	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/matching"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCreateFixture(t *testing.T) (*CreateRecommendationUseCase, *domain.Investor, *fakeRecommendationRepo, *fakeEventsPublisher) {
	t.Helper()

	investor := &domain.Investor{
		ID:      uuid.New(),
		Mandate: &domain.Mandate{PreferredAreas: []string{"Downtown"}},
	}
	listings := &fakeListingStorage{listings: []domain.Listing{
		availableListing("Downtown Dubai", 1000000),
		availableListing("Dubai Marina", 2000000),
	}}
	bundleUC := NewBuildBundleUseCase(newFakeInvestorRepo(investor), listings, matching.DefaultConfig())

	recs := newFakeRecommendationRepo()
	events := &fakeEventsPublisher{}
	uc := NewCreateRecommendationUseCase(bundleUC, recs, events)
	return uc, investor, recs, events
}

func TestCreateRecommendationUseCase_CreatesDraftAndPublishesEvent(t *testing.T) {
	uc, investor, recs, events := newCreateFixture(t)
	createdBy := uuid.New()

	rec, err := uc.Execute(context.Background(), investor.ID, createdBy, domain.BundleSourceManual)

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, domain.RecommendationStatusDraft, rec.Status)
	assert.Equal(t, investor.ID, rec.InvestorID)
	assert.Equal(t, createdBy, rec.CreatedBy)
	assert.Equal(t, domain.BundleSourceManual, rec.Source)
	assert.Len(t, rec.Recommended, 2)
	assert.False(t, rec.CreatedAt.IsZero())

	// Черновик сохранен
	saved, err := recs.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, saved.ID)

	// Событие опубликовано
	require.Len(t, events.published, 1)
	assert.Equal(t, rec.ID, events.published[0].ID)
}

func TestCreateRecommendationUseCase_PublishFailureDoesNotFailCreation(t *testing.T) {
	// Запись в базе - источник истины: падение брокера не откатывает черновик.
	uc, investor, recs, events := newCreateFixture(t)
	events.err = errors.New("broker unavailable")

	rec, err := uc.Execute(context.Background(), investor.ID, uuid.New(), domain.BundleSourceNLPQuery)

	require.NoError(t, err)
	require.NotNil(t, rec)

	saved, err := recs.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecommendationStatusDraft, saved.Status)
}

func TestCreateRecommendationUseCase_SaveFailureFailsCreation(t *testing.T) {
	uc, investor, recs, events := newCreateFixture(t)
	recs.saveErr = errors.New("insert failed")

	rec, err := uc.Execute(context.Background(), investor.ID, uuid.New(), domain.BundleSourceManual)

	require.Error(t, err)
	assert.Nil(t, rec)
	assert.Empty(t, events.published, "event must not be published if save failed")
}

func TestCreateRecommendationUseCase_UnknownInvestorCreatesEmptyDraft(t *testing.T) {
	// Сборка подборки для несуществующего инвестора дает пустую подборку,
	// из которой создается пустой черновик.
	uc, _, _, _ := newCreateFixture(t)

	rec, err := uc.Execute(context.Background(), uuid.New(), uuid.New(), domain.BundleSourceManual)

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Empty(t, rec.Recommended)
	assert.Empty(t, rec.Counterfactuals)
}
