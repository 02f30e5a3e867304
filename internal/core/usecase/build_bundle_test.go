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

func f64(v float64) *float64 { return &v }

func availableListing(area string, price float64) domain.Listing {
	return domain.Listing{
		ID:     uuid.New(),
		Area:   area,
		Type:   domain.PropertyTypeResidential,
		Price:  price,
		Status: domain.ListingStatusAvailable,
	}
}

func TestBuildBundleUseCase_HappyPath(t *testing.T) {
	investor := &domain.Investor{
		ID: uuid.New(),
		Mandate: &domain.Mandate{
			PreferredAreas: []string{"Downtown"},
			MaxInvestment:  f64(2000000),
		},
	}
	listings := &fakeListingStorage{listings: []domain.Listing{
		availableListing("Downtown Dubai", 1000000),
		availableListing("Dubai Marina", 5000000),
	}}

	uc := NewBuildBundleUseCase(newFakeInvestorRepo(investor), listings, matching.DefaultConfig())

	bundle, err := uc.Execute(context.Background(), investor.ID, domain.BundleSourceManual)

	require.NoError(t, err)
	assert.Len(t, bundle.Recommended, 2)
	assert.Equal(t, domain.BundleSourceManual, bundle.Source)
}

func TestBuildBundleUseCase_InvestorNotFoundReturnsEmptyBundle(t *testing.T) {
	// Отсутствие инвестора - не ошибка: пустая подборка и nil error.
	uc := NewBuildBundleUseCase(newFakeInvestorRepo(), &fakeListingStorage{}, matching.DefaultConfig())

	bundle, err := uc.Execute(context.Background(), uuid.New(), domain.BundleSourceAIInsight)

	require.NoError(t, err)
	require.NotNil(t, bundle.Recommended)
	require.NotNil(t, bundle.Counterfactuals)
	assert.Empty(t, bundle.Recommended)
	assert.Empty(t, bundle.Counterfactuals)
	assert.Equal(t, domain.BundleSourceAIInsight, bundle.Source)
}

func TestBuildBundleUseCase_RepositoryErrorIsPropagated(t *testing.T) {
	repoErr := errors.New("connection refused")
	investors := newFakeInvestorRepo()
	investors.err = repoErr

	uc := NewBuildBundleUseCase(investors, &fakeListingStorage{}, matching.DefaultConfig())

	_, err := uc.Execute(context.Background(), uuid.New(), domain.BundleSourceManual)

	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
}

func TestBuildBundleUseCase_ListingsErrorIsPropagated(t *testing.T) {
	investor := &domain.Investor{ID: uuid.New(), Mandate: &domain.Mandate{}}
	findErr := errors.New("query timeout")
	listings := &fakeListingStorage{findErr: findErr}

	uc := NewBuildBundleUseCase(newFakeInvestorRepo(investor), listings, matching.DefaultConfig())

	_, err := uc.Execute(context.Background(), investor.ID, domain.BundleSourceManual)

	assert.ErrorIs(t, err, findErr)
}

func TestBuildBundleUseCase_InvestorWithoutMandate(t *testing.T) {
	// Инвестор без мандата: все объекты получают нулевой балл,
	// но подборка все равно собирается.
	investor := &domain.Investor{ID: uuid.New(), Mandate: nil}
	listings := &fakeListingStorage{listings: []domain.Listing{
		availableListing("Downtown Dubai", 1000000),
	}}

	uc := NewBuildBundleUseCase(newFakeInvestorRepo(investor), listings, matching.DefaultConfig())

	bundle, err := uc.Execute(context.Background(), investor.ID, domain.BundleSourceManual)

	require.NoError(t, err)
	require.Len(t, bundle.Recommended, 1)
	assert.Equal(t, 0, bundle.Recommended[0].Score)
}
