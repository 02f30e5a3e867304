package usecase

import (
	"context"
	"testing"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreListingUseCase_HappyPath(t *testing.T) {
	investor := &domain.Investor{
		ID: uuid.New(),
		Mandate: &domain.Mandate{
			PreferredAreas: []string{"Downtown"},
			PropertyTypes:  []string{"residential"},
			MaxInvestment:  f64(2000000),
		},
	}
	listing := availableListing("Downtown Dubai", 1000000)
	listings := &fakeListingStorage{listings: []domain.Listing{listing}}

	uc := NewScoreListingUseCase(newFakeInvestorRepo(investor), listings)

	fit, err := uc.Execute(context.Background(), investor.ID, listing.ID)

	require.NoError(t, err)
	assert.Equal(t, 100, fit.Score)
	assert.Len(t, fit.Reasons, 3)
}

func TestScoreListingUseCase_InvestorNotFound(t *testing.T) {
	// В отличие от сборки подборки, здесь запрошен конкретный ресурс:
	// отсутствие инвестора - ошибка not found.
	uc := NewScoreListingUseCase(newFakeInvestorRepo(), &fakeListingStorage{})

	_, err := uc.Execute(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrInvestorNotFound)
}

func TestScoreListingUseCase_ListingNotFound(t *testing.T) {
	investor := &domain.Investor{ID: uuid.New(), Mandate: &domain.Mandate{}}
	uc := NewScoreListingUseCase(newFakeInvestorRepo(investor), &fakeListingStorage{})

	_, err := uc.Execute(context.Background(), investor.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestSaveListingsUseCase_EmptyBatchIsNoOp(t *testing.T) {
	storage := &fakeListingStorage{}
	uc := NewSaveListingsUseCase(storage)

	err := uc.BatchSave(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, storage.saved)
}

func TestSaveListingsUseCase_DelegatesToStorage(t *testing.T) {
	storage := &fakeListingStorage{}
	uc := NewSaveListingsUseCase(storage)

	batch := []domain.Listing{availableListing("Downtown Dubai", 1000000)}
	err := uc.BatchSave(context.Background(), batch)

	require.NoError(t, err)
	require.Len(t, storage.saved, 1)
	assert.Equal(t, batch, storage.saved[0])
}
