package usecase

import (
	"context"
	"testing"
	"time"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftRecommendation(status domain.RecommendationStatus) *domain.Recommendation {
	now := time.Now().UTC().Add(-time.Hour)
	return &domain.Recommendation{
		ID:              uuid.New(),
		InvestorID:      uuid.New(),
		CreatedBy:       uuid.New(),
		Source:          domain.BundleSourceManual,
		Status:          status,
		Recommended:     []domain.ScoredListing{},
		Counterfactuals: []domain.Counterfactual{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestUpdateRecommendationStatusUseCase_AllowedTransitions(t *testing.T) {
	cases := []struct {
		from domain.RecommendationStatus
		to   domain.RecommendationStatus
	}{
		{domain.RecommendationStatusDraft, domain.RecommendationStatusSent},
		{domain.RecommendationStatusSent, domain.RecommendationStatusViewed},
		{domain.RecommendationStatusDraft, domain.RecommendationStatusArchived},
		{domain.RecommendationStatusSent, domain.RecommendationStatusArchived},
		{domain.RecommendationStatusViewed, domain.RecommendationStatusArchived},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			rec := draftRecommendation(tc.from)
			repo := newFakeRecommendationRepo(rec)
			uc := NewUpdateRecommendationStatusUseCase(repo)

			updated, err := uc.Execute(context.Background(), rec.ID, tc.to)

			require.NoError(t, err)
			assert.Equal(t, tc.to, updated.Status)
			assert.True(t, updated.UpdatedAt.After(rec.CreatedAt))
		})
	}
}

func TestUpdateRecommendationStatusUseCase_RejectedTransitions(t *testing.T) {
	cases := []struct {
		from domain.RecommendationStatus
		to   domain.RecommendationStatus
	}{
		{domain.RecommendationStatusDraft, domain.RecommendationStatusViewed},
		{domain.RecommendationStatusSent, domain.RecommendationStatusDraft},
		{domain.RecommendationStatusViewed, domain.RecommendationStatusSent},
		{domain.RecommendationStatusArchived, domain.RecommendationStatusArchived},
		{domain.RecommendationStatusArchived, domain.RecommendationStatusSent},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			rec := draftRecommendation(tc.from)
			repo := newFakeRecommendationRepo(rec)
			uc := NewUpdateRecommendationStatusUseCase(repo)

			_, err := uc.Execute(context.Background(), rec.ID, tc.to)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrStatusTransition)

			// Статус в хранилище не изменился
			stored, getErr := repo.GetByID(context.Background(), rec.ID)
			require.NoError(t, getErr)
			assert.Equal(t, tc.from, stored.Status)
		})
	}
}

func TestUpdateRecommendationStatusUseCase_NotFound(t *testing.T) {
	uc := NewUpdateRecommendationStatusUseCase(newFakeRecommendationRepo())

	_, err := uc.Execute(context.Background(), uuid.New(), domain.RecommendationStatusSent)

	assert.ErrorIs(t, err, domain.ErrRecommendationNotFound)
}
