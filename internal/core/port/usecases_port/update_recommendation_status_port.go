package usecases_port

import (
	"context"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

// UpdateRecommendationStatusPort - перевод рекомендации по жизненному циклу.
type UpdateRecommendationStatusPort interface {
	Execute(ctx context.Context, id uuid.UUID, status domain.RecommendationStatus) (*domain.Recommendation, error)
}
