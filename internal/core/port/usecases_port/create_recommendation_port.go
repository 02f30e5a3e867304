package usecases_port

import (
	"context"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

// CreateRecommendationPort - создание черновика рекомендации из свежей подборки.
type CreateRecommendationPort interface {
	Execute(ctx context.Context, investorID, createdBy uuid.UUID, source domain.BundleSource) (*domain.Recommendation, error)
}
