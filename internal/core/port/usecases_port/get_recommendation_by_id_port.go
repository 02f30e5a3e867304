package usecases_port

import (
	"context"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

type GetRecommendationByIDPort interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error)
}
