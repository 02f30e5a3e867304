package usecases_port

import (
	"context"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

// GetRecommendationsListPort - страница рекомендаций инвестора.
type GetRecommendationsListPort interface {
	Execute(ctx context.Context, investorID uuid.UUID, limit, offset int) (*domain.PaginatedRecommendations, error)
}
