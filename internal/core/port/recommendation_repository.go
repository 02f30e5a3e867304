package port

import (
	"context"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

// RecommendationRepositoryPort - персистентность рекомендаций.
type RecommendationRepositoryPort interface {
	Save(ctx context.Context, rec domain.Recommendation) error
	// GetByID возвращает domain.ErrRecommendationNotFound, если записи нет.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error)
	FindPaginatedByInvestor(ctx context.Context, investorID uuid.UUID, limit, offset int) (*domain.PaginatedRecommendations, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RecommendationStatus) error
}
