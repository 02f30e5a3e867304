package usecases_port

import (
	"context"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

// BuildBundlePort - сборка подборки рекомендаций для инвестора.
// Отсутствие инвестора не является ошибкой: возвращается пустая подборка.
type BuildBundlePort interface {
	Execute(ctx context.Context, investorID uuid.UUID, source domain.BundleSource) (domain.RecommendationBundle, error)
}
