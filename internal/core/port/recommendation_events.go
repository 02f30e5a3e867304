package port

import (
	"context"

	"recommendation-service/internal/core/domain"
)

// RecommendationEventsPort - публикация доменных событий рекомендаций
// для downstream-сервисов (нотификации, аналитика).
type RecommendationEventsPort interface {
	PublishRecommendationCreated(ctx context.Context, rec domain.Recommendation) error
}
