package usecase

import (
	"context"
	"fmt"
	"time"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
)

// UpdateRecommendationStatusUseCase переводит рекомендацию по жизненному
// циклу (draft -> sent -> viewed, archived из любого статуса).
type UpdateRecommendationStatusUseCase struct {
	recommendations port.RecommendationRepositoryPort
}

func NewUpdateRecommendationStatusUseCase(recommendations port.RecommendationRepositoryPort) *UpdateRecommendationStatusUseCase {
	return &UpdateRecommendationStatusUseCase{recommendations: recommendations}
}

func (uc *UpdateRecommendationStatusUseCase) Execute(ctx context.Context, id uuid.UUID, status domain.RecommendationStatus) (*domain.Recommendation, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":          "UpdateRecommendationStatus",
		"recommendation_id": id,
		"new_status":        status,
	})

	ucLogger.Info("Use case started", nil)

	rec, err := uc.recommendations.GetByID(ctx, id)
	if err != nil {
		ucLogger.Error("Failed to load recommendation", err, nil)
		return nil, err
	}

	if !rec.Status.CanTransitionTo(status) {
		ucLogger.Warn("Status transition rejected", port.Fields{"current_status": rec.Status})
		return nil, fmt.Errorf("cannot transition from '%s' to '%s': %w", rec.Status, status, domain.ErrStatusTransition)
	}

	if err := uc.recommendations.UpdateStatus(ctx, id, status); err != nil {
		ucLogger.Error("Failed to update status", err, nil)
		return nil, err
	}

	rec.Status = status
	rec.UpdatedAt = time.Now().UTC()

	ucLogger.Info("Use case finished successfully", nil)
	return rec, nil
}
