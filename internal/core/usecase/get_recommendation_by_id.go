package usecase

import (
	"context"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
)

type GetRecommendationByIDUseCase struct {
	recommendations port.RecommendationRepositoryPort
}

func NewGetRecommendationByIDUseCase(recommendations port.RecommendationRepositoryPort) *GetRecommendationByIDUseCase {
	return &GetRecommendationByIDUseCase{recommendations: recommendations}
}

func (uc *GetRecommendationByIDUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":          "GetRecommendationByID",
		"recommendation_id": id,
	})

	ucLogger.Info("Use case started", nil)

	rec, err := uc.recommendations.GetByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return rec, nil
}
