package usecase

import (
	"context"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
)

type GetRecommendationsListUseCase struct {
	recommendations port.RecommendationRepositoryPort
}

func NewGetRecommendationsListUseCase(recommendations port.RecommendationRepositoryPort) *GetRecommendationsListUseCase {
	return &GetRecommendationsListUseCase{recommendations: recommendations}
}

func (uc *GetRecommendationsListUseCase) Execute(ctx context.Context, investorID uuid.UUID, limit, offset int) (*domain.PaginatedRecommendations, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetRecommendationsList",
		"investor_id": investorID,
		"limit":       limit,
		"offset":      offset,
	})

	ucLogger.Info("Use case started", nil)

	result, err := uc.recommendations.FindPaginatedByInvestor(ctx, investorID, limit, offset)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Items),
	})
	return result, nil
}
