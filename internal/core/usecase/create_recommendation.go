package usecase

import (
	"context"
	"fmt"
	"time"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"
	"recommendation-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

// CreateRecommendationUseCase строит свежую подборку и сохраняет из нее
// черновик рекомендации, после чего публикует событие recommendation.created.
type CreateRecommendationUseCase struct {
	bundleUC        usecases_port.BuildBundlePort
	recommendations port.RecommendationRepositoryPort
	events          port.RecommendationEventsPort
}

func NewCreateRecommendationUseCase(
	bundleUC usecases_port.BuildBundlePort,
	recommendations port.RecommendationRepositoryPort,
	events port.RecommendationEventsPort,
) *CreateRecommendationUseCase {
	return &CreateRecommendationUseCase{
		bundleUC:        bundleUC,
		recommendations: recommendations,
		events:          events,
	}
}

func (uc *CreateRecommendationUseCase) Execute(ctx context.Context, investorID, createdBy uuid.UUID, source domain.BundleSource) (*domain.Recommendation, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "CreateRecommendation",
		"investor_id": investorID,
		"created_by":  createdBy,
		"source":      source,
	})

	ucLogger.Info("Use case started", nil)

	bundle, err := uc.bundleUC.Execute(ctx, investorID, source)
	if err != nil {
		ucLogger.Error("Bundle building failed", err, nil)
		return nil, fmt.Errorf("failed to build bundle: %w", err)
	}

	now := time.Now().UTC()
	rec := domain.Recommendation{
		ID:              uuid.New(),
		InvestorID:      investorID,
		CreatedBy:       createdBy,
		Source:          bundle.Source,
		Status:          domain.RecommendationStatusDraft,
		Recommended:     bundle.Recommended,
		Counterfactuals: bundle.Counterfactuals,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.recommendations.Save(ctx, rec); err != nil {
		ucLogger.Error("Failed to save recommendation", err, nil)
		return nil, fmt.Errorf("failed to save recommendation: %w", err)
	}

	// Событие - best effort: запись в базе уже есть, она источник истины.
	// Падение брокера не должно откатывать созданный черновик.
	if err := uc.events.PublishRecommendationCreated(ctx, rec); err != nil {
		ucLogger.Error("Failed to publish recommendation.created event", err, port.Fields{
			"recommendation_id": rec.ID,
		})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"recommendation_id": rec.ID,
		"recommended_count": len(rec.Recommended),
	})
	return &rec, nil
}
