package usecase

import (
	"context"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/matching"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
)

// ScoreListingUseCase - превью fit-score одного объекта для инвестора.
// В отличие от сборки подборки, здесь запрошен конкретный ресурс,
// поэтому отсутствие инвестора или объекта пробрасывается как not found.
type ScoreListingUseCase struct {
	investors port.InvestorRepositoryPort
	listings  port.ListingStoragePort
}

func NewScoreListingUseCase(investors port.InvestorRepositoryPort, listings port.ListingStoragePort) *ScoreListingUseCase {
	return &ScoreListingUseCase{investors: investors, listings: listings}
}

func (uc *ScoreListingUseCase) Execute(ctx context.Context, investorID, listingID uuid.UUID) (domain.FitResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "ScoreListing",
		"investor_id": investorID,
		"listing_id":  listingID,
	})

	ucLogger.Info("Use case started", nil)

	investor, err := uc.investors.GetByID(ctx, investorID)
	if err != nil {
		ucLogger.Error("Failed to load investor", err, nil)
		return domain.FitResult{}, err
	}

	listing, err := uc.listings.GetByID(ctx, listingID)
	if err != nil {
		ucLogger.Error("Failed to load listing", err, nil)
		return domain.FitResult{}, err
	}

	fit := matching.Score(*listing, investor.Mandate)

	ucLogger.Info("Use case finished successfully", port.Fields{"score": fit.Score})
	return fit, nil
}
