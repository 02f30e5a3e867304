package usecase

import (
	"context"
	"errors"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/matching"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
)

// BuildBundleUseCase собирает подборку рекомендаций для инвестора:
// загружает мандат и доступный каталог, остальное делает matching.BuildBundle.
type BuildBundleUseCase struct {
	investors port.InvestorRepositoryPort
	listings  port.ListingStoragePort
	cfg       matching.Config
}

func NewBuildBundleUseCase(investors port.InvestorRepositoryPort, listings port.ListingStoragePort, cfg matching.Config) *BuildBundleUseCase {
	return &BuildBundleUseCase{investors: investors, listings: listings, cfg: cfg}
}

func (uc *BuildBundleUseCase) Execute(ctx context.Context, investorID uuid.UUID, source domain.BundleSource) (domain.RecommendationBundle, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "BuildBundle",
		"investor_id": investorID,
		"source":      source,
	})

	ucLogger.Info("Use case started", nil)

	investor, err := uc.investors.GetByID(ctx, investorID)
	if err != nil {
		// Отсутствие инвестора - не ошибка: отдаем пустую подборку,
		// дашборд отрисует empty state.
		if errors.Is(err, domain.ErrInvestorNotFound) {
			ucLogger.Warn("Investor not found, returning empty bundle", nil)
			return domain.EmptyBundle(source), nil
		}
		ucLogger.Error("Failed to load investor", err, nil)
		return domain.EmptyBundle(source), err
	}

	listings, err := uc.listings.FindAvailable(ctx)
	if err != nil {
		ucLogger.Error("Failed to load available listings", err, nil)
		return domain.EmptyBundle(source), err
	}

	bundle := matching.BuildBundle(investor.Mandate, listings, uc.cfg, source)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"catalogue_size":        len(listings),
		"recommended_count":     len(bundle.Recommended),
		"counterfactuals_count": len(bundle.Counterfactuals),
	})
	return bundle, nil
}
