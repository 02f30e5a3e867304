package usecase

import (
	"context"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"
)

// SaveListingsUseCase - пакетное сохранение объектов каталога,
// пришедших из очереди событий.
type SaveListingsUseCase struct {
	storage port.ListingStoragePort
}

func NewSaveListingsUseCase(storage port.ListingStoragePort) *SaveListingsUseCase {
	return &SaveListingsUseCase{storage: storage}
}

func (uc *SaveListingsUseCase) BatchSave(ctx context.Context, listings []domain.Listing) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":     "SaveListings",
		"record_count": len(listings),
	})

	if len(listings) == 0 {
		ucLogger.Info("Nothing to save, empty batch", nil)
		return nil
	}

	ucLogger.Info("Use case started", nil)

	if err := uc.storage.BatchSave(ctx, listings); err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
