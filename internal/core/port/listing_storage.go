package port

import (
	"context"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

// ListingStoragePort - хранилище реплики каталога.
type ListingStoragePort interface {
	// FindAvailable возвращает доступные объекты в стабильном порядке каталога
	// (created_at, id). На этот порядок опирается сборщик подборок.
	FindAvailable(ctx context.Context) ([]domain.Listing, error)
	// GetByID возвращает domain.ErrListingNotFound, если объекта нет.
	GetByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error)
	// BatchSave делает upsert пачки объектов из событий каталога.
	BatchSave(ctx context.Context, listings []domain.Listing) error
}
