package usecases_port

import (
	"context"

	"recommendation-service/internal/core/domain"
)

// SaveListingsPort - пакетное сохранение объектов из событий каталога.
type SaveListingsPort interface {
	BatchSave(ctx context.Context, listings []domain.Listing) error
}
