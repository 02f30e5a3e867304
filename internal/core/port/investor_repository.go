package port

import (
	"context"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

// InvestorRepositoryPort - доступ к read-модели инвесторов.
// Возвращает domain.ErrInvestorNotFound, если записи нет.
type InvestorRepositoryPort interface {
	GetByID(ctx context.Context, investorID uuid.UUID) (*domain.Investor, error)
}
