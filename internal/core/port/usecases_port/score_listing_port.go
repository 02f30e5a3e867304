package usecases_port

import (
	"context"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

// ScoreListingPort - расчет fit-score одного объекта для одного инвестора.
type ScoreListingPort interface {
	Execute(ctx context.Context, investorID, listingID uuid.UUID) (domain.FitResult, error)
}
