package postgres_adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresInvestorRepository - read-only доступ к инвесторам CRM.
// Таблицей владеет ядро CRM, мы ее только читаем.
type PostgresInvestorRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresInvestorRepository(pool *pgxpool.Pool) (*PostgresInvestorRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresInvestorRepository{pool: pool}, nil
}

// GetByID загружает инвестора вместе с мандатом (jsonb-колонка).
func (r *PostgresInvestorRepository) GetByID(ctx context.Context, investorID uuid.UUID) (*domain.Investor, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresInvestorRepository",
		"method":      "GetByID",
		"investor_id": investorID,
	})

	query := `SELECT id, tenant_id, name, email, mandate, created_at, updated_at
	          FROM investors WHERE id = $1`

	var (
		investor    domain.Investor
		mandateJSON []byte
	)
	err := r.pool.QueryRow(ctx, query, investorID).Scan(
		&investor.ID,
		&investor.TenantID,
		&investor.Name,
		&investor.Email,
		&mandateJSON,
		&investor.CreatedAt,
		&investor.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Investor not found.", nil)
			return nil, fmt.Errorf("investor %s: %w", investorID, domain.ErrInvestorNotFound)
		}
		repoLogger.Error("Failed to query investor", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query investor: %w", err)
	}

	// Мандат опционален: NULL в базе означает, что инвестор его еще не заполнил.
	if len(mandateJSON) > 0 {
		var mandate domain.Mandate
		if err := json.Unmarshal(mandateJSON, &mandate); err != nil {
			repoLogger.Error("Failed to unmarshal mandate JSON", err, nil)
			return nil, fmt.Errorf("failed to unmarshal mandate for investor %s: %w", investorID, err)
		}
		investor.Mandate = &mandate
	}

	repoLogger.Debug("Successfully loaded investor.", port.Fields{"has_mandate": investor.Mandate != nil})
	return &investor, nil
}
