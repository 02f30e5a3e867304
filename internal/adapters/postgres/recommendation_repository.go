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

// PostgresRecommendationRepository - персистентность рекомендаций.
// Снапшоты recommended/counterfactuals лежат в jsonb-колонках:
// они читаются только целиком и никогда не обновляются по частям.
type PostgresRecommendationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRecommendationRepository(pool *pgxpool.Pool) (*PostgresRecommendationRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresRecommendationRepository{pool: pool}, nil
}

func (r *PostgresRecommendationRepository) Save(ctx context.Context, rec domain.Recommendation) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":         "PostgresRecommendationRepository",
		"method":            "Save",
		"recommendation_id": rec.ID,
		"investor_id":       rec.InvestorID,
	})

	recommendedJSON, err := json.Marshal(rec.Recommended)
	if err != nil {
		return fmt.Errorf("failed to marshal recommended items: %w", err)
	}
	counterfactualsJSON, err := json.Marshal(rec.Counterfactuals)
	if err != nil {
		return fmt.Errorf("failed to marshal counterfactuals: %w", err)
	}

	query := `INSERT INTO recommendations
		(id, investor_id, created_by, source, status, recommended, counterfactuals, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.pool.Exec(ctx, query,
		rec.ID, rec.InvestorID, rec.CreatedBy, rec.Source, rec.Status,
		recommendedJSON, counterfactualsJSON, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to insert recommendation", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}

	repoLogger.Debug("Successfully saved recommendation.", nil)
	return nil
}

func (r *PostgresRecommendationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":         "PostgresRecommendationRepository",
		"method":            "GetByID",
		"recommendation_id": id,
	})

	query := `SELECT id, investor_id, created_by, source, status, recommended, counterfactuals, created_at, updated_at
	          FROM recommendations WHERE id = $1`

	rec, err := scanRecommendation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Recommendation not found.", nil)
			return nil, fmt.Errorf("recommendation %s: %w", id, domain.ErrRecommendationNotFound)
		}
		repoLogger.Error("Failed to query recommendation", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query recommendation: %w", err)
	}

	return rec, nil
}

// FindPaginatedByInvestor считает total и выбирает страницу в одной транзакции,
// чтобы счетчик и данные были консистентны между собой.
func (r *PostgresRecommendationRepository) FindPaginatedByInvestor(ctx context.Context, investorID uuid.UUID, limit, offset int) (*domain.PaginatedRecommendations, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresRecommendationRepository",
		"method":      "FindPaginatedByInvestor",
		"investor_id": investorID,
		"limit":       limit,
		"offset":      offset,
	})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM recommendations WHERE investor_id = $1`
	if err := tx.QueryRow(ctx, countQuery, investorID).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count recommendations", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count recommendations: %w", err)
	}

	result := &domain.PaginatedRecommendations{
		Items:        []domain.Recommendation{},
		TotalCount:   totalCount,
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}

	if totalCount == 0 {
		return result, nil
	}

	// Новые рекомендации первыми
	dataQuery := `SELECT id, investor_id, created_by, source, status, recommended, counterfactuals, created_at, updated_at
	              FROM recommendations WHERE investor_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := tx.Query(ctx, dataQuery, investorID, limit, offset)
	if err != nil {
		repoLogger.Error("Failed to query recommendations page", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query recommendations page: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			repoLogger.Error("Failed to scan recommendation row", err, nil)
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		result.Items = append(result.Items, *rec)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during recommendations iteration", err, nil)
		return nil, fmt.Errorf("error during recommendations iteration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Successfully found paginated recommendations.", port.Fields{"found_on_page": len(result.Items)})
	return result, nil
}

func (r *PostgresRecommendationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RecommendationStatus) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":         "PostgresRecommendationRepository",
		"method":            "UpdateStatus",
		"recommendation_id": id,
		"new_status":        status,
	})

	query := `UPDATE recommendations SET status = $2, updated_at = NOW() WHERE id = $1`

	cmdTag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		repoLogger.Error("Failed to update recommendation status", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update recommendation status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to update status of a recommendation that does not exist.", nil)
		return fmt.Errorf("recommendation %s: %w", id, domain.ErrRecommendationNotFound)
	}

	repoLogger.Debug("Successfully updated recommendation status.", nil)
	return nil
}

func scanRecommendation(row pgx.Row) (*domain.Recommendation, error) {
	var (
		rec                 domain.Recommendation
		recommendedJSON     []byte
		counterfactualsJSON []byte
	)
	err := row.Scan(
		&rec.ID,
		&rec.InvestorID,
		&rec.CreatedBy,
		&rec.Source,
		&rec.Status,
		&recommendedJSON,
		&counterfactualsJSON,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(recommendedJSON, &rec.Recommended); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommended items: %w", err)
	}
	if err := json.Unmarshal(counterfactualsJSON, &rec.Counterfactuals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal counterfactuals: %w", err)
	}
	return &rec, nil
}
