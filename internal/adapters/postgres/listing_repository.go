package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresListingRepository - реплика каталога объектов.
type PostgresListingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresListingRepository(pool *pgxpool.Pool) (*PostgresListingRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresListingRepository{pool: pool}, nil
}

const listingColumns = `id, source_listing_id, title, area, type, price, size_sqm, status,
	latitude, longitude, bedrooms, view, furnished, completion_status, created_at, updated_at`

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	err := row.Scan(
		&l.ID,
		&l.SourceListingID,
		&l.Title,
		&l.Area,
		&l.Type,
		&l.Price,
		&l.SizeSqm,
		&l.Status,
		&l.Latitude,
		&l.Longitude,
		&l.Bedrooms,
		&l.View,
		&l.Furnished,
		&l.CompletionStatus,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// FindAvailable возвращает доступные объекты в порядке каталога.
// Порядок (created_at, id) фиксирован: на него опирается стабильная
// сортировка сборщика подборок.
func (r *PostgresListingRepository) FindAvailable(ctx context.Context) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresListingRepository",
		"method":    "FindAvailable",
	})

	query := fmt.Sprintf(`SELECT %s FROM listings WHERE status = $1 ORDER BY created_at, id`, listingColumns)

	rows, err := r.pool.Query(ctx, query, domain.ListingStatusAvailable)
	if err != nil {
		repoLogger.Error("Failed to query available listings", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query available listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			repoLogger.Error("Failed to scan listing row", err, nil)
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during listings iteration", err, nil)
		return nil, fmt.Errorf("error during listings iteration: %w", err)
	}

	repoLogger.Debug("Successfully loaded available listings.", port.Fields{"count": len(listings)})
	return listings, nil
}

func (r *PostgresListingRepository) GetByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresListingRepository",
		"method":     "GetByID",
		"listing_id": listingID,
	})

	query := fmt.Sprintf(`SELECT %s FROM listings WHERE id = $1`, listingColumns)

	l, err := scanListing(r.pool.QueryRow(ctx, query, listingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Listing not found.", nil)
			return nil, fmt.Errorf("listing %s: %w", listingID, domain.ErrListingNotFound)
		}
		repoLogger.Error("Failed to query listing", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query listing: %w", err)
	}

	return l, nil
}

// BatchSave делает upsert пачки объектов одной транзакцией.
// Конфликт по source_listing_id означает обновление уже известного
// объявления; dedup_hash пересчитывается на каждый upsert.
func (r *PostgresListingRepository) BatchSave(ctx context.Context, listings []domain.Listing) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":    "PostgresListingRepository",
		"method":       "BatchSave",
		"record_count": len(listings),
	})

	if len(listings) == 0 {
		return nil
	}

	query := `INSERT INTO listings (` + listingColumns + `, dedup_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (source_listing_id) DO UPDATE SET
			title = EXCLUDED.title,
			area = EXCLUDED.area,
			type = EXCLUDED.type,
			price = EXCLUDED.price,
			size_sqm = EXCLUDED.size_sqm,
			status = EXCLUDED.status,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			bedrooms = EXCLUDED.bedrooms,
			view = EXCLUDED.view,
			furnished = EXCLUDED.furnished,
			completion_status = EXCLUDED.completion_status,
			updated_at = EXCLUDED.updated_at,
			dedup_hash = EXCLUDED.dedup_hash`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, l := range listings {
		dedupHash := calculateListingHash(buildListingHashPayload(l))
		batch.Queue(query,
			l.ID, l.SourceListingID, l.Title, l.Area, l.Type, l.Price, l.SizeSqm, l.Status,
			l.Latitude, l.Longitude, l.Bedrooms, l.View, l.Furnished, l.CompletionStatus,
			l.CreatedAt, l.UpdatedAt, dedupHash,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range listings {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			repoLogger.Error("Failed to upsert listing in batch", err, nil)
			return fmt.Errorf("failed to upsert listing: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		repoLogger.Error("Failed to close batch results", err, nil)
		return fmt.Errorf("failed to close batch results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Successfully upserted batch of listings.", nil)
	return nil
}
