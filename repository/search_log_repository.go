package repository

import (
	"context"

	"justlaw-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchLogRepository handles database operations for search logs
type SearchLogRepository struct {
	db *pgxpool.Pool
}

// NewSearchLogRepository creates a new search log repository
func NewSearchLogRepository(db *pgxpool.Pool) *SearchLogRepository {
	return &SearchLogRepository{db: db}
}

// Create inserts a search log and fills its ID and timestamp
func (r *SearchLogRepository) Create(ctx context.Context, entry *models.SearchLog) error {
	query := `
		INSERT INTO search_logs (
			query, sources, result_limit, total, is_synthetic, error_count, duration_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	return r.db.QueryRow(
		ctx, query,
		entry.Query,
		entry.SourceStrings(),
		entry.Limit,
		entry.Total,
		entry.IsSynthetic,
		entry.ErrorCount,
		entry.DurationMs,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// ListRecent returns the newest search logs first
func (r *SearchLogRepository) ListRecent(ctx context.Context, limit int) ([]*models.SearchLog, error) {
	query := `
		SELECT id, query, sources, result_limit, total, is_synthetic, error_count, duration_ms, created_at
		FROM search_logs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*models.SearchLog, 0, limit)
	for rows.Next() {
		entry := &models.SearchLog{}
		var sources []string
		err := rows.Scan(
			&entry.ID,
			&entry.Query,
			&sources,
			&entry.Limit,
			&entry.Total,
			&entry.IsSynthetic,
			&entry.ErrorCount,
			&entry.DurationMs,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entry.Sources = make([]models.SourceTag, len(sources))
		for i, s := range sources {
			entry.Sources[i] = models.SourceTag(s)
		}
		logs = append(logs, entry)
	}

	return logs, rows.Err()
}
