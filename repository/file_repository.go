package repository

import (
	"context"
	"errors"

	"justlaw-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContractFileRepository handles database operations for uploaded contracts
type ContractFileRepository struct {
	db *pgxpool.Pool
}

// NewContractFileRepository creates a new contract file repository
func NewContractFileRepository(db *pgxpool.Pool) *ContractFileRepository {
	return &ContractFileRepository{db: db}
}

// Create inserts a contract file record. The ID is chosen by the caller so it
// matches the storage path.
func (r *ContractFileRepository) Create(ctx context.Context, file *models.ContractFile) error {
	query := `
		INSERT INTO contract_files (
			id, user_id, filename, mime_type, size, storage_path, text_length
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRow(
		ctx, query,
		file.ID,
		file.UserID,
		file.Filename,
		file.MimeType,
		file.Size,
		file.StoragePath,
		file.TextLength,
	).Scan(&file.CreatedAt)
}

// GetByID retrieves a contract file by ID
func (r *ContractFileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ContractFile, error) {
	file := &models.ContractFile{}
	query := `
		SELECT id, user_id, filename, mime_type, size, storage_path, text_length, created_at
		FROM contract_files
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.UserID,
		&file.Filename,
		&file.MimeType,
		&file.Size,
		&file.StoragePath,
		&file.TextLength,
		&file.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return file, nil
}

// ListByUserID retrieves a user's uploads, newest first
func (r *ContractFileRepository) ListByUserID(ctx context.Context, userID string) ([]*models.ContractFile, error) {
	query := `
		SELECT id, user_id, filename, mime_type, size, storage_path, text_length, created_at
		FROM contract_files
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]*models.ContractFile, 0)
	for rows.Next() {
		file := &models.ContractFile{}
		err := rows.Scan(
			&file.ID,
			&file.UserID,
			&file.Filename,
			&file.MimeType,
			&file.Size,
			&file.StoragePath,
			&file.TextLength,
			&file.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, rows.Err()
}
