package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"justlaw-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PetitionRepository handles database operations for drafted petitions
type PetitionRepository struct {
	db *pgxpool.Pool
}

// NewPetitionRepository creates a new petition repository
func NewPetitionRepository(db *pgxpool.Pool) *PetitionRepository {
	return &PetitionRepository{db: db}
}

// Create stores a drafted petition
func (r *PetitionRepository) Create(ctx context.Context, petition *models.Petition) error {
	id, err := uuid.Parse(petition.ID)
	if err != nil {
		return fmt.Errorf("invalid petition id: %w", err)
	}
	details, err := json.Marshal(petition.Details)
	if err != nil {
		return fmt.Errorf("failed to encode petition details: %w", err)
	}

	query := `
		INSERT INTO petitions (id, user_id, petition_type, details, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRow(
		ctx, query,
		id,
		petition.Owner,
		petition.Type,
		details,
		petition.Text,
	).Scan(&petition.CreatedAt)
}

// GetByID retrieves a petition by ID
func (r *PetitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Petition, error) {
	petition := &models.Petition{}
	var pid uuid.UUID
	var details []byte
	query := `
		SELECT id, user_id, petition_type, details, content, created_at
		FROM petitions
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&pid,
		&petition.Owner,
		&petition.Type,
		&details,
		&petition.Text,
		&petition.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	petition.ID = pid.String()
	if err := decodeDetails(details, petition); err != nil {
		return nil, err
	}
	return petition, nil
}

// ListByUserID lists a user's petitions, newest first
func (r *PetitionRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*models.Petition, error) {
	query := `
		SELECT id, user_id, petition_type, details, content, created_at
		FROM petitions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	petitions := make([]*models.Petition, 0)
	for rows.Next() {
		petition := &models.Petition{}
		var pid uuid.UUID
		var details []byte
		err := rows.Scan(
			&pid,
			&petition.Owner,
			&petition.Type,
			&details,
			&petition.Text,
			&petition.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		petition.ID = pid.String()
		if err := decodeDetails(details, petition); err != nil {
			return nil, err
		}
		petitions = append(petitions, petition)
	}

	return petitions, rows.Err()
}

func decodeDetails(raw []byte, petition *models.Petition) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &petition.Details); err != nil {
		return fmt.Errorf("failed to decode petition details: %w", err)
	}
	return nil
}
