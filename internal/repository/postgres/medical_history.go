package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
)

type medicalHistoryRepository struct {
	db *sqlx.DB
}

func NewMedicalHistoryRepository(db *sqlx.DB) repository.MedicalHistoryRepository {
	return &medicalHistoryRepository{db: db}
}

func (r *medicalHistoryRepository) Create(ctx context.Context, entry *model.MedicalHistory) error {
	query := `
		INSERT INTO medical_history (id, organization_id, elderly_id, condition, date_recorded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.OrganizationID, entry.ElderlyID, entry.Condition, entry.DateRecorded, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create medical history entry: %w", err)
	}
	return nil
}

func (r *medicalHistoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalHistory, error) {
	var entry model.MedicalHistory
	err := r.db.GetContext(ctx, &entry,
		`SELECT id, organization_id, elderly_id, condition, date_recorded, created_at FROM medical_history WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("medical history entry not found with id: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medical history entry: %w", err)
	}
	return &entry, nil
}

func (r *medicalHistoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM medical_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete medical history entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("medical history entry not found with id: %s", id)
	}
	return nil
}

func (r *medicalHistoryRepository) ListByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.MedicalHistory, error) {
	var entries []*model.MedicalHistory
	err := r.db.SelectContext(ctx, &entries,
		`SELECT id, organization_id, elderly_id, condition, date_recorded, created_at
		 FROM medical_history WHERE elderly_id = $1 ORDER BY date_recorded DESC`, elderlyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical history: %w", err)
	}
	return entries, nil
}
