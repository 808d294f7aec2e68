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

type medicationRepository struct {
	db *sqlx.DB
}

func NewMedicationRepository(db *sqlx.DB) repository.MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, medication *model.Medication) error {
	query := `
		INSERT INTO medications (id, organization_id, elderly_id, name, dosage, frequency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		medication.ID, medication.OrganizationID, medication.ElderlyID,
		medication.Name, medication.Dosage, medication.Frequency, medication.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	var medication model.Medication
	err := r.db.GetContext(ctx, &medication,
		`SELECT id, organization_id, elderly_id, name, dosage, frequency, created_at FROM medications WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("medication not found with id: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}
	return &medication, nil
}

func (r *medicationRepository) Update(ctx context.Context, medication *model.Medication) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE medications SET name = $1, dosage = $2, frequency = $3 WHERE id = $4`,
		medication.Name, medication.Dosage, medication.Frequency, medication.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medication: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("medication not found with id: %s", medication.ID)
	}
	return nil
}

func (r *medicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("medication not found with id: %s", id)
	}
	return nil
}

func (r *medicationRepository) ListByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.Medication, error) {
	var medications []*model.Medication
	err := r.db.SelectContext(ctx, &medications,
		`SELECT id, organization_id, elderly_id, name, dosage, frequency, created_at
		 FROM medications WHERE elderly_id = $1 ORDER BY name ASC`, elderlyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return medications, nil
}
