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

const elderlyColumns = `id, organization_id, name, birth_date, emergency_contact, address, created_at`

type elderlyRepository struct {
	db *sqlx.DB
}

func NewElderlyRepository(db *sqlx.DB) repository.ElderlyRepository {
	return &elderlyRepository{db: db}
}

func (r *elderlyRepository) Create(ctx context.Context, elderly *model.Elderly) error {
	query := `
		INSERT INTO elderly (id, organization_id, name, birth_date, emergency_contact, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		elderly.ID, elderly.OrganizationID, elderly.Name, elderly.BirthDate,
		elderly.EmergencyContact, elderly.Address, elderly.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create elderly: %w", err)
	}
	return nil
}

func (r *elderlyRepository) Get(ctx context.Context, id uuid.UUID) (*model.Elderly, error) {
	var elderly model.Elderly
	err := r.db.GetContext(ctx, &elderly, `SELECT `+elderlyColumns+` FROM elderly WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("elderly not found with id: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get elderly: %w", err)
	}
	return &elderly, nil
}

func (r *elderlyRepository) Update(ctx context.Context, elderly *model.Elderly) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE elderly SET name = $1, birth_date = $2, emergency_contact = $3, address = $4 WHERE id = $5`,
		elderly.Name, elderly.BirthDate, elderly.EmergencyContact, elderly.Address, elderly.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update elderly: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("elderly not found with id: %s", elderly.ID)
	}
	return nil
}

func (r *elderlyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM elderly WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete elderly: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("elderly not found with id: %s", id)
	}
	return nil
}

func (r *elderlyRepository) List(ctx context.Context, organizationID uuid.UUID) ([]*model.Elderly, error) {
	var list []*model.Elderly
	err := r.db.SelectContext(ctx, &list,
		`SELECT `+elderlyColumns+` FROM elderly WHERE organization_id = $1 ORDER BY name ASC`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list elderly: %w", err)
	}
	return list, nil
}

func (r *elderlyRepository) HasDependents(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments WHERE elderly_id = $1
			UNION
			SELECT 1 FROM documents WHERE elderly_id = $1
			UNION
			SELECT 1 FROM medications WHERE elderly_id = $1
			UNION
			SELECT 1 FROM medical_history WHERE elderly_id = $1
			UNION
			SELECT 1 FROM family_members WHERE elderly_id = $1
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check elderly dependents: %w", err)
	}
	return exists, nil
}

func (r *elderlyRepository) AssignCaregiver(ctx context.Context, elderlyID, caregiverID uuid.UUID) error {
	query := `
		INSERT INTO elderly_caregivers (elderly_id, caregiver_id, created_at)
		VALUES ($1, $2, NOW())
	`
	if _, err := r.db.ExecContext(ctx, query, elderlyID, caregiverID); err != nil {
		return fmt.Errorf("failed to assign caregiver: %w", err)
	}
	return nil
}

func (r *elderlyRepository) RemoveCaregiver(ctx context.Context, elderlyID, caregiverID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM elderly_caregivers WHERE elderly_id = $1 AND caregiver_id = $2`,
		elderlyID, caregiverID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove caregiver: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("caregiver link not found for elderly %s", elderlyID)
	}
	return nil
}

func (r *elderlyRepository) IsCaregiverAssigned(ctx context.Context, elderlyID, caregiverID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM elderly_caregivers WHERE elderly_id = $1 AND caregiver_id = $2)`,
		elderlyID, caregiverID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check caregiver assignment: %w", err)
	}
	return exists, nil
}

func (r *elderlyRepository) ListCaregivers(ctx context.Context, elderlyID uuid.UUID) ([]*model.Caregiver, error) {
	query := `
		SELECT c.id, c.organization_id, c.user_id, c.specialty, c.created_at
		FROM caregivers c
		JOIN elderly_caregivers ec ON ec.caregiver_id = c.id
		WHERE ec.elderly_id = $1
		ORDER BY c.created_at ASC
	`
	var caregivers []*model.Caregiver
	if err := r.db.SelectContext(ctx, &caregivers, query, elderlyID); err != nil {
		return nil, fmt.Errorf("failed to list elderly caregivers: %w", err)
	}
	return caregivers, nil
}
