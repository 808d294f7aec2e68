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

const caregiverColumns = `id, organization_id, user_id, specialty, created_at`

type caregiverRepository struct {
	db *sqlx.DB
}

func NewCaregiverRepository(db *sqlx.DB) repository.CaregiverRepository {
	return &caregiverRepository{db: db}
}

func (r *caregiverRepository) Create(ctx context.Context, caregiver *model.Caregiver) error {
	query := `
		INSERT INTO caregivers (id, organization_id, user_id, specialty, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		caregiver.ID, caregiver.OrganizationID, caregiver.UserID, caregiver.Specialty, caregiver.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create caregiver: %w", err)
	}
	return nil
}

func (r *caregiverRepository) Get(ctx context.Context, id uuid.UUID) (*model.Caregiver, error) {
	var caregiver model.Caregiver
	err := r.db.GetContext(ctx, &caregiver, `SELECT `+caregiverColumns+` FROM caregivers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("caregiver not found with id: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get caregiver: %w", err)
	}
	return &caregiver, nil
}

func (r *caregiverRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*model.Caregiver, error) {
	var caregiver model.Caregiver
	err := r.db.GetContext(ctx, &caregiver, `SELECT `+caregiverColumns+` FROM caregivers WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("caregiver not found for user: %s", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get caregiver by user: %w", err)
	}
	return &caregiver, nil
}

func (r *caregiverRepository) Update(ctx context.Context, caregiver *model.Caregiver) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE caregivers SET specialty = $1 WHERE id = $2`,
		caregiver.Specialty, caregiver.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update caregiver: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("caregiver not found with id: %s", caregiver.ID)
	}
	return nil
}

func (r *caregiverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM caregivers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete caregiver: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("caregiver not found with id: %s", id)
	}
	return nil
}

func (r *caregiverRepository) List(ctx context.Context, organizationID uuid.UUID) ([]*model.Caregiver, error) {
	var caregivers []*model.Caregiver
	err := r.db.SelectContext(ctx, &caregivers,
		`SELECT `+caregiverColumns+` FROM caregivers WHERE organization_id = $1 ORDER BY created_at ASC`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list caregivers: %w", err)
	}
	return caregivers, nil
}

func (r *caregiverRepository) FindBySpecialty(ctx context.Context, organizationID uuid.UUID, specialty string) ([]*model.Caregiver, error) {
	var caregivers []*model.Caregiver
	err := r.db.SelectContext(ctx, &caregivers,
		`SELECT `+caregiverColumns+` FROM caregivers WHERE organization_id = $1 AND specialty ILIKE $2 ORDER BY created_at ASC`,
		organizationID, "%"+specialty+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find caregivers by specialty: %w", err)
	}
	return caregivers, nil
}

func (r *caregiverRepository) ListElderly(ctx context.Context, caregiverID uuid.UUID) ([]*model.Elderly, error) {
	query := `
		SELECT e.id, e.organization_id, e.name, e.birth_date, e.emergency_contact, e.address, e.created_at
		FROM elderly e
		JOIN elderly_caregivers ec ON ec.elderly_id = e.id
		WHERE ec.caregiver_id = $1
		ORDER BY e.name ASC
	`
	var list []*model.Elderly
	if err := r.db.SelectContext(ctx, &list, query, caregiverID); err != nil {
		return nil, fmt.Errorf("failed to list assigned elderly: %w", err)
	}
	return list, nil
}

func (r *caregiverRepository) HasAssignedElderly(ctx context.Context, caregiverID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM elderly_caregivers WHERE caregiver_id = $1)`, caregiverID)
	if err != nil {
		return false, fmt.Errorf("failed to check assigned elderly: %w", err)
	}
	return exists, nil
}
