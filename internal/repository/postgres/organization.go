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

type organizationRepository struct {
	db *sqlx.DB
}

func NewOrganizationRepository(db *sqlx.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *model.Organization) error {
	query := `
		INSERT INTO organizations (id, name, domain, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, org.ID, org.Name, org.Domain, org.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

func (r *organizationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	err := r.db.GetContext(ctx, &org, `SELECT id, name, domain, created_at FROM organizations WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("organization not found with id: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return &org, nil
}

func (r *organizationRepository) GetByName(ctx context.Context, name string) (*model.Organization, error) {
	var org model.Organization
	err := r.db.GetContext(ctx, &org, `SELECT id, name, domain, created_at FROM organizations WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("organization not found with name: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization by name: %w", err)
	}
	return &org, nil
}

func (r *organizationRepository) Update(ctx context.Context, org *model.Organization) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE organizations SET name = $1, domain = $2 WHERE id = $3`,
		org.Name, org.Domain, org.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("organization not found with id: %s", org.ID)
	}
	return nil
}

func (r *organizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("organization not found with id: %s", id)
	}
	return nil
}

func (r *organizationRepository) List(ctx context.Context) ([]*model.Organization, error) {
	var orgs []*model.Organization
	if err := r.db.SelectContext(ctx, &orgs, `SELECT id, name, domain, created_at FROM organizations ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

func (r *organizationRepository) HasDependents(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE organization_id = $1
			UNION
			SELECT 1 FROM elderly WHERE organization_id = $1
			UNION
			SELECT 1 FROM caregivers WHERE organization_id = $1
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check organization dependents: %w", err)
	}
	return exists, nil
}
