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

const familyMemberColumns = `id, organization_id, user_id, elderly_id, relationship, created_at`

type familyMemberRepository struct {
	db *sqlx.DB
}

func NewFamilyMemberRepository(db *sqlx.DB) repository.FamilyMemberRepository {
	return &familyMemberRepository{db: db}
}

func (r *familyMemberRepository) Create(ctx context.Context, member *model.FamilyMember) error {
	query := `
		INSERT INTO family_members (id, organization_id, user_id, elderly_id, relationship, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		member.ID, member.OrganizationID, member.UserID, member.ElderlyID, member.Relationship, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create family member: %w", err)
	}
	return nil
}

func (r *familyMemberRepository) Get(ctx context.Context, id uuid.UUID) (*model.FamilyMember, error) {
	var member model.FamilyMember
	err := r.db.GetContext(ctx, &member, `SELECT `+familyMemberColumns+` FROM family_members WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("family member not found with id: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family member: %w", err)
	}
	return &member, nil
}

func (r *familyMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM family_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete family member: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("family member not found with id: %s", id)
	}
	return nil
}

func (r *familyMemberRepository) List(ctx context.Context, organizationID uuid.UUID) ([]*model.FamilyMember, error) {
	var members []*model.FamilyMember
	err := r.db.SelectContext(ctx, &members,
		`SELECT `+familyMemberColumns+` FROM family_members WHERE organization_id = $1 ORDER BY created_at ASC`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list family members: %w", err)
	}
	return members, nil
}

func (r *familyMemberRepository) ListByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.FamilyMember, error) {
	var members []*model.FamilyMember
	err := r.db.SelectContext(ctx, &members,
		`SELECT `+familyMemberColumns+` FROM family_members WHERE elderly_id = $1 ORDER BY created_at ASC`, elderlyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list family members by elderly: %w", err)
	}
	return members, nil
}

func (r *familyMemberRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.FamilyMember, error) {
	var members []*model.FamilyMember
	err := r.db.SelectContext(ctx, &members,
		`SELECT `+familyMemberColumns+` FROM family_members WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list family members by user: %w", err)
	}
	return members, nil
}

func (r *familyMemberRepository) Exists(ctx context.Context, userID, elderlyID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM family_members WHERE user_id = $1 AND elderly_id = $2)`,
		userID, elderlyID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check family member link: %w", err)
	}
	return exists, nil
}
