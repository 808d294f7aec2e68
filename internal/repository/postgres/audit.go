package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
)

type auditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, log *model.AuditLog) error {
	query := `
		INSERT INTO audit_logs (
			id, organization_id, user_id, action,
			entity_name, entity_id, description, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.OrganizationID,
		log.UserID,
		log.Action,
		log.EntityName,
		log.EntityID,
		log.Description,
		log.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *auditRepository) List(ctx context.Context, filters *model.AuditLogFilters) ([]*model.AuditLog, error) {
	query := `
		SELECT id, organization_id, user_id, action,
			   entity_name, entity_id, description, timestamp
		FROM audit_logs
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.OrganizationID != uuid.Nil {
			query += fmt.Sprintf(" AND organization_id = $%d", argCount)
			args = append(args, filters.OrganizationID)
			argCount++
		}
		if filters.UserID != uuid.Nil {
			query += fmt.Sprintf(" AND user_id = $%d", argCount)
			args = append(args, filters.UserID)
			argCount++
		}
		if filters.Action != "" {
			query += fmt.Sprintf(" AND action = $%d", argCount)
			args = append(args, filters.Action)
			argCount++
		}
		if filters.EntityName != "" {
			query += fmt.Sprintf(" AND entity_name = $%d", argCount)
			args = append(args, filters.EntityName)
			argCount++
		}
		if !filters.StartDate.IsZero() {
			query += fmt.Sprintf(" AND timestamp >= $%d", argCount)
			args = append(args, filters.StartDate)
			argCount++
		}
		if !filters.EndDate.IsZero() {
			query += fmt.Sprintf(" AND timestamp <= $%d", argCount)
			args = append(args, filters.EndDate)
			argCount++
		}
	}

	query += " ORDER BY timestamp DESC"

	var logs []*model.AuditLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}

func (r *auditRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE timestamp < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete audit logs: %w", err)
	}
	return result.RowsAffected()
}
