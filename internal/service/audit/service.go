package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
)

type Service struct {
	repo repository.AuditRepository
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo}
}

// RecordEvent persists one immutable audit entry. Every state-changing
// operation in the services calls this after a successful mutation.
func (s *Service) RecordEvent(ctx context.Context, organizationID, userID uuid.UUID, action, entityName string, entityID uuid.UUID, description string) error {
	if organizationID == uuid.Nil {
		return apperrors.Validation("organization id is required for audit records")
	}
	if userID == uuid.Nil {
		return apperrors.Validation("user id is required for audit records")
	}
	if action == "" {
		return apperrors.Validation("action is required for audit records")
	}
	if entityName == "" {
		return apperrors.Validation("entity name is required for audit records")
	}

	log := &model.AuditLog{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		UserID:         userID,
		Action:         action,
		EntityName:     entityName,
		EntityID:       entityID,
		Description:    description,
		Timestamp:      time.Now(),
	}

	return s.repo.Create(ctx, log)
}

func (s *Service) List(ctx context.Context, filters *model.AuditLogFilters) ([]*model.AuditLog, error) {
	return s.repo.List(ctx, filters)
}

// Cleanup removes audit entries older than the cutoff. Used by the
// retention worker.
func (s *Service) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	return s.repo.DeleteBefore(ctx, before)
}
