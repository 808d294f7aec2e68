package organization

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
	"github.com/seniorcare/admin-api/internal/service/audit"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
)

type Service struct {
	repo    repository.OrganizationRepository
	auditor *audit.Service
}

func NewService(repo repository.OrganizationRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

// Create registers a new tenant. Names are unique across the system.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateOrganizationRequest) (*model.Organization, error) {
	if existing, err := s.repo.GetByName(ctx, req.Name); err == nil && existing != nil {
		return nil, apperrors.Conflict(fmt.Sprintf("an organization named %q already exists", req.Name))
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	org := &model.Organization{
		ID:        uuid.New(),
		Name:      req.Name,
		Domain:    req.Domain,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, org); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, org.ID, actor.UserID,
		model.AuditActionCreateOrganization, model.AuditEntityOrganization, org.ID,
		fmt.Sprintf("Organization created: %s", org.Name)); err != nil {
		return nil, err
	}

	return org, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Organization, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateOrganizationRequest) (*model.Organization, error) {
	org, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != org.Name {
		if existing, err := s.repo.GetByName(ctx, req.Name); err == nil && existing != nil {
			return nil, apperrors.Conflict(fmt.Sprintf("an organization named %q already exists", req.Name))
		} else if err != nil && !apperrors.IsNotFound(err) {
			return nil, err
		}
	}

	org.Name = req.Name
	org.Domain = req.Domain
	if err := s.repo.Update(ctx, org); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, org.ID, actor.UserID,
		model.AuditActionUpdateOrganization, model.AuditEntityOrganization, org.ID,
		fmt.Sprintf("Organization updated: %s", org.Name)); err != nil {
		return nil, err
	}

	return org, nil
}

// Delete removes a tenant. Refused while users or elderly records still
// reference it.
func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	org, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	hasDependents, err := s.repo.HasDependents(ctx, id)
	if err != nil {
		return err
	}
	if hasDependents {
		return apperrors.Conflict("organization has linked records and cannot be removed")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.RecordEvent(ctx, org.ID, actor.UserID,
		model.AuditActionDeleteOrganization, model.AuditEntityOrganization, org.ID,
		fmt.Sprintf("Organization removed: %s", org.Name))
}
