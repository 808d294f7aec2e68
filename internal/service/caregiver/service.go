package caregiver

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
	repo     repository.CaregiverRepository
	userRepo repository.UserRepository
	auditor  *audit.Service
}

func NewService(repo repository.CaregiverRepository, userRepo repository.UserRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, userRepo: userRepo, auditor: auditor}
}

// Create opens a staff profile for a user. The user must carry the CAREGIVER
// role and can hold at most one profile.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateCaregiverRequest) (*model.Caregiver, error) {
	user, err := s.userRepo.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleCaregiver {
		return nil, apperrors.Validation("the linked user must have the CAREGIVER role")
	}

	if existing, err := s.repo.GetByUser(ctx, req.UserID); err == nil && existing != nil {
		return nil, apperrors.Conflict("this user already has a caregiver profile")
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	caregiver := &model.Caregiver{
		ID:             uuid.New(),
		OrganizationID: user.OrganizationID,
		UserID:         req.UserID,
		Specialty:      req.Specialty,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, caregiver); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, caregiver.OrganizationID, actor.UserID,
		model.AuditActionCreateCaregiver, model.AuditEntityCaregiver, caregiver.ID,
		fmt.Sprintf("Caregiver profile created for user: %s", user.Email)); err != nil {
		return nil, err
	}

	return caregiver, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Caregiver, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, actor model.Actor) ([]*model.Caregiver, error) {
	return s.repo.List(ctx, actor.OrganizationID)
}

func (s *Service) FindBySpecialty(ctx context.Context, actor model.Actor, specialty string) ([]*model.Caregiver, error) {
	return s.repo.FindBySpecialty(ctx, actor.OrganizationID, specialty)
}

func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateCaregiverRequest) (*model.Caregiver, error) {
	caregiver, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	caregiver.Specialty = req.Specialty
	if err := s.repo.Update(ctx, caregiver); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, caregiver.OrganizationID, actor.UserID,
		model.AuditActionUpdateCaregiver, model.AuditEntityCaregiver, caregiver.ID,
		"Caregiver profile updated"); err != nil {
		return nil, err
	}

	return caregiver, nil
}

// Delete removes a caregiver profile. Refused while elderly assignments
// still reference it.
func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	caregiver, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	hasAssignments, err := s.repo.HasAssignedElderly(ctx, id)
	if err != nil {
		return err
	}
	if hasAssignments {
		return apperrors.Conflict("caregiver still has assigned elderly and cannot be removed")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.RecordEvent(ctx, caregiver.OrganizationID, actor.UserID,
		model.AuditActionDeleteCaregiver, model.AuditEntityCaregiver, caregiver.ID,
		"Caregiver profile removed")
}

func (s *Service) ListElderly(ctx context.Context, caregiverID uuid.UUID) ([]*model.Elderly, error) {
	if _, err := s.repo.Get(ctx, caregiverID); err != nil {
		return nil, err
	}
	return s.repo.ListElderly(ctx, caregiverID)
}
