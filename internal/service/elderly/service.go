package elderly

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
	repo          repository.ElderlyRepository
	caregiverRepo repository.CaregiverRepository
	auditor       *audit.Service
}

func NewService(repo repository.ElderlyRepository, caregiverRepo repository.CaregiverRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, caregiverRepo: caregiverRepo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateElderlyRequest) (*model.Elderly, error) {
	if !req.BirthDate.Before(time.Now()) {
		return nil, apperrors.Validation("birth date must be in the past")
	}

	elderly := &model.Elderly{
		ID:               uuid.New(),
		OrganizationID:   actor.OrganizationID,
		Name:             req.Name,
		BirthDate:        req.BirthDate,
		EmergencyContact: req.EmergencyContact,
		Address:          req.Address,
		CreatedAt:        time.Now(),
	}
	if err := s.repo.Create(ctx, elderly); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, actor.OrganizationID, actor.UserID,
		model.AuditActionCreateElderly, model.AuditEntityElderly, elderly.ID,
		fmt.Sprintf("Elderly record created: %s", elderly.Name)); err != nil {
		return nil, err
	}

	return elderly, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Elderly, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, actor model.Actor) ([]*model.Elderly, error) {
	return s.repo.List(ctx, actor.OrganizationID)
}

func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateElderlyRequest) (*model.Elderly, error) {
	elderly, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !req.BirthDate.Before(time.Now()) {
		return nil, apperrors.Validation("birth date must be in the past")
	}

	elderly.Name = req.Name
	elderly.BirthDate = req.BirthDate
	elderly.EmergencyContact = req.EmergencyContact
	elderly.Address = req.Address
	if err := s.repo.Update(ctx, elderly); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, actor.OrganizationID, actor.UserID,
		model.AuditActionUpdateElderly, model.AuditEntityElderly, elderly.ID,
		fmt.Sprintf("Elderly record updated: %s", elderly.Name)); err != nil {
		return nil, err
	}

	return elderly, nil
}

// Delete removes an elderly record. Refused while appointments, documents or
// other records still reference it.
func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	elderly, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	hasDependents, err := s.repo.HasDependents(ctx, id)
	if err != nil {
		return err
	}
	if hasDependents {
		return apperrors.Conflict("elderly record has linked records and cannot be removed")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.RecordEvent(ctx, actor.OrganizationID, actor.UserID,
		model.AuditActionDeleteElderly, model.AuditEntityElderly, elderly.ID,
		fmt.Sprintf("Elderly record removed: %s", elderly.Name))
}

func (s *Service) AssignCaregiver(ctx context.Context, actor model.Actor, elderlyID, caregiverID uuid.UUID) error {
	elderly, err := s.repo.Get(ctx, elderlyID)
	if err != nil {
		return err
	}
	if _, err := s.caregiverRepo.Get(ctx, caregiverID); err != nil {
		return err
	}

	assigned, err := s.repo.IsCaregiverAssigned(ctx, elderlyID, caregiverID)
	if err != nil {
		return err
	}
	if assigned {
		return apperrors.Conflict("caregiver is already assigned to this elderly person")
	}

	if err := s.repo.AssignCaregiver(ctx, elderlyID, caregiverID); err != nil {
		return err
	}

	return s.auditor.RecordEvent(ctx, actor.OrganizationID, actor.UserID,
		model.AuditActionAssignCaregiver, model.AuditEntityElderly, elderlyID,
		fmt.Sprintf("Caregiver assigned to elderly: %s", elderly.Name))
}

func (s *Service) RemoveCaregiver(ctx context.Context, actor model.Actor, elderlyID, caregiverID uuid.UUID) error {
	elderly, err := s.repo.Get(ctx, elderlyID)
	if err != nil {
		return err
	}

	assigned, err := s.repo.IsCaregiverAssigned(ctx, elderlyID, caregiverID)
	if err != nil {
		return err
	}
	if !assigned {
		return apperrors.Validation("caregiver is not assigned to this elderly person")
	}

	if err := s.repo.RemoveCaregiver(ctx, elderlyID, caregiverID); err != nil {
		return err
	}

	return s.auditor.RecordEvent(ctx, actor.OrganizationID, actor.UserID,
		model.AuditActionRemoveCaregiver, model.AuditEntityElderly, elderlyID,
		fmt.Sprintf("Caregiver unassigned from elderly: %s", elderly.Name))
}

func (s *Service) ListCaregivers(ctx context.Context, elderlyID uuid.UUID) ([]*model.Caregiver, error) {
	if _, err := s.repo.Get(ctx, elderlyID); err != nil {
		return nil, err
	}
	return s.repo.ListCaregivers(ctx, elderlyID)
}
