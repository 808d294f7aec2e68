package medication

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
	"github.com/seniorcare/admin-api/internal/service/audit"
)

type Service struct {
	repo        repository.MedicationRepository
	elderlyRepo repository.ElderlyRepository
	auditor     *audit.Service
}

func NewService(repo repository.MedicationRepository, elderlyRepo repository.ElderlyRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, elderlyRepo: elderlyRepo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateMedicationRequest) (*model.Medication, error) {
	elderly, err := s.elderlyRepo.Get(ctx, req.ElderlyID)
	if err != nil {
		return nil, err
	}

	medication := &model.Medication{
		ID:             uuid.New(),
		OrganizationID: elderly.OrganizationID,
		ElderlyID:      req.ElderlyID,
		Name:           req.Name,
		Dosage:         req.Dosage,
		Frequency:      req.Frequency,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, medication); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, medication.OrganizationID, actor.UserID,
		model.AuditActionCreateMedication, model.AuditEntityMedication, medication.ID,
		fmt.Sprintf("Medication registered for elderly: %s", elderly.Name)); err != nil {
		return nil, err
	}

	return medication, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.Medication, error) {
	return s.repo.ListByElderly(ctx, elderlyID)
}

func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateMedicationRequest) (*model.Medication, error) {
	medication, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	medication.Name = req.Name
	medication.Dosage = req.Dosage
	medication.Frequency = req.Frequency
	if err := s.repo.Update(ctx, medication); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, medication.OrganizationID, actor.UserID,
		model.AuditActionUpdateMedication, model.AuditEntityMedication, medication.ID,
		fmt.Sprintf("Medication updated: %s", medication.Name)); err != nil {
		return nil, err
	}

	return medication, nil
}

func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	medication, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.RecordEvent(ctx, medication.OrganizationID, actor.UserID,
		model.AuditActionDeleteMedication, model.AuditEntityMedication, medication.ID,
		fmt.Sprintf("Medication removed: %s", medication.Name))
}
