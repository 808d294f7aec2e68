package medicalhistory

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
	repo        repository.MedicalHistoryRepository
	elderlyRepo repository.ElderlyRepository
	auditor     *audit.Service
}

func NewService(repo repository.MedicalHistoryRepository, elderlyRepo repository.ElderlyRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, elderlyRepo: elderlyRepo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateMedicalHistoryRequest) (*model.MedicalHistory, error) {
	elderly, err := s.elderlyRepo.Get(ctx, req.ElderlyID)
	if err != nil {
		return nil, err
	}

	if req.DateRecorded.After(time.Now()) {
		return nil, apperrors.Validation("record date cannot be in the future")
	}

	entry := &model.MedicalHistory{
		ID:             uuid.New(),
		OrganizationID: elderly.OrganizationID,
		ElderlyID:      req.ElderlyID,
		Condition:      req.Condition,
		DateRecorded:   req.DateRecorded,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, entry.OrganizationID, actor.UserID,
		model.AuditActionCreateMedicalHistory, model.AuditEntityMedicalRecord, entry.ID,
		fmt.Sprintf("Medical history entry created for elderly: %s", elderly.Name)); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.MedicalHistory, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.MedicalHistory, error) {
	return s.repo.ListByElderly(ctx, elderlyID)
}

func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.RecordEvent(ctx, entry.OrganizationID, actor.UserID,
		model.AuditActionDeleteMedicalHistory, model.AuditEntityMedicalRecord, entry.ID,
		"Medical history entry removed")
}
