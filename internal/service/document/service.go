package document

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
	repo        repository.DocumentRepository
	elderlyRepo repository.ElderlyRepository
	auditor     *audit.Service
}

func NewService(repo repository.DocumentRepository, elderlyRepo repository.ElderlyRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, elderlyRepo: elderlyRepo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateDocumentRequest) (*model.Document, error) {
	elderly, err := s.elderlyRepo.Get(ctx, req.ElderlyID)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		ID:             uuid.New(),
		OrganizationID: elderly.OrganizationID,
		ElderlyID:      req.ElderlyID,
		FilePath:       req.FilePath,
		DocumentType:   req.DocumentType,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, doc.OrganizationID, actor.UserID,
		model.AuditActionUploadDocument, model.AuditEntityDocument, doc.ID,
		fmt.Sprintf("Document uploaded for elderly: %s", elderly.Name)); err != nil {
		return nil, err
	}

	return doc, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.Document, error) {
	return s.repo.ListByElderly(ctx, elderlyID)
}

func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.RecordEvent(ctx, doc.OrganizationID, actor.UserID,
		model.AuditActionDeleteDocument, model.AuditEntityDocument, doc.ID,
		"Document removed")
}
