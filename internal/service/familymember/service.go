package familymember

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
	repo        repository.FamilyMemberRepository
	userRepo    repository.UserRepository
	elderlyRepo repository.ElderlyRepository
	auditor     *audit.Service
}

func NewService(repo repository.FamilyMemberRepository, userRepo repository.UserRepository, elderlyRepo repository.ElderlyRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, userRepo: userRepo, elderlyRepo: elderlyRepo, auditor: auditor}
}

// Create links a FAMILY-role user to an elderly person. The same pair can
// only be linked once.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateFamilyMemberRequest) (*model.FamilyMember, error) {
	if !req.Relationship.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown relationship: %s", req.Relationship))
	}

	user, err := s.userRepo.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleFamily {
		return nil, apperrors.Validation("the linked user must have the FAMILY role")
	}

	elderly, err := s.elderlyRepo.Get(ctx, req.ElderlyID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, req.UserID, req.ElderlyID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("this user is already linked to the elderly person")
	}

	member := &model.FamilyMember{
		ID:             uuid.New(),
		OrganizationID: user.OrganizationID,
		UserID:         req.UserID,
		ElderlyID:      req.ElderlyID,
		Relationship:   req.Relationship,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, member.OrganizationID, actor.UserID,
		model.AuditActionCreateFamilyMember, model.AuditEntityFamilyMember, member.ID,
		fmt.Sprintf("Family member linked to elderly: %s", elderly.Name)); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.FamilyMember, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, actor model.Actor) ([]*model.FamilyMember, error) {
	return s.repo.List(ctx, actor.OrganizationID)
}

func (s *Service) ListByElderly(ctx context.Context, elderlyID uuid.UUID) ([]*model.FamilyMember, error) {
	return s.repo.ListByElderly(ctx, elderlyID)
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.FamilyMember, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	member, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.RecordEvent(ctx, member.OrganizationID, actor.UserID,
		model.AuditActionDeleteFamilyMember, model.AuditEntityFamilyMember, member.ID,
		"Family member link removed")
}
