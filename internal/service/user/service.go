package user

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
	"github.com/seniorcare/admin-api/internal/service/audit"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
	"github.com/seniorcare/admin-api/pkg/security"
)

type Service struct {
	repo    repository.UserRepository
	orgRepo repository.OrganizationRepository
	hasher  security.PasswordHasher
	auditor *audit.Service
}

func NewService(repo repository.UserRepository, orgRepo repository.OrganizationRepository, hasher security.PasswordHasher, auditor *audit.Service) *Service {
	return &Service{repo: repo, orgRepo: orgRepo, hasher: hasher, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateUserRequest) (*model.User, error) {
	if !req.Role.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown role: %s", req.Role))
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	if _, err := s.orgRepo.Get(ctx, req.OrganizationID); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, apperrors.Conflict(fmt.Sprintf("a user with email %s already exists", req.Email))
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		ID:             uuid.New(),
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Email:          req.Email,
		Password:       hashed,
		Role:           req.Role,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, user.OrganizationID, actor.UserID,
		model.AuditActionCreateUser, model.AuditEntityUser, user.ID,
		fmt.Sprintf("User created: %s", user.Email)); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, actor model.Actor) ([]*model.User, error) {
	return s.repo.List(ctx, actor.OrganizationID)
}

func (s *Service) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != user.Email {
		if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
			return nil, apperrors.Conflict(fmt.Sprintf("a user with email %s already exists", req.Email))
		} else if err != nil && !apperrors.IsNotFound(err) {
			return nil, err
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Role = req.Role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, user.OrganizationID, actor.UserID,
		model.AuditActionUpdateUser, model.AuditEntityUser, user.ID,
		fmt.Sprintf("User updated: %s", user.Email)); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, actor model.Actor, id uuid.UUID, req *model.ChangePasswordRequest) error {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(user.Password, req.CurrentPassword); err != nil {
		return apperrors.Validation("current password is incorrect")
	}
	if err := ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return apperrors.Internal(err)
	}
	if err := s.repo.UpdatePassword(ctx, id, hashed); err != nil {
		return err
	}

	return s.auditor.RecordEvent(ctx, user.OrganizationID, actor.UserID,
		model.AuditActionChangePassword, model.AuditEntityUser, user.ID,
		"User password changed")
}

func (s *Service) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.RecordEvent(ctx, user.OrganizationID, actor.UserID,
		model.AuditActionDeleteUser, model.AuditEntityUser, user.ID,
		fmt.Sprintf("User removed: %s", user.Email))
}

// ValidatePassword enforces the minimum credential policy: at least eight
// characters containing both letters and digits.
func ValidatePassword(password string) error {
	if len(password) < security.MinPasswordLen {
		return apperrors.Validation("password must be at least 8 characters long")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.Validation("password must contain letters and digits")
	}
	return nil
}
