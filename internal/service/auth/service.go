package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
	"github.com/seniorcare/admin-api/internal/service/audit"
	"github.com/seniorcare/admin-api/internal/service/user"
	"github.com/seniorcare/admin-api/pkg/auth"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
	"github.com/seniorcare/admin-api/pkg/security"
)

type Service struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	jwt      auth.JWTService
	hasher   security.PasswordHasher
	auditor  *audit.Service
}

func NewService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, jwt auth.JWTService, hasher security.PasswordHasher, auditor *audit.Service) *Service {
	return &Service{userRepo: userRepo, orgRepo: orgRepo, jwt: jwt, hasher: hasher, auditor: auditor}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error) {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := s.hasher.Compare(u.Password, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	return s.jwt.GenerateTokenPair(u)
}

// Register creates an account and returns a token pair for it.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenPair, error) {
	if !req.Role.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown role: %s", req.Role))
	}
	if err := user.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	if _, err := s.orgRepo.Get(ctx, req.OrganizationID); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, apperrors.Conflict(fmt.Sprintf("a user with email %s already exists", req.Email))
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	u := &model.User{
		ID:             uuid.New(),
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Email:          req.Email,
		Password:       hashed,
		Role:           req.Role,
		CreatedAt:      time.Now(),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	if err := s.auditor.RecordEvent(ctx, u.OrganizationID, u.ID,
		model.AuditActionCreateUser, model.AuditEntityUser, u.ID,
		fmt.Sprintf("User registered: %s", u.Email)); err != nil {
		return nil, err
	}

	return s.jwt.GenerateTokenPair(u)
}

// Refresh exchanges a valid refresh token for a fresh pair. The user is
// reloaded so a role change or removal invalidates old refresh tokens.
func (s *Service) Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	u, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized("account no longer exists")
		}
		return nil, err
	}

	return s.jwt.GenerateTokenPair(u)
}
