package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/seniorcare/admin-api/internal/model"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
)

type JWTService interface {
	GenerateTokenPair(user *model.User) (*model.TokenPair, error)
	ValidateAccessToken(token string) (*model.TokenClaims, error)
	ValidateRefreshToken(token string) (*model.TokenClaims, error)
}

type jwtClaims struct {
	UserID         string     `json:"user_id"`
	OrganizationID string     `json:"organization_id"`
	Email          string     `json:"email"`
	Role           model.Role `json:"role"`
	TokenType      string     `json:"token_type"`
	jwt.RegisteredClaims
}

type jwtService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTService(secret string, accessTTL, refreshTTL time.Duration) JWTService {
	return &jwtService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *jwtService) GenerateTokenPair(user *model.User) (*model.TokenPair, error) {
	access, err := s.sign(user, "access", s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.sign(user, "refresh", s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *jwtService) sign(user *model.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		UserID:         user.ID.String(),
		OrganizationID: user.OrganizationID.String(),
		Email:          user.Email,
		Role:           user.Role,
		TokenType:      tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *jwtService) ValidateAccessToken(token string) (*model.TokenClaims, error) {
	return s.validate(token, "access")
}

func (s *jwtService) ValidateRefreshToken(token string) (*model.TokenClaims, error) {
	return s.validate(token, "refresh")
}

func (s *jwtService) validate(tokenString, wantType string) (*model.TokenClaims, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}
	if claims.TokenType != wantType {
		return nil, apperrors.Unauthorized("invalid token type")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token subject")
	}
	orgID, err := uuid.Parse(claims.OrganizationID)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token organization")
	}

	return &model.TokenClaims{
		UserID:         userID,
		OrganizationID: orgID,
		Email:          claims.Email,
		Role:           claims.Role,
	}, nil
}
