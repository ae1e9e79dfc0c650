package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/kingrain94/tenant-items-api/internal/auth"
	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/repository"
	"github.com/kingrain94/tenant-items-api/pkg/logger"
)

// TokenIssuer mints and checks tenant-bound tokens.
type TokenIssuer interface {
	IssuePair(schema string, userID int64) (auth.TokenPair, error)
	IssueAccess(schema string, userID int64) (string, error)
	Validate(tokenString, schema, tokenType string) (jwt.MapClaims, error)
}

// LoginResult is what a successful login returns to the caller.
type LoginResult struct {
	Tokens auth.TokenPair
	User   domain.User
}

type AuthService struct {
	repo     repository.Repository
	tokens   TokenIssuer
	verifier auth.PasswordVerifier
	logger   *logger.Logger
	now      func() time.Time
}

func NewAuthService(repo repository.Repository, tokens TokenIssuer, verifier auth.PasswordVerifier, logger *logger.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		tokens:   tokens,
		verifier: verifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Login checks username and password against the request tenant's users only.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	schema := requestSchema(ctx)
	if schema == "" || username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	var user *domain.User
	err := s.repo.WithTenantScope(ctx, schema, func(ctx context.Context) error {
		var err error
		user, err = s.repo.User().GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}

		if !user.IsActive {
			return ErrInvalidCredentials
		}
		if err := s.verifier.Compare(user.Password, password); err != nil {
			if errors.Is(err, auth.ErrPasswordMismatch) {
				return ErrInvalidCredentials
			}
			s.logger.Warn("Unreadable password hash", zap.String("schema", schema), zap.Int64("user_id", user.ID), zap.Error(err))
			return ErrInvalidCredentials
		}

		now := s.now().UTC()
		user.LastLogin = &now
		return s.repo.User().TouchLastLogin(ctx, user.ID, now)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	tokens, err := s.tokens.IssuePair(schema, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Tokens: tokens, User: *user}, nil
}

// Refresh exchanges a refresh token of the request's tenant for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrMissingRefresh
	}

	schema := requestSchema(ctx)
	claims, err := s.tokens.Validate(refreshToken, schema, auth.TokenTypeRefresh)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return "", ErrUnauthorized
	}

	err = s.repo.WithTenantScope(repository.ReadOnly(ctx), schema, func(ctx context.Context) error {
		user, err := s.repo.User().GetByID(ctx, int64(userID))
		if err != nil {
			return err
		}
		if !user.IsActive {
			return ErrUnauthorized
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, ErrUnauthorized) {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	return s.tokens.IssueAccess(schema, int64(userID))
}

// ListUsers returns the users of the request's tenant.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := s.repo.WithTenantScope(repository.ReadOnly(ctx), requestSchema(ctx), func(ctx context.Context) error {
		var err error
		users, err = s.repo.User().List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
