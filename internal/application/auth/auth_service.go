// Package auth implements the admin login/logout flow for the dashboard.
package auth

import (
	"context"
	"errors"

	"github.com/eujim/backend/internal/domain/identity"
	"github.com/eujim/backend/internal/domain/shared"
	infraauth "github.com/eujim/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// LoginRequest carries the admin credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
	Username    string `json:"username"`
}

// ErrInvalidCredentials is returned for any credential failure. The cause
// (unknown user, wrong password, locked or deactivated account) is logged
// but never exposed to the caller.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// Service handles admin authentication
type Service struct {
	users     identity.AdminUserRepository
	jwt       *infraauth.JWTService
	blacklist infraauth.TokenBlacklist
	logger    *zap.Logger
}

// NewService creates a new auth Service
func NewService(users identity.AdminUserRepository, jwt *infraauth.JWTService, blacklist infraauth.TokenBlacklist, logger *zap.Logger) *Service {
	return &Service{
		users:     users,
		jwt:       jwt,
		blacklist: blacklist,
		logger:    logger,
	}
}

// Login verifies credentials and issues an access token
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("login attempt for unknown user", zap.String("username", req.Username))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		s.logger.Warn("login attempt for deactivated account", zap.String("username", user.Username))
		return nil, ErrInvalidCredentials
	}
	if user.IsLocked() {
		s.logger.Warn("login attempt for locked account", zap.String("username", user.Username))
		return nil, ErrInvalidCredentials
	}

	if !user.VerifyPassword(req.Password) {
		user.RecordFailedAttempt()
		if err := s.users.Save(ctx, user); err != nil {
			s.logger.Error("failed to record failed login attempt", zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}

	user.RecordLogin()
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error("failed to record login", zap.Error(err))
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin logged in", zap.String("username", user.Username))

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt.Unix(),
		Username:    user.Username,
	}, nil
}

// Logout revokes the presented token for its remaining lifetime
func (s *Service) Logout(ctx context.Context, claims *infraauth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		return err
	}
	s.logger.Info("admin logged out", zap.String("username", claims.Username))
	return nil
}
