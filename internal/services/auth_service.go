package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub-api/config"
	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/internal/repository"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
	"github.com/tutorhub/tutorhub-api/pkg/jwt"
	"github.com/tutorhub/tutorhub-api/pkg/logger"
	"github.com/tutorhub/tutorhub-api/pkg/metrics"
)

// AuthService verifies credentials against the mock SSO store and issues
// session tokens. The selected role must match the role map's answer for the
// user.
type AuthService struct {
	directoryRepo repository.DirectoryRepositoryInterface
	tokenManager  *jwt.TokenManager
	config        *config.Config
}

// NewAuthService creates a new auth service instance
func NewAuthService(directoryRepo repository.DirectoryRepositoryInterface, cfg *config.Config) *AuthService {
	return &AuthService{
		directoryRepo: directoryRepo,
		tokenManager:  jwt.NewTokenManager(cfg.Session.JWTSecret, "tutorhub-api", cfg.Session.TTLHours),
		config:        cfg,
	}
}

// Login checks username/password against the sign-on store and returns a
// signed session token plus the user's profile summary. Bad credentials and
// unknown users are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.UserInfo, error) {
	cred, err := s.directoryRepo.GetCredentialByUsername(ctx, req.Username)
	if err != nil {
		metrics.RecordLoginAttempt("bad_credentials")
		logger.Info("Login failed: unknown username", zap.String("username", req.Username))
		return "", nil, apperrors.ErrUnauthorized
	}

	if !jwt.TimingSafeCompare(cred.Password, req.Password) {
		metrics.RecordLoginAttempt("bad_credentials")
		logger.Info("Login failed: wrong password", zap.String("username", req.Username))
		return "", nil, apperrors.ErrUnauthorized
	}

	if cred.Role != req.Role {
		metrics.RecordLoginAttempt("role_mismatch")
		logger.Info("Login failed: role mismatch",
			zap.String("username", req.Username),
			zap.String("requested_role", req.Role),
			zap.String("mapped_role", cred.Role))
		return "", nil, apperrors.AccessDeniedError("account is not registered for this role")
	}

	info := &models.UserInfo{
		UserID:      cred.ID,
		Username:    cred.Username,
		Email:       cred.Email,
		DisplayName: cred.Username,
		Role:        cred.Role,
	}
	if profile, err := s.directoryRepo.GetProfileByID(ctx, cred.ID); err == nil {
		info.DisplayName = profile.Name
		info.Faculty = profile.Faculty
		info.Department = profile.Department
	}

	token, err := s.tokenManager.GenerateToken(cred.ID, cred.Username, cred.Email, info.DisplayName, cred.Role)
	if err != nil {
		metrics.RecordLoginAttempt("error")
		logger.Error("Failed to sign session token", zap.Error(err))
		return "", nil, apperrors.InternalError("failed to create session")
	}

	metrics.RecordLoginAttempt("success")
	logger.Info("Login succeeded",
		zap.String("user_id", cred.ID),
		zap.String("role", cred.Role))
	return token, info, nil
}

// Me returns the profile summary for an authenticated session
func (s *AuthService) Me(ctx context.Context, session *models.UserSession) (*models.UserInfo, error) {
	info := &models.UserInfo{
		UserID:      session.UserID,
		Username:    session.Username,
		Email:       session.Email,
		DisplayName: session.Name,
		Role:        session.Role,
	}
	if profile, err := s.directoryRepo.GetProfileByID(ctx, session.UserID); err == nil {
		info.DisplayName = profile.Name
		info.Faculty = profile.Faculty
		info.Department = profile.Department
	}
	return info, nil
}

// GetSessionTTL returns the cookie max-age in seconds
func (s *AuthService) GetSessionTTL() int {
	return s.config.Session.TTLHours * 3600
}

// GetCookieDomain returns the cookie domain
func (s *AuthService) GetCookieDomain() string {
	return s.config.Session.CookieDomain
}

// GetCookieSecure returns whether the cookie requires HTTPS
func (s *AuthService) GetCookieSecure() bool {
	return s.config.Session.CookieSecure
}

// GetTokenManager exposes the token manager for the session middleware
func (s *AuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}
