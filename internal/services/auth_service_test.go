package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhub/tutorhub-api/config"
	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/internal/services"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
)

func newAuthService() (*services.AuthService, *MockDirectoryRepository) {
	mockDirectoryRepo := new(MockDirectoryRepository)
	cfg := &config.Config{
		Session: config.SessionConfig{
			JWTSecret: "test-secret",
			TTLHours:  24,
		},
	}
	return services.NewAuthService(mockDirectoryRepo, cfg), mockDirectoryRepo
}

func TestAuthService_Login(t *testing.T) {
	service, mockDirectoryRepo := newAuthService()
	ctx := context.Background()

	cred := &models.Credential{
		ID:       "tutor1",
		Username: "chen",
		Password: "s3cret",
		Email:    "chen@example.edu",
		Role:     models.RoleTutor,
	}
	profile := &models.Profile{
		ID:         "tutor1",
		Name:       "Dr. Chen",
		Faculty:    "Science",
		Department: "Mathematics",
	}

	mockDirectoryRepo.On("GetCredentialByUsername", ctx, "chen").Return(cred, nil).Once()
	mockDirectoryRepo.On("GetProfileByID", ctx, "tutor1").Return(profile, nil).Once()

	token, info, err := service.Login(ctx, &models.LoginRequest{
		Username: "chen",
		Password: "s3cret",
		Role:     models.RoleTutor,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "tutor1", info.UserID)
	assert.Equal(t, "Dr. Chen", info.DisplayName)
	assert.Equal(t, "Mathematics", info.Department)

	// the issued token round-trips through the session validator
	claims, err := service.GetTokenManager().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "tutor1", claims.UserID)
	assert.Equal(t, models.RoleTutor, claims.Role)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	service, mockDirectoryRepo := newAuthService()
	ctx := context.Background()

	mockDirectoryRepo.On("GetCredentialByUsername", ctx, "ghost").
		Return(nil, apperrors.NotFoundError("account")).Once()

	_, _, err := service.Login(ctx, &models.LoginRequest{
		Username: "ghost",
		Password: "whatever",
		Role:     models.RoleStudent,
	})
	// unknown users and wrong passwords are indistinguishable
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service, mockDirectoryRepo := newAuthService()
	ctx := context.Background()

	cred := &models.Credential{ID: "tutor1", Username: "chen", Password: "s3cret", Role: models.RoleTutor}
	mockDirectoryRepo.On("GetCredentialByUsername", ctx, "chen").Return(cred, nil).Once()

	_, _, err := service.Login(ctx, &models.LoginRequest{
		Username: "chen",
		Password: "guess",
		Role:     models.RoleTutor,
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Login_RoleMismatch(t *testing.T) {
	service, mockDirectoryRepo := newAuthService()
	ctx := context.Background()

	cred := &models.Credential{ID: "tutor1", Username: "chen", Password: "s3cret", Role: models.RoleTutor}
	mockDirectoryRepo.On("GetCredentialByUsername", ctx, "chen").Return(cred, nil).Once()

	_, _, err := service.Login(ctx, &models.LoginRequest{
		Username: "chen",
		Password: "s3cret",
		Role:     models.RoleStudent,
	})
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}

func TestAuthService_Me(t *testing.T) {
	service, mockDirectoryRepo := newAuthService()
	ctx := context.Background()

	session := &models.UserSession{
		UserID:   "student1",
		Username: "alice",
		Email:    "alice@example.edu",
		Name:     "alice",
		Role:     models.RoleStudent,
	}
	mockDirectoryRepo.On("GetProfileByID", ctx, "student1").
		Return(&models.Profile{ID: "student1", Name: "Alice Park", Faculty: "Engineering"}, nil).Once()

	info, err := service.Me(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "Alice Park", info.DisplayName)
	assert.Equal(t, "Engineering", info.Faculty)
}

func TestAuthService_SessionTTL(t *testing.T) {
	service, _ := newAuthService()
	assert.Equal(t, 24*3600, service.GetSessionTTL())
}
