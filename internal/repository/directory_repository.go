package repository

import (
	"context"

	"github.com/tutorhub/tutorhub-api/internal/cache"
	"github.com/tutorhub/tutorhub-api/internal/models"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
)

// DirectoryRepositoryInterface defines the interface for directory data
// access operations.
type DirectoryRepositoryInterface interface {
	Profiles(ctx context.Context) ([]*models.Profile, error)
	ProfilesByRole(ctx context.Context, role string) ([]*models.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
	GetCredentialByUsername(ctx context.Context, username string) (*models.Credential, error)
	InvalidateCache()
}

// DirectoryRepository handles user directory access through the cache
type DirectoryRepository struct {
	directoryCache cache.DirectoryCacheInterface
}

// NewDirectoryRepository creates a new directory repository
func NewDirectoryRepository(directoryCache cache.DirectoryCacheInterface) DirectoryRepositoryInterface {
	return &DirectoryRepository{directoryCache: directoryCache}
}

// Profiles retrieves all user profiles
func (r *DirectoryRepository) Profiles(ctx context.Context) ([]*models.Profile, error) {
	return r.directoryCache.Profiles(ctx)
}

// ProfilesByRole retrieves profiles filtered by school role
func (r *DirectoryRepository) ProfilesByRole(ctx context.Context, role string) ([]*models.Profile, error) {
	profiles, err := r.directoryCache.Profiles(ctx)
	if err != nil {
		return nil, err
	}

	filtered := []*models.Profile{}
	for _, p := range profiles {
		if p.Role == role {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// GetProfileByID retrieves a single profile
func (r *DirectoryRepository) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	profiles, err := r.directoryCache.Profiles(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.NotFoundError("user")
}

// GetCredentialByUsername retrieves a sign-on account by username
func (r *DirectoryRepository) GetCredentialByUsername(ctx context.Context, username string) (*models.Credential, error) {
	accounts, err := r.directoryCache.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, apperrors.NotFoundError("account")
}

// InvalidateCache forces cache invalidation
func (r *DirectoryRepository) InvalidateCache() {
	r.directoryCache.Clear()
}
