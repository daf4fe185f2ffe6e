package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/pkg/logger"
	"github.com/tutorhub/tutorhub-api/pkg/metrics"
)

// DirectorySource defines the interface for directory data fetching.
// Declared here to avoid importing the repository package.
type DirectorySource interface {
	ListProfiles(ctx context.Context) ([]*models.Profile, error)
	ListCredentials(ctx context.Context) ([]*models.Credential, error)
}

const (
	profilesCacheKey    = "directory:profiles"
	credentialsCacheKey = "directory:credentials"
	cacheCleanupPeriod  = time.Hour
)

// DirectoryCacheInterface defines the interface for cached directory reads
type DirectoryCacheInterface interface {
	Profiles(ctx context.Context) ([]*models.Profile, error)
	Credentials(ctx context.Context) ([]*models.Credential, error)
	Clear()
}

// DirectoryCache holds the user directory in memory. Directory documents are
// seed data that changes rarely, so a plain TTL with fetch-on-miss is enough.
type DirectoryCache struct {
	cache      *gocache.Cache
	dataSource DirectorySource
	ttl        time.Duration
}

// NewDirectoryCache creates a new directory cache
func NewDirectoryCache(dataSource DirectorySource, ttlSeconds int) *DirectoryCache {
	ttl := time.Duration(ttlSeconds) * time.Second

	return &DirectoryCache{
		cache:      gocache.New(ttl, cacheCleanupPeriod),
		dataSource: dataSource,
		ttl:        ttl,
	}
}

// Profiles retrieves user profiles from cache, fetching on miss
func (dc *DirectoryCache) Profiles(ctx context.Context) ([]*models.Profile, error) {
	if data, found := dc.cache.Get(profilesCacheKey); found {
		metrics.CacheHits.WithLabelValues("directory_profiles").Inc()
		profiles, ok := data.([]*models.Profile)
		if !ok {
			logger.Error("Invalid profiles cache data type")
			dc.cache.Delete(profilesCacheKey)
			return nil, fmt.Errorf("invalid cache data type")
		}
		return profiles, nil
	}

	metrics.CacheMisses.WithLabelValues("directory_profiles").Inc()
	logger.Debug("Profiles cache miss, fetching from store")

	profiles, err := dc.dataSource.ListProfiles(ctx)
	if err != nil {
		logger.Error("Failed to refresh profiles cache", zap.Error(err))
		return nil, err
	}

	dc.cache.Set(profilesCacheKey, profiles, dc.ttl)
	return profiles, nil
}

// Credentials retrieves sign-on accounts from cache, fetching on miss
func (dc *DirectoryCache) Credentials(ctx context.Context) ([]*models.Credential, error) {
	if data, found := dc.cache.Get(credentialsCacheKey); found {
		metrics.CacheHits.WithLabelValues("directory_credentials").Inc()
		accounts, ok := data.([]*models.Credential)
		if !ok {
			logger.Error("Invalid credentials cache data type")
			dc.cache.Delete(credentialsCacheKey)
			return nil, fmt.Errorf("invalid cache data type")
		}
		return accounts, nil
	}

	metrics.CacheMisses.WithLabelValues("directory_credentials").Inc()
	logger.Debug("Credentials cache miss, fetching from store")

	accounts, err := dc.dataSource.ListCredentials(ctx)
	if err != nil {
		logger.Error("Failed to refresh credentials cache", zap.Error(err))
		return nil, err
	}

	dc.cache.Set(credentialsCacheKey, accounts, dc.ttl)
	return accounts, nil
}

// Clear drops all cached directory data
func (dc *DirectoryCache) Clear() {
	dc.cache.Flush()
	logger.Info("Directory cache cleared")
}

// Ensure DirectoryCache implements DirectoryCacheInterface
var _ DirectoryCacheInterface = (*DirectoryCache)(nil)
