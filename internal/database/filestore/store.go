// Package filestore implements the flat-file storage backend. Each store is a
// single JSON document; every mutation rewrites the whole document through a
// temp file + rename so readers never observe a torn write.
package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tutorhub/tutorhub-api/pkg/logger"
	"github.com/tutorhub/tutorhub-api/pkg/metrics"
	"go.uber.org/zap"
)

const (
	scheduleFile     = "schedule.json"
	bookingsFile     = "bookings.json"
	sessionsFile     = "tutor_sessions.json"
	notificationFile = "notifications.json"
	datacoreFile     = "datacore.json"
	ssoFile          = "sso.json"
)

// Store provides document-per-collection JSON persistence rooted at a data
// directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory the store is rooted at
func (s *Store) Dir() string {
	return s.dir
}

// Ping verifies the data directory is still reachable and writable.
// Used by the healthcheck.
func (s *Store) Ping() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path %s is not a directory", s.dir)
	}
	return nil
}

// load reads and decodes one document. A missing file decodes the zero value
// so first-run works without seed files.
func (s *Store) load(name string, v any) error {
	start := time.Now()
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			metrics.StorageOpTotal.WithLabelValues(name, "read", "empty").Inc()
			return nil
		}
		s.observe(name, "read", "error", start)
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.observe(name, "read", "error", start)
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}

	s.observe(name, "read", "success", start)
	return nil
}

// save encodes v and atomically replaces the document: the whole file is
// rewritten to a temp file first and renamed over the old one, so a crash
// mid-write leaves the previous state intact.
func (s *Store) save(name string, v any) error {
	start := time.Now()
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.observe(name, "write", "error", start)
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.observe(name, "write", "error", start)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		s.observe(name, "write", "error", start)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	s.observe(name, "write", "success", start)
	return nil
}

func (s *Store) observe(name, op, status string, start time.Time) {
	duration := metrics.MeasureDuration(start)
	metrics.StorageOpDuration.WithLabelValues(name, op, status).Observe(duration)
	metrics.StorageOpTotal.WithLabelValues(name, op, status).Inc()
	if status == "error" {
		logger.Warn("file store operation failed",
			zap.String("store", name),
			zap.String("operation", op))
	}
}
