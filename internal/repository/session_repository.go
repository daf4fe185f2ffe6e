package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/pkg/metrics"
)

// SessionRepositoryInterface defines the interface for tutor session data
// access operations.
type SessionRepositoryInterface interface {
	List(ctx context.Context) ([]*models.TutorSession, error)
	GetByID(ctx context.Context, sessionID string) (*models.TutorSession, error)
	Create(ctx context.Context, ts *models.TutorSession) (*models.TutorSession, error)
	Update(ctx context.Context, ts *models.TutorSession) error
}

// SessionRepository handles tutor session access. Mutations are serialized
// for the same reason as bookings: id assignment reads the whole collection.
type SessionRepository struct {
	ds SessionDataSource
	mu sync.Mutex
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(ds SessionDataSource) SessionRepositoryInterface {
	return &SessionRepository{ds: ds}
}

// List retrieves all tutor sessions
func (r *SessionRepository) List(ctx context.Context) ([]*models.TutorSession, error) {
	return r.ds.ListSessions(ctx)
}

// GetByID retrieves a single session
func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*models.TutorSession, error) {
	return r.ds.GetSession(ctx, sessionID)
}

// Create assigns a session id and stores the record
func (r *SessionRepository) Create(ctx context.Context, ts *models.TutorSession) (*models.TutorSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.ds.ListSessions(ctx)
	if err != nil {
		metrics.RecordSessionCreated("error")
		return nil, err
	}

	ts.SessionID = nextSessionID(sessions)
	if err := r.ds.InsertSession(ctx, ts); err != nil {
		metrics.RecordSessionCreated("error")
		return nil, err
	}

	metrics.RecordSessionCreated("success")
	return ts, nil
}

// Update persists session field changes
func (r *SessionRepository) Update(ctx context.Context, ts *models.TutorSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ds.UpdateSession(ctx, ts)
}

// nextSessionID produces sequential ids of the form TS001, TS002, ...
func nextSessionID(sessions []*models.TutorSession) string {
	max := 0
	for _, ts := range sessions {
		var n int
		if _, err := fmt.Sscanf(ts.SessionID, "TS%d", &n); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("TS%03d", max+1)
}
