package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhub/tutorhub-api/internal/database/filestore"
	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/internal/repository"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
)

func newNotificationRepo(t *testing.T) repository.NotificationRepositoryInterface {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	return repository.NewNotificationRepository(repository.NewFileNotificationDataSource(store))
}

func notifFor(recipientID string, recipientType models.RecipientType, title string) *models.Notification {
	return &models.Notification{
		RecipientID:   recipientID,
		RecipientType: recipientType,
		SenderID:      "tutor1",
		Title:         title,
		Message:       "hello",
		Type:          models.NotificationEvent,
		EventType:     models.EventScheduleCreate,
	}
}

func TestNotificationRepository_Create(t *testing.T) {
	repo := newNotificationRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, notifFor("student1", models.RecipientStudent, "first"))
	require.NoError(t, err)
	assert.Regexp(t, `^notif_[0-9a-f-]{8}$`, created.ID)
	assert.False(t, created.IsRead)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestNotificationRepository_Create_PerRecipientTimestampsStrictlyIncrease(t *testing.T) {
	repo := newNotificationRepo(t)
	ctx := context.Background()

	// back-to-back creates can tie on wall-clock time at coarse resolution;
	// the store must still hand out strictly increasing stamps per recipient
	var prev *models.Notification
	for i := 0; i < 10; i++ {
		created, err := repo.Create(ctx, notifFor("student1", models.RecipientStudent, "burst"))
		require.NoError(t, err)
		if prev != nil {
			assert.True(t, created.CreatedAt.After(prev.CreatedAt),
				"notification %d stamped %v, not after %v", i, created.CreatedAt, prev.CreatedAt)
		}
		prev = created
	}
}

func TestNotificationRepository_ListForRecipient(t *testing.T) {
	repo := newNotificationRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, notifFor("student1", models.RecipientStudent, "first"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, notifFor("student2", models.RecipientStudent, "other inbox"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, notifFor("student1", models.RecipientTutor, "wrong role"))
	require.NoError(t, err)

	owned, err := repo.ListForRecipient(ctx, "student1", models.RecipientStudent)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "first", owned[0].Title)
}

func TestNotificationRepository_UnreadCount(t *testing.T) {
	repo := newNotificationRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, notifFor("student1", models.RecipientStudent, "a"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, notifFor("student1", models.RecipientStudent, "b"))
	require.NoError(t, err)

	count, err := repo.UnreadCount(ctx, "student1", models.RecipientStudent)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = repo.MarkRead(ctx, first.ID, "student1")
	require.NoError(t, err)

	count, err = repo.UnreadCount(ctx, "student1", models.RecipientStudent)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNotificationRepository_MarkRead_Idempotent(t *testing.T) {
	repo := newNotificationRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, notifFor("student1", models.RecipientStudent, "a"))
	require.NoError(t, err)

	read, err := repo.MarkRead(ctx, created.ID, "student1")
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	again, err := repo.MarkRead(ctx, created.ID, "student1")
	require.NoError(t, err)
	assert.True(t, again.IsRead)
}

func TestNotificationRepository_MarkRead_NotOwned(t *testing.T) {
	repo := newNotificationRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, notifFor("student1", models.RecipientStudent, "a"))
	require.NoError(t, err)

	// a non-recipient cannot tell whether the notification exists
	_, err = repo.MarkRead(ctx, created.ID, "student2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	repo := newNotificationRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, notifFor("student1", models.RecipientStudent, "a"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, notifFor("student1", models.RecipientStudent, "b"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, notifFor("student2", models.RecipientStudent, "untouched"))
	require.NoError(t, err)

	changed, err := repo.MarkAllRead(ctx, "student1", models.RecipientStudent)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	// already-read records are not counted twice
	changed, err = repo.MarkAllRead(ctx, "student1", models.RecipientStudent)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)

	count, err := repo.UnreadCount(ctx, "student2", models.RecipientStudent)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNotificationRepository_Delete(t *testing.T) {
	repo := newNotificationRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, notifFor("student1", models.RecipientStudent, "a"))
	require.NoError(t, err)

	// only the recipient may delete
	err = repo.Delete(ctx, created.ID, "student2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = repo.Delete(ctx, created.ID, "student1")
	require.NoError(t, err)

	owned, err := repo.ListForRecipient(ctx, "student1", models.RecipientStudent)
	require.NoError(t, err)
	assert.Empty(t, owned)
}
