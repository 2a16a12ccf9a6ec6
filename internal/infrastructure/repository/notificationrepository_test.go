package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaders-st/helpdesk/internal/domain/notification"
)

func createTestNotification(t *testing.T, userID uint) *notification.Notification {
	t.Helper()
	n, err := notification.NewNotification(userID, 1, "TCK-00001", "New ticket TCK-00001 created")
	require.NoError(t, err)
	return n
}

func TestNotificationRepository_CreateAndList(t *testing.T) {
	database := setupTestDB(t)
	repo := NewNotificationRepository(database)
	ctx := context.Background()

	n1 := createTestNotification(t, 5)
	require.NoError(t, repo.Create(ctx, n1))
	assert.NotZero(t, n1.ID())

	n2 := createTestNotification(t, 5)
	require.NoError(t, repo.Create(ctx, n2))

	other := createTestNotification(t, 9)
	require.NoError(t, repo.Create(ctx, other))

	unread, err := repo.ListUnreadByUserID(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	count, err := repo.CountUnread(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	database := setupTestDB(t)
	repo := NewNotificationRepository(database)
	ctx := context.Background()

	n := createTestNotification(t, 7)
	require.NoError(t, repo.Create(ctx, n))

	require.NoError(t, repo.MarkAsRead(ctx, n.ID(), 7))

	count, err := repo.CountUnread(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Wrong owner cannot mark someone else's notification.
	n2 := createTestNotification(t, 7)
	require.NoError(t, repo.Create(ctx, n2))
	assert.Error(t, repo.MarkAsRead(ctx, n2.ID(), 8))
}

func TestNotificationRepository_MarkAllAsRead(t *testing.T) {
	database := setupTestDB(t)
	repo := NewNotificationRepository(database)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, createTestNotification(t, 11)))
	}

	require.NoError(t, repo.MarkAllAsRead(ctx, 11))

	count, err := repo.CountUnread(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
