package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	tests := []struct {
		name     string
		userID   uint
		ticketID uint
		code     string
		message  string
		wantErr  bool
	}{
		{"valid", 1, 10, "TCK-00010", "New ticket created: TCK-00010", false},
		{"missing user", 0, 10, "TCK-00010", "msg", true},
		{"missing ticket", 1, 0, "TCK-00010", "msg", true},
		{"missing message", 1, 10, "TCK-00010", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewNotification(tt.userID, tt.ticketID, tt.code, tt.message)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.False(t, n.IsRead())
			assert.Equal(t, tt.code, n.TicketCode())
			assert.Zero(t, n.ID())
		})
	}
}

func TestNotification_MarkRead(t *testing.T) {
	n, err := NewNotification(1, 2, "TCK-00002", "msg")
	require.NoError(t, err)

	n.MarkRead()
	assert.True(t, n.IsRead())
}

func TestReconstructNotification(t *testing.T) {
	n, err := ReconstructNotification(5, 1, 2, "TCK-00002", "msg", true, time.Now())
	require.NoError(t, err)
	assert.Equal(t, uint(5), n.ID())
	assert.True(t, n.IsRead())

	_, err = ReconstructNotification(0, 1, 2, "TCK-00002", "msg", false, time.Now())
	assert.Error(t, err)
}
