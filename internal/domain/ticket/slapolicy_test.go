package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/leaders-st/helpdesk/internal/domain/ticket/valueobjects"
)

func TestDefaultSLAPolicy_Deadlines(t *testing.T) {
	p := DefaultSLAPolicy()

	assert.Equal(t, 24*time.Hour, p.Deadline(vo.PriorityHigh))
	assert.Equal(t, 48*time.Hour, p.Deadline(vo.PriorityMedium))
	assert.Equal(t, 72*time.Hour, p.Deadline(vo.PriorityLow))

	// Unknown priorities fall back to the Low deadline.
	assert.Equal(t, 72*time.Hour, p.Deadline(vo.Priority("bogus")))
}

func TestSLAPolicy_WarningWindow(t *testing.T) {
	p := DefaultSLAPolicy()

	// 20% of 24h.
	assert.Equal(t, 4*time.Hour+48*time.Minute, p.WarningWindow(vo.PriorityHigh))
}

func TestSLAPolicy_InWarningWindow(t *testing.T) {
	p := DefaultSLAPolicy()

	tests := []struct {
		name     string
		priority vo.Priority
		age      time.Duration
		want     bool
	}{
		{"high with 4h remaining is inside", vo.PriorityHigh, 20 * time.Hour, true},
		{"high with 10h remaining is outside", vo.PriorityHigh, 14 * time.Hour, false},
		{"high already overdue is not a warning", vo.PriorityHigh, 25 * time.Hour, false},
		{"high exactly at deadline is not a warning", vo.PriorityHigh, 24 * time.Hour, false},
		{"medium with 5h remaining is inside", vo.PriorityMedium, 43 * time.Hour, true},
		{"low with 70h elapsed is inside", vo.PriorityLow, 70 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.InWarningWindow(tt.priority, tt.age))
		})
	}
}

func TestSLAPolicy_IsOverdue(t *testing.T) {
	p := DefaultSLAPolicy()

	assert.True(t, p.IsOverdue(vo.PriorityHigh, 30*time.Hour))
	assert.False(t, p.IsOverdue(vo.PriorityHigh, 24*time.Hour))
	assert.False(t, p.IsOverdue(vo.PriorityMedium, 30*time.Hour))
	assert.True(t, p.IsOverdue(vo.PriorityLow, 73*time.Hour))
}

func TestNewSLAPolicy(t *testing.T) {
	p, err := NewSLAPolicy(8*time.Hour, 0, 96*time.Hour, 0.25)
	require.NoError(t, err)

	assert.Equal(t, 8*time.Hour, p.Deadline(vo.PriorityHigh))
	assert.Equal(t, 48*time.Hour, p.Deadline(vo.PriorityMedium), "zero keeps the default")
	assert.Equal(t, 96*time.Hour, p.Deadline(vo.PriorityLow))
	assert.Equal(t, 2*time.Hour, p.WarningWindow(vo.PriorityHigh))

	_, err = NewSLAPolicy(0, 0, 0, 0)
	assert.Error(t, err)
	_, err = NewSLAPolicy(0, 0, 0, 1.5)
	assert.Error(t, err)
}
