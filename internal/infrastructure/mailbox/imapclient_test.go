package mailbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitForIdleEvent_WakesOnMailboxUpdate(t *testing.T) {
	updates := make(chan struct{}, 1)
	updates <- struct{}{}

	start := time.Now()
	waitForIdleEvent(context.Background(), updates, 5*time.Second)

	assert.Less(t, time.Since(start), time.Second,
		"a pending mailbox update must end the wait immediately")
}

func TestWaitForIdleEvent_ReturnsOnTimeout(t *testing.T) {
	updates := make(chan struct{}, 1)

	start := time.Now()
	waitForIdleEvent(context.Background(), updates, 20*time.Millisecond)

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestWaitForIdleEvent_ReturnsOnContextCancel(t *testing.T) {
	updates := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		waitForIdleEvent(ctx, updates, time.Hour)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait did not end on context cancellation")
	}
}
