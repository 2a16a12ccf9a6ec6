package notification

import (
	"context"
	"fmt"

	"github.com/leaders-st/helpdesk/internal/domain/notification"
	"github.com/leaders-st/helpdesk/internal/shared/logger"
)

// Broadcaster posts a message to the external alert channel. Ok reports
// acceptance; implementations never return an error because broadcast
// failure is always non-fatal.
type Broadcaster interface {
	Broadcast(ctx context.Context, text string) (ok bool)
}

// Dispatcher fans alerts out to in-app notification rows and the external
// channel. In-app writes participate in the caller's transaction through
// ctx; the external broadcast is independent and never rolls anything back.
type Dispatcher struct {
	notificationRepo notification.Repository
	broadcaster      Broadcaster
	logger           logger.Interface
}

func NewDispatcher(
	notificationRepo notification.Repository,
	broadcaster Broadcaster,
	logger logger.Interface,
) *Dispatcher {
	return &Dispatcher{
		notificationRepo: notificationRepo,
		broadcaster:      broadcaster,
		logger:           logger,
	}
}

// Notify writes one in-app notification row. An error fails the caller's
// transaction as a whole.
func (d *Dispatcher) Notify(ctx context.Context, userID, ticketID uint, ticketCode, message string) error {
	n, err := notification.NewNotification(userID, ticketID, ticketCode, message)
	if err != nil {
		return fmt.Errorf("failed to build notification: %w", err)
	}
	if err := d.notificationRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to save notification for user %d: %w", userID, err)
	}
	return nil
}

// NotifyMany writes one row per recipient; the first failure aborts.
func (d *Dispatcher) NotifyMany(ctx context.Context, userIDs []uint, ticketID uint, ticketCode, message string) error {
	for _, id := range userIDs {
		if err := d.Notify(ctx, id, ticketID, ticketCode, message); err != nil {
			return err
		}
	}
	return nil
}

// Broadcast posts to the external channel. Failure is logged and reported,
// never raised.
func (d *Dispatcher) Broadcast(ctx context.Context, text string) bool {
	ok := d.broadcaster.Broadcast(ctx, text)
	if !ok {
		d.logger.Warnw("external broadcast failed", "text", text)
	}
	return ok
}
