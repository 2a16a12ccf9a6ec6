package notification

import "context"

type Repository interface {
	// Create persists one notification row. Participates in the caller's
	// transaction when one is on the context.
	Create(ctx context.Context, n *Notification) error

	GetByID(ctx context.Context, id uint) (*Notification, error)
	ListUnreadByUserID(ctx context.Context, userID uint) ([]*Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	// MarkAsRead flags one notification as read. Scoped to the owning
	// user, so one user can never mark another user's notification.
	MarkAsRead(ctx context.Context, id, userID uint) error
	MarkAllAsRead(ctx context.Context, userID uint) error
}
