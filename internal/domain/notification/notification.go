package notification

import (
	"fmt"
	"time"
)

// Notification is an in-app alert row. Rows are created only by the
// dispatcher; the dashboard later flips the read flag and never deletes.
type Notification struct {
	id         uint
	userID     uint
	ticketID   uint
	ticketCode string
	message    string
	isRead     bool
	createdAt  time.Time
}

func NewNotification(userID, ticketID uint, ticketCode, message string) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if len(message) == 0 {
		return nil, fmt.Errorf("message is required")
	}

	return &Notification{
		userID:     userID,
		ticketID:   ticketID,
		ticketCode: ticketCode,
		message:    message,
		createdAt:  time.Now(),
	}, nil
}

func ReconstructNotification(
	id uint,
	userID uint,
	ticketID uint,
	ticketCode string,
	message string,
	isRead bool,
	createdAt time.Time,
) (*Notification, error) {
	if id == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	return &Notification{
		id:         id,
		userID:     userID,
		ticketID:   ticketID,
		ticketCode: ticketCode,
		message:    message,
		isRead:     isRead,
		createdAt:  createdAt,
	}, nil
}

func (n *Notification) ID() uint             { return n.id }
func (n *Notification) UserID() uint         { return n.userID }
func (n *Notification) TicketID() uint       { return n.ticketID }
func (n *Notification) TicketCode() string   { return n.ticketCode }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) IsRead() bool         { return n.isRead }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

func (n *Notification) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID already set")
	}
	if id == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = id
	return nil
}

func (n *Notification) MarkRead() {
	n.isRead = true
}
