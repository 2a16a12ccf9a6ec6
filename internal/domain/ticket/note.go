package ticket

import (
	"fmt"
	"time"
)

// Note is a comment attached to a ticket, either written by a user through
// the dashboard or recorded by the system as an activity entry.
type Note struct {
	id        uint
	ticketID  uint
	userID    uint
	note      string
	isSystem  bool
	createdAt time.Time
}

func NewNote(ticketID, userID uint, text string, isSystem bool) (*Note, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if len(text) == 0 {
		return nil, fmt.Errorf("note text is required")
	}

	return &Note{
		ticketID:  ticketID,
		userID:    userID,
		note:      text,
		isSystem:  isSystem,
		createdAt: time.Now(),
	}, nil
}

func ReconstructNote(id, ticketID, userID uint, text string, isSystem bool, createdAt time.Time) (*Note, error) {
	if id == 0 {
		return nil, fmt.Errorf("note ID cannot be zero")
	}
	return &Note{
		id:        id,
		ticketID:  ticketID,
		userID:    userID,
		note:      text,
		isSystem:  isSystem,
		createdAt: createdAt,
	}, nil
}

func (n *Note) ID() uint             { return n.id }
func (n *Note) TicketID() uint       { return n.ticketID }
func (n *Note) UserID() uint         { return n.userID }
func (n *Note) Text() string         { return n.note }
func (n *Note) IsSystem() bool       { return n.isSystem }
func (n *Note) CreatedAt() time.Time { return n.createdAt }

func (n *Note) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("note ID already set")
	}
	if id == 0 {
		return fmt.Errorf("note ID cannot be zero")
	}
	n.id = id
	return nil
}
