package ticket

import (
	"fmt"
	"time"

	vo "github.com/leaders-st/helpdesk/internal/domain/ticket/valueobjects"
)

type Ticket struct {
	id                 uint
	code               string
	messageID          string
	email              string
	description        string
	status             vo.TicketStatus
	priority           vo.Priority
	assigneeID         *uint
	overdueAlertSent   bool
	createdAt          time.Time
	updatedAt          time.Time
}

// NewTicket creates a ticket from an ingested email. The message ID is the
// dedup key and must be present; callers synthesize one from the transport
// handle when the message carries none.
func NewTicket(email, description, messageID string, priority vo.Priority) (*Ticket, error) {
	if len(email) == 0 {
		return nil, fmt.Errorf("sender email is required")
	}
	if len(messageID) == 0 {
		return nil, fmt.Errorf("message ID is required")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}

	now := time.Now()
	return &Ticket{
		messageID:   messageID,
		email:       email,
		description: description,
		status:      vo.StatusOpen,
		priority:    priority,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	code string,
	messageID string,
	email string,
	description string,
	status vo.TicketStatus,
	priority vo.Priority,
	assigneeID *uint,
	overdueAlertSent bool,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}

	return &Ticket{
		id:               id,
		code:             code,
		messageID:        messageID,
		email:            email,
		description:      description,
		status:           status,
		priority:         priority,
		assigneeID:       assigneeID,
		overdueAlertSent: overdueAlertSent,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (t *Ticket) ID() uint                { return t.id }
func (t *Ticket) Code() string            { return t.code }
func (t *Ticket) MessageID() string       { return t.messageID }
func (t *Ticket) Email() string           { return t.email }
func (t *Ticket) Description() string     { return t.description }
func (t *Ticket) Status() vo.TicketStatus { return t.status }
func (t *Ticket) Priority() vo.Priority   { return t.priority }
func (t *Ticket) AssigneeID() *uint       { return t.assigneeID }
func (t *Ticket) OverdueAlertSent() bool  { return t.overdueAlertSent }
func (t *Ticket) CreatedAt() time.Time    { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time    { return t.updatedAt }

// SetID is called by the repository after insert.
func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// AssignCode derives and records the human-readable code. It requires the
// database identity, so it runs inside the same transaction as the insert.
func (t *Ticket) AssignCode() error {
	if t.id == 0 {
		return fmt.Errorf("cannot assign code before ticket has an ID")
	}
	t.code = FormatCode(t.id)
	return nil
}

// Age reports how long the ticket has been open relative to now.
func (t *Ticket) Age(now time.Time) time.Duration {
	return now.Sub(t.createdAt)
}

// MarkOverdueNotified flips the overdue-alert-sent flag. The flag is
// monotonic: once set it never resets.
func (t *Ticket) MarkOverdueNotified() {
	if !t.overdueAlertSent {
		t.overdueAlertSent = true
		t.updatedAt = time.Now()
	}
}

// The mutation methods below serve the dashboard's repository boundary; the
// ingestion and SLA cores never change status, priority or assignment.

func (t *Ticket) ChangeStatus(status vo.TicketStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}
	t.status = status
	t.updatedAt = time.Now()
	return nil
}

func (t *Ticket) ChangePriority(priority vo.Priority) error {
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", priority)
	}
	t.priority = priority
	t.updatedAt = time.Now()
	return nil
}

func (t *Ticket) AssignTo(userID uint) error {
	if userID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	t.assigneeID = &userID
	t.updatedAt = time.Now()
	return nil
}

func (t *Ticket) Unassign() {
	t.assigneeID = nil
	t.updatedAt = time.Now()
}
