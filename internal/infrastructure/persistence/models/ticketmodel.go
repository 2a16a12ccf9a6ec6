package models

import "time"

// TicketModel maps the tickets table shared with the dashboard. Column names
// follow the existing schema; slack_notified is the overdue-alert-sent flag.
// ticket_code stays NULL until the code is derived from the row ID, so
// uncoded rows never collide on the unique index.
type TicketModel struct {
	ID            uint      `gorm:"primaryKey"`
	TicketCode    *string   `gorm:"column:ticket_code;uniqueIndex;size:50"`
	MessageID     string    `gorm:"column:message_id;uniqueIndex;size:255;not null"`
	Email         string    `gorm:"size:255;not null;index"`
	Description   string    `gorm:"type:text;not null"`
	Status        string    `gorm:"size:20;not null;index"`
	Priority      string    `gorm:"size:20;not null;index"`
	AssignedTo    *uint     `gorm:"column:assigned_to;index"`
	SlackNotified bool      `gorm:"column:slack_notified;not null;default:false"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`

	// No foreign key constraints; relationships are managed by application
	// business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type TicketNoteModel struct {
	ID        uint      `gorm:"primaryKey"`
	TicketID  uint      `gorm:"not null;index"`
	UserID    uint      `gorm:"not null;index"`
	Note      string    `gorm:"type:text;not null"`
	IsSystem  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (TicketNoteModel) TableName() string {
	return "ticket_notes"
}
