package models

import "time"

type NotificationModel struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;index:idx_user_read"`
	TicketID   uint      `gorm:"not null;index"`
	TicketCode string    `gorm:"size:50"`
	Message    string    `gorm:"type:text;not null"`
	IsRead     bool      `gorm:"not null;default:false;index:idx_user_read"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
