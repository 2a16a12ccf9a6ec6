package mappers

import (
	"github.com/leaders-st/helpdesk/internal/domain/notification"
	"github.com/leaders-st/helpdesk/internal/infrastructure/persistence/models"
)

type NotificationMapper interface {
	ToModel(n *notification.Notification) *models.NotificationModel
	ToDomain(model *models.NotificationModel) (*notification.Notification, error)
}

type NotificationMapperImpl struct{}

func NewNotificationMapper() NotificationMapper {
	return &NotificationMapperImpl{}
}

func (m *NotificationMapperImpl) ToModel(n *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:         n.ID(),
		UserID:     n.UserID(),
		TicketID:   n.TicketID(),
		TicketCode: n.TicketCode(),
		Message:    n.Message(),
		IsRead:     n.IsRead(),
		CreatedAt:  n.CreatedAt(),
	}
}

func (m *NotificationMapperImpl) ToDomain(model *models.NotificationModel) (*notification.Notification, error) {
	return notification.ReconstructNotification(
		model.ID,
		model.UserID,
		model.TicketID,
		model.TicketCode,
		model.Message,
		model.IsRead,
		model.CreatedAt,
	)
}
