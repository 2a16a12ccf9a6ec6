package mappers

import (
	"github.com/leaders-st/helpdesk/internal/domain/ticket"
	vo "github.com/leaders-st/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/leaders-st/helpdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and
// persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	NoteToModel(n *ticket.Note) *models.TicketNoteModel
	NoteToDomain(model *models.TicketNoteModel) (*ticket.Note, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	var code *string
	if c := t.Code(); c != "" {
		code = &c
	}
	return &models.TicketModel{
		ID:            t.ID(),
		TicketCode:    code,
		MessageID:     t.MessageID(),
		Email:         t.Email(),
		Description:   t.Description(),
		Status:        t.Status().String(),
		Priority:      t.Priority().String(),
		AssignedTo:    t.AssigneeID(),
		SlackNotified: t.OverdueAlertSent(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	code := ""
	if model.TicketCode != nil {
		code = *model.TicketCode
	}
	return ticket.ReconstructTicket(
		model.ID,
		code,
		model.MessageID,
		model.Email,
		model.Description,
		vo.TicketStatus(model.Status),
		vo.Priority(model.Priority),
		model.AssignedTo,
		model.SlackNotified,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *TicketMapperImpl) NoteToModel(n *ticket.Note) *models.TicketNoteModel {
	return &models.TicketNoteModel{
		ID:        n.ID(),
		TicketID:  n.TicketID(),
		UserID:    n.UserID(),
		Note:      n.Text(),
		IsSystem:  n.IsSystem(),
		CreatedAt: n.CreatedAt(),
	}
}

func (m *TicketMapperImpl) NoteToDomain(model *models.TicketNoteModel) (*ticket.Note, error) {
	return ticket.ReconstructNote(
		model.ID,
		model.TicketID,
		model.UserID,
		model.Note,
		model.IsSystem,
		model.CreatedAt,
	)
}
