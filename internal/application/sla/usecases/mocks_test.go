package usecases

import (
	"context"
	"time"

	"github.com/leaders-st/helpdesk/internal/domain/notification"
	"github.com/leaders-st/helpdesk/internal/domain/ticket"
	vo "github.com/leaders-st/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/leaders-st/helpdesk/internal/domain/user"
)

type mockTicketRepository struct {
	ListUnresolvedFunc      func(ctx context.Context) ([]*ticket.Ticket, error)
	MarkOverdueNotifiedFunc func(ctx context.Context, id uint) error

	markedOverdue []uint
}

func (m *mockTicketRepository) CreateIdempotent(ctx context.Context, t *ticket.Ticket) (ticket.InsertResult, error) {
	return ticket.InsertCreated, nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error { return nil }

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) GetByCode(ctx context.Context, code string) (*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) GetByMessageID(ctx context.Context, messageID string) (*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) ExistsByMessageID(ctx context.Context, messageID string) (bool, error) {
	return false, nil
}

func (m *mockTicketRepository) ListUnresolved(ctx context.Context) ([]*ticket.Ticket, error) {
	if m.ListUnresolvedFunc != nil {
		return m.ListUnresolvedFunc(ctx)
	}
	return nil, nil
}

func (m *mockTicketRepository) MarkOverdueNotified(ctx context.Context, id uint) error {
	if m.MarkOverdueNotifiedFunc != nil {
		return m.MarkOverdueNotifiedFunc(ctx, id)
	}
	m.markedOverdue = append(m.markedOverdue, id)
	return nil
}

func (m *mockTicketRepository) List(ctx context.Context, f ticket.Filter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}

func (m *mockTicketRepository) Stats(ctx context.Context, f ticket.Filter) (*ticket.Stats, error) {
	return nil, nil
}

func (m *mockTicketRepository) SaveNote(ctx context.Context, n *ticket.Note) error { return nil }

func (m *mockTicketRepository) FindNotesByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Note, error) {
	return nil, nil
}

type mockUserRepository struct {
	ListByRoleFunc func(ctx context.Context, role user.Role) ([]*user.User, error)
	GetByIDFunc    func(ctx context.Context, id uint) (*user.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	if m.ListByRoleFunc != nil {
		return m.ListByRoleFunc(ctx, role)
	}
	return nil, nil
}

type mockNotificationRepository struct {
	created []*notification.Notification

	CreateFunc func(ctx context.Context, n *notification.Notification) error
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepository) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	return nil, nil
}

func (m *mockNotificationRepository) ListUnreadByUserID(ctx context.Context, userID uint) ([]*notification.Notification, error) {
	return nil, nil
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}

func (m *mockNotificationRepository) MarkAsRead(ctx context.Context, id, userID uint) error {
	return nil
}

func (m *mockNotificationRepository) MarkAllAsRead(ctx context.Context, userID uint) error {
	return nil
}

type mockBroadcaster struct {
	messages []string
	ok       bool
}

func (m *mockBroadcaster) Broadcast(ctx context.Context, text string) bool {
	m.messages = append(m.messages, text)
	return m.ok
}

type passthroughTx struct {
	err error
}

func (p *passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.err != nil {
		return p.err
	}
	return fn(ctx)
}

func makeTicket(id uint, priority vo.Priority, age time.Duration, assignee *uint, overdueNotified bool, now time.Time) *ticket.Ticket {
	created := now.Add(-age)
	t, err := ticket.ReconstructTicket(
		id,
		ticket.FormatCode(id),
		"<m@mail>",
		"user@kplitigators.com",
		"desc",
		vo.StatusOpen,
		priority,
		assignee,
		overdueNotified,
		created,
		created,
	)
	if err != nil {
		panic(err)
	}
	return t
}
