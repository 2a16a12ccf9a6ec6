package usecases

import (
	"context"
	"time"

	"github.com/leaders-st/helpdesk/internal/domain/notification"
	"github.com/leaders-st/helpdesk/internal/domain/ticket"
	"github.com/leaders-st/helpdesk/internal/domain/user"
)

type mockTicketRepository struct {
	CreateIdempotentFunc    func(ctx context.Context, t *ticket.Ticket) (ticket.InsertResult, error)
	UpdateFunc              func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc             func(ctx context.Context, id uint) (*ticket.Ticket, error)
	GetByCodeFunc           func(ctx context.Context, code string) (*ticket.Ticket, error)
	GetByMessageIDFunc      func(ctx context.Context, messageID string) (*ticket.Ticket, error)
	ExistsByMessageIDFunc   func(ctx context.Context, messageID string) (bool, error)
	ListUnresolvedFunc      func(ctx context.Context) ([]*ticket.Ticket, error)
	MarkOverdueNotifiedFunc func(ctx context.Context, id uint) error
	ListFunc                func(ctx context.Context, f ticket.Filter) ([]*ticket.Ticket, int64, error)
	StatsFunc               func(ctx context.Context, f ticket.Filter) (*ticket.Stats, error)
	SaveNoteFunc            func(ctx context.Context, n *ticket.Note) error
	FindNotesByTicketIDFunc func(ctx context.Context, ticketID uint) ([]*ticket.Note, error)
}

func (m *mockTicketRepository) CreateIdempotent(ctx context.Context, t *ticket.Ticket) (ticket.InsertResult, error) {
	if m.CreateIdempotentFunc != nil {
		return m.CreateIdempotentFunc(ctx, t)
	}
	return ticket.InsertCreated, nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByCode(ctx context.Context, code string) (*ticket.Ticket, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByMessageID(ctx context.Context, messageID string) (*ticket.Ticket, error) {
	if m.GetByMessageIDFunc != nil {
		return m.GetByMessageIDFunc(ctx, messageID)
	}
	return nil, nil
}

func (m *mockTicketRepository) ExistsByMessageID(ctx context.Context, messageID string) (bool, error) {
	if m.ExistsByMessageIDFunc != nil {
		return m.ExistsByMessageIDFunc(ctx, messageID)
	}
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
	return nil
}

func (m *mockTicketRepository) List(ctx context.Context, f ticket.Filter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) Stats(ctx context.Context, f ticket.Filter) (*ticket.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, f)
	}
	return nil, nil
}

func (m *mockTicketRepository) SaveNote(ctx context.Context, n *ticket.Note) error {
	if m.SaveNoteFunc != nil {
		return m.SaveNoteFunc(ctx, n)
	}
	return nil
}

func (m *mockTicketRepository) FindNotesByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Note, error) {
	if m.FindNotesByTicketIDFunc != nil {
		return m.FindNotesByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockUserRepository struct {
	CreateFunc     func(ctx context.Context, u *user.User) error
	GetByIDFunc    func(ctx context.Context, id uint) (*user.User, error)
	GetByIDsFunc   func(ctx context.Context, ids []uint) ([]*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	ListByRoleFunc func(ctx context.Context, role user.Role) ([]*user.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
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

type mockSeenCache struct {
	seen   map[string]bool
	marked []string
}

func (m *mockSeenCache) Seen(ctx context.Context, messageID string) bool {
	return m.seen[messageID]
}

func (m *mockSeenCache) MarkSeen(ctx context.Context, messageID string) error {
	m.marked = append(m.marked, messageID)
	return nil
}

type mockAutoReplier struct {
	sent []string
	err  error
}

func (m *mockAutoReplier) SendTicketReceived(to, ticketCode, originalSubject, originalMessageID string) error {
	m.sent = append(m.sent, ticketCode)
	return m.err
}

// passthroughTx runs the function without a real database transaction.
type passthroughTx struct {
	err error
}

func (p *passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.err != nil {
		return p.err
	}
	return fn(ctx)
}

func tNow() time.Time { return time.Now() }
