package ticket

import (
	"context"

	vo "github.com/leaders-st/helpdesk/internal/domain/ticket/valueobjects"
)

// InsertResult reports how an idempotent insert resolved. A conflicting
// message ID is a normal outcome, not an error.
type InsertResult int

const (
	InsertCreated InsertResult = iota
	InsertDuplicate
)

// Scope selects the status slice of the ticket list, mirroring the
// dashboard's filter tabs.
type Scope string

const (
	ScopeAll        Scope = ""
	ScopeResolved   Scope = "resolved"
	ScopeUnresolved Scope = "unresolved"
	ScopeOverdue    Scope = "overdue"
)

// Filter is the typed query-parameter object consumed by the repository.
// AssigneeID scopes visibility for agent users; Search matches ticket code,
// sender email or description as a substring; ScopeOverdue applies the
// per-priority age thresholds of the SLA policy.
type Filter struct {
	AssigneeID *uint
	Search     string
	Scope      Scope
	Priority   *vo.Priority
	Page       int
	PageSize   int
}

// Stats carries the dashboard KPI counts for one filter.
type Stats struct {
	Total      int64
	Unresolved int64
	Resolved   int64
	Overdue    int64
	High       int64
	Medium     int64
	Low        int64
}

type Repository interface {
	// CreateIdempotent inserts a ticket keyed by its message ID. A unique
	// conflict on the message ID resolves to InsertDuplicate without error;
	// on InsertCreated the entity has its ID populated.
	CreateIdempotent(ctx context.Context, t *Ticket) (InsertResult, error)

	// Update persists mutable fields (status, priority, assignee, code,
	// overdue flag) of an existing ticket.
	Update(ctx context.Context, t *Ticket) error

	GetByID(ctx context.Context, id uint) (*Ticket, error)
	GetByCode(ctx context.Context, code string) (*Ticket, error)
	GetByMessageID(ctx context.Context, messageID string) (*Ticket, error)

	// ExistsByMessageID is the cheap dedup probe used by the ingestion
	// pipeline before attempting an insert.
	ExistsByMessageID(ctx context.Context, messageID string) (bool, error)

	// ListUnresolved returns every ticket whose status is not Resolved,
	// for the SLA scan.
	ListUnresolved(ctx context.Context) ([]*Ticket, error)

	// MarkOverdueNotified sets the overdue-alert-sent flag. Monotonic; runs
	// inside the caller's transaction when one is on the context.
	MarkOverdueNotified(ctx context.Context, id uint) error

	List(ctx context.Context, filter Filter) ([]*Ticket, int64, error)
	Stats(ctx context.Context, filter Filter) (*Stats, error)

	SaveNote(ctx context.Context, n *Note) error
	FindNotesByTicketID(ctx context.Context, ticketID uint) ([]*Note, error)
}
