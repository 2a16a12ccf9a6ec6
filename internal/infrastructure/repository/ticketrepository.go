package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/leaders-st/helpdesk/internal/domain/ticket"
	vo "github.com/leaders-st/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/leaders-st/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/leaders-st/helpdesk/internal/infrastructure/persistence/models"
	"github.com/leaders-st/helpdesk/internal/shared/db"
	apperrors "github.com/leaders-st/helpdesk/internal/shared/errors"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	policy ticket.SLAPolicy
}

func NewTicketRepository(database *gorm.DB, policy ticket.SLAPolicy) *TicketRepository {
	return &TicketRepository{
		db:     database,
		mapper: mappers.NewTicketMapper(),
		policy: policy,
	}
}

// CreateIdempotent inserts the ticket keyed by its message ID. A unique
// conflict means another delivery of the same message won the race; that is
// reported as InsertDuplicate, not as an error.
func (r *TicketRepository) CreateIdempotent(ctx context.Context, t *ticket.Ticket) (ticket.InsertResult, error) {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateError(err) {
			return ticket.InsertDuplicate, nil
		}
		return 0, fmt.Errorf("failed to save ticket: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return 0, err
	}

	return ticket.InsertCreated, nil
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("ticket_code", "status", "priority", "assigned_to", "slack_notified", "updated_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values equal existing values.

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByCode(ctx context.Context, code string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket_code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByMessageID(ctx context.Context, messageID string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("message_id = ?", messageID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) ExistsByMessageID(ctx context.Context, messageID string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.TicketModel{}).
		Where("message_id = ?", messageID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check message ID: %w", err)
	}

	return count > 0, nil
}

func (r *TicketRepository) ListUnresolved(ctx context.Context) ([]*ticket.Ticket, error) {
	var ticketModels []models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("status != ?", "Resolved").
		Order("created_at ASC").
		Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list unresolved tickets: %w", err)
	}

	return r.toDomainSlice(ticketModels)
}

// MarkOverdueNotified sets the monotonic overdue-alert-sent flag. It never
// clears the flag, so repeated calls are harmless.
func (r *TicketRepository) MarkOverdueNotified(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", id).
		Update("slack_notified", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark ticket overdue-notified: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("ticket not found")
	}
	return nil
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := r.applyFilter(tx.Model(&models.TicketModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	query = query.Order("created_at DESC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.toDomainSlice(ticketModels)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// Stats computes the dashboard KPI counts for one filter. The scope of the
// base filter is ignored; each counter applies its own status predicate on
// top of the visibility and search parts.
func (r *TicketRepository) Stats(ctx context.Context, filter ticket.Filter) (*ticket.Stats, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	base := func() *gorm.DB {
		f := filter
		f.Scope = ticket.ScopeAll
		return r.applyFilter(tx.Model(&models.TicketModel{}), f)
	}

	stats := &ticket.Stats{}

	counts := []struct {
		dest  *int64
		scope func(*gorm.DB) *gorm.DB
	}{
		{&stats.Total, func(q *gorm.DB) *gorm.DB { return q }},
		{&stats.Unresolved, func(q *gorm.DB) *gorm.DB { return q.Where("status IN ?", []string{"Open", "In Progress"}) }},
		{&stats.Resolved, func(q *gorm.DB) *gorm.DB { return q.Where("status = ?", "Resolved") }},
		{&stats.Overdue, r.overdueScope},
		{&stats.High, func(q *gorm.DB) *gorm.DB { return q.Where("priority = ?", "High") }},
		{&stats.Medium, func(q *gorm.DB) *gorm.DB { return q.Where("priority = ?", "Medium") }},
		{&stats.Low, func(q *gorm.DB) *gorm.DB { return q.Where("priority = ?", "Low") }},
	}

	for _, c := range counts {
		if err := c.scope(base()).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute ticket stats: %w", err)
		}
	}

	return stats, nil
}

func (r *TicketRepository) SaveNote(ctx context.Context, n *ticket.Note) error {
	model := r.mapper.NoteToModel(n)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}

	return n.SetID(model.ID)
}

func (r *TicketRepository) FindNotesByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Note, error) {
	var noteModels []models.TicketNoteModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at DESC").
		Find(&noteModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find notes: %w", err)
	}

	notes := make([]*ticket.Note, len(noteModels))
	for i, model := range noteModels {
		n, err := r.mapper.NoteToDomain(&model)
		if err != nil {
			return nil, err
		}
		notes[i] = n
	}
	return notes, nil
}

func (r *TicketRepository) applyFilter(query *gorm.DB, filter ticket.Filter) *gorm.DB {
	if filter.AssigneeID != nil {
		query = query.Where("assigned_to = ?", *filter.AssigneeID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"ticket_code LIKE ? OR email LIKE ? OR description LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}

	switch filter.Scope {
	case ticket.ScopeResolved:
		query = query.Where("status = ?", "Resolved")
	case ticket.ScopeUnresolved:
		query = query.Where("status IN ?", []string{"Open", "In Progress"})
	case ticket.ScopeOverdue:
		query = r.overdueScope(query)
	}

	return query
}

// overdueScope expresses the per-priority age thresholds with cutoff
// timestamps computed in Go, so the predicate is portable across MySQL and
// the sqlite test database.
func (r *TicketRepository) overdueScope(query *gorm.DB) *gorm.DB {
	now := time.Now()
	highCutoff := now.Add(-r.policy.Deadline(vo.PriorityHigh))
	mediumCutoff := now.Add(-r.policy.Deadline(vo.PriorityMedium))
	lowCutoff := now.Add(-r.policy.Deadline(vo.PriorityLow))

	return query.
		Where("status != ?", "Resolved").
		Where(
			"(priority = ? AND created_at < ?) OR (priority = ? AND created_at < ?) OR (priority = ? AND created_at < ?)",
			"High", highCutoff, "Medium", mediumCutoff, "Low", lowCutoff,
		)
}

func (r *TicketRepository) toDomainSlice(ticketModels []models.TicketModel) ([]*ticket.Ticket, error) {
	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		t, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		tickets[i] = t
	}
	return tickets, nil
}
