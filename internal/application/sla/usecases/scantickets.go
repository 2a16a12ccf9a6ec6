package usecases

import (
	"context"
	"fmt"
	"time"

	appnotification "github.com/leaders-st/helpdesk/internal/application/notification"
	"github.com/leaders-st/helpdesk/internal/domain/ticket"
	"github.com/leaders-st/helpdesk/internal/domain/user"
	"github.com/leaders-st/helpdesk/internal/shared/db"
	"github.com/leaders-st/helpdesk/internal/shared/logger"
)

type ScanTicketsResult struct {
	Scanned  int
	Warnings int
	Overdue  int
}

// ScanTicketsUseCase walks every unresolved ticket once per period and emits
// SLA alerts. Warnings repeat on every scan while a ticket sits inside its
// warning window; the overdue alert for a ticket fires exactly once, gated
// by the overdue-alert-sent flag.
type ScanTicketsUseCase struct {
	ticketRepo ticket.Repository
	userRepo   user.Repository
	dispatcher *appnotification.Dispatcher
	policy     ticket.SLAPolicy
	txMgr      db.Tx
	logger     logger.Interface

	now func() time.Time
}

func NewScanTicketsUseCase(
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	dispatcher *appnotification.Dispatcher,
	policy ticket.SLAPolicy,
	txMgr db.Tx,
	logger logger.Interface,
) *ScanTicketsUseCase {
	return &ScanTicketsUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		policy:     policy,
		txMgr:      txMgr,
		logger:     logger,
		now:        time.Now,
	}
}

// Execute runs one scan. Per-ticket failures are logged and skipped so one
// broken row never starves the rest; the next period retries it.
func (uc *ScanTicketsUseCase) Execute(ctx context.Context) (*ScanTicketsResult, error) {
	tickets, err := uc.ticketRepo.ListUnresolved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unresolved tickets: %w", err)
	}

	now := uc.now()
	result := &ScanTicketsResult{Scanned: len(tickets)}

	for _, t := range tickets {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		age := t.Age(now)

		switch {
		case uc.policy.IsOverdue(t.Priority(), age):
			if t.OverdueAlertSent() {
				continue
			}
			if err := uc.handleOverdue(ctx, t, age); err != nil {
				uc.logger.Errorw("overdue handling failed, will retry next scan",
					"ticket_code", t.Code(),
					"error", err,
				)
				continue
			}
			result.Overdue++

		case uc.policy.InWarningWindow(t.Priority(), age):
			if err := uc.handleWarning(ctx, t, age); err != nil {
				uc.logger.Errorw("warning handling failed, will retry next scan",
					"ticket_code", t.Code(),
					"error", err,
				)
				continue
			}
			result.Warnings++
		}
	}

	uc.logger.Infow("SLA scan finished",
		"scanned", result.Scanned,
		"warnings", result.Warnings,
		"overdue", result.Overdue,
	)
	return result, nil
}

// handleWarning alerts without mutating the ticket, so the warning repeats
// every scan until the ticket is resolved or goes overdue.
func (uc *ScanTicketsUseCase) handleWarning(ctx context.Context, t *ticket.Ticket, age time.Duration) error {
	remaining := uc.policy.Remaining(t.Priority(), age)

	uc.dispatcher.Broadcast(ctx, fmt.Sprintf(
		":hourglass_flowing_sand: *SLA WARNING*\n*Ticket:* %s\n*Client:* %s\n*Remaining:* %s\n:warning: SLA almost breached",
		t.Code(), t.Email(), remaining.Round(time.Minute)))

	if assignee := t.AssigneeID(); assignee != nil {
		text := fmt.Sprintf("SLA warning: ticket %s nearing deadline", t.Code())
		if err := uc.dispatcher.Notify(ctx, *assignee, t.ID(), t.Code(), text); err != nil {
			return err
		}
	}
	return nil
}

// handleOverdue sequences the exactly-once overdue alert: the external
// broadcast is attempted first, outside any transaction, and only its
// success lets the overdue flag advance. In-app notifications are written
// either way.
func (uc *ScanTicketsUseCase) handleOverdue(ctx context.Context, t *ticket.Ticket, age time.Duration) error {
	overBy := age - uc.policy.Deadline(t.Priority())

	// The agent line in the alert is cosmetic; a failed lookup must not
	// delay the alert itself.
	agent := "Unassigned"
	if assignee := t.AssigneeID(); assignee != nil {
		u, err := uc.userRepo.GetByID(ctx, *assignee)
		if err != nil {
			uc.logger.Warnw("failed to resolve assignee for overdue alert",
				"ticket_code", t.Code(),
				"error", err,
			)
		} else if u != nil {
			agent = u.Email()
		}
	}

	broadcastOK := uc.dispatcher.Broadcast(ctx, fmt.Sprintf(
		":rotating_light: *OVERDUE TICKET ALERT*\n*Ticket:* %s\n*Client:* %s\n*Agent:* %s\n*Overdue By:* %s\n:fire: Immediate action required",
		t.Code(), t.Email(), agent, overBy.Round(time.Minute)))

	admins, err := uc.userRepo.ListByRole(ctx, user.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to list administrators: %w", err)
	}

	adminIDs := make([]uint, 0, len(admins))
	for _, admin := range admins {
		if assignee := t.AssigneeID(); assignee != nil && admin.ID() == *assignee {
			continue
		}
		adminIDs = append(adminIDs, admin.ID())
	}

	return uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if assignee := t.AssigneeID(); assignee != nil {
			text := fmt.Sprintf("Ticket %s is overdue", t.Code())
			if err := uc.dispatcher.Notify(txCtx, *assignee, t.ID(), t.Code(), text); err != nil {
				return err
			}
		}
		text := fmt.Sprintf("Overdue ticket %s requires attention", t.Code())
		if err := uc.dispatcher.NotifyMany(txCtx, adminIDs, t.ID(), t.Code(), text); err != nil {
			return err
		}
		if broadcastOK {
			if err := uc.ticketRepo.MarkOverdueNotified(txCtx, t.ID()); err != nil {
				return err
			}
		}
		return nil
	})
}
