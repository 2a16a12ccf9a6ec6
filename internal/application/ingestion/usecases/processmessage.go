package usecases

import (
	"context"
	"fmt"

	appnotification "github.com/leaders-st/helpdesk/internal/application/notification"
	"github.com/leaders-st/helpdesk/internal/domain/mail"
	"github.com/leaders-st/helpdesk/internal/domain/ticket"
	"github.com/leaders-st/helpdesk/internal/domain/user"
	"github.com/leaders-st/helpdesk/internal/shared/db"
	"github.com/leaders-st/helpdesk/internal/shared/errors"
	"github.com/leaders-st/helpdesk/internal/shared/logger"
)

// Outcome describes what ingestion did with one message. Every outcome is
// durable: the caller may advance its watermark past the message.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeFiltered  Outcome = "filtered"
)

type ProcessMessageCommand struct {
	Message *mail.InboundMessage
}

type ProcessMessageResult struct {
	Outcome    Outcome
	TicketID   uint
	TicketCode string
}

// ProcessMessageUseCase turns one inbound email into at most one ticket:
// dedup, filter, classify, then an atomic create + code assignment + admin
// notification fan-out.
type ProcessMessageUseCase struct {
	filter     *mail.Filter
	ticketRepo ticket.Repository
	userRepo   user.Repository
	dispatcher *appnotification.Dispatcher
	seenCache  SeenCache
	autoReply  AutoReplier
	txMgr      db.Tx
	logger     logger.Interface
}

func NewProcessMessageUseCase(
	filter *mail.Filter,
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	dispatcher *appnotification.Dispatcher,
	seenCache SeenCache,
	autoReply AutoReplier,
	txMgr db.Tx,
	logger logger.Interface,
) *ProcessMessageUseCase {
	return &ProcessMessageUseCase{
		filter:     filter,
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		seenCache:  seenCache,
		autoReply:  autoReply,
		txMgr:      txMgr,
		logger:     logger,
	}
}

func (uc *ProcessMessageUseCase) Execute(ctx context.Context, cmd ProcessMessageCommand) (*ProcessMessageResult, error) {
	msg := cmd.Message
	if msg == nil || msg.MessageID == "" {
		return nil, errors.NewValidationError("message with a message ID is required")
	}

	if uc.seenCache.Seen(ctx, msg.MessageID) {
		uc.logger.Infow("duplicate message dropped via cache", "message_id", msg.MessageID)
		return &ProcessMessageResult{Outcome: OutcomeDuplicate}, nil
	}

	exists, err := uc.ticketRepo.ExistsByMessageID(ctx, msg.MessageID)
	if err != nil {
		return nil, errors.NewRepositoryError("message ID lookup failed", err)
	}
	if exists {
		if err := uc.seenCache.MarkSeen(ctx, msg.MessageID); err != nil {
			uc.logger.Warnw("failed to update seen cache", "message_id", msg.MessageID, "error", err)
		}
		uc.logger.Infow("duplicate message dropped", "message_id", msg.MessageID)
		return &ProcessMessageResult{Outcome: OutcomeDuplicate}, nil
	}

	if !uc.filter.ShouldCreateTicket(msg) {
		uc.logger.Infow("message filtered out",
			"message_id", msg.MessageID,
			"sender", msg.Sender,
		)
		return &ProcessMessageResult{Outcome: OutcomeFiltered}, nil
	}

	priority := mail.ClassifyPriority(msg.Subject, msg.Body)

	t, err := ticket.NewTicket(msg.Sender, msg.Body, msg.MessageID, priority)
	if err != nil {
		return nil, fmt.Errorf("failed to build ticket: %w", err)
	}

	admins, err := uc.userRepo.ListByRole(ctx, user.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list administrators: %w", err)
	}

	var outcome Outcome
	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		insert, err := uc.ticketRepo.CreateIdempotent(txCtx, t)
		if err != nil {
			return fmt.Errorf("failed to insert ticket: %w", err)
		}
		if insert == ticket.InsertDuplicate {
			outcome = OutcomeDuplicate
			return nil
		}
		outcome = OutcomeCreated

		if err := t.AssignCode(); err != nil {
			return fmt.Errorf("failed to assign ticket code: %w", err)
		}
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to store ticket code: %w", err)
		}

		text := fmt.Sprintf("New ticket %s created from %s", t.Code(), t.Email())
		for _, admin := range admins {
			if err := uc.dispatcher.Notify(txCtx, admin.ID(), t.ID(), t.Code(), text); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("ticket creation transaction failed",
			"message_id", msg.MessageID,
			"error", txErr,
		)
		return nil, errors.NewRepositoryError("ticket creation failed", txErr)
	}

	if err := uc.seenCache.MarkSeen(ctx, msg.MessageID); err != nil {
		uc.logger.Warnw("failed to update seen cache", "message_id", msg.MessageID, "error", err)
	}

	if outcome == OutcomeDuplicate {
		uc.logger.Infow("duplicate message dropped", "message_id", msg.MessageID)
		return &ProcessMessageResult{Outcome: outcome}, nil
	}

	uc.logger.Infow("ticket created",
		"ticket_code", t.Code(),
		"message_id", msg.MessageID,
		"priority", priority.String(),
	)

	uc.dispatcher.Broadcast(ctx, fmt.Sprintf(
		"New ticket %s created from %s (priority: %s)", t.Code(), t.Email(), priority.String()))

	if err := uc.autoReply.SendTicketReceived(t.Email(), t.Code(), msg.Subject, msg.MessageID); err != nil {
		uc.logger.Warnw("auto-reply failed",
			"ticket_code", t.Code(),
			"to", t.Email(),
			"error", err,
		)
	}

	return &ProcessMessageResult{
		Outcome:    outcome,
		TicketID:   t.ID(),
		TicketCode: t.Code(),
	}, nil
}

// ProcessMessage adapts Execute to the mailbox listener's handler contract:
// only a repository failure is an error, every other outcome is durable.
func (uc *ProcessMessageUseCase) ProcessMessage(ctx context.Context, msg *mail.InboundMessage) error {
	_, err := uc.Execute(ctx, ProcessMessageCommand{Message: msg})
	return err
}
