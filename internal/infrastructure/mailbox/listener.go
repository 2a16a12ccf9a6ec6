package mailbox

import (
	"context"
	"time"

	"github.com/leaders-st/helpdesk/internal/domain/mail"
	"github.com/leaders-st/helpdesk/internal/infrastructure/watermark"
	"github.com/leaders-st/helpdesk/internal/shared/config"
	apperrors "github.com/leaders-st/helpdesk/internal/shared/errors"
	"github.com/leaders-st/helpdesk/internal/shared/logger"
)

const (
	defaultBackoffInitial = 5 * time.Second
	defaultBackoffMax     = 120 * time.Second
)

// MessageHandler consumes one parsed message. A nil return means the message
// was handled durably (ticket created, duplicate dropped, or filtered out)
// and the watermark may advance past it. An error means nothing durable
// happened and the message must be retried.
type MessageHandler interface {
	ProcessMessage(ctx context.Context, msg *mail.InboundMessage) error
}

// Listener drives the mailbox: it connects, drains messages above the
// watermark oldest-first, then idles until new mail arrives. Connection
// failures back off exponentially and never crash the process.
type Listener struct {
	client    Client
	handler   MessageHandler
	watermark watermark.Store
	logger    logger.Interface

	backoffInitial time.Duration
	backoffMax     time.Duration
}

func NewListener(
	client Client,
	handler MessageHandler,
	store watermark.Store,
	cfg *config.IngestionConfig,
	log logger.Interface,
) *Listener {
	initial := cfg.BackoffInitial
	if initial <= 0 {
		initial = defaultBackoffInitial
	}
	max := cfg.BackoffMax
	if max < initial {
		max = defaultBackoffMax
	}
	return &Listener{
		client:         client,
		handler:        handler,
		watermark:      store,
		logger:         log.Named("listener"),
		backoffInitial: initial,
		backoffMax:     max,
	}
}

// Run blocks until ctx is cancelled. It owns the connection lifecycle:
// every transport error tears the session down and reconnects with backoff.
func (l *Listener) Run(ctx context.Context) error {
	defer l.client.Close()

	backoff := l.backoffInitial

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := l.client.Connect(ctx); err != nil {
			l.logger.Errorw("mailbox connection failed",
				"error", err,
				"retry_in", backoff,
			)
			if !l.sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = l.nextBackoff(backoff)
			continue
		}
		backoff = l.backoffInitial

		if err := l.session(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.logger.Warnw("mailbox session ended, reconnecting", "error", err)
		}
		_ = l.client.Close()
	}
}

// session drains and idles on one live connection until a transport error.
func (l *Listener) session(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := l.drain(ctx); err != nil {
			return err
		}

		if err := l.client.Idle(ctx); err != nil {
			return err
		}
	}
}

// drain processes every message above the watermark, oldest first. The
// watermark advances only past messages that were handled durably; on a
// handler failure the rest of the batch is left for the next pass so
// ordering is preserved.
func (l *Listener) drain(ctx context.Context) error {
	lastUID, err := l.watermark.Load()
	if err != nil {
		return err
	}

	uids, err := l.client.ListNewSince(ctx, lastUID)
	if err != nil {
		return err
	}
	if len(uids) == 0 {
		return nil
	}

	l.logger.Infow("new messages found", "count", len(uids), "after_uid", lastUID)

	for _, uid := range uids {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := l.client.Fetch(ctx, uid)
		if err != nil {
			if apperrors.IsMalformedMessageError(err) {
				// Nothing can ever be done with this message; skip it
				// for good.
				l.logger.Warnw("skipping malformed message", "uid", uid, "error", err)
				if err := l.watermark.Save(uid); err != nil {
					return err
				}
				continue
			}
			return err
		}

		if err := l.handler.ProcessMessage(ctx, msg); err != nil {
			l.logger.Errorw("message processing failed, will retry",
				"uid", uid,
				"message_id", msg.MessageID,
				"error", err,
			)
			return nil
		}

		if err := l.watermark.Save(uid); err != nil {
			return err
		}
	}

	return nil
}

func (l *Listener) nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > l.backoffMax {
		next = l.backoffMax
	}
	return next
}

// sleep waits for d or until ctx is done; it reports whether the full wait
// completed.
func (l *Listener) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
