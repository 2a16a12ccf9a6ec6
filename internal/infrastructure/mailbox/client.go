// Package mailbox watches the support inbox and turns new messages into
// ingestion work. The IMAP details stay behind the Client interface so the
// listener loop can be driven by a fake in tests.
package mailbox

import (
	"context"

	"github.com/leaders-st/helpdesk/internal/domain/mail"
)

// Client is a connection to the support mailbox.
type Client interface {
	// Connect dials and authenticates, then selects the watched folder.
	Connect(ctx context.Context) error

	// ListNewSince returns the UIDs of messages strictly above lastUID,
	// in ascending order.
	ListNewSince(ctx context.Context, lastUID uint32) ([]uint32, error)

	// Fetch downloads and parses one message. A message that cannot be
	// parsed yields a malformed-message error.
	Fetch(ctx context.Context, uid uint32) (*mail.InboundMessage, error)

	// Idle blocks until the server signals new mail, the idle timeout
	// elapses, or ctx is done. A nil return means "poll again".
	Idle(ctx context.Context) error

	// Close tears the connection down. Safe to call on a dead connection.
	Close() error
}
