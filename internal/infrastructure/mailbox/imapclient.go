package mailbox

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/leaders-st/helpdesk/internal/domain/mail"
	"github.com/leaders-st/helpdesk/internal/shared/config"
	apperrors "github.com/leaders-st/helpdesk/internal/shared/errors"
	"github.com/leaders-st/helpdesk/internal/shared/logger"
)

const (
	defaultFolder      = "INBOX"
	defaultIdleTimeout = 5 * time.Minute
	defaultDialTimeout = 30 * time.Second
)

// IMAPClient implements Client against a real IMAP4rev2 server over TLS.
type IMAPClient struct {
	cfg    *config.MailboxConfig
	logger logger.Interface

	conn    *imapclient.Client
	updates chan struct{}
}

func NewIMAPClient(cfg *config.MailboxConfig, log logger.Interface) *IMAPClient {
	return &IMAPClient{
		cfg:    cfg,
		logger: log.Named("imap"),
	}
}

func (c *IMAPClient) folder() string {
	if c.cfg.Folder != "" {
		return c.cfg.Folder
	}
	return defaultFolder
}

func (c *IMAPClient) idleTimeout() time.Duration {
	if c.cfg.IdleTimeout > 0 {
		return c.cfg.IdleTimeout
	}
	return defaultIdleTimeout
}

// Connect dials the server with TLS, authenticates and selects the watched
// folder. Any previous connection is discarded first.
func (c *IMAPClient) Connect(ctx context.Context) error {
	_ = c.Close()

	dialTimeout := c.cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	tlsConn, err := tls.DialWithDialer(dialer, "tcp", c.cfg.GetAddr(), nil)
	if err != nil {
		return apperrors.NewTransportError(
			fmt.Sprintf("failed to dial %s", c.cfg.GetAddr()), err)
	}

	// The server announces new mail during IDLE with an untagged EXISTS;
	// signal it so Idle can return immediately instead of waiting out the
	// full idle timeout.
	updates := make(chan struct{}, 1)
	conn := imapclient.New(tlsConn, &imapclient.Options{
		UnilateralDataHandler: &imapclient.UnilateralDataHandler{
			Mailbox: func(data *imapclient.UnilateralDataMailbox) {
				if data.NumMessages == nil {
					return
				}
				select {
				case updates <- struct{}{}:
				default:
				}
			},
		},
	})

	if err := conn.Login(c.cfg.Username, c.cfg.Password).Wait(); err != nil {
		conn.Close()
		return apperrors.NewTransportError("IMAP login failed", err)
	}

	if _, err := conn.Select(c.folder(), nil).Wait(); err != nil {
		conn.Close()
		return apperrors.NewTransportError(
			fmt.Sprintf("failed to select folder %s", c.folder()), err)
	}

	c.conn = conn
	c.updates = updates
	c.logger.Infow("mailbox connected",
		"addr", c.cfg.GetAddr(),
		"folder", c.folder(),
	)
	return nil
}

// ListNewSince runs a UID SEARCH for everything above lastUID.
func (c *IMAPClient) ListNewSince(ctx context.Context, lastUID uint32) ([]uint32, error) {
	if c.conn == nil {
		return nil, apperrors.NewTransportError("not connected", nil)
	}

	var set imap.UIDSet
	set.AddRange(imap.UID(lastUID+1), 0)

	data, err := c.conn.UIDSearch(&imap.SearchCriteria{
		UID: []imap.UIDSet{set},
	}, nil).Wait()
	if err != nil {
		return nil, apperrors.NewTransportError("UID search failed", err)
	}

	var uids []uint32
	for _, uid := range data.AllUIDs() {
		// Servers answer "n:*" with at least the last message even when
		// nothing is new, so filter below the watermark explicitly.
		if uint32(uid) > lastUID {
			uids = append(uids, uint32(uid))
		}
	}
	return uids, nil
}

// Fetch downloads the full body of one message and parses it.
func (c *IMAPClient) Fetch(ctx context.Context, uid uint32) (*mail.InboundMessage, error) {
	if c.conn == nil {
		return nil, apperrors.NewTransportError("not connected", nil)
	}

	section := &imap.FetchItemBodySection{}
	msgs, err := c.conn.Fetch(imap.UIDSetNum(imap.UID(uid)), &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{section},
	}).Collect()
	if err != nil {
		return nil, apperrors.NewTransportError(
			fmt.Sprintf("failed to fetch uid %d", uid), err)
	}
	if len(msgs) == 0 {
		return nil, apperrors.NewTransportError(
			fmt.Sprintf("uid %d vanished before fetch", uid), nil)
	}

	raw := msgs[0].FindBodySection(section)
	if len(raw) == 0 {
		return nil, apperrors.NewMalformedMessageError(
			fmt.Sprintf("uid %d has an empty body section", uid))
	}

	return ParseMessage(bytes.NewReader(raw), uid)
}

// Idle waits for the server to report new activity. It returns nil on new
// mail, on the idle timeout, and on context cancellation; the caller decides
// what to do by checking its own context.
func (c *IMAPClient) Idle(ctx context.Context) error {
	if c.conn == nil {
		return apperrors.NewTransportError("not connected", nil)
	}

	idle, err := c.conn.Idle()
	if err != nil {
		return apperrors.NewTransportError("failed to start IDLE", err)
	}

	waitForIdleEvent(ctx, c.updates, c.idleTimeout())

	if err := idle.Close(); err != nil {
		return apperrors.NewTransportError("failed to stop IDLE", err)
	}
	if err := idle.Wait(); err != nil {
		return apperrors.NewTransportError("IDLE terminated abnormally", err)
	}
	return nil
}

// waitForIdleEvent blocks until the server signals mailbox activity, the
// idle timeout elapses or the context is cancelled, whichever comes first.
func waitForIdleEvent(ctx context.Context, updates <-chan struct{}, timeout time.Duration) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	case <-updates:
	}
}

func (c *IMAPClient) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
