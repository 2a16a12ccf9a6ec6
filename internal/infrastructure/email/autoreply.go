// Package email sends the confirmation auto-reply for newly opened tickets.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/leaders-st/helpdesk/internal/shared/config"
	"github.com/leaders-st/helpdesk/internal/shared/errors"
	"github.com/leaders-st/helpdesk/internal/shared/logger"
)

// AutoReplySender confirms ticket creation to the original requester.
// Delivery is best effort: a failed reply never fails ticket ingestion.
type AutoReplySender interface {
	SendTicketReceived(to, ticketCode, originalSubject, originalMessageID string) error
}

// SMTPAutoReplier sends auto-replies over SMTP.
type SMTPAutoReplier struct {
	cfg    *config.AutoReplyConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewSMTPAutoReplier(cfg *config.AutoReplyConfig, log logger.Interface) *SMTPAutoReplier {
	return &SMTPAutoReplier{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		logger: log.Named("autoreply"),
	}
}

// SendTicketReceived sends the confirmation. The reply threads under the
// requester's original message and is marked auto-submitted so other
// autoresponders will not answer it back.
func (s *SMTPAutoReplier) SendTicketReceived(to, ticketCode, originalSubject, originalMessageID string) error {
	if !s.cfg.Enabled {
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	m.SetHeader("To", to)
	if s.cfg.ReplyTo != "" {
		m.SetHeader("Reply-To", s.cfg.ReplyTo)
	}
	m.SetHeader("Subject", replySubject(originalSubject))
	if originalMessageID != "" {
		m.SetHeader("In-Reply-To", originalMessageID)
		m.SetHeader("References", originalMessageID)
	}
	m.SetHeader("Auto-Submitted", "auto-replied")
	m.SetHeader("X-Auto-Response-Suppress", "All")

	m.SetBody("text/plain", fmt.Sprintf(`Hello,

We have received your request and opened ticket %s for it.
Our team will get back to you as soon as possible. Please keep the
ticket number in any follow-up correspondence.

This is an automated confirmation, there is no need to reply.
`, ticketCode))

	if err := s.dialer.DialAndSend(m); err != nil {
		return errors.NewExternalChannelError(fmt.Sprintf("failed to send auto-reply to %s", to), err)
	}

	s.logger.Infow("auto-reply sent", "to", to, "ticket_code", ticketCode)
	return nil
}

func replySubject(original string) string {
	if original == "" || original == "(No Subject)" {
		return "Your support request has been received"
	}
	return "Re: " + original
}

// NoopAutoReplier is used when auto-replies are disabled in configuration.
type NoopAutoReplier struct{}

func (NoopAutoReplier) SendTicketReceived(string, string, string, string) error { return nil }
