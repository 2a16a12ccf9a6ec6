package mailbox

import (
	"fmt"
	"html"
	"io"
	"strings"

	gomessage "github.com/emersion/go-message"
	// Register extended charsets so non-UTF-8 messages decode.
	_ "github.com/emersion/go-message/charset"
	gomail "github.com/emersion/go-message/mail"
	"github.com/microcosm-cc/bluemonday"

	"github.com/leaders-st/helpdesk/internal/domain/mail"
	apperrors "github.com/leaders-st/helpdesk/internal/shared/errors"
)

const (
	noSubjectPlaceholder = "(No Subject)"
	noBodyPlaceholder    = "(No content)"
)

var htmlStripper = bluemonday.StrictPolicy()

// ParseMessage converts a raw RFC 5322 message into an InboundMessage.
// Messages without a Message-ID get a synthesized one derived from the UID,
// which keeps deduplication stable across re-deliveries of the same UID.
func ParseMessage(raw io.Reader, uid uint32) (*mail.InboundMessage, error) {
	mr, err := gomail.CreateReader(raw)
	if err != nil {
		return nil, apperrors.NewMalformedMessageError(
			fmt.Sprintf("unreadable message at uid %d", uid), err.Error())
	}

	h := mr.Header

	msg := &mail.InboundMessage{UID: uid}

	msg.MessageID, _ = h.MessageID()
	if msg.MessageID == "" {
		msg.MessageID = fmt.Sprintf("fallback-%d", uid)
	}

	if from, err := h.AddressList("From"); err == nil && len(from) > 0 {
		msg.Sender = from[0].Address
	}
	if msg.Sender == "" {
		return nil, apperrors.NewMalformedMessageError(
			fmt.Sprintf("message %s has no usable From address", msg.MessageID))
	}

	for _, field := range []string{"To", "Cc", "Delivered-To"} {
		if addrs, err := h.AddressList(field); err == nil {
			for _, a := range addrs {
				msg.Recipients = append(msg.Recipients, a.Address)
			}
		}
	}

	msg.Subject, _ = h.Subject()
	if strings.TrimSpace(msg.Subject) == "" {
		msg.Subject = noSubjectPlaceholder
	}

	if ids, err := h.MsgIDList("In-Reply-To"); err == nil && len(ids) > 0 {
		msg.InReplyTo = ids[0]
	}
	if ids, err := h.MsgIDList("References"); err == nil {
		msg.References = strings.Join(ids, " ")
	}

	msg.Body = extractBody(mr)
	if strings.TrimSpace(msg.Body) == "" {
		msg.Body = noBodyPlaceholder
	}

	return msg, nil
}

// extractBody prefers the first text/plain part. When the message is
// HTML-only the markup is stripped down to its text content.
func extractBody(mr *gomail.Reader) string {
	var htmlFallback string

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			if gomessage.IsUnknownCharset(err) {
				continue
			}
			break
		}

		inline, ok := part.Header.(*gomail.InlineHeader)
		if !ok {
			continue
		}

		mediaType, _, err := inline.ContentType()
		if err != nil {
			continue
		}

		switch mediaType {
		case "text/plain":
			body, err := io.ReadAll(part.Body)
			if err == nil {
				return strings.TrimSpace(string(body))
			}
		case "text/html":
			if htmlFallback == "" {
				body, err := io.ReadAll(part.Body)
				if err == nil {
					htmlFallback = string(body)
				}
			}
		}
	}

	if htmlFallback != "" {
		stripped := htmlStripper.Sanitize(htmlFallback)
		return strings.TrimSpace(html.UnescapeString(stripped))
	}
	return ""
}
