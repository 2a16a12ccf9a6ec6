package mailbox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/leaders-st/helpdesk/internal/shared/errors"
)

const plainMessage = "From: User <user@kplitigators.com>\r\n" +
	"To: clientsupport@leaders.st\r\n" +
	"Subject: URGENT: server down\r\n" +
	"Message-ID: <abc123@mail.example>\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"The production server is not responding.\r\n"

func TestParseMessage_Plain(t *testing.T) {
	msg, err := ParseMessage(strings.NewReader(plainMessage), 17)
	require.NoError(t, err)

	assert.Equal(t, "abc123@mail.example", msg.MessageID)
	assert.Equal(t, "user@kplitigators.com", msg.Sender)
	assert.Equal(t, []string{"clientsupport@leaders.st"}, msg.Recipients)
	assert.Equal(t, "URGENT: server down", msg.Subject)
	assert.Equal(t, "The production server is not responding.", msg.Body)
	assert.Equal(t, uint32(17), msg.UID)
	assert.False(t, msg.IsReply())
}

func TestParseMessage_MissingMessageID(t *testing.T) {
	raw := "From: user@kplitigators.com\r\n" +
		"To: clientsupport@leaders.st\r\n" +
		"Subject: hello\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"body\r\n"

	msg, err := ParseMessage(strings.NewReader(raw), 42)
	require.NoError(t, err)
	assert.Equal(t, "fallback-42", msg.MessageID)
}

func TestParseMessage_EmptySubjectAndBody(t *testing.T) {
	raw := "From: user@kplitigators.com\r\n" +
		"To: clientsupport@leaders.st\r\n" +
		"Message-ID: <e@x>\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"\r\n"

	msg, err := ParseMessage(strings.NewReader(raw), 1)
	require.NoError(t, err)
	assert.Equal(t, "(No Subject)", msg.Subject)
	assert.Equal(t, "(No content)", msg.Body)
}

func TestParseMessage_Reply(t *testing.T) {
	raw := "From: user@kplitigators.com\r\n" +
		"To: clientsupport@leaders.st\r\n" +
		"Subject: Re: my ticket\r\n" +
		"Message-ID: <r2@x>\r\n" +
		"In-Reply-To: <r1@x>\r\n" +
		"References: <r0@x> <r1@x>\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"thanks\r\n"

	msg, err := ParseMessage(strings.NewReader(raw), 2)
	require.NoError(t, err)
	assert.Equal(t, "r1@x", msg.InReplyTo)
	assert.Contains(t, msg.References, "r0@x")
	assert.True(t, msg.IsReply())
}

func TestParseMessage_MultipartPrefersPlain(t *testing.T) {
	raw := "From: user@kplitigators.com\r\n" +
		"To: clientsupport@leaders.st\r\n" +
		"Subject: multipart\r\n" +
		"Message-ID: <mp@x>\r\n" +
		"Content-Type: multipart/alternative; boundary=b1\r\n" +
		"\r\n" +
		"--b1\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"plain version\r\n" +
		"--b1\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>html version</p>\r\n" +
		"--b1--\r\n"

	msg, err := ParseMessage(strings.NewReader(raw), 3)
	require.NoError(t, err)
	assert.Equal(t, "plain version", msg.Body)
}

func TestParseMessage_HTMLOnlyStripsMarkup(t *testing.T) {
	raw := "From: user@kplitigators.com\r\n" +
		"To: clientsupport@leaders.st\r\n" +
		"Subject: html only\r\n" +
		"Message-ID: <h@x>\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<html><body><p>Please &amp; thank you</p><script>evil()</script></body></html>\r\n"

	msg, err := ParseMessage(strings.NewReader(raw), 4)
	require.NoError(t, err)
	assert.Contains(t, msg.Body, "Please & thank you")
	assert.NotContains(t, msg.Body, "<p>")
	assert.NotContains(t, msg.Body, "evil()")
}

func TestParseMessage_NoFromAddress(t *testing.T) {
	raw := "To: clientsupport@leaders.st\r\n" +
		"Subject: anonymous\r\n" +
		"Message-ID: <a@x>\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"body\r\n"

	_, err := ParseMessage(strings.NewReader(raw), 5)
	require.Error(t, err)
	assert.True(t, apperrors.IsMalformedMessageError(err))
}

func TestParseMessage_CcRecipientsIncluded(t *testing.T) {
	raw := "From: user@kplitigators.com\r\n" +
		"To: someone@else.example\r\n" +
		"Cc: clientsupport@leaders.st\r\n" +
		"Subject: cc route\r\n" +
		"Message-ID: <cc@x>\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"body\r\n"

	msg, err := ParseMessage(strings.NewReader(raw), 6)
	require.NoError(t, err)
	assert.Contains(t, msg.Recipients, "clientsupport@leaders.st")
	assert.Contains(t, msg.Recipients, "someone@else.example")
}
