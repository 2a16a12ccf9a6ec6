// Package mail holds the pure ingestion rules: address normalization, the
// ticket-generation filter and the priority classifier. Nothing in this
// package touches the network or the database.
package mail

import "strings"

// InboundMessage is the parsed form of one fetched email, reduced to the
// fields the ingestion rules need.
type InboundMessage struct {
	// MessageID is the stable external identifier used for deduplication.
	// When the message carries no Message-ID header the transport synthesizes
	// one from its UID, so it is always non-empty.
	MessageID  string
	Sender     string
	Recipients []string
	Subject    string
	Body       string
	InReplyTo  string
	References string

	// UID is the message's transport-level sequence position, used to
	// advance the watermark.
	UID uint32
}

// IsReply reports whether the message is a reply to an earlier email.
// Threading headers and a "re:" subject prefix all count; replies never
// create new tickets.
func (m *InboundMessage) IsReply() bool {
	if m.InReplyTo != "" || m.References != "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(m.Subject)), "re:")
}

// invisible characters seen in the wild inside sender addresses: plain
// spaces, zero-width space/non-joiner/joiner and the word joiner.
var invisibleReplacer = strings.NewReplacer(
	" ", "",
	"​", "",
	"‌", "",
	"‍", "",
	"⁠", "",
)

// NormalizeAddress lower-cases, trims and strips invisible characters from an
// email address so allow-list comparisons are stable.
func NormalizeAddress(addr string) string {
	addr = strings.ToLower(strings.TrimSpace(addr))
	return invisibleReplacer.Replace(addr)
}

// Domain returns the part after the last "@", normalized; empty when the
// address has no domain.
func Domain(addr string) string {
	addr = NormalizeAddress(addr)
	idx := strings.LastIndex(addr, "@")
	if idx < 0 || idx == len(addr)-1 {
		return ""
	}
	return addr[idx+1:]
}
