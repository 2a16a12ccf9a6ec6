package usecases

import "context"

// SeenCache is the optional fast-path for message deduplication. The ticket
// store's unique index remains authoritative; a cache miss just costs one
// insert attempt.
type SeenCache interface {
	Seen(ctx context.Context, messageID string) bool
	MarkSeen(ctx context.Context, messageID string) error
}

// AutoReplier confirms ticket creation to the requester. Best effort only.
type AutoReplier interface {
	SendTicketReceived(to, ticketCode, originalSubject, originalMessageID string) error
}
