package mail

// Filter decides whether an inbound message should produce a ticket. It is a
// pure function of the message; construction normalizes the configured
// addresses once.
type Filter struct {
	inboxAddress   string
	allowedSenders map[string]struct{}
	allowedDomains map[string]struct{}
}

func NewFilter(inboxAddress string, allowedSenders, allowedDomains []string) *Filter {
	f := &Filter{
		inboxAddress:   NormalizeAddress(inboxAddress),
		allowedSenders: make(map[string]struct{}, len(allowedSenders)),
		allowedDomains: make(map[string]struct{}, len(allowedDomains)),
	}
	for _, s := range allowedSenders {
		f.allowedSenders[NormalizeAddress(s)] = struct{}{}
	}
	for _, d := range allowedDomains {
		f.allowedDomains[NormalizeAddress(d)] = struct{}{}
	}
	return f
}

// ShouldCreateTicket applies the ingestion rules in order: the message must
// be addressed to the ticket inbox, the sender must be allow-listed (by
// address or domain), and replies are always rejected.
func (f *Filter) ShouldCreateTicket(m *InboundMessage) bool {
	if !f.sentToInbox(m.Recipients) {
		return false
	}

	sender := NormalizeAddress(m.Sender)
	if _, ok := f.allowedSenders[sender]; !ok {
		if _, ok := f.allowedDomains[Domain(sender)]; !ok {
			return false
		}
	}

	return !m.IsReply()
}

func (f *Filter) sentToInbox(recipients []string) bool {
	for _, r := range recipients {
		if NormalizeAddress(r) == f.inboxAddress {
			return true
		}
	}
	return false
}
