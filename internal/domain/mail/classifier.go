package mail

import (
	"strings"

	vo "github.com/leaders-st/helpdesk/internal/domain/ticket/valueobjects"
)

// Keyword tiers are checked high-first; the first matching tier wins.
var (
	highKeywords   = []string{"urgent", "asap", "critical"}
	mediumKeywords = []string{"important", "soon"}
)

// ClassifyPriority derives a priority tier from subject and body by
// case-insensitive keyword match on their concatenation.
func ClassifyPriority(subject, body string) vo.Priority {
	text := strings.ToLower(subject + " " + body)

	for _, k := range highKeywords {
		if strings.Contains(text, k) {
			return vo.PriorityHigh
		}
	}
	for _, k := range mediumKeywords {
		if strings.Contains(text, k) {
			return vo.PriorityMedium
		}
	}
	return vo.PriorityLow
}
