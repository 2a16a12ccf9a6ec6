package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vo "github.com/leaders-st/helpdesk/internal/domain/ticket/valueobjects"
)

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		body    string
		want    vo.Priority
	}{
		{"urgent in subject", "URGENT: server down", "", vo.PriorityHigh},
		{"asap in body", "help", "need this fixed asap", vo.PriorityHigh},
		{"critical mixed case", "Critical outage", "", vo.PriorityHigh},
		{"medium keywords only", "review", "important, please review soon", vo.PriorityMedium},
		{"important in subject", "Important question", "", vo.PriorityMedium},
		{"plain inquiry", "question about invoice", "just wondering", vo.PriorityLow},
		{"empty message", "", "", vo.PriorityLow},
		{"high wins over medium", "urgent and important", "", vo.PriorityHigh},
		{"keyword inside word still matches", "as soon as possible", "", vo.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPriority(tt.subject, tt.body))
		})
	}
}
