package ticket

import (
	"fmt"
	"time"

	vo "github.com/leaders-st/helpdesk/internal/domain/ticket/valueobjects"
)

// SLAPolicy maps each priority to its service-level deadline and defines the
// warning window as a fraction of that deadline.
type SLAPolicy struct {
	deadlines    map[vo.Priority]time.Duration
	warningRatio float64
}

// DefaultSLAPolicy returns the stock policy: High 24h, Medium 48h, Low 72h,
// warning when remaining time drops to 20% of the deadline.
func DefaultSLAPolicy() SLAPolicy {
	return SLAPolicy{
		deadlines: map[vo.Priority]time.Duration{
			vo.PriorityHigh:   24 * time.Hour,
			vo.PriorityMedium: 48 * time.Hour,
			vo.PriorityLow:    72 * time.Hour,
		},
		warningRatio: 0.2,
	}
}

// NewSLAPolicy builds a policy from configured deadlines. Zero durations fall
// back to the defaults for that priority.
func NewSLAPolicy(high, medium, low time.Duration, warningRatio float64) (SLAPolicy, error) {
	if warningRatio <= 0 || warningRatio >= 1 {
		return SLAPolicy{}, fmt.Errorf("warning ratio must be in (0, 1), got %v", warningRatio)
	}

	p := DefaultSLAPolicy()
	p.warningRatio = warningRatio
	if high > 0 {
		p.deadlines[vo.PriorityHigh] = high
	}
	if medium > 0 {
		p.deadlines[vo.PriorityMedium] = medium
	}
	if low > 0 {
		p.deadlines[vo.PriorityLow] = low
	}
	return p, nil
}

// Deadline returns the maximum allowed open duration for a priority.
func (p SLAPolicy) Deadline(priority vo.Priority) time.Duration {
	if d, ok := p.deadlines[priority]; ok {
		return d
	}
	return p.deadlines[vo.PriorityLow]
}

// WarningWindow returns the remaining-time threshold below which a warning
// alert fires.
func (p SLAPolicy) WarningWindow(priority vo.Priority) time.Duration {
	return time.Duration(float64(p.Deadline(priority)) * p.warningRatio)
}

// Remaining returns deadline minus elapsed age; negative once overdue.
func (p SLAPolicy) Remaining(priority vo.Priority, age time.Duration) time.Duration {
	return p.Deadline(priority) - age
}

// IsOverdue reports whether a ticket of the given priority and age has
// breached its deadline.
func (p SLAPolicy) IsOverdue(priority vo.Priority, age time.Duration) bool {
	return age > p.Deadline(priority)
}

// InWarningWindow reports whether remaining time is positive but within the
// warning threshold.
func (p SLAPolicy) InWarningWindow(priority vo.Priority, age time.Duration) bool {
	remaining := p.Remaining(priority, age)
	return remaining > 0 && remaining <= p.WarningWindow(priority)
}
