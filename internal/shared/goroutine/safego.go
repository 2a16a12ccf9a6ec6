// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/leaders-st/helpdesk/internal/shared/logger"
)

// SafeGo launches a goroutine with panic recovery. A panic in the mail
// listener or the SLA scheduler must not take down the whole process, so it
// is caught and logged with a stack trace instead.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
