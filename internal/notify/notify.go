// Package notify raises desktop notifications for delivery failures.
package notify

import (
	"github.com/gen2brain/beeep"

	"promptbridge/internal/logging"
)

func init() {
	beeep.AppName = "PromptBridge"
}

// DeliveryFailed tells the operator their prompt never reached the
// terminal. Notification failure is only logged; the delivery error
// already went to the caller.
func DeliveryFailed(reason string) {
	if err := beeep.Alert("Delivery failed", reason, ""); err != nil {
		logging.Debug("notification failed", "error", err)
	}
}

// Info raises a low-priority notification.
func Info(title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		logging.Debug("notification failed", "error", err)
	}
}
