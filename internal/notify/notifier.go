// Package notify delivers alert text to a chat destination.
package notify

import (
	"context"
	"log"
)

// Notifier sends one alert. Delivery is fire-and-forget: callers log
// failures and never retry.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// LogNotifier writes alerts to a logger instead of a chat. Used for dry
// runs and tests.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send logs the alert text.
func (n *LogNotifier) Send(_ context.Context, text string) error {
	n.logger.Printf("alert:\n%s", text)
	return nil
}
