package solana

import "context"

// LogSubscriber defines the Solana WebSocket log subscription interface.
type LogSubscriber interface {
	// SubscribeLogs subscribes to logs mentioning the given address. The
	// returned channel is closed when the client shuts down.
	SubscribeLogs(ctx context.Context, mentions string) (<-chan LogNotification, error)

	// Close closes the WebSocket connection.
	Close() error
}

// LogNotification represents a logs subscription message.
type LogNotification struct {
	Signature string
	Slot      int64
	Logs      []string
	Err       interface{}
}
