package ports

import "context"

// Notifier delivers a message to an address. Delivery is at-least-once and
// decoupled from the caller: a nil return means the message was accepted for
// delivery, not that it arrived.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
