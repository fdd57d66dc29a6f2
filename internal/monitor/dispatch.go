package monitor

import (
	"context"
	"log/slog"
)

// Dispatcher hands notifications to the sender one at a time, in the order
// produced. Delivery is at-most-once and best-effort: a failed send is
// logged and the batch continues. No retry, no queueing.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher over the given sender.
func NewDispatcher(sender Sender, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{sender: sender, logger: logger}
}

// Dispatch delivers each notification independently and reports how many
// sends succeeded and failed.
func (d *Dispatcher) Dispatch(ctx context.Context, records []Notification) (sent, failed int) {
	for _, n := range records {
		if err := d.sender.Send(ctx, n.Text()); err != nil {
			d.logger.Warn("notification delivery failed",
				"category", n.Category, "title", n.Title, "error", err)
			failed++
			continue
		}
		sent++
	}
	return sent, failed
}
