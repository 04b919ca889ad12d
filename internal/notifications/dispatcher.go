package notifications

import (
	"context"

	"seatflow/pkg/logger"
)

// Dispatcher hands a notification to a transport after a state transition has committed
type Dispatcher interface {
	Dispatch(ctx context.Context, n *Notification) error
	Close() error
}

// Notify dispatches and logs failures. The transition that produced n has
// already been committed, so the caller's result does not depend on delivery.
func Notify(ctx context.Context, d Dispatcher, n *Notification) {
	if d == nil || n == nil {
		return
	}
	if err := d.Dispatch(ctx, n); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "notification dispatch failed", err, map[string]interface{}{
			"notification_id": n.ID.String(),
			"kind":            string(n.Kind),
			"event_id":        n.EventID.String(),
		})
	}
}

// LogDispatcher renders the message inline and hands it to a Sender. Used when no broker is configured.
type LogDispatcher struct {
	renderer *Renderer
	sender   Sender
}

func NewLogDispatcher(renderer *Renderer, sender Sender) *LogDispatcher {
	return &LogDispatcher{renderer: renderer, sender: sender}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, n *Notification) error {
	msg, err := d.renderer.Render(n)
	if err != nil {
		return err
	}
	if err := d.sender.Send(ctx, msg); err != nil {
		return err
	}
	logger.GetDefault().LogNotificationDispatched(ctx, n.ID.String(), string(n.Kind), "log")
	return nil
}

func (d *LogDispatcher) Close() error { return nil }
