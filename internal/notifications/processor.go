package notifications

import (
	"context"
	"fmt"
	"time"

	"seatflow/pkg/logger"
)

// Processor decodes a queued notification, renders it and sends it with exponential backoff
type Processor struct {
	renderer   *Renderer
	sender     Sender
	maxRetries int
	backoff    time.Duration
	log        *logger.Logger
}

func NewProcessor(renderer *Renderer, sender Sender, maxRetries int, backoff time.Duration) *Processor {
	if backoff <= 0 {
		backoff = time.Second
	}
	return &Processor{
		renderer:   renderer,
		sender:     sender,
		maxRetries: maxRetries,
		backoff:    backoff,
		log:        logger.GetDefault(),
	}
}

// Process handles one raw message body
func (p *Processor) Process(ctx context.Context, body []byte) error {
	n, err := FromJSON(body)
	if err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	msg, err := p.renderer.Render(n)
	if err != nil {
		// unrenderable messages will never succeed
		p.log.ErrorWithContext(ctx, "dropping notification", err, map[string]interface{}{"notification_id": n.ID.String()})
		return nil
	}

	return p.sendWithRetry(ctx, msg)
}

func (p *Processor) sendWithRetry(ctx context.Context, msg *Message) error {
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		err := p.sender.Send(ctx, msg)
		if err == nil {
			return nil
		}

		if attempt == p.maxRetries {
			return fmt.Errorf("send notification %s after %d attempts: %w", msg.NotificationID, attempt+1, err)
		}

		delay := p.backoff * time.Duration(1<<attempt)
		p.log.Warn("retrying notification", "notification_id", msg.NotificationID, "attempt", attempt+1, "delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
