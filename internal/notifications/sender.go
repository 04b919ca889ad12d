package notifications

import (
	"context"
	"net/url"
	"strings"

	"seatflow/pkg/logger"
)

// Sender delivers a rendered message
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// WhatsAppLink builds the click-to-chat link for a message
func WhatsAppLink(msg *Message) string {
	text := strings.ReplaceAll(url.QueryEscape(msg.Text), "+", "%20")
	return "https://wa.me/" + strings.TrimPrefix(msg.Phone, "+") + "?text=" + text
}

// LinkSender logs a wa.me link for each message. Operators open the link to send it.
type LinkSender struct {
	log *logger.Logger
}

func NewLinkSender(l *logger.Logger) *LinkSender {
	if l == nil {
		l = logger.GetDefault()
	}
	return &LinkSender{log: l}
}

func (s *LinkSender) Send(ctx context.Context, msg *Message) error {
	s.log.InfoWithContext(ctx, "whatsapp message ready", map[string]interface{}{
		"notification_id": msg.NotificationID,
		"kind":            string(msg.Kind),
		"phone":           msg.Phone,
		"link":            WhatsAppLink(msg),
	})
	return nil
}
