package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"seatflow/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitDispatcher publishes notifications to a durable RabbitMQ queue
type RabbitDispatcher struct {
	url   string
	queue string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *logger.Logger
}

func NewRabbitDispatcher(url, queue string) (*RabbitDispatcher, error) {
	d := &RabbitDispatcher{url: url, queue: queue, log: logger.GetDefault()}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ensureConnection(); err != nil {
		return nil, err
	}
	return d, nil
}

// ensureConnection redials after the broker dropped the connection. Callers hold mu.
func (d *RabbitDispatcher) ensureConnection() error {
	if d.conn != nil && !d.conn.IsClosed() && d.channel != nil && !d.channel.IsClosed() {
		return nil
	}

	conn, err := amqp.Dial(d.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := declareQueue(ch, d.queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	d.conn = conn
	d.channel = ch
	return nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return q, fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	return q, nil
}

func (d *RabbitDispatcher) Dispatch(ctx context.Context, n *Notification) error {
	body, err := n.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ensureConnection(); err != nil {
		return err
	}

	err = d.channel.PublishWithContext(ctx,
		"",      // default exchange
		d.queue, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    n.ID.String(),
			Type:         string(n.Kind),
			Timestamp:    n.CreatedAt,
			Headers:      amqp.Table{"event_id": n.EventID.String(), "session_id": n.SessionID},
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	d.log.LogNotificationDispatched(ctx, n.ID.String(), string(n.Kind), "rabbitmq")
	return nil
}

func (d *RabbitDispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.channel != nil {
		_ = d.channel.Close()
	}
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}

// RabbitConsumer drains the notification queue into a Processor
type RabbitConsumer struct {
	url       string
	queue     string
	processor *Processor
	log       *logger.Logger
	done      chan struct{}
}

func NewRabbitConsumer(url, queue string, processor *Processor) *RabbitConsumer {
	return &RabbitConsumer{
		url:       url,
		queue:     queue,
		processor: processor,
		log:       logger.GetDefault(),
		done:      make(chan struct{}),
	}
}

// Start consumes until ctx is cancelled, reconnecting with a short delay after failures
func (rc *RabbitConsumer) Start(ctx context.Context) {
	go func() {
		defer close(rc.done)
		for {
			if err := rc.consume(ctx); err != nil {
				rc.log.WithError(err).Warn("rabbitmq consumer stopped, reconnecting")
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
			}
		}
	}()
}

// Wait blocks until the consume loop has exited
func (rc *RabbitConsumer) Wait() {
	<-rc.done
}

func (rc *RabbitConsumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(rc.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if _, err := declareQueue(ch, rc.queue); err != nil {
		return err
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return fmt.Errorf("rabbitmq qos: %w", err)
	}

	deliveries, err := ch.Consume(rc.queue, "seatflow-notifications", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("rabbitmq delivery channel closed")
			}
			if err := rc.processor.Process(ctx, d.Body); err != nil {
				rc.log.WithError(err).Error("notification processing failed", "message_id", d.MessageId)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}
