package main

import (
	"context"
	"log/slog"
	"time"

	"seatflow/internal/notifications"
	"seatflow/internal/shared/config"
	"seatflow/pkg/logger"
)

// notificationPipeline owns the dispatcher handed to the domain and the
// optional consumer that turns queued notifications into WhatsApp links
type notificationPipeline struct {
	broker     string
	dispatcher notifications.Dispatcher
	kafka      *notifications.KafkaConsumer
	rabbit     *notifications.RabbitConsumer
}

func setupNotifications(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) *notificationPipeline {
	renderer := notifications.NewRenderer(cfg.Notifications.DefaultCountryCode, cfg.Notifications.OrganizerPhone)
	sender := notifications.NewLinkSender(appLogger)
	processor := notifications.NewProcessor(renderer, sender, cfg.Kafka.MaxRetries, 500*time.Millisecond)

	p := &notificationPipeline{broker: cfg.Notifications.Broker}

	switch cfg.Notifications.Broker {
	case "kafka":
		producerConfig := notifications.DefaultKafkaProducerConfig()
		producerConfig.Brokers = cfg.Kafka.Brokers
		producerConfig.Topic = cfg.Kafka.Topic
		dispatcher, err := notifications.NewKafkaDispatcher(producerConfig)
		if err != nil {
			appLogger.Error("kafka unavailable, notifications will only be logged", slog.Any("error", err))
			break
		}
		p.dispatcher = dispatcher

		if cfg.Notifications.StartConsumer {
			consumerConfig := notifications.DefaultConsumerConfig()
			consumerConfig.Brokers = cfg.Kafka.Brokers
			consumerConfig.GroupID = cfg.Kafka.ConsumerGroupID
			consumerConfig.Topics = []string{cfg.Kafka.Topic}
			consumer, err := notifications.NewKafkaConsumer(consumerConfig, processor)
			if err != nil {
				appLogger.Error("failed to start kafka notification consumer", slog.Any("error", err))
				break
			}
			consumer.Start(ctx, cfg.Kafka.ConsumerWorkers)
			p.kafka = consumer
		}

	case "rabbitmq":
		dispatcher, err := notifications.NewRabbitDispatcher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			appLogger.Error("rabbitmq unavailable, notifications will only be logged", slog.Any("error", err))
			break
		}
		p.dispatcher = dispatcher

		if cfg.Notifications.StartConsumer {
			p.rabbit = notifications.NewRabbitConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, processor)
			p.rabbit.Start(ctx)
		}
	}

	if p.dispatcher == nil {
		p.broker = "log"
		p.dispatcher = notifications.NewLogDispatcher(renderer, sender)
	}
	appLogger.Info("notification pipeline ready",
		slog.String("broker", p.broker),
		slog.Bool("consumer", p.kafka != nil || p.rabbit != nil),
	)
	return p
}

// shutdown expects the consumer context to be cancelled already or soon
func (p *notificationPipeline) shutdown(appLogger *logger.Logger) {
	if p.kafka != nil {
		if err := p.kafka.Stop(); err != nil {
			appLogger.Error("error stopping kafka consumer", slog.Any("error", err))
		}
	}
	if p.rabbit != nil {
		p.rabbit.Wait()
	}
	if err := p.dispatcher.Close(); err != nil {
		appLogger.Error("error closing notification dispatcher", slog.Any("error", err))
	}
}
