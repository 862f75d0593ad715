package notifications

import (
	"context"
	"roost/pkg/config"
	"roost/pkg/kafka"
	kafka_config "roost/pkg/kafka/config"
	kafka_middleware "roost/pkg/kafka/middleware"
	"roost/pkg/logger"
	"roost/pkg/model"
)

const sourceService = "bookings-service"

// Notifier publishes booking lifecycle events. Publishing is best-effort:
// admission outcomes are already committed before events go out, so a broker
// outage degrades notifications but never bookings.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingStatusChanged(ctx context.Context, booking *model.Booking, previousStatus string)
	Close() error
}

type kafkaNotifier struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaNotifier(cfg *config.Config, kafkaCfg *kafka_config.Config, log *logger.Logger) (Notifier, error) {
	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQ)
	if err != nil {
		return nil, err
	}

	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware())
	}

	return &kafkaNotifier{
		producer: producer,
		log:      log,
	}, nil
}

func (n *kafkaNotifier) BookingCreated(ctx context.Context, booking *model.Booking) {
	event := NewBookingCreatedEvent(booking)

	msg := kafka.NewMessage().
		WithKey(booking.PropertyID).
		WithValue(event).
		WithEventID("").
		WithEventType(EventBookingCreated).
		WithCorrelationID(booking.ID).
		WithSource(sourceService).
		Build()

	if err := n.producer.Publish(ctx, msg); err != nil {
		n.log.Error("Failed to publish booking created event",
			"booking_id", booking.ID,
			"property_id", booking.PropertyID,
			"error", err,
		)
	}
}

func (n *kafkaNotifier) BookingStatusChanged(ctx context.Context, booking *model.Booking, previousStatus string) {
	event := NewBookingStatusChangedEvent(booking, previousStatus)

	msg := kafka.NewMessage().
		WithKey(booking.PropertyID).
		WithValue(event).
		WithEventID("").
		WithEventType(EventBookingStatusChanged).
		WithCorrelationID(booking.ID).
		WithSource(sourceService).
		Build()

	if err := n.producer.Publish(ctx, msg); err != nil {
		n.log.Error("Failed to publish booking status changed event",
			"booking_id", booking.ID,
			"previous_status", previousStatus,
			"new_status", booking.Status,
			"error", err,
		)
	}
}

func (n *kafkaNotifier) Close() error {
	return n.producer.Close()
}

// NoopNotifier is used when event publishing is disabled.
type NoopNotifier struct{}

func (NoopNotifier) BookingCreated(context.Context, *model.Booking)               {}
func (NoopNotifier) BookingStatusChanged(context.Context, *model.Booking, string) {}
func (NoopNotifier) Close() error                                                 { return nil }
