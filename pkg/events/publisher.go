package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"stagetime/pkg/logger"
	"stagetime/pkg/model"
)

const publishTimeout = 5 * time.Second

// Publisher emits booking transition events to the surrounding application.
// Emission is best-effort: the scheduling core never blocks on it.
type Publisher interface {
	PublishTransition(booking *model.Booking, from, to model.BookingStatus)
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewKafkaPublisher builds a publisher writing to the given topic. Events
// are keyed by booking ID so transitions of one booking stay ordered.
func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) (Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error(fmt.Sprintf("kafka: "+msg, args...))
		}),
	}

	return &kafkaPublisher{
		writer: writer,
		log:    log,
	}, nil
}

func (p *kafkaPublisher) PublishTransition(booking *model.Booking, from, to model.BookingStatus) {
	event := model.TransitionEvent{
		ID:         uuid.NewString(),
		BookingID:  booking.ID,
		OwnerID:    booking.OwnerID,
		FromStatus: from,
		ToStatus:   to,
		Timestamp:  time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to encode transition event", "booking_id", booking.ID, "error", err)
		return
	}

	// Fire-and-forget: publish failures are logged, never surfaced.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		err := p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(booking.ID),
			Value: payload,
			Time:  event.Timestamp,
		})
		if err != nil {
			p.log.Error("Failed to publish transition event",
				"event_id", event.ID,
				"booking_id", booking.ID,
				"from_status", from,
				"to_status", to,
				"error", err,
			)
			return
		}
		p.log.Debug("Transition event published",
			"event_id", event.ID,
			"booking_id", booking.ID,
			"to_status", to,
		)
	}()
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransition(*model.Booking, model.BookingStatus, model.BookingStatus) {}

func (NoopPublisher) Close() error { return nil }
