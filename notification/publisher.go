// Package notification publishes booking lifecycle events to Kafka for
// downstream consumers (email, audit). Publishing is fire-and-forget and
// never affects the outcome of the booking operation itself.
package notification

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/daniil-5/hotelbooking/model"
	"github.com/segmentio/kafka-go"
)

const (
	TypeBookingCreated       = "booking_created"
	TypeBookingStatusChanged = "booking_status_changed"
	TypeBookingCancelled     = "booking_cancelled"
)

// BookingEvent is the message sent to the notification topic.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	HotelID    string    `json:"hotel_id"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher writes booking events to Kafka. A nil Publisher is valid and
// publishes nothing, so notification stays optional.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishBookingEvent sends one event. Failures are logged and swallowed.
func (p *Publisher) PublishBookingEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if p == nil {
		return
	}

	event := BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		HotelID:    booking.HotelID,
		Status:     booking.Status.String(),
		TotalPrice: booking.TotalPrice,
		Timestamp:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal notification event: %v", err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(booking.ID),
		Value: data,
	})
	if err != nil {
		log.Printf("Failed to publish notification event for booking %s: %v", booking.ID, err)
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
