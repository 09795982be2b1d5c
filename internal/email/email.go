package email

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/Domenick1991/flightdesk/internal/metrics"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Sender stands in for a mail gateway: it logs one message per recipient.
type Sender struct {
	log logrus.FieldLogger
}

func NewSender(log logrus.FieldLogger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	subject := Subject(event)
	for _, to := range event.Recipients {
		s.log.WithFields(logrus.Fields{
			"to":         to,
			"booking_id": event.BookingID,
			"flight":     event.FlightNumber,
		}).Info(subject)
	}
	metrics.NotificationsSent.WithLabelValues(event.Type).Inc()
	return nil
}

// HandleMessage decodes a booking event from msg and sends it. Undecodable
// messages are logged and skipped so one bad record cannot stall the consumer.
func (s *Sender) HandleMessage(ctx context.Context, msg kafkago.Message) error {
	var event kafka.BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"topic":  msg.Topic,
			"offset": msg.Offset,
		}).Warn("skipping undecodable booking event")
		return nil
	}
	return s.Send(ctx, event)
}

func Subject(event kafka.BookingEvent) string {
	switch event.Type {
	case kafka.EventBookingConfirmed:
		return fmt.Sprintf("Booking %s confirmed: flight %s, %d passenger(s), total %s",
			event.BookingID, event.FlightNumber, event.Passengers, FormatCents(event.TotalPriceCents))
	default:
		return fmt.Sprintf("Booking %s: %s", event.BookingID, event.Type)
	}
}

func FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
