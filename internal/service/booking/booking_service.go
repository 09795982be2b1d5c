package booking

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/Domenick1991/flightdesk/internal/metrics"
	"github.com/Domenick1991/flightdesk/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	UserID           string
	FlightID         string
	Passengers       int
	PassengerDetails []domain.Passenger
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	log                logrus.FieldLogger
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithCache(cache Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(log logrus.FieldLogger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	opts ...BookingServiceOption,
) *BookingService {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	service := &BookingService{
		bookings: bookings,
		flights:  flights,
		log:      discard,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking validates the request, prices it from the flight as read
// now, and hands it to the ledger, which reserves the seats and records the
// booking together. Nothing is recorded when any step fails.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.Passengers < 1 || len(input.PassengerDetails) != input.Passengers {
		metrics.BookingsRejected.WithLabelValues("invalid_passenger_details").Inc()
		return nil, domain.ErrInvalidPassengerDetails
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		metrics.BookingsRejected.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	booking := &domain.Booking{
		ID:               uuid.NewString(),
		UserID:           input.UserID,
		FlightID:         flight.ID,
		Passengers:       input.Passengers,
		PassengerDetails: append([]domain.Passenger(nil), input.PassengerDetails...),
		TotalPriceCents:  flight.PriceCents * int64(input.Passengers),
		Status:           domain.BookingStatusConfirmed,
		CreatedAt:        s.now().UTC(),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		metrics.BookingsRejected.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	metrics.SeatsReserved.Add(float64(booking.Passengers))

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.log.WithError(err).Warn("failed to invalidate flights cache")
		}
	}
	if err := s.publish(ctx, kafka.NewBookingEvent(kafka.EventBookingConfirmed, booking, flight)); err != nil {
		s.log.WithError(err).WithField("booking_id", booking.ID).Warn("failed to publish booking event")
	}
	return booking, nil
}

func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) publish(ctx context.Context, event kafka.BookingEvent) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, event.BookingID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, event.BookingID, event)
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "flight_not_found"
	case errors.Is(err, domain.ErrInsufficientCapacity):
		return "insufficient_capacity"
	case errors.Is(err, domain.ErrInvalidSeatCount):
		return "invalid_passenger_details"
	default:
		return "error"
	}
}

var _ BookingUseCase = (*BookingService)(nil)
