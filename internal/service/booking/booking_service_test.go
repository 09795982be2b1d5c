package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/Domenick1991/flightdesk/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ReserveSeats(ctx context.Context, flightID string, count int) error {
	args := m.Called(ctx, flightID, count)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func passengers(n int) []domain.Passenger {
	out := make([]domain.Passenger, n)
	for i := range out {
		out[i] = domain.Passenger{FirstName: "P", LastName: "X", Email: "p@example.com", Phone: "555"}
	}
	return out
}

func newMemoryService(seats int) (*BookingService, *memory.Store) {
	store := memory.NewStore([]domain.Flight{{
		ID: "F1", FlightNumber: "AD101", PriceCents: 29900, TotalSeats: seats, AvailableSeats: seats,
	}})
	return NewBookingService(store.Bookings(), store.Flights()), store
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	fixed := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	service := NewBookingService(mockBookingRepo, mockFlightRepo,
		WithCache(mockCache),
		WithProducer(mockProducer, "bookings"),
		WithNotificationsTopic("notifications"),
	)
	service.now = func() time.Time { return fixed }

	ctx := context.Background()
	flight := &domain.Flight{ID: "F1", FlightNumber: "AD101", PriceCents: 29900, TotalSeats: 10, AvailableSeats: 10}

	mockFlightRepo.On("GetByID", ctx, "F1").Return(flight, nil).Once()
	mockBookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()
	mockProducer.On("Publish", ctx, "bookings", mock.Anything, mock.AnythingOfType("kafka.BookingEvent")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "notifications", mock.Anything, mock.AnythingOfType("kafka.BookingEvent")).Return(nil).Once()

	booking, err := service.CreateBooking(ctx, CreateBookingInput{
		UserID: "U1", FlightID: "F1", Passengers: 2, PassengerDetails: passengers(2),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "U1", booking.UserID)
	assert.Equal(t, int64(59800), booking.TotalPriceCents)
	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, fixed, booking.CreatedAt)

	event := mockProducer.Calls[0].Arguments.Get(3).(kafka.BookingEvent)
	assert.Equal(t, kafka.EventBookingConfirmed, event.Type)
	assert.Equal(t, booking.ID, event.BookingID)
	assert.Equal(t, "AD101", event.FlightNumber)

	mockFlightRepo.AssertExpectations(t)
	mockBookingRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_PriceSnapshot(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	service := NewBookingService(mockBookingRepo, mockFlightRepo)
	ctx := context.Background()

	flight := &domain.Flight{ID: "F1", PriceCents: 10000, TotalSeats: 5, AvailableSeats: 5}
	mockFlightRepo.On("GetByID", ctx, "F1").Return(flight, nil).Once()
	mockBookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Run(func(args mock.Arguments) {
		// A price change after the read must not leak into the booking.
		flight.PriceCents = 99999
	}).Return(nil).Once()

	booking, err := service.CreateBooking(ctx, CreateBookingInput{UserID: "U1", FlightID: "F1", Passengers: 3, PassengerDetails: passengers(3)})

	require.NoError(t, err)
	assert.Equal(t, int64(30000), booking.TotalPriceCents)
}

func TestBookingService_CreateBooking_InvalidPassengerDetails(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	service := NewBookingService(mockBookingRepo, mockFlightRepo)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateBookingInput
	}{
		{name: "zero passengers", input: CreateBookingInput{FlightID: "F1", Passengers: 0}},
		{name: "negative passengers", input: CreateBookingInput{FlightID: "F1", Passengers: -2, PassengerDetails: passengers(0)}},
		{name: "too few details", input: CreateBookingInput{FlightID: "F1", Passengers: 2, PassengerDetails: passengers(1)}},
		{name: "too many details", input: CreateBookingInput{FlightID: "F1", Passengers: 1, PassengerDetails: passengers(2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateBooking(ctx, tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidPassengerDetails)
		})
	}

	mockFlightRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockBookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_FlightNotFound(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	service := NewBookingService(mockBookingRepo, mockFlightRepo)
	ctx := context.Background()

	mockFlightRepo.On("GetByID", ctx, "F9").Return(nil, domain.ErrFlightNotFound).Once()

	_, err := service.CreateBooking(ctx, CreateBookingInput{UserID: "U1", FlightID: "F9", Passengers: 1, PassengerDetails: passengers(1)})

	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	mockBookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_LedgerErrorSkipsSideEffects(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	mockFlightRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}
	service := NewBookingService(mockBookingRepo, mockFlightRepo, WithCache(mockCache), WithProducer(mockProducer, "bookings"))
	ctx := context.Background()

	mockFlightRepo.On("GetByID", ctx, "F1").Return(&domain.Flight{ID: "F1", PriceCents: 100, AvailableSeats: 1, TotalSeats: 1}, nil).Once()
	mockBookingRepo.On("Create", ctx, mock.Anything).Return(domain.ErrInsufficientCapacity).Once()

	_, err := service.CreateBooking(ctx, CreateBookingInput{UserID: "U1", FlightID: "F1", Passengers: 2, PassengerDetails: passengers(2)})

	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)
	mockCache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
	mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_PublishFailureStillBooks(t *testing.T) {
	service, store := newMemoryService(5)
	mockProducer := &MockProducer{}
	mockCache := &MockCache{}
	WithProducer(mockProducer, "bookings")(service)
	WithCache(mockCache)(service)
	ctx := context.Background()

	mockCache.On("InvalidateFlights", ctx).Return(errors.New("redis down")).Once()
	mockProducer.On("Publish", ctx, "bookings", mock.Anything, mock.Anything).Return(errors.New("kafka down")).Once()

	booking, err := service.CreateBooking(ctx, CreateBookingInput{UserID: "U1", FlightID: "F1", Passengers: 1, PassengerDetails: passengers(1)})
	require.NoError(t, err)
	require.NotNil(t, booking)

	f, _ := store.Flights().GetByID(ctx, "F1")
	assert.Equal(t, 4, f.AvailableSeats)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_SuccessfulBookingDecrementsExactly(t *testing.T) {
	service, store := newMemoryService(10)
	ctx := context.Background()

	booking, err := service.CreateBooking(ctx, CreateBookingInput{UserID: "U1", FlightID: "F1", Passengers: 3, PassengerDetails: passengers(3)})
	require.NoError(t, err)

	f, _ := store.Flights().GetByID(ctx, "F1")
	assert.Equal(t, 7, f.AvailableSeats)
	assert.Equal(t, f.PriceCents*3, booking.TotalPriceCents)

	list, err := service.ListByUser(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, booking.ID, list[0].ID)
}

func TestBookingService_OverCapacityLeavesStateUnchanged(t *testing.T) {
	service, store := newMemoryService(2)
	ctx := context.Background()

	_, err := service.CreateBooking(ctx, CreateBookingInput{UserID: "U1", FlightID: "F1", Passengers: 3, PassengerDetails: passengers(3)})
	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)

	f, _ := store.Flights().GetByID(ctx, "F1")
	assert.Equal(t, 2, f.AvailableSeats)
	list, _ := service.ListByUser(ctx, "U1")
	assert.Empty(t, list)
}

func TestBookingService_ScenarioFillThenReject(t *testing.T) {
	service, store := newMemoryService(2)
	ctx := context.Background()

	_, err := service.CreateBooking(ctx, CreateBookingInput{UserID: "U1", FlightID: "F1", Passengers: 2, PassengerDetails: passengers(2)})
	require.NoError(t, err)
	f, _ := store.Flights().GetByID(ctx, "F1")
	assert.Equal(t, 0, f.AvailableSeats)

	_, err = service.CreateBooking(ctx, CreateBookingInput{UserID: "U2", FlightID: "F1", Passengers: 1, PassengerDetails: passengers(1)})
	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)
	f, _ = store.Flights().GetByID(ctx, "F1")
	assert.Equal(t, 0, f.AvailableSeats)
}

func TestBookingService_ConcurrentSingleSeatBookings(t *testing.T) {
	const seats, requests = 7, 40
	service, store := newMemoryService(seats)
	ctx := context.Background()

	results := make(chan error, requests)
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CreateBooking(ctx, CreateBookingInput{UserID: "U1", FlightID: "F1", Passengers: 1, PassengerDetails: passengers(1)})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientCapacity):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, seats, succeeded)
	assert.Equal(t, requests-seats, rejected)
	f, _ := store.Flights().GetByID(ctx, "F1")
	assert.Equal(t, 0, f.AvailableSeats)
}

func TestBookingService_ListByUser(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	service := NewBookingService(mockBookingRepo, &MockFlightRepository{})
	ctx := context.Background()

	bookings := []domain.Booking{{ID: "B1", UserID: "U1"}}
	mockBookingRepo.On("ListByUser", ctx, "U1").Return(bookings, nil).Once()

	got, err := service.ListByUser(ctx, "U1")
	assert.NoError(t, err)
	assert.Equal(t, bookings, got)
}
