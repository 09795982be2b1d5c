package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/auth"
	"github.com/Domenick1991/flightdesk/internal/repository/memory"
	"github.com/Domenick1991/flightdesk/internal/seed"
	"github.com/Domenick1991/flightdesk/internal/service/booking"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
	"github.com/Domenick1991/flightdesk/internal/service/users"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testServices(t *testing.T) Services {
	t.Helper()
	catalog, err := seed.Flights("")
	require.NoError(t, err)

	store := memory.NewStore(catalog)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return Services{
		Flights:  flights.NewFlightService(store.Flights(), nil),
		Bookings: booking.NewBookingService(store.Bookings(), store.Flights()),
		Users:    users.NewUserService(store.Users(), tokens, auth.NewPasswordHasher(bcrypt.MinCost)),
		Tokens:   tokens,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP:    config.HTTPConfig{Address: "127.0.0.1:0"},
		GRPC:    config.GRPCConfig{Address: "127.0.0.1:0"},
		Booking: config.BookingConfig{IdempotencyTTLMin: 1},
	}
}

func TestNewServers_routesHTTP(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := newServers(testConfig(), testServices(t), log)

	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/flights", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	info := s.grpcServer.GetServiceInfo()
	assert.Contains(t, info, "flightdesk.Flights")
	assert.Contains(t, info, "flightdesk.Bookings")
}

func TestRun_stopsOnCancel(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())

	svc := testServices(t)
	done := make(chan error, 1)
	go func() { done <- Run(ctx, testConfig(), svc, log) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
