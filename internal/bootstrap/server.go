package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/flightdesk/api"
	"github.com/Domenick1991/flightdesk/config"
	bookingsapi "github.com/Domenick1991/flightdesk/internal/api/bookings_service_api"
	flightsapi "github.com/Domenick1991/flightdesk/internal/api/flights_service_api"
	"github.com/Domenick1991/flightdesk/internal/api/interceptors"
	"github.com/Domenick1991/flightdesk/internal/auth"
	"github.com/Domenick1991/flightdesk/internal/service/booking"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
	"github.com/Domenick1991/flightdesk/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 5 * time.Second

// Services are the use cases both transports expose.
type Services struct {
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Users    users.UserUseCase
	Tokens   *auth.TokenManager

	// Idempotency may be nil when Redis is not configured.
	Idempotency api.IdempotencyStore
}

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
}

// Run starts the gRPC and HTTP servers and blocks until ctx is canceled or a
// server fails. Both servers are shut down gracefully on return.
func Run(ctx context.Context, cfg *config.Config, svc Services, log logrus.FieldLogger) error {
	s := newServers(cfg, svc, log)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("address", cfg.GRPC.Address).Info("gRPC server listening")
		if err := s.grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.WithField("address", cfg.HTTP.Address).Info("HTTP server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve HTTP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func newServers(cfg *config.Config, svc Services, log logrus.FieldLogger) *Servers {
	grpcSrv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		interceptors.Errors(log),
		interceptors.Auth(svc.Tokens, bookingsapi.MethodPrefix),
	))
	flightsapi.RegisterFlightsServiceServer(grpcSrv, flightsapi.NewServer(svc.Flights))
	bookingsapi.RegisterBookingsServiceServer(grpcSrv, bookingsapi.NewServer(svc.Bookings, svc.Flights))

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.RouterDeps{
		Flights:        svc.Flights,
		Bookings:       svc.Bookings,
		Users:          svc.Users,
		Tokens:         svc.Tokens,
		Idempotency:    svc.Idempotency,
		IdempotencyTTL: cfg.Booking.IdempotencyDuration(),
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Log:            log,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: httpSrv,
	}
}
