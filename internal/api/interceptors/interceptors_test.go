package interceptors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/Domenick1991/flightdesk/internal/auth"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{domain.ErrFlightNotFound, codes.NotFound},
		{fmt.Errorf("lookup: %w", domain.ErrUserNotFound), codes.NotFound},
		{domain.ErrInsufficientCapacity, codes.FailedPrecondition},
		{domain.ErrInvalidPassengerDetails, codes.InvalidArgument},
		{domain.ErrInvalidSeatCount, codes.InvalidArgument},
		{domain.ErrEmailTaken, codes.AlreadyExists},
		{domain.ErrInvalidCredentials, codes.Unauthenticated},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{status.Error(codes.Unauthenticated, "nope"), codes.Unauthenticated},
		{errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, ToStatus(tt.err).Code())
		})
	}
}

func TestToStatus_hidesInternalDetails(t *testing.T) {
	st := ToStatus(errors.New("password=hunter2"))
	assert.Equal(t, "internal error", st.Message())
}

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	valid, err := tokens.Issue("u1", "ada@example.com")
	require.NoError(t, err)

	interceptor := Auth(tokens, "/flightdesk.Bookings/")
	handler := func(ctx context.Context, req any) (any, error) {
		return UserID(ctx), nil
	}
	protected := &grpc.UnaryServerInfo{FullMethod: "/flightdesk.Bookings/CreateBooking"}
	public := &grpc.UnaryServerInfo{FullMethod: "/flightdesk.Flights/ListFlights"}

	t.Run("public method passes through", func(t *testing.T) {
		resp, err := interceptor(context.Background(), nil, public, handler)
		require.NoError(t, err)
		assert.Equal(t, "", resp)
	})

	t.Run("missing metadata", func(t *testing.T) {
		_, err := interceptor(context.Background(), nil, protected, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("bad token", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer junk"))
		_, err := interceptor(ctx, nil, protected, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("valid token", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+valid))
		resp, err := interceptor(ctx, nil, protected, handler)
		require.NoError(t, err)
		assert.Equal(t, "u1", resp)
	})
}

func TestErrors(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	interceptor := Errors(log)
	info := &grpc.UnaryServerInfo{FullMethod: "/flightdesk.Bookings/CreateBooking"}

	_, err := interceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, domain.ErrInsufficientCapacity
	})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	resp, err := interceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}
