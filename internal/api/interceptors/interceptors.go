package interceptors

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/flightdesk/internal/auth"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type userIDKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the authenticated caller, or "" outside an Auth-protected call.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

// Auth requires "authorization: Bearer <token>" metadata on every method whose
// full name starts with one of the given service prefixes, e.g. "/flightdesk.Bookings/".
func Auth(tokens TokenParser, protectedPrefixes ...string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !isProtected(info.FullMethod, protectedPrefixes) {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "access token required")
		}
		token, ok := strings.CutPrefix(values[0], "Bearer ")
		if !ok || token == "" {
			return nil, status.Error(codes.Unauthenticated, "access token required")
		}
		claims, err := tokens.Parse(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
		}
		return handler(WithUserID(ctx, claims.Subject), req)
	}
}

func isProtected(method string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(method, p) {
			return true
		}
	}
	return false
}

// Errors translates domain errors into gRPC statuses and logs unexpected ones.
func Errors(log logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		st := ToStatus(err)
		entry := log.WithFields(logrus.Fields{
			"method":  info.FullMethod,
			"code":    st.Code().String(),
			"latency": time.Since(start),
		})
		if st.Code() == codes.Internal {
			entry.WithError(err).Error("gRPC request failed")
		} else {
			entry.Debug("gRPC request rejected")
		}
		return nil, st.Err()
	}
}

func ToStatus(err error) *status.Status {
	if st, ok := status.FromError(err); ok {
		return st
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return status.New(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientCapacity):
		return status.New(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrInvalidPassengerDetails), errors.Is(err, domain.ErrInvalidSeatCount):
		return status.New(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		return status.New(codes.AlreadyExists, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return status.New(codes.Unauthenticated, err.Error())
	case errors.Is(err, context.Canceled):
		return status.New(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, err.Error())
	default:
		return status.New(codes.Internal, "internal error")
	}
}
