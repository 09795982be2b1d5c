package bookings_service_api

import (
	"context"

	"github.com/Domenick1991/flightdesk/internal/api/models"
	"github.com/Domenick1991/flightdesk/internal/grpcjson"
	"google.golang.org/grpc"
)

const ServiceName = "flightdesk.Bookings"

// MethodPrefix matches every method of the service, for interceptors.Auth.
const MethodPrefix = "/" + ServiceName + "/"

type BookingsServiceServer interface {
	CreateBooking(context.Context, *CreateBookingRequest) (*models.Booking, error)
	ListMyBookings(context.Context, *ListMyBookingsRequest) (*ListMyBookingsResponse, error)
}

var BookingsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookingsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateBooking", Handler: createBookingHandler},
		{MethodName: "ListMyBookings", Handler: listMyBookingsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flightdesk/bookings",
}

func RegisterBookingsServiceServer(s grpc.ServiceRegistrar, srv BookingsServiceServer) {
	s.RegisterService(&BookingsServiceDesc, srv)
}

func createBookingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateBookingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookingsServiceServer).CreateBooking(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodPrefix + "CreateBooking"}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(BookingsServiceServer).CreateBooking(ctx, req.(*CreateBookingRequest))
	})
}

func listMyBookingsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListMyBookingsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookingsServiceServer).ListMyBookings(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodPrefix + "ListMyBookings"}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(BookingsServiceServer).ListMyBookings(ctx, req.(*ListMyBookingsRequest))
	})
}

// BookingsClient calls the bookings service with the JSON codec. Callers
// attach the bearer token as outgoing "authorization" metadata.
type BookingsClient struct {
	cc grpc.ClientConnInterface
}

func NewBookingsClient(cc grpc.ClientConnInterface) *BookingsClient {
	return &BookingsClient{cc: cc}
}

func (c *BookingsClient) CreateBooking(ctx context.Context, in *CreateBookingRequest, opts ...grpc.CallOption) (*models.Booking, error) {
	out := new(models.Booking)
	if err := c.invoke(ctx, "CreateBooking", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingsClient) ListMyBookings(ctx context.Context, in *ListMyBookingsRequest, opts ...grpc.CallOption) (*ListMyBookingsResponse, error) {
	out := new(ListMyBookingsResponse)
	if err := c.invoke(ctx, "ListMyBookings", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingsClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpcjson.CallOption()}, opts...)
	return c.cc.Invoke(ctx, MethodPrefix+method, in, out, opts...)
}
