package flights_service_api

import (
	"context"

	"github.com/Domenick1991/flightdesk/internal/grpcjson"
	"google.golang.org/grpc"
)

const ServiceName = "flightdesk.Flights"

type FlightsServiceServer interface {
	ListFlights(context.Context, *ListFlightsRequest) (*ListFlightsResponse, error)
	GetFlight(context.Context, *GetFlightRequest) (*GetFlightResponse, error)
	SearchFlights(context.Context, *SearchFlightsRequest) (*SearchFlightsResponse, error)
}

var FlightsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FlightsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListFlights", Handler: listFlightsHandler},
		{MethodName: "GetFlight", Handler: getFlightHandler},
		{MethodName: "SearchFlights", Handler: searchFlightsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flightdesk/flights",
}

func RegisterFlightsServiceServer(s grpc.ServiceRegistrar, srv FlightsServiceServer) {
	s.RegisterService(&FlightsServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func listFlightsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListFlightsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FlightsServiceServer).ListFlights(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("ListFlights")}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(FlightsServiceServer).ListFlights(ctx, req.(*ListFlightsRequest))
	})
}

func getFlightHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetFlightRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FlightsServiceServer).GetFlight(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("GetFlight")}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(FlightsServiceServer).GetFlight(ctx, req.(*GetFlightRequest))
	})
}

func searchFlightsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SearchFlightsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FlightsServiceServer).SearchFlights(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("SearchFlights")}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(FlightsServiceServer).SearchFlights(ctx, req.(*SearchFlightsRequest))
	})
}

// FlightsClient calls the flights service with the JSON codec.
type FlightsClient struct {
	cc grpc.ClientConnInterface
}

func NewFlightsClient(cc grpc.ClientConnInterface) *FlightsClient {
	return &FlightsClient{cc: cc}
}

func (c *FlightsClient) ListFlights(ctx context.Context, in *ListFlightsRequest, opts ...grpc.CallOption) (*ListFlightsResponse, error) {
	out := new(ListFlightsResponse)
	if err := c.invoke(ctx, "ListFlights", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FlightsClient) GetFlight(ctx context.Context, in *GetFlightRequest, opts ...grpc.CallOption) (*GetFlightResponse, error) {
	out := new(GetFlightResponse)
	if err := c.invoke(ctx, "GetFlight", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FlightsClient) SearchFlights(ctx context.Context, in *SearchFlightsRequest, opts ...grpc.CallOption) (*SearchFlightsResponse, error) {
	out := new(SearchFlightsResponse)
	if err := c.invoke(ctx, "SearchFlights", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FlightsClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpcjson.CallOption()}, opts...)
	return c.cc.Invoke(ctx, fullMethod(method), in, out, opts...)
}
