package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName = "pricechart.PriceService"

	methodGetSeries  = "/" + ServiceName + "/GetSeries"
	methodGetQuote   = "/" + ServiceName + "/GetQuote"
	methodListTokens = "/" + ServiceName + "/ListTokens"
	methodSubscribe  = "/" + ServiceName + "/Subscribe"
)

// PriceServiceServer is implemented by the price chart backend.
type PriceServiceServer interface {
	GetSeries(context.Context, *SeriesRequest) (*SeriesResponse, error)
	GetQuote(context.Context, *QuoteRequest) (*QuoteResponse, error)
	ListTokens(context.Context, *ListTokensRequest) (*ListTokensResponse, error)
	Subscribe(*SubscribeRequest, PriceService_SubscribeServer) error
}

type PriceService_SubscribeServer interface {
	Send(*TickResponse) error
	grpc.ServerStream
}

type priceServiceSubscribeServer struct {
	grpc.ServerStream
}

func (x *priceServiceSubscribeServer) Send(m *TickResponse) error {
	return x.ServerStream.SendMsg(m)
}

func RegisterPriceServiceServer(s grpc.ServiceRegistrar, srv PriceServiceServer) {
	s.RegisterService(&PriceService_ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](call func(PriceServiceServer, context.Context, *Req) (*Resp, error), method string) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PriceServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(PriceServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func subscribeHandler(srv interface{}, stream grpc.ServerStream) error {
	m := new(SubscribeRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(PriceServiceServer).Subscribe(m, &priceServiceSubscribeServer{stream})
}

// PriceService_ServiceDesc describes the service for grpc.Server registration.
var PriceService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PriceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSeries",
			Handler:    unaryHandler(PriceServiceServer.GetSeries, methodGetSeries),
		},
		{
			MethodName: "GetQuote",
			Handler:    unaryHandler(PriceServiceServer.GetQuote, methodGetQuote),
		},
		{
			MethodName: "ListTokens",
			Handler:    unaryHandler(PriceServiceServer.ListTokens, methodListTokens),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Subscribe",
			Handler:       subscribeHandler,
			ServerStreams: true,
		},
	},
	Metadata: "pricechart",
}

// PriceServiceClient is the client API for the price service.
type PriceServiceClient interface {
	GetSeries(ctx context.Context, in *SeriesRequest, opts ...grpc.CallOption) (*SeriesResponse, error)
	GetQuote(ctx context.Context, in *QuoteRequest, opts ...grpc.CallOption) (*QuoteResponse, error)
	ListTokens(ctx context.Context, in *ListTokensRequest, opts ...grpc.CallOption) (*ListTokensResponse, error)
	Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (PriceService_SubscribeClient, error)
}

type PriceService_SubscribeClient interface {
	Recv() (*TickResponse, error)
	grpc.ClientStream
}

type priceServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPriceServiceClient wraps cc; every call is sent with the JSON codec.
func NewPriceServiceClient(cc grpc.ClientConnInterface) PriceServiceClient {
	return &priceServiceClient{cc: cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *priceServiceClient) GetSeries(ctx context.Context, in *SeriesRequest, opts ...grpc.CallOption) (*SeriesResponse, error) {
	out := new(SeriesResponse)
	if err := c.cc.Invoke(ctx, methodGetSeries, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *priceServiceClient) GetQuote(ctx context.Context, in *QuoteRequest, opts ...grpc.CallOption) (*QuoteResponse, error) {
	out := new(QuoteResponse)
	if err := c.cc.Invoke(ctx, methodGetQuote, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *priceServiceClient) ListTokens(ctx context.Context, in *ListTokensRequest, opts ...grpc.CallOption) (*ListTokensResponse, error) {
	out := new(ListTokensResponse)
	if err := c.cc.Invoke(ctx, methodListTokens, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *priceServiceClient) Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (PriceService_SubscribeClient, error) {
	stream, err := c.cc.NewStream(ctx, &PriceService_ServiceDesc.Streams[0], methodSubscribe, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &priceServiceSubscribeClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type priceServiceSubscribeClient struct {
	grpc.ClientStream
}

func (x *priceServiceSubscribeClient) Recv() (*TickResponse, error) {
	m := new(TickResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
