package service

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-pricechart/internal/config"
	"go-pricechart/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func testConfig() *config.Config {
	return &config.Config{
		Seed:            1,
		Timezone:        "UTC",
		TickIntervalSec: 1,
		LivePairs:       []config.LivePair{{Base: "ethereum", Quote: "usd-coin"}},
	}
}

func startServer(t *testing.T) (rpc.PriceServiceClient, *Service) {
	t.Helper()
	s, err := NewService(testConfig())
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	rpc.RegisterPriceServiceServer(srv, s)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		s.Shutdown()
		srv.Stop()
	})
	return rpc.NewPriceServiceClient(conn), s
}

func TestGetSeries(t *testing.T) {
	client, s := startServer(t)
	ctx := context.Background()

	resp, err := client.GetSeries(ctx, &rpc.SeriesRequest{Base: "ethereum", Quote: "usd-coin", Period: "7d"})
	require.NoError(t, err)
	require.NotNil(t, resp.Series)
	assert.Equal(t, "ethereum-usd-coin", resp.Series.PairKey)
	assert.Len(t, resp.Series.Points, 168)
	assert.Len(t, resp.Labels, 168)
	assert.GreaterOrEqual(t, resp.High, resp.Low)

	// The server-side cache keeps the very same series.
	cached := s.Series.GetPriceData("ethereum", "usd-coin", "7d")
	assert.Equal(t, cached.Points, resp.Series.Points)

	again, err := client.GetSeries(ctx, &rpc.SeriesRequest{Base: "ethereum", Quote: "usd-coin", Period: "7d"})
	require.NoError(t, err)
	assert.Equal(t, resp.Series.Points, again.Series.Points)
}

func TestGetSeries_DefaultsPeriod(t *testing.T) {
	client, _ := startServer(t)

	resp, err := client.GetSeries(context.Background(), &rpc.SeriesRequest{Base: "dogecoin", Quote: "tether"})
	require.NoError(t, err)
	assert.Len(t, resp.Series.Points, 24)

	daily, err := client.GetSeries(context.Background(), &rpc.SeriesRequest{Base: "dogecoin", Quote: "tether", Period: "24h"})
	require.NoError(t, err)
	assert.Equal(t, daily.Labels, resp.Labels)
	assert.Regexp(t, `^\d{2}:\d{2}$`, resp.Labels[0])
}

func TestSeriesResponse_EmptyPeriodMatches24h(t *testing.T) {
	_, s := startServer(t)

	empty := s.SeriesResponse("ethereum", "usd-coin", "")
	daily := s.SeriesResponse("ethereum", "usd-coin", "24h")
	assert.Same(t, daily.Series, empty.Series)
	assert.Equal(t, daily.Labels, empty.Labels)
}

func TestGetSeries_MissingPair(t *testing.T) {
	client, _ := startServer(t)

	_, err := client.GetSeries(context.Background(), &rpc.SeriesRequest{Base: "ethereum"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetQuote(t *testing.T) {
	client, _ := startServer(t)
	ctx := context.Background()

	resp, err := client.GetQuote(ctx, &rpc.QuoteRequest{From: "ethereum", To: "usd-coin", Amount: 1})
	require.NoError(t, err)
	assert.InDelta(t, 3500, resp.Quote.Rate, 350+1e-9)
	assert.InDelta(t, resp.Quote.Rate, resp.Quote.ToAmount, 1e-9)

	_, err = client.GetQuote(ctx, &rpc.QuoteRequest{From: "dogecoin", To: "usd-coin", Amount: 1})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.GetQuote(ctx, &rpc.QuoteRequest{From: "ethereum", To: "usd-coin", Amount: 0})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestListTokens(t *testing.T) {
	client, _ := startServer(t)

	resp, err := client.ListTokens(context.Background(), &rpc.ListTokensRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Tokens, 8)
	assert.Equal(t, "ETH", resp.Tokens[0].Symbol)
}

func TestSubscribe(t *testing.T) {
	client, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.Subscribe(ctx, &rpc.SubscribeRequest{Pairs: []rpc.Pair{
		{Base: "ethereum", Quote: "usd-coin"},
		{Base: "bitcoin", Quote: "usd-coin"},
	}})
	require.NoError(t, err)

	tick, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "ethereum-usd-coin", tick.Pair)
	assert.Greater(t, tick.Price, 0.0)
}

func TestSubscribe_NoLivePairs(t *testing.T) {
	client, _ := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.Subscribe(ctx, &rpc.SubscribeRequest{Pairs: []rpc.Pair{{Base: "bitcoin", Quote: "usd-coin"}}})
	require.NoError(t, err)

	_, err = stream.Recv()
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestNewService_BadTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Timezone = "Mars/Olympus"
	_, err := NewService(cfg)
	assert.Error(t, err)
}

type recordingStream struct {
	grpc.ServerStream
	sent []*rpc.TickResponse
}

func (r *recordingStream) Send(msg *rpc.TickResponse) error {
	r.sent = append(r.sent, msg)
	return nil
}

func TestDrainSendsBufferedTicks(t *testing.T) {
	_, s := startServer(t)

	merged := make(chan *rpc.TickResponse, 4)
	for i := int64(1); i <= 3; i++ {
		merged <- &rpc.TickResponse{Pair: "ethereum-usd-coin", Timestamp: i, Price: 3500}
	}

	stream := &recordingStream{}
	require.NoError(t, s.drain(merged, stream))
	require.Len(t, stream.sent, 3)
	assert.Equal(t, int64(3), stream.sent[2].Timestamp)
	assert.Empty(t, merged)
}
