package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-pricechart/internal/common"
	"go-pricechart/internal/config"
	"go-pricechart/internal/feed"
	"go-pricechart/internal/priceseries"
	"go-pricechart/internal/rpc"
	"go-pricechart/internal/tokens"
	"go-pricechart/internal/util"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service is the price chart backend shared by the gRPC and HTTP surfaces.
type Service struct {
	Series  *priceseries.Service
	Catalog *tokens.Catalog
	Quoter  *tokens.Quoter
	Feed    *feed.Feed

	location *time.Location
	logger   *util.Logger
}

func NewService(cfg *config.Config) (*Service, error) {
	loc, err := cfg.GetLocation()
	if err != nil {
		return nil, err
	}

	src := priceseries.NewSource(cfg.GetSeed())
	series := priceseries.NewService(priceseries.NewCache(), priceseries.NewParamTable(cfg.Pairs...), src)
	catalog := tokens.NewCatalog(cfg.Tokens...)

	s := &Service{
		Series:   series,
		Catalog:  catalog,
		Quoter:   tokens.NewQuoter(catalog, src),
		Feed:     feed.New(series, cfg.GetTickInterval(), cfg.GetChannelBufferSize()),
		location: loc,
		logger:   util.NewLogger("service"),
	}
	s.Feed.Start(cfg.LivePairs)
	return s, nil
}

// SeriesResponse builds the chart payload for a pair and period.
func (s *Service) SeriesResponse(base, quote, period string) *rpc.SeriesResponse {
	p := priceseries.TimePeriod(period)
	if p == "" {
		p = priceseries.DefaultPeriod
	}
	series := s.Series.GetPriceData(base, quote, p)

	labels := make([]string, len(series.Points))
	for i, pt := range series.Points {
		labels[i] = priceseries.FormatTimestampIn(pt.Timestamp, p, s.location)
	}
	sum := priceseries.Summarize(series.Points)
	return &rpc.SeriesResponse{
		Series:        series,
		Labels:        labels,
		ChangePercent: sum.ChangePercent,
		High:          sum.High,
		Low:           sum.Low,
	}
}

func (s *Service) GetSeries(ctx context.Context, req *rpc.SeriesRequest) (*rpc.SeriesResponse, error) {
	if req.Base == "" || req.Quote == "" {
		return nil, status.Error(codes.InvalidArgument, common.ErrMsgInvalidPair.String())
	}
	return s.SeriesResponse(req.Base, req.Quote, req.Period), nil
}

func (s *Service) GetQuote(ctx context.Context, req *rpc.QuoteRequest) (*rpc.QuoteResponse, error) {
	q, err := s.Quoter.Quote(req.From, req.To, req.Amount)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.QuoteResponse{Quote: q}, nil
}

func (s *Service) ListTokens(ctx context.Context, _ *rpc.ListTokensRequest) (*rpc.ListTokensResponse, error) {
	return &rpc.ListTokensResponse{Tokens: s.Catalog.List()}, nil
}

// Subscribe streams live ticks for every requested pair on the feed. Pairs
// that are not live are skipped; if none are live the call fails. The stream
// ends when the client goes away or the feed shuts down.
func (s *Service) Subscribe(req *rpc.SubscribeRequest, stream rpc.PriceService_SubscribeServer) error {
	ctx := stream.Context()
	merged := make(chan *rpc.TickResponse, common.ListenerChannelSize)
	var forwarders sync.WaitGroup
	var cancels []func()
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	for _, p := range req.Pairs {
		key := util.PairKey(p.Base, p.Quote)
		ch, cancel, err := s.Feed.Subscribe(key)
		if err != nil {
			s.logger.Warn(common.ErrCodeInvalidPair, common.ErrMsgInvalidPair, "No live feed for pair, skipping subscription", "pair", key)
			continue
		}
		cancels = append(cancels, cancel)

		forwarders.Add(1)
		go func() {
			defer forwarders.Done()
			for tick := range ch {
				select {
				case merged <- &rpc.TickResponse{Pair: tick.PairKey, Timestamp: tick.Timestamp, Price: tick.Price}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	if len(cancels) == 0 {
		return status.Error(codes.NotFound, "no live pairs in request")
	}

	finished := make(chan struct{})
	go func() {
		forwarders.Wait()
		close(finished)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-finished:
			// Forwarders are done, so merged only holds what they left behind.
			return s.drain(merged, stream)
		case msg := <-merged:
			if err := s.send(stream, msg); err != nil {
				return err
			}
		}
	}
}

// drain sends every tick still buffered in merged without waiting for more.
func (s *Service) drain(merged <-chan *rpc.TickResponse, stream rpc.PriceService_SubscribeServer) error {
	for {
		select {
		case msg := <-merged:
			if err := s.send(stream, msg); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *Service) send(stream rpc.PriceService_SubscribeServer, msg *rpc.TickResponse) error {
	if err := stream.Send(msg); err != nil {
		s.logger.Error(err, common.ErrCodeStreamClosed, common.ErrMsgStreamClosed, "Failed to send tick to stream", "pair", msg.Pair)
		return err
	}
	return nil
}

func (s *Service) Shutdown() {
	s.Feed.Shutdown()
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, tokens.ErrUnknownToken):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, tokens.ErrInvalidAmount):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
