package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go-pricechart/internal/common"
	"go-pricechart/internal/config"
	"go-pricechart/internal/priceseries"
	"go-pricechart/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

var kacp = keepalive.ClientParameters{
	Time:                10 * time.Second, // send pings every 10 seconds
	Timeout:             time.Second,      // wait 1 second for ping ack
	PermitWithoutStream: true,             // send pings even without active streams
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	configPath := flag.String("config", common.DefaultConfigPath, "Path to config file")
	base := flag.String("base", "ethereum", "Base token id")
	quote := flag.String("quote", "usd-coin", "Quote token id")
	period := flag.String("period", string(priceseries.DefaultPeriod), "Chart period: 24h, 7d, 30d, 90d, 1y")
	stream := flag.Bool("stream", false, "Stream live ticks instead of printing the series")
	pairsStr := flag.String("pairs", "", "Comma-separated base:quote pairs to stream (overrides -base/-quote)")
	retryInterval := flag.Int("retry", 5, "Retry interval in seconds for reconnection")
	maxRetries := flag.Int("max-retries", 10, "Maximum number of retry attempts (0 for unlimited)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().
			Err(err).
			Str("error_code", common.ErrCodeConfigLoadFailed.String()).
			Str("error_message", common.ErrMsgConfigLoadFailed.String()).
			Msg("Failed to load config")
	}

	pairs := []rpc.Pair{{Base: *base, Quote: *quote}}
	if *pairsStr != "" {
		pairs, err = parsePairs(*pairsStr)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid -pairs")
		}
	}

	host := cfg.Server.Host
	if host == "" {
		host = "localhost"
	}
	serverAddr := fmt.Sprintf("%s:%d", host, cfg.GetGRPCPort())

	if !*stream {
		if err := printSeries(serverAddr, *base, *quote, *period); err != nil {
			log.Fatal().Err(err).Msg("Failed to fetch series")
		}
		return
	}

	retryCount := 0
	for {
		if *maxRetries > 0 && retryCount >= *maxRetries {
			log.Error().Msg("Maximum retry attempts reached. Exiting...")
			break
		}

		if retryCount > 0 {
			log.Info().
				Int("retry_count", retryCount).
				Int("max_retries", *maxRetries).
				Int("retry_interval_sec", *retryInterval).
				Msg("Attempting to reconnect...")
			time.Sleep(time.Duration(*retryInterval) * time.Second)
		}

		ctx := context.Background()
		conn, err := dial(ctx, serverAddr)
		if err != nil {
			log.Error().
				Err(err).
				Str("error_code", common.ErrCodeGRPCConnectionFailed.String()).
				Str("error_message", common.ErrMsgGRPCConnectionFailed.String()).
				Str("address", serverAddr).
				Msg("gRPC connect failed")
			retryCount++
			continue
		}

		log.Info().Str("address", serverAddr).Msg("Successfully connected to gRPC server")

		client := rpc.NewPriceServiceClient(conn)
		if err := streamTicks(ctx, client, pairs); err != nil {
			log.Error().
				Err(err).
				Str("error_code", common.ErrCodeStreamClosed.String()).
				Str("error_message", common.ErrMsgStreamClosed.String()).
				Msg("Streaming error occurred")
		}

		if err := conn.Close(); err != nil {
			log.Error().
				Err(err).
				Str("error_code", common.ErrCodeGRPCConnectionCloseFailed.String()).
				Str("error_message", common.ErrMsgGRPCConnectionCloseFailed.String()).
				Msg("Failed to close gRPC connection")
		}
		retryCount++
	}
}

func dial(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return grpc.DialContext(
		dialCtx,
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
		grpc.WithKeepaliveParams(kacp),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(common.MaxGRPCMessageSize),
			grpc.MaxCallSendMsgSize(common.MaxGRPCMessageSize),
		),
	)
}

func parsePairs(s string) ([]rpc.Pair, error) {
	var pairs []rpc.Pair
	for _, item := range strings.Split(s, ",") {
		base, quote, ok := strings.Cut(strings.TrimSpace(item), ":")
		if !ok || base == "" || quote == "" {
			return nil, fmt.Errorf("pair %q: want base:quote", item)
		}
		pairs = append(pairs, rpc.Pair{Base: base, Quote: quote})
	}
	return pairs, nil
}

func printSeries(addr, base, quote, period string) error {
	ctx := context.Background()
	conn, err := dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	resp, err := rpc.NewPriceServiceClient(conn).GetSeries(ctx, &rpc.SeriesRequest{Base: base, Quote: quote, Period: period})
	if err != nil {
		return fmt.Errorf("get series: %w", err)
	}

	fmt.Printf("%s  change %s  high %s  low %s\n", resp.Series.PairKey,
		priceseries.FormatChange(resp.ChangePercent), priceseries.FormatPrice(resp.High), priceseries.FormatPrice(resp.Low))
	for i, p := range resp.Series.Points {
		fmt.Printf("%-20s %s\n", resp.Labels[i], priceseries.FormatPrice(p.Price))
	}
	return nil
}

func streamTicks(ctx context.Context, client rpc.PriceServiceClient, pairs []rpc.Pair) error {
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := client.Subscribe(streamCtx, &rpc.SubscribeRequest{Pairs: pairs})
	if err != nil {
		return fmt.Errorf("subscribe failed: %w", err)
	}

	log.Info().Interface("pairs", pairs).Msg("Subscribed to tick stream")

	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			log.Info().Msg("Stream closed by server (EOF)")
			return nil
		}
		if err != nil {
			if isContextError(err) {
				log.Debug().Err(err).Msg("Context canceled, stopping stream")
				return nil
			}
			return fmt.Errorf("receive error: %w", err)
		}

		fmt.Printf("Tick [%s @ %d]: %s\n", resp.Pair, resp.Timestamp, priceseries.FormatPrice(resp.Price))
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
