package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go-pricechart/internal/feed"
	"go-pricechart/internal/metrics"
	"go-pricechart/internal/priceseries"
	"go-pricechart/internal/util"
)

// Scheduler runs periodic housekeeping jobs.
type Scheduler struct {
	cron   *cron.Cron
	cache  *priceseries.Cache
	feed   *feed.Feed
	logger *util.Logger
}

func New(cache *priceseries.Cache, f *feed.Feed) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		cache:  cache,
		feed:   f,
		logger: util.NewLogger("scheduler"),
	}
}

// Register adds the cache stats report on spec, a standard cron expression
// or descriptor such as "@every 1m".
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.ReportStats); err != nil {
		return fmt.Errorf("register stats job %q: %w", spec, err)
	}
	return nil
}

// ReportStats refreshes the cached-series gauge and logs cache size.
func (s *Scheduler) ReportStats() {
	series := s.cache.Len()
	metrics.SetCachedSeries(series)
	s.logger.Info("Price cache stats", "series", series, "pairs", s.cache.PairCount(), "live_pairs", s.feed.Pairs())
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}
