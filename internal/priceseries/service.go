package priceseries

import (
	"time"

	"go-pricechart/internal/metrics"
	"go-pricechart/internal/util"
	"go-pricechart/pkg/models"
)

// Service serves synthetic price series, generating each (pair, period) once.
type Service struct {
	cache  *Cache
	params *ParamTable
	src    Source
	now    func() time.Time
	logger *util.Logger
}

func NewService(cache *Cache, params *ParamTable, src Source) *Service {
	return &Service{
		cache:  cache,
		params: params,
		src:    src,
		now:    time.Now,
		logger: util.NewLogger("priceseries"),
	}
}

// WithClock replaces the time source used to anchor new series.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetPriceData returns the series for baseID/quoteID over period. An empty
// period means DefaultPeriod. The result is never nil, and repeated calls with
// the same arguments return the same pointer.
func (s *Service) GetPriceData(baseID, quoteID string, period TimePeriod) *models.PairSeries {
	if period == "" {
		period = DefaultPeriod
	}
	pairKey := util.PairKey(baseID, quoteID)

	series, created := s.cache.GetOrCreate(pairKey, period, func() *models.PairSeries {
		p := s.params.Lookup(baseID, quoteID)
		return &models.PairSeries{
			PairKey: pairKey,
			BaseID:  baseID,
			QuoteID: quoteID,
			Points:  Generate(p, period, s.now(), s.src),
		}
	})

	metrics.RecordCacheLookup(period.MetricLabel(), !created)
	if created {
		metrics.RecordGenerated(len(series.Points))
		metrics.SetCachedSeries(s.cache.Len())
		s.logger.Debug("Generated price series", "pair", pairKey, "period", string(period), "points", len(series.Points))
	}
	return series
}

// Params exposes the generator parameters the service would use for a pair.
func (s *Service) Params(baseID, quoteID string) Params {
	return s.params.Lookup(baseID, quoteID)
}

func (s *Service) Cache() *Cache {
	return s.cache
}

func (s *Service) Source() Source {
	return s.src
}
