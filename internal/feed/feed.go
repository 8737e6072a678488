package feed

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go-pricechart/internal/common"
	"go-pricechart/internal/config"
	"go-pricechart/internal/metrics"
	"go-pricechart/internal/priceseries"
	"go-pricechart/internal/util"
	"go-pricechart/pkg/models"
)

var (
	ErrUnknownPair = errors.New("pair is not on the live feed")
	ErrStopped     = errors.New("live feed is shut down")
)

// walker continues a pair's random walk from the end of its cached 24h series.
// The cached series itself is never modified.
type walker struct {
	pairKey    string
	volatility float64
	price      float64
}

type subscription struct {
	ch   chan models.Tick
	once sync.Once
}

func (s *subscription) close() {
	s.once.Do(func() { close(s.ch) })
}

type listenerEntry struct {
	mu   sync.Mutex
	subs []*subscription
}

// Feed produces live ticks for a fixed set of pairs and fans them out to
// subscribers. Slow subscribers lose ticks rather than blocking the walk.
type Feed struct {
	series     *priceseries.Service
	interval   time.Duration
	bufferSize int
	logger     *util.Logger

	mu        sync.Mutex
	walkers   map[string]*walker
	listeners map[string]*listenerEntry

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(series *priceseries.Service, interval time.Duration, bufferSize int) *Feed {
	if bufferSize <= 0 {
		bufferSize = common.DefaultChannelBufferSize
	}
	return &Feed{
		series:     series,
		interval:   interval,
		bufferSize: bufferSize,
		logger:     util.NewLogger("feed"),
		walkers:    make(map[string]*walker),
		listeners:  make(map[string]*listenerEntry),
		stop:       make(chan struct{}),
	}
}

// Start seeds a walker per pair and runs one ticking goroutine for each.
// Pairs already running are skipped.
func (f *Feed) Start(pairs []config.LivePair) {
	for _, lp := range pairs {
		key := util.PairKey(lp.Base, lp.Quote)

		f.mu.Lock()
		if _, ok := f.walkers[key]; ok {
			f.mu.Unlock()
			continue
		}
		base := f.series.GetPriceData(lp.Base, lp.Quote, priceseries.Period24h)
		w := &walker{
			pairKey:    key,
			volatility: f.series.Params(lp.Base, lp.Quote).Volatility,
			price:      base.Points[len(base.Points)-1].Price,
		}
		f.walkers[key] = w
		f.listeners[key] = &listenerEntry{}
		f.mu.Unlock()

		f.wg.Add(1)
		go f.run(key)
		f.logger.Info("Started live feed", "pair", key, "interval", f.interval.String())
	}
}

func (f *Feed) run(pairKey string) {
	defer f.wg.Done()
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-f.stop:
			return
		case now := <-ticker.C:
			f.step(pairKey, now)
		}
	}
}

// step advances one walker and emits the new point.
func (f *Feed) step(pairKey string, now time.Time) {
	f.mu.Lock()
	w, ok := f.walkers[pairKey]
	listener := f.listeners[pairKey]
	if !ok {
		f.mu.Unlock()
		return
	}
	w.price = priceseries.Step(w.price, w.volatility, f.series.Source())
	tick := models.Tick{
		PairKey:    pairKey,
		PricePoint: models.PricePoint{Timestamp: now.UnixMilli(), Price: w.price},
	}
	f.mu.Unlock()

	metrics.RecordTick(pairKey)
	f.emit(listener, tick)
}

func (f *Feed) emit(listener *listenerEntry, tick models.Tick) {
	listener.mu.Lock()
	defer listener.mu.Unlock()
	for _, sub := range listener.subs {
		select {
		case sub.ch <- tick:
			f.logger.Debug("Sent tick to subscriber", "pair", tick.PairKey)
		default:
			metrics.RecordDroppedTick(tick.PairKey)
			f.logger.Warn(common.ErrCodeChannelFull, common.ErrMsgChannelFull, "Dropped tick due to full subscriber channel", "pair", tick.PairKey)
		}
	}
}

// Subscribe registers a listener for pairKey. The returned cancel function
// unregisters it and closes the channel; it is safe to call more than once.
// After Shutdown it fails with ErrStopped.
func (f *Feed) Subscribe(pairKey string) (<-chan models.Tick, func(), error) {
	f.mu.Lock()
	listener, ok := f.listeners[pairKey]
	f.mu.Unlock()
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownPair, pairKey)
	}

	sub := &subscription{ch: make(chan models.Tick, f.bufferSize)}
	listener.mu.Lock()
	// Shutdown closes stop before it visits the listeners, so a subscription
	// added here is either rejected or closed by Shutdown.
	if f.stopped() {
		listener.mu.Unlock()
		return nil, nil, ErrStopped
	}
	listener.subs = append(listener.subs, sub)
	listener.mu.Unlock()

	cancel := func() {
		listener.mu.Lock()
		for i, s := range listener.subs {
			if s == sub {
				listener.subs = append(listener.subs[:i], listener.subs[i+1:]...)
				break
			}
		}
		listener.mu.Unlock()
		sub.close()
	}
	return sub.ch, cancel, nil
}

func (f *Feed) stopped() bool {
	select {
	case <-f.stop:
		return true
	default:
		return false
	}
}

// Pairs lists the live pair keys in sorted order.
func (f *Feed) Pairs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.walkers))
	for k := range f.walkers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Shutdown stops every walker and closes all subscriber channels.
func (f *Feed) Shutdown() {
	f.stopOnce.Do(func() { close(f.stop) })
	f.wg.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, listener := range f.listeners {
		listener.mu.Lock()
		for _, sub := range listener.subs {
			sub.close()
		}
		listener.subs = nil
		listener.mu.Unlock()
	}
}
