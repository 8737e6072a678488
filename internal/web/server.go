package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go-pricechart/internal/common"
	"go-pricechart/internal/feed"
	"go-pricechart/internal/metrics"
	"go-pricechart/internal/priceseries"
	"go-pricechart/internal/rpc"
	"go-pricechart/internal/service"
	"go-pricechart/internal/tokens"
	"go-pricechart/internal/util"
)

const writeWait = 10 * time.Second

// Server exposes the price service to browser chart clients.
type Server struct {
	svc      *service.Service
	router   chi.Router
	upgrader websocket.Upgrader
	logger   *util.Logger
}

func NewServer(svc *service.Service) *Server {
	s := &Server{
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: util.NewLogger("web"),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Get("/tokens", s.handleTokens)
		r.Get("/series/{base}/{quote}", s.handleSeries)
		r.Get("/quote", s.handleQuote)
	})
	r.Get("/ws/ticks", s.handleTicks)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// seriesPayload adds display strings to the chart response.
type seriesPayload struct {
	*rpc.SeriesResponse
	LastPrice string `json:"lastPrice"`
	Change    string `json:"change"`
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	base := chi.URLParam(r, "base")
	quote := chi.URLParam(r, "quote")
	resp := s.svc.SeriesResponse(base, quote, r.URL.Query().Get("period"))

	points := resp.Series.Points
	writeJSON(w, http.StatusOK, seriesPayload{
		SeriesResponse: resp,
		LastPrice:      priceseries.FormatPrice(points[len(points)-1].Price),
		Change:         priceseries.FormatChange(resp.ChangePercent),
	})
}

func (s *Server) handleTokens(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tokens": s.svc.Catalog.List()})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil {
		s.logger.Warn(common.ErrCodeInvalidAmount, common.ErrMsgInvalidAmount, "Rejected quote request", "amount", q.Get("amount"))
		writeError(w, http.StatusBadRequest, common.ErrMsgInvalidAmount.String())
		return
	}

	quote, err := s.svc.Quoter.Quote(q.Get("from"), q.Get("to"), amount)
	switch {
	case errors.Is(err, tokens.ErrUnknownToken):
		s.logger.Warn(common.ErrCodeUnknownToken, common.ErrMsgUnknownToken, "Rejected quote request", "from", q.Get("from"), "to", q.Get("to"))
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, tokens.ErrInvalidAmount):
		s.logger.Warn(common.ErrCodeInvalidAmount, common.ErrMsgInvalidAmount, "Rejected quote request", "amount", amount)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// handleTicks streams live ticks for one pair over a websocket until either
// side goes away or the feed stops.
func (s *Server) handleTicks(w http.ResponseWriter, r *http.Request) {
	pairKey := util.PairKey(r.URL.Query().Get("base"), r.URL.Query().Get("quote"))
	ticks, cancel, err := s.svc.Feed.Subscribe(pairKey)
	if errors.Is(err, feed.ErrStopped) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		s.logger.Warn(common.ErrCodeInvalidPair, common.ErrMsgInvalidPair, "No live feed for pair", "pair", pairKey)
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	defer cancel()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(err, common.ErrCodeWebsocketUpgradeFailed, common.ErrMsgWebsocketUpgradeFailed, "Websocket upgrade failed", "pair", pairKey)
		return
	}
	defer conn.Close()

	// Reads only detect the peer closing.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case tick, ok := <-ticks:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed stopped"))
				return
			}
			if err := conn.WriteJSON(tick); err != nil {
				s.logger.Error(err, common.ErrCodeWebsocketWriteFailed, common.ErrMsgWebsocketWriteFailed, "Failed to write tick", "pair", pairKey)
				return
			}
		}
	}
}

func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.ObserveHTTP(r.Method, route, status, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
