package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-pricechart/internal/config"
	"go-pricechart/internal/service"
	"go-pricechart/pkg/models"
)

func newTestServer(t *testing.T) (*httptest.Server, *service.Service) {
	t.Helper()
	svc, err := service.NewService(&config.Config{
		Seed:            3,
		Timezone:        "UTC",
		TickIntervalSec: 1,
		LivePairs:       []config.LivePair{{Base: "bitcoin", Quote: "usd-coin"}},
	})
	require.NoError(t, err)

	ts := httptest.NewServer(NewServer(svc).Handler())
	t.Cleanup(func() {
		svc.Shutdown()
		ts.Close()
	})
	return ts, svc
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/healthz", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestSeriesEndpoint(t *testing.T) {
	ts, svc := newTestServer(t)

	var body struct {
		Series        models.PairSeries `json:"series"`
		Labels        []string          `json:"labels"`
		ChangePercent float64           `json:"changePercent"`
		LastPrice     string            `json:"lastPrice"`
		Change        string            `json:"change"`
	}
	status := getJSON(t, ts.URL+"/api/series/ethereum/usd-coin?period=30d", &body)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "ethereum-usd-coin", body.Series.PairKey)
	assert.Len(t, body.Series.Points, 30)
	assert.Len(t, body.Labels, 30)
	assert.NotEmpty(t, body.LastPrice)
	assert.True(t, strings.HasSuffix(body.Change, "%"))

	cached := svc.Series.GetPriceData("ethereum", "usd-coin", "30d")
	assert.Equal(t, cached.Points, body.Series.Points)
}

func TestTokensEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	var body struct {
		Tokens []models.Token `json:"tokens"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/tokens", &body))
	assert.Len(t, body.Tokens, 8)
}

func TestQuoteEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	var quote models.Quote
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/quote?from=bitcoin&to=usd-coin&amount=0.5", &quote))
	assert.Equal(t, "bitcoin", quote.FromID)
	assert.InDelta(t, 65000, quote.Rate, 6500+1e-9)
	assert.InDelta(t, 0.5*quote.Rate, quote.ToAmount, 1e-9)

	var errBody map[string]string
	assert.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/api/quote?from=dogecoin&to=usd-coin&amount=1", &errBody))
	assert.NotEmpty(t, errBody["error"])
	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/api/quote?from=bitcoin&to=usd-coin&amount=abc", &errBody))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/api/quote?from=bitcoin&to=usd-coin&amount=-2", &errBody))
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]string
	getJSON(t, ts.URL+"/healthz", &body)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTicksWebsocket(t *testing.T) {
	ts, _ := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/ticks?base=bitcoin&quote=usd-coin"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var tick models.Tick
	require.NoError(t, conn.ReadJSON(&tick))
	assert.Equal(t, "bitcoin-usd-coin", tick.PairKey)
	assert.Greater(t, tick.Price, 0.0)
}

func TestTicksWebsocket_UnknownPair(t *testing.T) {
	ts, _ := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/ticks?base=usd-coin&quote=bitcoin"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTicksWebsocket_FeedStopped(t *testing.T) {
	ts, svc := newTestServer(t)
	svc.Shutdown()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/ticks?base=bitcoin&quote=usd-coin"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
