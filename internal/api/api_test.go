package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/pricepulse/internal/api"
	"github.com/vytor/pricepulse/internal/catalog"
	"github.com/vytor/pricepulse/internal/engine"
	"github.com/vytor/pricepulse/internal/models"
	"github.com/vytor/pricepulse/internal/services"
	"github.com/vytor/pricepulse/internal/testutil"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func testCatalog() *catalog.Catalog {
	history := make([]models.PricePoint, catalog.HistoryLength)
	for i := range history {
		history[i] = models.PricePoint{Month: "M", Price: float64(100 + i*10), DataQuality: models.QualityHigh}
	}
	return catalog.New(models.CatalogContent{
		Trends: []models.TrendItem{
			{ID: "rice", Name: "Rice", Difficulty: 2, Trend: models.TrendIncreasing, NextPrice: 160, PriceHistory: history},
			{ID: "dal", Name: "Dal", Difficulty: 3, Trend: models.TrendStable, NextPrice: 150, PriceHistory: history},
		},
		Market: []models.MarketItem{
			{ID: "milk", Name: "Milk", Unit: "litre", Difficulty: 1, Current: models.PriceRange{Min: 100, Max: 100}},
			{ID: "tea", Name: "Tea", Unit: "cup", Difficulty: 1, Current: models.PriceRange{Min: 20, Max: 30}},
			{ID: "eggs", Name: "Eggs", Unit: "tray", Difficulty: 2, Current: models.PriceRange{Min: 450, Max: 500}},
			{ID: "momo", Name: "Momo", Unit: "plate", Difficulty: 1, Current: models.PriceRange{Min: 150, Max: 180}},
		},
	})
}

func newTestServer(t *testing.T, store api.Pinger) http.Handler {
	t.Helper()
	svc := services.NewGameService(testCatalog(), services.GameServiceConfig{MaxRounds: 10},
		services.WithEngineOptions(func() []engine.Option {
			return []engine.Option{engine.WithLogger(testutil.QuietLogger())}
		}),
	)
	srv := &api.Server{GameService: svc, Store: store}
	return srv.Routes()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type snapshotBody struct {
	ID      string          `json:"id"`
	Variant string          `json:"variant"`
	State   json.RawMessage `json:"state"`
}

type roundState struct {
	Current *struct {
		ID string `json:"id"`
	} `json:"current"`
	CurrentRound int               `json:"current_round"`
	Score        int               `json:"score"`
	Results      []json.RawMessage `json:"results"`
	ShowResult   bool              `json:"show_result"`
	IsGameOver   bool              `json:"is_game_over"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestReady(t *testing.T) {
	rec := do(t, newTestServer(t, stubPinger{}), http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, newTestServer(t, stubPinger{err: errors.New("disk gone")}), http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCatalogEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/catalog/trend?difficulty=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Label string `json:"label"`
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}](t, rec)
	assert.Equal(t, "Easy", body.Label)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "rice", body.Items[0].ID)

	rec = do(t, h, http.MethodGet, "/catalog/poker", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/catalog/trend?difficulty=9", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[errorResponse](t, rec).Error.Code)
}

func TestTrendGameOverHTTP(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/games", map[string]any{"variant": "trend", "difficulty": 2, "rounds": 1})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[snapshotBody](t, rec)
	assert.Equal(t, "/games/"+created.ID, rec.Header().Get("Location"))
	base := "/games/" + created.ID

	rec = do(t, h, http.MethodPost, base+"/answer", map[string]any{"predicted_price": 160, "confidence": "high"})
	assert.Equal(t, http.StatusConflict, rec.Code, "answer before start")

	rec = do(t, h, http.MethodPost, base+"/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var st roundState
	require.NoError(t, json.Unmarshal(decode[snapshotBody](t, rec).State, &st))
	require.NotNil(t, st.Current)
	assert.Equal(t, "rice", st.Current.ID)

	rec = do(t, h, http.MethodPost, base+"/answer", map[string]any{"predicted_price": 160, "confidence": "high", "reasoning": "steady climb"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(decode[snapshotBody](t, rec).State, &st))
	assert.True(t, st.ShowResult)
	assert.Len(t, st.Results, 1)
	assert.Positive(t, st.Score)

	rec = do(t, h, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(decode[snapshotBody](t, rec).State, &st))
	assert.True(t, st.IsGameOver)

	rec = do(t, h, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorResponse](t, rec).Error.Code)
}

func TestCreateGameRejectsBadInput(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/games", map[string]any{"variant": "poker"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[errorResponse](t, rec).Error.Code)

	req := httptest.NewRequest(http.MethodPost, "/games", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "BAD_REQUEST", decode[errorResponse](t, rr).Error.Code)
}

func TestFlipOnRoundGame(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/games", map[string]any{"variant": "guess"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[snapshotBody](t, rec).ID

	rec = do(t, h, http.MethodPost, "/games/"+id+"/flip", map[string]any{"cardId": "card-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/games", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMemoryStream(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t, nil))
	defer srv.Close()

	res, err := http.Post(srv.URL+"/games", "application/json", strings.NewReader(`{"variant":"memory","level":"easy"}`))
	require.NoError(t, err)
	var created snapshotBody
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/games/" + created.ID + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var first snapshotBody
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, created.ID, first.ID)

	res, err = http.Post(srv.URL+"/games/"+created.ID+"/start", "application/json", nil)
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var started snapshotBody
	require.NoError(t, conn.ReadJSON(&started))
	var mem struct {
		Phase string `json:"phase"`
		Cards []struct {
			ItemName string `json:"item_name"`
		} `json:"cards"`
	}
	require.NoError(t, json.Unmarshal(started.State, &mem))
	assert.Equal(t, "playing", mem.Phase)
	require.Len(t, mem.Cards, 8)
	for _, c := range mem.Cards {
		assert.Empty(t, c.ItemName)
	}

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/games/"+created.ID, nil)
	require.NoError(t, err)
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
			break
		}
	}
}

func TestStreamUnknownGame(t *testing.T) {
	h := newTestServer(t, nil)
	rec := do(t, h, http.MethodGet, "/games/nope/stream", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
