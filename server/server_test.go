package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duelscore/duelscore/config"
	"github.com/duelscore/duelscore/duel"
	"github.com/duelscore/duelscore/server/feed"
	"github.com/duelscore/duelscore/store"
)

// memoryStore is an in-memory MatchStore for handler tests
type memoryStore struct {
	matches map[string]store.Match
	order   []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{matches: make(map[string]store.Match)}
}

func (m *memoryStore) SaveMatch(match store.Match) error {
	m.matches[match.ID] = match
	m.order = append(m.order, match.ID)
	return nil
}

func (m *memoryStore) GetMatch(id string) (store.Match, error) {
	match, ok := m.matches[id]
	if !ok {
		return store.Match{}, store.ErrNotFound
	}
	return match, nil
}

func (m *memoryStore) ListMatches(limit int) ([]store.Match, error) {
	var out []store.Match
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.matches[m.order[i]])
	}
	return out, nil
}

func newTestServer(t *testing.T, st MatchStore, mutate func(*config.Config)) (*Server, *feed.Hub) {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := feed.NewHub(logger)
	go hub.Start()

	return New(cfg, st, hub, logger), hub
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestScoreDuel(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	body, err := json.Marshal(DuelRequest{
		First:  []string{"AH", "KH", "QH", "JH", "TH"},
		Second: []string{"9C", "9D", "9S", "9H", "2C"},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/duels", bytes.NewReader(body))
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DuelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "first", resp.Outcome)
	assert.Equal(t, "Royal Flush", resp.First.Category)
	assert.Equal(t, "Four of a Kind", resp.Second.Category)
	assert.Equal(t, []string{"AH", "KH", "QH", "JH", "TH"}, resp.First.Cards)
}

func TestScoreDuel_BadHand(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	tests := []struct {
		name string
		req  DuelRequest
	}{
		{"wrong size", DuelRequest{
			First:  []string{"AH", "KH"},
			Second: []string{"9C", "9D", "9S", "9H", "2C"},
		}},
		{"bad code", DuelRequest{
			First:  []string{"AH", "KH", "QH", "JH", "XX"},
			Second: []string{"9C", "9D", "9S", "9H", "2C"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.req)
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/duels", bytes.NewReader(body))
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestScoreMatch(t *testing.T) {
	st := newMemoryStore()
	srv, _ := newTestServer(t, st, nil)

	input := strings.Join([]string{
		"AH KH QH JH TH 9C 9D 9S 9H 2C",
		"7C 7D 7H 2S 2C 8C 8D 8S 3H 3C",
		"AC JD 9H 6S 3C AD JC 9S 6H 3D",
	}, "\n")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/matches", strings.NewReader(input))
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, duel.Tally{FirstWins: 1, SecondWins: 1, Ties: 1, Lines: 3}, resp.Tally)
	assert.Equal(t, 1, resp.FirstWins)
	assert.Equal(t, 1, resp.SecondWins, "default policy keeps ties separate")
	require.NotEmpty(t, resp.ID)

	saved, err := st.GetMatch(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Tally, saved.Tally)
}

func TestScoreMatch_LegacyTiePolicy(t *testing.T) {
	srv, _ := newTestServer(t, nil, func(cfg *config.Config) {
		cfg.TiePolicy = "second"
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/matches",
		strings.NewReader("AC JD 9H 6S 3C AD JC 9S 6H 3D"))
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.FirstWins)
	assert.Equal(t, 1, resp.SecondWins, "tie credited to player 2 under legacy policy")
}

func TestScoreMatch_Malformed(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/matches",
		strings.NewReader("AH KH QH JH TH 9C 9D 9S 9H"))
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "expected 10 card codes")
}

func TestScoreMatch_SkipMalformed(t *testing.T) {
	srv, _ := newTestServer(t, nil, func(cfg *config.Config) {
		cfg.SkipMalformed = true
	})

	input := strings.Join([]string{
		"AH KH QH JH TH 9C 9D 9S 9H",
		"AH KH QH JH TH 9C 9D 9S 9H 2C",
	}, "\n")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/matches", strings.NewReader(input))
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Tally.Lines)
	assert.Equal(t, 1, resp.Tally.Skipped)
}

func TestGetMatch_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, newMemoryStore(), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/matches/nope", nil)
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMatches_NoStore(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/matches", nil)
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestListMatches_BadLimit(t *testing.T) {
	srv, _ := newTestServer(t, newMemoryStore(), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/matches?limit=zero", nil)
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeed_BroadcastsScoredDuels(t *testing.T) {
	srv, hub := newTestServer(t, nil, nil)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration runs through the hub goroutine; wait for it
	require.Eventually(t, func() bool {
		return hub.Subscribers() == 1
	}, time.Second, 10*time.Millisecond)

	body, err := json.Marshal(DuelRequest{
		First:  []string{"AH", "KH", "QH", "JH", "TH"},
		Second: []string{"9C", "9D", "9S", "9H", "2C"},
	})
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/api/duels", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var event DuelResponse
	require.NoError(t, json.Unmarshal(message, &event))
	assert.Equal(t, "first", event.Outcome)
}

func TestScoreDuel_BadJSON(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/duels", strings.NewReader("{not json"))
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
