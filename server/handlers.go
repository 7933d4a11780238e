package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/duelscore/duelscore/cards"
	"github.com/duelscore/duelscore/duel"
	"github.com/duelscore/duelscore/hands"
	"github.com/duelscore/duelscore/metrics"
	"github.com/duelscore/duelscore/store"
)

const (
	maxMatchBody     = 10 << 20 // cap on uploaded match input
	defaultListLimit = 50
)

// DuelRequest carries two five-card hands as two-character codes
type DuelRequest struct {
	First  []string `json:"first"`
	Second []string `json:"second"`
}

// HandResponse describes one evaluated hand
type HandResponse struct {
	Cards    []string `json:"cards"`
	Category string   `json:"category"`
}

// DuelResponse is the scored result of one showdown
type DuelResponse struct {
	Outcome string       `json:"outcome"`
	First   HandResponse `json:"first"`
	Second  HandResponse `json:"second"`
}

// MatchResponse reports a scored match and its totals under the
// configured tie policy
type MatchResponse struct {
	ID         string     `json:"id,omitempty"`
	Tally      duel.Tally `json:"tally"`
	FirstWins  int        `json:"firstTotal"`
	SecondWins int        `json:"secondTotal"`
}

// handleScoreDuel scores a single showdown posted as JSON
func (s *Server) handleScoreDuel(w http.ResponseWriter, r *http.Request) {
	var req DuelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}

	first, err := parseHand(req.First)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("first hand: %w", err))
		return
	}
	second, err := parseHand(req.Second)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("second hand: %w", err))
		return
	}

	e1 := hands.Evaluate(first)
	e2 := hands.Evaluate(second)
	outcome := hands.CompareEvaluations(e1, e2)

	metrics.RecordDuel(outcome.String())
	metrics.RecordHand(e1.Category.String())
	metrics.RecordHand(e2.Category.String())

	resp := DuelResponse{
		Outcome: outcome.String(),
		First:   HandResponse{Cards: e1.Cards.Codes(), Category: e1.Category.String()},
		Second:  HandResponse{Cards: e2.Cards.Codes(), Category: e2.Category.String()},
	}
	s.hub.Broadcast(resp)

	writeJSON(w, http.StatusOK, resp)
}

// handleScoreMatch scores a plain-text body of showdown lines, persists
// the tally, and broadcasts each result on the feed
func (s *Server) handleScoreMatch(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxMatchBody)

	opts := []duel.Option{duel.WithObserver(s.observeResult)}
	if s.cfg.SkipMalformed {
		opts = append(opts, duel.WithSkipMalformed())
	}

	tally, err := duel.NewScorer(opts...).Score(body)
	if err != nil {
		var malformed *duel.MalformedLineError
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &malformed), errors.Is(err, cards.ErrInvalidCardCode):
			metrics.RecordMalformedLine()
			writeError(w, http.StatusBadRequest, err)
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	resp := MatchResponse{Tally: tally}
	resp.FirstWins, resp.SecondWins = tally.Totals(s.cfg.TiePolicyValue())

	if s.store != nil {
		match := store.Match{
			ID:        uuid.NewString(),
			Source:    r.RemoteAddr,
			Tally:     tally,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.store.SaveMatch(match); err != nil {
			s.logger.Error("saving match failed", "error", err)
		} else {
			metrics.RecordMatchSaved()
			resp.ID = match.ID
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// observeResult feeds per-line results into metrics and the live feed
func (s *Server) observeResult(res duel.Result) {
	metrics.RecordDuel(res.Outcome.String())
	metrics.RecordHand(res.First.Category.String())
	metrics.RecordHand(res.Second.Category.String())

	s.hub.Broadcast(DuelResponse{
		Outcome: res.Outcome.String(),
		First:   HandResponse{Cards: res.First.Cards.Codes(), Category: res.First.Category.String()},
		Second:  HandResponse{Cards: res.Second.Cards.Codes(), Category: res.Second.Category.String()},
	})
}

// handleListMatches returns the most recently persisted matches
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, errors.New("persistence disabled"))
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit: %q", raw))
			return
		}
		limit = parsed
	}

	matches, err := s.store.ListMatches(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if matches == nil {
		matches = []store.Match{}
	}

	writeJSON(w, http.StatusOK, matches)
}

// handleGetMatch returns one persisted match by ID
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, errors.New("persistence disabled"))
		return
	}

	id := mux.Vars(r)["id"]
	match, err := s.store.GetMatch(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, match)
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseHand parses and validates a five-card hand from shorthand codes
func parseHand(codes []string) (cards.Stack, error) {
	if len(codes) != duel.HandSize {
		return nil, fmt.Errorf("expected %d cards, got %d", duel.HandSize, len(codes))
	}
	return cards.ParseStack(codes...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already out; an encode failure has nowhere to go.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
