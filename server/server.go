// Package server exposes duel scoring over HTTP and a WebSocket feed.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/duelscore/duelscore/config"
	"github.com/duelscore/duelscore/server/feed"
	"github.com/duelscore/duelscore/store"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin policy is enforced by the CORS layer
	},
}

// MatchStore persists scored matches
type MatchStore interface {
	SaveMatch(store.Match) error
	GetMatch(id string) (store.Match, error)
	ListMatches(limit int) ([]store.Match, error)
}

// Server wires the scoring endpoints, the result feed, and persistence
type Server struct {
	cfg    *config.Config
	store  MatchStore
	hub    *feed.Hub
	logger *slog.Logger
}

// New creates a server. st may be nil to disable persistence.
func New(cfg *config.Config, st MatchStore, hub *feed.Hub, logger *slog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		store:  st,
		hub:    hub,
		logger: logger,
	}
}

// Handler builds the full HTTP handler: routes, CORS, and middleware
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/duels", s.handleScoreDuel).Methods(http.MethodPost)
	r.HandleFunc("/api/matches", s.handleScoreMatch).Methods(http.MethodPost)
	r.HandleFunc("/api/matches", s.handleListMatches).Methods(http.MethodGet)
	r.HandleFunc("/api/matches/{id}", s.handleGetMatch).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleFeed)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.Use(s.observeMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{s.cfg.CORSOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return c.Handler(r)
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	go s.hub.Start()

	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// handleFeed upgrades the connection and subscribes it to the result feed
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &feed.Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	s.hub.Register <- client

	go s.readPump(client)
	go s.writePump(client)
}

// readPump drains the WebSocket connection; the feed is one-way, so
// incoming messages are discarded and only the close matters.
func (s *Server) readPump(client *feed.Client) {
	defer func() {
		s.hub.Unregister <- client
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Debug("websocket read failed", "client", client.ID, "error", err)
			}
			break
		}
	}
}

// writePump sends queued feed messages to the WebSocket connection
func (s *Server) writePump(client *feed.Client) {
	defer client.Conn.Close()

	for {
		message, ok := <-client.Send
		if !ok {
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			s.logger.Debug("websocket write failed", "client", client.ID, "error", err)
			return
		}
	}
}
