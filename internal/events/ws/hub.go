// Package ws pushes change notifications to the websocket sessions of the owning user.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/empower_finance_app/internal/core/ports"
	"github.com/olahol/melody"
)

const userIDKey = "user_id"

// Hub tracks connected sessions. Clients never send data; inbound messages are ignored.
type Hub struct {
	m *melody.Melody
}

var _ ports.EventPublisher = (*Hub)(nil)

// NewHub configures melody with keep-alive pings.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	m := melody.New()
	m.Config.MaxMessageSize = 512
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get(userIDKey)
		logger.Debug("Websocket client connected", slog.Any("user_id", userID))
	})
	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get(userIDKey)
		logger.Debug("Websocket client disconnected", slog.Any("user_id", userID))
	})
	m.HandleError(func(s *melody.Session, err error) {
		logger.Warn("Websocket error", slog.String("error", err.Error()))
	})

	return &Hub{m: m}
}

// Serve upgrades the request and binds the session to userID before it is registered,
// so no broadcast can reach it unfiltered.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string) error {
	return h.m.HandleRequestWithKeys(w, r, map[string]any{userIDKey: userID})
}

// Publish broadcasts the event to the sessions of event.UserID only.
func (h *Hub) Publish(_ context.Context, event ports.Event) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return h.m.BroadcastFilter(msg, func(s *melody.Session) bool {
		id, ok := s.Get(userIDKey)
		return ok && id == event.UserID
	})
}

// Len is the number of connected sessions.
func (h *Hub) Len() int {
	return h.m.Len()
}

// Close disconnects every session.
func (h *Hub) Close() error {
	return h.m.Close()
}
