package events

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zhouzirui/dexter-show/backend/internal/logging"
	eventsService "github.com/zhouzirui/dexter-show/backend/internal/service/events"
	"github.com/zhouzirui/dexter-show/backend/pkg/utils"
)

const writeWait = 10 * time.Second

// Subscriber hands out event subscriptions.
type Subscriber interface {
	Subscribe() (<-chan eventsService.Event, func())
}

// Handler 目录变更推送的HTTP处理器
type Handler struct {
	hub          Subscriber
	logger       *zap.Logger
	pingInterval time.Duration
	upgrader     websocket.Upgrader
}

// New 创建变更推送处理器
func New(hub Subscriber, pingInterval time.Duration, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Handler{
		hub:          hub,
		logger:       logger.Named("events"),
		pingInterval: pingInterval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册变更推送路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/events/ws", h.handleWebSocket)
	r.Get("/events/stream", h.handleStream)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequest(r.Context(), h.logger)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	feed, cancel := h.hub.Subscribe()
	defer cancel()

	logger.Info("websocket subscriber connected", zap.String("remote_addr", r.RemoteAddr))
	defer logger.Info("websocket subscriber disconnected")

	// Inbound frames are ignored; reading surfaces client close and drives pong handling.
	done := make(chan struct{})
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(2 * h.pingInterval))
	})
	_ = conn.SetReadDeadline(time.Now().Add(2 * h.pingInterval))
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case event, ok := <-feed:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				logger.Warn("websocket write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	feed, cancel := h.hub.Subscribe()
	defer cancel()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	logger := logging.WithRequest(r.Context(), h.logger)
	logger.Info("sse subscriber connected", zap.String("remote_addr", r.RemoteAddr))
	defer logger.Info("sse subscriber disconnected")

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-feed:
			if !ok {
				return
			}
			if err := utils.SendSSEEvent(w, flusher, event.ID, event.Type, event); err != nil {
				return
			}
		case <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "heartbeat"); err != nil {
				return
			}
		}
	}
}
