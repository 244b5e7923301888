package api

import (
	"net/http"
	"sync"

	"Metricast/internal/domain/models"
	domrepo "Metricast/internal/domain/repository"
	xhttp "Metricast/pkg/http"
	xlogger "Metricast/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// ForecastHub pushes completed forecast events to WebSocket subscribers.
// It implements domain Broadcaster; slow clients have frames dropped
// rather than blocking the forecast path.
type ForecastHub struct {
	logger   *xlogger.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*wsClient]struct{}
}

type wsClient struct {
	conn *websocket.Conn
	send chan models.ForecastEvent
}

func NewForecastHub(logger *xlogger.Logger) *ForecastHub {
	return &ForecastHub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*wsClient]struct{}),
	}
}

func (h *ForecastHub) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/ws", h.Serve)
}

// Serve upgrades the request and streams forecast events until the
// client disconnects.
func (h *ForecastHub) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}

	client := &wsClient{
		conn: conn,
		send: make(chan models.ForecastEvent, 16),
	}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("websocket client connected", xlogger.Int("clients", total))

	go h.writeLoop(client)
	h.readLoop(client)
	return nil
}

// Broadcast fans an event out to every connected client.
func (h *ForecastHub) Broadcast(event models.ForecastEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- event:
		default:
			// drop on backpressure
		}
	}
}

func (h *ForecastHub) writeLoop(client *wsClient) {
	for event := range client.send {
		if err := client.conn.WriteJSON(event); err != nil {
			h.logger.Warn("websocket write failed", xlogger.Error(err))
			h.remove(client)
			return
		}
	}
}

// readLoop drains control frames and detects disconnects. Inbound data
// frames are ignored; the stream is push-only.
func (h *ForecastHub) readLoop(client *wsClient) {
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			h.remove(client)
			return
		}
	}
}

func (h *ForecastHub) remove(client *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	_ = client.conn.Close()
	h.logger.Info("websocket client disconnected", xlogger.Int("clients", total))
}

// Close disconnects every client.
func (h *ForecastHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
		_ = client.conn.Close()
	}
}

var _ domrepo.Broadcaster = (*ForecastHub)(nil)
var _ xhttp.Handler = (*ForecastHub)(nil)
