package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"egg-hunt-api/internal/events"
	"egg-hunt-api/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// FeedHandler serves the live change feed. Each websocket connection owns
// one subscription handle, opened on upgrade and closed with the
// connection; nothing here is process-global.
type FeedHandler struct {
	subscriber events.Subscriber
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewFeedHandler(subscriber events.Subscriber, m *metrics.Metrics, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		subscriber: subscriber,
		metrics:    m,
		logger:     logger,
	}
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// HandleFeed godoc
// @Summary      Live change feed
// @Description  Streams change hints for the code catalog and the progress
// @Description  ledger. Payloads are staleness hints, not deltas: re-fetch
// @Description  what you display when one arrives.
// @Tags         feed
// @Success      101 {string} string "Switching Protocols"
// @Router       /ws/feed [get]
func (h *FeedHandler) HandleFeed(c *gin.Context) {
	sub, err := h.subscriber.Subscribe(c.Request.Context(),
		events.TableSecretCodes,
		events.TableFoundRecords,
	)
	if err != nil {
		h.logger.Warn("Live feed unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Live feed unavailable"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sub.Close()
		h.logger.Error("Failed to upgrade feed connection", zap.Error(err))
		return
	}

	client := &feedClient{
		conn: conn,
		send: make(chan []byte, 32),
	}

	if h.metrics != nil {
		h.metrics.FeedConnectionOpened()
	}
	h.logger.Info("Feed client connected", zap.String("remote", conn.RemoteAddr().String()))

	go h.forward(client, sub)
	go h.writePump(client)
	h.readPump(client, sub)
}

// forward moves events from the subscription to the client's send queue.
// Slow clients lose hints, never block the feed.
func (h *FeedHandler) forward(client *feedClient, sub events.Subscription) {
	defer close(client.send)

	for event := range sub.Events() {
		select {
		case client.send <- event.Encode():
		default:
		}
	}
}

// readPump discards inbound frames; the feed is one-way. It exists to run
// the pong handler and to notice the connection closing, at which point the
// subscription handle is released.
func (h *FeedHandler) readPump(client *feedClient, sub events.Subscription) {
	defer func() {
		sub.Close()
		client.conn.Close()
		if h.metrics != nil {
			h.metrics.FeedConnectionClosed()
		}
		h.logger.Info("Feed client disconnected", zap.String("remote", client.conn.RemoteAddr().String()))
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("Feed connection error", zap.Error(err))
			}
			break
		}
	}
}

func (h *FeedHandler) writePump(client *feedClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
