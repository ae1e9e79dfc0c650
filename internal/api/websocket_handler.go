package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kingrain94/tenant-items-api/internal/api/dto"
	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/tenant"
	"github.com/kingrain94/tenant-items-api/pkg/logger"
)

const (
	websocketReadBufferSize        = 1024
	websocketWriteBufferSize       = 1024
	websocketSendChannelBufferSize = 256

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  websocketReadBufferSize,
	WriteBufferSize: websocketWriteBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventSubscriber delivers a tenant's item events until ctx is done.
type EventSubscriber interface {
	Subscribe(ctx context.Context, schema string, callback func(domain.ItemEvent)) error
}

type streamClient struct {
	conn   *websocket.Conn
	schema string
	send   chan []byte
}

type WebSocketHandler struct {
	*BaseHandler
	subscriber EventSubscriber
	logger     *logger.Logger
}

func NewWebSocketHandler(subscriber EventSubscriber, logger *logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		subscriber: subscriber,
		logger:     logger,
	}
}

// StreamItems Stream the tenant's item changes
// @Summary Item change stream
// @Description Upgrades to a websocket that receives ITEM_CREATED and ITEM_UPDATED events of the caller's tenant only
// @Tags    items
// @Security BearerAuth
// @Success 101
// @Failure 401 {object} dto.Error
// @Router  /item-stream [get]
func (h *WebSocketHandler) StreamItems(c *gin.Context) {
	schema, ok := tenant.SchemaFromContext(c.Request.Context())
	if !ok || schema == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error{Code: http.StatusBadRequest, Detail: "No tenant resolved for this host"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection", zap.String("schema", schema), zap.Error(err))
		return
	}

	client := &streamClient{
		conn:   conn,
		schema: schema,
		send:   make(chan []byte, websocketSendChannelBufferSize),
	}

	// the subscription lives as long as the connection, not the HTTP request
	ctx, cancel := context.WithCancel(context.Background())
	if err := h.subscriber.Subscribe(ctx, schema, h.deliver(client, cancel)); err != nil {
		h.logger.Error("Failed to subscribe to item events", err, zap.String("schema", schema))
		cancel()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscription failed"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	go h.writePump(ctx, client)
	go h.readPump(client, cancel)
}

// deliver queues an event for the client; a client too slow to drain its
// buffer is disconnected.
func (h *WebSocketHandler) deliver(client *streamClient, cancel context.CancelFunc) func(domain.ItemEvent) {
	return func(event domain.ItemEvent) {
		if event.Schema != client.schema {
			return
		}

		message, err := json.Marshal(event)
		if err != nil {
			h.logger.Error("Error marshaling item event", err)
			return
		}

		select {
		case client.send <- message:
		default:
			h.logger.Warn("Dropping slow stream client", zap.String("schema", client.schema))
			cancel()
		}
	}
}

func (h *WebSocketHandler) writePump(ctx context.Context, client *streamClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			_ = client.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

func (h *WebSocketHandler) readPump(client *streamClient, cancel context.CancelFunc) {
	defer cancel()

	client.conn.SetReadLimit(512)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Unexpected close of stream client", zap.String("schema", client.schema), zap.Error(err))
			}
			return
		}
	}
}
