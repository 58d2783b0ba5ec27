package ws

import (
	"sync"
	"time"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/domain"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/logging"
	"github.com/gorilla/websocket"
)

// Client is one live, authenticated connection. It is owned by the transport
// layer; the registry only ever sees its ID.
type Client struct {
	gateway  *Gateway
	conn     *websocket.Conn
	send     chan *outbound
	closed   sync.Once
	ID       string
	Identity domain.Identity
}

func newClient(gateway *Gateway, conn *websocket.Conn, id string, identity domain.Identity) *Client {
	return &Client{
		gateway:  gateway,
		conn:     conn,
		send:     make(chan *outbound, gateway.cfg.SendBufferSize), // buffered to avoid dead-locks on slow clients
		ID:       id,
		Identity: identity,
	}
}

// Send enqueues an event for delivery. A client whose buffer is full has the
// event dropped rather than stalling the sender.
func (c *Client) Send(msg *outbound) {
	select {
	case c.send <- msg:
	default:
		c.gateway.logger.Warn(logging.Gateway, logging.Dispatch, "send buffer full, dropping event", map[logging.ExtraKey]any{
			logging.ConnectionID: c.ID,
			logging.EventName:    msg.Event,
		})
	}
}

// readPump consumes inbound frames and dispatches them in arrival order.
// Everything for this connection runs on this goroutine, so disconnect
// cleanup in the deferred handler cannot interleave with an in-flight join.
func (c *Client) readPump() {
	defer func() {
		c.gateway.disconnect(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(c.gateway.cfg.MaxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.gateway.cfg.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.gateway.cfg.PongTimeout))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.gateway.logger.Warn(logging.Gateway, logging.Disconnect, "read error", map[logging.ExtraKey]any{
					logging.ConnectionID: c.ID,
					logging.ErrorMessage: err.Error(),
				})
			}
			break
		}

		c.gateway.dispatch(c, raw)
	}
}

// writePump serializes all writes for this connection and keeps the
// transport alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.gateway.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.gateway.cfg.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.gateway.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) closeSend() {
	c.closed.Do(func() {
		close(c.send)
	})
}
