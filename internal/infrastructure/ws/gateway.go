package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/docs"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/auth"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/configs"
	appjson "github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/json"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/logging"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Gateway authenticates handshakes, routes inbound events and keeps the
// registry consistent with connection lifecycle. All events for one
// connection run on that connection's read goroutine, so disconnect cleanup
// is serialized behind any in-flight join or leave for the same connection.
// Cross-connection state serializes on the registry mutex and the clients
// table mutex.
type Gateway struct {
	cfg           configs.GatewayConfig
	authenticator *auth.Authenticator
	registry      *Registry
	logger        logging.Logger
	upgrader      websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*Client // connectionID → Client
}

func NewGateway(
	cfg configs.GatewayConfig,
	authenticator *auth.Authenticator,
	registry *Registry,
	docsRegistry *docs.Registry,
	logger logging.Logger,
) *Gateway {
	g := &Gateway{
		cfg:           cfg,
		authenticator: authenticator,
		registry:      registry,
		logger:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // origin policy is the CORS middleware's job
		},
		clients: make(map[string]*Client),
	}

	registerDescriptors(docsRegistry, logger)

	return g
}

// HandleUpgrade is the handshake boundary. Authentication happens before the
// protocol upgrade: a connection with a bad credential is refused with 401
// and never touches the registry.
func (g *Gateway) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	token := auth.BearerToken(r.Header.Get("Authorization"))
	if token == "" {
		// Browser WebSocket clients cannot set headers on the upgrade request.
		token = r.URL.Query().Get("token")
	}

	identity, err := g.authenticator.Verify(token)
	if err != nil {
		authFailures.Inc()
		g.logger.Warn(logging.Auth, logging.Handshake, "handshake refused", map[logging.ExtraKey]any{
			logging.ClientIp:     r.RemoteAddr,
			logging.ErrorMessage: err.Error(),
		})
		appjson.WriteUnauthorizedError(w, err, "Missing or invalid credential")
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error(logging.Gateway, logging.Handshake, "upgrade failed", map[logging.ExtraKey]any{
			logging.ClientIp:     r.RemoteAddr,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	client := newClient(g, conn, uuid.NewString(), identity)
	g.admit(client)

	go client.writePump()
	go client.readPump()
}

// admit registers the connection and auto-joins its two default rooms.
func (g *Gateway) admit(c *Client) {
	g.mu.Lock()
	g.clients[c.ID] = c
	total := len(g.clients)
	g.mu.Unlock()

	defaultRooms := []string{UserRoom(c.Identity.UserID), BroadcastRoom}
	for _, roomID := range defaultRooms {
		g.registry.AddMember(roomID, c.ID)
		roomJoins.Inc()
	}

	activeConnections.Set(float64(total))
	activeRooms.Set(float64(len(g.registry.Rooms())))

	g.logger.Info(logging.Gateway, logging.Connect, "connection admitted", map[logging.ExtraKey]any{
		logging.ConnectionID: c.ID,
		logging.UserID:       c.Identity.UserID,
		logging.SessionID:    c.Identity.SessionID,
	})

	c.Send(NewReady(c.ID, c.Identity.UserID, c.Identity.SessionID, defaultRooms))
}

// disconnect runs exactly once per connection, on its read goroutine, for
// graceful closes and abrupt drops alike.
func (g *Gateway) disconnect(c *Client) {
	g.mu.Lock()
	if _, ok := g.clients[c.ID]; !ok {
		g.mu.Unlock()
		return
	}
	delete(g.clients, c.ID)
	total := len(g.clients)
	g.mu.Unlock()

	g.registry.RemoveConnectionEverywhere(c.ID)
	c.closeSend()

	activeConnections.Set(float64(total))
	activeRooms.Set(float64(len(g.registry.Rooms())))

	g.logger.Info(logging.Gateway, logging.Disconnect, "connection removed", map[logging.ExtraKey]any{
		logging.ConnectionID: c.ID,
		logging.UserID:       c.Identity.UserID,
	})
}

// dispatch routes one inbound frame. Recoverable failures answer with an
// error event and leave the connection open.
func (g *Gateway) dispatch(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.Send(NewErrorEvent(CodeBadPayload, "malformed event envelope", ""))
		return
	}

	eventsDispatched.WithLabelValues(env.Event).Inc()

	switch env.Event {
	case RoomJoin:
		g.handleJoin(c, env.Data)
	case RoomLeave:
		g.handleLeave(c, env.Data)
	case RoomMembers:
		g.handleMembers(c, env.Data)
	case MessageSend:
		g.handleMessage(c, env.Data)
	case Ping:
		c.Send(NewPong(time.Now().UTC().Format(time.RFC3339)))
	default:
		c.Send(NewErrorEvent(CodeUnknownEvent, "unknown event: "+env.Event, ""))
	}
}

func decodeRoomID(data json.RawMessage) (string, error) {
	var p RoomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return "", err
	}
	if p.RoomID == "" {
		return "", errors.New("roomId is required")
	}
	return p.RoomID, nil
}

func (g *Gateway) handleJoin(c *Client, data json.RawMessage) {
	roomID, err := decodeRoomID(data)
	if err != nil {
		c.Send(NewErrorEvent(CodeBadPayload, err.Error(), ""))
		return
	}

	if !IsValidRoomID(roomID) {
		g.logger.Debug(logging.Gateway, logging.Dispatch, "join rejected: invalid room id", map[logging.ExtraKey]any{
			logging.ConnectionID: c.ID,
			logging.RoomID:       roomID,
		})
		c.Send(NewErrorEvent(CodeInvalidRoomID, "room id does not match (group|channel|user|broadcast):[A-Za-z0-9_-]+", roomID))
		return
	}

	g.registry.AddMember(roomID, c.ID)
	roomJoins.Inc()
	activeRooms.Set(float64(len(g.registry.Rooms())))

	c.Send(NewRoomJoined(roomID, g.registry.MemberCount(roomID)))
}

func (g *Gateway) handleLeave(c *Client, data json.RawMessage) {
	roomID, err := decodeRoomID(data)
	if err != nil {
		c.Send(NewErrorEvent(CodeBadPayload, err.Error(), ""))
		return
	}

	// Default rooms are bound to the connection's identity; a leave request
	// is rejected without touching membership and the connection stays open.
	if IsDefaultRoom(roomID, c.Identity.UserID) {
		g.logger.Debug(logging.Gateway, logging.Dispatch, "leave rejected: default room", map[logging.ExtraKey]any{
			logging.ConnectionID: c.ID,
			logging.RoomID:       roomID,
		})
		c.Send(NewErrorEvent(CodeDefaultRoom, "cannot leave a default room", roomID))
		return
	}

	g.registry.RemoveMember(roomID, c.ID)
	roomLeaves.Inc()
	activeRooms.Set(float64(len(g.registry.Rooms())))

	c.Send(NewRoomLeft(roomID))
}

func (g *Gateway) handleMembers(c *Client, data json.RawMessage) {
	roomID, err := decodeRoomID(data)
	if err != nil {
		c.Send(NewErrorEvent(CodeBadPayload, err.Error(), ""))
		return
	}

	c.Send(NewMemberList(roomID, g.registry.Members(roomID)))
}

func (g *Gateway) handleMessage(c *Client, data json.RawMessage) {
	var p SendMessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.Send(NewErrorEvent(CodeBadPayload, err.Error(), ""))
		return
	}
	if p.RoomID == "" || p.Content == "" {
		c.Send(NewErrorEvent(CodeBadPayload, "roomId and content are required", p.RoomID))
		return
	}

	if !g.registry.Contains(p.RoomID, c.ID) {
		c.Send(NewErrorEvent(CodeNotAMember, "join the room before sending to it", p.RoomID))
		return
	}

	msg := NewMessageReceived(p.RoomID, p.Content, c.Identity.UserID, c.Identity.SessionID, time.Now().UTC().Format(time.RFC3339))
	g.broadcastToRoom(p.RoomID, msg)
}

// broadcastToRoom fans an event out to every current member of the room.
func (g *Gateway) broadcastToRoom(roomID string, msg *outbound) {
	members := g.registry.Members(roomID)

	g.mu.RLock()
	for _, connectionID := range members {
		if client, ok := g.clients[connectionID]; ok {
			client.Send(msg)
			messagesFanout.Inc()
		}
	}
	g.mu.RUnlock()
}

// Stats is a point-in-time snapshot for the stats endpoint.
type Stats struct {
	Connections int            `json:"connections"`
	Rooms       int            `json:"rooms"`
	Members     map[string]int `json:"members"`
}

func (g *Gateway) Stats() Stats {
	g.mu.RLock()
	connections := len(g.clients)
	g.mu.RUnlock()

	snapshot := g.registry.Snapshot()

	return Stats{
		Connections: connections,
		Rooms:       len(snapshot),
		Members:     snapshot,
	}
}
