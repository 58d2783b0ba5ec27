package ws

import (
	"github.com/DONGWAN-LEE/vibe-gateway/internal/docs"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/logging"
)

const (
	descriptorNamespace = "gateway"
	categoryRooms       = "rooms"
	categoryMessaging   = "messaging"
	categoryLifecycle   = "lifecycle"
)

var roomIDField = docs.Field{
	Name:        "roomId",
	Type:        "string",
	Required:    true,
	Description: "Room identifier matching (group|channel|user|broadcast):[A-Za-z0-9_-]+",
	Example:     "channel:general",
}

// registerDescriptors supplies the gateway's event records to the docs
// registry. A rejected descriptor is logged and skipped so a single bad
// record cannot abort startup.
func registerDescriptors(registry *docs.Registry, logger logging.Logger) {
	descriptors := []docs.EventDescriptor{
		{
			EventName:    ConnectionReady,
			Description:  "Emitted once after a successful handshake, listing the default rooms the connection was placed in.",
			Direction:    docs.ServerToClient,
			RequiresAuth: true,
			Response: []docs.Field{
				{Name: "connectionId", Type: "string", Description: "Transport-assigned connection identifier"},
				{Name: "userId", Type: "string", Description: "Authenticated user id", Example: "u1"},
				{Name: "sessionId", Type: "string", Description: "Authenticated session id"},
				{Name: "rooms", Type: "array", Description: "Default rooms joined automatically"},
			},
			Namespace: descriptorNamespace,
			Category:  categoryLifecycle,
		},
		{
			EventName:    RoomJoin,
			Description:  "Join an additional room. The identifier must pass syntactic validation.",
			Direction:    docs.ClientToServer,
			RequiresAuth: true,
			Payload:      []docs.Field{roomIDField},
			Response: []docs.Field{
				{Name: "roomId", Type: "string", Description: "Joined room"},
				{Name: "memberCount", Type: "integer", Description: "Size of the room after the join", Example: 2},
			},
			Namespace: descriptorNamespace,
			Category:  categoryRooms,
			Example:   `{"event":"room.join","data":{"roomId":"channel:general"}}`,
		},
		{
			EventName:    RoomLeave,
			Description:  "Leave a previously joined room. Default rooms are refused.",
			Direction:    docs.ClientToServer,
			RequiresAuth: true,
			Payload:      []docs.Field{roomIDField},
			Response: []docs.Field{
				{Name: "roomId", Type: "string", Description: "Left room"},
			},
			Namespace: descriptorNamespace,
			Category:  categoryRooms,
		},
		{
			EventName:    RoomMembers,
			Description:  "List the current members of a room.",
			Direction:    docs.ClientToServer,
			RequiresAuth: true,
			Payload:      []docs.Field{roomIDField},
			Response: []docs.Field{
				{Name: "roomId", Type: "string", Description: "Queried room"},
				{Name: "members", Type: "array", Description: "Connection identifiers currently in the room"},
				{Name: "memberCount", Type: "integer", Description: "Number of members"},
			},
			Namespace: descriptorNamespace,
			Category:  categoryRooms,
		},
		{
			EventName:    MessageSend,
			Description:  "Send a message to a room the connection is a member of.",
			Direction:    docs.ClientToServer,
			RequiresAuth: true,
			Payload: []docs.Field{
				roomIDField,
				{Name: "content", Type: "string", Required: true, Description: "Message body", Example: "hello"},
			},
			Namespace: descriptorNamespace,
			Category:  categoryMessaging,
		},
		{
			EventName:    MessageReceived,
			Description:  "Fan-out of a room message to every member.",
			Direction:    docs.ServerToClient,
			RequiresAuth: true,
			Response: []docs.Field{
				{Name: "roomId", Type: "string", Description: "Source room"},
				{Name: "content", Type: "string", Description: "Message body"},
				{Name: "userId", Type: "string", Description: "Sender user id"},
				{Name: "sessionId", Type: "string", Description: "Sender session id"},
				{Name: "sentAt", Type: "string", Description: "RFC3339 send time"},
			},
			Namespace: descriptorNamespace,
			Category:  categoryMessaging,
		},
		{
			EventName:    Ping,
			Description:  "Application-level liveness probe.",
			Direction:    docs.Bidirectional,
			RequiresAuth: true,
			Response: []docs.Field{
				{Name: "time", Type: "string", Description: "RFC3339 server time"},
			},
			Namespace: descriptorNamespace,
			Category:  categoryLifecycle,
		},
		{
			EventName:    ErrorEvent,
			Description:  "Structured rejection for a recoverable failure; the connection stays open.",
			Direction:    docs.ServerToClient,
			RequiresAuth: true,
			Response: []docs.Field{
				{Name: "code", Type: "string", Description: "Machine-readable error code", Example: CodeInvalidRoomID},
				{Name: "message", Type: "string", Description: "Human-readable reason"},
				{Name: "roomId", Type: "string", Description: "Room the request referred to, when applicable"},
			},
			Namespace: descriptorNamespace,
			Category:  categoryLifecycle,
		},
	}

	for _, d := range descriptors {
		if err := registry.Register(d); err != nil {
			logger.Error(logging.Docs, logging.Collection, "descriptor rejected, skipping", map[logging.ExtraKey]any{
				logging.EventName:    d.EventName,
				logging.ErrorMessage: err.Error(),
			})
		}
	}
}
