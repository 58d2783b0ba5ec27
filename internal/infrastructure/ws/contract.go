package ws

import "encoding/json"

// Envelope is the wire frame for every gateway event, both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// outbound carries an already-materialized payload; it marshals to the same
// shape as Envelope.
type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Payload structs

type RoomPayload struct {
	RoomID string `json:"roomId"`
}

type SendMessagePayload struct {
	RoomID  string `json:"roomId"`
	Content string `json:"content"`
}

type ReadyPayload struct {
	ConnectionID string   `json:"connectionId"`
	UserID       string   `json:"userId"`
	SessionID    string   `json:"sessionId"`
	Rooms        []string `json:"rooms"`
}

type RoomJoinedPayload struct {
	RoomID      string `json:"roomId"`
	MemberCount int    `json:"memberCount"`
}

type RoomLeftPayload struct {
	RoomID string `json:"roomId"`
}

type MemberListPayload struct {
	RoomID      string   `json:"roomId"`
	Members     []string `json:"members"`
	MemberCount int      `json:"memberCount"`
}

type MessagePayload struct {
	RoomID    string `json:"roomId"`
	Content   string `json:"content"`
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	SentAt    string `json:"sentAt"`
}

type PongPayload struct {
	Time string `json:"time"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	RoomID  string `json:"roomId,omitempty"`
}

func NewReady(connectionID, userID, sessionID string, rooms []string) *outbound {
	return &outbound{
		Event: ConnectionReady,
		Data: ReadyPayload{
			ConnectionID: connectionID,
			UserID:       userID,
			SessionID:    sessionID,
			Rooms:        rooms,
		},
	}
}

func NewRoomJoined(roomID string, memberCount int) *outbound {
	return &outbound{
		Event: RoomJoined,
		Data: RoomJoinedPayload{
			RoomID:      roomID,
			MemberCount: memberCount,
		},
	}
}

func NewRoomLeft(roomID string) *outbound {
	return &outbound{
		Event: RoomLeft,
		Data:  RoomLeftPayload{RoomID: roomID},
	}
}

func NewMemberList(roomID string, members []string) *outbound {
	return &outbound{
		Event: RoomMemberList,
		Data: MemberListPayload{
			RoomID:      roomID,
			Members:     members,
			MemberCount: len(members),
		},
	}
}

func NewMessageReceived(roomID, content, userID, sessionID, sentAt string) *outbound {
	return &outbound{
		Event: MessageReceived,
		Data: MessagePayload{
			RoomID:    roomID,
			Content:   content,
			UserID:    userID,
			SessionID: sessionID,
			SentAt:    sentAt,
		},
	}
}

func NewPong(now string) *outbound {
	return &outbound{
		Event: Pong,
		Data:  PongPayload{Time: now},
	}
}

func NewErrorEvent(code, message, roomID string) *outbound {
	return &outbound{
		Event: ErrorEvent,
		Data: ErrorPayload{
			Code:    code,
			Message: message,
			RoomID:  roomID,
		},
	}
}
