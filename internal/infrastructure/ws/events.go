package ws

// Client-to-server events
const (
	RoomJoin    = "room.join"
	RoomLeave   = "room.leave"
	RoomMembers = "room.members"
	MessageSend = "message.send"
	Ping        = "ping"
)

// Server-to-client events
const (
	ConnectionReady = "connection.ready"

	RoomJoined     = "room.joined"
	RoomLeft       = "room.left"
	RoomMemberList = "room.member_list"

	MessageReceived = "message.received"
	Pong            = "pong"

	ErrorEvent = "error"
)

// Error codes carried by ErrorEvent payloads
const (
	CodeAuthFailed    = "AUTH_FAILED"
	CodeInvalidRoomID = "INVALID_ROOM_ID"
	CodeDefaultRoom   = "DEFAULT_ROOM"
	CodeNotAMember    = "NOT_A_MEMBER"
	CodeBadPayload    = "BAD_PAYLOAD"
	CodeUnknownEvent  = "UNKNOWN_EVENT"
)
