package ws

import "regexp"

// BroadcastRoom is the global default room every connection is joined to.
const BroadcastRoom = "broadcast:all"

var roomIDPattern = regexp.MustCompile(`^(group|channel|user|broadcast):[A-Za-z0-9_-]+$`)

// IsValidRoomID reports whether roomID is syntactically acceptable. The check
// runs before any identifier reaches the registry.
func IsValidRoomID(roomID string) bool {
	return roomIDPattern.MatchString(roomID)
}

// UserRoom is the identity-scoped default room for a user.
func UserRoom(userID string) string {
	return "user:" + userID
}

// IsDefaultRoom reports whether roomID is one of the two rooms a connection
// may never leave: its own user room or the broadcast room.
func IsDefaultRoom(roomID, userID string) bool {
	return roomID == UserRoom(userID) || roomID == BroadcastRoom
}
