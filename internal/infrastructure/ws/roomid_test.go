package ws_test

import (
	"testing"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/ws"
	"github.com/stretchr/testify/assert"
)

func TestIsValidRoomID(t *testing.T) {
	tests := []struct {
		name   string
		roomID string
		want   bool
	}{
		{name: "group room", roomID: "group:team-alpha", want: true},
		{name: "channel room", roomID: "channel:general", want: true},
		{name: "user room with underscore", roomID: "user:abc_123", want: true},
		{name: "broadcast room", roomID: "broadcast:all", want: true},
		{name: "empty suffix", roomID: "group:", want: false},
		{name: "unknown prefix", roomID: "groups:x", want: false},
		{name: "missing separator", roomID: "group", want: false},
		{name: "empty string", roomID: "", want: false},
		{name: "disallowed character", roomID: "channel:gen eral", want: false},
		{name: "disallowed unicode", roomID: "channel:café", want: false},
		{name: "trailing garbage", roomID: "channel:general\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ws.IsValidRoomID(tt.roomID))
		})
	}
}

func TestIsDefaultRoom(t *testing.T) {
	assert.True(t, ws.IsDefaultRoom("user:42", "42"))
	assert.False(t, ws.IsDefaultRoom("user:42", "43"))
	assert.True(t, ws.IsDefaultRoom("broadcast:all", "42"))
	assert.True(t, ws.IsDefaultRoom("broadcast:all", "anyone"))
	assert.False(t, ws.IsDefaultRoom("channel:general", "42"))
}

func TestUserRoom(t *testing.T) {
	assert.Equal(t, "user:u1", ws.UserRoom("u1"))
}
