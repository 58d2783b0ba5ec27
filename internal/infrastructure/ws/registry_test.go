package ws_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/logging"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddRemoveLeavesRoomAbsent(t *testing.T) {
	r := ws.NewRegistry(logging.NewNop())

	r.AddMember("channel:general", "c1")
	require.Equal(t, 1, r.MemberCount("channel:general"))

	r.RemoveMember("channel:general", "c1")
	assert.Equal(t, 0, r.MemberCount("channel:general"))
	assert.NotContains(t, r.Rooms(), "channel:general")
}

func TestRegistry_AddMemberIsIdempotent(t *testing.T) {
	r := ws.NewRegistry(logging.NewNop())

	r.AddMember("group:team-alpha", "c1")
	r.AddMember("group:team-alpha", "c1")

	assert.Equal(t, 1, r.MemberCount("group:team-alpha"))
}

func TestRegistry_MembersOfUnknownRoom(t *testing.T) {
	r := ws.NewRegistry(logging.NewNop())

	members := r.Members("channel:never-touched")
	require.NotNil(t, members)
	assert.Empty(t, members)
	assert.Equal(t, 0, r.MemberCount("channel:never-touched"))
	assert.False(t, r.Contains("channel:never-touched", "c1"))
}

func TestRegistry_RemoveMemberIsANoOpWhenAbsent(t *testing.T) {
	r := ws.NewRegistry(logging.NewNop())

	// Neither the unknown room nor the unknown member may panic or create state.
	r.RemoveMember("channel:ghost", "c1")

	r.AddMember("channel:general", "c1")
	r.RemoveMember("channel:general", "c2")

	assert.Equal(t, 1, r.MemberCount("channel:general"))
	assert.Empty(t, r.Members("channel:ghost"))
}

func TestRegistry_RemoveConnectionEverywhere(t *testing.T) {
	r := ws.NewRegistry(logging.NewNop())

	r.AddMember("group:a", "c1")
	r.AddMember("channel:b", "c1")
	r.AddMember("channel:b", "c2")

	r.RemoveConnectionEverywhere("c1")

	assert.Equal(t, 0, r.MemberCount("group:a"))
	assert.NotContains(t, r.Rooms(), "group:a")

	// c2 keeps channel:b alive
	assert.Equal(t, 1, r.MemberCount("channel:b"))
	assert.True(t, r.Contains("channel:b", "c2"))
	assert.False(t, r.Contains("channel:b", "c1"))
}

func TestRegistry_RemoveConnectionEverywhereDeletesEmptiedRooms(t *testing.T) {
	r := ws.NewRegistry(logging.NewNop())

	r.AddMember("group:a", "c1")
	r.AddMember("channel:b", "c1")

	r.RemoveConnectionEverywhere("c1")

	assert.Equal(t, 0, r.MemberCount("group:a"))
	assert.Equal(t, 0, r.MemberCount("channel:b"))
	assert.Empty(t, r.Rooms())
}

func TestRegistry_Snapshot(t *testing.T) {
	r := ws.NewRegistry(logging.NewNop())

	r.AddMember("channel:b", "c1")
	r.AddMember("channel:b", "c2")
	r.AddMember("user:u1", "c1")

	snapshot := r.Snapshot()
	assert.Equal(t, map[string]int{"channel:b": 2, "user:u1": 1}, snapshot)
}

func TestRegistry_ConcurrentMutation(t *testing.T) {
	r := ws.NewRegistry(logging.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			connID := fmt.Sprintf("c%d", n)
			r.AddMember("broadcast:all", connID)
			r.AddMember("channel:general", connID)
			r.RemoveConnectionEverywhere(connID)
		}(i)
	}
	wg.Wait()

	assert.Empty(t, r.Rooms())
}
