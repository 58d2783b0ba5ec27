package ws

import (
	"sync"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/logging"
)

// Registry is the bidirectional membership index between room identifiers and
// connection identifiers. It is the only holder of the membership maps; no
// other component mutates them. A room exists exactly as long as it has
// members: the last RemoveMember deletes the entry, which bounds memory to
// active rooms.
//
// Connections are referenced by identifier only, never by pointer, so the
// registry carries no connection lifecycle of its own.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]struct{} // roomID → set of connectionID
	logger logging.Logger
}

func NewRegistry(logger logging.Logger) *Registry {
	return &Registry{
		rooms:  make(map[string]map[string]struct{}),
		logger: logger,
	}
}

// AddMember is idempotent: adding the same connection twice is a no-op.
func (r *Registry) AddMember(roomID, connectionID string) {
	r.mu.Lock()
	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[string]struct{})
		r.rooms[roomID] = members
	}
	members[connectionID] = struct{}{}
	size := len(members)
	r.mu.Unlock()

	r.logger.Debug(logging.Registry, logging.Membership, "member added", map[logging.ExtraKey]any{
		logging.RoomID:       roomID,
		logging.ConnectionID: connectionID,
		logging.RoomSize:     size,
	})
}

// RemoveMember is a no-op when the room or member is absent. The room entry
// is deleted entirely once its member set is empty.
func (r *Registry) RemoveMember(roomID, connectionID string) {
	r.mu.Lock()
	members, ok := r.rooms[roomID]
	if !ok {
		r.mu.Unlock()
		return
	}
	if _, ok := members[connectionID]; !ok {
		r.mu.Unlock()
		return
	}
	delete(members, connectionID)
	size := len(members)
	if size == 0 {
		delete(r.rooms, roomID)
	}
	r.mu.Unlock()

	r.logger.Debug(logging.Registry, logging.Membership, "member removed", map[logging.ExtraKey]any{
		logging.RoomID:       roomID,
		logging.ConnectionID: connectionID,
		logging.RoomSize:     size,
	})
}

// Members returns the member set of roomID; empty for an unknown room.
func (r *Registry) Members(roomID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]string, 0, len(r.rooms[roomID]))
	for connectionID := range r.rooms[roomID] {
		members = append(members, connectionID)
	}
	return members
}

func (r *Registry) MemberCount(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms[roomID])
}

func (r *Registry) Contains(roomID, connectionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[roomID][connectionID]
	return ok
}

// RemoveConnectionEverywhere scans all rooms and drops connectionID from each,
// deleting any room left empty. Called exactly once per disconnect; skipping
// it leaks membership entries for dead connections.
func (r *Registry) RemoveConnectionEverywhere(connectionID string) {
	r.mu.Lock()
	removed := make(map[string]int)
	for roomID, members := range r.rooms {
		if _, ok := members[connectionID]; !ok {
			continue
		}
		delete(members, connectionID)
		removed[roomID] = len(members)
		if len(members) == 0 {
			delete(r.rooms, roomID)
		}
	}
	r.mu.Unlock()

	for roomID, size := range removed {
		r.logger.Debug(logging.Registry, logging.Membership, "member removed on disconnect", map[logging.ExtraKey]any{
			logging.RoomID:       roomID,
			logging.ConnectionID: connectionID,
			logging.RoomSize:     size,
		})
	}
}

// Rooms enumerates the identifiers of all rooms that currently have members.
func (r *Registry) Rooms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]string, 0, len(r.rooms))
	for roomID := range r.rooms {
		rooms = append(rooms, roomID)
	}
	return rooms
}

// Snapshot returns roomID → member count for the stats endpoint.
func (r *Registry) Snapshot() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]int, len(r.rooms))
	for roomID, members := range r.rooms {
		snapshot[roomID] = len(members)
	}
	return snapshot
}
