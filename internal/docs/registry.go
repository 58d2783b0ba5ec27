package docs

import (
	"fmt"
	"sort"
	"sync"
)

// Registry collects event descriptors at process start. Registration is the
// explicit replacement for decorator scanning: each handler module hands its
// descriptors to the registry instead of being discovered by reflection.
type Registry struct {
	mu          sync.RWMutex
	byName      map[string]int
	descriptors []EventDescriptor
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register validates and stores one descriptor. A bad descriptor is reported
// to the caller, who logs it and moves on; one broken record never aborts
// startup, the collection just ends up partial.
func (r *Registry) Register(d EventDescriptor) error {
	if d.EventName == "" {
		return fmt.Errorf("descriptor has empty event name")
	}
	if !validDirection(d.Direction) {
		return fmt.Errorf("descriptor %q has invalid direction %q", d.EventName, d.Direction)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[d.EventName]; exists {
		return fmt.Errorf("descriptor %q registered twice", d.EventName)
	}

	r.byName[d.EventName] = len(r.descriptors)
	r.descriptors = append(r.descriptors, d)
	return nil
}

// Descriptors returns the collected records sorted by event name.
func (r *Registry) Descriptors() []EventDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]EventDescriptor, len(r.descriptors))
	copy(out, r.descriptors)
	sort.Slice(out, func(i, j int) bool { return out[i].EventName < out[j].EventName })
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.descriptors)
}
