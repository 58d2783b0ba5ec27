package docs

// Direction of an event relative to the client.
type Direction string

const (
	ClientToServer Direction = "client-to-server"
	ServerToClient Direction = "server-to-client"
	Bidirectional  Direction = "bidirectional"
)

// Field describes one payload or response field of an event.
type Field struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
	Example     any    `json:"example,omitempty"`
}

// EventDescriptor is a static record describing one real-time event. It is
// supplied by the event's owning module at process start and never mutated
// afterwards; the gateway itself never reads these.
type EventDescriptor struct {
	EventName    string    `json:"eventName"`
	Description  string    `json:"description"`
	Direction    Direction `json:"direction"`
	RequiresAuth bool      `json:"requiresAuth"`
	Payload      []Field   `json:"payload"`
	Response     []Field   `json:"response"`
	Namespace    string    `json:"namespace"`
	Category     string    `json:"category"`
	Example      string    `json:"example,omitempty"`
}

func validDirection(d Direction) bool {
	switch d {
	case ClientToServer, ServerToClient, Bidirectional:
		return true
	}
	return false
}
