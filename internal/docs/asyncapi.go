package docs

// AsyncAPI-style protocol document derived from the descriptor list. The
// document is pure data transformation over static descriptors, so the
// service caches it for process lifetime.

type Document struct {
	Version  string             `json:"asyncapi"`
	Info     Info               `json:"info"`
	Servers  map[string]Server  `json:"servers"`
	Channels map[string]Channel `json:"channels"`
}

type Info struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

type Server struct {
	URL         string `json:"url"`
	Protocol    string `json:"protocol"` // "ws" or "wss"
	Description string `json:"description"`
}

type Channel struct {
	Description string     `json:"description"`
	Publish     *Operation `json:"publish,omitempty"`
	Subscribe   *Operation `json:"subscribe,omitempty"`
}

type Operation struct {
	Summary string  `json:"summary"`
	Message Message `json:"message"`
}

type Message struct {
	Payload Schema `json:"payload"`
}

type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Example     any    `json:"example,omitempty"`
}

const documentVersion = "2.6.0"

func buildDocument(info Info, serverURL string, descriptors []EventDescriptor) *Document {
	protocol := "ws"
	if len(serverURL) >= 4 && serverURL[:4] == "wss:" {
		protocol = "wss"
	}

	doc := &Document{
		Version: documentVersion,
		Info:    info,
		Servers: map[string]Server{
			"production": {
				URL:         serverURL,
				Protocol:    protocol,
				Description: "Gateway WebSocket endpoint",
			},
		},
		Channels: make(map[string]Channel, len(descriptors)),
	}

	for _, d := range descriptors {
		channel := Channel{Description: d.Description}

		// publish: what the client sends; subscribe: what the server emits.
		switch d.Direction {
		case ClientToServer:
			channel.Publish = operationFor(d.EventName, "send", d.Payload)
		case ServerToClient:
			channel.Subscribe = operationFor(d.EventName, "receive", d.Response)
		case Bidirectional:
			channel.Publish = operationFor(d.EventName, "send", d.Payload)
			channel.Subscribe = operationFor(d.EventName, "receive", d.Response)
		}

		doc.Channels[d.EventName] = channel
	}

	return doc
}

func operationFor(eventName, verb string, fields []Field) *Operation {
	return &Operation{
		Summary: verb + " " + eventName,
		Message: Message{Payload: schemaFor(fields)},
	}
}

func schemaFor(fields []Field) Schema {
	schema := Schema{
		Type:       "object",
		Properties: make(map[string]Property, len(fields)),
	}

	for _, f := range fields {
		schema.Properties[f.Name] = Property{
			Type:        f.Type,
			Description: f.Description,
			Example:     f.Example,
		}
		if f.Required {
			schema.Required = append(schema.Required, f.Name)
		}
	}

	return schema
}
