package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/docs"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDescriptors() []docs.EventDescriptor {
	return []docs.EventDescriptor{
		{
			EventName:    "room.join",
			Description:  "Join a room",
			Direction:    docs.ClientToServer,
			RequiresAuth: true,
			Payload: []docs.Field{
				{Name: "roomId", Type: "string", Required: true, Description: "Room identifier", Example: "channel:general"},
			},
			Namespace: "gateway",
			Category:  "rooms",
		},
		{
			EventName:   "message.received",
			Description: "Message fan-out",
			Direction:   docs.ServerToClient,
			Response: []docs.Field{
				{Name: "content", Type: "string", Description: "Message body"},
			},
			Namespace: "gateway",
			Category:  "messaging",
		},
		{
			EventName:   "ping",
			Description: "Liveness probe",
			Direction:   docs.Bidirectional,
			Payload:     []docs.Field{},
			Response: []docs.Field{
				{Name: "time", Type: "string", Description: "Server time"},
			},
			Namespace: "gateway",
			Category:  "lifecycle",
		},
	}
}

func newRegistry(t *testing.T) *docs.Registry {
	t.Helper()

	registry := docs.NewRegistry()
	for _, d := range sampleDescriptors() {
		require.NoError(t, registry.Register(d))
	}
	return registry
}

func TestRegistry_Register(t *testing.T) {
	registry := newRegistry(t)
	assert.Equal(t, 3, registry.Len())

	// Sorted by event name.
	descriptors := registry.Descriptors()
	assert.Equal(t, "message.received", descriptors[0].EventName)
	assert.Equal(t, "ping", descriptors[1].EventName)
	assert.Equal(t, "room.join", descriptors[2].EventName)
}

func TestRegistry_RejectsBadDescriptors(t *testing.T) {
	registry := docs.NewRegistry()

	err := registry.Register(docs.EventDescriptor{Direction: docs.ClientToServer})
	assert.Error(t, err, "empty event name")

	err = registry.Register(docs.EventDescriptor{EventName: "x", Direction: "sideways"})
	assert.Error(t, err, "invalid direction")

	require.NoError(t, registry.Register(docs.EventDescriptor{EventName: "x", Direction: docs.ClientToServer}))
	err = registry.Register(docs.EventDescriptor{EventName: "x", Direction: docs.ClientToServer})
	assert.Error(t, err, "duplicate registration")

	// Bad records never abort collection: the good one stays.
	assert.Equal(t, 1, registry.Len())
}

func testInfo() docs.Info {
	return docs.Info{Title: "Test Gateway", Description: "Test", Version: "1.0.0"}
}

func TestService_Protocol(t *testing.T) {
	service := docs.NewService(newRegistry(t), testInfo(), "ws://localhost:8080/ws", "", logging.NewNop())

	doc := service.Protocol()
	require.NotNil(t, doc)
	assert.Equal(t, "Test Gateway", doc.Info.Title)
	assert.Equal(t, "ws", doc.Servers["production"].Protocol)
	require.Len(t, doc.Channels, 3)

	join := doc.Channels["room.join"]
	require.NotNil(t, join.Publish, "client-to-server events publish")
	assert.Nil(t, join.Subscribe)
	assert.Equal(t, "object", join.Publish.Message.Payload.Type)
	assert.Contains(t, join.Publish.Message.Payload.Properties, "roomId")
	assert.Equal(t, []string{"roomId"}, join.Publish.Message.Payload.Required)

	received := doc.Channels["message.received"]
	assert.Nil(t, received.Publish)
	require.NotNil(t, received.Subscribe, "server-to-client events subscribe")

	ping := doc.Channels["ping"]
	assert.NotNil(t, ping.Publish)
	assert.NotNil(t, ping.Subscribe, "bidirectional events carry both operations")

	// Cached: same instance on a second request.
	assert.Same(t, doc, service.Protocol())
}

func TestService_ProtocolSecureServer(t *testing.T) {
	service := docs.NewService(newRegistry(t), testInfo(), "wss://gateway.example.com/ws", "", logging.NewNop())
	assert.Equal(t, "wss", service.Protocol().Servers["production"].Protocol)
}

func TestService_HTMLFallbackOnMissingTemplate(t *testing.T) {
	service := docs.NewService(newRegistry(t), testInfo(), "ws://localhost:8080/ws", "/nonexistent/template.html", logging.NewNop())

	html := string(service.HTML())
	assert.Contains(t, html, "<table")
	assert.Contains(t, html, "room.join")
	assert.Contains(t, html, "Test Gateway")
}

func TestService_HTMLFallbackOnBrokenTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.html")
	require.NoError(t, os.WriteFile(path, []byte("{{ .DoesNotExist.Broken }}"), 0o644))

	service := docs.NewService(newRegistry(t), testInfo(), "ws://localhost:8080/ws", path, logging.NewNop())

	html := string(service.HTML())
	assert.Contains(t, html, "room.join", "fallback table covers all descriptors")
}

func TestService_HTMLUsesTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.html")
	tmpl := "<h1>{{ .Info.Title }}</h1>{{ range .Descriptors }}<p>{{ .EventName }}</p>{{ end }}"
	require.NoError(t, os.WriteFile(path, []byte(tmpl), 0o644))

	service := docs.NewService(newRegistry(t), testInfo(), "ws://localhost:8080/ws", path, logging.NewNop())

	html := string(service.HTML())
	assert.True(t, strings.HasPrefix(html, "<h1>Test Gateway</h1>"))
	assert.Contains(t, html, "<p>ping</p>")

	// Rendered once, cached for process lifetime.
	assert.Equal(t, html, string(service.HTML()))
}

func TestService_Descriptors(t *testing.T) {
	service := docs.NewService(newRegistry(t), testInfo(), "ws://localhost:8080/ws", "", logging.NewNop())

	descriptors := service.Descriptors()
	require.Len(t, descriptors, 3)
	assert.True(t, descriptors[2].RequiresAuth)
}
