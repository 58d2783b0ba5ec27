package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	Gateway         Category = "Gateway"
	Registry        Category = "Registry"
	Auth            Category = "Auth"
	Docs            Category = "Docs"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	RateLimiting    SubCategory = "RateLimiting"
	ExternalService SubCategory = "ExternalService"

	// Gateway
	Handshake  SubCategory = "Handshake"
	Connect    SubCategory = "Connect"
	Disconnect SubCategory = "Disconnect"
	Dispatch   SubCategory = "Dispatch"

	// Registry
	Membership SubCategory = "Membership"

	// Docs
	Collection SubCategory = "Collection"
	Rendering  SubCategory = "Rendering"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ConnectionID ExtraKey = "ConnectionId"
	UserID       ExtraKey = "UserId"
	SessionID    ExtraKey = "SessionId"
	RoomID       ExtraKey = "RoomId"
	RoomSize     ExtraKey = "RoomSize"
	EventName    ExtraKey = "EventName"
	ClientIp     ExtraKey = "ClientIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	ErrorMessage ExtraKey = "ErrorMessage"
)
