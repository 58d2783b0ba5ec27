package ws

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gateway_active_connections",
		Help: "Number of live WebSocket connections.",
	})

	activeRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gateway_active_rooms",
		Help: "Number of rooms with at least one member.",
	})

	authFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_auth_failures_total",
		Help: "Handshake attempts refused for invalid credentials.",
	})

	roomJoins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_room_joins_total",
		Help: "Accepted room join requests, default rooms included.",
	})

	roomLeaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_room_leaves_total",
		Help: "Accepted room leave requests.",
	})

	eventsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_events_total",
		Help: "Inbound events dispatched, by event name.",
	}, []string{"event"})

	messagesFanout = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_messages_fanout_total",
		Help: "Messages delivered to room members.",
	})
)
