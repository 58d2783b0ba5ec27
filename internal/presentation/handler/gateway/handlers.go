package gateway

import (
	"net/http"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/json"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/ws"
)

type Handler struct {
	gateway *ws.Gateway
}

func NewHandler(gateway *ws.Gateway) *Handler {
	return &Handler{gateway: gateway}
}

// ConnectHandler godoc
// @Summary      Open the real-time gateway connection
// @Description  Authenticates the bearer token (Authorization header or token query param) and upgrades to WebSocket. The connection is auto-joined to its default rooms.
// @Tags         gateway
// @Success      101 {object} map[string]interface{} "Switching Protocols"
// @Failure      401 {object} json.ErrorResponse "Missing or invalid credential"
// @Router       /ws [get]
func (h *Handler) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	h.gateway.HandleUpgrade(w, r)
}

// StatsHandler godoc
// @Summary      Gateway statistics
// @Description  Returns a snapshot of live connections and room membership counts
// @Tags         gateway
// @Produce      json
// @Success      200 {object} ws.Stats
// @Router       /gateway/stats [get]
func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	json.Write(w, http.StatusOK, h.gateway.Stats())
}
