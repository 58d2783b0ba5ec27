package docs

import (
	"net/http"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/docs"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/json"
)

type Handler struct {
	service *docs.Service
}

func NewHandler(service *docs.Service) *Handler {
	return &Handler{service: service}
}

// GetEventsHandler godoc
// @Summary      Event descriptor list
// @Description  Returns the flat list of gateway event descriptors
// @Tags         docs
// @Produce      json
// @Success      200 {array} docs.EventDescriptor
// @Router       /docs/events [get]
func (h *Handler) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	json.Write(w, http.StatusOK, h.service.Descriptors())
}

// GetProtocolHandler godoc
// @Summary      Protocol description document
// @Description  Returns the AsyncAPI-style channel document derived from the descriptors
// @Tags         docs
// @Produce      json
// @Success      200 {object} docs.Document
// @Router       /docs/asyncapi.json [get]
func (h *Handler) GetProtocolHandler(w http.ResponseWriter, r *http.Request) {
	json.Write(w, http.StatusOK, h.service.Protocol())
}

// GetDocsHandler godoc
// @Summary      Human-readable event reference
// @Description  Renders the event reference as HTML; falls back to a generated table when the template is unavailable
// @Tags         docs
// @Produce      html
// @Success      200 {string} string "HTML page"
// @Router       /docs [get]
func (h *Handler) GetDocsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.service.HTML())
}
