package docs

import (
	"sync"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/logging"
)

// Service derives the three documentation outputs from the registry: the
// flat descriptor list, the protocol document and the HTML rendering. All
// three are computed on first request and cached for process lifetime;
// descriptors are static after startup, so there is nothing to go stale.
type Service struct {
	registry     *Registry
	info         Info
	serverURL    string
	templatePath string
	logger       logging.Logger

	docOnce  sync.Once
	document *Document

	htmlOnce sync.Once
	html     []byte
}

func NewService(registry *Registry, info Info, serverURL, templatePath string, logger logging.Logger) *Service {
	return &Service{
		registry:     registry,
		info:         info,
		serverURL:    serverURL,
		templatePath: templatePath,
		logger:       logger,
	}
}

// Descriptors is the flat event list, sorted by name.
func (s *Service) Descriptors() []EventDescriptor {
	return s.registry.Descriptors()
}

// Protocol returns the cached AsyncAPI-style document.
func (s *Service) Protocol() *Document {
	s.docOnce.Do(func() {
		s.document = buildDocument(s.info, s.serverURL, s.registry.Descriptors())
	})
	return s.document
}

// HTML returns the cached human-readable rendering. A template failure falls
// back to a generated table over the same descriptors; the caller always
// gets a document, never an error.
func (s *Service) HTML() []byte {
	s.htmlOnce.Do(func() {
		rendered, err := renderTemplate(s.templatePath, s.info, s.registry.Descriptors())
		if err != nil {
			s.logger.Warn(logging.Docs, logging.Rendering, "template render failed, using fallback table", map[logging.ExtraKey]any{
				logging.Path:         s.templatePath,
				logging.ErrorMessage: err.Error(),
			})
			rendered = renderFallbackTable(s.info, s.registry.Descriptors())
		}
		s.html = rendered
	})
	return s.html
}
