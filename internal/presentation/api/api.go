package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/configs"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/logging"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/ratelimiter"
	authHandler "github.com/DONGWAN-LEE/vibe-gateway/internal/presentation/handler/authtoken"
	docsHandler "github.com/DONGWAN-LEE/vibe-gateway/internal/presentation/handler/docs"
	gatewayHandler "github.com/DONGWAN-LEE/vibe-gateway/internal/presentation/handler/gateway"
	healthHandler "github.com/DONGWAN-LEE/vibe-gateway/internal/presentation/handler/health"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Application struct {
	config         configs.Config
	gatewayHandler gatewayHandler.Handler
	authHandler    authHandler.Handler
	docsHandler    docsHandler.Handler
	healthHandler  healthHandler.Handler
	logger         logging.Logger
	ratelimiter    ratelimiter.Limiter
}

func NewApplication(
	config configs.Config,
	gatewayHandler gatewayHandler.Handler,
	authHandler authHandler.Handler,
	docsHandler docsHandler.Handler,
	healthHandler healthHandler.Handler,
	logger logging.Logger,
	ratelimiter ratelimiter.Limiter,
) *Application {
	return &Application{
		config:         config,
		gatewayHandler: gatewayHandler,
		authHandler:    authHandler,
		docsHandler:    docsHandler,
		healthHandler:  healthHandler,
		logger:         logger,
		ratelimiter:    ratelimiter,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(app.loggerMiddleware)
	r.Use(app.rateLimiterMiddleware)
	r.Use(app.enableCors)

	// The upgrade endpoint sits outside the timeout middleware: the
	// connection is long-lived by design.
	r.Get("/ws", app.gatewayHandler.ConnectHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Post("/auth/token", app.authHandler.IssueTokenHandler)

		r.Route("/docs", func(r chi.Router) {
			r.Get("/", app.docsHandler.GetDocsHandler)
			r.Get("/events", app.docsHandler.GetEventsHandler)
			r.Get("/asyncapi.json", app.docsHandler.GetProtocolHandler)
		})

		r.Get("/gateway/stats", app.gatewayHandler.StatsHandler)

		r.Get("/health", app.healthHandler.GetHealth)
		r.Get("/healthz", app.healthHandler.GetHealth)
		r.Get("/ready", app.healthHandler.GetHealth)
		r.Get("/live", app.healthHandler.GetHealth)
	})

	r.Handle("/metrics", promhttp.Handler())

	return otelhttp.NewHandler(r, "gateway-http")
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}
