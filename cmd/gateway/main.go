package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	internaldocs "github.com/DONGWAN-LEE/vibe-gateway/internal/docs"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/auth"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/configs"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/env"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/logging"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/ratelimiter"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/tracing"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/ws"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/presentation/api"
	authHandler "github.com/DONGWAN-LEE/vibe-gateway/internal/presentation/handler/authtoken"
	docsHandler "github.com/DONGWAN-LEE/vibe-gateway/internal/presentation/handler/docs"
	gatewayHandler "github.com/DONGWAN-LEE/vibe-gateway/internal/presentation/handler/gateway"
	healthHandler "github.com/DONGWAN-LEE/vibe-gateway/internal/presentation/handler/health"
)

const serviceName = "vibe-gateway"

func main() {
	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewLogger(&logging.Config{
		FilePath: cfg.Logger.FilePath,
		Encoding: cfg.Logger.Encoding,
		Level:    cfg.Logger.Level,
		Logger:   cfg.Logger.Logger,
	})

	authenticator, err := auth.New(auth.Options{
		Secret: []byte(cfg.Auth.Secret),
		Alg:    cfg.Auth.Algorithm,
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		log.Fatal(err)
	}

	registry := ws.NewRegistry(logger)
	docsRegistry := internaldocs.NewRegistry()
	gateway := ws.NewGateway(cfg.Gateway, authenticator, registry, docsRegistry, logger)

	docsService := internaldocs.NewService(
		docsRegistry,
		internaldocs.Info{
			Title:       cfg.Docs.Title,
			Description: cfg.Docs.Description,
			Version:     cfg.Docs.Version,
		},
		cfg.Docs.ServerURL,
		env.GetString("DOCS_TEMPLATE_PATH", "./templates/events.html"),
		logger,
	)

	rl := ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		CacheTTL:         cfg.RateLimiter.CacheTTL,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	})

	app := api.NewApplication(
		*cfg,
		*gatewayHandler.NewHandler(gateway),
		*authHandler.NewHandler(authenticator),
		*docsHandler.NewHandler(docsService),
		*healthHandler.NewHandler(),
		logger,
		rl,
	)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatal(logging.General, logging.Startup, "server exited", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}
}
