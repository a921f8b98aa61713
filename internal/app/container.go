package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/trendulum/trendulum-api-go/internal/api"
	"github.com/trendulum/trendulum-api-go/internal/auth"
	"github.com/trendulum/trendulum-api-go/internal/config"
	"github.com/trendulum/trendulum-api-go/internal/repository"
	"github.com/trendulum/trendulum-api-go/internal/service/generation"
	"github.com/trendulum/trendulum-api-go/internal/service/pipeline"
	"github.com/trendulum/trendulum-api-go/internal/service/qloo"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing the HTTP server.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	apiDeps *api.Dependencies
	closers []func()
}

// Build assembles all infrastructure services. Heavy-weight initialization
// (database, API clients) happens here so the handlers stay focused on
// request logic.
func Build(cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	postgresSvc, err := repository.NewPostgresService(cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres service: %w", err)
	}
	closers = append(closers, func() {
		_ = postgresSvc.Close()
	})

	users := repository.NewUserRepository(postgresSvc, logger)
	profiles := repository.NewProfileRepository(postgresSvc, logger)
	ideas := repository.NewIdeaRepository(postgresSvc, logger)

	httpClient := &http.Client{Timeout: 30 * time.Second}
	qlooClient := qloo.NewClient(httpClient, cfg.Qloo, logger)
	if !qlooClient.Configured() {
		logger.Warn("QLOO_API_KEY not set, audience analysis will return mock profiles")
	}
	resolver := qloo.NewResolver(qlooClient, logger)
	aggregator := qloo.NewAggregator(qlooClient, logger)

	generationClient := generation.NewClient(cfg.OpenAI, logger)
	if !generationClient.Configured() {
		logger.Warn("OPENAI_API_KEY not set, idea generation will be unavailable")
	}

	pipelineSvc := pipeline.New(resolver, aggregator, generationClient, profiles, ideas, logger)

	tokens := auth.TokenService{
		Secret:   []byte(cfg.Auth.SecretKey),
		Issuer:   cfg.Auth.Issuer,
		Duration: cfg.Auth.TokenTTL,
	}

	deps := &api.Dependencies{
		Config:   cfg,
		Logger:   logger,
		Users:    users,
		Profiles: profiles,
		Ideas:    ideas,
		Pipeline: pipelineSvc,
		Tokens:   tokens,
	}

	return &Container{
		Config:  cfg,
		Logger:  logger,
		apiDeps: deps,
		closers: closers,
	}, nil
}

// NewServer builds the HTTP server from the pre-built dependency graph.
func (c *Container) NewServer() (*http.Server, error) {
	if c == nil || c.apiDeps == nil {
		return nil, fmt.Errorf("api dependencies not initialized")
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", c.Config.Server.Port),
		Handler:      api.NewRouter(c.apiDeps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}, nil
}

// Close releases held resources in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
