package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"user-api/internal/config"
	"user-api/internal/domain/user"
	"user-api/internal/infrastructure/auth"
	"user-api/internal/interfaces/httpserver/handlers"
	"user-api/internal/interfaces/httpserver/middlewares"
	"user-api/internal/interfaces/httpserver/routes"
	v1 "user-api/internal/interfaces/httpserver/routes/v1"
	v2 "user-api/internal/interfaces/httpserver/routes/v2"
)

// HTTPServer wraps the gin engine with graceful shutdown helpers.
type HTTPServer struct {
	cfg    *config.Config
	engine *gin.Engine
	log    zerolog.Logger
}

// New assembles the engine: global middleware in fixed order (request id,
// then logging, then CORS; logging wraps CORS so short-circuited preflights
// still get an access-log line with their final status), then the versioned
// route tables. Returns an error if the route tables collide.
func New(cfg *config.Config, log zerolog.Logger, userService *user.Service, tokens *auth.TokenManager) (*HTTPServer, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middlewares.RequestID())
	engine.Use(middlewares.Logging(log))
	engine.Use(middlewares.CORS(cfg.CORSAllowedOrigins))

	registerCoreRoutes(engine, cfg)

	handlerProvider := handlers.NewProvider(userService, tokens)
	groups := append(
		v1.NewRoutes(handlerProvider, tokens, log).Groups(),
		v2.NewRoutes(handlerProvider, tokens, log).Groups()...,
	)
	if err := routes.Mount(engine, groups...); err != nil {
		return nil, err
	}

	return &HTTPServer{
		cfg:    cfg,
		engine: engine,
		log:    log,
	}, nil
}

// Engine exposes the assembled engine, mainly for tests.
func (s *HTTPServer) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP listener and handles graceful shutdown via context
// cancellation.
func (s *HTTPServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr()).Msg("HTTP server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("HTTP server error")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("Context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func registerCoreRoutes(engine *gin.Engine, cfg *config.Config) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.ServiceName,
			"status":  "ok",
		})
	})

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
