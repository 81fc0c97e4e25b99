// Package server wires the HTTP router, middleware and providers.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/alejandrogranizo/tractusx-sdk/internal/api/http"
	"github.com/alejandrogranizo/tractusx-sdk/internal/api/middleware"
	"github.com/alejandrogranizo/tractusx-sdk/internal/config"
	"github.com/alejandrogranizo/tractusx-sdk/internal/logging"
	"github.com/alejandrogranizo/tractusx-sdk/internal/monitoring"
	"github.com/alejandrogranizo/tractusx-sdk/internal/providers/ops"
	"github.com/alejandrogranizo/tractusx-sdk/internal/service"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router   *gin.Engine
	registry *service.Registry
	logger   *logging.Logger
	config   *config.Config
	httpSrv  *http.Server
}

// New creates a server from configuration.
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger, _ = logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			OutputPaths: []string{"stdout"},
		})
		if logger == nil {
			logger = logging.NewDefault()
		}
	}

	logger.Info("Initializing operations service",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
	)

	metrics := monitoring.NewMetrics()

	registry := service.NewRegistry()
	if err := registry.Register(ops.New(logger)); err != nil {
		return nil, err
	}
	logger.Info("Registered service providers", zap.Any("stats", registry.Stats()))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	handlers := apihttp.NewHandlers(registry, metrics, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	return &Server{
		router:   router,
		registry: registry,
		logger:   logger,
		config:   cfg,
	}, nil
}

// Registry exposes the provider registry, mainly for tests.
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Server listening", zap.String("addr", addr))

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts the server down gracefully.
func (s *Server) Close() error {
	s.logger.Info("Shutting down")
	defer func() { _ = s.logger.Sync() }()

	if s.httpSrv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}
