package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/filedesk/internal/api/http"
	"github.com/GriffinCanCode/filedesk/internal/api/middleware"
	"github.com/GriffinCanCode/filedesk/internal/domain/filemanager"
	"github.com/GriffinCanCode/filedesk/internal/domain/session"
	"github.com/GriffinCanCode/filedesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/filedesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/filedesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/filedesk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/filedesk/internal/providers/filesystem"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	host       *session.Host
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
	tracer     *tracing.Tracer
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	return NewServerWithLogger(cfg, logging.NewFromSettings(cfg.Logging.Level, cfg.Logging.Development))
}

// NewServerWithLogger creates a server that logs through logger
func NewServerWithLogger(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	logger.Info("Initializing FileDesk server",
		zap.String("addr", cfg.Addr()),
		zap.String("files_root", cfg.Files.Root),
	)

	// Metrics first, the session reports into them
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("filedesk", logger.Logger)

	local := filesystem.NewLocal()
	manager := filemanager.NewManager(local, local, filemanager.MathRandom{})
	host := session.NewHost(manager, logger).WithMetrics(metrics).WithTracer(tracer)
	logger.Info("Session created", zap.String("session_id", string(host.ID())))

	if cfg.Files.Root != "" {
		if _, err := host.Load(context.Background(), cfg.Files.Root); err != nil {
			logger.Warn("Failed to load initial directory", zap.String("path", cfg.Files.Root), zap.Error(err))
		}
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.CORSConfigForOrigins(cfg.CORS.AllowOrigins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
			zap.Bool("global", cfg.RateLimit.Global),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		if cfg.RateLimit.Global {
			router.Use(middleware.GlobalRateLimit(rl))
		} else {
			router.Use(middleware.RateLimit(rl))
		}
	}

	handlers := apihttp.NewHandlers(host, local, local, metrics)
	apihttp.RegisterRoutes(router, handlers)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		host:    host,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		tracer:  tracer,
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Session returns the hosted file manager session
func (s *Server) Session() *session.Host {
	return s.host
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones, then stops
// the background metric and span collectors
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	defer s.metrics.Close()
	defer s.tracer.Close()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	stats := s.host.Stats()
	s.logger.Info("Server stopped", zap.Int("operations", stats.Operations))
	return nil
}

// Close shuts down with a default timeout and flushes the logger
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.Shutdown(ctx)
	_ = s.logger.Sync()
	return err
}
