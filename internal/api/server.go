package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestor-financeiro/internal/api/handler"
	"github.com/gestor-financeiro/internal/api/service"
	"github.com/gestor-financeiro/internal/config"
)

// Server handles HTTP requests and manages the application's lifecycle
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
	httpRouter *gin.Engine
	useHTTPS   bool
	certFile   string
	keyFile    string
}

// NewServer creates and configures a new HTTP server with the given services
func NewServer(log *slog.Logger, cfg *config.Config, processingService service.ProcessingService, spendingService service.SpendingService) *Server {
	if cfg.Application.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := gin.New()

	processingHandler := handler.NewProcessingHandler(log, processingService, cfg.Whisper.Mode, cfg.LLM.Mode)
	spendingHandler := handler.NewSpendingHandler(log, spendingService)

	setupRouter(log, httpRouter, processingHandler, spendingHandler)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		logger:     log,
		httpServer: httpServer,
		httpRouter: httpRouter,
		useHTTPS:   cfg.Server.UseHTTPS,
		certFile:   cfg.Server.SSLCertFile,
		keyFile:    cfg.Server.SSLKeyFile,
	}
}

// Start begins listening for HTTP requests, with TLS when configured
func (s *Server) Start() error {
	var err error
	if s.useHTTPS {
		s.logger.Info("Serving HTTPS", "addr", s.httpServer.Addr)
		err = s.httpServer.ListenAndServeTLS(s.certFile, s.keyFile)
	} else {
		err = s.httpServer.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server with a timeout
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.httpServer.WriteTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}

	return nil
}
