package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"payment-gateway/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthChecker reports the state of a backing store.
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

type RouterConfig struct {
	Payments       service.PaymentService
	Health         HealthChecker
	AllowedOrigins []string
	Logger         *zap.Logger
}

// NewRouter builds the gateway's HTTP surface. Health may be nil.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(cfg.Logger), corsMiddleware(cfg.AllowedOrigins))
	r.HandleMethodNotAllowed = true

	NewPaymentHandler(cfg.Payments, cfg.Logger).Register(r)

	r.GET("/health", func(c *gin.Context) {
		stats := map[string]string{"status": "up"}
		if cfg.Health != nil {
			stats = cfg.Health.Health(c.Request.Context())
		}
		status := http.StatusOK
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, stats)
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Message: msgNotFound})
	})

	return r
}

// Server runs an http.Handler on a TCP listener until Shutdown.
type Server struct {
	srv        *http.Server
	wg         sync.WaitGroup
	listenAddr string
	Addr       string
	logger     *zap.Logger
}

func New(addr string, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		listenAddr: addr,
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start listens on the configured address and serves in the background.
// Addr holds the bound address once Start returns.
func (s *Server) Start() error {
	l, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listening tcp port: %w", err)
	}
	s.Addr = l.Addr().String()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.logger.Info("http server started", zap.String("addr", s.Addr))

		if err := s.srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serving http", zap.Error(err))
		}
		s.logger.Info("http server stopped", zap.String("addr", s.Addr))
	}()

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	s.wg.Wait()
	return err
}
