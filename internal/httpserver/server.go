package httpserver

import (
	"context"
	"net/http"
	"time"

	"fashion-storefront/internal/db"
	"fashion-storefront/internal/pricing"
	"fashion-storefront/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options holds router settings that are not services.
type Options struct {
	Shipping    pricing.ShippingRules
	CORSOrigins []string
	// Files serves stored uploads under /files when set.
	Files   FileReader
	Pingers map[string]db.Pinger
}

// FileReader opens stored uploads for download.
type FileReader interface {
	Open(ctx context.Context, objectPath string) (*storage.Object, error)
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// New builds a Server with all routes registered.
func New(addr string, logger *zap.Logger, deps Deps, opts Options) (*Server, error) {
	router, err := buildRouter(logger, deps, opts)
	if err != nil {
		return nil, err
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(pingers map[string]db.Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ready(ctx, pingers); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
