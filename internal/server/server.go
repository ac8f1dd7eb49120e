package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"nexus/backend/internal/handler"
	"nexus/backend/internal/metrics"
	"nexus/backend/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	// Registers the generated OpenAPI document with swag.
	_ "nexus/backend/docs"
)

const defaultBodyLimit = 1 << 20

// Deps are the collaborators the HTTP engine is built from.
type Deps struct {
	Handler   *handler.Handler
	Logger    *slog.Logger
	Metrics   *metrics.Recorder // nil disables /metrics
	BodyLimit int64
	Swagger   bool
}

// NewEngine assembles middleware, ops endpoints and the /api routes.
func NewEngine(d Deps) *gin.Engine {
	limit := d.BodyLimit
	if limit <= 0 {
		limit = defaultBodyLimit
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Logger),
		gin.Recovery(),
	)
	if d.Metrics != nil {
		router.Use(d.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	if d.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := router.Group("/api")
	api.Use(middleware.BodyLimit(limit))
	d.Handler.RegisterRoutes(api)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}

// Run serves h on addr until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
