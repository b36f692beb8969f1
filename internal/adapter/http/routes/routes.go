package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "increa_invoicing/docs"
	"increa_invoicing/internal/adapter/http/handlers"
	"increa_invoicing/internal/adapter/http/middleware"
	"increa_invoicing/internal/config"
	"increa_invoicing/internal/infrastructure/logger"
	"increa_invoicing/internal/infrastructure/metrics"
	"increa_invoicing/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 30 * time.Second

// Dependencies are the use cases served by the router.
type Dependencies struct {
	Projects    usecase.IProjectUseCase
	Reports     usecase.IReportUseCase
	Settlements usecase.ISettlementUseCase
	// Metrics is optional; nil disables /metrics and latency tracking.
	Metrics *metrics.Metrics
}

// NewRouter builds the gin engine with every route mounted under /v1.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		l := logger.FromContext(c.Request.Context(), "http")
		l.Error().Interface("panic", recovered).Msg("recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(middleware.RequestLogger())

	if deps.Metrics != nil {
		router.Use(deps.Metrics.GinMiddleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addProjectRoutes(v1, handlers.NewProjectHandler(deps.Projects), handlers.NewSettlementHandler(deps.Settlements))
	addReportRoutes(v1, handlers.NewReportHandler(deps.Reports))
	return router
}

// Run serves the API until SIGINT or SIGTERM.
func Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, closeDeps, err := BuildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDeps()

	log := logger.WithComponent("server")
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        NewRouter(deps),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.DataBackend).Msg("starting invoicing server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start the application: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped gracefully")
	return nil
}
