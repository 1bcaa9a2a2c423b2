package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/config"
	"github.com/14kear/csi-portal/internal/csrf"
	"github.com/14kear/csi-portal/internal/metrics"
	"github.com/14kear/csi-portal/internal/middleware"
	"github.com/14kear/csi-portal/internal/routes"
	"github.com/14kear/csi-portal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const APIPrefix = "/api/v1"

type App struct {
	log    *slog.Logger
	engine *gin.Engine
	server *http.Server
	port   int
}

// NewApp инициализирует HTTP-сервер Gin и настраивает маршруты
func NewApp(
	log *slog.Logger,
	cfg *config.Config,
	h routes.Handlers,
	auth *middleware.AuthMiddleware,
	csrfManager *csrf.Manager,
	audit middleware.AuditRecorder,
) *App {
	if cfg.Env == utils.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(log),
		metrics.Middleware(),
		middleware.ErrorHandler(log, cfg.Env == utils.EnvProd),
	)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", csrf.HeaderName},
		ExposeHeaders:    []string{csrf.HeaderName, middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Группировка маршрутов: /api/v1/*
	api := r.Group(APIPrefix,
		middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		middleware.Timeout(cfg.HTTP.RequestTimeout),
		middleware.BodyLimit(cfg.HTTP.MaxBodyBytes),
		middleware.RequireContentType(),
		middleware.Audit(audit, APIPrefix),
	)
	{
		// Публичные маршруты
		public := api.Group("", auth.Optional(), middleware.CSRF(csrfManager, APIPrefix+"/auth/login"))
		routes.RegisterPublicRoutes(public, h)

		// Приватные маршруты (с авторизацией)
		private := api.Group("", auth.Middleware(), middleware.CSRF(csrfManager))
		routes.RegisterPrivateRoutes(private, h)
	}

	// Healthcheck
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", metrics.Handler())

	if info, err := os.Stat(cfg.FrontendDir); err == nil && info.IsDir() {
		r.Static("/ui", cfg.FrontendDir)
		r.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/ui/")
		})
	} else {
		log.Warn("frontend directory not found, static UI disabled", slog.String("dir", cfg.FrontendDir))
	}

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperr.NotFound("route not found"))
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &App{
		log:    log,
		engine: r,
		server: httpServer,
		port:   cfg.HTTP.Port,
	}
}

// Run запускает HTTP-сервер
func (a *App) Run() error {
	a.log.Info("HTTP server is running", slog.String("addr", a.server.Addr))
	return a.server.ListenAndServe()
}

// Stop корректно останавливает сервер
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("HTTP server is stopping")
	return a.server.Shutdown(ctx)
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}
