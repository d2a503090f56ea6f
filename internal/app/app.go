package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/boardlink/core/internal/config"
	"github.com/boardlink/core/internal/middleware"
	"github.com/boardlink/core/internal/pkg/jwt"
	pkgredis "github.com/boardlink/core/internal/pkg/redis"
	"github.com/boardlink/core/internal/realtime"
	"github.com/boardlink/core/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	store  *store.Store
	pub    *realtime.Publisher
	logger *zap.Logger
}

// New initializes the application: config → store client → publisher → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	jwt.SetSecret(cfg.JWTSecret)

	st := store.New(cfg.StoreURL, cfg.AnonKey, cfg.ServiceKey, logger)
	pub := realtime.NewPublisher(cfg.RelayURL, cfg.AnonKey, cfg.RelayVsn, cfg.HandshakeTimeout, logger)

	// The duplicate-mutation guard is optional: without Redis the service
	// still runs, mutations are just unguarded against double-submits.
	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		var err error
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return originAllowed(patterns, origin)
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	app := &App{cfg: cfg, router: router, store: st, pub: pub, logger: logger}
	app.registerRoutes(rc)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }
