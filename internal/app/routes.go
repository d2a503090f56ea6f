package app

import (
	"github.com/boardlink/core/internal/middleware"
	"github.com/boardlink/core/internal/modules/device/command"
	"github.com/boardlink/core/internal/modules/device/configsync"
	"github.com/boardlink/core/internal/modules/device/device"
	"github.com/boardlink/core/internal/modules/device/override"
	"github.com/boardlink/core/internal/modules/device/token"
	"github.com/boardlink/core/internal/modules/sports/teams"
	pkgredis "github.com/boardlink/core/internal/pkg/redis"
	"github.com/boardlink/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "no such route")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"service": "boardlink-core"})
	})

	api := r.Group("/api/v1")
	if rc != nil {
		api.Use(middleware.Idempotence(rc.Raw()))
	}

	authMW := middleware.Auth()

	deviceSvc := device.NewService(a.store)
	device.NewHandler(deviceSvc, a.store).RegisterRoutes(api, authMW)

	syncSvc := configsync.NewService(a.store, a.pub, a.logger)
	configsync.NewHandler(syncSvc, a.store).RegisterRoutes(api, authMW)

	commandSvc := command.NewService(a.store, a.pub, a.logger)
	command.NewHandler(commandSvc, a.store).RegisterRoutes(api, authMW)

	tokenSvc := token.NewService(a.store, a.cfg.TokenTTLDays)
	token.NewHandler(tokenSvc, a.store).RegisterRoutes(api, authMW)

	overrideSvc := override.NewService(a.store)
	override.NewHandler(overrideSvc, a.store).RegisterRoutes(api, authMW)

	teamsSvc := teams.NewService(a.store)
	teams.NewHandler(teamsSvc).RegisterRoutes(api, authMW)
}
