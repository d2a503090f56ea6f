package configsync

import (
	"errors"

	"github.com/boardlink/core/internal/middleware"
	"github.com/boardlink/core/internal/pkg/response"
	"github.com/boardlink/core/internal/store"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc     *Service
	storeFn func(bearer string) store.Capability
}

func NewHandler(svc *Service, st *store.Store) *Handler {
	return &Handler{svc: svc, storeFn: st.Caller}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/devices/:id/config", authMW)
	g.GET("", h.current)
	g.POST("/apply", h.apply)
	g.POST("/sync-sports", h.syncSports)
}

// POST /devices/:id/config/apply
func (h *Handler) apply(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "request body must be a JSON object: "+err.Error())
		return
	}

	caller := h.storeFn(middleware.CallerToken(c))
	result, err := h.svc.Apply(c.Request.Context(), caller, middleware.CurrentUserID(c), c.Param("id"), patch)
	if err != nil {
		middleware.AbortStoreError(c, err)
		return
	}
	respondApply(c, result)
}

// POST /devices/:id/config/sync-sports
func (h *Handler) syncSports(c *gin.Context) {
	caller := h.storeFn(middleware.CallerToken(c))
	result, err := h.svc.SyncSports(c.Request.Context(), caller, middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, errNoSportEntries) {
			response.BadRequest(c, err.Error())
			return
		}
		middleware.AbortStoreError(c, err)
		return
	}
	respondApply(c, result)
}

// GET /devices/:id/config
func (h *Handler) current(c *gin.Context) {
	caller := h.storeFn(middleware.CallerToken(c))
	version, err := h.svc.Current(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		middleware.AbortStoreError(c, err)
		return
	}
	if version == nil {
		response.NotFound(c, "device has no stored configuration")
		return
	}
	response.OK(c, gin.H{"config": version})
}

func respondApply(c *gin.Context, result *ApplyResult) {
	if len(result.SchemaErrors) > 0 {
		response.ValidationFailed(c, result.SchemaErrors)
		return
	}
	response.OK(c, gin.H{
		"saved":     true,
		"published": result.Published,
		"version":   result.Version.ID,
	})
}
