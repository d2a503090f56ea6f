package override

import (
	"errors"
	"time"

	"github.com/boardlink/core/internal/middleware"
	"github.com/boardlink/core/internal/pkg/response"
	"github.com/boardlink/core/internal/store"
	"github.com/gin-gonic/gin"
)

type createDTO struct {
	Sport       string    `json:"sport"         binding:"required"`
	GameEventID string    `json:"game_event_id" binding:"required"`
	Reason      string    `json:"reason"`
	ExpiresAt   time.Time `json:"expires_at"    binding:"required"`
}

type Handler struct {
	svc     *Service
	storeFn func(bearer string) store.Capability
}

func NewHandler(svc *Service, st *store.Store) *Handler {
	return &Handler{svc: svc, storeFn: st.Caller}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/devices/:id/overrides", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.DELETE("/:oid", h.delete)
}

// POST /devices/:id/overrides
func (h *Handler) create(c *gin.Context) {
	var dto createDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	caller := h.storeFn(middleware.CallerToken(c))
	created, err := h.svc.Create(c.Request.Context(), caller, middleware.CurrentUserID(c), store.GameOverride{
		DeviceID:    c.Param("id"),
		Sport:       dto.Sport,
		GameEventID: dto.GameEventID,
		Reason:      dto.Reason,
		ExpiresAt:   dto.ExpiresAt,
	})
	if err != nil {
		if errors.Is(err, errExpiryInPast) {
			response.BadRequest(c, err.Error())
			return
		}
		middleware.AbortStoreError(c, err)
		return
	}
	response.Created(c, gin.H{"override": created})
}

// GET /devices/:id/overrides
func (h *Handler) list(c *gin.Context) {
	caller := h.storeFn(middleware.CallerToken(c))
	overrides, err := h.svc.List(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		middleware.AbortStoreError(c, err)
		return
	}
	response.OK(c, gin.H{"overrides": overrides})
}

// DELETE /devices/:id/overrides/:oid
func (h *Handler) delete(c *gin.Context) {
	caller := h.storeFn(middleware.CallerToken(c))
	if err := h.svc.Delete(c.Request.Context(), caller, c.Param("id"), c.Param("oid")); err != nil {
		middleware.AbortStoreError(c, err)
		return
	}
	response.NoContent(c)
}
