package command

import (
	"github.com/boardlink/core/internal/middleware"
	"github.com/boardlink/core/internal/pkg/response"
	"github.com/boardlink/core/internal/store"
	"github.com/gin-gonic/gin"
)

type sendDTO struct {
	Type    string                 `json:"type"    binding:"required"`
	Payload map[string]interface{} `json:"payload"`
}

type Handler struct {
	svc     *Service
	storeFn func(bearer string) store.Capability
}

func NewHandler(svc *Service, st *store.Store) *Handler {
	return &Handler{svc: svc, storeFn: st.Caller}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/devices/:id/command", authMW, h.send)
}

// POST /devices/:id/command
func (h *Handler) send(c *gin.Context) {
	var dto sendDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	caller := h.storeFn(middleware.CallerToken(c))
	receipt, err := h.svc.Send(c.Request.Context(), caller, c.Param("id"), dto.Type, dto.Payload)
	if err != nil {
		middleware.AbortStoreError(c, err)
		return
	}
	response.OK(c, gin.H{"receipt": receipt})
}
