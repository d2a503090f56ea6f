package token

import (
	"errors"
	"io"
	"time"

	"github.com/boardlink/core/internal/middleware"
	"github.com/boardlink/core/internal/pkg/response"
	"github.com/boardlink/core/internal/store"
	"github.com/gin-gonic/gin"
)

type issueDTO struct {
	TTLDays int `json:"ttl_days"`
}

type Handler struct {
	svc     *Service
	storeFn func(bearer string) store.Capability
}

func NewHandler(svc *Service, st *store.Store) *Handler {
	return &Handler{svc: svc, storeFn: st.Caller}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/devices/:id/token", authMW, h.issue)
}

// POST /devices/:id/token
func (h *Handler) issue(c *gin.Context) {
	// The body is optional; an empty one binds as EOF and keeps the default
	// TTL. Gating on ContentLength would drop ttl_days on chunked requests.
	var dto issueDTO
	if err := c.ShouldBindJSON(&dto); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, err.Error())
		return
	}

	caller := h.storeFn(middleware.CallerToken(c))
	signed, exp, err := h.svc.Issue(c.Request.Context(), caller, c.Param("id"), dto.TTLDays)
	if err != nil {
		middleware.AbortStoreError(c, err)
		return
	}
	response.OK(c, gin.H{
		"token": signed,
		"exp":   exp.UTC().Format(time.RFC3339),
	})
}
