package teams

import (
	"github.com/boardlink/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/teams", authMW)
	g.GET("", h.list)
	g.POST("/resolve", h.resolve)
}

// GET /teams?sport=wnba
func (h *Handler) list(c *gin.Context) {
	sport := c.Query("sport")
	if sport == "" {
		response.BadRequest(c, "sport query parameter is required")
		return
	}
	rows, err := h.svc.Directory(c.Request.Context(), sport)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"teams": rows})
}

type resolveDTO struct {
	Sport      string   `json:"sport"      binding:"required"`
	References []string `json:"references" binding:"required"`
}

// POST /teams/resolve — batch resolution for the admin UI, so a user can
// preview how their free-form favorites will land before applying.
func (h *Handler) resolve(c *gin.Context) {
	var dto resolveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	resolved, err := h.svc.ResolveAll(c.Request.Context(), dto.Sport, dto.References)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"teams": resolved})
}
