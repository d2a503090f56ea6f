package device

import (
	"time"

	"github.com/boardlink/core/internal/middleware"
	"github.com/boardlink/core/internal/pkg/response"
	"github.com/boardlink/core/internal/store"
	"github.com/gin-gonic/gin"
)

// onlineWindow is how recent a heartbeat must be for a device to count as
// online in listings.
const onlineWindow = 2 * time.Minute

type deviceView struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
	Online   bool       `json:"online"`
}

type Handler struct {
	svc     *Service
	storeFn func(bearer string) store.Capability
}

func NewHandler(svc *Service, st *store.Store) *Handler {
	return &Handler{svc: svc, storeFn: st.Caller}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/devices", authMW)
	g.GET("", h.list)
	g.GET("/:id", h.get)
}

// GET /devices
func (h *Handler) list(c *gin.Context) {
	caller := h.storeFn(middleware.CallerToken(c))
	devices, err := h.svc.List(c.Request.Context(), caller)
	if err != nil {
		middleware.AbortStoreError(c, err)
		return
	}
	views := make([]deviceView, len(devices))
	for i, d := range devices {
		views[i] = toView(d)
	}
	response.OK(c, gin.H{"devices": views})
}

// GET /devices/:id
func (h *Handler) get(c *gin.Context) {
	caller := h.storeFn(middleware.CallerToken(c))
	d, err := h.svc.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		middleware.AbortStoreError(c, err)
		return
	}
	response.OK(c, gin.H{"device": toView(*d)})
}

func toView(d store.Device) deviceView {
	v := deviceView{ID: d.ID, Name: d.Name, LastSeen: d.LastSeen}
	if d.LastSeen != nil {
		v.Online = time.Since(*d.LastSeen) < onlineWindow
	}
	return v
}
