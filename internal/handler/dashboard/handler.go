package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/middleware"
	"github.com/jwalitptl/clinic-admin/internal/service/dashboard"
	"github.com/jwalitptl/clinic-admin/internal/service/navigation"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
	"github.com/jwalitptl/clinic-admin/pkg/httputil"
)

type Handler struct {
	dashboard  *dashboard.Service
	navigation *navigation.Service
}

func NewHandler(dashboardSvc *dashboard.Service, navigationSvc *navigation.Service) *Handler {
	return &Handler{dashboard: dashboardSvc, navigation: navigationSvc}
}

func (h *Handler) RegisterRoutes(r handler.Routes) {
	r.Protected.GET("/dashboard", h.Summary)
	r.Protected.GET("/navigation", h.Navigation)
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, summary)
}

func (h *Handler) Navigation(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized(nil))
		return
	}
	menu, err := h.navigation.Menu(c.Request.Context(), session)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, menu)
}
