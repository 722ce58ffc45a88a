package finance

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/service/finance"
	"github.com/jwalitptl/clinic-admin/pkg/httputil"
)

type Handler struct {
	svc *finance.Service
}

func NewHandler(svc *finance.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r handler.Routes) {
	r.Admin.GET("/finance/balance", h.Balance)
}

func (h *Handler) Balance(c *gin.Context) {
	balance, err := h.svc.MonthlyBalance(c.Request.Context(), c.Query("month"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, balance)
}
