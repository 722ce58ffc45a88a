package intake

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/intake"
	"github.com/jwalitptl/clinic-admin/pkg/httputil"
)

type Handler struct {
	svc *intake.Service
	// limit guards the public form; nil disables it.
	limit gin.HandlerFunc
}

func NewHandler(svc *intake.Service, limit gin.HandlerFunc) *Handler {
	return &Handler{svc: svc, limit: limit}
}

func (h *Handler) RegisterRoutes(r handler.Routes) {
	submit := []gin.HandlerFunc{h.Submit}
	if h.limit != nil {
		submit = append([]gin.HandlerFunc{h.limit}, submit...)
	}
	r.Public.POST("/public/intake", submit...)

	r.Admin.POST("/intake/reconcile", h.Reconcile)
}

// Submit stores the public form as the pending submission. It is merged
// into the client list the next time the dashboard loads or the worker runs.
func (h *Handler) Submit(c *gin.Context) {
	var submission model.IntakeSubmission
	if !httputil.BindJSON(c, &submission) {
		return
	}
	if err := h.svc.Submit(c.Request.Context(), &submission); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, gin.H{"message": "intake form received"})
}

// Reconcile merges the pending submission right away.
func (h *Handler) Reconcile(c *gin.Context) {
	result, err := h.svc.ProcessPending(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, result)
}
