package treatment

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/treatment"
	"github.com/jwalitptl/clinic-admin/pkg/httputil"
)

// Handler serves treatments. Any signed-in user may read them; writes are admin only.
type Handler struct {
	svc *treatment.Service
}

func NewHandler(svc *treatment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r handler.Routes) {
	r.Protected.GET("/treatments", h.List)
	r.Protected.GET("/treatments/:id", h.Get)

	r.Admin.POST("/treatments", h.Create)
	r.Admin.PUT("/treatments/:id", h.Update)
	r.Admin.DELETE("/treatments/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, items)
}

func (h *Handler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, item)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.TreatmentRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	item, err := h.svc.Save(c.Request.Context(), model.Create(model.EntityTreatment), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, item)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.TreatmentRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	item, err := h.svc.Save(c.Request.Context(), model.Edit(model.EntityTreatment, c.Param("id")), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, item)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, nil)
}
