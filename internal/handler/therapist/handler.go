package therapist

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/therapist"
	"github.com/jwalitptl/clinic-admin/pkg/httputil"
)

type Handler struct {
	svc *therapist.Service
}

func NewHandler(svc *therapist.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r handler.Routes) {
	therapists := r.Admin.Group("/therapists")
	{
		therapists.GET("", h.List)
		therapists.POST("", h.Create)
		therapists.GET("/:id", h.Get)
		therapists.PUT("/:id", h.Update)
		therapists.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	therapists, err := h.svc.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, therapists)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := httputil.ParseIntParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, t)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.TherapistRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	t, err := h.svc.Save(c.Request.Context(), model.Create(model.EntityTherapist), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, t)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := httputil.ParseIntParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	var req model.TherapistRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	t, err := h.svc.Save(c.Request.Context(), model.EditInt(model.EntityTherapist, id), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, t)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := httputil.ParseIntParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, nil)
}
