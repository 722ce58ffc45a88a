package client

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/client"
	"github.com/jwalitptl/clinic-admin/pkg/httputil"
)

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r handler.Routes) {
	clients := r.Protected.Group("/clients")
	{
		clients.GET("", h.List)
		clients.POST("", h.Create)
		clients.GET("/:id", h.Get)
		clients.GET("/:id/history", h.History)
		clients.PUT("/:id", h.Update)
		clients.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	clients, err := h.svc.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, clients)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := httputil.ParseIntParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	cl, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, cl)
}

func (h *Handler) History(c *gin.Context) {
	id, err := httputil.ParseIntParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	detail, err := h.svc.Detail(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, detail)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.ClientRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	cl, err := h.svc.Save(c.Request.Context(), model.Create(model.EntityClient), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, cl)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := httputil.ParseIntParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	var req model.ClientRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	cl, err := h.svc.Save(c.Request.Context(), model.EditInt(model.EntityClient, id), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, cl)
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
