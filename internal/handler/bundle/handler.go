package bundle

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/bundle"
	"github.com/jwalitptl/clinic-admin/pkg/httputil"
)

type Handler struct {
	svc *bundle.Service
}

func NewHandler(svc *bundle.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r handler.Routes) {
	packages := r.Protected.Group("/packages")
	{
		packages.GET("", h.List)
		packages.POST("", h.Create)
		packages.GET("/report", h.Report)
		packages.GET("/:id", h.Detail)
		packages.PUT("/:id", h.Update)
		packages.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	clientID, err := httputil.ParseIntQuery(c, "client_id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	listings, err := h.svc.List(c.Request.Context(), clientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, listings)
}

func (h *Handler) Detail(c *gin.Context) {
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

// Report returns the printable package report, optionally for one client.
func (h *Handler) Report(c *gin.Context) {
	clientID, err := httputil.ParseIntQuery(c, "client_id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	report, err := h.svc.Report(c.Request.Context(), clientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, report)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.PackageRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	pkg, err := h.svc.Save(c.Request.Context(), model.Create(model.EntityPackage), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, pkg)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := httputil.ParseIntParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	var req model.PackageRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	pkg, err := h.svc.Save(c.Request.Context(), model.EditInt(model.EntityPackage, id), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, pkg)
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
