package expense

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/expense"
	"github.com/jwalitptl/clinic-admin/pkg/httputil"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r handler.Routes) {
	expenses := r.Admin.Group("/expenses")
	{
		expenses.GET("", h.List)
		expenses.POST("", h.Create)
		expenses.GET("/:id", h.Get)
		expenses.PUT("/:id", h.Update)
		expenses.DELETE("/:id", h.Delete)
	}
}

// List accepts an optional ?month=YYYY-MM filter.
func (h *Handler) List(c *gin.Context) {
	expenses, err := h.svc.List(c.Request.Context(), c.Query("month"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, expenses)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := httputil.ParseIntParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	e, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, e)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.ExpenseRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	e, err := h.svc.Save(c.Request.Context(), model.Create(model.EntityExpense), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, e)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := httputil.ParseIntParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	var req model.ExpenseRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	e, err := h.svc.Save(c.Request.Context(), model.EditInt(model.EntityExpense, id), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, e)
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
