package backup

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/backup"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
	"github.com/jwalitptl/clinic-admin/pkg/httputil"
)

type Handler struct {
	svc *backup.Service
}

func NewHandler(svc *backup.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r handler.Routes) {
	r.Admin.GET("/document", h.Export)
	r.Admin.PUT("/document", h.Import)
}

func (h *Handler) Export(c *gin.Context) {
	doc, err := h.svc.Export(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	// The raw document, so the file can be imported again as is.
	c.Header("Content-Disposition", `attachment; filename="db.json"`)
	c.JSON(http.StatusOK, doc)
}

// Import replaces the whole document.
func (h *Handler) Import(c *gin.Context) {
	var doc model.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid document", err))
		return
	}
	if err := h.svc.Import(c.Request.Context(), &doc); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "document imported")
}
