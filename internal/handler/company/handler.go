package company

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/middleware"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/company"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
	"github.com/jwalitptl/clinic-admin/pkg/httputil"
)

// maxFormBytes leaves room for the text fields next to the logo.
const maxFormBytes = model.MaxLogoBytes + 64<<10

type Handler struct {
	svc *company.Service
}

func NewHandler(svc *company.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r handler.Routes) {
	r.Protected.GET("/company", h.Get)
	r.Admin.PUT("/company", middleware.SizeLimit(maxFormBytes), h.Update)
}

func (h *Handler) Get(c *gin.Context) {
	cfg, err := h.svc.Get(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, cfg)
}

// Update takes a multipart form: name, tax_id, header_color and an
// optional logo file.
func (h *Handler) Update(c *gin.Context) {
	var req model.CompanyRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid company form", err))
		return
	}

	logo, err := readLogo(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	req.Logo = logo

	cfg, err := h.svc.Save(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, cfg)
}

func readLogo(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile("logo")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, errors.BadRequest("invalid logo upload", err)
	}
	if fh.Size > model.MaxLogoBytes {
		return nil, errors.BadRequest("logo is too large", nil)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errors.BadRequest("invalid logo upload", err)
	}
	defer f.Close()

	// One extra byte lets the service reject oversized files that lied about their size.
	return io.ReadAll(io.LimitReader(f, model.MaxLogoBytes+1))
}
