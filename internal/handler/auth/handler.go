package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/middleware"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/auth"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
	"github.com/jwalitptl/clinic-admin/pkg/httputil"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r handler.Routes) {
	r.Public.POST("/auth/login", h.Login)

	r.Protected.POST("/auth/logout", h.Logout)
	r.Protected.PUT("/auth/password", h.ChangePassword)
	r.Protected.GET("/me", h.Me)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, tokens)
}

func (h *Handler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized(nil))
		return
	}
	h.svc.Logout(claims)
	httputil.RespondWithSuccess(c, "logged out successfully")
}

func (h *Handler) ChangePassword(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized(nil))
		return
	}

	var req model.ChangePasswordRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), session, req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "password changed successfully")
}

func (h *Handler) Me(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized(nil))
		return
	}
	httputil.RespondWithSuccess(c, session)
}
