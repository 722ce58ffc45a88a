package appointment

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/appointment"
	"github.com/jwalitptl/clinic-admin/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r handler.Routes) {
	appointments := r.Protected.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

// ListAppointments filters on client_id, therapist_id, status and month.
func (h *Handler) ListAppointments(c *gin.Context) {
	clientID, err := httputil.ParseIntQuery(c, "client_id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	therapistID, err := httputil.ParseIntQuery(c, "therapist_id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	filters := model.AppointmentFilters{
		ClientID:    clientID,
		TherapistID: therapistID,
		Status:      model.AppointmentStatus(c.Query("status")),
		Month:       c.Query("month"),
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := httputil.ParseIntParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	appointment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointment)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.AppointmentRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	appointment, err := h.service.Save(c.Request.Context(), model.Create(model.EntityAppointment), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, appointment)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := httputil.ParseIntParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.AppointmentRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	appointment, err := h.service.Save(c.Request.Context(), model.EditInt(model.EntityAppointment, id), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointment)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := httputil.ParseIntParam(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, nil)
}
