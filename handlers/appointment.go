package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"vetchat/models"
	"vetchat/services/appointment"
	"vetchat/utils"

	"github.com/araddon/dateparse"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultListLimit = 50

type AppointmentHandler struct {
	AppointmentService appointment.AppointmentService
}

func NewAppointmentHandler(svc appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{AppointmentService: svc}
}

// CreateAppointmentHandler handles POST /api/appointments.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	var input models.AppointmentInput
	if !bindJSON(c, &input) {
		return
	}

	appt, err := h.AppointmentService.CreateAppointment(c.Request.Context(), input)
	if err != nil {
		getLogger(c).Error("Failed to create appointment", zap.String("sessionId", input.SessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create appointment", nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": appt})
}

// ListAppointmentsHandler handles GET /api/appointments.
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	filter := models.AppointmentFilter{
		Status: models.AppointmentStatus(c.Query("status")),
		Limit:  queryInt(c, "limit", defaultListLimit),
		Offset: queryInt(c, "offset", 0),
	}
	var err error
	if filter.StartDate, err = queryTime(c, "startDate"); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", []FieldError{{Field: "startDate", Message: "startDate is not a valid date"}})
		return
	}
	if filter.EndDate, err = queryTime(c, "endDate"); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", []FieldError{{Field: "endDate", Message: "endDate is not a valid date"}})
		return
	}

	items, total, err := h.AppointmentService.GetAllAppointments(c.Request.Context(), filter)
	if errors.Is(err, appointment.ErrInvalidStatus) {
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", []FieldError{{Field: "status", Message: "status must be one of: pending, confirmed, cancelled, completed"}})
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to list appointments", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list appointments", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"meta": gin.H{
			"total":  total,
			"limit":  filter.Limit,
			"offset": filter.Offset,
		},
	})
}

// UpcomingAppointmentsHandler handles GET /api/appointments/upcoming.
func (h *AppointmentHandler) UpcomingAppointmentsHandler(c *gin.Context) {
	items, err := h.AppointmentService.GetUpcomingAppointments(c.Request.Context(), queryInt(c, "limit", appointment.DefaultUpcomingLimit))
	if err != nil {
		getLogger(c).Error("Failed to list upcoming appointments", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list upcoming appointments", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

// AppointmentsBySessionHandler handles GET /api/appointments/session/:sessionId.
func (h *AppointmentHandler) AppointmentsBySessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionId")
	items, err := h.AppointmentService.GetAppointmentsBySession(c.Request.Context(), sessionID)
	if err != nil {
		getLogger(c).Error("Failed to list session appointments", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list appointments", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

// AppointmentsByPhoneHandler handles GET /api/appointments/phone/:phone.
func (h *AppointmentHandler) AppointmentsByPhoneHandler(c *gin.Context) {
	phone := strings.TrimSpace(c.Param("phone"))
	if phone == "" {
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", []FieldError{{Field: "phone", Message: "phone is required"}})
		return
	}
	items, err := h.AppointmentService.GetAppointmentsByPhone(c.Request.Context(), phone)
	if err != nil {
		getLogger(c).Error("Failed to list appointments by phone", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list appointments", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

// GetAppointmentHandler handles GET /api/appointments/:id.
func (h *AppointmentHandler) GetAppointmentHandler(c *gin.Context) {
	appt, err := h.AppointmentService.GetAppointmentByID(c.Request.Context(), c.Param("id"))
	if h.writeError(c, err, "Failed to get appointment") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": appt})
}

// UpdateAppointmentHandler handles PATCH /api/appointments/:id.
func (h *AppointmentHandler) UpdateAppointmentHandler(c *gin.Context) {
	var update models.AppointmentUpdate
	if !bindJSON(c, &update) {
		return
	}
	appt, err := h.AppointmentService.UpdateAppointment(c.Request.Context(), c.Param("id"), update)
	if h.writeError(c, err, "Failed to update appointment") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": appt})
}

// CancelAppointmentHandler handles POST /api/appointments/:id/cancel.
func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	appt, err := h.AppointmentService.CancelAppointment(c.Request.Context(), c.Param("id"))
	if h.writeError(c, err, "Failed to cancel appointment") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": appt, "message": "Appointment cancelled successfully"})
}

// DeleteAppointmentHandler handles DELETE /api/appointments/:id.
func (h *AppointmentHandler) DeleteAppointmentHandler(c *gin.Context) {
	err := h.AppointmentService.DeleteAppointment(c.Request.Context(), c.Param("id"))
	if h.writeError(c, err, "Failed to delete appointment") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment deleted successfully"})
}

// writeError answers for a non-nil err and reports whether it did.
func (h *AppointmentHandler) writeError(c *gin.Context, err error, message string) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, appointment.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Appointment not found", nil)
	case errors.Is(err, appointment.ErrInvalidStatus):
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", []FieldError{{Field: "status", Message: err.Error()}})
	default:
		getLogger(c).Error(message, zap.String("id", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, message, nil)
	}
	return true
}

func queryTime(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
