package controllers

import (
	"errors"
	"net/http"
	"time"

	"lashbook-backend/config"
	"lashbook-backend/models"
	"lashbook-backend/services"
	"lashbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CreateAppointmentInput struct {
	StaffID         string    `json:"staffId" binding:"required"`
	ServiceID       string    `json:"serviceId" binding:"required"`
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
	AppointmentTime string    `json:"appointmentTime" binding:"required"`
	Notes           string    `json:"notes"`
}

type UpdateAppointmentStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// CreateAppointment books a slot for the authenticated user and emits
// a booking-confirmed notification.
func CreateAppointment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if _, err := time.Parse("15:04", input.AppointmentTime); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment time, expected HH:MM")
		return
	}

	staffID, err := uuid.Parse(input.StaffID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}
	serviceID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var staff models.Staff
	if err := config.DB.First(&staff, "id = ? AND is_active = ?", staffID, true).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ? AND is_active = ?", serviceID, true).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	appointment := models.Appointment{
		UserID:          userID,
		StaffID:         staff.ID,
		ServiceID:       service.ID,
		Status:          models.AppointmentPending,
		AppointmentDate: utils.BeginningOfDay(input.AppointmentDate),
		AppointmentTime: input.AppointmentTime,
		TotalPrice:      service.Price,
		Notes:           input.Notes,
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	services.NewNotificationService(config.DB).NotifyBookingConfirmed(
		userID, service.Name, appointment.AppointmentDate, appointment.AppointmentTime, appointment.ID)

	c.JSON(http.StatusCreated, appointment)
}

// GetMyAppointments lists the authenticated user's appointments.
func GetMyAppointments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var appointments []models.Appointment
	if err := config.DB.Preload("Service").
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments, "user_id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves one appointment. Clients can only see their
// own; staff/admin/manager can see any.
func GetAppointment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Service").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	role, _ := c.Get("role")
	roleStr, _ := role.(string)
	if appointment.UserID != userID &&
		roleStr != models.RoleAdmin && roleStr != models.RoleManager && roleStr != models.RoleStaff {
		utils.RespondWithError(c, http.StatusForbidden, "Not your appointment")
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointmentStatus transitions an appointment's status. Moving
// to completed feeds the VIP streak evaluator; moving to cancelled
// emits a cancellation notification.
func UpdateAppointmentStatus(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	switch input.Status {
	case models.AppointmentPending, models.AppointmentConfirmed,
		models.AppointmentCompleted, models.AppointmentCancelled:
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Service").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	previousStatus := appointment.Status
	if err := config.DB.Model(&appointment).Update("status", input.Status).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	if input.Status == models.AppointmentCompleted && previousStatus != models.AppointmentCompleted {
		if err := services.NewVIPService(config.DB).HandleCompletedAppointment(&appointment); err != nil {
			// Best-effort side effect, the status change stands.
			log.Error().Err(err).Str("appointment_id", appointment.ID.String()).Msg("VIP streak evaluation failed")
		}
	}

	if input.Status == models.AppointmentCancelled && previousStatus != models.AppointmentCancelled {
		services.NewNotificationService(config.DB).NotifyBookingCancelled(
			appointment.UserID, appointment.Service.Name,
			appointment.AppointmentDate, appointment.AppointmentTime, appointment.ID)
	}

	appointment.Status = input.Status
	c.JSON(http.StatusOK, appointment)
}
