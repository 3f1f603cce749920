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

type CreatePaymentIntentInput struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
}

type RefundInput struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	Reason        string `json:"reason"`
}

// CreatePaymentIntent creates a provider payment intent for an
// appointment and records a pending payment row. Amount is converted
// to minor currency units for the provider.
func CreatePaymentIntent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreatePaymentIntentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appointmentID, err := uuid.Parse(input.AppointmentID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Service").First(&appointment, "id = ? AND user_id = ?", appointmentID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	intent, err := services.Payments.CreateIntent(
		services.MinorUnits(appointment.TotalPrice),
		"usd",
		map[string]string{
			"appointment_id": appointment.ID.String(),
			"user_id":        userID.String(),
			"service":        appointment.Service.Name,
		})
	if err != nil {
		log.Error().Err(err).Str("appointment_id", appointment.ID.String()).Msg("Payment intent creation failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Payment provider error")
		return
	}

	payment := models.Payment{
		AppointmentID:         appointment.ID,
		Amount:                appointment.TotalPrice,
		Currency:              "usd",
		Status:                models.PaymentPending,
		StripePaymentIntentID: intent.ID,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"paymentId":    payment.ID,
		"intentId":     intent.ID,
		"clientSecret": intent.ClientSecret,
	})
}

// RequestRefund applies the 48-hour eligibility rule, then calls the
// provider and marks the payment refunded only after the provider
// accepts.
func RequestRefund(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input RefundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appointmentID, err := uuid.Parse(input.AppointmentID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Service").First(&appointment, "id = ? AND user_id = ?", appointmentID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	eligibility := services.CheckRefundEligibility(
		appointment.AppointmentDate, appointment.AppointmentTime, time.Now())
	if !eligibility.Eligible {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       "Refund not available",
			"eligibility": eligibility,
		})
		return
	}

	var payment models.Payment
	if err := config.DB.Where("appointment_id = ? AND status = ?", appointment.ID, models.PaymentCompleted).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No completed payment found for this appointment")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	refundID, err := services.Payments.CreateRefund(payment.StripePaymentIntentID, input.Reason)
	if err != nil {
		log.Error().Err(err).Str("payment_id", payment.ID.String()).Msg("Refund creation failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Payment provider error")
		return
	}

	if err := config.DB.Model(&payment).Updates(map[string]interface{}{
		"status":           models.PaymentRefunded,
		"stripe_refund_id": refundID,
	}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update payment")
		return
	}

	config.DB.Model(&appointment).Update("status", models.AppointmentCancelled)
	services.NewNotificationService(config.DB).NotifyBookingCancelled(
		appointment.UserID, appointment.Service.Name,
		appointment.AppointmentDate, appointment.AppointmentTime, appointment.ID)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Refund created",
		"refundId": refundID,
	})
}

// ConfirmPayment marks a pending payment completed after the frontend
// confirms the intent, and emits a payment-received notification.
func ConfirmPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	var payment models.Payment
	if err := config.DB.Preload("Appointment.Service").First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if payment.Appointment.UserID != userID {
		utils.RespondWithError(c, http.StatusForbidden, "Not your payment")
		return
	}
	if payment.Status != models.PaymentPending {
		utils.RespondWithError(c, http.StatusBadRequest, "Payment is not pending")
		return
	}

	if err := config.DB.Model(&payment).Update("status", models.PaymentCompleted).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update payment")
		return
	}

	appointmentID := payment.AppointmentID
	services.NewNotificationService(config.DB).NotifyPaymentReceived(
		userID, payment.Amount, payment.Appointment.Service.Name, &appointmentID)

	c.JSON(http.StatusOK, gin.H{"message": "Payment confirmed"})
}
