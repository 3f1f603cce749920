package controllers

import (
	"net/http"
	"time"

	"lashbook-backend/config"
	"lashbook-backend/services"
	"lashbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// Cron endpoints: idempotent GETs meant for periodic external
// triggering. Each runs one sweep and reports a JSON summary.

func RunVIPExpirySweep(c *gin.Context) {
	demoted, err := services.NewVIPService(config.DB).ExpirySweep(time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "VIP expiry sweep failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "VIP expiry sweep completed",
		"processed": demoted,
	})
}

func RunReferralSweep(c *gin.Context) {
	completed, err := services.NewReferralService(config.DB).Sweep()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Referral sweep failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Referral sweep completed",
		"processed": completed,
	})
}

func RunNoteReminderSweep(c *gin.Context) {
	sent, err := services.NewReminderService(config.DB).NoteReminderSweep(time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Note reminder sweep failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Note reminder sweep completed",
		"processed": sent,
	})
}

func RunRefillReminderSweep(c *gin.Context) {
	sent, err := services.NewReminderService(config.DB).RefillReminderSweep(time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Refill reminder sweep failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Refill reminder sweep completed",
		"processed": sent,
	})
}

func RunAppointmentReminderSweep(c *gin.Context) {
	sent, err := services.NewReminderService(config.DB).AppointmentReminderSweep(time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Appointment reminder sweep failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Appointment reminder sweep completed",
		"processed": sent,
	})
}
