package controllers

import (
	"net/http"
	"time"

	"lashbook-backend/config"
	"lashbook-backend/models"
	"lashbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview returns headline numbers for the admin/manager
// dashboard: today's bookings, monthly revenue, VIP count and the next
// upcoming appointments.
func GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	todayStart := utils.BeginningOfDay(now)
	todayEnd := todayStart.AddDate(0, 0, 1)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var todayAppointments int64
	config.DB.Model(&models.Appointment{}).
		Where("appointment_date >= ? AND appointment_date < ? AND status != ?",
			todayStart, todayEnd, models.AppointmentCancelled).
		Count(&todayAppointments)

	var monthlyRevenue float64
	config.DB.Model(&models.Payment{}).
		Where("status = ? AND created_at >= ?", models.PaymentCompleted, firstOfMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&monthlyRevenue)

	var totalClients int64
	config.DB.Model(&models.User{}).
		Where("role IN ?", []string{models.RoleUser, models.RoleVIP}).
		Count(&totalClients)

	var vipCount int64
	config.DB.Model(&models.User{}).Where("role = ?", models.RoleVIP).Count(&vipCount)

	var pendingReferrals int64
	config.DB.Model(&models.User{}).
		Where("referred_by IS NOT NULL AND referral_booking_completed = ?", false).
		Count(&pendingReferrals)

	var upcoming []models.Appointment
	config.DB.Preload("Service").
		Where("appointment_date >= ? AND status = ?", todayStart, models.AppointmentConfirmed).
		Order("appointment_date, appointment_time").
		Limit(10).
		Find(&upcoming)

	c.JSON(http.StatusOK, gin.H{
		"todayAppointments":    todayAppointments,
		"monthlyRevenue":       monthlyRevenue,
		"totalClients":         totalClients,
		"vipCount":             vipCount,
		"pendingReferrals":     pendingReferrals,
		"upcomingAppointments": upcoming,
	})
}
