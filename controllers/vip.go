package controllers

import (
	"errors"
	"net/http"

	"lashbook-backend/config"
	"lashbook-backend/models"
	"lashbook-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetVIPProfile returns the authenticated user's VIP profile along
// with their current streak, or 404 when they are not a VIP.
func GetVIPProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var profile models.VIPProfile
	if err := config.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "No VIP profile",
				"vipStreak": user.VIPStreak,
				"needed":    models.VIPStreakThreshold,
			})
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":   profile,
		"vipStreak": user.VIPStreak,
	})
}
