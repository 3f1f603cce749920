package controllers

import (
	"errors"
	"net/http"
	"time"

	"lashbook-backend/config"
	"lashbook-backend/models"
	"lashbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateStaffInput struct {
	UserID    string `json:"userId" binding:"required"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
}

type CreateStaffNoteInput struct {
	Text             string     `json:"text" binding:"required"`
	ReminderDatetime *time.Time `json:"reminderDatetime"`
}

// GetStaff lists active staff members for the booking UI.
func GetStaff(c *gin.Context) {
	var staff []models.Staff
	if err := config.DB.Preload("User").Where("is_active = ?", true).Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	out := make([]gin.H, 0, len(staff))
	for _, s := range staff {
		out = append(out, gin.H{
			"id":        s.ID,
			"name":      s.User.Name,
			"specialty": s.Specialty,
			"bio":       s.Bio,
		})
	}
	c.JSON(http.StatusOK, out)
}

// CreateStaff promotes an existing user to a staff member (admin only).
func CreateStaff(c *gin.Context) {
	var input CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	targetID, err := uuid.Parse(input.UserID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var existing models.Staff
	if err := config.DB.First(&existing, "user_id = ?", targetID).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "User is already a staff member")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	staff := models.Staff{
		UserID:    targetID,
		Specialty: input.Specialty,
		Bio:       input.Bio,
		IsActive:  true,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&staff).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("role", models.RoleStaff).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff member")
		return
	}

	c.JSON(http.StatusCreated, staff)
}

// CreateStaffNote adds a note for the authenticated staff member,
// optionally with a reminder the note sweeper will deliver.
func CreateStaffNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var staff models.Staff
	if err := config.DB.First(&staff, "user_id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusForbidden, "Not a staff member")
		return
	}

	var input CreateStaffNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	note := models.StaffNote{
		StaffID:          staff.ID,
		Text:             input.Text,
		ReminderDatetime: input.ReminderDatetime,
	}

	if err := config.DB.Create(&note).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create note")
		return
	}

	c.JSON(http.StatusCreated, note)
}

// GetStaffNotes lists the authenticated staff member's notes.
func GetStaffNotes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var staff models.Staff
	if err := config.DB.First(&staff, "user_id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusForbidden, "Not a staff member")
		return
	}

	var notes []models.StaffNote
	if err := config.DB.Order("created_at DESC").Find(&notes, "staff_id = ?", staff.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notes")
		return
	}

	c.JSON(http.StatusOK, notes)
}

// DeleteStaffNote removes one of the authenticated staff member's notes.
func DeleteStaffNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	var staff models.Staff
	if err := config.DB.First(&staff, "user_id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusForbidden, "Not a staff member")
		return
	}

	result := config.DB.Where("id = ? AND staff_id = ?", noteID, staff.ID).Delete(&models.StaffNote{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete note")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Note not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
