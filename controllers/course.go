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

type CreateCourseInput struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Price       float64   `json:"price" binding:"required,gt=0"`
	StartDate   time.Time `json:"startDate"`
	Capacity    int       `json:"capacity"`
}

// GetCourses lists active courses.
func GetCourses(c *gin.Context) {
	var courses []models.Course
	if err := config.DB.Where("is_active = ?", true).Order("start_date").Find(&courses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve courses")
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetCourse retrieves one course by id.
func GetCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid course ID format")
		return
	}

	var course models.Course
	if err := config.DB.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Course not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, course)
}

// CreateCourse creates a new course (admin only).
func CreateCourse(c *gin.Context) {
	var input CreateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	course := models.Course{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		StartDate:   input.StartDate,
		Capacity:    input.Capacity,
		IsActive:    true,
	}

	if err := config.DB.Create(&course).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create course")
		return
	}

	c.JSON(http.StatusCreated, course)
}

// EnrollInCourse creates a payment intent for the course price and a
// pending enrollment tied to it.
func EnrollInCourse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid course ID format")
		return
	}

	var course models.Course
	if err := config.DB.First(&course, "id = ? AND is_active = ?", courseID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Course not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var existing models.CourseEnrollment
	if err := config.DB.Where("course_id = ? AND user_id = ? AND status != ?",
		course.ID, userID, models.EnrollmentCancelled).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Already enrolled in this course")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if course.Capacity > 0 {
		var enrolled int64
		config.DB.Model(&models.CourseEnrollment{}).
			Where("course_id = ? AND status = ?", course.ID, models.EnrollmentPaid).
			Count(&enrolled)
		if enrolled >= int64(course.Capacity) {
			utils.RespondWithError(c, http.StatusConflict, "Course is full")
			return
		}
	}

	intent, err := services.Payments.CreateIntent(
		services.MinorUnits(course.Price),
		"usd",
		map[string]string{
			"course_id": course.ID.String(),
			"user_id":   userID.String(),
			"course":    course.Name,
		})
	if err != nil {
		log.Error().Err(err).Str("course_id", course.ID.String()).Msg("Course payment intent creation failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Payment provider error")
		return
	}

	enrollment := models.CourseEnrollment{
		CourseID:              course.ID,
		UserID:                userID,
		Status:                models.EnrollmentPending,
		StripePaymentIntentID: intent.ID,
	}
	if err := config.DB.Create(&enrollment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create enrollment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"enrollmentId": enrollment.ID,
		"intentId":     intent.ID,
		"clientSecret": intent.ClientSecret,
	})
}

// ConfirmEnrollment marks an enrollment paid after the frontend
// confirms the payment intent.
func ConfirmEnrollment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	enrollmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid enrollment ID format")
		return
	}

	var enrollment models.CourseEnrollment
	if err := config.DB.Preload("Course").First(&enrollment, "id = ? AND user_id = ?", enrollmentID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Enrollment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if enrollment.Status != models.EnrollmentPending {
		utils.RespondWithError(c, http.StatusBadRequest, "Enrollment is not pending")
		return
	}

	if err := config.DB.Model(&enrollment).Update("status", models.EnrollmentPaid).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update enrollment")
		return
	}

	services.NewNotificationService(config.DB).NotifyPaymentReceived(
		userID, enrollment.Course.Price, enrollment.Course.Name, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Enrollment confirmed"})
}
