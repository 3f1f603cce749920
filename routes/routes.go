package routes

import (
	"os"
	"strings"

	"lashbook-backend/config"
	"lashbook-backend/controllers"
	"lashbook-backend/models"
	"lashbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(config.RequestLogger())

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Cron endpoints are hit by an external scheduler, not end users.
	cron := r.Group("/api/cron")
	{
		cron.GET("/vip-expiry", controllers.RunVIPExpirySweep)
		cron.GET("/referrals", controllers.RunReferralSweep)
		cron.GET("/note-reminders", controllers.RunNoteReminderSweep)
		cron.GET("/refill-reminders", controllers.RunRefillReminderSweep)
		cron.GET("/appointment-reminders", controllers.RunAppointmentReminderSweep)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetMyAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id/status",
				utils.RequireRoles(models.RoleAdmin, models.RoleManager, models.RoleStaff),
				controllers.UpdateAppointmentStatus)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/intent", controllers.CreatePaymentIntent)
			payments.POST("/refund", controllers.RequestRefund)
			payments.POST("/:id/confirm", controllers.ConfirmPayment)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", controllers.GetNotifications)
			notifications.PUT("/:id/read", controllers.MarkNotificationRead)
			notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
		}

		api.GET("/vip", controllers.GetVIPProfile)

		services := api.Group("/services")
		{
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.POST("", utils.RequireRoles(models.RoleAdmin, models.RoleManager), controllers.CreateService)
			services.PUT("/:id", utils.RequireRoles(models.RoleAdmin, models.RoleManager), controllers.UpdateService)
		}

		courses := api.Group("/courses")
		{
			courses.GET("", controllers.GetCourses)
			courses.GET("/:id", controllers.GetCourse)
			courses.POST("", utils.RequireRoles(models.RoleAdmin, models.RoleManager), controllers.CreateCourse)
			courses.POST("/:id/enroll", controllers.EnrollInCourse)
			courses.POST("/enrollments/:id/confirm", controllers.ConfirmEnrollment)
		}

		staff := api.Group("/staff")
		{
			staff.GET("", controllers.GetStaff)
			staff.POST("", utils.RequireRoles(models.RoleAdmin), controllers.CreateStaff)
			staff.GET("/notes", controllers.GetStaffNotes)
			staff.POST("/notes", controllers.CreateStaffNote)
			staff.DELETE("/notes/:id", controllers.DeleteStaffNote)
		}

		api.GET("/dashboard",
			utils.RequireRoles(models.RoleAdmin, models.RoleManager),
			controllers.GetDashboardOverview)
	}

	return r
}
