// services/notification_service.go
package services

import (
	"fmt"
	"os"
	"time"

	"lashbook-backend/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotificationService writes user-facing notification rows. Delivery
// is best-effort: a failed insert is logged and swallowed so it can
// never fail the business operation that triggered it.
type NotificationService struct {
	db  *gorm.DB
	sms *twilio.RestClient
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	svc := &NotificationService{db: db}

	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	if accountSid != "" && authToken != "" {
		svc.sms = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	}

	return svc
}

// Create inserts one notification row. Errors are logged, never
// returned.
func (s *NotificationService) Create(userID uuid.UUID, notifType, title, message string, appointmentID *uuid.UUID) {
	notification := models.Notification{
		UserID:        userID,
		Type:          notifType,
		Title:         title,
		Message:       message,
		AppointmentID: appointmentID,
	}

	if err := s.db.Create(&notification).Error; err != nil {
		log.Error().Err(err).
			Str("user_id", userID.String()).
			Str("type", notifType).
			Msg("Failed to create notification")
		return
	}

	// Reminders additionally go out over SMS when configured.
	if notifType == models.NotificationReminder24h || notifType == models.NotificationReminder2h {
		s.sendSMS(userID, message)
	}
}

func (s *NotificationService) NotifyBookingConfirmed(userID uuid.UUID, serviceName string, date time.Time, clock string, appointmentID uuid.UUID) {
	message := fmt.Sprintf("Your %s appointment on %s at %s is confirmed. See you soon!",
		serviceName, date.Format("Jan 2, 2006"), clock)
	s.Create(userID, models.NotificationBookingConfirmed, "Booking confirmed", message, &appointmentID)
}

func (s *NotificationService) NotifyPaymentReceived(userID uuid.UUID, amount float64, serviceName string, appointmentID *uuid.UUID) {
	message := fmt.Sprintf("We received your payment of $%.2f for %s. Thank you!", amount, serviceName)
	s.Create(userID, models.NotificationPaymentReceived, "Payment received", message, appointmentID)
}

func (s *NotificationService) NotifyReminder24h(userID uuid.UUID, serviceName string, date time.Time, clock string, appointmentID *uuid.UUID) {
	message := fmt.Sprintf("Reminder: your %s appointment is tomorrow, %s at %s.",
		serviceName, date.Format("Jan 2, 2006"), clock)
	s.Create(userID, models.NotificationReminder24h, "Appointment tomorrow", message, appointmentID)
}

func (s *NotificationService) NotifyReminder2h(userID uuid.UUID, serviceName string, clock string, appointmentID *uuid.UUID) {
	message := fmt.Sprintf("Reminder: your %s appointment is today at %s.", serviceName, clock)
	s.Create(userID, models.NotificationReminder2h, "Appointment soon", message, appointmentID)
}

func (s *NotificationService) NotifyBookingCancelled(userID uuid.UUID, serviceName string, date time.Time, clock string, appointmentID uuid.UUID) {
	message := fmt.Sprintf("Your %s appointment on %s at %s has been cancelled.",
		serviceName, date.Format("Jan 2, 2006"), clock)
	s.Create(userID, models.NotificationBookingCancelled, "Booking cancelled", message, &appointmentID)
}

func (s *NotificationService) NotifyVIPAchieved(userID uuid.UUID) {
	message := "Congratulations! You've unlocked VIP status. Enjoy your gold tier perks and 10% off every visit."
	s.Create(userID, models.NotificationVIPAchieved, "Welcome to VIP", message, nil)
}

func (s *NotificationService) NotifyGeneral(userID uuid.UUID, title, message string) {
	s.Create(userID, models.NotificationGeneral, title, message, nil)
}

// sendSMS delivers a reminder over Twilio. Best-effort: missing
// client, missing phone or provider errors are logged and ignored.
func (s *NotificationService) sendSMS(userID uuid.UUID, body string) {
	if s.sms == nil {
		return
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil || user.Phone == "" {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(user.Phone)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(body)

	resp, err := s.sms.Api.CreateMessage(params)
	if err != nil {
		log.Error().Err(err).Str("phone", user.Phone).Msg("Failed to send reminder SMS")
		return
	}
	if resp.Sid != nil {
		log.Info().Str("phone", user.Phone).Str("sid", *resp.Sid).Msg("Reminder SMS sent")
	}
}
