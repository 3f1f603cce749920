// services/reminder_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"lashbook-backend/models"
	"lashbook-backend/utils"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Note text is clipped to this many characters in reminder messages.
const noteReminderMaxLength = 150

// Services whose names match any of these (case-insensitive substring)
// get a refill reminder 10-11 days after a completed appointment.
var refillKeywords = []string{"refill", "lash", "volume", "hybrid", "natural"}

// ReminderService runs the periodic sweeps that turn due timestamps
// into notifications. Each sweep is idempotent: note reminders are
// guarded by a sent flag, refill and appointment reminders by an
// existence check on already-sent notifications.
type ReminderService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{db: db, notifier: NewNotificationService(db)}
}

// NoteReminderSweep dispatches reminders for staff notes due within
// the next five minutes, then flips the sent flag so a later sweep
// cannot send the same note twice.
func (s *ReminderService) NoteReminderSweep(now time.Time) (int, error) {
	deadline := now.Add(5 * time.Minute)

	var notes []models.StaffNote
	if err := s.db.Find(&notes, "reminder_datetime IS NOT NULL AND reminder_datetime <= ? AND reminder_sent = ?",
		deadline, false).Error; err != nil {
		return 0, err
	}

	sent := 0
	for _, note := range notes {
		var staff models.Staff
		if err := s.db.First(&staff, "id = ?", note.StaffID).Error; err != nil {
			log.Error().Err(err).Str("note_id", note.ID.String()).Msg("Staff not found for note reminder")
			continue
		}

		s.notifier.Create(staff.UserID, models.NotificationReminder24h,
			"Note reminder",
			utils.Truncate(note.Text, noteReminderMaxLength),
			nil)

		if err := s.db.Model(&models.StaffNote{}).Where("id = ?", note.ID).
			Update("reminder_sent", true).Error; err != nil {
			log.Error().Err(err).Str("note_id", note.ID.String()).Msg("Failed to mark note reminder sent")
			continue
		}
		sent++
	}

	return sent, nil
}

// RefillReminderSweep nudges clients whose qualifying appointment was
// 10-11 days ago that it is time to book a refill. Deduped by checking
// for an existing reminder linked to the same appointment.
func (s *ReminderService) RefillReminderSweep(now time.Time) (int, error) {
	windowStart := utils.BeginningOfDay(now.AddDate(0, 0, -11))
	windowEnd := utils.BeginningOfDay(now.AddDate(0, 0, -9))

	var appointments []models.Appointment
	if err := s.db.Preload("Service").
		Find(&appointments, "status = ? AND appointment_date >= ? AND appointment_date < ?",
			models.AppointmentCompleted, windowStart, windowEnd).Error; err != nil {
		return 0, err
	}

	sent := 0
	for _, appointment := range appointments {
		days := utils.DaysBetween(appointment.AppointmentDate, now)
		if days < 10 || days > 11 {
			continue
		}
		if !matchesRefillKeyword(appointment.Service.Name) {
			continue
		}

		var existing int64
		if err := s.db.Model(&models.Notification{}).
			Where("user_id = ? AND appointment_id = ? AND type = ?",
				appointment.UserID, appointment.ID, models.NotificationReminder24h).
			Count(&existing).Error; err != nil {
			log.Error().Err(err).Str("appointment_id", appointment.ID.String()).Msg("Failed refill dedup check")
			continue
		}
		if existing > 0 {
			continue
		}

		appointmentID := appointment.ID
		s.notifier.Create(appointment.UserID, models.NotificationReminder24h,
			"Time for a refill",
			fmt.Sprintf("It's been almost two weeks since your %s. Book your refill now to keep your lashes looking full!",
				appointment.Service.Name),
			&appointmentID)
		sent++
	}

	return sent, nil
}

// AppointmentReminderSweep sends 24-hour and 2-hour reminders for
// upcoming confirmed appointments, deduped per appointment and type.
func (s *ReminderService) AppointmentReminderSweep(now time.Time) (int, error) {
	dayStart := utils.BeginningOfDay(now)
	dayEnd := utils.BeginningOfDay(now.AddDate(0, 0, 2))

	var appointments []models.Appointment
	if err := s.db.Preload("Service").
		Find(&appointments, "status = ? AND appointment_date >= ? AND appointment_date < ?",
			models.AppointmentConfirmed, dayStart, dayEnd).Error; err != nil {
		return 0, err
	}

	sent := 0
	for _, appointment := range appointments {
		instant := utils.CombineDateTime(appointment.AppointmentDate, appointment.AppointmentTime)
		if !instant.After(now) {
			continue
		}

		until := instant.Sub(now)
		var reminderType string
		switch {
		case until <= 2*time.Hour:
			reminderType = models.NotificationReminder2h
		case until <= 24*time.Hour:
			reminderType = models.NotificationReminder24h
		default:
			continue
		}

		var existing int64
		if err := s.db.Model(&models.Notification{}).
			Where("user_id = ? AND appointment_id = ? AND type = ?",
				appointment.UserID, appointment.ID, reminderType).
			Count(&existing).Error; err != nil {
			log.Error().Err(err).Str("appointment_id", appointment.ID.String()).Msg("Failed reminder dedup check")
			continue
		}
		if existing > 0 {
			continue
		}

		appointmentID := appointment.ID
		if reminderType == models.NotificationReminder2h {
			s.notifier.NotifyReminder2h(appointment.UserID, appointment.Service.Name,
				appointment.AppointmentTime, &appointmentID)
		} else {
			s.notifier.NotifyReminder24h(appointment.UserID, appointment.Service.Name,
				appointment.AppointmentDate, appointment.AppointmentTime, &appointmentID)
		}
		sent++
	}

	return sent, nil
}

func matchesRefillKeyword(serviceName string) bool {
	lower := strings.ToLower(serviceName)
	for _, keyword := range refillKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
