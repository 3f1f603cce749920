// services/vip_service.go
package services

import (
	"time"

	"lashbook-backend/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// VIPService owns the loyalty lifecycle: streak accounting on
// completed bookings, promotion at the streak threshold and the
// periodic expiry sweep that demotes inactive VIPs.
type VIPService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewVIPService(db *gorm.DB) *VIPService {
	return &VIPService{db: db, notifier: NewNotificationService(db)}
}

// HandleCompletedAppointment is invoked when an appointment's status
// becomes completed. It increments the owner's streak, stamps the last
// booking date and promotes to VIP once the streak reaches the
// threshold.
func (s *VIPService) HandleCompletedAppointment(appointment *models.Appointment) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", appointment.UserID).Error; err != nil {
		return err
	}

	newStreak := user.VIPStreak + 1
	bookingDate := appointment.AppointmentDate

	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"vip_streak":        newStreak,
		"last_booking_date": &bookingDate,
	}).Error; err != nil {
		return err
	}

	if newStreak >= models.VIPStreakThreshold && user.Role != models.RoleVIP {
		if err := s.promote(&user, newStreak); err != nil {
			return err
		}
	}

	return nil
}

// promote flips the role and creates the VIP profile in one
// transaction, then emits the vip_achieved notification. The
// notification stays outside the transaction: it is best-effort and
// must not roll back the promotion.
func (s *VIPService) promote(user *models.User, streak int) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"role":       models.RoleVIP,
			"vip_streak": streak,
		}).Error; err != nil {
			return err
		}

		profile := models.VIPProfile{
			UserID:             user.ID,
			Tier:               models.DefaultVIPTier,
			PointsBalance:      0,
			DiscountPercentage: models.DefaultVIPDiscount,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return err
	}

	log.Info().Str("user_id", user.ID.String()).Msg("User promoted to VIP")
	s.notifier.NotifyVIPAchieved(user.ID)
	return nil
}

// ExpirySweep demotes VIP users whose last booking is more than three
// months old. Naturally idempotent: a demoted user no longer matches
// role = vip. Returns the number of users demoted.
func (s *VIPService) ExpirySweep(now time.Time) (int, error) {
	cutoff := now.AddDate(0, -3, 0)

	var vips []models.User
	if err := s.db.Find(&vips, "role = ?", models.RoleVIP).Error; err != nil {
		return 0, err
	}

	demoted := 0
	for _, user := range vips {
		if user.LastBookingDate == nil {
			continue
		}
		// Strict comparison: exactly-at-cutoff keeps VIP status.
		if !user.LastBookingDate.Before(cutoff) {
			continue
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
				"role":       models.RoleUser,
				"vip_streak": 0,
			}).Error; err != nil {
				return err
			}
			return tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.VIPProfile{}).Error
		})
		if err != nil {
			log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to demote expired VIP")
			continue
		}

		s.notifier.NotifyGeneral(user.ID,
			"VIP status expired",
			"Your VIP status has expired after 3 months without a booking. Book again to start working back up!")
		demoted++
	}

	return demoted, nil
}
