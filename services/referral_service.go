// services/referral_service.go
package services

import (
	"fmt"

	"lashbook-backend/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Referrers are fast-tracked to VIP only when their streak sits at
// exactly this value when the referral completes. Intentionally an
// equality check, not a threshold.
const ReferralFastTrackStreak = 5

type ReferralService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewReferralService(db *gorm.DB) *ReferralService {
	return &ReferralService{db: db, notifier: NewNotificationService(db)}
}

// Sweep marks referrals complete once the referred user has a
// completed booking, credits the referrer with a notification and
// fast-tracks qualifying referrers to VIP. Returns the number of
// referrals completed.
func (s *ReferralService) Sweep() (int, error) {
	var referred []models.User
	if err := s.db.Find(&referred, "referred_by IS NOT NULL AND referral_booking_completed = ?", false).Error; err != nil {
		return 0, err
	}

	completed := 0
	for _, user := range referred {
		var count int64
		if err := s.db.Model(&models.Appointment{}).
			Where("user_id = ? AND status = ?", user.ID, models.AppointmentCompleted).
			Count(&count).Error; err != nil {
			log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to check referral bookings")
			continue
		}
		if count == 0 {
			continue
		}

		if err := s.db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("referral_booking_completed", true).Error; err != nil {
			log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to mark referral completed")
			continue
		}
		completed++

		var referrer models.User
		if err := s.db.First(&referrer, "id = ?", *user.ReferredBy).Error; err != nil {
			log.Error().Err(err).Str("referrer_id", user.ReferredBy.String()).Msg("Referrer not found")
			continue
		}

		s.notifier.Create(referrer.ID, models.NotificationVIPAchieved,
			"Referral completed",
			fmt.Sprintf("%s completed their first booking thanks to your referral!", user.Name),
			nil)

		// Exact-equality trigger carried over from the original
		// product rule. A streak of 4 or 6 does not qualify.
		if referrer.VIPStreak != ReferralFastTrackStreak || referrer.Role == models.RoleVIP {
			continue
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.User{}).Where("id = ?", referrer.ID).Updates(map[string]interface{}{
				"role":       models.RoleVIP,
				"vip_streak": models.VIPStreakThreshold,
			}).Error; err != nil {
				return err
			}
			profile := models.VIPProfile{
				UserID:             referrer.ID,
				Tier:               models.DefaultVIPTier,
				PointsBalance:      0,
				DiscountPercentage: models.DefaultVIPDiscount,
			}
			return tx.Create(&profile).Error
		})
		if err != nil {
			log.Error().Err(err).Str("referrer_id", referrer.ID.String()).Msg("Failed to fast-track referrer to VIP")
			continue
		}

		log.Info().Str("referrer_id", referrer.ID.String()).Msg("Referrer fast-tracked to VIP")
		s.notifier.Create(referrer.ID, models.NotificationVIPAchieved,
			"VIP unlocked",
			"Your referrals unlocked VIP status! Enjoy your gold tier perks and 10% off every visit.",
			nil)
	}

	return completed, nil
}
