// services/scheduler.go
package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StartScheduler registers the periodic sweeps with an in-process cron
// runner. The same sweeps are also exposed as GET /api/cron endpoints
// for external triggering; both paths are idempotent so overlap is
// harmless.
func StartScheduler(db *gorm.DB) *cron.Cron {
	vip := NewVIPService(db)
	referrals := NewReferralService(db)
	reminders := NewReminderService(db)

	c := cron.New()

	// Note and appointment reminders are time-sensitive.
	c.AddFunc("*/5 * * * *", func() {
		if n, err := reminders.NoteReminderSweep(time.Now()); err != nil {
			log.Error().Err(err).Msg("Note reminder sweep failed")
		} else if n > 0 {
			log.Info().Int("sent", n).Msg("Note reminders sent")
		}
		if n, err := reminders.AppointmentReminderSweep(time.Now()); err != nil {
			log.Error().Err(err).Msg("Appointment reminder sweep failed")
		} else if n > 0 {
			log.Info().Int("sent", n).Msg("Appointment reminders sent")
		}
	})

	// Loyalty bookkeeping once an hour.
	c.AddFunc("0 * * * *", func() {
		if n, err := vip.ExpirySweep(time.Now()); err != nil {
			log.Error().Err(err).Msg("VIP expiry sweep failed")
		} else if n > 0 {
			log.Info().Int("demoted", n).Msg("Expired VIPs demoted")
		}
		if n, err := referrals.Sweep(); err != nil {
			log.Error().Err(err).Msg("Referral sweep failed")
		} else if n > 0 {
			log.Info().Int("completed", n).Msg("Referrals completed")
		}
	})

	// Refill nudges once a day at 10 AM.
	c.AddFunc("0 10 * * *", func() {
		if n, err := reminders.RefillReminderSweep(time.Now()); err != nil {
			log.Error().Err(err).Msg("Refill reminder sweep failed")
		} else if n > 0 {
			log.Info().Int("sent", n).Msg("Refill reminders sent")
		}
	})

	c.Start()
	log.Info().Msg("Sweep scheduler started")
	return c
}
