package services

import (
	"testing"
	"time"

	"lashbook-backend/models"
)

func TestReferralCompletionMarksFlagAndNotifiesReferrer(t *testing.T) {
	db := newTestDB(t)
	svc := NewReferralService(db)
	service := createService(t, db, "Classic Set", 100)

	referrer := createUser(t, db, models.User{VIPStreak: 2})
	referred := createUser(t, db, models.User{ReferredBy: &referrer.ID})
	createAppointment(t, db, referred.ID, service.ID, models.AppointmentCompleted,
		date(2026, time.August, 20), "10:00")

	completed, err := svc.Sweep()
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if completed != 1 {
		t.Errorf("expected 1 completed referral, got %d", completed)
	}

	var got models.User
	db.First(&got, "id = ?", referred.ID)
	if !got.ReferralBookingCompleted {
		t.Error("expected referral_booking_completed to be set")
	}

	if n := countNotifications(t, db, referrer.ID, models.NotificationVIPAchieved); n != 1 {
		t.Errorf("expected one referral-completed notification, got %d", n)
	}

	// Streak 2 does not qualify for the fast track.
	db.First(&got, "id = ?", referrer.ID)
	if got.Role != models.RoleUser {
		t.Errorf("expected referrer to stay a regular user, got %s", got.Role)
	}
}

func TestReferralWithoutCompletedBookingIsSkipped(t *testing.T) {
	db := newTestDB(t)
	svc := NewReferralService(db)
	service := createService(t, db, "Classic Set", 100)

	referrer := createUser(t, db, models.User{})
	referred := createUser(t, db, models.User{ReferredBy: &referrer.ID})
	createAppointment(t, db, referred.ID, service.ID, models.AppointmentPending,
		date(2026, time.September, 20), "10:00")

	completed, err := svc.Sweep()
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if completed != 0 {
		t.Errorf("expected no completed referrals, got %d", completed)
	}

	var got models.User
	db.First(&got, "id = ?", referred.ID)
	if got.ReferralBookingCompleted {
		t.Error("flag must stay false without a completed booking")
	}
}

// The fast track fires only on a streak of exactly 5. This mirrors the
// original product rule; values on either side must not trigger it.
func TestReferralFastTrackRequiresExactStreak(t *testing.T) {
	cases := []struct {
		name      string
		streak    int
		wantVIP   bool
		wantNotes int64 // vip_achieved notifications for the referrer
	}{
		{"streak 4", 4, false, 1},
		{"streak 5", 5, true, 2},
		{"streak 6", 6, false, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			svc := NewReferralService(db)
			service := createService(t, db, "Volume Set", 140)

			referrer := createUser(t, db, models.User{VIPStreak: tc.streak})
			referred := createUser(t, db, models.User{ReferredBy: &referrer.ID})
			createAppointment(t, db, referred.ID, service.ID, models.AppointmentCompleted,
				date(2026, time.August, 20), "10:00")

			if _, err := svc.Sweep(); err != nil {
				t.Fatalf("Sweep: %v", err)
			}

			var got models.User
			db.First(&got, "id = ?", referrer.ID)

			if tc.wantVIP {
				if got.Role != models.RoleVIP {
					t.Errorf("expected referrer promoted, got role %s", got.Role)
				}
				if got.VIPStreak != models.VIPStreakThreshold {
					t.Errorf("expected streak fast-tracked to %d, got %d", models.VIPStreakThreshold, got.VIPStreak)
				}
				var profiles int64
				db.Model(&models.VIPProfile{}).Where("user_id = ?", referrer.ID).Count(&profiles)
				if profiles != 1 {
					t.Errorf("expected one VIP profile, got %d", profiles)
				}
			} else {
				if got.Role == models.RoleVIP {
					t.Errorf("streak %d must not trigger the fast track", tc.streak)
				}
				if got.VIPStreak != tc.streak {
					t.Errorf("streak should be untouched, got %d", got.VIPStreak)
				}
			}

			if n := countNotifications(t, db, referrer.ID, models.NotificationVIPAchieved); n != tc.wantNotes {
				t.Errorf("expected %d notifications for referrer, got %d", tc.wantNotes, n)
			}
		})
	}
}

func TestReferralSweepDoesNotFireTwice(t *testing.T) {
	db := newTestDB(t)
	svc := NewReferralService(db)
	service := createService(t, db, "Hybrid Set", 120)

	referrer := createUser(t, db, models.User{VIPStreak: 5})
	referred := createUser(t, db, models.User{ReferredBy: &referrer.ID})
	createAppointment(t, db, referred.ID, service.ID, models.AppointmentCompleted,
		date(2026, time.August, 20), "10:00")

	if _, err := svc.Sweep(); err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	if n, err := svc.Sweep(); err != nil || n != 0 {
		t.Fatalf("second sweep should be a no-op: n=%d err=%v", n, err)
	}

	if n := countNotifications(t, db, referrer.ID, models.NotificationVIPAchieved); n != 2 {
		t.Errorf("expected notifications only from the first sweep, got %d", n)
	}
}
