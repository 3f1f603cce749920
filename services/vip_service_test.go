package services

import (
	"testing"
	"time"

	"lashbook-backend/models"
)

func TestStreakBelowThresholdDoesNotPromote(t *testing.T) {
	db := newTestDB(t)
	svc := NewVIPService(db)
	service := createService(t, db, "Classic Full Set", 120)

	user := createUser(t, db, models.User{VIPStreak: 3})
	appointment := createAppointment(t, db, user.ID, service.ID, models.AppointmentCompleted,
		date(2026, time.August, 20), "14:00")

	if err := svc.HandleCompletedAppointment(&appointment); err != nil {
		t.Fatalf("HandleCompletedAppointment: %v", err)
	}

	var got models.User
	db.First(&got, "id = ?", user.ID)
	if got.VIPStreak != 4 {
		t.Errorf("expected streak 4, got %d", got.VIPStreak)
	}
	if got.Role != models.RoleUser {
		t.Errorf("expected role user, got %s", got.Role)
	}
	if got.LastBookingDate == nil {
		t.Error("expected last booking date to be set")
	}

	var profiles int64
	db.Model(&models.VIPProfile{}).Where("user_id = ?", user.ID).Count(&profiles)
	if profiles != 0 {
		t.Errorf("expected no VIP profile, got %d", profiles)
	}
}

func TestStreakReachingThresholdPromotesOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewVIPService(db)
	service := createService(t, db, "Volume Full Set", 150)

	user := createUser(t, db, models.User{VIPStreak: 9})
	appointment := createAppointment(t, db, user.ID, service.ID, models.AppointmentCompleted,
		date(2026, time.August, 20), "14:00")

	if err := svc.HandleCompletedAppointment(&appointment); err != nil {
		t.Fatalf("HandleCompletedAppointment: %v", err)
	}

	var got models.User
	db.First(&got, "id = ?", user.ID)
	if got.Role != models.RoleVIP {
		t.Errorf("expected role vip, got %s", got.Role)
	}
	if got.VIPStreak != 10 {
		t.Errorf("expected streak 10, got %d", got.VIPStreak)
	}

	var profile models.VIPProfile
	if err := db.First(&profile, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("expected VIP profile: %v", err)
	}
	if profile.Tier != models.DefaultVIPTier {
		t.Errorf("expected tier gold, got %s", profile.Tier)
	}
	if profile.DiscountPercentage != models.DefaultVIPDiscount {
		t.Errorf("expected discount 10, got %v", profile.DiscountPercentage)
	}
	if profile.PointsBalance != 0 {
		t.Errorf("expected zero points, got %d", profile.PointsBalance)
	}

	if n := countNotifications(t, db, user.ID, models.NotificationVIPAchieved); n != 1 {
		t.Errorf("expected exactly one vip_achieved notification, got %d", n)
	}

	var profiles int64
	db.Model(&models.VIPProfile{}).Where("user_id = ?", user.ID).Count(&profiles)
	if profiles != 1 {
		t.Errorf("expected exactly one VIP profile, got %d", profiles)
	}
}

func TestExistingVIPIsNotPromotedAgain(t *testing.T) {
	db := newTestDB(t)
	svc := NewVIPService(db)
	service := createService(t, db, "Hybrid Refill", 90)

	user := createUser(t, db, models.User{Role: models.RoleVIP, VIPStreak: 10})
	db.Create(&models.VIPProfile{UserID: user.ID, Tier: models.DefaultVIPTier, DiscountPercentage: models.DefaultVIPDiscount})

	appointment := createAppointment(t, db, user.ID, service.ID, models.AppointmentCompleted,
		date(2026, time.August, 20), "14:00")
	if err := svc.HandleCompletedAppointment(&appointment); err != nil {
		t.Fatalf("HandleCompletedAppointment: %v", err)
	}

	var profiles int64
	db.Model(&models.VIPProfile{}).Where("user_id = ?", user.ID).Count(&profiles)
	if profiles != 1 {
		t.Errorf("expected a single VIP profile, got %d", profiles)
	}
	if n := countNotifications(t, db, user.ID, models.NotificationVIPAchieved); n != 0 {
		t.Errorf("expected no new vip_achieved notification, got %d", n)
	}
}

func TestExpirySweepUsesStrictCutoff(t *testing.T) {
	db := newTestDB(t)
	svc := NewVIPService(db)
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	// Exactly at the cutoff: stays VIP.
	atCutoff := now.AddDate(0, -3, 0)
	boundaryUser := createUser(t, db, models.User{Role: models.RoleVIP, VIPStreak: 10, LastBookingDate: &atCutoff})
	db.Create(&models.VIPProfile{UserID: boundaryUser.ID, Tier: models.DefaultVIPTier})

	// One day past the cutoff: demoted.
	expired := now.AddDate(0, -3, -1)
	expiredUser := createUser(t, db, models.User{Role: models.RoleVIP, VIPStreak: 10, LastBookingDate: &expired})
	db.Create(&models.VIPProfile{UserID: expiredUser.ID, Tier: models.DefaultVIPTier})

	// No booking history at all: skipped.
	noHistory := createUser(t, db, models.User{Role: models.RoleVIP, VIPStreak: 10})
	db.Create(&models.VIPProfile{UserID: noHistory.ID, Tier: models.DefaultVIPTier})

	demoted, err := svc.ExpirySweep(now)
	if err != nil {
		t.Fatalf("ExpirySweep: %v", err)
	}
	if demoted != 1 {
		t.Errorf("expected 1 demotion, got %d", demoted)
	}

	var got models.User
	db.First(&got, "id = ?", boundaryUser.ID)
	if got.Role != models.RoleVIP {
		t.Errorf("boundary user should keep VIP, got role %s", got.Role)
	}

	got = models.User{}
	db.First(&got, "id = ?", expiredUser.ID)
	if got.Role != models.RoleUser {
		t.Errorf("expired user should be demoted, got role %s", got.Role)
	}
	if got.VIPStreak != 0 {
		t.Errorf("expired user streak should reset to 0, got %d", got.VIPStreak)
	}

	var profiles int64
	db.Model(&models.VIPProfile{}).Where("user_id = ?", expiredUser.ID).Count(&profiles)
	if profiles != 0 {
		t.Errorf("expected expired user's profile removed, got %d", profiles)
	}
	if n := countNotifications(t, db, expiredUser.ID, models.NotificationGeneral); n != 1 {
		t.Errorf("expected one demotion notification, got %d", n)
	}

	got = models.User{}
	db.First(&got, "id = ?", noHistory.ID)
	if got.Role != models.RoleVIP {
		t.Errorf("user without booking history should be skipped, got role %s", got.Role)
	}
}

func TestExpirySweepIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewVIPService(db)
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	expired := now.AddDate(0, -4, 0)
	user := createUser(t, db, models.User{Role: models.RoleVIP, VIPStreak: 10, LastBookingDate: &expired})
	db.Create(&models.VIPProfile{UserID: user.ID, Tier: models.DefaultVIPTier})

	if n, err := svc.ExpirySweep(now); err != nil || n != 1 {
		t.Fatalf("first sweep: n=%d err=%v", n, err)
	}
	if n, err := svc.ExpirySweep(now); err != nil || n != 0 {
		t.Fatalf("second sweep should be a no-op: n=%d err=%v", n, err)
	}
	if n := countNotifications(t, db, user.ID, models.NotificationGeneral); n != 1 {
		t.Errorf("expected a single demotion notification after two sweeps, got %d", n)
	}
}

// End-to-end: appointment completion carries a user from streak 9 to
// promoted VIP with one profile and one notification.
func TestCompletionPromotionEndToEnd(t *testing.T) {
	db := newTestDB(t)
	service := createService(t, db, "Natural Set", 100)
	user := createUser(t, db, models.User{VIPStreak: 9})
	appointment := createAppointment(t, db, user.ID, service.ID, models.AppointmentConfirmed,
		date(2026, time.August, 25), "11:00")

	// Status flips to completed, then the evaluator runs, the same
	// sequence the appointment controller performs.
	if err := db.Model(&appointment).Update("status", models.AppointmentCompleted).Error; err != nil {
		t.Fatalf("status update: %v", err)
	}
	if err := NewVIPService(db).HandleCompletedAppointment(&appointment); err != nil {
		t.Fatalf("HandleCompletedAppointment: %v", err)
	}

	var got models.User
	db.First(&got, "id = ?", user.ID)
	if got.Role != models.RoleVIP || got.VIPStreak != 10 {
		t.Errorf("expected vip/streak 10, got %s/%d", got.Role, got.VIPStreak)
	}

	var profile models.VIPProfile
	if err := db.First(&profile, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("expected VIP profile: %v", err)
	}
	if profile.DiscountPercentage != 10 {
		t.Errorf("expected discount 10, got %v", profile.DiscountPercentage)
	}
	if n := countNotifications(t, db, user.ID, models.NotificationVIPAchieved); n != 1 {
		t.Errorf("expected one vip_achieved notification, got %d", n)
	}
}
