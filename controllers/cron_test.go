package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"lashbook-backend/config"
	"lashbook-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCronTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Staff{}, &models.StaffNote{}, &models.Service{},
		&models.Appointment{}, &models.VIPProfile{}, &models.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	config.DB = db

	r := gin.New()
	r.GET("/api/cron/vip-expiry", RunVIPExpirySweep)
	r.GET("/api/cron/referrals", RunReferralSweep)
	r.GET("/api/cron/note-reminders", RunNoteReminderSweep)
	r.GET("/api/cron/refill-reminders", RunRefillReminderSweep)
	r.GET("/api/cron/appointment-reminders", RunAppointmentReminderSweep)
	return r
}

func cronGet(t *testing.T, r *gin.Engine, path string) map[string]any {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d: %s", path, w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("GET %s: invalid JSON: %v", path, err)
	}
	if resp["success"] != true {
		t.Fatalf("GET %s: expected success=true, got %v", path, resp)
	}
	return resp
}

func TestVIPExpiryCronEndpoint(t *testing.T) {
	r := setupCronTest(t)

	stale := time.Now().AddDate(0, -4, 0)
	user := models.User{ID: uuid.New(), Email: "vip@example.com", Name: "VIP",
		Password: "x", Role: models.RoleVIP, VIPStreak: 10, LastBookingDate: &stale}
	config.DB.Session(&gorm.Session{SkipHooks: true}).Create(&user)
	config.DB.Create(&models.VIPProfile{UserID: user.ID, Tier: models.DefaultVIPTier})

	resp := cronGet(t, r, "/api/cron/vip-expiry")
	if resp["processed"] != float64(1) {
		t.Errorf("expected processed=1, got %v", resp["processed"])
	}

	// Idempotent: a second trigger finds nothing.
	resp = cronGet(t, r, "/api/cron/vip-expiry")
	if resp["processed"] != float64(0) {
		t.Errorf("expected processed=0 on re-run, got %v", resp["processed"])
	}
}

func TestCronEndpointsReturnSummaryOnEmptyData(t *testing.T) {
	r := setupCronTest(t)

	for _, path := range []string{
		"/api/cron/vip-expiry",
		"/api/cron/referrals",
		"/api/cron/note-reminders",
		"/api/cron/refill-reminders",
		"/api/cron/appointment-reminders",
	} {
		resp := cronGet(t, r, path)
		if resp["processed"] != float64(0) {
			t.Errorf("%s: expected processed=0, got %v", path, resp["processed"])
		}
		if resp["message"] == "" {
			t.Errorf("%s: expected a message", path)
		}
	}
}
