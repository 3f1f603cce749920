package services

import (
	"path/filepath"
	"testing"
	"time"

	"lashbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Staff{},
		&models.StaffNote{},
		&models.Service{},
		&models.Appointment{},
		&models.VIPProfile{},
		&models.Notification{},
		&models.Payment{},
		&models.Course{},
		&models.CourseEnrollment{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// createUser inserts a user without running the bcrypt BeforeCreate
// hook; password hashing is irrelevant to these tests.
func createUser(t *testing.T, db *gorm.DB, user models.User) models.User {
	t.Helper()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Email == "" {
		user.Email = user.ID.String() + "@example.com"
	}
	if user.Name == "" {
		user.Name = "Test User"
	}
	if user.Password == "" {
		user.Password = "not-a-real-hash"
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if err := db.Session(&gorm.Session{SkipHooks: true}).Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createService(t *testing.T, db *gorm.DB, name string, price float64) models.Service {
	t.Helper()
	service := models.Service{Name: name, Price: price, Duration: 60, IsActive: true}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return service
}

func createStaff(t *testing.T, db *gorm.DB) models.Staff {
	t.Helper()
	user := createUser(t, db, models.User{Role: models.RoleStaff})
	staff := models.Staff{UserID: user.ID, IsActive: true}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("failed to create staff: %v", err)
	}
	return staff
}

func createAppointment(t *testing.T, db *gorm.DB, userID uuid.UUID, serviceID uuid.UUID, status string, date time.Time, clock string) models.Appointment {
	t.Helper()
	staff := createStaff(t, db)
	appointment := models.Appointment{
		UserID:          userID,
		StaffID:         staff.ID,
		ServiceID:       serviceID,
		Status:          status,
		AppointmentDate: date,
		AppointmentTime: clock,
		TotalPrice:      80,
	}
	if err := db.Create(&appointment).Error; err != nil {
		t.Fatalf("failed to create appointment: %v", err)
	}
	return appointment
}

func countNotifications(t *testing.T, db *gorm.DB, userID uuid.UUID, notifType string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, notifType).
		Count(&count).Error; err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	return count
}
