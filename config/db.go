package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		// Stay boundaries are stored as UTC calendar days.
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "smarthotel_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}
	return SeedDatabase(DB)
}

// Migrate runs AutoMigrate for the full schema, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.HotelSetting{},
		&models.Room{},
		&models.Booking{},
		&models.PricingRule{},
		&models.PriceHistory{},
		&models.StaffTask{},
	)
}

// SeedDatabase is idempotent: each block only inserts when its table is empty.
func SeedDatabase(db *gorm.DB) error {
	// ---------------- Default admin ----------------
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				FullName: "Admin User",
				Email:    "admin@smarthotel.local",
				Password: string(hash),
				Role:     "Admin",
				IsActive: true,
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Settings ----------------
	var settingCount int64
	db.Model(&models.HotelSetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.HotelSetting{
			Name:                 "Smart Hotel",
			RecomputePriceOnMove: false,
		}
		if err := db.Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to seed hotel settings: %w", err)
		}
		log.Println("Hotel settings seeded")
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{RoomNumber: "101", Type: "Single", PricePerNight: 80, Floor: "1", Status: models.RoomAvailable, IsActive: true},
			{RoomNumber: "102", Type: "Single", PricePerNight: 80, Floor: "1", Status: models.RoomAvailable, IsActive: true},
			{RoomNumber: "201", Type: "Double", PricePerNight: 120, Floor: "2", Status: models.RoomAvailable, IsActive: true},
			{RoomNumber: "202", Type: "Double", PricePerNight: 120, Floor: "2", Status: models.RoomAvailable, IsActive: true},
			{RoomNumber: "301", Type: "Suite", PricePerNight: 250, Floor: "3", Status: models.RoomAvailable, IsActive: true},
		}
		if err := db.Create(&rooms).Error; err != nil {
			return fmt.Errorf("failed to seed rooms: %w", err)
		}
		log.Println("Rooms seeded")
	}

	// ---------------- Pricing rules ----------------
	var ruleCount int64
	db.Model(&models.PricingRule{}).Count(&ruleCount)
	if ruleCount == 0 {
		weekend, err := json.Marshal([]string{"Saturday", "Sunday"})
		if err != nil {
			return err
		}
		threshold := 0.8
		rules := []models.PricingRule{
			{
				Name:            "Weekend Surcharge",
				RuleType:        models.RuleDayOfWeek,
				AdjustmentType:  models.AdjustPercentage,
				AdjustmentValue: 0.15,
				ApplyToDays:     weekend,
				IsActive:        true,
			},
			{
				Name:               "High Demand",
				RuleType:           models.RuleOccupancyBased,
				AdjustmentType:     models.AdjustPercentage,
				AdjustmentValue:    0.25,
				OccupancyThreshold: &threshold,
				IsActive:           true,
			},
		}
		if err := db.Create(&rules).Error; err != nil {
			return fmt.Errorf("failed to seed pricing rules: %w", err)
		}
		log.Println("Pricing rules seeded")
	}

	return nil
}
