package database

import (
	"fmt"
	"log"

	"github.com/mkowalczyk/timesheet-api/internal/config"
	"github.com/mkowalczyk/timesheet-api/internal/constants"
	"github.com/mkowalczyk/timesheet-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
		)
		dialector = postgres.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		dialector = mysql.Open(dsn)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return nil
}

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Campaign{},
		&models.WorkReport{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// SeedAdmin creates the bootstrap administrator account if it does not exist.
func SeedAdmin(cfg *config.Config) error {
	var count int64
	if err := DB.Model(&models.User{}).
		Where("login = ?", constants.AdminLogin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.AdminPassword == "admin" {
		log.Println("WARNING: admin account uses the default password, set ADMIN_PASSWORD")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		FirstName:    "Admin",
		LastName:     "Admin",
		Login:        constants.AdminLogin,
		Service:      "administration",
		PasswordHash: string(hash),
	}
	if err := DB.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	log.Println("Seeded administrator account")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
