package database

import (
	"fmt"
	"lingua_edu_backend/internal/config"
	"lingua_edu_backend/internal/model"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the MySQL connection. Schema migration and the
// bootstrap seed run only when migrate is set; in release mode the
// schema is managed out of band unless --migrate forces it.
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.School{},
		&model.User{},
		&model.Challenge{},
		&model.Question{},
		&model.MediaFile{},
		&model.QuestionMedia{},
		&model.QuestionConfiguration{},
		&model.StudentAnswer{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed a bootstrap admin so the dashboard is reachable on a fresh
	// database.
	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err == nil {
			admin := &model.User{
				Name:     "Administrator",
				Email:    "admin@lingua.local",
				Password: string(hash),
				Role:     model.Admin,
				IsActive: true,
			}
			db.Create(admin)
		}
	}

	return db, nil
}
