package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clubportal/internal/model"
)

// NewMySQL returns a connected GORM DB instance with the activity log
// table migrated.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	if err := db.AutoMigrate(&model.ActivityLog{}); err != nil {
		return nil, fmt.Errorf("migrate activity log: %w", err)
	}
	return db, nil
}
