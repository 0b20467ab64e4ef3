package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
)

// MigrateDB 迁移全部表结构。
// 顺序按外键依赖排列：users -> profiles -> listings -> listing_images。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	models := []interface{}{
		&domain.User{},
		&domain.Profile{},
		&domain.Listing{},
		&domain.ListingImage{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			logrus.Errorf("Failed to auto-migrate %T: %v", m, err)
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}

	logrus.Info("Database migration completed successfully")
	return nil
}
