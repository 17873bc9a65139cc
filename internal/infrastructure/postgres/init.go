package postgres

import (
	"log"

	"github.com/LavaJover/shvark-commission-service/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MustInitDB opens the commission database. The schema is owned by the SQL
// migrations, not by AutoMigrate.
func MustInitDB(cfg *config.CommissionConfig) *gorm.DB {
	dsn := cfg.CommissionDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v\n", err.Error())
	}
	if cfg.CommissionDB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.CommissionDB.MaxOpenConns)
	}
	if cfg.CommissionDB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.CommissionDB.MaxIdleConns)
	}

	return db
}
