package config

import (
	"github.com/ctrl-sk/qr-gen-pro/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

var DB *gorm.DB

// InitDB opens the SQLite database with GORM and migrates the schema.
// The pool is pinned to one connection: SQLite in-memory databases exist
// per-connection, and a single writer serializes the scan transaction so
// the insert/increment pair never interleaves across resolves.
func InitDB() error {
	path := App.DatabasePath
	if path == "" {
		path = "qr_tracker.db"
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)

	// Auto migrate the schema
	return DB.AutoMigrate(&models.QRCode{}, &models.Scan{})
}
