package database

import (
	"gorm.io/gorm"
)

var DB *gorm.DB

// GetDB returns the global database handle set up by SetupDatabase.
func GetDB() *gorm.DB {
	return DB
}

// SetDB swaps the global database handle. Used by tests.
func SetDB(db *gorm.DB) {
	DB = db
}
