package postgres

import (
	"fmt"
	"log"

	"github.com/daniil-5/hotelbooking/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to PostgreSQL and migrates all tables. The returned handle
// is shared by the per-entity repositories.
func Open(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Hotel{},
		&model.RoomType{},
		&model.RoomPrice{},
		&model.Booking{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database connected and tables migrated successfully")

	return db, nil
}
