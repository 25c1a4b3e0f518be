package model

import (
	"time"

	"github.com/lib/pq"
)

// Hotel represents the database model for hotels
type Hotel struct {
	ID          string         `gorm:"primary_key" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	City        string         `gorm:"type:varchar(100);not null;index" json:"city"`
	Address     string         `gorm:"type:varchar(255)" json:"address"`
	Rating      float64        `gorm:"type:decimal(2,1);default:0" json:"rating"`
	Amenities   pq.StringArray `gorm:"type:text[]" json:"amenities"`
	CreatedAt   time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName sets the table name for GORM
func (Hotel) TableName() string {
	return "hotels"
}

// RoomType represents a bookable room category within a hotel.
type RoomType struct {
	ID         string    `gorm:"primary_key" json:"id"`
	HotelID    string    `gorm:"not null;index" json:"hotel_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Capacity   int       `gorm:"not null" json:"capacity"`
	BasePrice  float64   `gorm:"type:decimal(10,2);not null" json:"base_price"`
	TotalRooms int       `gorm:"not null" json:"total_rooms"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the table name for GORM
func (RoomType) TableName() string {
	return "room_types"
}

// RoomPrice is a per-date price override for a room type. When no override
// exists for a date, the room type's base price applies.
type RoomPrice struct {
	ID         string    `gorm:"primary_key" json:"id"`
	RoomTypeID string    `gorm:"not null;index:idx_room_price_date" json:"room_type_id"`
	Date       time.Time `gorm:"type:date;not null;index:idx_room_price_date" json:"date"`
	Price      float64   `gorm:"type:decimal(10,2);not null" json:"price"`
}

// TableName sets the table name for GORM
func (RoomPrice) TableName() string {
	return "room_prices"
}

// CreateHotelRequest represents the data needed to create a hotel
type CreateHotelRequest struct {
	Name        string
	Description string
	City        string
	Address     string
	Rating      float64
	Amenities   []string
}

// UpdateHotelRequest represents a hotel update
type UpdateHotelRequest struct {
	ID          string
	Name        string
	Description string
	City        string
	Address     string
	Rating      float64
	Amenities   []string
}

// HotelSearchFilter represents filtering options for hotel search.
// All fields are optional; the zero value means "not filtered".
type HotelSearchFilter struct {
	City      string
	Name      string
	MinRating float64
	SortBy    string
	Limit     int
	Offset    int
}

// HotelListResponse wraps a page of hotels together with the total count.
type HotelListResponse struct {
	Hotels []Hotel `json:"hotels"`
	Total  int     `json:"total"`
}
