package model

import (
	"time"
)

// BookingStatus is the booking lifecycle state, persisted as an integer.
type BookingStatus int

const (
	StatusPending BookingStatus = iota
	StatusConfirmed
	StatusCancelled
	StatusCompleted
)

// Valid reports whether the status is one of the defined enum values.
// Status updates must reject anything outside this range instead of
// persisting an unknown code.
func (s BookingStatus) Valid() bool {
	return s >= StatusPending && s <= StatusCompleted
}

func (s BookingStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusCancelled:
		return "cancelled"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Booking represents the database model for bookings
type Booking struct {
	ID         string        `gorm:"primary_key" json:"id"`
	UserID     string        `gorm:"not null;index" json:"user_id"`
	HotelID    string        `gorm:"not null;index" json:"hotel_id"`
	RoomTypeID string        `gorm:"not null;index" json:"room_type_id"`
	CheckIn    time.Time     `gorm:"type:date;not null" json:"check_in"`
	CheckOut   time.Time     `gorm:"type:date;not null" json:"check_out"`
	Guests     int           `gorm:"not null" json:"guests"`
	TotalPrice float64       `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status     BookingStatus `gorm:"not null;default:0" json:"status"`
	CreatedAt  time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// TableName sets the table name for GORM
func (Booking) TableName() string {
	return "bookings"
}

// CreateBookingRequest represents the data needed to create a booking.
// TotalPrice is computed server-side, never taken from the caller.
type CreateBookingRequest struct {
	UserID     string
	HotelID    string
	RoomTypeID string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
}

// UpdateBookingRequest represents a booking update (dates or guest count).
type UpdateBookingRequest struct {
	ID       string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

// BookingFilter represents filtering options for booking queries
type BookingFilter struct {
	UserID  string
	HotelID string
	Status  *BookingStatus
	Limit   int
	Offset  int
}

// BookingListResponse wraps a page of bookings together with the total count.
type BookingListResponse struct {
	Bookings []Booking `json:"bookings"`
	Total    int       `json:"total"`
}

// AvailabilityRequest describes a stay to check or quote.
type AvailabilityRequest struct {
	HotelID    string
	RoomTypeID string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
}

// AvailabilityResult is the outcome of an availability check.
type AvailabilityResult struct {
	Available  bool    `json:"available"`
	RoomsLeft  int     `json:"rooms_left"`
	TotalPrice float64 `json:"total_price"`
}
