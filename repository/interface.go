package repository

import (
	"context"
	"time"

	"github.com/daniil-5/hotelbooking/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, req model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type HotelRepository interface {
	CreateHotel(ctx context.Context, req model.CreateHotelRequest) (*model.Hotel, error)
	GetHotelByID(ctx context.Context, id string) (*model.Hotel, error)
	ListHotels(ctx context.Context) ([]model.Hotel, error)
	SearchHotels(ctx context.Context, filter model.HotelSearchFilter) (*model.HotelListResponse, error)
	UpdateHotel(ctx context.Context, req model.UpdateHotelRequest) (*model.Hotel, error)
	DeleteHotel(ctx context.Context, id string) error

	// Room type operations
	GetRoomType(ctx context.Context, id string) (*model.RoomType, error)
	GetRoomPrices(ctx context.Context, roomTypeID string, from, to time.Time) ([]model.RoomPrice, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *model.Booking) error
	GetBookingByID(ctx context.Context, id string) (*model.Booking, error)
	ListBookings(ctx context.Context, filter model.BookingFilter) (*model.BookingListResponse, error)
	UpdateBooking(ctx context.Context, booking *model.Booking) error
	UpdateBookingStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error)
	DeleteBooking(ctx context.Context, id string) error

	// CountOverlapping counts active (pending or confirmed) bookings for the
	// room type whose stay overlaps the half-open range [checkIn, checkOut).
	CountOverlapping(ctx context.Context, roomTypeID string, checkIn, checkOut time.Time) (int, error)
}
