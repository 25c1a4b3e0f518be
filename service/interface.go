package service

import (
	"context"
	"time"

	"github.com/daniil-5/hotelbooking/model"
)

// The domain service interfaces double as the substitution point for the
// cached decorators: a decorator implements the same interface as the
// service it wraps, so callers cannot tell them apart.

type UserService interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetAll(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	Update(ctx context.Context, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type HotelService interface {
	GetByID(ctx context.Context, id string) (*model.Hotel, error)
	GetAll(ctx context.Context) ([]model.Hotel, error)
	Search(ctx context.Context, filter model.HotelSearchFilter) (*model.HotelListResponse, error)
	Create(ctx context.Context, req model.CreateHotelRequest) (*model.Hotel, error)
	Update(ctx context.Context, req model.UpdateHotelRequest) (*model.Hotel, error)
	Delete(ctx context.Context, id string) error
}

type BookingService interface {
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, filter model.BookingFilter) (*model.BookingListResponse, error)
	Create(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error)
	Update(ctx context.Context, req model.UpdateBookingRequest) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	CheckAvailability(ctx context.Context, req model.AvailabilityRequest) (*model.AvailabilityResult, error)
	QuoteStay(ctx context.Context, roomTypeID string, checkIn, checkOut time.Time) (float64, error)
}
