package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/daniil-5/hotelbooking/model"
	"gorm.io/gorm"
)

type PostgresBookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *PostgresBookingRepository {
	return &PostgresBookingRepository{db: db}
}

// CreateBooking persists a booking built by the domain service
func (r *PostgresBookingRepository) CreateBooking(ctx context.Context, booking *model.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetBookingByID retrieves a booking by its ID
func (r *PostgresBookingRepository) GetBookingByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// ListBookings retrieves bookings matching the filter with pagination
func (r *PostgresBookingRepository) ListBookings(ctx context.Context, filter model.BookingFilter) (*model.BookingListResponse, error) {
	var bookings []model.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Booking{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.HotelID != "" {
		query = query.Where("hotel_id = ?", filter.HotelID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	if err := query.Offset(filter.Offset).Limit(limit).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}

	return &model.BookingListResponse{Bookings: bookings, Total: int(total)}, nil
}

// UpdateBooking saves changed booking fields
func (r *PostgresBookingRepository) UpdateBooking(ctx context.Context, booking *model.Booking) error {
	if err := r.db.WithContext(ctx).Save(booking).Error; err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return nil
}

// UpdateBookingStatus updates the status of a booking and returns the
// updated record
func (r *PostgresBookingRepository) UpdateBookingStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	booking, err := r.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	booking.Status = status
	if err := r.db.WithContext(ctx).Save(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	return booking, nil
}

// DeleteBooking removes a booking by id
func (r *PostgresBookingRepository) DeleteBooking(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Booking{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("booking %s: %w", id, model.ErrNotFound)
	}
	return nil
}

// CountOverlapping counts active bookings for the room type whose stay
// overlaps [checkIn, checkOut). Two half-open ranges overlap when each
// starts before the other ends.
func (r *PostgresBookingRepository) CountOverlapping(ctx context.Context, roomTypeID string, checkIn, checkOut time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("room_type_id = ?", roomTypeID).
		Where("status IN ?", []model.BookingStatus{model.StatusPending, model.StatusConfirmed}).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}
	return int(count), nil
}
