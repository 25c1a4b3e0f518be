package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/daniil-5/hotelbooking/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresHotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *PostgresHotelRepository {
	return &PostgresHotelRepository{db: db}
}

// CreateHotel creates a new hotel
func (r *PostgresHotelRepository) CreateHotel(ctx context.Context, req model.CreateHotelRequest) (*model.Hotel, error) {
	hotel := model.Hotel{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Address:     req.Address,
		Rating:      req.Rating,
		Amenities:   req.Amenities,
	}

	if err := r.db.WithContext(ctx).Create(&hotel).Error; err != nil {
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}

	return &hotel, nil
}

// GetHotelByID retrieves a hotel by id
func (r *PostgresHotelRepository) GetHotelByID(ctx context.Context, id string) (*model.Hotel, error) {
	var hotel model.Hotel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&hotel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("hotel %s: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	return &hotel, nil
}

// ListHotels retrieves all hotels
func (r *PostgresHotelRepository) ListHotels(ctx context.Context) ([]model.Hotel, error) {
	var hotels []model.Hotel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&hotels).Error; err != nil {
		return nil, err
	}
	return hotels, nil
}

// SearchHotels retrieves hotels matching the filter with pagination
func (r *PostgresHotelRepository) SearchHotels(ctx context.Context, filter model.HotelSearchFilter) (*model.HotelListResponse, error) {
	var hotels []model.Hotel
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Hotel{})

	if filter.City != "" {
		query = query.Where("city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.MinRating > 0 {
		query = query.Where("rating >= ?", filter.MinRating)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	order := "name ASC"
	if filter.SortBy == "rating" {
		order = "rating DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	if err := query.Offset(filter.Offset).Limit(limit).Order(order).Find(&hotels).Error; err != nil {
		return nil, err
	}

	return &model.HotelListResponse{Hotels: hotels, Total: int(total)}, nil
}

// UpdateHotel updates hotel fields
func (r *PostgresHotelRepository) UpdateHotel(ctx context.Context, req model.UpdateHotelRequest) (*model.Hotel, error) {
	var hotel model.Hotel
	if err := r.db.WithContext(ctx).Where("id = ?", req.ID).First(&hotel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("hotel %s: %w", req.ID, model.ErrNotFound)
		}
		return nil, err
	}

	hotel.Name = req.Name
	hotel.Description = req.Description
	hotel.City = req.City
	hotel.Address = req.Address
	hotel.Rating = req.Rating
	hotel.Amenities = req.Amenities

	if err := r.db.WithContext(ctx).Save(&hotel).Error; err != nil {
		return nil, fmt.Errorf("failed to update hotel: %w", err)
	}

	return &hotel, nil
}

// DeleteHotel removes a hotel by id
func (r *PostgresHotelRepository) DeleteHotel(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Hotel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("hotel %s: %w", id, model.ErrNotFound)
	}
	return nil
}

// GetRoomType retrieves a room type by id
func (r *PostgresHotelRepository) GetRoomType(ctx context.Context, id string) (*model.RoomType, error) {
	var roomType model.RoomType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&roomType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("room type %s: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	return &roomType, nil
}

// GetRoomPrices retrieves per-date price overrides for a room type within
// the half-open range [from, to).
func (r *PostgresHotelRepository) GetRoomPrices(ctx context.Context, roomTypeID string, from, to time.Time) ([]model.RoomPrice, error) {
	var prices []model.RoomPrice
	err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND date >= ? AND date < ?", roomTypeID, from, to).
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}
