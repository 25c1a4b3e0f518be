package service

import (
	"context"
	"fmt"

	"github.com/daniil-5/hotelbooking/model"
	"github.com/daniil-5/hotelbooking/repository"
)

type hotelService struct {
	repo repository.HotelRepository
}

func NewHotelService(repo repository.HotelRepository) HotelService {
	return &hotelService{repo: repo}
}

func (s *hotelService) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	return s.repo.GetHotelByID(ctx, id)
}

func (s *hotelService) GetAll(ctx context.Context) ([]model.Hotel, error) {
	return s.repo.ListHotels(ctx)
}

func (s *hotelService) Search(ctx context.Context, filter model.HotelSearchFilter) (*model.HotelListResponse, error) {
	return s.repo.SearchHotels(ctx, filter)
}

func (s *hotelService) Create(ctx context.Context, req model.CreateHotelRequest) (*model.Hotel, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("hotel name is required: %w", model.ErrValidation)
	}
	if req.City == "" {
		return nil, fmt.Errorf("hotel city is required: %w", model.ErrValidation)
	}
	if req.Rating < 0 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 0 and 5: %w", model.ErrValidation)
	}
	return s.repo.CreateHotel(ctx, req)
}

func (s *hotelService) Update(ctx context.Context, req model.UpdateHotelRequest) (*model.Hotel, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("hotel id is required: %w", model.ErrValidation)
	}
	if req.Rating < 0 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 0 and 5: %w", model.ErrValidation)
	}
	return s.repo.UpdateHotel(ctx, req)
}

func (s *hotelService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteHotel(ctx, id)
}
