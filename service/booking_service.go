package service

import (
	"context"
	"fmt"
	"time"

	"github.com/daniil-5/hotelbooking/model"
	"github.com/daniil-5/hotelbooking/notification"
	"github.com/daniil-5/hotelbooking/repository"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type bookingService struct {
	repo      repository.BookingRepository
	hotelRepo repository.HotelRepository
	notifier  *notification.Publisher
}

// NewBookingService builds the booking domain service. notifier may be nil
// when the notification pipeline is disabled.
func NewBookingService(repo repository.BookingRepository, hotelRepo repository.HotelRepository, notifier *notification.Publisher) BookingService {
	return &bookingService{repo: repo, hotelRepo: hotelRepo, notifier: notifier}
}

// dateOnly drops the time-of-day so stays are handled as whole nights.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return s.repo.GetBookingByID(ctx, id)
}

func (s *bookingService) GetAll(ctx context.Context, filter model.BookingFilter) (*model.BookingListResponse, error) {
	return s.repo.ListBookings(ctx, filter)
}

// QuoteStay prices a stay of [checkIn, checkOut): each night uses the
// per-date override when one exists, otherwise the room type's base price.
// The check-out date itself is never charged.
func (s *bookingService) QuoteStay(ctx context.Context, roomTypeID string, checkIn, checkOut time.Time) (float64, error) {
	checkIn, checkOut = dateOnly(checkIn), dateOnly(checkOut)
	if !checkOut.After(checkIn) {
		return 0, fmt.Errorf("check-out must be after check-in: %w", model.ErrValidation)
	}

	roomType, err := s.hotelRepo.GetRoomType(ctx, roomTypeID)
	if err != nil {
		return 0, err
	}

	overrides, err := s.hotelRepo.GetRoomPrices(ctx, roomTypeID, checkIn, checkOut)
	if err != nil {
		return 0, err
	}

	byDate := make(map[string]float64, len(overrides))
	for _, p := range overrides {
		byDate[p.Date.Format(dateLayout)] = p.Price
	}

	var total float64
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		if price, ok := byDate[d.Format(dateLayout)]; ok {
			total += price
		} else {
			total += roomType.BasePrice
		}
	}

	return total, nil
}

// CheckAvailability validates that the room type belongs to the hotel and
// can hold the guests, then counts overlapping active bookings against the
// room type's inventory.
func (s *bookingService) CheckAvailability(ctx context.Context, req model.AvailabilityRequest) (*model.AvailabilityResult, error) {
	checkIn, checkOut := dateOnly(req.CheckIn), dateOnly(req.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("check-out must be after check-in: %w", model.ErrValidation)
	}

	roomType, err := s.hotelRepo.GetRoomType(ctx, req.RoomTypeID)
	if err != nil {
		return nil, err
	}

	if roomType.HotelID != req.HotelID {
		return nil, fmt.Errorf("room type %s does not belong to hotel %s: %w",
			req.RoomTypeID, req.HotelID, model.ErrValidation)
	}
	if req.Guests <= 0 {
		return nil, fmt.Errorf("guest count must be positive: %w", model.ErrValidation)
	}
	if req.Guests > roomType.Capacity {
		return nil, fmt.Errorf("guest count %d exceeds room capacity %d: %w",
			req.Guests, roomType.Capacity, model.ErrValidation)
	}

	overlapping, err := s.repo.CountOverlapping(ctx, req.RoomTypeID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	roomsLeft := roomType.TotalRooms - overlapping
	if roomsLeft < 0 {
		roomsLeft = 0
	}

	total, err := s.QuoteStay(ctx, req.RoomTypeID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	return &model.AvailabilityResult{
		Available:  roomsLeft > 0,
		RoomsLeft:  roomsLeft,
		TotalPrice: total,
	}, nil
}

// Create checks availability, prices the stay server-side and persists the
// booking in pending state.
func (s *bookingService) Create(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("user id is required: %w", model.ErrValidation)
	}

	result, err := s.CheckAvailability(ctx, model.AvailabilityRequest{
		HotelID:    req.HotelID,
		RoomTypeID: req.RoomTypeID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Guests:     req.Guests,
	})
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, fmt.Errorf("no rooms available for the requested dates: %w", model.ErrConflict)
	}

	booking := &model.Booking{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		HotelID:    req.HotelID,
		RoomTypeID: req.RoomTypeID,
		CheckIn:    dateOnly(req.CheckIn),
		CheckOut:   dateOnly(req.CheckOut),
		Guests:     req.Guests,
		TotalPrice: result.TotalPrice,
		Status:     model.StatusPending,
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.notifier.PublishBookingEvent(ctx, notification.TypeBookingCreated, booking)

	return booking, nil
}

// Update changes the stay dates or guest count of a live booking and
// reprices it.
func (s *bookingService) Update(ctx context.Context, req model.UpdateBookingRequest) (*model.Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if booking.Status == model.StatusCancelled || booking.Status == model.StatusCompleted {
		return nil, fmt.Errorf("booking %s is %s and cannot be modified: %w",
			booking.ID, booking.Status, model.ErrConflict)
	}

	checkIn, checkOut := dateOnly(req.CheckIn), dateOnly(req.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("check-out must be after check-in: %w", model.ErrValidation)
	}

	roomType, err := s.hotelRepo.GetRoomType(ctx, booking.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if req.Guests <= 0 || req.Guests > roomType.Capacity {
		return nil, fmt.Errorf("guest count %d exceeds room capacity %d: %w",
			req.Guests, roomType.Capacity, model.ErrValidation)
	}

	total, err := s.QuoteStay(ctx, booking.RoomTypeID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	booking.CheckIn = checkIn
	booking.CheckOut = checkOut
	booking.Guests = req.Guests
	booking.TotalPrice = total

	if err := s.repo.UpdateBooking(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteBooking(ctx, id)
}

// UpdateStatus rejects out-of-range status codes before any repository
// call, so an invalid code never persists.
func (s *bookingService) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid booking status %d: %w", int(status), model.ErrValidation)
	}

	booking, err := s.repo.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.notifier.PublishBookingEvent(ctx, notification.TypeBookingStatusChanged, booking)

	return booking, nil
}

// Cancel moves a pending or confirmed booking to cancelled.
func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status != model.StatusPending && booking.Status != model.StatusConfirmed {
		return nil, fmt.Errorf("booking %s cannot be cancelled from status %s: %w",
			id, booking.Status, model.ErrConflict)
	}

	booking, err = s.repo.UpdateBookingStatus(ctx, id, model.StatusCancelled)
	if err != nil {
		return nil, err
	}

	s.notifier.PublishBookingEvent(ctx, notification.TypeBookingCancelled, booking)

	return booking, nil
}
