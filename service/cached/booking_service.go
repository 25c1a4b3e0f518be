package cached

import (
	"context"
	"time"

	"github.com/daniil-5/hotelbooking/cache"
	"github.com/daniil-5/hotelbooking/invalidation"
	"github.com/daniil-5/hotelbooking/model"
	"github.com/daniil-5/hotelbooking/service"
)

// BookingService is the cache-aside decorator for the booking domain
// service. Bookings are volatile, so entries carry short TTLs, and every
// write evicts the booking list family and the availability family for the
// affected room type, since both may now be stale.
type BookingService struct {
	service service.BookingService
	store   cache.Store
	pub     invalidation.Publisher
	ttl     Expiration
}

func NewBookingService(svc service.BookingService, store cache.Store, pub invalidation.Publisher, ttl Expiration) *BookingService {
	return &BookingService{service: svc, store: store, pub: pub, ttl: ttl}
}

func (s *BookingService) peekBooking(ctx context.Context, id string) *model.Booking {
	var booking model.Booking
	if cacheGet(ctx, s.store, cache.BookingKey(id), &booking) {
		return &booking
	}
	return nil
}

// evictAfterWrite drops every cache family a booking write can invalidate:
// the list caches and the availability entries of its room type. Runs
// before the invalidation event is published.
func (s *BookingService) evictAfterWrite(ctx context.Context, booking *model.Booking) {
	cacheRemovePrefix(ctx, s.store, cache.BookingsPrefix())
	cacheRemovePrefix(ctx, s.store, cache.AvailabilityPrefix(booking.RoomTypeID, booking.HotelID))
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var cached model.Booking
	if cacheGet(ctx, s.store, cache.BookingKey(id), &cached) {
		return &cached, nil
	}

	booking, err := s.service.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.store, cache.BookingKey(booking.ID), booking, s.ttl.Booking)
	return booking, nil
}

// GetAll caches the unfiltered list and per-user lists; other filter
// combinations pass through uncached.
func (s *BookingService) GetAll(ctx context.Context, filter model.BookingFilter) (*model.BookingListResponse, error) {
	key := bookingListKey(filter)
	if key == "" {
		return s.service.GetAll(ctx, filter)
	}

	var cached model.BookingListResponse
	if cacheGet(ctx, s.store, key, &cached) {
		return &cached, nil
	}

	result, err := s.service.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.store, key, result, s.ttl.Booking)
	for i := range result.Bookings {
		cacheSet(ctx, s.store, cache.BookingKey(result.Bookings[i].ID), &result.Bookings[i], s.ttl.Booking)
	}

	return result, nil
}

func bookingListKey(filter model.BookingFilter) string {
	zeroPaging := filter.Limit <= 0 && filter.Offset == 0
	switch {
	case filter == (model.BookingFilter{}):
		return cache.BookingsAllKey()
	case filter.UserID != "" && filter.HotelID == "" && filter.Status == nil && zeroPaging:
		return cache.BookingsUserKey(filter.UserID)
	default:
		return ""
	}
}

func (s *BookingService) CheckAvailability(ctx context.Context, req model.AvailabilityRequest) (*model.AvailabilityResult, error) {
	key := cache.AvailabilityKey(req.RoomTypeID, req.HotelID, req.CheckIn, req.CheckOut, req.Guests)

	var cached model.AvailabilityResult
	if cacheGet(ctx, s.store, key, &cached) {
		return &cached, nil
	}

	result, err := s.service.CheckAvailability(ctx, req)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.store, key, result, s.ttl.Availability)
	return result, nil
}

// QuoteStay is not cached on its own: it is already covered by the
// availability family when reached through CheckAvailability.
func (s *BookingService) QuoteStay(ctx context.Context, roomTypeID string, checkIn, checkOut time.Time) (float64, error) {
	return s.service.QuoteStay(ctx, roomTypeID, checkIn, checkOut)
}

func (s *BookingService) Create(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	booking, err := s.service.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.store, cache.BookingKey(booking.ID), booking, s.ttl.Booking)
	s.evictAfterWrite(ctx, booking)
	publishInvalidation(ctx, s.pub, cache.EntityBooking, booking.ID)

	return booking, nil
}

func (s *BookingService) Update(ctx context.Context, req model.UpdateBookingRequest) (*model.Booking, error) {
	booking, err := s.service.Update(ctx, req)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.store, cache.BookingKey(booking.ID), booking, s.ttl.Booking)
	s.evictAfterWrite(ctx, booking)
	publishInvalidation(ctx, s.pub, cache.EntityBooking, booking.ID)

	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	// Capture the record first: the availability family to evict is keyed
	// by room type and hotel, which are gone after the delete.
	prev := s.peekBooking(ctx, id)
	if prev == nil {
		prev, _ = s.service.GetByID(ctx, id)
	}

	if err := s.service.Delete(ctx, id); err != nil {
		return err
	}

	cacheRemove(ctx, s.store, cache.BookingKey(id))
	cacheRemovePrefix(ctx, s.store, cache.BookingsPrefix())
	if prev != nil {
		cacheRemovePrefix(ctx, s.store, cache.AvailabilityPrefix(prev.RoomTypeID, prev.HotelID))
	}
	publishInvalidation(ctx, s.pub, cache.EntityBooking, id)

	return nil
}

func (s *BookingService) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	booking, err := s.service.UpdateStatus(ctx, id, status)
	if err != nil {
		// Invalid status codes and missing bookings change nothing, so
		// the cache stays untouched too.
		return nil, err
	}

	cacheSet(ctx, s.store, cache.BookingKey(booking.ID), booking, s.ttl.Booking)
	s.evictAfterWrite(ctx, booking)
	publishInvalidation(ctx, s.pub, cache.EntityBooking, booking.ID)

	return booking, nil
}

func (s *BookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.service.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.store, cache.BookingKey(booking.ID), booking, s.ttl.Booking)
	s.evictAfterWrite(ctx, booking)
	publishInvalidation(ctx, s.pub, cache.EntityBooking, booking.ID)

	return booking, nil
}
