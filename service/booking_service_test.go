package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/daniil-5/hotelbooking/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeHotelRepo struct {
	roomTypes map[string]*model.RoomType
	prices    []model.RoomPrice
}

func (f *fakeHotelRepo) GetRoomType(_ context.Context, id string) (*model.RoomType, error) {
	rt, ok := f.roomTypes[id]
	if !ok {
		return nil, fmt.Errorf("room type %s: %w", id, model.ErrNotFound)
	}
	return rt, nil
}

func (f *fakeHotelRepo) GetRoomPrices(_ context.Context, roomTypeID string, from, to time.Time) ([]model.RoomPrice, error) {
	var out []model.RoomPrice
	for _, p := range f.prices {
		if p.RoomTypeID == roomTypeID && !p.Date.Before(from) && p.Date.Before(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeHotelRepo) CreateHotel(context.Context, model.CreateHotelRequest) (*model.Hotel, error) {
	return nil, nil
}
func (f *fakeHotelRepo) GetHotelByID(context.Context, string) (*model.Hotel, error) { return nil, nil }
func (f *fakeHotelRepo) ListHotels(context.Context) ([]model.Hotel, error)         { return nil, nil }
func (f *fakeHotelRepo) SearchHotels(context.Context, model.HotelSearchFilter) (*model.HotelListResponse, error) {
	return nil, nil
}
func (f *fakeHotelRepo) UpdateHotel(context.Context, model.UpdateHotelRequest) (*model.Hotel, error) {
	return nil, nil
}
func (f *fakeHotelRepo) DeleteHotel(context.Context, string) error { return nil }

type fakeBookingRepo struct {
	bookings    map[string]*model.Booking
	overlapping int

	createCalls int
	statusCalls int
}

func (f *fakeBookingRepo) CreateBooking(_ context.Context, b *model.Booking) error {
	f.createCalls++
	if f.bookings == nil {
		f.bookings = make(map[string]*model.Booking)
	}
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) GetBookingByID(_ context.Context, id string) (*model.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, model.ErrNotFound)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) ListBookings(context.Context, model.BookingFilter) (*model.BookingListResponse, error) {
	return &model.BookingListResponse{}, nil
}

func (f *fakeBookingRepo) UpdateBooking(_ context.Context, b *model.Booking) error {
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) UpdateBookingStatus(_ context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	f.statusCalls++
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, model.ErrNotFound)
	}
	b.Status = status
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) DeleteBooking(_ context.Context, id string) error {
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) CountOverlapping(context.Context, string, time.Time, time.Time) (int, error) {
	return f.overlapping, nil
}

func newTestBookingService(hotelRepo *fakeHotelRepo, repo *fakeBookingRepo) BookingService {
	return NewBookingService(repo, hotelRepo, nil)
}

func standardRoom() *fakeHotelRepo {
	return &fakeHotelRepo{
		roomTypes: map[string]*model.RoomType{
			"rt1": {ID: "rt1", HotelID: "h1", Name: "Double", Capacity: 2, BasePrice: 100, TotalRooms: 3},
		},
	}
}

func TestQuoteStayBasePriceOnly(t *testing.T) {
	svc := newTestBookingService(standardRoom(), &fakeBookingRepo{})

	total, err := svc.QuoteStay(context.Background(), "rt1", date(2026, 9, 10), date(2026, 9, 13))
	if err != nil {
		t.Fatalf("QuoteStay error: %v", err)
	}
	if total != 300 {
		t.Fatalf("3 nights at base 100 should price at 300, got %g", total)
	}
}

func TestQuoteStayWithPerDateOverride(t *testing.T) {
	hotels := standardRoom()
	hotels.prices = []model.RoomPrice{
		{RoomTypeID: "rt1", Date: date(2026, 9, 11), Price: 150},
	}
	svc := newTestBookingService(hotels, &fakeBookingRepo{})

	total, err := svc.QuoteStay(context.Background(), "rt1", date(2026, 9, 10), date(2026, 9, 13))
	if err != nil {
		t.Fatalf("QuoteStay error: %v", err)
	}
	if total != 350 {
		t.Fatalf("one override night should price at 350 (150+100+100), got %g", total)
	}
}

func TestQuoteStayExcludesCheckOutDate(t *testing.T) {
	hotels := standardRoom()
	// An override on the check-out date itself must never be charged.
	hotels.prices = []model.RoomPrice{
		{RoomTypeID: "rt1", Date: date(2026, 9, 13), Price: 999},
	}
	svc := newTestBookingService(hotels, &fakeBookingRepo{})

	total, err := svc.QuoteStay(context.Background(), "rt1", date(2026, 9, 10), date(2026, 9, 13))
	if err != nil {
		t.Fatalf("QuoteStay error: %v", err)
	}
	if total != 300 {
		t.Fatalf("check-out date leaked into the price: got %g, want 300", total)
	}
}

func TestQuoteStayRejectsEmptyRange(t *testing.T) {
	svc := newTestBookingService(standardRoom(), &fakeBookingRepo{})

	_, err := svc.QuoteStay(context.Background(), "rt1", date(2026, 9, 10), date(2026, 9, 10))
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for zero-night stay, got %v", err)
	}
}

func TestCheckAvailabilityRejectsForeignRoomType(t *testing.T) {
	svc := newTestBookingService(standardRoom(), &fakeBookingRepo{})

	_, err := svc.CheckAvailability(context.Background(), model.AvailabilityRequest{
		HotelID: "other-hotel", RoomTypeID: "rt1",
		CheckIn: date(2026, 9, 10), CheckOut: date(2026, 9, 12), Guests: 2,
	})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for foreign room type, got %v", err)
	}
}

func TestCheckAvailabilityRejectsOverCapacity(t *testing.T) {
	svc := newTestBookingService(standardRoom(), &fakeBookingRepo{})

	_, err := svc.CheckAvailability(context.Background(), model.AvailabilityRequest{
		HotelID: "h1", RoomTypeID: "rt1",
		CheckIn: date(2026, 9, 10), CheckOut: date(2026, 9, 12), Guests: 5,
	})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for guest count over capacity, got %v", err)
	}
}

func TestCheckAvailabilityCountsOverlaps(t *testing.T) {
	repo := &fakeBookingRepo{overlapping: 3}
	svc := newTestBookingService(standardRoom(), repo)

	result, err := svc.CheckAvailability(context.Background(), model.AvailabilityRequest{
		HotelID: "h1", RoomTypeID: "rt1",
		CheckIn: date(2026, 9, 10), CheckOut: date(2026, 9, 12), Guests: 2,
	})
	if err != nil {
		t.Fatalf("CheckAvailability error: %v", err)
	}
	if result.Available {
		t.Fatal("all rooms booked, availability must be false")
	}
	if result.RoomsLeft != 0 {
		t.Fatalf("expected 0 rooms left, got %d", result.RoomsLeft)
	}
}

func TestCreateComputesPriceServerSide(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestBookingService(standardRoom(), repo)

	booking, err := svc.Create(context.Background(), model.CreateBookingRequest{
		UserID: "u1", HotelID: "h1", RoomTypeID: "rt1",
		CheckIn: date(2026, 9, 10), CheckOut: date(2026, 9, 13), Guests: 2,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if booking.TotalPrice != 300 {
		t.Fatalf("expected server-side price 300, got %g", booking.TotalPrice)
	}
	if booking.Status != model.StatusPending {
		t.Fatalf("new bookings must start pending, got %s", booking.Status)
	}
	if booking.ID == "" {
		t.Fatal("booking id was not assigned")
	}
}

func TestCreateRejectsWhenNoRoomsLeft(t *testing.T) {
	repo := &fakeBookingRepo{overlapping: 3}
	svc := newTestBookingService(standardRoom(), repo)

	_, err := svc.Create(context.Background(), model.CreateBookingRequest{
		UserID: "u1", HotelID: "h1", RoomTypeID: "rt1",
		CheckIn: date(2026, 9, 10), CheckOut: date(2026, 9, 12), Guests: 2,
	})
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("expected conflict when sold out, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatal("sold-out create must not reach the repository")
	}
}

func TestUpdateStatusRejectsOutOfRangeCode(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: map[string]*model.Booking{
			"b1": {ID: "b1", Status: model.StatusPending},
		},
	}
	svc := newTestBookingService(standardRoom(), repo)

	_, err := svc.UpdateStatus(context.Background(), "b1", model.BookingStatus(999))
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for status 999, got %v", err)
	}
	if repo.statusCalls != 0 {
		t.Fatal("invalid status must not reach the repository")
	}
	if repo.bookings["b1"].Status != model.StatusPending {
		t.Fatal("booking status mutated despite invalid code")
	}
}

func TestUpdateStatusPersistsValidCode(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: map[string]*model.Booking{
			"b1": {ID: "b1", Status: model.StatusPending},
		},
	}
	svc := newTestBookingService(standardRoom(), repo)

	booking, err := svc.UpdateStatus(context.Background(), "b1", model.StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if booking.Status != model.StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", booking.Status)
	}
}

func TestCancelOnlyFromLiveStatuses(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: map[string]*model.Booking{
			"done": {ID: "done", Status: model.StatusCompleted},
			"live": {ID: "live", Status: model.StatusConfirmed},
		},
	}
	svc := newTestBookingService(standardRoom(), repo)

	if _, err := svc.Cancel(context.Background(), "done"); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("cancelling a completed booking must conflict, got %v", err)
	}

	booking, err := svc.Cancel(context.Background(), "live")
	if err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if booking.Status != model.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", booking.Status)
	}
}
