package cached

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/daniil-5/hotelbooking/cache"
	"github.com/daniil-5/hotelbooking/cache/memory"
	"github.com/daniil-5/hotelbooking/invalidation"
	"github.com/daniil-5/hotelbooking/model"
)

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

type fakeBookingService struct {
	bookings      map[string]*model.Booking
	readsDisabled bool
	reads         int

	availabilityCalls int
}

func (f *fakeBookingService) GetByID(_ context.Context, id string) (*model.Booking, error) {
	if f.readsDisabled {
		return nil, errReadsDisabled
	}
	f.reads++
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, model.ErrNotFound)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingService) GetAll(context.Context, model.BookingFilter) (*model.BookingListResponse, error) {
	if f.readsDisabled {
		return nil, errReadsDisabled
	}
	f.reads++
	resp := &model.BookingListResponse{}
	for _, b := range f.bookings {
		resp.Bookings = append(resp.Bookings, *b)
	}
	resp.Total = len(resp.Bookings)
	return resp, nil
}

func (f *fakeBookingService) Create(_ context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	b := &model.Booking{
		ID:         fmt.Sprintf("b%d", len(f.bookings)+1),
		UserID:     req.UserID,
		HotelID:    req.HotelID,
		RoomTypeID: req.RoomTypeID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Guests:     req.Guests,
		TotalPrice: 300,
		Status:     model.StatusPending,
	}
	if f.bookings == nil {
		f.bookings = make(map[string]*model.Booking)
	}
	f.bookings[b.ID] = b
	copied := *b
	return &copied, nil
}

func (f *fakeBookingService) Update(_ context.Context, req model.UpdateBookingRequest) (*model.Booking, error) {
	b, ok := f.bookings[req.ID]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", req.ID, model.ErrNotFound)
	}
	b.CheckIn, b.CheckOut, b.Guests = req.CheckIn, req.CheckOut, req.Guests
	copied := *b
	return &copied, nil
}

func (f *fakeBookingService) Delete(_ context.Context, id string) error {
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingService) UpdateStatus(_ context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid booking status %d: %w", int(status), model.ErrValidation)
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, model.ErrNotFound)
	}
	b.Status = status
	copied := *b
	return &copied, nil
}

func (f *fakeBookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	return f.UpdateStatus(ctx, id, model.StatusCancelled)
}

func (f *fakeBookingService) CheckAvailability(context.Context, model.AvailabilityRequest) (*model.AvailabilityResult, error) {
	f.availabilityCalls++
	return &model.AvailabilityResult{Available: true, RoomsLeft: 2, TotalPrice: 300}, nil
}

func (f *fakeBookingService) QuoteStay(context.Context, string, time.Time, time.Time) (float64, error) {
	return 300, nil
}

func stayRequest() model.CreateBookingRequest {
	return model.CreateBookingRequest{
		UserID: "u1", HotelID: "h1", RoomTypeID: "rt1",
		CheckIn: day(10), CheckOut: day(13), Guests: 2,
	}
}

func TestBookingReadAfterWriteHitsCache(t *testing.T) {
	ctx := context.Background()
	domain := &fakeBookingService{}
	store := memory.NewStore()
	svc := NewBookingService(domain, store, invalidation.NopPublisher{}, testTTL)

	booking, err := svc.Create(ctx, stayRequest())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	domain.readsDisabled = true

	got, err := svc.GetByID(ctx, booking.ID)
	if err != nil {
		t.Fatalf("read after write must be served from cache: %v", err)
	}
	if got.TotalPrice != 300 || got.Status != model.StatusPending {
		t.Fatalf("stale value after write: %+v", got)
	}
}

func TestBookingWriteEvictsListAndAvailabilityFamilies(t *testing.T) {
	ctx := context.Background()
	domain := &fakeBookingService{}
	store := memory.NewStore()
	svc := NewBookingService(domain, store, invalidation.NopPublisher{}, testTTL)

	// Seed the list cache and an availability entry for the room type.
	if _, err := svc.GetAll(ctx, model.BookingFilter{}); err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	availReq := model.AvailabilityRequest{
		HotelID: "h1", RoomTypeID: "rt1",
		CheckIn: day(10), CheckOut: day(13), Guests: 2,
	}
	if _, err := svc.CheckAvailability(ctx, availReq); err != nil {
		t.Fatalf("CheckAvailability error: %v", err)
	}

	availKey := cache.AvailabilityKey("rt1", "h1", day(10), day(13), 2)
	if ok, _ := store.Exists(ctx, availKey); !ok {
		t.Fatal("availability entry was not cached")
	}

	if _, err := svc.Create(ctx, stayRequest()); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if ok, _ := store.Exists(ctx, cache.BookingsAllKey()); ok {
		t.Fatal("bookings list cache survived a write")
	}
	if ok, _ := store.Exists(ctx, availKey); ok {
		t.Fatal("availability family survived a booking write")
	}
}

func TestBookingAvailabilityIsCached(t *testing.T) {
	ctx := context.Background()
	domain := &fakeBookingService{}
	svc := NewBookingService(domain, memory.NewStore(), invalidation.NopPublisher{}, testTTL)

	req := model.AvailabilityRequest{
		HotelID: "h1", RoomTypeID: "rt1",
		CheckIn: day(10), CheckOut: day(13), Guests: 2,
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.CheckAvailability(ctx, req); err != nil {
			t.Fatalf("CheckAvailability error: %v", err)
		}
	}

	if domain.availabilityCalls != 1 {
		t.Fatalf("expected one domain availability call, got %d", domain.availabilityCalls)
	}
}

func TestBookingInvalidStatusLeavesCacheAndChannelUntouched(t *testing.T) {
	ctx := context.Background()
	domain := &fakeBookingService{bookings: map[string]*model.Booking{
		"b1": {ID: "b1", Status: model.StatusPending, RoomTypeID: "rt1", HotelID: "h1"},
	}}
	store := memory.NewStore()
	broker := invalidation.NewMemoryBroker()
	defer broker.Close()

	svc := NewBookingService(domain, store, broker, testTTL)

	// Warm the entity key, then attempt an out-of-range transition.
	if _, err := svc.GetByID(ctx, "b1"); err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	before, _ := store.Get(ctx, cache.BookingKey("b1"))

	_, err := svc.UpdateStatus(ctx, "b1", model.BookingStatus(999))
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	after, _ := store.Get(ctx, cache.BookingKey("b1"))
	if string(before) != string(after) {
		t.Fatal("failed status update mutated the cache")
	}
	if len(broker.Published()) != 0 {
		t.Fatal("failed status update published an invalidation event")
	}
}

func TestBookingFilteredListsBypassCache(t *testing.T) {
	ctx := context.Background()
	domain := &fakeBookingService{}
	svc := NewBookingService(domain, memory.NewStore(), invalidation.NopPublisher{}, testTTL)

	status := model.StatusConfirmed
	filter := model.BookingFilter{UserID: "u1", Status: &status}
	for i := 0; i < 2; i++ {
		if _, err := svc.GetAll(ctx, filter); err != nil {
			t.Fatalf("GetAll error: %v", err)
		}
	}

	// Arbitrary filter combinations are not cached, so every call reaches
	// the domain service.
	if domain.reads != 2 {
		t.Fatalf("expected 2 domain reads for uncached filter, got %d", domain.reads)
	}
}

// TestInvalidationPropagatesBetweenInstances replays the two-instance
// scenario: instances A and B share one cache store and one channel; a
// write on A must leave B unable to serve the pre-write value.
func TestInvalidationPropagatesBetweenInstances(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memory.NewStore()
	broker := invalidation.NewMemoryBroker()
	defer broker.Close()

	shared := &fakeBookingService{bookings: map[string]*model.Booking{
		"b1": {ID: "b1", Status: model.StatusPending, RoomTypeID: "rt1", HotelID: "h1"},
	}}

	instanceA := NewBookingService(shared, store, broker, testTTL)
	instanceB := NewBookingService(shared, store, broker, testTTL)

	// B runs the per-process subscriber over its own store handle.
	sub := invalidation.NewSubscriber(broker.NewListener(), store)
	go sub.Run(ctx)

	// B caches the pre-write value.
	if _, err := instanceB.GetByID(ctx, "b1"); err != nil {
		t.Fatalf("GetByID error: %v", err)
	}

	// A confirms the booking; the event reaches B's subscriber.
	if _, err := instanceA.UpdateStatus(ctx, "b1", model.StatusConfirmed); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := instanceB.GetByID(ctx, "b1")
		if err != nil {
			t.Fatalf("GetByID error: %v", err)
		}
		if got.Status == model.StatusConfirmed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("instance B still serves the pre-write value")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBookingDeleteEvictsEntityKey(t *testing.T) {
	ctx := context.Background()
	domain := &fakeBookingService{bookings: map[string]*model.Booking{
		"b1": {ID: "b1", Status: model.StatusPending, RoomTypeID: "rt1", HotelID: "h1"},
	}}
	store := memory.NewStore()
	svc := NewBookingService(domain, store, invalidation.NopPublisher{}, testTTL)

	if _, err := svc.GetByID(ctx, "b1"); err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if err := svc.Delete(ctx, "b1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	if ok, _ := store.Exists(ctx, cache.BookingKey("b1")); ok {
		t.Fatal("deleted booking still cached")
	}
}
