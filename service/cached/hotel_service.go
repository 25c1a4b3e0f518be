package cached

import (
	"context"

	"github.com/daniil-5/hotelbooking/cache"
	"github.com/daniil-5/hotelbooking/invalidation"
	"github.com/daniil-5/hotelbooking/model"
	"github.com/daniil-5/hotelbooking/service"
)

// HotelService is the cache-aside decorator for the hotel domain service.
// Hotel metadata is near-static, so entity entries carry the long hotel
// TTL while search result pages expire on the short search TTL.
type HotelService struct {
	service service.HotelService
	store   cache.Store
	pub     invalidation.Publisher
	ttl     Expiration
}

func NewHotelService(svc service.HotelService, store cache.Store, pub invalidation.Publisher, ttl Expiration) *HotelService {
	return &HotelService{service: svc, store: store, pub: pub, ttl: ttl}
}

func (s *HotelService) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	var cached model.Hotel
	if cacheGet(ctx, s.store, cache.HotelKey(id), &cached) {
		return &cached, nil
	}

	hotel, err := s.service.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.store, cache.HotelKey(hotel.ID), hotel, s.ttl.Hotel)
	return hotel, nil
}

func (s *HotelService) GetAll(ctx context.Context) ([]model.Hotel, error) {
	var cached []model.Hotel
	if cacheGet(ctx, s.store, cache.HotelsAllKey(), &cached) {
		return cached, nil
	}

	hotels, err := s.service.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.store, cache.HotelsAllKey(), hotels, s.ttl.Hotel)
	for i := range hotels {
		cacheSet(ctx, s.store, cache.HotelKey(hotels[i].ID), &hotels[i], s.ttl.Hotel)
	}

	return hotels, nil
}

// Search caches by the canonicalized filter signature, so two
// logically-equivalent requests share one entry.
func (s *HotelService) Search(ctx context.Context, filter model.HotelSearchFilter) (*model.HotelListResponse, error) {
	key := cache.HotelSearchKey(filter)

	var cached model.HotelListResponse
	if cacheGet(ctx, s.store, key, &cached) {
		return &cached, nil
	}

	result, err := s.service.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.store, key, result, s.ttl.Search)
	for i := range result.Hotels {
		cacheSet(ctx, s.store, cache.HotelKey(result.Hotels[i].ID), &result.Hotels[i], s.ttl.Hotel)
	}

	return result, nil
}

func (s *HotelService) Create(ctx context.Context, req model.CreateHotelRequest) (*model.Hotel, error) {
	hotel, err := s.service.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.store, cache.HotelKey(hotel.ID), hotel, s.ttl.Hotel)
	// Covers hotels:all and every hotels:search:* page.
	cacheRemovePrefix(ctx, s.store, cache.HotelsPrefix())
	publishInvalidation(ctx, s.pub, cache.EntityHotel, hotel.ID)

	return hotel, nil
}

func (s *HotelService) Update(ctx context.Context, req model.UpdateHotelRequest) (*model.Hotel, error) {
	hotel, err := s.service.Update(ctx, req)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.store, cache.HotelKey(hotel.ID), hotel, s.ttl.Hotel)
	cacheRemovePrefix(ctx, s.store, cache.HotelsPrefix())
	publishInvalidation(ctx, s.pub, cache.EntityHotel, hotel.ID)

	return hotel, nil
}

func (s *HotelService) Delete(ctx context.Context, id string) error {
	if err := s.service.Delete(ctx, id); err != nil {
		return err
	}

	cacheRemove(ctx, s.store, cache.HotelKey(id))
	cacheRemovePrefix(ctx, s.store, cache.HotelsPrefix())
	publishInvalidation(ctx, s.pub, cache.EntityHotel, id)

	return nil
}
