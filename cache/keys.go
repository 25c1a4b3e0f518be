package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/daniil-5/hotelbooking/model"
)

// Entity type segments used in cache keys and invalidation events.
const (
	EntityUser    = "user"
	EntityHotel   = "hotel"
	EntityBooking = "booking"
)

const dateLayout = "2006-01-02"

// PrimaryKey builds the canonical by-id key for an entity. The invalidation
// subscriber derives exactly this key from a received event.
func PrimaryKey(entityType, entityID string) string {
	return fmt.Sprintf("%s:id:%s", entityType, entityID)
}

// User keys. Email and username are lowercased so the same logical lookup
// always lands on the same key.

func UserKey(id string) string {
	return PrimaryKey(EntityUser, id)
}

func UserEmailKey(email string) string {
	return fmt.Sprintf("user:email:%s", strings.ToLower(email))
}

func UserUsernameKey(username string) string {
	return fmt.Sprintf("user:username:%s", strings.ToLower(username))
}

func UsersAllKey() string {
	return "users:all"
}

// UsersPrefix scopes every user list/aggregate key.
func UsersPrefix() string {
	return "users:"
}

// Hotel keys.

func HotelKey(id string) string {
	return PrimaryKey(EntityHotel, id)
}

func HotelsAllKey() string {
	return "hotels:all"
}

func HotelsPrefix() string {
	return "hotels:"
}

// HotelSearchKey canonicalizes the search filter into a stable signature:
// fields joined in a fixed order, case-folded, paging normalized. Optional
// fields left at their zero value serialize identically to ones set to the
// default, so logically-equivalent requests share a cache entry. The joined
// form is hashed to keep keys bounded.
func HotelSearchKey(filter model.HotelSearchFilter) string {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	canonical := strings.ToLower(fmt.Sprintf("city=%s|name=%s|minrating=%g|sortby=%s|limit=%d|offset=%d",
		filter.City, filter.Name, filter.MinRating, filter.SortBy, limit, filter.Offset))
	return fmt.Sprintf("hotels:search:%016x", xxhash.Sum64String(canonical))
}

// Booking keys.

func BookingKey(id string) string {
	return PrimaryKey(EntityBooking, id)
}

func BookingsAllKey() string {
	return "bookings:all"
}

func BookingsPrefix() string {
	return "bookings:"
}

func BookingsUserKey(userID string) string {
	return fmt.Sprintf("bookings:user:%s", userID)
}

// Availability keys are scoped per room type and hotel so a booking write
// can evict the whole family by prefix.

func AvailabilityKey(roomTypeID, hotelID string, checkIn, checkOut time.Time, guests int) string {
	return fmt.Sprintf("availability:roomtype:%s:hotel:%s:%s:%s:%d",
		roomTypeID, hotelID, checkIn.Format(dateLayout), checkOut.Format(dateLayout), guests)
}

func AvailabilityPrefix(roomTypeID, hotelID string) string {
	return fmt.Sprintf("availability:roomtype:%s:hotel:%s:", roomTypeID, hotelID)
}
