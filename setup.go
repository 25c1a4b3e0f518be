package main

import (
	"context"
	"fmt"

	"github.com/daniil-5/hotelbooking/cache"
	rediscache "github.com/daniil-5/hotelbooking/cache/redis"
	"github.com/daniil-5/hotelbooking/config"
	"github.com/daniil-5/hotelbooking/invalidation"
	"github.com/daniil-5/hotelbooking/notification"
	"github.com/daniil-5/hotelbooking/repository/postgres"
	"github.com/daniil-5/hotelbooking/service"
	"github.com/daniil-5/hotelbooking/service/cached"
)

// application holds the wired service graph: postgres repositories behind
// the domain services, the cached decorators in front of them, and the
// per-process invalidation subscriber.
type application struct {
	Users    service.UserService
	Hotels   service.HotelService
	Bookings service.BookingService

	store      cache.Store
	subscriber *invalidation.Subscriber
	listener   invalidation.Listener
	notifier   *notification.Publisher
}

func setupApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	db, err := postgres.Open(cfg.Database.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	store, err := rediscache.NewStore(cfg.Redis.GetRedisURL(), cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.OpTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	var notifier *notification.Publisher
	if cfg.Kafka.Enabled {
		notifier = notification.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic)
	}

	userRepo := postgres.NewUserRepository(db)
	hotelRepo := postgres.NewHotelRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	userSvc := service.NewUserService(userRepo)
	hotelSvc := service.NewHotelService(hotelRepo)
	bookingSvc := service.NewBookingService(bookingRepo, hotelRepo, notifier)

	ttl := cached.Expiration{
		Booking:      cfg.CacheTTL.Booking,
		Availability: cfg.CacheTTL.Availability,
		Hotel:        cfg.CacheTTL.Hotel,
		User:         cfg.CacheTTL.User,
		Search:       cfg.CacheTTL.Search,
	}

	app := &application{
		store:    store,
		notifier: notifier,
	}

	var pub invalidation.Publisher = invalidation.NopPublisher{}
	if cfg.Invalidation.Enabled {
		bus := invalidation.NewRedisBus(store.Client(), cfg.Invalidation.Channel)
		listener, err := bus.Listen(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to subscribe to invalidation channel: %w", err)
		}
		pub = bus
		app.listener = listener
		app.subscriber = invalidation.NewSubscriber(listener, store)
	}

	app.Users = cached.NewUserService(userSvc, store, pub, ttl)
	app.Hotels = cached.NewHotelService(hotelSvc, store, pub, ttl)
	app.Bookings = cached.NewBookingService(bookingSvc, store, pub, ttl)

	return app, nil
}

func (a *application) close() {
	if a.listener != nil {
		a.listener.Close()
	}
	if a.notifier != nil {
		a.notifier.Close()
	}
}
