package cached

import (
	"context"

	"github.com/daniil-5/hotelbooking/cache"
	"github.com/daniil-5/hotelbooking/invalidation"
	"github.com/daniil-5/hotelbooking/model"
	"github.com/daniil-5/hotelbooking/service"
)

// UserService is the cache-aside decorator for the user domain service.
// A user is addressable by id, email and username, so every populate
// writes all three keys and every write evicts whichever of them went
// stale.
type UserService struct {
	service service.UserService
	store   cache.Store
	pub     invalidation.Publisher
	ttl     Expiration
}

func NewUserService(svc service.UserService, store cache.Store, pub invalidation.Publisher, ttl Expiration) *UserService {
	return &UserService{service: svc, store: store, pub: pub, ttl: ttl}
}

// storeUser populates the primary key and both secondary keys, each with
// its own TTL.
func (s *UserService) storeUser(ctx context.Context, user *model.User) {
	cacheSet(ctx, s.store, cache.UserKey(user.ID), user, s.ttl.User)
	cacheSet(ctx, s.store, cache.UserEmailKey(user.Email), user, s.ttl.User)
	cacheSet(ctx, s.store, cache.UserUsernameKey(user.Username), user, s.ttl.User)
}

// peekUser reads the cached record without falling through to the domain
// service. Used to learn the pre-write secondary keys.
func (s *UserService) peekUser(ctx context.Context, id string) *model.User {
	var user model.User
	if cacheGet(ctx, s.store, cache.UserKey(id), &user) {
		return &user
	}
	return nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	var cached model.User
	if cacheGet(ctx, s.store, cache.UserKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.service.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.storeUser(ctx, user)
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var cached model.User
	if cacheGet(ctx, s.store, cache.UserEmailKey(email), &cached) {
		return &cached, nil
	}

	user, err := s.service.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	s.storeUser(ctx, user)
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var cached model.User
	if cacheGet(ctx, s.store, cache.UserUsernameKey(username), &cached) {
		return &cached, nil
	}

	user, err := s.service.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	s.storeUser(ctx, user)
	return user, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]model.User, error) {
	var cached []model.User
	if cacheGet(ctx, s.store, cache.UsersAllKey(), &cached) {
		return cached, nil
	}

	users, err := s.service.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.store, cache.UsersAllKey(), users, s.ttl.User)
	// Seed each member's entity key so a follow-up GetByID hits.
	for i := range users {
		cacheSet(ctx, s.store, cache.UserKey(users[i].ID), &users[i], s.ttl.User)
	}

	return users, nil
}

func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	user, err := s.service.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.storeUser(ctx, user)
	cacheRemovePrefix(ctx, s.store, cache.UsersPrefix())
	publishInvalidation(ctx, s.pub, cache.EntityUser, user.ID)

	return user, nil
}

func (s *UserService) Update(ctx context.Context, req model.UpdateUserRequest) (*model.User, error) {
	// Capture the pre-write record so stale secondary keys can be evicted.
	prev := s.peekUser(ctx, req.ID)
	if prev == nil {
		prev, _ = s.service.GetByID(ctx, req.ID)
	}

	user, err := s.service.Update(ctx, req)
	if err != nil {
		return nil, err
	}

	if prev != nil {
		if prev.Email != user.Email {
			cacheRemove(ctx, s.store, cache.UserEmailKey(prev.Email))
		}
		if prev.Username != user.Username {
			cacheRemove(ctx, s.store, cache.UserUsernameKey(prev.Username))
		}
	}

	s.storeUser(ctx, user)
	cacheRemovePrefix(ctx, s.store, cache.UsersPrefix())
	publishInvalidation(ctx, s.pub, cache.EntityUser, user.ID)

	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	prev := s.peekUser(ctx, id)
	if prev == nil {
		prev, _ = s.service.GetByID(ctx, id)
	}

	if err := s.service.Delete(ctx, id); err != nil {
		return err
	}

	cacheRemove(ctx, s.store, cache.UserKey(id))
	if prev != nil {
		cacheRemove(ctx, s.store,
			cache.UserEmailKey(prev.Email),
			cache.UserUsernameKey(prev.Username))
	}
	cacheRemovePrefix(ctx, s.store, cache.UsersPrefix())
	publishInvalidation(ctx, s.pub, cache.EntityUser, id)

	return nil
}
