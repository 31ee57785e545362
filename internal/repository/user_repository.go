package repository

import (
	"context"
	"errors"
	"time"

	"clubportal/internal/cache"
	"clubportal/internal/csvstore"
	"clubportal/internal/model"
)

const (
	usersTable    = "users"
	userCacheTTL  = 5 * time.Minute
	userKeyPrefix = "user:"
)

// ErrDuplicate is returned when a unique key is already taken.
var ErrDuplicate = csvstore.ErrDuplicateKey

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, username string, changes csvstore.Row) error
	Delete(ctx context.Context, username string) error
	// ForgetCached drops every cached user, for when the table is replaced
	// underneath the repository.
	ForgetCached(ctx context.Context) error
}

type userRepository struct {
	users *Table[model.User]
	store *csvstore.Store
	cache *cache.Client
}

// NewUserRepository builds a CSV-backed repository. Lookups by username are
// cached in redis when c is non-nil.
func NewUserRepository(store *csvstore.Store, c *cache.Client) UserRepository {
	return &userRepository{users: NewTable[model.User](store, usersTable), store: store, cache: c}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	_, err := r.users.InsertUnique(ctx, "username", user)
	return err
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var cached cachedUser
	key := userKeyPrefix + username
	if r.cache.GetJSON(ctx, key, &cached) {
		user := cached.User
		user.Password = cached.Password
		return &user, nil
	}
	user, err := r.users.First(ctx, func(u *model.User) bool { return u.Username == username })
	if err != nil {
		return nil, err
	}
	r.cache.SetJSON(ctx, key, cachedUser{User: *user, Password: user.Password}, userCacheTTL)
	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	return r.users.List(ctx)
}

func (r *userRepository) Update(ctx context.Context, username string, changes csvstore.Row) error {
	_, err := r.store.UpdateWhere(ctx, usersTable, "username", username, changes)
	_ = r.cache.Delete(ctx, userKeyPrefix+username)
	return err
}

func (r *userRepository) Delete(ctx context.Context, username string) error {
	_, err := r.store.DeleteWhere(ctx, usersTable, "username", username)
	_ = r.cache.Delete(ctx, userKeyPrefix+username)
	return err
}

func (r *userRepository) ForgetCached(ctx context.Context) error {
	return r.cache.DeletePrefix(ctx, userKeyPrefix)
}

// cachedUser keeps the password hash, which the model's JSON form leaves out.
type cachedUser struct {
	model.User
	Password string `json:"password"`
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
