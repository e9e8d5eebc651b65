// Package shop is a small annotated API used to test source loading.
package shop

import (
	"context"
	"time"
)

// Color is a display color.
type Color string

const (
	Red   Color = "red"
	Green Color = "green"
	Blue  Color = "blue"
)

// Priority has no constants and documents as its underlying type.
type Priority int

// User is a registered user. Users are never deleted.
type User struct {
	// Name is the display name.
	Name string `json:"name" validate:"required"`

	Age      int               `json:"age,omitempty"`
	Tags     []*Tag            `json:"tags"`
	Labels   map[string]string `json:"labels"`
	Color    Color             `json:"color"`
	Priority Priority          `json:"priority"`
	Created  time.Time         `json:"created"`
	Secret   string            `json:"-"`
	internal string
}

// GetDisplayName returns the name shown in listings.
//
// @return the display name
func (u *User) GetDisplayName() string { return u.Name + u.internal }

// Tag labels a user.
type Tag struct {
	Label string `json:"label"`
}

// Store fetches values by key.
type Store[T any, K comparable] interface {
	// Get fetches a value by key.
	//
	// @param key the lookup key
	// @return the stored value
	// @HTTP 404 Not Found
	Get(ctx context.Context, key K) (T, error)
}

// Base carries shared endpoints.
type Base struct{}

// Ping checks liveness.
//
//api:get
//api:path /ping
func (Base) Ping() string { return "pong" }

// Version reports the build version.
//
//api:get
//api:path /version
func (Base) Version() string { return "dev" }

// UserStore manages users.
//
//api:path /users
type UserStore struct {
	Base
}

var _ Store[*User, int64] = (*UserStore)(nil)

// Get is documented by Store.
//
// {@inheritDoc}
//
//api:get
//api:path /{id}
//api:pathparam key id
func (s *UserStore) Get(ctx context.Context, key int64) (*User, error) { return nil, nil }

// Create adds a user. The user is validated first.
//
// @param user the new user
// @HTTP 409 Conflict
//
//api:post
func (s *UserStore) Create(ctx context.Context, user User) (*User, error) { return &user, nil }

// Search finds users by name.
//
// @param limit page size
//
//api:get
//api:path /search
//api:query q
//api:query limit max
func (s *UserStore) Search(ctx context.Context, q string, limit int) ([]User, error) {
	return nil, nil
}

// Ping overrides the base ping.
//
//api:get
//api:path /ping
func (s *UserStore) Ping() string { return "users" }

// Close releases resources and is not an endpoint.
func (s *UserStore) Close() error { return nil }
