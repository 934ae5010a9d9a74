// Package repository defines storage interfaces for the demo server,
// implemented by in-memory backends.
package repository

import (
	"context"

	"github.com/bookhub/bookhub/internal/model"
)

// Account is a stored user: the public profile plus the credential hash,
// which never leaves the server.
type Account struct {
	model.UserProfile
	PasswordHash string
}

// UserRepository provides CRUD access for accounts.
type UserRepository interface {
	// Create inserts a new account; ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	// Update replaces the stored account wholesale.
	Update(ctx context.Context, a *Account) error
	List(ctx context.Context) ([]Account, error)
}

// StoreRepository provides access to store profiles.
type StoreRepository interface {
	Create(ctx context.Context, s *model.Store) error
	GetByID(ctx context.Context, id string) (*model.Store, error)
	GetBySlug(ctx context.Context, slug string) (*model.Store, error)
	GetByManager(ctx context.Context, managerUserID string) (*model.Store, error)
	Update(ctx context.Context, s *model.Store) error
	// ListActive returns active stores only (the public listing).
	ListActive(ctx context.Context) ([]model.Store, error)
}

// ServiceRepository provides access to a store's bookable services.
type ServiceRepository interface {
	Create(ctx context.Context, s *model.Service) error
	GetByID(ctx context.Context, id string) (*model.Service, error)
	ListByStore(ctx context.Context, storeID string) ([]model.Service, error)
	Update(ctx context.Context, s *model.Service) error
	Delete(ctx context.Context, id string) error
}

// BookingFilter scopes a booking listing. Zero value lists everything.
type BookingFilter struct {
	StoreID      string
	ClientUserID string
}

// BookingRepository provides access to bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Update(ctx context.Context, b *model.Booking) error
	List(ctx context.Context, f BookingFilter) ([]model.Booking, error)
}

// NotificationRepository provides access to the notification feed.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	ListByRecipient(ctx context.Context, userID string) ([]model.Notification, error)
}
