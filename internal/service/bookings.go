// Package service provides typed accessors over the HTTP client for each API
// resource. Services fetch and relay; all business computation stays
// server-side.
package service

import (
	"context"
	"fmt"

	"github.com/bookhub/bookhub/internal/api"
	"github.com/bookhub/bookhub/internal/model"
)

// Bookings accesses the bookings resource.
type Bookings struct {
	api *api.Client
}

// NewBookings constructs the bookings service.
func NewBookings(c *api.Client) *Bookings { return &Bookings{api: c} }

// NewBooking is the creation payload. The server derives end time, amounts and
// initial status.
type NewBooking struct {
	StoreID         string `json:"store_id"`
	ServiceID       string `json:"service_id"`
	BookingDate     string `json:"booking_date"` // YYYY-MM-DD
	StartTime       string `json:"start_time"`   // HH:MM:SS
	NumberOfPersons int    `json:"number_of_persons"`
}

// BookingUpdate carries the mutable fields of an existing booking.
type BookingUpdate struct {
	BookingDate     string              `json:"booking_date,omitempty"`
	StartTime       string              `json:"start_time,omitempty"`
	NumberOfPersons int                 `json:"number_of_persons,omitempty"`
	Status          model.BookingStatus `json:"status,omitempty"`
}

// List returns the bookings visible to the current principal: own bookings for
// clients, the store's for managers, all for admins. Scoping is server-side.
func (s *Bookings) List(ctx context.Context) ([]model.Booking, error) {
	var out []model.Booking
	if err := s.api.Get(ctx, "/bookings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByStore returns a store's bookings.
func (s *Bookings) ListByStore(ctx context.Context, storeID string) ([]model.Booking, error) {
	var out []model.Booking
	if err := s.api.Get(ctx, fmt.Sprintf("/stores/%s/bookings", storeID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one booking.
func (s *Bookings) Get(ctx context.Context, id string) (*model.Booking, error) {
	var out model.Booking
	if err := s.api.Get(ctx, "/bookings/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create books an appointment.
func (s *Bookings) Create(ctx context.Context, nb NewBooking) (*model.Booking, error) {
	var out model.Booking
	if err := s.api.Post(ctx, "/bookings", nb, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update reschedules or otherwise edits a booking.
func (s *Bookings) Update(ctx context.Context, id string, upd BookingUpdate) (*model.Booking, error) {
	var out model.Booking
	if err := s.api.Put(ctx, "/bookings/"+id, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel cancels a pending or confirmed booking.
func (s *Bookings) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	var out model.Booking
	if err := s.api.Post(ctx, "/bookings/"+id+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Confirm confirms a pending booking (manager side).
func (s *Bookings) Confirm(ctx context.Context, id string) (*model.Booking, error) {
	var out model.Booking
	if err := s.api.Post(ctx, "/bookings/"+id+"/confirm", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
