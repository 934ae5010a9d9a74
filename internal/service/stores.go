package service

import (
	"context"

	"github.com/bookhub/bookhub/internal/api"
	"github.com/bookhub/bookhub/internal/model"
)

// Stores accesses store profiles: the public storefront listing plus the
// management operations.
type Stores struct {
	api *api.Client
}

// NewStores constructs the stores service.
func NewStores(c *api.Client) *Stores { return &Stores{api: c} }

// StoreInput carries the writable fields of a store profile.
type StoreInput struct {
	Name        string   `json:"name,omitempty"`
	Slug        string   `json:"slug,omitempty"`
	Address     string   `json:"address,omitempty"`
	City        string   `json:"city,omitempty"`
	PostalCode  string   `json:"postal_code,omitempty"`
	Country     string   `json:"country,omitempty"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Email       string   `json:"email,omitempty"`
	Website     string   `json:"website,omitempty"`
	Description string   `json:"description,omitempty"`
	PhotosURL   []string `json:"photos_url,omitempty"`
}

// List returns all active stores (public).
func (s *Stores) List(ctx context.Context) ([]model.Store, error) {
	var out []model.Store
	if err := s.api.Get(ctx, "/stores", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBySlug returns one store by its public URL slug.
func (s *Stores) GetBySlug(ctx context.Context, slug string) (*model.Store, error) {
	var out model.Store
	if err := s.api.Get(ctx, "/stores/"+slug, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create registers a new store (admin).
func (s *Stores) Create(ctx context.Context, in StoreInput) (*model.Store, error) {
	var out model.Store
	if err := s.api.Post(ctx, "/stores", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits a store profile (its manager or admin).
func (s *Stores) Update(ctx context.Context, id string, in StoreInput) (*model.Store, error) {
	var out model.Store
	if err := s.api.Put(ctx, "/stores/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete deactivates a store (admin).
func (s *Stores) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/stores/"+id, nil)
}

// Mine returns the store managed by the current principal.
func (s *Stores) Mine(ctx context.Context) (*model.Store, error) {
	var out model.Store
	if err := s.api.Get(ctx, "/my-store", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
