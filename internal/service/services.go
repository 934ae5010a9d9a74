package service

import (
	"context"
	"fmt"

	"github.com/bookhub/bookhub/internal/api"
	"github.com/bookhub/bookhub/internal/model"
)

// Catalog accesses the bookable services of a store.
type Catalog struct {
	api *api.Client
}

// NewCatalog constructs the service-catalog accessor.
func NewCatalog(c *api.Client) *Catalog { return &Catalog{api: c} }

// ServiceInput carries the writable fields of a service.
type ServiceInput struct {
	Name            string          `json:"name,omitempty"`
	Description     string          `json:"description,omitempty"`
	DurationMinutes int             `json:"duration_minutes,omitempty"`
	MinPersons      int             `json:"min_persons,omitempty"`
	MaxPersons      int             `json:"max_persons,omitempty"`
	PriceType       model.PriceType `json:"price_type,omitempty"`
	BasePrice       float64         `json:"base_price_amount,omitempty"`
	PaymentEnabled  bool            `json:"payment_enabled,omitempty"`
}

// ListByStore returns a store's services (public).
func (s *Catalog) ListByStore(ctx context.Context, storeID string) ([]model.Service, error) {
	var out []model.Service
	if err := s.api.Get(ctx, fmt.Sprintf("/stores/%s/services", storeID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one service.
func (s *Catalog) Get(ctx context.Context, id string) (*model.Service, error) {
	var out model.Service
	if err := s.api.Get(ctx, "/services/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a service to a store (its manager).
func (s *Catalog) Create(ctx context.Context, storeID string, in ServiceInput) (*model.Service, error) {
	var out model.Service
	if err := s.api.Post(ctx, fmt.Sprintf("/stores/%s/services", storeID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits a service.
func (s *Catalog) Update(ctx context.Context, id string, in ServiceInput) (*model.Service, error) {
	var out model.Service
	if err := s.api.Put(ctx, "/services/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a service.
func (s *Catalog) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/services/"+id, nil)
}
