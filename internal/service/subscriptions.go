package service

import (
	"context"

	"github.com/bookhub/bookhub/internal/api"
	"github.com/bookhub/bookhub/internal/model"
)

// Subscriptions relays the plan catalogue shown on the subscription view.
type Subscriptions struct {
	api *api.Client
}

// NewSubscriptions constructs the subscriptions service.
func NewSubscriptions(c *api.Client) *Subscriptions { return &Subscriptions{api: c} }

// Plans lists the available subscription tiers.
func (s *Subscriptions) Plans(ctx context.Context) ([]model.SubscriptionPlan, error) {
	var out []model.SubscriptionPlan
	if err := s.api.Get(ctx, "/subscription/plans", &out); err != nil {
		return nil, err
	}
	return out, nil
}
