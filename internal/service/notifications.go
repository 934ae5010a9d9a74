package service

import (
	"context"

	"github.com/bookhub/bookhub/internal/api"
	"github.com/bookhub/bookhub/internal/model"
)

// Notifications accesses the notification feed. The feed is arbitrary
// server-provided data; the client only fetches and relays it.
type Notifications struct {
	api *api.Client
}

// NewNotifications constructs the notifications service.
func NewNotifications(c *api.Client) *Notifications { return &Notifications{api: c} }

// List returns the current principal's notifications.
func (s *Notifications) List(ctx context.Context) ([]model.Notification, error) {
	var out []model.Notification
	if err := s.api.Get(ctx, "/notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one notification.
func (s *Notifications) Get(ctx context.Context, id string) (*model.Notification, error) {
	var out model.Notification
	if err := s.api.Get(ctx, "/notifications/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
