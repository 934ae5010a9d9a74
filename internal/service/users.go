package service

import (
	"context"

	"github.com/bookhub/bookhub/internal/api"
	"github.com/bookhub/bookhub/internal/model"
)

// Users accesses user records: the admin listing and profile edits.
type Users struct {
	api *api.Client
}

// NewUsers constructs the users service.
func NewUsers(c *api.Client) *Users { return &Users{api: c} }

// ProfileUpdate carries the self-editable profile fields.
type ProfileUpdate struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	Age         *int   `json:"age,omitempty"`
}

// List returns the account directory. Admin-only; other roles receive 403.
func (s *Users) List(ctx context.Context) ([]model.UserProfile, error) {
	var out []model.UserProfile
	if err := s.api.Get(ctx, "/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one user.
func (s *Users) Get(ctx context.Context, id string) (*model.UserProfile, error) {
	var out model.UserProfile
	if err := s.api.Get(ctx, "/users/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits a user's profile and returns the replacement profile. The
// caller feeds the result into the session's UpdateProfile when editing self.
func (s *Users) Update(ctx context.Context, id string, upd ProfileUpdate) (*model.UserProfile, error) {
	var out model.UserProfile
	if err := s.api.Put(ctx, "/users/"+id, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
