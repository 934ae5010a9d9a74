// Package memory implements the repository interfaces with in-process maps.
// The demo server deliberately keeps no external state.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bookhub/bookhub/internal/errs"
	"github.com/bookhub/bookhub/internal/model"
	"github.com/bookhub/bookhub/internal/repository"
)

// Users implements repository.UserRepository.
type Users struct {
	mu   sync.RWMutex
	byID map[string]repository.Account
}

// NewUsers constructs an empty user repository.
func NewUsers() *Users { return &Users{byID: map[string]repository.Account{}} }

func (r *Users) Create(_ context.Context, a *repository.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Email, a.Email) {
			return errs.ErrAlreadyExists
		}
	}
	r.byID[a.ID] = *a
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*repository.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := a
	return &cpy, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*repository.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.byID {
		if strings.EqualFold(a.Email, email) {
			cpy := a
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *Users) Update(_ context.Context, a *repository.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		return errs.ErrNotFound
	}
	r.byID[a.ID] = *a
	return nil
}

func (r *Users) List(_ context.Context) ([]repository.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]repository.Account, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// Stores implements repository.StoreRepository.
type Stores struct {
	mu   sync.RWMutex
	byID map[string]model.Store
}

// NewStores constructs an empty store repository.
func NewStores() *Stores { return &Stores{byID: map[string]model.Store{}} }

func (r *Stores) Create(_ context.Context, s *model.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Slug == s.Slug {
			return errs.ErrAlreadyExists
		}
	}
	r.byID[s.ID] = *s
	return nil
}

func (r *Stores) GetByID(_ context.Context, id string) (*model.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := s
	return &cpy, nil
}

func (r *Stores) GetBySlug(_ context.Context, slug string) (*model.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.byID {
		if s.Slug == slug {
			cpy := s
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *Stores) GetByManager(_ context.Context, managerUserID string) (*model.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.byID {
		if s.ManagerUserID == managerUserID {
			cpy := s
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *Stores) Update(_ context.Context, s *model.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; !ok {
		return errs.ErrNotFound
	}
	r.byID[s.ID] = *s
	return nil
}

func (r *Stores) ListActive(_ context.Context) ([]model.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Store, 0, len(r.byID))
	for _, s := range r.byID {
		if s.IsActive {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Services implements repository.ServiceRepository.
type Services struct {
	mu   sync.RWMutex
	byID map[string]model.Service
}

// NewServices constructs an empty service repository.
func NewServices() *Services { return &Services{byID: map[string]model.Service{}} }

func (r *Services) Create(_ context.Context, s *model.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = *s
	return nil
}

func (r *Services) GetByID(_ context.Context, id string) (*model.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := s
	return &cpy, nil
}

func (r *Services) ListByStore(_ context.Context, storeID string) ([]model.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Service
	for _, s := range r.byID {
		if s.StoreID == storeID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Services) Update(_ context.Context, s *model.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; !ok {
		return errs.ErrNotFound
	}
	r.byID[s.ID] = *s
	return nil
}

func (r *Services) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Bookings implements repository.BookingRepository.
type Bookings struct {
	mu   sync.RWMutex
	byID map[string]model.Booking
}

// NewBookings constructs an empty booking repository.
func NewBookings() *Bookings { return &Bookings{byID: map[string]model.Booking{}} }

func (r *Bookings) Create(_ context.Context, b *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[b.ID] = *b
	return nil
}

func (r *Bookings) GetByID(_ context.Context, id string) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := b
	return &cpy, nil
}

func (r *Bookings) Update(_ context.Context, b *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[b.ID]; !ok {
		return errs.ErrNotFound
	}
	r.byID[b.ID] = *b
	return nil
}

func (r *Bookings) List(_ context.Context, f repository.BookingFilter) ([]model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Booking
	for _, b := range r.byID {
		if f.StoreID != "" && b.StoreID != f.StoreID {
			continue
		}
		if f.ClientUserID != "" && b.ClientUserID != f.ClientUserID {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookingDate != out[j].BookingDate {
			return out[i].BookingDate < out[j].BookingDate
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

// Notifications implements repository.NotificationRepository.
type Notifications struct {
	mu   sync.RWMutex
	byID map[string]model.Notification
	seq  []string // creation order
}

// NewNotifications constructs an empty notification repository.
func NewNotifications() *Notifications {
	return &Notifications{byID: map[string]model.Notification{}}
}

func (r *Notifications) Create(_ context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[n.ID] = *n
	r.seq = append(r.seq, n.ID)
	return nil
}

func (r *Notifications) GetByID(_ context.Context, id string) (*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := n
	return &cpy, nil
}

func (r *Notifications) ListByRecipient(_ context.Context, userID string) ([]model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Notification
	for _, id := range r.seq {
		if n := r.byID[id]; n.RecipientUserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}
