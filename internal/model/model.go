// Package model defines domain entities exchanged with the booking API.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role determines which views a principal may access.
type Role string

// Enumerated roles. The server never issues anything else; unknown values are
// rejected at the parsing boundary, not silently accepted.
const (
	RoleClient       Role = "client"
	RoleStoreManager Role = "store_manager"
	RoleAdmin        Role = "admin"
)

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleStoreManager, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// UnmarshalJSON rejects unrecognized role values.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Role) String() string { return string(r) }

// UserProfile is the server-issued description of the authenticated principal.
// Replaced wholesale on every successful login/register/profile fetch; never
// partially mutated.
type UserProfile struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number,omitempty"`
	Address     string  `json:"address,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Role        Role    `json:"role"`
	StoreID     string  `json:"store_id,omitempty"` // set for store managers
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
}

// FullName joins first and last name for display.
func (u UserProfile) FullName() string { return u.FirstName + " " + u.LastName }

// Registration is the payload posted to /auth/register.
type Registration struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Role        Role   `json:"role"`
}

// AuthResponse is the success body of /auth/login and /auth/register.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserProfile `json:"user"`
}

// BookingStatus tracks the booking lifecycle.
type BookingStatus string

const (
	BookingPending     BookingStatus = "pending"
	BookingConfirmed   BookingStatus = "confirmed"
	BookingCancelled   BookingStatus = "cancelled"
	BookingCompleted   BookingStatus = "completed"
	BookingRescheduled BookingStatus = "rescheduled"
)

// PaymentStatus tracks how much of a booking has been paid.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking is an appointment at a store for a service.
type Booking struct {
	ID              string        `json:"id"`
	StoreID         string        `json:"store_id"`
	ClientUserID    string        `json:"client_user_id"`
	ServiceID       string        `json:"service_id"`
	BookingDate     string        `json:"booking_date"` // YYYY-MM-DD
	StartTime       string        `json:"start_time"`   // HH:MM:SS
	EndTime         string        `json:"end_time"`
	NumberOfPersons int           `json:"number_of_persons"`
	Status          BookingStatus `json:"status"`
	TotalAmount     float64       `json:"total_amount"`
	AdvanceAmount   float64       `json:"advance_payment_amount,omitempty"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       string        `json:"created_at,omitempty"`
	UpdatedAt       string        `json:"updated_at,omitempty"`
}

// StartsAt combines booking date and start time.
func (b Booking) StartsAt() (time.Time, error) {
	return time.Parse("2006-01-02 15:04:05", b.BookingDate+" "+b.StartTime)
}

// CanBeCancelled reports whether the booking is still pending or confirmed and
// has not started yet.
func (b Booking) CanBeCancelled(now time.Time) bool {
	if b.Status != BookingPending && b.Status != BookingConfirmed {
		return false
	}
	start, err := b.StartsAt()
	if err != nil {
		return false
	}
	return start.After(now)
}

// PriceType selects how a service's base price is applied.
type PriceType string

const (
	PriceFixed     PriceType = "fixed"
	PricePerHour   PriceType = "per_hour"
	PricePerPerson PriceType = "per_person"
)

// Service is a bookable offering of a store.
type Service struct {
	ID              string    `json:"id"`
	StoreID         string    `json:"store_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	MinPersons      int       `json:"min_persons"`
	MaxPersons      int       `json:"max_persons"`
	PriceType       PriceType `json:"price_type"`
	BasePrice       float64   `json:"base_price_amount"`
	PaymentEnabled  bool      `json:"payment_enabled"`
	CreatedAt       string    `json:"created_at,omitempty"`
	UpdatedAt       string    `json:"updated_at,omitempty"`
}

// Price computes the charge for a party of the given size. Relayed pricing
// normally comes from the server; this mirrors it for display.
func (s Service) Price(persons int) float64 {
	switch s.PriceType {
	case PricePerPerson:
		return s.BasePrice * float64(persons)
	case PricePerHour:
		return s.BasePrice * float64(s.DurationMinutes) / 60
	default:
		return s.BasePrice
	}
}

// Store is a tenant's public business profile.
type Store struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Address       string   `json:"address,omitempty"`
	City          string   `json:"city,omitempty"`
	PostalCode    string   `json:"postal_code,omitempty"`
	Country       string   `json:"country,omitempty"`
	PhoneNumber   string   `json:"phone_number,omitempty"`
	Email         string   `json:"email,omitempty"`
	Website       string   `json:"website,omitempty"`
	Description   string   `json:"description,omitempty"`
	PhotosURL     []string `json:"photos_url,omitempty"`
	ManagerUserID string   `json:"manager_user_id,omitempty"`
	IsActive      bool     `json:"is_active"`
	CreatedAt     string   `json:"created_at,omitempty"`
	UpdatedAt     string   `json:"updated_at,omitempty"`
}

// SubscriptionPlan is a tier a store can be subscribed to. Relayed for
// display; checkout happens elsewhere.
type SubscriptionPlan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MonthlyPrice float64  `json:"monthly_price_amount"`
	MaxServices  int      `json:"max_services"`
	Features     []string `json:"features,omitempty"`
}

// Notification is a message addressed to a user about a booking event.
type Notification struct {
	ID              string `json:"id"`
	StoreID         string `json:"store_id,omitempty"`
	RecipientUserID string `json:"recipient_user_id"`
	BookingID       string `json:"booking_id,omitempty"`
	Channel         string `json:"channel"` // email | sms
	Subject         string `json:"subject,omitempty"`
	Body            string `json:"body"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// DashboardStats is the aggregate block rendered on the dashboard. The client
// relays it as-is; all aggregation happens server-side.
type DashboardStats struct {
	TotalBookings     int     `json:"total_bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalClients      int     `json:"total_clients"`
	PeriodDays        int     `json:"period_days"`
}

// SeriesPoint is one bucket of a dashboard analytics series.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Count int     `json:"count,omitempty"`
	Total float64 `json:"total,omitempty"`
}
