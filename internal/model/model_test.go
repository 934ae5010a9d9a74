package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"client", "store_manager", "admin"} {
		r, err := ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", s, err)
		}
		if r.String() != s {
			t.Fatalf("ParseRole(%q)=%q", s, r)
		}
	}
	for _, s := range []string{"", "manager", "superadmin", "Client"} {
		if _, err := ParseRole(s); err == nil {
			t.Fatalf("ParseRole(%q): want error", s)
		}
	}
}

func TestRole_UnmarshalJSON_RejectsUnknown(t *testing.T) {
	var u UserProfile
	good := `{"id":"1","first_name":"A","last_name":"B","email":"a@b.com","role":"client"}`
	if err := json.Unmarshal([]byte(good), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.Role != RoleClient {
		t.Fatalf("role=%q", u.Role)
	}
	bad := `{"id":"1","first_name":"A","last_name":"B","email":"a@b.com","role":"owner"}`
	if err := json.Unmarshal([]byte(bad), &u); err == nil {
		t.Fatalf("want error for unknown role")
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	b := Booking{Status: BookingConfirmed, BookingDate: "2026-03-11", StartTime: "09:00:00"}
	if !b.CanBeCancelled(now) {
		t.Fatalf("future confirmed booking should be cancellable")
	}
	b.Status = BookingCompleted
	if b.CanBeCancelled(now) {
		t.Fatalf("completed booking must not be cancellable")
	}
	b.Status = BookingPending
	b.BookingDate = "2026-03-09"
	if b.CanBeCancelled(now) {
		t.Fatalf("past booking must not be cancellable")
	}
}

func TestService_Price(t *testing.T) {
	tests := []struct {
		name    string
		svc     Service
		persons int
		want    float64
	}{
		{"fixed", Service{PriceType: PriceFixed, BasePrice: 50}, 3, 50},
		{"per_person", Service{PriceType: PricePerPerson, BasePrice: 20}, 3, 60},
		{"per_hour", Service{PriceType: PricePerHour, BasePrice: 30, DurationMinutes: 90}, 1, 45},
	}
	for _, tc := range tests {
		if got := tc.svc.Price(tc.persons); got != tc.want {
			t.Fatalf("%s: Price=%v want %v", tc.name, got, tc.want)
		}
	}
}
