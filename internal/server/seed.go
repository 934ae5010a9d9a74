package server

import (
	"context"
	"time"

	"github.com/bookhub/bookhub/internal/crypto"
	"github.com/bookhub/bookhub/internal/model"
	"github.com/bookhub/bookhub/internal/repository"
)

// Seed loads a small demo data set: one account per role, a store with two
// services, and a booking, so the client can be exercised without setup.
// All demo accounts share the password "password123".
func (s *Server) Seed(ctx context.Context) error {
	hash, err := crypto.HashPassword("password123")
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	accounts := []repository.Account{
		{
			UserProfile: model.UserProfile{
				ID: "u-admin", FirstName: "Ada", LastName: "Admin",
				Email: "admin@bookhub.dev", Role: model.RoleAdmin, CreatedAt: now,
			},
			PasswordHash: hash,
		},
		{
			UserProfile: model.UserProfile{
				ID: "u-manager", FirstName: "Mara", LastName: "Manager",
				Email: "manager@bookhub.dev", Role: model.RoleStoreManager,
				StoreID: "st-harbor", CreatedAt: now,
			},
			PasswordHash: hash,
		},
		{
			UserProfile: model.UserProfile{
				ID: "u-client", FirstName: "Cleo", LastName: "Client",
				Email: "client@bookhub.dev", Role: model.RoleClient, CreatedAt: now,
			},
			PasswordHash: hash,
		},
	}
	for i := range accounts {
		if err := s.users.Create(ctx, &accounts[i]); err != nil {
			return err
		}
	}

	store := &model.Store{
		ID: "st-harbor", Name: "Harbor Spa", Slug: "harbor-spa",
		Address: "1 Quay Street", City: "Rotterdam", Country: "NL",
		Email: "hello@harborspa.example", Description: "Seaside wellness studio.",
		ManagerUserID: "u-manager", IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return err
	}

	services := []model.Service{
		{
			ID: "svc-massage", StoreID: store.ID, Name: "Deep Tissue Massage",
			DurationMinutes: 60, MinPersons: 1, MaxPersons: 1,
			PriceType: model.PriceFixed, BasePrice: 75,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "svc-sauna", StoreID: store.ID, Name: "Private Sauna",
			DurationMinutes: 90, MinPersons: 1, MaxPersons: 4,
			PriceType: model.PricePerPerson, BasePrice: 25,
			CreatedAt: now, UpdatedAt: now,
		},
	}
	for i := range services {
		if err := s.services.Create(ctx, &services[i]); err != nil {
			return err
		}
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	booking := &model.Booking{
		ID: "bk-demo", StoreID: store.ID, ClientUserID: "u-client",
		ServiceID: "svc-massage", BookingDate: tomorrow,
		StartTime: "14:00:00", EndTime: "15:00:00",
		NumberOfPersons: 1, Status: model.BookingConfirmed,
		TotalAmount: 75, PaymentStatus: model.PaymentUnpaid,
		CreatedAt: now, UpdatedAt: now,
	}
	return s.bookings.Create(ctx, booking)
}
