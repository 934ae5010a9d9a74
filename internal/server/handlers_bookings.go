package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"

	"github.com/bookhub/bookhub/internal/model"
	"github.com/bookhub/bookhub/internal/repository"
)

type createBookingRequest struct {
	StoreID         string `json:"store_id"`
	ServiceID       string `json:"service_id"`
	BookingDate     string `json:"booking_date"`
	StartTime       string `json:"start_time"`
	NumberOfPersons int    `json:"number_of_persons"`
}

type updateBookingRequest struct {
	BookingDate     string `json:"booking_date"`
	StartTime       string `json:"start_time"`
	NumberOfPersons int    `json:"number_of_persons"`
	Status          string `json:"status"`
}

// scopeFilter limits a booking listing to what the principal may see.
func (s *Server) scopeFilter(c echo.Context) (repository.BookingFilter, error) {
	switch currentRole(c) {
	case model.RoleAdmin:
		return repository.BookingFilter{}, nil
	case model.RoleStoreManager:
		store, err := s.stores.GetByManager(c.Request().Context(), currentUserID(c))
		if err != nil {
			return repository.BookingFilter{}, fmt.Errorf("manager has no store")
		}
		return repository.BookingFilter{StoreID: store.ID}, nil
	default:
		return repository.BookingFilter{ClientUserID: currentUserID(c)}, nil
	}
}

func (s *Server) handleListBookings(c echo.Context) error {
	f, err := s.scopeFilter(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, err.Error())
	}
	out, err := s.bookings.List(c.Request().Context(), f)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	if out == nil {
		out = []model.Booking{}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleListStoreBookings(c echo.Context) error {
	storeID := c.Param("id")
	if currentRole(c) == model.RoleStoreManager {
		store, err := s.stores.GetByManager(c.Request().Context(), currentUserID(c))
		if err != nil || store.ID != storeID {
			return jsonError(c, http.StatusForbidden, "Access denied")
		}
	}
	out, err := s.bookings.List(c.Request().Context(), repository.BookingFilter{StoreID: storeID})
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	if out == nil {
		out = []model.Booking{}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetBooking(c echo.Context) error {
	b, err := s.bookings.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Booking not found")
	}
	if !s.mayTouchBooking(c, b) {
		return jsonError(c, http.StatusForbidden, "Access denied")
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) handleCreateBooking(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.StoreID == "" || req.ServiceID == "" || req.BookingDate == "" || req.StartTime == "" {
		return jsonError(c, http.StatusBadRequest, "store_id, service_id, booking_date and start_time are required")
	}
	if req.NumberOfPersons <= 0 {
		req.NumberOfPersons = 1
	}

	ctx := c.Request().Context()
	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Service not found")
	}
	if svc.StoreID != req.StoreID {
		return jsonError(c, http.StatusBadRequest, "service does not belong to store")
	}
	if req.NumberOfPersons < svc.MinPersons || req.NumberOfPersons > svc.MaxPersons {
		return jsonError(c, http.StatusBadRequest,
			fmt.Sprintf("number_of_persons must be between %d and %d", svc.MinPersons, svc.MaxPersons))
	}
	start, err := time.Parse("2006-01-02 15:04:05", req.BookingDate+" "+req.StartTime)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid booking_date or start_time")
	}
	if start.Before(time.Now()) {
		return jsonError(c, http.StatusBadRequest, "booking must be in the future")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)
	now := time.Now().UTC().Format(time.RFC3339)
	b := &model.Booking{
		ID:              id.String(),
		StoreID:         req.StoreID,
		ClientUserID:    currentUserID(c),
		ServiceID:       svc.ID,
		BookingDate:     req.BookingDate,
		StartTime:       req.StartTime,
		EndTime:         end.Format("15:04:05"),
		NumberOfPersons: req.NumberOfPersons,
		Status:          model.BookingPending,
		TotalAmount:     svc.Price(req.NumberOfPersons),
		PaymentStatus:   model.PaymentUnpaid,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	s.notifyBooking(ctx, b, "Booking received", "Your booking is pending confirmation.")
	return c.JSON(http.StatusCreated, b)
}

func (s *Server) handleUpdateBooking(c echo.Context) error {
	ctx := c.Request().Context()
	b, err := s.bookings.GetByID(ctx, c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Booking not found")
	}
	if !s.mayTouchBooking(c, b) {
		return jsonError(c, http.StatusForbidden, "Access denied")
	}

	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.BookingDate != "" || req.StartTime != "" {
		if req.BookingDate != "" {
			b.BookingDate = req.BookingDate
		}
		if req.StartTime != "" {
			b.StartTime = req.StartTime
		}
		if _, err := b.StartsAt(); err != nil {
			return jsonError(c, http.StatusBadRequest, "invalid booking_date or start_time")
		}
		b.Status = model.BookingRescheduled
	}
	if req.NumberOfPersons > 0 {
		b.NumberOfPersons = req.NumberOfPersons
	}
	if req.Status != "" {
		// managers and admins may set status directly
		if currentRole(c) == model.RoleClient {
			return jsonError(c, http.StatusForbidden, "Access denied")
		}
		switch st := model.BookingStatus(req.Status); st {
		case model.BookingPending, model.BookingConfirmed, model.BookingCancelled,
			model.BookingCompleted, model.BookingRescheduled:
			b.Status = st
		default:
			return jsonError(c, http.StatusBadRequest, "invalid status")
		}
	}
	b.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.bookings.Update(ctx, b); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) handleCancelBooking(c echo.Context) error {
	ctx := c.Request().Context()
	b, err := s.bookings.GetByID(ctx, c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Booking not found")
	}
	if !s.mayTouchBooking(c, b) {
		return jsonError(c, http.StatusForbidden, "Access denied")
	}
	if !b.CanBeCancelled(time.Now()) {
		return jsonError(c, http.StatusBadRequest, "Booking cannot be cancelled")
	}
	b.Status = model.BookingCancelled
	b.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.bookings.Update(ctx, b); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	s.notifyBooking(ctx, b, "Booking cancelled", "Your booking was cancelled.")
	return c.JSON(http.StatusOK, b)
}

func (s *Server) handleConfirmBooking(c echo.Context) error {
	ctx := c.Request().Context()
	b, err := s.bookings.GetByID(ctx, c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Booking not found")
	}
	if !s.mayTouchBooking(c, b) {
		return jsonError(c, http.StatusForbidden, "Access denied")
	}
	if b.Status != model.BookingPending {
		return jsonError(c, http.StatusBadRequest, "Only pending bookings can be confirmed")
	}
	b.Status = model.BookingConfirmed
	b.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.bookings.Update(ctx, b); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	s.notifyBooking(ctx, b, "Booking confirmed", "Your booking has been confirmed.")
	return c.JSON(http.StatusOK, b)
}

// mayTouchBooking applies the per-booking visibility rule: clients their own,
// managers their store's, admins all.
func (s *Server) mayTouchBooking(c echo.Context, b *model.Booking) bool {
	switch currentRole(c) {
	case model.RoleAdmin:
		return true
	case model.RoleStoreManager:
		store, err := s.stores.GetByManager(c.Request().Context(), currentUserID(c))
		return err == nil && store.ID == b.StoreID
	default:
		return b.ClientUserID == currentUserID(c)
	}
}

// notifyBooking appends a feed entry for the booking's client. Best effort.
func (s *Server) notifyBooking(ctx context.Context, b *model.Booking, subject, body string) {
	id, err := uuid.NewV4()
	if err != nil {
		return
	}
	_ = s.notifications.Create(ctx, &model.Notification{
		ID:              id.String(),
		StoreID:         b.StoreID,
		RecipientUserID: b.ClientUserID,
		BookingID:       b.ID,
		Channel:         "email",
		Subject:         subject,
		Body:            body,
		Status:          "sent",
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	})
}
