package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookhub/bookhub/internal/model"
)

const defaultStatsPeriodDays = 30

func (s *Server) handleDashboardStats(c echo.Context) error {
	days := statsPeriod(c)
	bookings, err := s.scopedBookingsSince(c, days)
	if err != nil {
		return err
	}

	stats := model.DashboardStats{PeriodDays: days}
	clients := map[string]struct{}{}
	for _, b := range bookings {
		stats.TotalBookings++
		switch b.Status {
		case model.BookingPending:
			stats.PendingBookings++
		case model.BookingConfirmed:
			stats.ConfirmedBookings++
		case model.BookingCancelled:
			stats.CancelledBookings++
		case model.BookingCompleted:
			stats.CompletedBookings++
		}
		if b.Status != model.BookingCancelled {
			stats.TotalRevenue += b.TotalAmount
		}
		clients[b.ClientUserID] = struct{}{}
	}
	stats.TotalClients = len(clients)
	return c.JSON(http.StatusOK, stats)
}

// handleBookingAnalytics buckets scoped bookings per day for the period.
func (s *Server) handleBookingAnalytics(c echo.Context) error {
	days := statsPeriod(c)
	bookings, err := s.scopedBookingsSince(c, days)
	if err != nil {
		return err
	}
	counts := map[string]int{}
	for _, b := range bookings {
		counts[b.BookingDate]++
	}
	series := make([]model.SeriesPoint, 0, days)
	for _, day := range periodDays(days) {
		series = append(series, model.SeriesPoint{Date: day, Count: counts[day]})
	}
	return c.JSON(http.StatusOK, series)
}

// handleRevenueAnalytics buckets non-cancelled booking amounts per day.
func (s *Server) handleRevenueAnalytics(c echo.Context) error {
	days := statsPeriod(c)
	bookings, err := s.scopedBookingsSince(c, days)
	if err != nil {
		return err
	}
	totals := map[string]float64{}
	for _, b := range bookings {
		if b.Status == model.BookingCancelled {
			continue
		}
		totals[b.BookingDate] += b.TotalAmount
	}
	series := make([]model.SeriesPoint, 0, days)
	for _, day := range periodDays(days) {
		series = append(series, model.SeriesPoint{Date: day, Total: totals[day]})
	}
	return c.JSON(http.StatusOK, series)
}

func (s *Server) scopedBookingsSince(c echo.Context, days int) ([]model.Booking, error) {
	f, err := s.scopeFilter(c)
	if err != nil {
		return nil, jsonError(c, http.StatusNotFound, err.Error())
	}
	all, err := s.bookings.List(c.Request().Context(), f)
	if err != nil {
		return nil, jsonError(c, http.StatusInternalServerError, "internal error")
	}
	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	out := all[:0]
	for _, b := range all {
		if b.BookingDate >= cutoff {
			out = append(out, b)
		}
	}
	return out, nil
}

func statsPeriod(c echo.Context) int {
	if raw := c.QueryParam("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return defaultStatsPeriodDays
}

// periodDays lists the last n calendar days in ascending order.
func periodDays(n int) []string {
	days := make([]string, 0, n)
	start := time.Now().AddDate(0, 0, -(n - 1))
	for i := 0; i < n; i++ {
		days = append(days, start.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return days
}
