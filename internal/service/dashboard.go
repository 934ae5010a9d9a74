package service

import (
	"context"
	"fmt"

	"github.com/bookhub/bookhub/internal/api"
	"github.com/bookhub/bookhub/internal/model"
)

// Dashboard relays server-computed statistics and analytics series. The
// client performs no aggregation of its own.
type Dashboard struct {
	api *api.Client
}

// NewDashboard constructs the dashboard service.
func NewDashboard(c *api.Client) *Dashboard { return &Dashboard{api: c} }

// Stats returns the aggregate block for the last days.
func (s *Dashboard) Stats(ctx context.Context, days int) (*model.DashboardStats, error) {
	if days <= 0 {
		days = 30
	}
	var out model.DashboardStats
	if err := s.api.Get(ctx, fmt.Sprintf("/dashboard/stats?days=%d", days), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BookingAnalytics returns the bookings-per-day series.
func (s *Dashboard) BookingAnalytics(ctx context.Context, days int) ([]model.SeriesPoint, error) {
	if days <= 0 {
		days = 30
	}
	var out []model.SeriesPoint
	if err := s.api.Get(ctx, fmt.Sprintf("/dashboard/analytics/bookings?days=%d", days), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RevenueAnalytics returns the revenue-per-day series.
func (s *Dashboard) RevenueAnalytics(ctx context.Context, days int) ([]model.SeriesPoint, error) {
	if days <= 0 {
		days = 30
	}
	var out []model.SeriesPoint
	if err := s.api.Get(ctx, fmt.Sprintf("/dashboard/analytics/revenue?days=%d", days), &out); err != nil {
		return nil, err
	}
	return out, nil
}
