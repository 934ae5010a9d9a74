package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookhub/bookhub/internal/model"
)

// subscriptionPlans is the fixed plan catalogue the subscription view renders.
var subscriptionPlans = []model.SubscriptionPlan{
	{
		ID: "plan-starter", Name: "Starter", MonthlyPrice: 0, MaxServices: 3,
		Features: []string{"Up to 3 services", "Booking management"},
	},
	{
		ID: "plan-pro", Name: "Pro", MonthlyPrice: 29, MaxServices: 15,
		Features: []string{"Up to 15 services", "Booking management", "Analytics"},
	},
	{
		ID: "plan-business", Name: "Business", MonthlyPrice: 79, MaxServices: 0,
		Features: []string{"Unlimited services", "Booking management", "Analytics", "Priority support"},
	},
}

func (s *Server) handleListPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, subscriptionPlans)
}
