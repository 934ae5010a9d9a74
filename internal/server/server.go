// Package server implements the demo booking API: the wire contract the
// client talks, backed by in-memory repositories. It stands in for the remote
// backend during local development and integration tests.
package server

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/bookhub/bookhub/internal/limiter"
	"github.com/bookhub/bookhub/internal/model"
	"github.com/bookhub/bookhub/internal/repository"
	"github.com/bookhub/bookhub/internal/repository/memory"
)

// Server bundles repositories and auth settings behind the REST handlers.
type Server struct {
	users         repository.UserRepository
	stores        repository.StoreRepository
	services      repository.ServiceRepository
	bookings      repository.BookingRepository
	notifications repository.NotificationRepository

	signKey   []byte
	accessTTL time.Duration
	lim       limiter.Limiter
	log       *zap.Logger
}

// Config carries the server's knobs.
type Config struct {
	SignKey   []byte
	AccessTTL time.Duration
	Logger    *zap.Logger
}

// New constructs a Server over fresh in-memory repositories.
func New(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ttl := cfg.AccessTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Server{
		users:         memory.NewUsers(),
		stores:        memory.NewStores(),
		services:      memory.NewServices(),
		bookings:      memory.NewBookings(),
		notifications: memory.NewNotifications(),
		signKey:       cfg.SignKey,
		accessTTL:     ttl,
		lim:           limiter.NewMemory(time.Minute, 5, 5*time.Minute),
		log:           log,
	}
}

// Echo builds the routed echo instance. All routes live under /api, matching
// the client's default base URL.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(s.log))

	api := e.Group("/api")

	// auth
	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/register", s.handleRegister)
	api.GET("/auth/me", s.handleMe, s.requireAuth)

	// public storefront
	api.GET("/stores", s.handleListStores)
	api.GET("/stores/:id", s.handleGetStore)
	api.GET("/stores/:id/services", s.handleListStoreServices)

	// bookings
	api.GET("/bookings", s.handleListBookings, s.requireAuth)
	api.POST("/bookings", s.handleCreateBooking, s.requireAuth)
	api.GET("/bookings/:id", s.handleGetBooking, s.requireAuth)
	api.PUT("/bookings/:id", s.handleUpdateBooking, s.requireAuth)
	api.POST("/bookings/:id/cancel", s.handleCancelBooking, s.requireAuth)
	api.POST("/bookings/:id/confirm", s.handleConfirmBooking, s.requireAuth,
		requireRole(model.RoleStoreManager, model.RoleAdmin))
	api.GET("/stores/:id/bookings", s.handleListStoreBookings, s.requireAuth,
		requireRole(model.RoleStoreManager, model.RoleAdmin))

	// store management
	api.POST("/stores", s.handleCreateStore, s.requireAuth, requireRole(model.RoleAdmin))
	api.PUT("/stores/:id", s.handleUpdateStore, s.requireAuth,
		requireRole(model.RoleStoreManager, model.RoleAdmin))
	api.DELETE("/stores/:id", s.handleDeleteStore, s.requireAuth, requireRole(model.RoleAdmin))
	api.GET("/my-store", s.handleMyStore, s.requireAuth, requireRole(model.RoleStoreManager))

	// service management
	api.POST("/stores/:id/services", s.handleCreateService, s.requireAuth,
		requireRole(model.RoleStoreManager, model.RoleAdmin))
	api.PUT("/services/:id", s.handleUpdateService, s.requireAuth,
		requireRole(model.RoleStoreManager, model.RoleAdmin))
	api.DELETE("/services/:id", s.handleDeleteService, s.requireAuth,
		requireRole(model.RoleStoreManager, model.RoleAdmin))
	api.GET("/services/:id", s.handleGetService)

	// subscription
	api.GET("/subscription/plans", s.handleListPlans, s.requireAuth,
		requireRole(model.RoleStoreManager, model.RoleAdmin))

	// dashboard
	api.GET("/dashboard/stats", s.handleDashboardStats, s.requireAuth)
	api.GET("/dashboard/analytics/bookings", s.handleBookingAnalytics, s.requireAuth)
	api.GET("/dashboard/analytics/revenue", s.handleRevenueAnalytics, s.requireAuth)

	// notifications
	api.GET("/notifications", s.handleListNotifications, s.requireAuth)
	api.GET("/notifications/:id", s.handleGetNotification, s.requireAuth)

	// users
	api.GET("/users", s.handleListUsers, s.requireAuth, requireRole(model.RoleAdmin))
	api.GET("/users/:id", s.handleGetUser, s.requireAuth)
	api.PUT("/users/:id", s.handleUpdateUser, s.requireAuth)

	return e
}
