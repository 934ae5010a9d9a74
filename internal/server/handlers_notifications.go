package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookhub/bookhub/internal/model"
)

func (s *Server) handleListNotifications(c echo.Context) error {
	out, err := s.notifications.ListByRecipient(c.Request().Context(), currentUserID(c))
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	if out == nil {
		out = []model.Notification{}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetNotification(c echo.Context) error {
	n, err := s.notifications.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Notification not found")
	}
	if n.RecipientUserID != currentUserID(c) && currentRole(c) != model.RoleAdmin {
		return jsonError(c, http.StatusForbidden, "Access denied")
	}
	return c.JSON(http.StatusOK, n)
}
