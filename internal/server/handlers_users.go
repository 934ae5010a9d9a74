package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookhub/bookhub/internal/model"
)

type userUpdateRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Age         *int   `json:"age"`
	Role        string `json:"role"`
}

func (s *Server) handleListUsers(c echo.Context) error {
	accounts, err := s.users.List(c.Request().Context())
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	out := make([]model.UserProfile, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.UserProfile)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetUser(c echo.Context) error {
	id := c.Param("id")
	if currentRole(c) != model.RoleAdmin && id != currentUserID(c) {
		return jsonError(c, http.StatusForbidden, "Access denied")
	}
	a, err := s.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, a.UserProfile)
}

// handleUpdateUser lets users edit their own profile; only admins may touch
// other accounts or change roles. Email is immutable, it is the login key.
func (s *Server) handleUpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	admin := currentRole(c) == model.RoleAdmin
	if !admin && id != currentUserID(c) {
		return jsonError(c, http.StatusForbidden, "Access denied")
	}
	a, err := s.users.GetByID(ctx, id)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "User not found")
	}

	var req userUpdateRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.FirstName != "" {
		a.FirstName = req.FirstName
	}
	if req.LastName != "" {
		a.LastName = req.LastName
	}
	if req.PhoneNumber != "" {
		a.PhoneNumber = req.PhoneNumber
	}
	if req.Age != nil {
		a.Age = req.Age
	}
	if req.Role != "" {
		if !admin {
			return jsonError(c, http.StatusForbidden, "Only admins can change roles")
		}
		role, err := model.ParseRole(req.Role)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "invalid role")
		}
		a.Role = role
	}
	a.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.users.Update(ctx, a); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, a.UserProfile)
}
