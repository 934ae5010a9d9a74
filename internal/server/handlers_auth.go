package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bookhub/bookhub/internal/crypto"
	"github.com/bookhub/bookhub/internal/errs"
	"github.com/bookhub/bookhub/internal/limiter"
	"github.com/bookhub/bookhub/internal/model"
	"github.com/bookhub/bookhub/internal/repository"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

// handleLogin authenticates credentials and issues an access token.
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "email and password are required")
	}

	ctx := c.Request().Context()
	ipHash := limiter.HashIP(c.RealIP())
	if allowed, _, _ := s.lim.Allow(ctx, req.Email, ipHash); !allowed {
		return jsonError(c, http.StatusTooManyRequests, "too many attempts, try again later")
	}

	acc, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil || !crypto.VerifyPassword(req.Password, acc.PasswordHash) {
		// hide whether the account exists
		if blocked, _, _ := s.lim.Failure(ctx, req.Email, ipHash); blocked {
			return jsonError(c, http.StatusTooManyRequests, "too many attempts, try again later")
		}
		return jsonError(c, http.StatusUnauthorized, "Invalid email or password")
	}
	_ = s.lim.Success(ctx, req.Email, ipHash)

	return s.respondAuthenticated(c, acc)
}

// handleRegister creates an account and, like login, authenticates it.
func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "first_name, last_name, email and password are required")
	}
	if len(req.Password) < 6 {
		return jsonError(c, http.StatusBadRequest, "password must be at least 6 characters")
	}
	role := model.RoleClient
	if req.Role != "" {
		parsed, err := model.ParseRole(req.Role)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "Invalid role")
		}
		if parsed == model.RoleAdmin {
			// admin accounts are seeded, never self-registered
			return jsonError(c, http.StatusForbidden, "cannot self-register as admin")
		}
		role = parsed
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	id, err := uuid.NewV4()
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	acc := &repository.Account{
		UserProfile: model.UserProfile{
			ID:          id.String(),
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Role:        role,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		PasswordHash: hash,
	}
	if err := s.users.Create(c.Request().Context(), acc); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return jsonError(c, http.StatusConflict, "User with this email already exists")
		}
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}

	s.log.Info("registered", zap.String("role", role.String()))
	return s.respondAuthenticated(c, acc)
}

// handleMe returns the authenticated profile.
func (s *Server) handleMe(c echo.Context) error {
	acc, err := s.users.GetByID(c.Request().Context(), currentUserID(c))
	if err != nil {
		return jsonError(c, http.StatusUnauthorized, "unknown principal")
	}
	return c.JSON(http.StatusOK, acc.UserProfile)
}

func (s *Server) respondAuthenticated(c echo.Context, acc *repository.Account) error {
	token, err := issueAccessToken(s.signKey, acc.ID, acc.Role, s.accessTTL)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, model.AuthResponse{AccessToken: token, User: acc.UserProfile})
}
