package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"

	"github.com/bookhub/bookhub/internal/model"
)

type storeRequest struct {
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	PostalCode    string   `json:"postal_code"`
	Country       string   `json:"country"`
	PhoneNumber   string   `json:"phone_number"`
	Email         string   `json:"email"`
	Website       string   `json:"website"`
	Description   string   `json:"description"`
	PhotosURL     []string `json:"photos_url"`
	ManagerUserID string   `json:"manager_user_id"`
}

func (s *Server) handleListStores(c echo.Context) error {
	out, err := s.stores.ListActive(c.Request().Context())
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, out)
}

// handleGetStore resolves the path parameter as an id first, then as the
// public slug, covering both the management and storefront callers.
func (s *Server) handleGetStore(c echo.Context) error {
	st, err := s.resolveStore(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Store not found")
	}
	return c.JSON(http.StatusOK, st)
}

func (s *Server) handleCreateStore(c echo.Context) error {
	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Slug == "" || req.ManagerUserID == "" {
		return jsonError(c, http.StatusBadRequest, "name, slug and manager_user_id are required")
	}
	manager, err := s.users.GetByID(c.Request().Context(), req.ManagerUserID)
	if err != nil || manager.Role != model.RoleStoreManager {
		return jsonError(c, http.StatusBadRequest, "manager_user_id must reference a store manager")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	st := &model.Store{
		ID:            id.String(),
		Name:          req.Name,
		Slug:          strings.ToLower(req.Slug),
		Address:       req.Address,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		Website:       req.Website,
		Description:   req.Description,
		PhotosURL:     req.PhotosURL,
		ManagerUserID: req.ManagerUserID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.stores.Create(c.Request().Context(), st); err != nil {
		return jsonError(c, http.StatusConflict, "Store with this slug already exists")
	}

	// bind the manager to the tenant
	manager.StoreID = st.ID
	_ = s.users.Update(c.Request().Context(), manager)

	return c.JSON(http.StatusCreated, st)
}

func (s *Server) handleUpdateStore(c echo.Context) error {
	ctx := c.Request().Context()
	st, err := s.stores.GetByID(ctx, c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Store not found")
	}
	if currentRole(c) == model.RoleStoreManager && st.ManagerUserID != currentUserID(c) {
		return jsonError(c, http.StatusForbidden, "Access denied")
	}

	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name != "" {
		st.Name = req.Name
	}
	if req.Address != "" {
		st.Address = req.Address
	}
	if req.City != "" {
		st.City = req.City
	}
	if req.PostalCode != "" {
		st.PostalCode = req.PostalCode
	}
	if req.Country != "" {
		st.Country = req.Country
	}
	if req.PhoneNumber != "" {
		st.PhoneNumber = req.PhoneNumber
	}
	if req.Email != "" {
		st.Email = req.Email
	}
	if req.Website != "" {
		st.Website = req.Website
	}
	if req.Description != "" {
		st.Description = req.Description
	}
	if req.PhotosURL != nil {
		st.PhotosURL = req.PhotosURL
	}
	st.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.stores.Update(ctx, st); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, st)
}

// handleDeleteStore deactivates rather than removes; bookings keep their
// store reference.
func (s *Server) handleDeleteStore(c echo.Context) error {
	ctx := c.Request().Context()
	st, err := s.stores.GetByID(ctx, c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Store not found")
	}
	st.IsActive = false
	st.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.stores.Update(ctx, st); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Store deactivated"})
}

func (s *Server) handleMyStore(c echo.Context) error {
	st, err := s.stores.GetByManager(c.Request().Context(), currentUserID(c))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "No store assigned")
	}
	return c.JSON(http.StatusOK, st)
}

func (s *Server) resolveStore(c echo.Context) (*model.Store, error) {
	ctx := c.Request().Context()
	key := c.Param("id")
	if st, err := s.stores.GetByID(ctx, key); err == nil {
		return st, nil
	}
	return s.stores.GetBySlug(ctx, key)
}
