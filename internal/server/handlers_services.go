package server

import (
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"

	"github.com/bookhub/bookhub/internal/model"
)

type serviceRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	MinPersons      int     `json:"min_persons"`
	MaxPersons      int     `json:"max_persons"`
	PriceType       string  `json:"price_type"`
	BasePrice       float64 `json:"base_price_amount"`
	PaymentEnabled  *bool   `json:"payment_enabled"`
}

func (s *Server) handleListStoreServices(c echo.Context) error {
	st, err := s.resolveStore(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Store not found")
	}
	out, err := s.services.ListByStore(c.Request().Context(), st.ID)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	if out == nil {
		out = []model.Service{}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetService(c echo.Context) error {
	svc, err := s.services.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Service not found")
	}
	return c.JSON(http.StatusOK, svc)
}

func (s *Server) handleCreateService(c echo.Context) error {
	ctx := c.Request().Context()
	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	target, err := s.resolveStore(c)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Store not found")
	}
	storeID, err := s.authorizeServiceStore(c, target.ID)
	if err != nil {
		return err
	}
	if req.Name == "" || req.DurationMinutes <= 0 {
		return jsonError(c, http.StatusBadRequest, "name and duration_minutes are required")
	}
	priceType, ok := parsePriceType(req.PriceType)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "invalid price_type")
	}
	minP, maxP := req.MinPersons, req.MaxPersons
	if minP <= 0 {
		minP = 1
	}
	if maxP < minP {
		maxP = minP
	}

	id, err := uuid.NewV4()
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	svc := &model.Service{
		ID:              id.String(),
		StoreID:         storeID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		MinPersons:      minP,
		MaxPersons:      maxP,
		PriceType:       priceType,
		BasePrice:       req.BasePrice,
		PaymentEnabled:  req.PaymentEnabled != nil && *req.PaymentEnabled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, svc)
}

func (s *Server) handleUpdateService(c echo.Context) error {
	ctx := c.Request().Context()
	svc, err := s.services.GetByID(ctx, c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Service not found")
	}
	if _, err := s.authorizeServiceStore(c, svc.StoreID); err != nil {
		return err
	}

	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name != "" {
		svc.Name = req.Name
	}
	if req.Description != "" {
		svc.Description = req.Description
	}
	if req.DurationMinutes > 0 {
		svc.DurationMinutes = req.DurationMinutes
	}
	if req.MinPersons > 0 {
		svc.MinPersons = req.MinPersons
	}
	if req.MaxPersons >= svc.MinPersons && req.MaxPersons > 0 {
		svc.MaxPersons = req.MaxPersons
	}
	if req.PriceType != "" {
		pt, ok := parsePriceType(req.PriceType)
		if !ok {
			return jsonError(c, http.StatusBadRequest, "invalid price_type")
		}
		svc.PriceType = pt
	}
	if req.BasePrice > 0 {
		svc.BasePrice = req.BasePrice
	}
	if req.PaymentEnabled != nil {
		svc.PaymentEnabled = *req.PaymentEnabled
	}
	svc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.services.Update(ctx, svc); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, svc)
}

func (s *Server) handleDeleteService(c echo.Context) error {
	ctx := c.Request().Context()
	svc, err := s.services.GetByID(ctx, c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Service not found")
	}
	if _, err := s.authorizeServiceStore(c, svc.StoreID); err != nil {
		return err
	}
	if err := s.services.Delete(ctx, svc.ID); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Service deleted"})
}

// authorizeServiceStore resolves the store a service operation targets.
// Managers are pinned to their own store regardless of the requested id;
// admins must name an existing store.
func (s *Server) authorizeServiceStore(c echo.Context, requested string) (string, error) {
	ctx := c.Request().Context()
	if currentRole(c) == model.RoleStoreManager {
		st, err := s.stores.GetByManager(ctx, currentUserID(c))
		if err != nil {
			return "", jsonError(c, http.StatusNotFound, "No store assigned")
		}
		if requested != "" && requested != st.ID {
			return "", jsonError(c, http.StatusForbidden, "Access denied")
		}
		return st.ID, nil
	}
	if requested == "" {
		return "", jsonError(c, http.StatusBadRequest, "store_id is required")
	}
	if _, err := s.stores.GetByID(ctx, requested); err != nil {
		return "", jsonError(c, http.StatusNotFound, "Store not found")
	}
	return requested, nil
}

func parsePriceType(raw string) (model.PriceType, bool) {
	switch model.PriceType(raw) {
	case "":
		return model.PriceFixed, true
	case model.PriceFixed, model.PricePerPerson, model.PricePerHour:
		return model.PriceType(raw), true
	default:
		return "", false
	}
}
