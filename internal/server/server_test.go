package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/bookhub/bookhub/internal/model"
)

func newTestServer(t *testing.T) (*Server, *echo.Echo) {
	t.Helper()
	srv := New(Config{SignKey: []byte("test-sign-key")})
	require.NoError(t, srv.Seed(context.Background()))
	return srv, srv.Echo()
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, email string) (string, model.UserProfile) {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp model.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken, resp.User
}

func TestLoginAndMe(t *testing.T) {
	_, e := newTestServer(t)

	token, user := login(t, e, "client@bookhub.dev")
	require.Equal(t, model.RoleClient, user.Role)

	rec := doJSON(t, e, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me model.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.Equal(t, user.ID, me.ID)
}

func TestLoginBadPassword(t *testing.T) {
	_, e := newTestServer(t)
	rec := doJSON(t, e, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "client@bookhub.dev", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestLoginLockout(t *testing.T) {
	_, e := newTestServer(t)
	for i := 0; i < 5; i++ {
		doJSON(t, e, http.MethodPost, "/api/auth/login", "",
			map[string]string{"email": "client@bookhub.dev", "password": "wrong"})
	}
	rec := doJSON(t, e, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "client@bookhub.dev", "password": "password123"})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRegister(t *testing.T) {
	_, e := newTestServer(t)
	body := map[string]string{
		"first_name": "New", "last_name": "User",
		"email": "new@bookhub.dev", "password": "secret1",
	}

	rec := doJSON(t, e, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp model.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, model.RoleClient, resp.User.Role)

	rec = doJSON(t, e, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "already exists")
}

func TestRegisterAdminForbidden(t *testing.T) {
	_, e := newTestServer(t)
	rec := doJSON(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"first_name": "Evil", "last_name": "Admin",
		"email": "evil@bookhub.dev", "password": "secret1", "role": "admin",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBookingLifecycle(t *testing.T) {
	_, e := newTestServer(t)
	clientToken, _ := login(t, e, "client@bookhub.dev")
	managerToken, _ := login(t, e, "manager@bookhub.dev")

	date := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	rec := doJSON(t, e, http.MethodPost, "/api/bookings", clientToken, map[string]any{
		"store_id": "st-harbor", "service_id": "svc-sauna",
		"booking_date": date, "start_time": "10:00:00", "number_of_persons": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var b model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	require.Equal(t, model.BookingPending, b.Status)
	require.Equal(t, 50.0, b.TotalAmount) // per_person 25 x 2
	require.Equal(t, "11:30:00", b.EndTime)

	rec = doJSON(t, e, http.MethodPost, "/api/bookings/"+b.ID+"/confirm", managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, e, http.MethodPost, "/api/bookings/"+b.ID+"/cancel", clientToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	require.Equal(t, model.BookingCancelled, b.Status)

	// cancelling again is rejected
	rec = doJSON(t, e, http.MethodPost, "/api/bookings/"+b.ID+"/cancel", clientToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingConfirmRequiresManagerRole(t *testing.T) {
	_, e := newTestServer(t)
	clientToken, _ := login(t, e, "client@bookhub.dev")
	rec := doJSON(t, e, http.MethodPost, "/api/bookings/bk-demo/confirm", clientToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBookingListScopedByRole(t *testing.T) {
	_, e := newTestServer(t)

	clientToken, clientUser := login(t, e, "client@bookhub.dev")
	rec := doJSON(t, e, http.MethodGet, "/api/bookings", clientToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	require.Equal(t, clientUser.ID, mine[0].ClientUserID)

	managerToken, _ := login(t, e, "manager@bookhub.dev")
	rec = doJSON(t, e, http.MethodGet, "/api/bookings", managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var forStore []model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &forStore))
	require.Len(t, forStore, 1)
	require.Equal(t, "st-harbor", forStore[0].StoreID)
}

func TestPublicStorefront(t *testing.T) {
	_, e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/api/stores", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stores []model.Store
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stores))
	require.Len(t, stores, 1)

	// store resolvable by slug and by id
	for _, key := range []string{"harbor-spa", "st-harbor"} {
		rec = doJSON(t, e, http.MethodGet, "/api/stores/"+key, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, key)
	}

	rec = doJSON(t, e, http.MethodGet, "/api/stores/harbor-spa/services", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var svcs []model.Service
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &svcs))
	require.Len(t, svcs, 2)
}

func TestMyStore(t *testing.T) {
	_, e := newTestServer(t)
	managerToken, _ := login(t, e, "manager@bookhub.dev")
	rec := doJSON(t, e, http.MethodGet, "/api/my-store", managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var st model.Store
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	require.Equal(t, "st-harbor", st.ID)

	clientToken, _ := login(t, e, "client@bookhub.dev")
	rec = doJSON(t, e, http.MethodGet, "/api/my-store", clientToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServiceManagement(t *testing.T) {
	_, e := newTestServer(t)
	managerToken, _ := login(t, e, "manager@bookhub.dev")

	rec := doJSON(t, e, http.MethodPost, "/api/stores/st-harbor/services", managerToken, map[string]any{
		"name": "Hot Stone", "duration_minutes": 45, "price_type": "fixed", "base_price_amount": 60,
		"payment_enabled": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var svc model.Service
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &svc))
	require.Equal(t, 1, svc.MinPersons)
	require.True(t, svc.PaymentEnabled)

	// partial update leaves omitted fields alone, payment_enabled included
	rec = doJSON(t, e, http.MethodPut, "/api/services/"+svc.ID, managerToken,
		map[string]any{"base_price_amount": 65})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &svc))
	require.Equal(t, 65.0, svc.BasePrice)
	require.True(t, svc.PaymentEnabled)

	rec = doJSON(t, e, http.MethodPut, "/api/services/"+svc.ID, managerToken,
		map[string]any{"payment_enabled": false})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &svc))
	require.False(t, svc.PaymentEnabled)

	rec = doJSON(t, e, http.MethodDelete, "/api/services/"+svc.ID, managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodGet, "/api/services/"+svc.ID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreAdminManagement(t *testing.T) {
	_, e := newTestServer(t)
	adminToken, _ := login(t, e, "admin@bookhub.dev")
	managerToken, _ := login(t, e, "manager@bookhub.dev")

	// managers cannot create stores
	rec := doJSON(t, e, http.MethodPost, "/api/stores", managerToken, map[string]any{
		"name": "Another", "slug": "another", "manager_user_id": "u-manager",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// duplicate slug is rejected
	rec = doJSON(t, e, http.MethodPost, "/api/stores", adminToken, map[string]any{
		"name": "Clone", "slug": "harbor-spa", "manager_user_id": "u-manager",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	// deactivate removes the store from the public listing
	rec = doJSON(t, e, http.MethodDelete, "/api/stores/st-harbor", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodGet, "/api/stores", "", nil)
	var stores []model.Store
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stores))
	require.Empty(t, stores)
}

func TestSubscriptionPlans(t *testing.T) {
	_, e := newTestServer(t)
	managerToken, _ := login(t, e, "manager@bookhub.dev")

	rec := doJSON(t, e, http.MethodGet, "/api/subscription/plans", managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var plans []model.SubscriptionPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plans))
	require.Len(t, plans, 3)
	require.Equal(t, "Starter", plans[0].Name)

	clientToken, _ := login(t, e, "client@bookhub.dev")
	rec = doJSON(t, e, http.MethodGet, "/api/subscription/plans", clientToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDashboardStats(t *testing.T) {
	_, e := newTestServer(t)
	managerToken, _ := login(t, e, "manager@bookhub.dev")

	rec := doJSON(t, e, http.MethodGet, "/api/dashboard/stats?days=7", managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats model.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Equal(t, 7, stats.PeriodDays)
	require.Equal(t, 1, stats.TotalBookings)
	require.Equal(t, 1, stats.ConfirmedBookings)
	require.Equal(t, 75.0, stats.TotalRevenue)
	require.Equal(t, 1, stats.TotalClients)
}

func TestUserRoutes(t *testing.T) {
	_, e := newTestServer(t)
	adminToken, _ := login(t, e, "admin@bookhub.dev")
	clientToken, clientUser := login(t, e, "client@bookhub.dev")

	rec := doJSON(t, e, http.MethodGet, "/api/users", clientToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []model.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 3)
	for _, u := range users {
		require.NotContains(t, rec.Body.String(), "password")
		require.NotEmpty(t, u.Email)
	}

	// self-update allowed, role change is not
	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/users/%s", clientUser.ID), clientToken,
		map[string]any{"first_name": "Chloe"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, "Chloe", updated.FirstName)

	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/users/%s", clientUser.ID), clientToken,
		map[string]any{"role": "admin"})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNotificationsFeed(t *testing.T) {
	_, e := newTestServer(t)
	clientToken, _ := login(t, e, "client@bookhub.dev")

	rec := doJSON(t, e, http.MethodPost, "/api/bookings/bk-demo/cancel", clientToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, e, http.MethodGet, "/api/notifications", clientToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var feed []model.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.NotEmpty(t, feed)
}

func TestAuthRequired(t *testing.T) {
	_, e := newTestServer(t)
	for _, path := range []string{"/api/bookings", "/api/auth/me", "/api/dashboard/stats"} {
		rec := doJSON(t, e, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
		require.Contains(t, rec.Body.String(), "error")
	}
	rec := doJSON(t, e, http.MethodGet, "/api/bookings", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
