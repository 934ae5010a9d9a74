package guard

import (
	"testing"

	"github.com/bookhub/bookhub/internal/model"
	"github.com/bookhub/bookhub/internal/session"
)

type fakeSession struct {
	status session.Status
	user   *model.UserProfile
}

func (f *fakeSession) Status() session.Status   { return f.status }
func (f *fakeSession) User() *model.UserProfile { return f.user }

func client() *model.UserProfile {
	return &model.UserProfile{ID: "u1", Role: model.RoleClient}
}

func TestCheck_RoleGating(t *testing.T) {
	g := New(&fakeSession{status: session.StatusAuthenticated, user: client()})

	if d := g.Check(Requirement{RequiredRole: model.RoleAdmin}); d != DeniedWrongRole {
		t.Fatalf("admin-required view for client: %s", d)
	}
	if d := g.Check(Requirement{}); d != Admitted {
		t.Fatalf("no requirement for authenticated session: %s", d)
	}
	if d := g.Check(Requirement{RequiredRole: model.RoleClient}); d != Admitted {
		t.Fatalf("matching role: %s", d)
	}
}

func TestCheck_SessionStates(t *testing.T) {
	tests := []struct {
		name   string
		status session.Status
		user   *model.UserProfile
		want   Decision
	}{
		{"uninitialized", session.StatusUninitialized, nil, Checking},
		{"loading", session.StatusLoading, nil, Checking},
		{"anonymous", session.StatusAnonymous, nil, DeniedUnauthenticated},
		{"authenticated", session.StatusAuthenticated, client(), Admitted},
	}
	for _, tc := range tests {
		g := New(&fakeSession{status: tc.status, user: tc.user})
		if d := g.Check(Requirement{}); d != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, d, tc.want)
		}
	}
}

func TestCheck_ReRunsPerNavigation(t *testing.T) {
	fs := &fakeSession{status: session.StatusLoading}
	g := New(fs)

	if d := g.Check(Requirement{}); d != Checking {
		t.Fatalf("loading: %s", d)
	}
	fs.status = session.StatusAuthenticated
	fs.user = client()
	if d := g.Check(Requirement{}); d != Admitted {
		t.Fatalf("after settle: %s", d)
	}
	fs.status = session.StatusAnonymous
	fs.user = nil
	if d := g.Check(Requirement{}); d != DeniedUnauthenticated {
		t.Fatalf("after logout: %s", d)
	}
}

func TestCheckView_CapabilityTable(t *testing.T) {
	tests := []struct {
		role model.Role
		view string
		want Decision
	}{
		{model.RoleClient, ViewDashboard, Admitted},
		{model.RoleClient, ViewBookings, Admitted},
		{model.RoleClient, ViewServices, DeniedWrongRole},
		{model.RoleClient, ViewSubscription, DeniedWrongRole},
		{model.RoleClient, ViewAdmin, DeniedWrongRole},
		{model.RoleStoreManager, ViewServices, Admitted},
		{model.RoleStoreManager, ViewSubscription, Admitted},
		{model.RoleStoreManager, ViewStore, Admitted},
		{model.RoleStoreManager, ViewAdmin, DeniedWrongRole},
		{model.RoleAdmin, ViewAdmin, Admitted},
		{model.RoleAdmin, ViewAnalytics, Admitted},
	}
	for _, tc := range tests {
		g := New(&fakeSession{
			status: session.StatusAuthenticated,
			user:   &model.UserProfile{ID: "u", Role: tc.role},
		})
		if d := g.CheckView(tc.view); d != tc.want {
			t.Fatalf("%s/%s: got %s want %s", tc.role, tc.view, d, tc.want)
		}
	}

	g := New(&fakeSession{status: session.StatusAnonymous})
	if d := g.CheckView(ViewDashboard); d != DeniedUnauthenticated {
		t.Fatalf("anonymous: %s", d)
	}
}

func TestRedirect(t *testing.T) {
	if Redirect(DeniedUnauthenticated) != PublicEntryRoute {
		t.Fatal("unauthenticated must redirect to the public entry route")
	}
	if Redirect(DeniedWrongRole) != PublicEntryRoute {
		t.Fatal("wrong role shares the same redirect target")
	}
	if Redirect(Admitted) != "" || Redirect(Checking) != "" {
		t.Fatal("no redirect while admitted or checking")
	}
}
