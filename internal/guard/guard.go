// Package guard implements the admission check run before a protected view is
// rendered.
package guard

import (
	"github.com/bookhub/bookhub/internal/model"
	"github.com/bookhub/bookhub/internal/session"
)

// Decision is the outcome of one admission check. Checks are re-run on every
// navigation; nothing is cached.
type Decision string

const (
	// Checking means the session has not settled yet (still restoring from
	// durable storage). Render nothing; never the protected content, never a
	// redirect.
	Checking Decision = "checking"
	Admitted Decision = "admitted"
	// DeniedUnauthenticated and DeniedWrongRole share one redirect target:
	// the public entry route. A distinct forbidden page was considered and
	// deliberately not added (see DESIGN.md).
	DeniedUnauthenticated Decision = "denied_unauthenticated"
	DeniedWrongRole       Decision = "denied_wrong_role"
)

// PublicEntryRoute is where both denial outcomes redirect.
const PublicEntryRoute = "/"

// Protected view identifiers.
const (
	ViewDashboard    = "dashboard"
	ViewBookings     = "bookings"
	ViewServices     = "services"
	ViewStore        = "store"
	ViewSubscription = "subscription"
	ViewProfile      = "profile"
	ViewAnalytics    = "analytics"
	ViewAdmin        = "admin"
)

// Requirement is the declarative policy a view attaches. Zero value means any
// authenticated session is admitted.
type Requirement struct {
	RequiredRole model.Role // exact match; no hierarchy
}

// SessionReader is the read-only slice of the session store the guard needs.
type SessionReader interface {
	Status() session.Status
	User() *model.UserProfile
}

// Guard consults the session and a role capability table to admit or deny.
type Guard struct {
	session SessionReader
	views   map[model.Role]map[string]bool
}

// New builds a Guard with the default capability table.
func New(s SessionReader) *Guard {
	return &Guard{session: s, views: defaultCapabilities()}
}

// defaultCapabilities maps each role to the views it may open. The policy
// lives here once instead of being re-derived inside every view.
func defaultCapabilities() map[model.Role]map[string]bool {
	return map[model.Role]map[string]bool{
		model.RoleClient: set(ViewDashboard, ViewBookings, ViewProfile),
		model.RoleStoreManager: set(ViewDashboard, ViewBookings, ViewServices,
			ViewStore, ViewSubscription, ViewProfile, ViewAnalytics),
		model.RoleAdmin: set(ViewDashboard, ViewBookings, ViewServices,
			ViewStore, ViewSubscription, ViewProfile, ViewAnalytics, ViewAdmin),
	}
}

func set(views ...string) map[string]bool {
	m := make(map[string]bool, len(views))
	for _, v := range views {
		m[v] = true
	}
	return m
}

// Check runs the admission state machine against a view requirement.
func (g *Guard) Check(req Requirement) Decision {
	switch g.session.Status() {
	case session.StatusUninitialized, session.StatusLoading:
		return Checking
	case session.StatusAuthenticated:
		// fall through to the role check
	default:
		return DeniedUnauthenticated
	}
	if req.RequiredRole == "" {
		return Admitted
	}
	u := g.session.User()
	if u == nil || u.Role != req.RequiredRole {
		return DeniedWrongRole
	}
	return Admitted
}

// CheckView admits or denies a named view using the capability table.
func (g *Guard) CheckView(view string) Decision {
	switch g.session.Status() {
	case session.StatusUninitialized, session.StatusLoading:
		return Checking
	case session.StatusAuthenticated:
	default:
		return DeniedUnauthenticated
	}
	u := g.session.User()
	if u == nil || !g.views[u.Role][view] {
		return DeniedWrongRole
	}
	return Admitted
}

// Redirect returns the route a denied navigation lands on, or "" when the
// decision carries no redirect.
func Redirect(d Decision) string {
	if d == DeniedUnauthenticated || d == DeniedWrongRole {
		return PublicEntryRoute
	}
	return ""
}
