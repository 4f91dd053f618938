// Package guard decides whether navigation into a protected feature area is
// permitted, and owns the compensating redirect when it is not.
package guard

import (
	"github.com/careplus/go-frontdesk-client/access"
	"github.com/careplus/go-frontdesk-client/notify"
	"github.com/careplus/go-frontdesk-client/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Well-known routes the guard redirects to on denial.
const (
	RouteLogin   = "/login"
	RouteDefault = "/dashboard"
)

// Route declares a protected path and the feature it requires, the analog of
// a router's per-route data attribute.
type Route struct {
	Path    string
	Feature access.Feature
}

// ProtectedRoutes is the client's route table. Paths not listed here are not
// feature-gated (they still require a live session at the router level).
var ProtectedRoutes = []Route{
	{Path: "/inpatients", Feature: access.FeatureInpatients},
	{Path: "/outpatients", Feature: access.FeatureOutpatients},
	{Path: "/channeling", Feature: access.FeatureChanneling},
	{Path: "/payments", Feature: access.FeaturePayments},
	{Path: "/reports", Feature: access.FeatureReports},
}

// RequiredFeature returns the feature a path declares, or "" when the path
// is not in the table.
func RequiredFeature(path string) access.Feature {
	for _, r := range ProtectedRoutes {
		if r.Path == path {
			return r.Feature
		}
	}
	return ""
}

// IdentityProvider is the session manager's synchronous snapshot accessor.
// The guard never reads persisted storage directly; the manager is the
// single source of truth for identity.
type IdentityProvider interface {
	CurrentIdentity() *session.Identity
}

// Navigator performs the redirect side effect on denial.
type Navigator interface {
	NavigateTo(route string)
}

// Guard gates entry into protected feature areas.
type Guard struct {
	identities IdentityProvider
	nav        Navigator
	notifier   notify.Notifier
	log        zerolog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithLogger sets the structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Guard) { g.log = log }
}

// WithNotifier sets the sink for the user-visible denial messages.
func WithNotifier(n notify.Notifier) Option {
	return func(g *Guard) { g.notifier = n }
}

// New initialises a Guard with its required dependencies.
func New(identities IdentityProvider, nav Navigator, options ...Option) (*Guard, error) {
	if identities == nil {
		return nil, errors.New("[guard.New] identity provider is required")
	}
	if nav == nil {
		return nil, errors.New("[guard.New] navigator is required")
	}
	g := &Guard{identities: identities, nav: nav, notifier: notify.Discard{}, log: zerolog.Nop()}
	for _, opt := range options {
		opt(g)
	}
	return g, nil
}

// CanEnter reports whether the current identity may enter feature. A denial
// is never silent: no live session redirects to the login route, everything
// else redirects to the default route.
func (g *Guard) CanEnter(feature access.Feature) bool {
	identity := g.identities.CurrentIdentity()
	if identity == nil {
		g.notifier.Error("Please login to continue.")
		g.nav.NavigateTo(RouteLogin)
		return false
	}
	if feature == "" {
		g.log.Warn().Msg("navigation request without a required feature")
		g.notifier.Error("You do not have access to this feature.")
		g.nav.NavigateTo(RouteDefault)
		return false
	}
	if !access.Allowed(identity.Role, feature) {
		g.log.Info().
			Str("role", string(identity.Role)).
			Str("feature", string(feature)).
			Msg("navigation denied")
		g.notifier.Error("You do not have access to this feature.")
		g.nav.NavigateTo(RouteDefault)
		return false
	}
	return true
}

// CanEnterPath resolves the path's declared feature and applies CanEnter.
func (g *Guard) CanEnterPath(path string) bool {
	return g.CanEnter(RequiredFeature(path))
}
