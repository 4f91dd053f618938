package guard_test

import (
	"testing"

	"github.com/careplus/go-frontdesk-client/access"
	"github.com/careplus/go-frontdesk-client/guard"
	"github.com/careplus/go-frontdesk-client/notify/notifyfakes"
	"github.com/careplus/go-frontdesk-client/session"
	"github.com/stretchr/testify/require"
)

type stubIdentities struct {
	identity *session.Identity
}

func (s *stubIdentities) CurrentIdentity() *session.Identity { return s.identity }

type recordingNavigator struct {
	routes []string
}

func (n *recordingNavigator) NavigateTo(route string) { n.routes = append(n.routes, route) }

func setupGuard(t *testing.T, identity *session.Identity) (*guard.Guard, *recordingNavigator) {
	t.Helper()
	nav := &recordingNavigator{}
	g, err := guard.New(&stubIdentities{identity: identity}, nav)
	require.NoError(t, err)
	return g, nav
}

func TestCanEnterDeniesWithoutSession(t *testing.T) {
	g, nav := setupGuard(t, nil)

	for _, feature := range []access.Feature{
		access.FeaturePayments,
		access.FeatureInpatients,
		access.Feature(""),
		access.Feature("unknown"),
	} {
		require.False(t, g.CanEnter(feature))
	}
	// Every denial redirected to login.
	require.Equal(t, []string{guard.RouteLogin, guard.RouteLogin, guard.RouteLogin, guard.RouteLogin}, nav.routes)
}

func TestCanEnterCashierPayments(t *testing.T) {
	g, nav := setupGuard(t, &session.Identity{UserID: "U-1", Role: access.RoleCashier})

	require.True(t, g.CanEnter(access.FeaturePayments))
	require.Empty(t, nav.routes, "allowed navigation must not redirect")
}

func TestCanEnterReceptionistPaymentsDenied(t *testing.T) {
	g, nav := setupGuard(t, &session.Identity{UserID: "U-2", Role: access.RoleReceptionist})

	require.False(t, g.CanEnter(access.FeaturePayments))
	require.Equal(t, []string{guard.RouteDefault}, nav.routes)
}

func TestCanEnterMissingFeatureTag(t *testing.T) {
	g, nav := setupGuard(t, &session.Identity{UserID: "U-3", Role: access.RoleAdministrator})

	require.False(t, g.CanEnter(""))
	require.Equal(t, []string{guard.RouteDefault}, nav.routes)
}

func TestCanEnterPath(t *testing.T) {
	g, nav := setupGuard(t, &session.Identity{UserID: "U-4", Role: access.RoleInpatientStaff})

	require.True(t, g.CanEnterPath("/inpatients"))
	require.False(t, g.CanEnterPath("/payments"))
	// Unlisted paths carry no feature tag and are denied here.
	require.False(t, g.CanEnterPath("/somewhere-else"))
	require.Equal(t, []string{guard.RouteDefault, guard.RouteDefault}, nav.routes)
}

func TestDenialEmitsNotification(t *testing.T) {
	notifier := notifyfakes.NewFakeNotifier()
	nav := &recordingNavigator{}

	// No live session: denial message alongside the login redirect.
	g, err := guard.New(&stubIdentities{}, nav, guard.WithNotifier(notifier))
	require.NoError(t, err)
	require.False(t, g.CanEnter(access.FeaturePayments))
	require.Equal(t, []string{"Please login to continue."}, notifier.Errors())

	// Role denial: access message alongside the default redirect.
	g, err = guard.New(&stubIdentities{identity: &session.Identity{UserID: "U-5", Role: access.RoleReceptionist}}, nav,
		guard.WithNotifier(notifier))
	require.NoError(t, err)
	require.False(t, g.CanEnter(access.FeaturePayments))
	require.Equal(t, []string{"Please login to continue.", "You do not have access to this feature."}, notifier.Errors())

	// Allowed navigation stays silent.
	require.True(t, g.CanEnter(access.FeatureChanneling))
	require.Len(t, notifier.Errors(), 2)
}

func TestRequiredFeature(t *testing.T) {
	require.Equal(t, access.FeatureReports, guard.RequiredFeature("/reports"))
	require.Equal(t, access.Feature(""), guard.RequiredFeature("/about"))
}
