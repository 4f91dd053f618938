package access_test

import (
	"testing"

	"github.com/careplus/go-frontdesk-client/access"
	"github.com/stretchr/testify/require"
)

func TestAllowedAdministrator(t *testing.T) {
	// Administrator may enter everything except the cashier-only
	// payment search.
	for _, feature := range []access.Feature{
		access.FeatureInpatients,
		access.FeatureOutpatients,
		access.FeatureChanneling,
		access.FeaturePayments,
		access.FeatureReports,
		access.FeatureSearch,
		access.FeatureMaintenance,
		access.FeatureUserManagement,
	} {
		require.True(t, access.Allowed(access.RoleAdministrator, feature), "administrator should access %s", feature)
	}
	require.False(t, access.Allowed(access.RoleAdministrator, access.FeatureSearchPayments))
}

func TestAllowedCashier(t *testing.T) {
	require.True(t, access.Allowed(access.RoleCashier, access.FeaturePayments))
	require.True(t, access.Allowed(access.RoleCashier, access.FeatureSearchPayments))
	require.False(t, access.Allowed(access.RoleCashier, access.FeatureInpatients))
	require.False(t, access.Allowed(access.RoleCashier, access.FeatureReports))
}

func TestAllowedReceptionistDeniedPayments(t *testing.T) {
	require.False(t, access.Allowed(access.RoleReceptionist, access.FeaturePayments))
	require.True(t, access.Allowed(access.RoleReceptionist, access.FeatureChanneling))
}

func TestAllowedDefaultDeny(t *testing.T) {
	// Unknown features and unknown roles are never allowed.
	for _, role := range access.Roles() {
		require.False(t, access.Allowed(role, access.Feature("billing-v2")))
		require.False(t, access.Allowed(role, access.Feature("")))
	}
	require.False(t, access.Allowed(access.Role("Janitor"), access.FeaturePayments))
}

func TestFeaturesForRole(t *testing.T) {
	features := access.FeaturesForRole(access.RoleCashier)
	require.ElementsMatch(t, []access.Feature{access.FeaturePayments, access.FeatureSearchPayments}, features)

	require.Nil(t, access.FeaturesForRole(access.Role("Janitor")))

	// Mutating the returned slice must not corrupt the table.
	features[0] = access.FeatureUserManagement
	require.False(t, access.Allowed(access.RoleCashier, access.FeatureUserManagement))
}

func TestParseRole(t *testing.T) {
	role, err := access.ParseRole("Inpatient Staff")
	require.NoError(t, err)
	require.Equal(t, access.RoleInpatientStaff, role)

	_, err = access.ParseRole("SuperUser")
	require.ErrorIs(t, err, access.ErrUnknownRole)

	_, err = access.ParseRole("")
	require.ErrorIs(t, err, access.ErrUnknownRole)
}
