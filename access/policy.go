package access

// rolePermissions maps each role to the features it may enter.
// This is the single source of truth for the authorisation model;
// the route guard and the navigation panel both read it through
// the functions below.
var rolePermissions = map[Role][]Feature{
	RoleAdministrator: {
		FeatureInpatients,
		FeatureOutpatients,
		FeatureChanneling,
		FeaturePayments,
		FeatureReports,
		FeatureSearch,
		FeatureMaintenance,
		FeatureUserManagement,
	},
	RoleCashier: {
		FeaturePayments,
		FeatureSearchPayments,
	},
	RoleReceptionist: {
		FeatureChanneling,
		FeatureSearch,
	},
	RoleInpatientStaff: {
		FeatureInpatients,
	},
	RoleOutpatientStaff: {
		FeatureOutpatients,
	},
}

// Allowed returns true if the given role may enter the given feature.
// Unknown roles and unknown features are never allowed.
func Allowed(role Role, feature Feature) bool {
	features, ok := rolePermissions[role]
	if !ok {
		return false
	}
	for _, f := range features {
		if f == feature {
			return true
		}
	}
	return false
}

// FeaturesForRole returns all features the role may enter.
// Returns nil for unknown roles.
func FeaturesForRole(role Role) []Feature {
	features := rolePermissions[role]
	if features == nil {
		return nil
	}
	result := make([]Feature, len(features))
	copy(result, features)
	return result
}
