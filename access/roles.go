package access

import "github.com/pkg/errors"

// Role is a staff role. The set is closed: every role the backend can hand
// out is represented here, and anything else is rejected at login.
type Role string

const (
	RoleAdministrator   Role = "Administrator"
	RoleCashier         Role = "Cashier"
	RoleReceptionist    Role = "Receptionist"
	RoleInpatientStaff  Role = "Inpatient Staff"
	RoleOutpatientStaff Role = "Outpatient Staff"
)

// ErrUnknownRole is returned when the backend reports a role that is not in
// the closed set above.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole maps the role string returned by the auth API onto the closed
// Role set. Unknown values are an error, never a silent default.
func ParseRole(apiRole string) (Role, error) {
	switch Role(apiRole) {
	case RoleAdministrator, RoleCashier, RoleReceptionist, RoleInpatientStaff, RoleOutpatientStaff:
		return Role(apiRole), nil
	}
	return "", errors.Wrap(ErrUnknownRole, apiRole)
}

// Roles returns every role in the closed set.
func Roles() []Role {
	return []Role{
		RoleAdministrator,
		RoleCashier,
		RoleReceptionist,
		RoleInpatientStaff,
		RoleOutpatientStaff,
	}
}

// Feature identifies a protected functional area of the client. Routes
// declare the Feature they require and the guard checks it against the
// permission table.
type Feature string

const (
	FeatureInpatients     Feature = "inpatients"
	FeatureOutpatients    Feature = "outpatients"
	FeatureChanneling     Feature = "channeling"
	FeaturePayments       Feature = "payments"
	FeatureReports        Feature = "reports"
	FeatureSearch         Feature = "search"
	FeatureSearchPayments Feature = "search-payments"
	FeatureMaintenance    Feature = "maintenance"
	FeatureUserManagement Feature = "user-management"
)
