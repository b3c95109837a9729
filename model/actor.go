package model

// Role names a group membership in the organization directory.
type Role string

// Roles referenced by the built-in workflow definitions.
const (
	RoleCustomerService       Role = "customer_service"
	RoleSeniorCustomerService Role = "senior_customer_service"
	RoleFinancialManager      Role = "financial_manager"
	RoleAdministrationManager Role = "administration_manager"
	RoleHR                    Role = "hr"
	RoleProductionManager     Role = "production_manager"
	RoleServiceManager        Role = "service_manager"
	RoleSubteam               Role = "subteam"
)

// Actor is the identity on whose behalf an operation runs.  Roles are
// resolved by the role directory; Superuser bypasses stage gating entirely.
type Actor struct {
	ID        string `json:"id"`
	Roles     []Role `json:"roles,omitempty"`
	Superuser bool   `json:"superuser,omitempty"`
}

// HasRole reports whether the actor holds the supplied role.
func (a *Actor) HasRole(role Role) bool {
	if a == nil {
		return false
	}
	for _, candidate := range a.Roles {
		if candidate == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the actor holds at least one of the supplied roles.
func (a *Actor) HasAnyRole(roles ...Role) bool {
	for _, role := range roles {
		if a.HasRole(role) {
			return true
		}
	}
	return false
}
