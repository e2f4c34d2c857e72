package domain

import "time"

// UserRole determines which capabilities a user holds at the request boundary.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleAccountant UserRole = "ACCOUNTANT"
	RoleSales      UserRole = "SALES"
)

// Capability names an action class that can be granted to a role.
type Capability string

const (
	CapReadAll          Capability = "READ_ALL"
	CapManageAccounts   Capability = "MANAGE_ACCOUNTS"
	CapManageJournals   Capability = "MANAGE_JOURNALS"
	CapRunLifecycle     Capability = "RUN_LIFECYCLE"     // validate / calculate / lock
	CapOverrideStatus   Capability = "OVERRIDE_STATUS"   // administrative status change
	CapManageSales      Capability = "MANAGE_SALES"      // customers, invoices, receipts
	CapManageUsers      Capability = "MANAGE_USERS"      // user administration
	CapManagePeriodsDef Capability = "MANAGE_PERIOD_DEF" // create/update/delete period rows
)

// roleCapabilities is the capability set evaluated before any guarded operation runs.
var roleCapabilities = map[UserRole]map[Capability]bool{
	RoleAdmin: {
		CapReadAll: true, CapManageAccounts: true, CapManageJournals: true,
		CapRunLifecycle: true, CapOverrideStatus: true, CapManageSales: true,
		CapManageUsers: true, CapManagePeriodsDef: true,
	},
	RoleAccountant: {
		CapReadAll: true, CapManageAccounts: true, CapManageJournals: true,
		CapRunLifecycle: true, CapManagePeriodsDef: true,
	},
	RoleSales: {
		CapReadAll: true, CapManageSales: true,
	},
}

// HasCapability reports whether the role is granted the capability.
func (r UserRole) HasCapability(c Capability) bool {
	caps, ok := roleCapabilities[r]
	return ok && caps[c]
}

// IsValidRole reports whether the role is one of the known values.
func IsValidRole(r UserRole) bool {
	_, ok := roleCapabilities[r]
	return ok
}

// User represents an application user who can authenticate and act on entities.
type User struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	AuditFields
	DeletedAt *time.Time

	// Refresh token state for the auth flow.
	RefreshTokenHash       string
	RefreshTokenExpiryTime *time.Time
}
