package domain

import "time"

// Role represents the marketplace role of a user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

// User represents a participant in the marketplace.
type User struct {
	ID        string
	Name      string
	Phone     string
	Role      Role
	CreatedAt time.Time
}

// ValidRole reports whether the given role is one of the known roles.
func ValidRole(role Role) bool {
	switch role {
	case RoleCustomer, RoleDriver, RoleMerchant, RoleAdmin:
		return true
	}
	return false
}
