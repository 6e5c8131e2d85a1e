package identity

// Role tags a user for pricing and navigation. It is not a security
// boundary: it lives in client-controlled storage.
type Role string

const (
	RoleConsumer    Role = "consumer"
	RoleBusiness    Role = "business"
	RoleDropshipper Role = "dropshipper"
	RoleSupplier    Role = "supplier"
	RoleWarehouse   Role = "warehouse"
	RoleAdmin       Role = "admin"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleConsumer, RoleBusiness, RoleDropshipper, RoleSupplier, RoleWarehouse, RoleAdmin:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// SelfRegisterable reports whether the role can be chosen at registration.
// Admin and warehouse accounts exist only as builtin credential pairs.
func (r Role) SelfRegisterable() bool {
	switch r {
	case RoleConsumer, RoleBusiness, RoleDropshipper, RoleSupplier:
		return true
	}
	return false
}
