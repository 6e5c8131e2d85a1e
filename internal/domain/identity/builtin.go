package identity

import "strings"

// BuiltinAccount is a fixed credential pair recognized unconditionally by
// the login check. Builtin accounts never appear in the registered-user
// list and their roles are not self-registerable.
type BuiltinAccount struct {
	Email       string
	Password    string
	Role        Role
	DisplayName string
}

// Matches reports whether the given credentials are this builtin account.
func (a BuiltinAccount) Matches(email, password string) bool {
	return strings.EqualFold(strings.TrimSpace(email), a.Email) && password == a.Password
}

// ReservedEmail reports whether the email collides with this account.
func (a BuiltinAccount) ReservedEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), a.Email)
}

// DefaultBuiltinAccounts returns the demo admin and warehouse accounts.
func DefaultBuiltinAccounts() []BuiltinAccount {
	return []BuiltinAccount{
		{Email: "admin@gmail.com", Password: "12345", Role: RoleAdmin, DisplayName: "Admin User"},
		{Email: "warehouse@gmail.com", Password: "123456", Role: RoleWarehouse, DisplayName: "Warehouse Manager"},
	}
}
