package storage

// Store is the durable key-value storage the application persists into.
// It mirrors browser local storage: flat string keys, string values, no
// namespacing beyond the key itself.
type Store interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool, error)
	// Set writes the value for key, overwriting any previous value
	Set(key, value string) error
	// Delete removes the key entirely; deleting an absent key is a no-op
	Delete(key string) error
	// Close releases any underlying resources
	Close() error
}

// Well-known storage keys. Three independent records plus the cookie jar;
// there is no shared namespace object.
const (
	KeyState   = "storefront_state"
	KeyUsers   = "storefront_users"
	KeySession = "storefront_session"
	KeyCookies = "storefront_cookies"
)

// CookieRole is the name of the legacy role-only cookie.
const CookieRole = "storefront_user"
