package session

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/storefront/core/internal/domain/identity"
	"github.com/storefront/core/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// Result is the outcome of a login or registration attempt. Failures are
// values, never errors: Message carries the user-facing explanation.
type Result struct {
	Success bool
	Role    identity.Role
	User    *identity.User
	Message string
}

// Session is the answer to "who is logged in". A record restored from the
// legacy cookie path carries the role only.
type Session struct {
	Role      identity.Role `json:"role"`
	Email     string        `json:"email,omitempty"`
	Name      string        `json:"name,omitempty"`
	LoginTime time.Time     `json:"loginTime,omitzero"`
}

// RegisterInput carries the registration form fields
type RegisterInput struct {
	Email     string        `validate:"required,email"`
	Password  string        `validate:"required,min=5"`
	FirstName string        `validate:"max=100"`
	LastName  string        `validate:"max=100"`
	Name      string        `validate:"max=200"`
	Role      identity.Role `validate:"required,oneof=consumer business dropshipper supplier"`
}

// Service validates credentials and owns the session lifecycle. It is kept
// apart from the application state store: a session must also resolve
// through the legacy role cookie when the rich record is missing.
type Service struct {
	mu        sync.Mutex
	storage   storage.Store
	jar       *storage.CookieJar
	logger    *zap.Logger
	validate  *validator.Validate
	builtins  []identity.BuiltinAccount
	cookieTTL time.Duration
}

// New creates a session service backed by st for user and session records
// and jar for the legacy role cookie.
func New(st storage.Store, jar *storage.CookieJar, logger *zap.Logger, builtins []identity.BuiltinAccount, cookieTTL time.Duration) *Service {
	return &Service{
		storage:   st,
		jar:       jar,
		logger:    logger,
		validate:  validator.New(),
		builtins:  builtins,
		cookieTTL: cookieTTL,
	}
}

// Init seeds the registered-users record with an empty list when absent
func (s *Service) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok, err := s.storage.Get(storage.KeyUsers)
	if err != nil {
		s.logger.Warn("failed to read users", zap.Error(err))
		return
	}
	if !ok {
		if err := s.storage.Set(storage.KeyUsers, "[]"); err != nil {
			s.logger.Warn("failed to seed users", zap.Error(err))
		}
	}
}

// Login checks the builtin credential pairs first, then scans registered
// users. On success the session is established. Never returns an error for
// bad credentials.
func (s *Service) Login(email, password string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acct := range s.builtins {
		if acct.Matches(email, password) {
			s.establishLocked(acct.Role, acct.Email, acct.DisplayName)
			return Result{Success: true, Role: acct.Role}
		}
	}

	users := s.loadUsersLocked()
	needle := strings.ToLower(strings.TrimSpace(email))
	for i := range users {
		if users[i].Email == needle && users[i].VerifyPassword(password) {
			u := users[i]
			s.establishLocked(u.Role, u.Email, u.DisplayName())
			return Result{Success: true, Role: u.Role, User: u.Sanitized()}
		}
	}

	return Result{Success: false, Message: "Invalid email or password"}
}

// Register creates a new user, stores it, and auto-establishes a session.
// Duplicate and builtin-reserved emails fail with their fixed messages and
// leave the stored user list untouched.
func (s *Service) Register(input RegisterInput) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate.Struct(input); err != nil {
		return Result{Success: false, Message: "Invalid registration details"}
	}

	users := s.loadUsersLocked()
	needle := strings.ToLower(strings.TrimSpace(input.Email))
	for i := range users {
		if users[i].Email == needle {
			return Result{Success: false, Message: "Email already registered"}
		}
	}
	for _, acct := range s.builtins {
		if acct.ReservedEmail(input.Email) {
			return Result{Success: false, Message: "Cannot register with this email"}
		}
	}

	user, err := identity.NewUser(s.nextUserID(users), input.Email, input.Password, input.Role)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Name = strings.TrimSpace(input.Name)

	users = append(users, user)
	if !s.saveUsersLocked(users) {
		return Result{Success: false, Message: "Registration failed"}
	}

	s.establishLocked(user.Role, user.Email, user.DisplayName())
	return Result{Success: true, Role: user.Role, User: user.Sanitized()}
}

// SetUserSession establishes a session for the given role and user record.
// Two redundant representations are written: the role-only legacy cookie
// with the configured TTL, and the rich session record.
func (s *Service) SetUserSession(role identity.Role, user *identity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email, name := "", ""
	if user != nil {
		email = user.Email
		name = user.DisplayName()
	}
	s.establishLocked(role, email, name)
}

// establishLocked writes both session representations. Caller holds the lock.
func (s *Service) establishLocked(role identity.Role, email, name string) {
	s.jar.Set(storage.CookieRole, role.String(), s.cookieTTL)

	if email == "" && role == identity.RoleAdmin {
		for _, acct := range s.builtins {
			if acct.Role == identity.RoleAdmin {
				email = acct.Email
				break
			}
		}
	}

	rec := Session{Role: role, Email: email, Name: name, LoginTime: time.Now()}
	raw, err := json.Marshal(rec)
	if err != nil {
		s.logger.Error("failed to serialize session", zap.Error(err))
		return
	}
	if err := s.storage.Set(storage.KeySession, string(raw)); err != nil {
		s.logger.Error("failed to persist session", zap.Error(err))
	}
}

// UserSession resolves the current session. The rich record is the primary
// source; when it is absent or unparsable the legacy role cookie is
// consulted and yields a role-only session. Returns nil when neither
// source has data.
func (s *Service) UserSession() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.storage.Get(storage.KeySession)
	if err != nil {
		s.logger.Warn("failed to read session", zap.Error(err))
	} else if ok {
		var rec Session
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			s.logger.Error("failed to parse session", zap.Error(err))
		} else {
			return &rec
		}
	}

	if role, ok := s.jar.Get(storage.CookieRole); ok {
		return &Session{Role: identity.Role(role)}
	}
	return nil
}

// Logout expires the legacy cookie immediately and deletes the session
// record. Cart and wishlist are independent lifecycles and stay untouched.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jar.Expire(storage.CookieRole)
	if err := s.storage.Delete(storage.KeySession); err != nil {
		s.logger.Warn("failed to delete session record", zap.Error(err))
	}
}

// loadUsersLocked reads the registered-user list, treating corrupt stored
// JSON as an empty list. Caller holds the lock.
func (s *Service) loadUsersLocked() []*identity.User {
	raw, ok, err := s.storage.Get(storage.KeyUsers)
	if err != nil {
		s.logger.Warn("failed to read users", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var users []*identity.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		s.logger.Error("discarding corrupt user list", zap.Error(err))
		return nil
	}
	return users
}

// saveUsersLocked writes the registered-user list. Caller holds the lock.
func (s *Service) saveUsersLocked(users []*identity.User) bool {
	raw, err := json.Marshal(users)
	if err != nil {
		s.logger.Error("failed to serialize users", zap.Error(err))
		return false
	}
	if err := s.storage.Set(storage.KeyUsers, string(raw)); err != nil {
		s.logger.Error("failed to persist users", zap.Error(err))
		return false
	}
	return true
}

// nextUserID derives a creation-time id, bumping past any collision with
// an existing user.
func (s *Service) nextUserID(users []*identity.User) int64 {
	id := time.Now().UnixMilli()
	for {
		taken := false
		for _, u := range users {
			if u.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		id++
	}
}
