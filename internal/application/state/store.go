package state

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/core/internal/domain/catalog"
	"github.com/storefront/core/internal/domain/identity"
	"github.com/storefront/core/internal/domain/shopping"
	"github.com/storefront/core/internal/infrastructure/storage"
	"github.com/storefront/core/internal/infrastructure/timer"
	"go.uber.org/zap"
)

// Snapshot is a deep copy of the application state. Mutating a snapshot
// never affects the store; all writes go through the named operations.
type Snapshot struct {
	CurrentUser   *identity.User
	UserRole      identity.Role
	Cart          []shopping.Line
	Wishlist      []catalog.Product
	CurrentPage   string
	Filters       map[string]string
	SearchQuery   string
	Notifications []Notification
}

// Patch carries partial updates for the non-structural state fields.
// Cart and wishlist are deliberately absent: those mutate only through
// their dedicated operations so persistence cannot be bypassed.
type Patch struct {
	UserRole    *identity.Role
	CurrentPage *string
	SearchQuery *string
	Filters     map[string]string // replaces the filter map when non-nil
}

// persistedState is the durable shape. Notifications are ephemeral and
// excluded from the round-trip.
type persistedState struct {
	CurrentUser *identity.User    `json:"currentUser"`
	UserRole    identity.Role     `json:"userRole"`
	Cart        []shopping.Line   `json:"cart"`
	Wishlist    []catalog.Product `json:"wishlist"`
	CurrentPage string            `json:"currentPage"`
	Filters     map[string]string `json:"filters"`
	SearchQuery string            `json:"searchQuery"`
}

// Store is the single authoritative record of cart, wishlist, role and
// notifications. Every mutation persists synchronously to the backing
// key-value store under one fixed key.
type Store struct {
	mu      sync.Mutex
	storage storage.Store
	logger  *zap.Logger
	sched   timer.Scheduler
	ttl     time.Duration
	display DisplayHook

	currentUser   *identity.User
	role          identity.Role
	cart          *shopping.Cart
	wishlist      *shopping.Wishlist
	currentPage   string
	filters       map[string]string
	searchQuery   string
	notifications []Notification

	pending    map[int64]timer.Handle
	lastNoteID int64
}

// New creates a state store persisting to st. Notifications expire after
// ttl through sched.
func New(st storage.Store, logger *zap.Logger, sched timer.Scheduler, ttl time.Duration) *Store {
	s := &Store{
		storage: st,
		logger:  logger,
		sched:   sched,
		ttl:     ttl,
		pending: make(map[int64]timer.Handle),
	}
	s.resetLocked()
	return s
}

// SetDisplayHook registers the view-layer notification callback
func (s *Store) SetDisplayHook(hook DisplayHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display = hook
}

// resetLocked restores in-memory defaults. Caller holds the lock (or is
// the constructor).
func (s *Store) resetLocked() {
	s.currentUser = nil
	s.role = identity.RoleConsumer
	s.cart = shopping.NewCart()
	s.wishlist = shopping.NewWishlist()
	s.currentPage = "home"
	s.filters = make(map[string]string)
	s.searchQuery = ""
	s.notifications = make([]Notification, 0)
}

// Init loads the persisted state, if present and well-formed, over the
// defaults. Malformed stored data is logged and discarded; Init never
// fails because of it.
func (s *Store) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.storage.Get(storage.KeyState)
	if err != nil {
		s.logger.Warn("failed to read persisted state", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	var saved persistedState
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		s.logger.Error("failed to load state", zap.Error(err))
		return
	}

	s.currentUser = saved.CurrentUser
	if saved.UserRole != "" {
		s.role = saved.UserRole
	}
	s.cart = shopping.NewCartFromLines(saved.Cart)
	s.wishlist = shopping.NewWishlistFromItems(saved.Wishlist)
	if saved.CurrentPage != "" {
		s.currentPage = saved.CurrentPage
	}
	if saved.Filters != nil {
		s.filters = saved.Filters
	}
	s.searchQuery = saved.SearchQuery
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user *identity.User
	if s.currentUser != nil {
		c := *s.currentUser
		user = &c
	}
	filters := make(map[string]string, len(s.filters))
	for k, v := range s.filters {
		filters[k] = v
	}
	notes := make([]Notification, len(s.notifications))
	copy(notes, s.notifications)

	return Snapshot{
		CurrentUser:   user,
		UserRole:      s.role,
		Cart:          s.cart.Lines(),
		Wishlist:      s.wishlist.Items(),
		CurrentPage:   s.currentPage,
		Filters:       filters,
		SearchQuery:   s.searchQuery,
		Notifications: notes,
	}
}

// Apply shallow-merges the patch into state and persists
func (s *Store) Apply(p Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.UserRole != nil {
		s.role = *p.UserRole
	}
	if p.CurrentPage != nil {
		s.currentPage = *p.CurrentPage
	}
	if p.SearchQuery != nil {
		s.searchQuery = *p.SearchQuery
	}
	if p.Filters != nil {
		s.filters = p.Filters
	}
	s.persistLocked()
}

// AddToCart merges the quantity into the existing line for the product, or
// appends a new line, then persists and posts a success notification.
func (s *Store) AddToCart(product catalog.Product, quantity int) error {
	s.mu.Lock()
	if err := s.cart.Add(product, quantity); err != nil {
		s.mu.Unlock()
		return err
	}
	s.persistLocked()
	s.mu.Unlock()

	s.Notify("Product added to cart", NotificationSuccess)
	return nil
}

// RemoveFromCart removes the line by product id. Removing an absent
// product is a no-op, but still persists and posts the notification.
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	s.cart.Remove(productID)
	s.persistLocked()
	s.mu.Unlock()

	s.Notify("Product removed from cart", NotificationInfo)
}

// UpdateCartQuantity overwrites the quantity of the matching line. A
// quantity of zero or less removes the line instead. No line is created
// for an unknown product.
func (s *Store) UpdateCartQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.mu.Lock()
		removed := s.cart.Remove(productID)
		s.persistLocked()
		s.mu.Unlock()
		if removed {
			s.Notify("Product removed from cart", NotificationInfo)
		}
		return
	}

	s.mu.Lock()
	s.cart.SetQuantity(productID, quantity)
	s.persistLocked()
	s.mu.Unlock()
}

// ClearCart empties the cart and persists
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.persistLocked()
}

// CartTotal sums unit price times quantity across all lines. Business
// buyers are charged the bulk price.
func (s *Store) CartTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total(s.role)
}

// CartCount sums quantities across all lines
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

// AddToWishlist inserts the product unless already present. The success
// notification fires either way, matching the storefront's behavior.
func (s *Store) AddToWishlist(product catalog.Product) {
	s.mu.Lock()
	if s.wishlist.Add(product) {
		s.persistLocked()
	}
	s.mu.Unlock()

	s.Notify("Added to wishlist", NotificationSuccess)
}

// RemoveFromWishlist drops the product by id and persists
func (s *Store) RemoveFromWishlist(productID string) {
	s.mu.Lock()
	s.wishlist.Remove(productID)
	s.persistLocked()
	s.mu.Unlock()

	s.Notify("Removed from wishlist", NotificationInfo)
}

// IsInWishlist reports wishlist membership by product id
func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Contains(productID)
}

// Notify appends a notification to the feed, invokes the display hook if
// one is registered, and schedules removal after the store's TTL. The
// expiry handle is kept so Close can cancel it.
func (s *Store) Notify(message string, kind NotificationType) {
	s.mu.Lock()
	id := time.Now().UnixMilli()
	if id <= s.lastNoteID {
		id = s.lastNoteID + 1
	}
	s.lastNoteID = id

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Message:   message,
		Type:      kind,
		Timestamp: time.Now(),
	})
	hook := s.display
	s.pending[id] = s.sched.AfterFunc(s.ttl, func() {
		s.expire(id)
	})
	s.mu.Unlock()

	if hook != nil {
		hook(message, kind)
	}
}

// Notifications returns a copy of the live notification feed
func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes := make([]Notification, len(s.notifications))
	copy(notes, s.notifications)
	return notes
}

// expire removes a notification from the feed once its TTL elapses
func (s *Store) expire(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
}

// SetUser sets the active role and user record and persists
func (s *Store) SetUser(role identity.Role, user *identity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = role
	s.currentUser = user
	s.persistLocked()
}

// User returns the current user record, or nil when logged out
func (s *Store) User() *identity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return nil
	}
	c := *s.currentUser
	return &c
}

// UserRole returns the active role, defaulting to consumer
func (s *Store) UserRole() identity.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role == "" {
		return identity.RoleConsumer
	}
	return s.role
}

// Clear resets the in-memory state to defaults and deletes the persisted
// record entirely. Pending notification expiries are cancelled.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPendingLocked()
	s.resetLocked()
	if err := s.storage.Delete(storage.KeyState); err != nil {
		s.logger.Error("failed to delete persisted state", zap.Error(err))
	}
}

// Close cancels all pending notification expiries
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPendingLocked()
}

func (s *Store) cancelPendingLocked() {
	for id, h := range s.pending {
		h.Cancel()
		delete(s.pending, id)
	}
}

// persistLocked serializes the full state and writes it through to the
// fixed storage key. Caller holds the lock. Write failures are logged and
// never propagated.
func (s *Store) persistLocked() {
	p := persistedState{
		CurrentUser: s.currentUser,
		UserRole:    s.role,
		Cart:        s.cart.Lines(),
		Wishlist:    s.wishlist.Items(),
		CurrentPage: s.currentPage,
		Filters:     s.filters,
		SearchQuery: s.searchQuery,
	}
	raw, err := json.Marshal(p)
	if err != nil {
		s.logger.Error("failed to serialize state", zap.Error(err))
		return
	}
	if err := s.storage.Set(storage.KeyState, string(raw)); err != nil {
		s.logger.Error("failed to persist state", zap.Error(err))
	}
}
