package storage

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// cookieEntry is one named value with an absolute expiry
type cookieEntry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CookieJar models the legacy browser cookie channel: named string values
// with an explicit expiry, persisted through a Store under a single key.
// Expired cookies read as absent. The jar exists so a session established
// through the cookie-only path still resolves to a role.
type CookieJar struct {
	mu      sync.Mutex
	store   Store
	key     string
	logger  *zap.Logger
	now     func() time.Time
	entries map[string]cookieEntry
}

// NewCookieJar creates a jar persisted under the given store key and loads
// whatever was previously written. Corrupt stored data is logged and
// discarded.
func NewCookieJar(store Store, key string, logger *zap.Logger) *CookieJar {
	j := &CookieJar{
		store:   store,
		key:     key,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]cookieEntry),
	}
	raw, ok, err := store.Get(key)
	if err != nil {
		logger.Warn("failed to load cookies", zap.Error(err))
		return j
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &j.entries); err != nil {
			logger.Warn("discarding corrupt cookie data", zap.Error(err))
			j.entries = make(map[string]cookieEntry)
		}
	}
	return j
}

// SetClock overrides the jar's time source (for tests)
func (j *CookieJar) SetClock(now func() time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.now = now
}

// Set writes a cookie that expires after ttl
func (j *CookieJar) Set(name, value string, ttl time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries[name] = cookieEntry{Value: value, ExpiresAt: j.now().Add(ttl)}
	j.persist()
}

// Get returns the cookie value, treating expired cookies as absent
func (j *CookieJar) Get(name string) (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	e, ok := j.entries[name]
	if !ok {
		return "", false
	}
	if !j.now().Before(e.ExpiresAt) {
		delete(j.entries, name)
		j.persist()
		return "", false
	}
	return e.Value, true
}

// Expire removes the cookie immediately
func (j *CookieJar) Expire(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.entries, name)
	j.persist()
}

func (j *CookieJar) persist() {
	raw, err := json.Marshal(j.entries)
	if err != nil {
		j.logger.Error("failed to serialize cookies", zap.Error(err))
		return
	}
	if err := j.store.Set(j.key, string(raw)); err != nil {
		j.logger.Error("failed to persist cookies", zap.Error(err))
	}
}
