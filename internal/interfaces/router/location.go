package router

import (
	"context"
	"sync"

	"github.com/storefront/core/internal/domain/shared"
)

// FragmentChangedType is the event type published when the location
// fragment changes.
const FragmentChangedType = "router.fragment_changed"

// FragmentChangedEvent announces a new location fragment
type FragmentChangedEvent struct {
	shared.BaseDomainEvent
	Fragment string `json:"fragment"`
}

// NewFragmentChangedEvent creates a fragment change event
func NewFragmentChangedEvent(fragment string) *FragmentChangedEvent {
	return &FragmentChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(FragmentChangedType),
		Fragment:        fragment,
	}
}

// Location models the address-bar fragment and its history: the portion of
// the URL after '#', which is the sole routing signal. Changes are
// announced on the event bus.
type Location struct {
	mu      sync.Mutex
	bus     shared.EventPublisher
	history []string
}

// NewLocation creates a location starting at the given fragment. An empty
// string is the blank address bar.
func NewLocation(bus shared.EventPublisher, initial string) *Location {
	return &Location{
		bus:     bus,
		history: []string{initial},
	}
}

// Fragment returns the current fragment
func (l *Location) Fragment() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.history[len(l.history)-1]
}

// Set navigates to the fragment, creating a new history entry. Setting the
// fragment to its current value is a no-op and fires no change, matching
// address-bar semantics.
func (l *Location) Set(fragment string) {
	l.mu.Lock()
	if l.history[len(l.history)-1] == fragment {
		l.mu.Unlock()
		return
	}
	l.history = append(l.history, fragment)
	l.mu.Unlock()

	l.publishChange(fragment)
}

// Replace swaps the current history entry for the fragment without
// creating a new one.
func (l *Location) Replace(fragment string) {
	l.mu.Lock()
	if l.history[len(l.history)-1] == fragment {
		l.mu.Unlock()
		return
	}
	l.history[len(l.history)-1] = fragment
	l.mu.Unlock()

	l.publishChange(fragment)
}

// Back pops one history entry. At the start of history it is a no-op.
func (l *Location) Back() {
	l.mu.Lock()
	if len(l.history) < 2 {
		l.mu.Unlock()
		return
	}
	l.history = l.history[:len(l.history)-1]
	fragment := l.history[len(l.history)-1]
	l.mu.Unlock()

	l.publishChange(fragment)
}

// Depth returns the history depth (for tests)
func (l *Location) Depth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.history)
}

func (l *Location) publishChange(fragment string) {
	_ = l.bus.Publish(context.Background(), NewFragmentChangedEvent(fragment))
}
