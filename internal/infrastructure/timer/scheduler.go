package timer

import (
	"sync"
	"time"
)

// Handle is a cancellable scheduled callback. Cancel reports whether the
// callback was stopped before firing.
type Handle interface {
	Cancel() bool
}

// Scheduler schedules one-shot callbacks. The owning service keeps the
// returned handles so pending callbacks can be cancelled deterministically
// when the owner is torn down.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
}

// Real schedules callbacks on the runtime timer wheel
type Real struct{}

// NewReal creates a wall-clock scheduler
func NewReal() *Real {
	return &Real{}
}

type realHandle struct {
	t *time.Timer
}

func (h *realHandle) Cancel() bool {
	return h.t.Stop()
}

// AfterFunc schedules fn to run after d
func (r *Real) AfterFunc(d time.Duration, fn func()) Handle {
	return &realHandle{t: time.AfterFunc(d, fn)}
}

// Manual is a scheduler driven explicitly by tests: callbacks only fire
// when Fire or Advance is called.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	next  int
	tasks map[int]*manualTask
}

type manualTask struct {
	due time.Duration
	fn  func()
}

// NewManual creates a test scheduler
func NewManual() *Manual {
	return &Manual{tasks: make(map[int]*manualTask)}
}

type manualHandle struct {
	s  *Manual
	id int
}

func (h *manualHandle) Cancel() bool {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	if _, ok := h.s.tasks[h.id]; !ok {
		return false
	}
	delete(h.s.tasks, h.id)
	return true
}

// AfterFunc records fn to run once the manual clock has advanced by d
func (m *Manual) AfterFunc(d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	m.tasks[id] = &manualTask{due: m.now + d, fn: fn}
	return &manualHandle{s: m, id: id}
}

// Advance moves the manual clock forward and fires every task that came due
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var ready []func()
	for id, t := range m.tasks {
		if t.due <= m.now {
			ready = append(ready, t.fn)
			delete(m.tasks, id)
		}
	}
	m.mu.Unlock()

	for _, fn := range ready {
		fn()
	}
}

// Pending returns the number of scheduled, unfired tasks
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

var (
	_ Scheduler = (*Real)(nil)
	_ Scheduler = (*Manual)(nil)
)
