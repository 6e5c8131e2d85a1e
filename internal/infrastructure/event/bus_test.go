package event

import (
	"context"
	"errors"
	"testing"

	"github.com/storefront/core/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
	Payload string
}

func newTestEvent(eventType, payload string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType),
		Payload:         payload,
	}
}

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.received = append(h.received, evt)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func TestInMemoryEventBus_RoutesByType(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	a := &recordingHandler{types: []string{"thing.created"}}
	b := &recordingHandler{types: []string{"thing.deleted"}}
	bus.Subscribe(a)
	bus.Subscribe(b)

	evt := newTestEvent("thing.created", "x")
	require.NoError(t, bus.Publish(context.Background(), evt))

	require.Len(t, a.received, 1)
	assert.Equal(t, evt.EventID(), a.received[0].EventID())
	assert.Empty(t, b.received)
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{types: []string{"thing.created"}}
	bus.Subscribe(h, "thing.deleted")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("thing.created", "x")))
	assert.Empty(t, h.received)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("thing.deleted", "x")))
	assert.Len(t, h.received, 1)
}

func TestInMemoryEventBus_WildcardReceivesAll(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{}
	bus.Subscribe(h)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("thing.created", "a"),
		newTestEvent("thing.deleted", "b"),
	))
	assert.Len(t, h.received, 2)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{"thing.created"}, err: errors.New("boom")}
	ok := &recordingHandler{types: []string{"thing.created"}}
	bus.Subscribe(failing)
	bus.Subscribe(ok)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("thing.created", "x")))
	assert.Len(t, ok.received, 1)
}

func TestInMemoryEventBus_HandlerPanicIsContained(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	panicking := &recordingHandler{types: []string{"thing.created"}, panics: true}
	ok := &recordingHandler{types: []string{"thing.created"}}
	bus.Subscribe(panicking)
	bus.Subscribe(ok)

	require.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newTestEvent("thing.created", "x"))
	})
	assert.Len(t, ok.received, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{types: []string{"thing.created"}}
	bus.Subscribe(h)
	bus.Unsubscribe(h)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("thing.created", "x")))
	assert.Empty(t, h.received)
}
