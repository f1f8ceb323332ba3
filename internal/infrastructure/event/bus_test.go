package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/eujim/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEvent implements DomainEvent for testing
type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New()),
		Data:            "test data",
	}
}

// testHandler implements EventHandler for testing
type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panics     bool
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{
		eventTypes: eventTypes,
		handled:    make([]shared.DomainEvent, 0),
	}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panics {
		panic("boom")
	}
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler("attachee.submitted")
	bus.Subscribe(handler, "attachee.submitted")

	event := newTestEvent("attachee.submitted")
	err := bus.Publish(context.Background(), event)

	require.NoError(t, err)
	assert.Len(t, handler.getHandled(), 1)
	assert.Equal(t, event, handler.getHandled()[0])
}

func TestInMemoryEventBus_Publish_MultipleEvents(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler("attachee.submitted")
	bus.Subscribe(handler, "attachee.submitted")

	err := bus.Publish(context.Background(),
		newTestEvent("attachee.submitted"),
		newTestEvent("attachee.submitted"),
	)

	require.NoError(t, err)
	assert.Len(t, handler.getHandled(), 2)
}

func TestInMemoryEventBus_Publish_MultipleHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler1 := newTestHandler("attachee.submitted")
	handler2 := newTestHandler("attachee.submitted")
	bus.Subscribe(handler1, "attachee.submitted")
	bus.Subscribe(handler2, "attachee.submitted")

	err := bus.Publish(context.Background(), newTestEvent("attachee.submitted"))

	require.NoError(t, err)
	assert.Len(t, handler1.getHandled(), 1)
	assert.Len(t, handler2.getHandled(), 1)
}

func TestInMemoryEventBus_Publish_HandlerError(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := newTestHandler("attachee.submitted")
	failing.err = errors.New("smtp down")
	healthy := newTestHandler("attachee.submitted")
	bus.Subscribe(failing, "attachee.submitted")
	bus.Subscribe(healthy, "attachee.submitted")

	err := bus.Publish(context.Background(), newTestEvent("attachee.submitted"))

	// A failing handler never blocks the others or the publisher
	require.NoError(t, err)
	assert.Len(t, healthy.getHandled(), 1)
}

func TestInMemoryEventBus_Publish_HandlerPanic(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	panicking := newTestHandler("attachee.submitted")
	panicking.panics = true
	healthy := newTestHandler("attachee.submitted")
	bus.Subscribe(panicking, "attachee.submitted")
	bus.Subscribe(healthy, "attachee.submitted")

	err := bus.Publish(context.Background(), newTestEvent("attachee.submitted"))

	require.NoError(t, err)
	assert.Len(t, healthy.getHandled(), 1)
}

func TestInMemoryEventBus_Publish_NoHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	err := bus.Publish(context.Background(), newTestEvent("attachee.submitted"))

	assert.NoError(t, err)
}

func TestInMemoryEventBus_Subscribe_DefaultsToHandlerEventTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler("attachee.submitted", "attachee.status_changed")
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("attachee.status_changed")))
	assert.Len(t, handler.getHandled(), 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler("attachee.submitted")
	bus.Subscribe(handler, "attachee.submitted")
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("attachee.submitted")))
	assert.Empty(t, handler.getHandled())
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	require.NoError(t, bus.Start(context.Background()))
	require.NoError(t, bus.Stop(context.Background()))
}

func TestHandlerRegistry_WildcardHandler(t *testing.T) {
	registry := NewHandlerRegistry()

	wildcard := newTestHandler()
	registry.Register(wildcard)

	handlers := registry.GetHandlers("attachee.submitted")
	require.Len(t, handlers, 1)
	assert.Equal(t, shared.EventHandler(wildcard), handlers[0])
}
