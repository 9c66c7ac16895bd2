package events

import (
	"sync"

	"github.com/workbitai/oopsworld/pkg/log"
	"github.com/workbitai/oopsworld/pkg/queue"
)

// Handler receives a notification value.
type Handler[T any] func(value T)

type registration[T any] struct {
	id      uint64
	handler Handler[T]
}

// Emitter delivers values to its subscribers.
// Handlers run synchronously on the emitting goroutine, in subscription order.
type Emitter[T any] struct {
	name     string
	lock     sync.Mutex
	nextID   uint64
	handlers []registration[T]
}

// NewEmitter creates an emitter. The name is only used for logging.
func NewEmitter[T any](name string) *Emitter[T] {
	return &Emitter[T]{name: name}
}

// Subscription ties a handler to the lifetime of its consumer.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe removes the handler. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Subscribe registers a handler and returns its subscription.
func (e *Emitter[T]) Subscribe(handler Handler[T]) *Subscription {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.nextID++
	id := e.nextID
	e.handlers = append(e.handlers, registration[T]{id: id, handler: handler})
	return &Subscription{cancel: func() { e.remove(id) }}
}

// SubscribeQueue delivers every value into q, for consumers that drain
// notifications once per frame instead of reacting inline.
func (e *Emitter[T]) SubscribeQueue(q queue.Queue[T]) *Subscription {
	return e.Subscribe(func(value T) {
		if err := q.Enqueue(value); err != nil {
			log.Warn("Dropped %s notification: %v", e.name, err)
		}
	})
}

func (e *Emitter[T]) remove(id uint64) {
	e.lock.Lock()
	defer e.lock.Unlock()
	for i, r := range e.handlers {
		if r.id == id {
			e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
			return
		}
	}
}

// Emit calls every current handler with value.
// Handlers may subscribe or unsubscribe while being called.
func (e *Emitter[T]) Emit(value T) {
	e.lock.Lock()
	handlers := make([]Handler[T], len(e.handlers))
	for i, r := range e.handlers {
		handlers[i] = r.handler
	}
	e.lock.Unlock()

	log.Trace("Emitting %s to %d subscribers", e.name, len(handlers))
	for _, handler := range handlers {
		handler(value)
	}
}

// Len returns the number of active subscriptions.
func (e *Emitter[T]) Len() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return len(e.handlers)
}
