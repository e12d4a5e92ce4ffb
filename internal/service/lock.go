package service

import (
	"context"
	"sync"

	"github.com/saturnino-fabrica-de-software/eventface/internal/observability"
)

// EventLocker serializes work per event id. Each event gets its own lock,
// created on first use and dropped once nobody holds or waits for it.
type EventLocker struct {
	mu    sync.Mutex
	locks map[string]*eventLock
}

type eventLock struct {
	sem  chan struct{}
	refs int
}

func NewEventLocker() *EventLocker {
	return &EventLocker{locks: make(map[string]*eventLock)}
}

// Lock blocks until the event lock is acquired or ctx is done. The returned
// unlock func is safe to call more than once.
func (l *EventLocker) Lock(ctx context.Context, eventID string) (unlock func(), err error) {
	el := l.acquireRef(eventID)

	select {
	case el.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseRef(eventID, el)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-el.sem
			l.releaseRef(eventID, el)
		})
	}, nil
}

// Len returns the number of events with a lock held or awaited
func (l *EventLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *EventLocker) acquireRef(eventID string) *eventLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	el, ok := l.locks[eventID]
	if !ok {
		el = &eventLock{sem: make(chan struct{}, 1)}
		l.locks[eventID] = el
	}
	el.refs++
	observability.EventLocksHeld.Set(float64(len(l.locks)))

	return el
}

func (l *EventLocker) releaseRef(eventID string, el *eventLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	el.refs--
	if el.refs == 0 {
		delete(l.locks, eventID)
	}
	observability.EventLocksHeld.Set(float64(len(l.locks)))
}
