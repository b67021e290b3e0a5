package runtime

import (
	"context"
	"sync"
)

type subEntry struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// SubscriptionManager reconciles the model's declared subscriptions
// against the set of running goroutines and buffers their messages
// for the loop. Reconcile, Drain and StopAll are called from the loop
// goroutine; the send function handed to subscriptions is safe from
// any goroutine.
type SubscriptionManager[M any] struct {
	mu      sync.Mutex
	queue   []M
	running map[string]subEntry
	stopped bool
}

func NewSubscriptionManager[M any]() *SubscriptionManager[M] {
	return &SubscriptionManager[M]{
		running: make(map[string]subEntry),
	}
}

// Reconcile diffs the declared set against the running set by ID:
// new IDs start, absent IDs are canceled, persisting IDs are left
// untouched. Cancellation does not wait for the goroutine to exit;
// a replacement under the same ID may briefly overlap its
// predecessor's teardown.
func (m *SubscriptionManager[M]) Reconcile(subs []Subscription[M]) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	declared := make(map[string]Subscription[M], len(subs))
	for _, s := range subs {
		declared[s.ID()] = s
	}
	for id, entry := range m.running {
		if _, ok := declared[id]; !ok {
			entry.cancel()
			delete(m.running, id)
		}
	}
	var starting []Subscription[M]
	for id, s := range declared {
		if _, ok := m.running[id]; !ok {
			starting = append(starting, s)
		}
	}
	m.mu.Unlock()

	for _, s := range starting {
		m.start(s)
	}
}

func (m *SubscriptionManager[M]) start(s Subscription[M]) {
	ctx, cancel := context.WithCancel(context.Background())
	entry := subEntry{cancel: cancel, done: make(chan struct{})}

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		cancel()
		return
	}
	m.running[s.ID()] = entry
	m.mu.Unlock()

	go func() {
		defer close(entry.done)
		s.Run(ctx, m.enqueue)
	}()
}

func (m *SubscriptionManager[M]) enqueue(msg M) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		// Messages produced during teardown are dropped.
		return
	}
	m.queue = append(m.queue, msg)
}

// Drain returns all buffered subscription messages in arrival order
// and empties the queue.
func (m *SubscriptionManager[M]) Drain() []M {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return nil
	}
	out := m.queue
	m.queue = nil
	return out
}

// Active reports how many subscriptions are currently running.
func (m *SubscriptionManager[M]) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.running)
}

// StopAll cancels every running subscription and waits for their
// goroutines to return. Idempotent; the manager accepts no work
// afterwards.
func (m *SubscriptionManager[M]) StopAll() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	entries := make([]subEntry, 0, len(m.running))
	for _, entry := range m.running {
		entry.cancel()
		entries = append(entries, entry)
	}
	m.running = make(map[string]subEntry)
	m.mu.Unlock()

	for _, entry := range entries {
		<-entry.done
	}
}
