// Package notify provides change notification for configuration flags.
//
// Components subscribe to a key (or to every key) and receive a Change
// whenever the store records a new value. Delivery goes through an
// Executor: the application hands in its UI loop, so observers always run
// on the loop goroutine and never inside the writer's call stack. Without
// an executor changes are delivered synchronously, which keeps tests
// simple.
package notify

import (
	"sort"
	"sync"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeReload indicates the backing file was reloaded.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// Key is the dot-separated key of the changed setting.
	// Empty for reload events.
	Key string

	// Type is the type of change.
	Type ChangeType

	// OldValue is the previous value.
	OldValue any

	// NewValue is the value now held by the store.
	NewValue any

	// Source identifies where the change came from ("user", "file",
	// "env", "script").
	Source string
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

// Executor runs deliveries on the goroutine that owns the observers.
type Executor interface {
	Post(fn func()) bool
}

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	key      string
	notifier *Notifier
}

// Key returns the subscribed key, empty for global subscriptions.
func (s *Subscription) Key() string {
	if s == nil {
		return ""
	}
	return s.key
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type entry struct {
	id       uint64
	key      string
	global   bool
	observer Observer
}

// Notifier manages configuration change subscriptions.
type Notifier struct {
	mu       sync.RWMutex
	entries  map[uint64]entry
	nextID   uint64
	executor Executor
	closed   bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithExecutor delivers changes through exec instead of synchronously.
func WithExecutor(exec Executor) Option {
	return func(n *Notifier) {
		n.executor = exec
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		entries: make(map[uint64]entry),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.add(entry{global: true, observer: observer})
}

// SubscribeKey registers an observer for changes to a specific key.
// The observer is called for exact matches and for child keys: subscribing
// to "ui" receives changes to "ui.accent".
func (n *Notifier) SubscribeKey(key string, observer Observer) *Subscription {
	return n.add(entry{key: key, observer: observer})
}

func (n *Notifier) add(e entry) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	e.id = n.nextID
	n.entries[e.id] = e

	return &Subscription{id: e.id, key: e.key, notifier: n}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.entries)
}

// Notify sends a change notification to all relevant observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	closed, exec := n.closed, n.executor
	n.mu.RUnlock()

	if closed {
		return
	}
	if exec == nil {
		n.deliver(change)
		return
	}
	exec.Post(func() { n.deliver(change) })
}

// NotifySet is a convenience method for set changes.
func (n *Notifier) NotifySet(key string, oldValue, newValue any, source string) {
	n.Notify(Change{
		Key:      key,
		Type:     ChangeSet,
		OldValue: oldValue,
		NewValue: newValue,
		Source:   source,
	})
}

// NotifyReload is a convenience method for reload events.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Close stops further deliveries. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.entries, id)
}

// deliver calls matching observers in subscription order. Observers are
// collected under the lock and called outside it, so an observer may
// subscribe or unsubscribe freely.
func (n *Notifier) deliver(change Change) {
	n.mu.RLock()
	matched := make([]entry, 0, len(n.entries))
	for _, e := range n.entries {
		if e.matches(change) {
			matched = append(matched, e)
		}
	}
	n.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].id < matched[j].id })

	for _, e := range matched {
		n.mu.RLock()
		_, live := n.entries[e.id]
		n.mu.RUnlock()
		if live {
			e.observer(change)
		}
	}
}

func (e entry) matches(change Change) bool {
	if e.global || change.Key == "" {
		return true
	}
	return e.key == change.Key || isParentKey(e.key, change.Key)
}

// isParentKey checks if parent is a parent key of child.
// e.g., "ui" is parent of "ui.accent".
func isParentKey(parent, child string) bool {
	if parent == "" {
		return true
	}
	return len(child) > len(parent) && child[:len(parent)] == parent && child[len(parent)] == '.'
}

// Batch collects multiple changes and delivers them as a group.
type Batch struct {
	notifier *Notifier
	changes  []Change
	mu       sync.Mutex
}

// NewBatch creates a new batch for collecting changes.
func (n *Notifier) NewBatch() *Batch {
	return &Batch{notifier: n}
}

// Set adds a set change to the batch.
func (b *Batch) Set(key string, oldValue, newValue any, source string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.changes = append(b.changes, Change{
		Key:      key,
		Type:     ChangeSet,
		OldValue: oldValue,
		NewValue: newValue,
		Source:   source,
	})
}

// Commit sends all batched changes to observers.
func (b *Batch) Commit() {
	b.mu.Lock()
	changes := b.changes
	b.changes = nil
	b.mu.Unlock()

	for _, change := range changes {
		b.notifier.Notify(change)
	}
}

// Len returns the number of pending changes.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.changes)
}
